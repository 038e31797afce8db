package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"taxifare/internal/config"
	"taxifare/internal/modules/prediction"
	"taxifare/internal/modules/ride"
	"taxifare/internal/view"
)

var (
	predictForm ride.Form
	predictURL  string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Ask the prediction API for a single fare",
	RunE:  runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictForm.PickupDate, "date", "", "Pickup date YYYY-MM-DD (default today)")
	f.StringVar(&predictForm.PickupTime, "time", "", "Pickup time HH:MM[:SS] (default now)")
	f.StringVar(&predictForm.PickupLat, "pickup-lat", fmtCoord(ride.DefaultPickup.Lat), "Pickup latitude")
	f.StringVar(&predictForm.PickupLon, "pickup-lon", fmtCoord(ride.DefaultPickup.Lng), "Pickup longitude")
	f.StringVar(&predictForm.DropoffLat, "dropoff-lat", fmtCoord(ride.DefaultDropoff.Lat), "Dropoff latitude")
	f.StringVar(&predictForm.DropoffLon, "dropoff-lon", fmtCoord(ride.DefaultDropoff.Lng), "Dropoff longitude")
	f.StringVarP(&predictForm.PassengerCount, "passengers", "p", "1", "Number of passengers (1-8)")
	f.StringVar(&predictURL, "url", "", "Prediction endpoint (overrides TAXIFARE_PREDICT_URL)")
}

func runPredict(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if predictURL != "" {
		cfg.Predict.URL = predictURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := ride.Collect(predictForm, time.Now())
	fare, err := prediction.NewClient(cfg.Predict.URL, cfg.Predict.Timeout).Predict(ctx, req)

	var outcome *prediction.Outcome
	if err != nil {
		outcome = prediction.Failure(err)
	} else {
		outcome = prediction.Success(fare)
	}
	msg := view.ResultMessage(outcome)
	if outcome.Err != nil {
		return errors.New(msg.Text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg.Text)
	return nil
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
