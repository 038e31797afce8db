// README: Entry point; `serve` runs the web app, `predict` asks the API once from the terminal.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "taxifare",
	Short:        "Taxi fare prediction front-end",
	SilenceUsage: true,
	Long:         `Collects ride details, asks a remote fare-prediction API for an estimate and shows the fare, a session history chart and a pickup/dropoff map.`,
}

func init() {
	rootCmd.AddCommand(serveCmd, predictCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
