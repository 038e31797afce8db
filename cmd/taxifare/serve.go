package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"taxifare/internal/config"
	httptransport "taxifare/internal/http"
	"taxifare/internal/http/handlers"
	"taxifare/internal/infra"
	"taxifare/internal/maps"
	"taxifare/internal/modules/history"
	"taxifare/internal/modules/prediction"
	"taxifare/internal/modules/session"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front-end",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides TAXIFARE_HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.HTTP.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := prediction.NewClient(cfg.Predict.URL, cfg.Predict.Timeout)

	stores, closeStores, err := historyStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	sessions := session.NewManager(ctx, client, stores, cfg.Session)

	var mapRenderer handlers.MapRenderer
	if cfg.Maps.APIKey != "" {
		staticMaps, err := maps.NewStaticMapService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		mapRenderer = staticMaps
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Sessions: sessions,
		Maps:     mapRenderer,
		Endpoint: client.URL(),
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go sessions.RunJanitor(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s, predicting via %s", cfg.HTTP.Addr, client.URL())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// historyStores picks Redis-backed history when an address is configured.
func historyStores(ctx context.Context, cfg config.Config) (session.StoreFactory, func(), error) {
	if cfg.Redis.Addr == "" {
		return nil, func() {}, nil
	}
	rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return nil, nil, err
	}
	ttl := cfg.Session.TTL
	factory := func(id string) history.Store {
		return history.NewRedisStore(rdb, id, ttl)
	}
	return factory, func() { closeRedis(rdb) }, nil
}

func closeRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Printf("close redis: %v", err)
	}
}
