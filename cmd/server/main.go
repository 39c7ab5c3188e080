package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/geoguess/internal/assets"
	"github.com/playperu/geoguess/internal/config"
	"github.com/playperu/geoguess/internal/countries"
	"github.com/playperu/geoguess/internal/database"
	"github.com/playperu/geoguess/internal/handler/health"
	"github.com/playperu/geoguess/internal/migrations"
	"github.com/playperu/geoguess/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	version, err := migrations.Run(ctx, db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath, "schema_version", version)

	// --- Country catalog ---
	store := countries.NewStore(db)
	atlas, err := countries.LoadAtlas(ctx, logger, store, cfg.CountriesFile)
	if err != nil {
		return fmt.Errorf("loading countries: %w", err)
	}
	logger.Info("loaded countries", "count", atlas.Len())

	// --- Assets ---
	assetDir := cfg.AssetDir
	if info, err := os.Stat(assetDir); err != nil || !info.IsDir() {
		logger.Warn("silhouette directory unavailable, serving flags only", "dir", assetDir)
		assetDir = ""
	}
	silhouettes := assets.NewDirectory(assetDir, "/assets/silhouettes", cfg.FlagURL)

	var web fs.FS
	if cfg.WebDir != "" {
		if info, err := os.Stat(cfg.WebDir); err == nil && info.IsDir() {
			logger.Info("serving web client", "dir", cfg.WebDir)
			web = os.DirFS(cfg.WebDir)
		}
	}

	// --- HTTP Server ---
	broker := server.NewBroker()
	registry := server.NewRegistry(atlas, silhouettes, broker, logger, cfg.SuggestionLimit)

	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Registry: registry,
		Broker:   broker,
		Atlas:    atlas,
		Health: health.NewHandler(logger, map[string]health.Checker{
			"sqlite": health.CheckerFunc(db.PingContext),
			"catalog": health.CheckerFunc(func(ctx context.Context) error {
				n, err := store.Count(ctx)
				if err != nil {
					return err
				}
				if n == 0 {
					return errors.New("country catalog is empty")
				}
				return nil
			}),
		}).Routes(),
		Silhouettes: silhouettes.Handler(),
		Web:         web,
		MaxPlayers:  cfg.MaxPlayers,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return registry.RunSweeper(gctx, cfg.SessionTTL)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
