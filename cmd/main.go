package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saeidalz13/battleship-cpu/api"
	"github.com/saeidalz13/battleship-cpu/db"
	"github.com/saeidalz13/battleship-cpu/internal/config"
	"github.com/saeidalz13/battleship-cpu/internal/logging"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
	mc "github.com/saeidalz13/battleship-cpu/models/connection"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.Stage, cfg.LogLevel, os.Stdout)

	querier, closer, err := db.NewQuerier(db.Options{
		DatabaseUrl:  cfg.DatabaseUrl,
		MigrationDir: cfg.MigrationDir,
		LocalDbPath:  cfg.LocalDbPath,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("no analytics database available")
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bgm := mb.NewBattleshipGameManager(
		mb.WithMaxPlacementAttempts(cfg.MaxPlacementAttempts),
		mb.WithSeparateShips(cfg.SeparateShips),
		mb.WithGameLogger(logger),
	)
	bsm := mc.NewBattleshipSessionManager(
		mc.WithCleanupInterval(cfg.SessionCleanupInterval),
		mc.WithGracePeriod(cfg.ReconnectGracePeriod),
		mc.WithSessionLogger(logger),
	)
	go bsm.CleanupPeriodically(ctx)

	rp := api.NewRequestProcessor(bsm, bgm, querier, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)
	mux.HandleFunc("GET /analytics", rp.ServeAnalytics)

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown")
		}
	}()

	logger.Info().Int("port", cfg.Port).Str("stage", cfg.Stage).Msg("Listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server stopped")
	}
}
