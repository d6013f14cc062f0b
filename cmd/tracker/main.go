package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/football-tracker/internal/config"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("tracker", flag.ContinueOnError)
	createSeason := fs.Bool("create-season", false, "download the calendar, store a new season and exit")
	seasonID := fs.Int("season", 0, "remote season id for -create-season; 0 asks the provider for the current one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "football-tracker",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	if *createSeason {
		defer srv.Close()
		season, err := srv.League().CreateSeason(ctx, *seasonID)
		if err != nil {
			return fmt.Errorf("create season: %w", err)
		}
		logging.Info(logger, "season created",
			slog.Int(logging.FieldSeasonID, season.ID),
			slog.Int("remoteSeasonId", season.RemoteSeasonID),
			slog.Int("maxRounds", season.MaxRounds),
		)
		return nil
	}

	srv.Run(ctx, stop)
	return nil
}
