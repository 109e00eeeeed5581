package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/logtrace"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/server"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile string
	initDB     bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog := log.With().Str("state", "init").Logger()
	ctx = slog.WithContext(ctx)

	_ = godotenv.Load() // no error if .env doesn't exist
	opt := parseFlags()

	slog.Info().Str("config_file", opt.configFile).Msg("loading config file")
	if err := config.LoadConfig(opt.configFile); err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	cfg := config.Config()
	if pw := os.Getenv("TYKO_DB_PASSWORD"); pw != "" {
		cfg.DB.Password = pw
	}
	if err := logtrace.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	if opt.initDB {
		cfg.DB.InitOnStart = true
		if err := db.InitWithConfig(ctx, cfg); err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		slog.Info().Msg("database initialized")
		return db.Pool().Close()
	}

	if err := db.InitWithConfig(ctx, cfg); err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Pool().Close()

	serverErrors, shutdownServer, err := createServer(ctx)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		shutdownServer()
	}

	slog.Info().Msg("server stopped")
	return nil
}

func createServer(ctx context.Context) (chan error, func(), error) {
	slog := log.With().Str("state", "init").Logger()
	s, err := server.CreateNewServer()
	if err != nil {
		return nil, nil, err
	}
	s.MountHandlers()

	srv := &http.Server{
		Addr:              config.Config().ServerHostName + ":" + config.Config().ServerPort,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info().Str("addr", srv.Addr).Msg("server started")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := func() {
		// Give outstanding requests 5 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error().Err(err).Msg("could not stop server gracefully")
			if err := srv.Close(); err != nil {
				slog.Error().Err(err).Msg("could not stop server")
			}
		}
	}

	return serverErrors, shutdown, nil
}

const DefaultConfigFile = "/etc/tyko/tykosrv.conf"

// parseFlags reads the command line. The config file defaults to $TYKO_SETTINGS.
func parseFlags() cmdoptions {
	var opt cmdoptions
	defaultConfig := DefaultConfigFile
	if env := os.Getenv("TYKO_SETTINGS"); env != "" {
		defaultConfig = env
	}
	flag.StringVar(&opt.configFile, "config", defaultConfig, "Path to the config file")
	flag.BoolVar(&opt.initDB, "init-db", false, "Create tables and seed enumerations, then exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
