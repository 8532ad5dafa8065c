package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/pump-curve/infra/config"
	"github.com/drakos74/pump-curve/internal/api"
	"github.com/drakos74/pump-curve/internal/curve"
	"github.com/drakos74/pump-curve/internal/server"
	"github.com/drakos74/pump-curve/internal/storage"
	json_storage "github.com/drakos74/pump-curve/internal/storage/file/json"
	redis_storage "github.com/drakos74/pump-curve/internal/storage/redis"
)

const name = "pump-curve"

func main() {
	path := flag.String("config", "", "path to the yaml config file")
	flag.Parse()

	cfg := config.MustLoad(*path)
	if err := setupLogger(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatal().Err(err).Msg("could not configure logger")
	}

	fitter, err := curve.New(cfg.Curve)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create fitter")
	}

	s := server.NewServer(name, cfg.Server.Port).
		Metrics().
		Add(api.New(fitter, store(cfg), cfg.Cache.Expiration, cfg.Server.Debug).Routes()...)
	if cfg.Server.Debug {
		s.Debug()
	}

	if err := s.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func store(cfg *config.Config) storage.Persistence {
	if !cfg.Storage.Enabled {
		log.Warn().Msg("storage disabled, cases will not be kept")
		return storage.NewVoidStorage()
	}
	if cfg.Storage.Backend == "redis" {
		log.Info().Str("addr", cfg.Storage.Redis.Addr).Msg("storing cases in redis")
		s := redis_storage.New(cfg.Storage.Redis.Addr, cfg.Storage.Redis.Prefix, cfg.Server.Debug)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not reach redis")
		}
		return s
	}
	log.Info().Str("dir", cfg.Storage.Dir).Msg("storing cases")
	return json_storage.NewJsonBlob(cfg.Storage.Dir, cfg.Server.Debug)
}

func setupLogger(level, format string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(l)
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
	return nil
}
