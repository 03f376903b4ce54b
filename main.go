package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hiq/apps/go-server/internal/config"
	"github.com/robalobadob/hiq/apps/go-server/internal/game"
	"github.com/robalobadob/hiq/apps/go-server/internal/httpserver"
	"github.com/robalobadob/hiq/apps/go-server/internal/sqlite"
	"github.com/robalobadob/hiq/apps/go-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if _, err := game.ParseConfiguration(cfg.DefaultConfiguration); err != nil {
		log.Fatal().Err(err).Msg("bad DEFAULT_CONFIGURATION")
	}

	db, err := sqlite.OpenMigrated(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, cfg)
	log.Info().Str("port", cfg.Port).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
