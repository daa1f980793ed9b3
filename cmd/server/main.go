package main

import (
	"context"

	"github.com/sparkdate/spark/internal/app"
	"github.com/sparkdate/spark/internal/cache"
	"github.com/sparkdate/spark/internal/config"
	"github.com/sparkdate/spark/internal/db"
	"github.com/sparkdate/spark/internal/logger"
	"github.com/sparkdate/spark/internal/realtime"
	"github.com/sparkdate/spark/internal/server"
	"github.com/sparkdate/spark/internal/service/chat"
	"github.com/sparkdate/spark/internal/service/gift"
	"github.com/sparkdate/spark/internal/service/swipe"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)

	// Presence and dispatch are singly-owned here and injected into both
	// the websocket endpoint and the chat service.
	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry, log)

	registrars := []server.Registrar{
		swipe.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx, dispatcher),
		gift.NewRegistrar(appCtx),
		realtime.NewRegistrar(appCtx, registry, dispatcher),
	}

	if cfg.App.Env == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
