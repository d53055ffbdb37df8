// Package main rental marketplace API.
//
// @title           Rental Marketplace API
// @version         1.0
// @description     Peer-to-peer rental marketplace (contracts, items, users, roles).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lendly/rental-marketplace/internal/api"
	"github.com/lendly/rental-marketplace/internal/core/service"
	"github.com/lendly/rental-marketplace/internal/infrastructure/config"
	mongorepo "github.com/lendly/rental-marketplace/internal/infrastructure/db/mongo"
	redisinfra "github.com/lendly/rental-marketplace/internal/infrastructure/db/redis"
	"github.com/lendly/rental-marketplace/internal/infrastructure/queue"
	"github.com/lendly/rental-marketplace/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	// --- Redis ---
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Indexes and seed data ---
	seq := redisinfra.NewSequence(rdb)
	contractRepo := mongorepo.NewContractRepository(db, seq)
	itemRepo := mongorepo.NewItemRepository(db, seq)
	userRepo := mongorepo.NewUserRepository(db, seq)
	roleRepo := mongorepo.NewRoleRepository(db, seq)
	auditRepo := mongorepo.NewAuditRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"contracts":      contractRepo.EnsureIndexes,
		"items":          itemRepo.EnsureIndexes,
		"users":          userRepo.EnsureIndexes,
		"roles":          roleRepo.EnsureIndexes,
		"contract_audit": auditRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	if err := service.NewRoleService(roleRepo).SeedCanonical(ctx); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	// --- Audit pipeline ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterConfig{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  time.Duration(cfg.TokenTTLHrs) * time.Hour,
		Audit:     dispatcher,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
