package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dynbilliards/backend/internal/api"
	"github.com/dynbilliards/backend/internal/billiards"
	"github.com/dynbilliards/backend/internal/config"
	"github.com/dynbilliards/backend/internal/database"
	"github.com/dynbilliards/backend/internal/engine"
	"github.com/dynbilliards/backend/internal/migrations"
	"github.com/dynbilliards/backend/internal/redis"
	"github.com/dynbilliards/backend/internal/runs"
	"github.com/dynbilliards/backend/internal/session"
	"github.com/dynbilliards/backend/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize configuration (also loads .env)
	cfg := config.Load()

	catalog, err := billiards.LoadCatalog(cfg.TablesFile)
	if err != nil {
		log.Fatalf("Failed to load table catalog: %v", err)
	}
	log.Printf("[TABLES] %d table types loaded", len(catalog.Tables()))

	// Database is optional: without it the run journal is disabled
	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		if cfg.MigrateOnStart {
			log.Println("↗ Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL, migrations.DefaultDir); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
		db, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
	} else {
		log.Println("[DB] DATABASE_URL not set - run journal disabled")
	}

	// Redis is optional: without it engines run in mock mode and idle
	// sessions are not reaped
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
	} else {
		log.Println("[ENGINE] REDIS_URL not set - engines will use mock mode")
	}

	engines := engine.NewRegistryForCatalog(catalog, rdb)
	journal := runs.NewJournal(db)
	tracker := session.NewTracker(rdb, time.Duration(cfg.SessionTimeoutMin)*time.Minute)

	wsServer := ws.NewServer(cfg, catalog, engines, journal, tracker)
	ws.StartSessionEventSubscriber(ctx, rdb, wsServer.Hub())
	session.StartIdleReaper(ctx, rdb, time.Duration(cfg.IdleWorkerPollSeconds)*time.Second)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, cfg, catalog, journal, wsServer)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		<-ctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Starting billiards configuration server on port %s", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
