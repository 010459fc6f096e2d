package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api"
	"github.com/NZUMAN2/transera-crm-sub001/internal/auth"
	"github.com/NZUMAN2/transera-crm-sub001/internal/database"
	"github.com/NZUMAN2/transera-crm-sub001/internal/realtime"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/config"
	"github.com/NZUMAN2/transera-crm-sub001/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/server.yaml", "path to config file")
	flag.Parse()

	// .env is optional; real deployments inject TRANSERA_* env vars directly.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})

	log.Info("starting transera-crm server")
	log.WithField("config", cfg.SanitizeForLogging()).Debug("loaded configuration")

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal("database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.Database.Type); err != nil {
		log.Fatal("migrations failed: %v", err)
	}

	// CSRF tokens live in redis when available so every instance behind the
	// load balancer sees the same tokens. Rate limit buckets stay
	// process-local either way.
	var csrfStore auth.CSRFStore = auth.NewMemoryCSRFStore()
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("redis unreachable: %v", err)
		}
		cancel()
		defer rdb.Close()
		csrfStore = auth.NewRedisCSRFStore(rdb)
		log.Info("csrf state backed by redis at %s", cfg.Redis.Addr)
	}

	hub := realtime.NewHub(log)
	go hub.Run()
	defer hub.Stop()

	services, err := api.NewServices(cfg, log, db, csrfStore, hub)
	if err != nil {
		log.Fatal("service wiring failed: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	api.SetupRoutes(router, services)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown: %v", err)
	}
	log.Info("server stopped")
}
