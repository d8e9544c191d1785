package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"smartblog/internal/bootstrap"
	"smartblog/internal/config"
	"smartblog/internal/server"
	"smartblog/pkg/database"
	"smartblog/pkg/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedSuperuser(db, cfg); err != nil {
		log.Fatalf("failed to seed superuser: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	srv := server.NewServer(cfg, db, ratelimiter.NewRedisCounterStore(redisClient))

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
