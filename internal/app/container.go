package app

import (
	"context"
	"log"
	"time"

	"diary-rooms/internal/config"
	"diary-rooms/internal/database"
	dbpostgres "diary-rooms/internal/database/postgres"
	"diary-rooms/internal/infrastructure/cache"
	"diary-rooms/internal/ws"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{Config: cfg, DB: db, Cache: redis, Hub: hub}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
