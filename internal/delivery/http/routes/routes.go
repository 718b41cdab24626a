package routes

import (
	"log"

	"diary-rooms/internal/config"
	"diary-rooms/internal/database"
	"diary-rooms/internal/delivery/http/handler"
	"diary-rooms/internal/infrastructure/cache"
	"diary-rooms/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	wsH    *ws.Handler
	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, wsHandler *ws.Handler) *Registry {
	return &Registry{
		cfg:    cfg,
		db:     db,
		cache:  redis,
		wsH:    wsHandler,
		health: handler.NewHealthHandler(db, redis),
	}
}

func (r *Registry) Register(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1Group := api.Group("/v1")

	if r.wsH != nil {
		v1Group.Get("/ws", r.wsH.HandleCommunitiesWS)
	}

	RegisterV1(v1Group, r.cfg, r.db, r.cache, logger)
}
