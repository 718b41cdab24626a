package routes

import (
	"log"

	"diary-rooms/internal/config"
	"diary-rooms/internal/database"
	v1 "diary-rooms/internal/delivery/http/routes/v1"
	"diary-rooms/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, redis, logger)
}
