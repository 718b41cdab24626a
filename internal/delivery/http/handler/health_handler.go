package handler

import (
	"context"
	"time"

	"diary-rooms/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus the state of the two backing
// stores. A degraded cache is still a 200; a dead database is not.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	data := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			data["database"] = "down"
			return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", data)
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			data["cache"] = "down"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
