package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"diary-rooms/internal/config"
	"diary-rooms/internal/database/migration"
	"diary-rooms/internal/delivery/http/middleware"
	"diary-rooms/internal/delivery/http/routes"
	"diary-rooms/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := runMigrations(container); err != nil {
		_ = container.Close()
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, logger)

	wsHandler := ws.NewHandler(container.Hub, logger)
	registry := routes.NewRegistry(cfg, container.DB, container.Cache, wsHandler)
	registry.Register(f, logger)

	cleanup := func() error {
		return container.Close()
	}
	return &App{Fiber: f, Container: container}, cleanup, nil
}

func runMigrations(c *Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	runner := migration.Runner{Dir: "migrations"}
	return runner.Run(ctx, c.DB.SQLDB())
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
