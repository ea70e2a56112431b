package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"resource-hub/internal/config"
	"resource-hub/internal/delivery/http/middleware"
	"resource-hub/internal/delivery/http/routes"
	"resource-hub/internal/ws"
)

type App struct {
	Fiber *fiber.App
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware()
	f.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(accessMw.Middleware())

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	wsHandler := ws.NewHandler(hub, logger)
	f.Get("/ws/assignments", wsHandler.HandleAssignmentsWS)

	registry := routes.NewRegistry(cfg, container.DB, container.Cache)
	registry.Register(f)

	cleanup := func() error {
		return container.Close()
	}

	return &App{Fiber: f}, cleanup, nil
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
