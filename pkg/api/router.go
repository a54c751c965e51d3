package api

import (
	"twap-book/pkg/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func New(router fiber.Router, handler *handlers.Handler) {
	router.Use(requestIDMiddleware)

	router.Post("/replay", handler.PostReplay)

	sessions := router.Group("/sessions")
	sessions.Post("", handler.CreateSession)
	sessions.Get("/:sessionId", handler.GetSession)
	sessions.Post("/:sessionId/events", handler.ApplySessionEvents)
	sessions.Delete("/:sessionId", handler.CloseSession)

	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
