package api

import (
	"context"
	"strings"

	"twap-book/pkg/obs"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func requestIDMiddleware(c *fiber.Ctx) error {
	requestID := strings.TrimSpace(c.Get(obs.RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx := context.WithValue(c.UserContext(), obs.RequestIDContextKey, requestID)
	c.SetUserContext(ctx)
	c.Set(obs.RequestIDHeader, requestID)

	return c.Next()
}
