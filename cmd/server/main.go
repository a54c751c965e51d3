package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"twap-book/pkg/api"
	"twap-book/pkg/config"
	"twap-book/pkg/handlers"
	"twap-book/pkg/obs"
	"twap-book/pkg/sessions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	port := flag.Int("port", 0, "port for the HTTP server (overrides config)")
	flag.IntVar(port, "p", 0, "shorthand for --port")
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.StringVar(configPath, "c", "", "shorthand for --config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("couldn't load configuration: %v", err))
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	obs := obs.New(cfg.Log.Level)
	defer obs.Sync()
	ctx, cancel := context.WithCancel(context.Background())

	obs.LogNotice(
		ctx,
		"twap server startup: port=%d body_limit=%d max_sessions=%d log_level=%s",
		cfg.Server.Port,
		cfg.Server.BodyLimit,
		cfg.Sessions.Max,
		cfg.Log.Level,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			if strings.Contains(err.Error(), "panic") {
				return c.Status(code).SendString("Internal Server Error")
			}

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			return c.Status(code).SendString(err.Error())
		},
		BodyLimit:               cfg.Server.BodyLimit,
		EnableTrustedProxyCheck: true,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	handler := handlers.New(obs, sessions.NewRegistry(cfg.Sessions.Max))

	var router fiber.Router = app

	api.New(router, handler)

	fmt.Printf("Server is live on %s. Starting to listen.\n", addr)

	sigterm := make(chan os.Signal, 1)
	var wg sync.WaitGroup
	signal.Notify(sigterm, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigterm
		obs.LogNotice(ctx, "Received SIGTERM, shutting down gracefully")

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.ShutdownWithTimeout(time.Second * 10); err != nil {
				obs.LogAlert(ctx, "Error shutting down gracefully: %v", err)
			}
		}()
		cancel()
	}()

	go func() {
		if err := app.Listen(addr); err != nil {
			obs.LogAlert(ctx, "Error starting server: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	// Wait for the server to shut down cleanly
	wg.Wait()

	obs.LogNotice(ctx, "Server shut down")
}
