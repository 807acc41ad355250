package main

import (
	"context"
	"fmt"
	"log"

	"home-designer/internal/common/config"
	"home-designer/internal/common/health"
	"home-designer/internal/common/middleware"
	"home-designer/internal/common/telemetry"
	"home-designer/internal/gateway/handlers"
	"home-designer/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load("3000")

	shutdown, err := telemetry.Setup(context.Background(), "gateway", cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("[TELEMETRY] disabled: %v", err)
	} else {
		defer shutdown(context.Background())
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		AppName:      "Home Designer Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(cfg.IsProduction()))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	probes := health.New(0).Add("designer", health.HTTPCheck(cfg.DesignerURL+"/health/live"))
	app.Get("/health/live", probes.Liveness)
	app.Get("/health/ready", probes.Readiness)
	app.Get("/health/startup", probes.Startup)

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// MCP Proxy
	// ============================================================

	mcpProxy := proxy.NewMCPProxy(cfg.MCPEndpoint, cfg.MCPAPIKey, cfg.MCPTimeoutDuration())
	app.Get("/api/mcp", mcpProxy.Status)
	app.Post("/api/mcp", mcpProxy.Handle)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Home Designer API v1",
			"status":  "ok",
		})
	})

	// Designer Service
	designer := proxy.NewForwarder(cfg.DesignerURL, cfg.WriteTimeoutDuration())
	for _, prefix := range []string{"/layouts", "/catalog", "/mcp"} {
		api.All(prefix, designer.Strip("/api/v1"))
		api.All(prefix+"/*", designer.Strip("/api/v1"))
	}

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /api/v1 to %s, /api/mcp to %s (api key set: %t)", cfg.DesignerURL, cfg.MCPEndpoint, cfg.MCPAPIKey != "")

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
