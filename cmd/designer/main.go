package main

import (
	"context"
	"fmt"
	"log"

	"home-designer/internal/common/config"
	"home-designer/internal/common/health"
	"home-designer/internal/common/middleware"
	"home-designer/internal/common/telemetry"
	"home-designer/internal/designer/catalog"
	"home-designer/internal/designer/furniture"
	"home-designer/internal/designer/handlers"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/mcp"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Designer Service
// ============================================================

func main() {
	cfg := config.Load("3001")
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, "designer", cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("[TELEMETRY] disabled: %v", err)
	} else {
		defer shutdown(context.Background())
	}

	repo, err := catalog.Open(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	defer repo.Close()

	registry := furniture.Builtin()
	store := layout.NewStore(layout.WithHeights(registry))
	client := mcp.NewClient(cfg.MCPProxyURL, cfg.MCPTimeoutDuration())

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		AppName:      "Home Designer",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(cfg.IsProduction()))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Routes
	// ============================================================

	probes := health.New(0).Add("catalog", repo.Ping)
	handlers.NewHandler(store, repo, registry, client).Register(app, probes)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Designer on %s (env: %s)", addr, cfg.Environment)
	log.Printf("MCP proxy: %s, %d furniture types", cfg.MCPProxyURL, len(registry.Types()))

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
