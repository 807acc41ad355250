package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"home-designer/internal/common/health"
	"home-designer/internal/designer/catalog"
	"home-designer/internal/designer/furniture"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/mcp"
)

// ============================================================
// Designer Handler
// ============================================================

type Handler struct {
	store    *layout.Store
	catalog  *catalog.Repository
	registry *furniture.Registry
	mcp      *mcp.Client
}

func NewHandler(store *layout.Store, repo *catalog.Repository, registry *furniture.Registry, client *mcp.Client) *Handler {
	return &Handler{
		store:    store,
		catalog:  repo,
		registry: registry,
		mcp:      client,
	}
}

// Register вешает все маршруты сервиса на router.
func (h *Handler) Register(router fiber.Router, probes *health.Probes) {
	router.Get("/health/live", probes.Liveness)
	router.Get("/health/ready", probes.Readiness)

	layouts := router.Group("/layouts")
	layouts.Get("/", h.ListLayouts)
	layouts.Post("/", h.CreateLayout)
	layouts.Get("/:id", h.GetLayout)
	layouts.Delete("/:id", h.DeleteLayout)
	layouts.Post("/:id/clear", h.ClearLayout)

	layouts.Post("/:id/rooms", h.CreateRoom)
	layouts.Get("/:id/rooms/at", h.RoomAt)
	layouts.Put("/:id/rooms/:roomId", h.ReplaceRoom)
	layouts.Delete("/:id/rooms/:roomId", h.DeleteRoom)

	layouts.Post("/:id/furniture", h.PlaceFurniture)
	layouts.Delete("/:id/furniture/:furnitureId", h.DeleteFurniture)

	layouts.Post("/:id/draft/points", h.AddDraftPoint)
	layouts.Post("/:id/draft/finish", h.FinishDraft)
	layouts.Delete("/:id/draft", h.ResetDraft)

	layouts.Post("/:id/import", h.ImportSVG)
	layouts.Get("/:id/scene", h.Scene)
	layouts.Get("/:id/plan.svg", h.PlanSVG)
	layouts.Get("/:id/plan.png", h.PlanPNG)

	cat := router.Group("/catalog")
	cat.Get("/categories", h.Categories)
	cat.Get("/furniture", h.SearchFurniture)
	cat.Get("/furniture/:id", h.GetFurniture)
	cat.Get("/templates", h.Templates)

	m := router.Group("/mcp")
	m.Get("/status", h.MCPStatus)
	m.Get("/rooms", h.MCPRooms)
	m.Post("/rooms", h.MCPCreateRoom)
	m.Post("/doors", h.MCPCreateDoor)
	m.Post("/windows", h.MCPCreateWindow)
}

// ============================================================
// Helpers
// ============================================================

var (
	errInvalidJSON    = errors.New("invalid json")
	errRoomIDRequired = errors.New("roomId required")
)

// session достаёт проект по :id.
func (h *Handler) session(c fiber.Ctx) (*layout.Session, error) {
	return h.store.Get(c.Params("id"))
}

// decode разбирает JSON тела. Пустое тело допустимо, если allowEmpty.
func decode(c fiber.Ctx, v any, allowEmpty bool) error {
	body := c.Body()
	if len(body) == 0 {
		if allowEmpty {
			return nil
		}
		return errors.New("empty body")
	}
	return json.Unmarshal(body, v)
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// fail переводит доменную ошибку в HTTP-статус.
func fail(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, layout.ErrLayoutNotFound),
		errors.Is(err, layout.ErrRoomNotFound),
		catalog.IsNotFound(err):
		status = fiber.StatusNotFound
	case errors.Is(err, layout.ErrInsufficientPoints),
		errors.Is(err, layout.ErrNoOwningRoom):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, layout.ErrDraftIncomplete),
		errors.Is(err, layout.ErrRoomExists):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("[DESIGNER] %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
