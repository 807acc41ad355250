package handlers

import (
	"bytes"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"home-designer/internal/designer/parser"
	"home-designer/internal/designer/render"
	"home-designer/internal/designer/scene"
)

// ============================================================
// Scene / Plan Handlers
// ============================================================

func (h *Handler) Scene(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(scene.Build(session.Layout.Snapshot(), h.registry))
}

func (h *Handler) PlanSVG(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	c.Type("svg")
	return c.SendString(render.SVG(session.Layout.Snapshot(), h.registry))
}

// PlanPNG - GET /layouts/:id/plan.png?width=&height=.
func (h *Handler) PlanPNG(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	width, err := queryInt(c, "width", render.DefaultPNGWidth)
	if err != nil {
		return badRequest(c, "invalid width")
	}
	height, err := queryInt(c, "height", render.DefaultPNGHeight)
	if err != nil {
		return badRequest(c, "invalid height")
	}
	if width <= 0 || height <= 0 || width > render.MaxPNGSide || height > render.MaxPNGSide {
		return badRequest(c, "canvas size out of range")
	}

	var buf bytes.Buffer
	if err := render.PNG(session.Layout.Snapshot(), h.registry, width, height, &buf); err != nil {
		return fail(c, err)
	}
	c.Type("png")
	return c.Send(buf.Bytes())
}

func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// ============================================================
// Import Handler
// ============================================================

// ImportSVG создаёт комнаты из SVG-плана (multipart, поле "file").
func (h *Handler) ImportSVG(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[IMPORT] FormFile error: %v", err)
		return badRequest(c, "file required in multipart/form-data")
	}
	log.Printf("[IMPORT] File received: %s, size: %d", file.Filename, file.Size)

	f, err := file.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()

	result, err := parser.Import(session.Layout, f)
	if err != nil {
		log.Printf("[IMPORT] Parse error: %v", err)
		return badRequest(c, err.Error())
	}

	log.Printf("[IMPORT] %d rooms imported, %d skipped", len(result.Rooms), len(result.Skipped))
	return c.JSON(result)
}
