package handlers

import (
	"github.com/gofiber/fiber/v3"

	"home-designer/internal/designer/mcp"
)

// ============================================================
// MCP Handlers
// ============================================================

// MCP-вызовы не падают: при сбое клиент возвращает мок и source "mock".

func (h *Handler) MCPStatus(c fiber.Ctx) error {
	return c.JSON(h.mcp.TestConnection(c.Context()))
}

func (h *Handler) MCPRooms(c fiber.Ctx) error {
	rooms, source := h.mcp.GetRooms(c.Context())
	return c.JSON(fiber.Map{"rooms": rooms, "source": source})
}

func (h *Handler) MCPCreateRoom(c fiber.Ctx) error {
	var in mcp.RoomInput
	if err := decode(c, &in, false); err != nil {
		return badRequest(c, errInvalidJSON.Error())
	}
	if in.Name == "" {
		return badRequest(c, "name required")
	}

	room, source := h.mcp.CreateRoom(c.Context(), in)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"room": room, "source": source})
}

func (h *Handler) MCPCreateDoor(c fiber.Ctx) error {
	in, err := openingInput(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	door, source := h.mcp.CreateDoor(c.Context(), in)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"door": door, "source": source})
}

func (h *Handler) MCPCreateWindow(c fiber.Ctx) error {
	in, err := openingInput(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	window, source := h.mcp.CreateWindow(c.Context(), in)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"window": window, "source": source})
}

func openingInput(c fiber.Ctx) (mcp.OpeningInput, error) {
	var in mcp.OpeningInput
	if err := decode(c, &in, false); err != nil {
		return in, errInvalidJSON
	}
	if in.RoomID == "" {
		return in, errRoomIDRequired
	}
	return in, nil
}
