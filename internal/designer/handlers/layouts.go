package handlers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"home-designer/internal/designer/catalog"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

// ============================================================
// Layout Handlers
// ============================================================

type createLayoutRequest struct {
	Template string `json:"template"`
}

type draftPayload struct {
	Points    []models.Point `json:"points"`
	Drawing   bool           `json:"drawing"`
	CanFinish bool           `json:"canFinish"`
}

type layoutPayload struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	layout.Snapshot
	Draft draftPayload `json:"draft"`
}

func newLayoutPayload(s *layout.Session) layoutPayload {
	return layoutPayload{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Snapshot:  s.Layout.Snapshot(),
		Draft:     newDraftPayload(s.Draft),
	}
}

func newDraftPayload(d *layout.Draft) draftPayload {
	return draftPayload{
		Points:    d.Points(),
		Drawing:   d.Drawing(),
		CanFinish: d.CanFinish(),
	}
}

func (h *Handler) ListLayouts(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"layouts": h.store.IDs()})
}

// CreateLayout создаёт проект; template - "sample-house" или id шаблона каталога.
func (h *Handler) CreateLayout(c fiber.Ctx) error {
	var req createLayoutRequest
	if err := decode(c, &req, true); err != nil {
		return badRequest(c, errInvalidJSON.Error())
	}

	session, err := h.store.CreateWith(func(s *layout.Session) error {
		return h.applyTemplate(c, s, req.Template)
	})
	if err != nil {
		return fail(c, err)
	}

	log.Printf("[LAYOUT] Created %s (template: %q)", session.ID, req.Template)
	return c.Status(fiber.StatusCreated).JSON(newLayoutPayload(session))
}

func (h *Handler) applyTemplate(c fiber.Ctx, session *layout.Session, id string) error {
	switch id {
	case "":
		return nil
	case layout.SampleTemplateID:
		return layout.SampleHouse(session.Layout)
	}

	t, err := h.catalog.Template(c.Context(), id)
	if err != nil {
		return err
	}
	_, err = catalog.Apply(session.Layout, *t)
	return err
}

func (h *Handler) GetLayout(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(newLayoutPayload(session))
}

// DeleteLayout идемпотентен.
func (h *Handler) DeleteLayout(c fiber.Ctx) error {
	h.store.Delete(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ClearLayout(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	session.Layout.Clear()
	session.Draft.Reset()
	return c.JSON(newLayoutPayload(session))
}

// ============================================================
// Rooms
// ============================================================

type roomRequest struct {
	Name   string         `json:"name"`
	Type   string         `json:"type"`
	Points []models.Point `json:"points"`
}

// roomOptions проверяет тип комнаты. Пустой тип оставляет значение по умолчанию.
func roomOptions(name, roomType string) ([]layout.RoomOption, error) {
	var opts []layout.RoomOption
	if name != "" {
		opts = append(opts, layout.WithName(name))
	}
	if roomType != "" {
		t, ok := models.ParseRoomType(roomType)
		if !ok {
			return nil, fmt.Errorf("unknown room type %q", roomType)
		}
		opts = append(opts, layout.WithType(t))
	}
	return opts, nil
}

func (h *Handler) CreateRoom(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req roomRequest
	if err := decode(c, &req, false); err != nil {
		return badRequest(c, errInvalidJSON.Error())
	}
	opts, err := roomOptions(req.Name, req.Type)
	if err != nil {
		return badRequest(c, err.Error())
	}

	room, err := session.Layout.CreateRoom(req.Points, opts...)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

func (h *Handler) ReplaceRoom(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req roomRequest
	if err := decode(c, &req, false); err != nil {
		return badRequest(c, errInvalidJSON.Error())
	}
	opts, err := roomOptions(req.Name, req.Type)
	if err != nil {
		return badRequest(c, err.Error())
	}

	room, err := session.Layout.ReplaceRoom(c.Params("roomId"), req.Points, opts...)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(room)
}

// DeleteRoom удаляет комнату вместе с её мебелью; неизвестный id не ошибка.
func (h *Handler) DeleteRoom(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	session.Layout.DeleteRoom(c.Params("roomId"))
	return c.SendStatus(fiber.StatusNoContent)
}

// RoomAt - GET /layouts/:id/rooms/at?x=&y=.
func (h *Handler) RoomAt(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	p, err := queryPoint(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	room, ok := session.Layout.RoomAt(p)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no room at point"})
	}
	return c.JSON(room)
}

func queryPoint(c fiber.Ctx) (models.Point, error) {
	x, err := strconv.ParseFloat(c.Query("x"), 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid x")
	}
	y, err := strconv.ParseFloat(c.Query("y"), 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid y")
	}
	return models.Point{X: x, Y: y}, nil
}

// ============================================================
// Furniture
// ============================================================

type furnitureRequest struct {
	Type     string       `json:"type"`
	X        *float64     `json:"x"`
	Y        *float64     `json:"y"`
	Rotation float64      `json:"rotation"`
	Color    string       `json:"color"`
	Scale    *models.Vec3 `json:"scale"`
}

// PlaceFurniture ставит предмет в точку плана. Неизвестный тип допустим:
// он рисуется запасным видом.
func (h *Handler) PlaceFurniture(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req furnitureRequest
	if err := decode(c, &req, false); err != nil {
		return badRequest(c, errInvalidJSON.Error())
	}
	if req.Type == "" || req.X == nil || req.Y == nil {
		return badRequest(c, "type, x and y required")
	}

	opts := []layout.PlaceOption{layout.WithRotation(models.Vec3{0, req.Rotation, 0})}
	if req.Color != "" {
		opts = append(opts, layout.WithColor(req.Color))
	}
	if req.Scale != nil {
		opts = append(opts, layout.WithScale(*req.Scale))
	}

	item, err := session.Layout.PlaceFurniture(req.Type, models.Point{X: *req.X, Y: *req.Y}, opts...)
	if err != nil {
		return fail(c, err)
	}
	if !h.registry.Known(item.Type) {
		log.Printf("[LAYOUT] Unknown furniture type %q placed, using fallback", item.Type)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) DeleteFurniture(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	session.Layout.DeleteFurniture(c.Params("furnitureId"))
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================
// Draft
// ============================================================

type pointRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type finishRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (h *Handler) AddDraftPoint(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req pointRequest
	if err := decode(c, &req, false); err != nil {
		return badRequest(c, errInvalidJSON.Error())
	}
	if req.X == nil || req.Y == nil {
		return badRequest(c, "x and y required")
	}

	session.Draft.AddPoint(models.Point{X: *req.X, Y: *req.Y})
	return c.JSON(newDraftPayload(session.Draft))
}

// FinishDraft превращает черновик в комнату; меньше трёх точек - 409.
func (h *Handler) FinishDraft(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req finishRequest
	if err := decode(c, &req, true); err != nil {
		return badRequest(c, errInvalidJSON.Error())
	}
	opts, err := roomOptions(req.Name, req.Type)
	if err != nil {
		return badRequest(c, err.Error())
	}

	room, err := session.Draft.Finish(session.Layout, opts...)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

func (h *Handler) ResetDraft(c fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	session.Draft.Reset()
	return c.SendStatus(fiber.StatusNoContent)
}
