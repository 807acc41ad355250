package catalog

import (
	"fmt"
	"strings"

	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

// ============================================================
// Template application
// ============================================================

type Applied struct {
	Room      models.Room            `json:"room"`
	Furniture []models.FurnitureItem `json:"furniture"`
}

// Apply создаёт стартовую комнату шаблона с центром в начале координат
// и расставляет мебель через PlaceFurniture. Уже существующие комнаты
// не трогаются; если начало координат занято, предметы попадут в первую
// комнату по порядку.
func Apply(l *layout.Layout, t models.ProjectTemplate) (Applied, error) {
	if t.Room.Width <= 0 || t.Room.Depth <= 0 {
		return Applied{}, fmt.Errorf("template %s: room has no size", t.ID)
	}

	hw, hd := t.Room.Width/2, t.Room.Depth/2
	points := []models.Point{{X: -hw, Y: -hd}, {X: hw, Y: -hd}, {X: hw, Y: hd}, {X: -hw, Y: hd}}

	roomType := t.Room.Type
	if roomType == "" {
		roomType = models.RoomLiving
	}

	room, err := l.CreateRoom(points, layout.WithName(templateRoomName(t)), layout.WithType(roomType))
	if err != nil {
		return Applied{}, fmt.Errorf("template %s: %w", t.ID, err)
	}

	out := Applied{Room: room, Furniture: []models.FurnitureItem{}}
	for _, f := range t.Room.Furniture {
		opts := []layout.PlaceOption{layout.WithRotation(models.Vec3{0, f.Rotation, 0})}
		if f.Color != "" {
			opts = append(opts, layout.WithColor(f.Color))
		}

		item, err := l.PlaceFurniture(f.Type, models.Point{X: f.OffsetX, Y: f.OffsetY}, opts...)
		if err != nil {
			return out, fmt.Errorf("template %s: place %s: %w", t.ID, f.Type, err)
		}
		out.Furniture = append(out.Furniture, item)
	}
	return out, nil
}

// templateRoomName: "Kitchen | Farmhouse Charm" → "Kitchen".
func templateRoomName(t models.ProjectTemplate) string {
	name, _, _ := strings.Cut(t.Title, "|")
	name = strings.TrimSpace(name)
	if name == "" {
		return t.ID
	}
	return name
}
