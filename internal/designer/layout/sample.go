package layout

import (
	"fmt"
	"math"

	"home-designer/internal/designer/models"
)

// ============================================================
// Sample house
// ============================================================

// SampleTemplateID - id шаблона, который строит демонстрационный дом.
const SampleTemplateID = "sample-house"

type sampleRoom struct {
	id       string
	name     string
	roomType models.RoomType
	points   []models.Point
}

type sampleItem struct {
	id     string
	kind   string
	pos    models.Vec3
	yaw    float64
	roomID string
	color  string
}

func rect(x1, y1, x2, y2 float64) []models.Point {
	return []models.Point{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}
}

var sampleRooms = []sampleRoom{
	{"garage", "Garage", models.RoomGarage, rect(-15, -10, -5, 5)},
	{"living-room", "Living Room", models.RoomLiving, rect(-5, -5, 8, 8)},
	{"kitchen", "Kitchen", models.RoomKitchen, rect(8, -5, 15, 3)},
	{"dining", "Dining Room", models.RoomDining, rect(8, 3, 15, 8)},
	{"master-bedroom", "Master Bedroom", models.RoomBedroom, rect(-5, 8, 5, 15)},
	{"bedroom2", "Bedroom 2", models.RoomBedroom, rect(5, 8, 15, 15)},
	{"bathroom1", "Bathroom 1", models.RoomBathroom, rect(-5, -10, 0, -5)},
	{"bathroom2", "Bathroom 2", models.RoomBathroom, rect(0, -10, 8, -5)},
}

var sampleItems = []sampleItem{
	{"car1", "car", models.Vec3{-12, 0.5, -2}, 0, "garage", "#dc2626"},
	{"car2", "car", models.Vec3{-8, 0.5, -2}, 0, "garage", "#ffffff"},

	{"sofa-l", "sofa-l", models.Vec3{0, 0.4, 3}, 0, "living-room", "#4b5563"},
	{"coffee-table", "coffee-table", models.Vec3{2, 0.2, 1}, 0, "living-room", ""},
	{"tv-unit", "tv-unit", models.Vec3{7, 0.5, -3}, math.Pi, "living-room", ""},
	{"plant1", "plant", models.Vec3{-3, 0, 6}, 0, "living-room", ""},
	{"plant2", "plant", models.Vec3{6, 0, 6}, 0, "living-room", ""},

	{"kitchen-island", "kitchen-island", models.Vec3{11.5, 0.5, -1}, 0, "kitchen", ""},
	{"fridge", "fridge", models.Vec3{14, 1, 1}, -math.Pi / 2, "kitchen", ""},
	{"stove", "stove", models.Vec3{9, 0.4, -4}, 0, "kitchen", ""},

	{"dining-table", "dining-table", models.Vec3{11.5, 0.4, 5.5}, 0, "dining", ""},
	{"dining-chairs", "dining-chairs", models.Vec3{11.5, 0.4, 5.5}, 0, "dining", ""},

	{"bed1", "bed", models.Vec3{0, 0.3, 13}, 0, "master-bedroom", ""},
	{"wardrobe1", "wardrobe", models.Vec3{-4, 1, 9}, math.Pi / 2, "master-bedroom", ""},
	{"nightstand1", "nightstand", models.Vec3{3, 0.3, 14}, 0, "master-bedroom", ""},

	{"bed2", "bed", models.Vec3{10, 0.3, 13}, 0, "bedroom2", ""},
	{"desk", "desk", models.Vec3{13, 0.4, 9}, math.Pi, "bedroom2", ""},
	{"chair", "office-chair", models.Vec3{13, 0.4, 10}, 0, "bedroom2", ""},

	{"toilet1", "toilet", models.Vec3{-4, 0.2, -8}, math.Pi / 2, "bathroom1", ""},
	{"sink1", "sink", models.Vec3{-2, 0.4, -9}, 0, "bathroom1", ""},
	{"bathtub", "bathtub", models.Vec3{4, 0.3, -8}, 0, "bathroom2", ""},
	{"toilet2", "toilet", models.Vec3{1, 0.2, -8}, math.Pi / 2, "bathroom2", ""},
}

// SampleHouse заменяет содержимое раскладки меблированным домом из восьми комнат.
// Центры и площади считаются из вершин, как у любой другой комнаты.
func SampleHouse(l *Layout) error {
	l.Clear()

	for _, r := range sampleRooms {
		if _, err := l.CreateRoom(r.points, WithRoomID(r.id), WithName(r.name), WithType(r.roomType)); err != nil {
			return fmt.Errorf("sample room %s: %w", r.id, err)
		}
	}

	for _, it := range sampleItems {
		item := models.FurnitureItem{
			ID:       it.id,
			Type:     it.kind,
			Position: it.pos,
			Rotation: models.Vec3{0, it.yaw, 0},
			RoomID:   it.roomID,
			Color:    it.color,
		}
		if _, err := l.AddFurniture(item); err != nil {
			return fmt.Errorf("sample furniture %s: %w", it.id, err)
		}
	}
	return nil
}
