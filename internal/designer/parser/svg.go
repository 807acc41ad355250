package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

// ============================================================
// Room shapes
// ============================================================

// Shape - контур комнаты, найденный в SVG.
type Shape struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Type   models.RoomType `json:"type"`
	Points []models.Point  `json:"points"`
}

// Skipped - элемент с id комнаты, который не удалось превратить в комнату.
type Skipped struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ParseRooms обходит документ целиком (включая вложенные <g>) и собирает
// <path>, <rect> и <polygon>, чей id помечен как комната.
func ParseRooms(r io.Reader) ([]Shape, []Skipped, error) {
	decoder := xml.NewDecoder(r)

	var (
		shapes  []Shape
		skipped []Skipped
		sawSVG  bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("decode svg: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "svg" {
			sawSVG = true
			continue
		}

		id := attr(start, "id")
		if !IsRoomID(id) {
			continue
		}

		var (
			points []models.Point
			perr   error
		)
		switch start.Name.Local {
		case "path":
			points, perr = ParsePath(attr(start, "d"))
		case "rect":
			points, perr = rectPoints(start)
		case "polygon", "polyline":
			points = ParsePoints(attr(start, "points"))
		default:
			continue
		}

		if perr != nil {
			skipped = append(skipped, Skipped{ID: id, Reason: perr.Error()})
			continue
		}
		if len(points) < 3 {
			skipped = append(skipped, Skipped{ID: id, Reason: layout.ErrInsufficientPoints.Error()})
			continue
		}

		name := RoomName(id)
		shapes = append(shapes, Shape{
			ID:     id,
			Name:   name,
			Type:   InferRoomType(name),
			Points: points,
		})
	}

	if !sawSVG {
		return nil, nil, fmt.Errorf("decode svg: no <svg> root element")
	}
	return shapes, skipped, nil
}

// IsRoomID - id вида Room_*, *_room или *_Room.
func IsRoomID(id string) bool {
	return strings.HasPrefix(id, "Room_") ||
		strings.HasSuffix(id, "_room") || // Hall_room, Toilet_room
		strings.HasSuffix(id, "_Room")
}

// RoomName превращает id в отображаемое имя: Room_Kitchen_1 → "Kitchen 1".
func RoomName(id string) string {
	name := strings.TrimPrefix(id, "Room_")
	name = strings.TrimSuffix(name, "_room")
	name = strings.TrimSuffix(name, "_Room")
	name = strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(name))
	if name == "" {
		return "Room"
	}
	return name
}

var typeKeywords = []struct {
	keyword  string
	roomType models.RoomType
}{
	{"kitchen", models.RoomKitchen},
	{"bedroom", models.RoomBedroom},
	{"bath", models.RoomBathroom},
	{"toilet", models.RoomBathroom},
	{"wc", models.RoomBathroom},
	{"office", models.RoomOffice},
	{"study", models.RoomOffice},
	{"dining", models.RoomDining},
	{"garage", models.RoomGarage},
	{"bed", models.RoomBedroom},
	{"living", models.RoomLiving},
	{"hall", models.RoomLiving},
}

// InferRoomType ищет ключевое слово в имени. По умолчанию - living.
func InferRoomType(name string) models.RoomType {
	lower := strings.ToLower(name)
	for _, word := range strings.Fields(lower) {
		if rt, ok := models.ParseRoomType(word); ok {
			return rt
		}
	}
	for _, k := range typeKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.roomType
		}
	}
	return models.RoomLiving
}

// ============================================================
// Import
// ============================================================

type ImportResult struct {
	Rooms   []models.Room `json:"rooms"`
	Skipped []Skipped     `json:"skipped"`
}

// Import создаёт комнаты через CreateRoom. Комнаты, которые раскладка
// отвергла, попадают в Skipped вместе с причиной.
func Import(l *layout.Layout, r io.Reader) (ImportResult, error) {
	shapes, skipped, err := ParseRooms(r)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Rooms: []models.Room{}, Skipped: skipped}
	if result.Skipped == nil {
		result.Skipped = []Skipped{}
	}

	for _, s := range shapes {
		room, err := l.CreateRoom(s.Points, layout.WithName(s.Name), layout.WithType(s.Type))
		if err != nil {
			result.Skipped = append(result.Skipped, Skipped{ID: s.ID, Reason: err.Error()})
			continue
		}
		result.Rooms = append(result.Rooms, room)
	}
	return result, nil
}

// ============================================================
// Attribute helpers
// ============================================================

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func rectPoints(el xml.StartElement) ([]models.Point, error) {
	var vals [4]float64
	for i, name := range []string{"x", "y", "width", "height"} {
		raw := strings.TrimSpace(attr(el, name))
		if raw == "" {
			if i >= 2 {
				return nil, fmt.Errorf("rect without %s", name)
			}
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64)
		if err != nil {
			return nil, fmt.Errorf("rect %s: %w", name, err)
		}
		vals[i] = v
	}

	x, y, w, h := vals[0], vals[1], vals[2], vals[3]
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rect has zero area")
	}
	return []models.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, nil
}
