package scene

import (
	"math"

	"home-designer/internal/designer/furniture"
	"home-designer/internal/designer/geometry"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

// ============================================================
// Scene constants
// ============================================================

const (
	WallHeight    = 8.0
	WallThickness = 0.2
	LabelLift     = 1.0
	LabelColor    = "#374151"
	GroundColor   = "#f0f9ff"
	GroundSize    = 100.0
)

// ============================================================
// Scene types
// ============================================================

// Scene - описание трёхмерной сцены для клиента. Координата плана Y
// становится осью Z мира, Y мира направлена вверх.
type Scene struct {
	Rooms     []RoomMesh      `json:"rooms"`
	Furniture []FurnitureMesh `json:"furniture"`
	Lighting  Lighting        `json:"lighting"`
	Camera    Camera          `json:"camera"`
	Ground    Ground          `json:"ground"`
}

type Floor struct {
	Center models.Vec3 `json:"center"`
	Width  float64     `json:"width"`
	Depth  float64     `json:"depth"`
	Color  string      `json:"color"`
}

type Wall struct {
	Center    models.Vec3  `json:"center"`
	Length    float64      `json:"length"`
	Height    float64      `json:"height"`
	Thickness float64      `json:"thickness"`
	Yaw       float64      `json:"yaw"`
	Normal    models.Point `json:"normal"`
	Color     string       `json:"color"`
}

type Label struct {
	Text     string      `json:"text"`
	Position models.Vec3 `json:"position"`
	Color    string      `json:"color"`
}

type RoomMesh struct {
	ID    string          `json:"id"`
	Type  models.RoomType `json:"type"`
	Floor Floor           `json:"floor"`
	Walls []Wall          `json:"walls"`
	Label Label           `json:"label"`
}

type FurnitureMesh struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	RoomID   string           `json:"roomId"`
	Position models.Vec3      `json:"position"`
	Rotation models.Vec3      `json:"rotation"`
	Scale    models.Vec3      `json:"scale"`
	Color    string           `json:"color"`
	Parts    []furniture.Part `json:"parts"`
	Fallback bool             `json:"fallback,omitempty"`
}

type DirectionalLight struct {
	Position  models.Vec3 `json:"position"`
	Intensity float64     `json:"intensity"`
	ShadowMap int         `json:"shadowMap"`
}

type Lighting struct {
	Ambient     float64          `json:"ambient"`
	Directional DirectionalLight `json:"directional"`
	Hemisphere  float64          `json:"hemisphere"`
}

type Camera struct {
	Position    models.Vec3 `json:"position"`
	FOV         float64     `json:"fov"`
	MinDistance float64     `json:"minDistance"`
	MaxDistance float64     `json:"maxDistance"`
	MaxPolar    float64     `json:"maxPolarAngle"`
}

type Ground struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// DefaultLighting и DefaultCamera - фиксированные настройки просмотра.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient: 0.4,
		Directional: DirectionalLight{
			Position:  models.Vec3{20, 20, 10},
			Intensity: 1,
			ShadowMap: 2048,
		},
		Hemisphere: 0.6,
	}
}

func DefaultCamera() Camera {
	return Camera{
		Position:    models.Vec3{30, 25, 30},
		FOV:         50,
		MinDistance: 10,
		MaxDistance: 100,
		MaxPolar:    math.Pi / 2.2,
	}
}

// ============================================================
// Builder
// ============================================================

// Build собирает сцену из снимка раскладки. Чистая функция: снимок не меняется.
func Build(snap layout.Snapshot, registry *furniture.Registry) Scene {
	out := Scene{
		Rooms:     make([]RoomMesh, 0, len(snap.Rooms)),
		Furniture: make([]FurnitureMesh, 0, len(snap.Furniture)),
		Lighting:  DefaultLighting(),
		Camera:    DefaultCamera(),
		Ground:    Ground{Size: GroundSize, Color: GroundColor},
	}

	for _, room := range snap.Rooms {
		out.Rooms = append(out.Rooms, buildRoom(room))
	}
	for _, item := range snap.Furniture {
		out.Furniture = append(out.Furniture, buildFurniture(item, registry))
	}
	return out
}

func buildRoom(room models.Room) RoomMesh {
	material := furniture.MaterialFor(room.Type)

	bounds, _ := geometry.BoundsOf(room.Points)
	center := bounds.Center()

	segments := geometry.Walls(room.Points)
	walls := make([]Wall, 0, len(segments))
	for _, s := range segments {
		walls = append(walls, Wall{
			Center:    models.Vec3{s.Mid.X, WallHeight / 2, s.Mid.Y},
			Length:    s.Length,
			Height:    WallHeight,
			Thickness: WallThickness,
			Yaw:       s.Angle,
			Normal:    s.Normal,
			Color:     material.Walls,
		})
	}

	return RoomMesh{
		ID:   room.ID,
		Type: room.Type,
		Floor: Floor{
			Center: models.Vec3{center.X, 0.01, center.Y},
			Width:  bounds.Width(),
			Depth:  bounds.Height(),
			Color:  material.Floor,
		},
		Walls: walls,
		Label: Label{
			Text:     room.Name,
			Position: models.Vec3{center.X, WallHeight + LabelLift, center.Y},
			Color:    LabelColor,
		},
	}
}

func buildFurniture(item models.FurnitureItem, registry *furniture.Registry) FurnitureMesh {
	d := registry.Lookup(item.Type)
	color := registry.Color(item)

	parts := make([]furniture.Part, len(d.Parts))
	for i, p := range d.Parts {
		if p.Color == "" {
			p.Color = color
		}
		parts[i] = p
	}

	scale := models.Vec3{1, 1, 1}
	if item.Scale != nil {
		scale = *item.Scale
	}

	return FurnitureMesh{
		ID:       item.ID,
		Type:     item.Type,
		RoomID:   item.RoomID,
		Position: item.Position,
		Rotation: item.Rotation,
		Scale:    scale,
		Color:    color,
		Parts:    parts,
		Fallback: !registry.Known(item.Type),
	}
}
