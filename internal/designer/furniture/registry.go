package furniture

import (
	"sort"

	"home-designer/internal/designer/models"
)

// ============================================================
// Render descriptors
// ============================================================

type Shape string

const (
	ShapeBox      Shape = "box"
	ShapeCylinder Shape = "cylinder"
	ShapeSphere   Shape = "sphere"
)

// Part - примитив меша. Args повторяют аргументы геометрии:
// box [w h d], cylinder [rTop rBottom h], sphere [r].
type Part struct {
	Shape     Shape       `json:"shape"`
	Args      []float64   `json:"args"`
	Offset    models.Vec3 `json:"offset"`
	Color     string      `json:"color,omitempty"` // пусто - цвет предмета
	Metalness float64     `json:"metalness,omitempty"`
	Roughness float64     `json:"roughness,omitempty"`
}

// Footprint - проекция предмета на план, для 2D рендера.
type Footprint struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

type Descriptor struct {
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Parts        []Part    `json:"parts"`
	Footprint    Footprint `json:"footprint"`
	Height       float64   `json:"height"` // высота установки (Y)
	DefaultColor string    `json:"default_color"`
}

const DefaultType = "default"

// DefaultHeight - высота установки для типов, о которых реестр не знает.
const DefaultHeight = 0.5

// ============================================================
// Registry
// ============================================================

type Registry struct {
	byType   map[string]Descriptor
	fallback Descriptor
}

// NewRegistry строит реестр. Запись с типом DefaultType становится запасной.
func NewRegistry(descriptors []Descriptor) *Registry {
	r := &Registry{
		byType: make(map[string]Descriptor, len(descriptors)),
		fallback: Descriptor{
			Type:         DefaultType,
			Name:         "Generic item",
			Parts:        []Part{box(1, 1, 1, 0, 0, 0, "")},
			Footprint:    Footprint{Width: 1, Depth: 1},
			Height:       DefaultHeight,
			DefaultColor: "#9ca3af",
		},
	}
	for _, d := range descriptors {
		if d.Type == DefaultType {
			r.fallback = d
			continue
		}
		r.byType[d.Type] = d
	}
	return r
}

// Lookup никогда не возвращает пустой дескриптор: неизвестный тип даёт запасной.
func (r *Registry) Lookup(furnitureType string) Descriptor {
	if d, ok := r.byType[furnitureType]; ok {
		return d
	}
	return r.fallback
}

func (r *Registry) Known(furnitureType string) bool {
	_, ok := r.byType[furnitureType]
	return ok
}

// PlacementHeight - высота установки предмета данного типа.
func (r *Registry) PlacementHeight(furnitureType string) float64 {
	return r.Lookup(furnitureType).Height
}

// Color - явный цвет предмета или цвет типа по умолчанию.
func (r *Registry) Color(item models.FurnitureItem) string {
	if item.Color != "" {
		return item.Color
	}
	return r.Lookup(item.Type).DefaultColor
}

// Types возвращает известные ключи по алфавиту.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.byType))
	for t := range r.byType {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func box(w, h, d, x, y, z float64, color string) Part {
	return Part{Shape: ShapeBox, Args: []float64{w, h, d}, Offset: models.Vec3{x, y, z}, Color: color}
}

func cylinder(rTop, rBottom, h, x, y, z float64, color string) Part {
	return Part{Shape: ShapeCylinder, Args: []float64{rTop, rBottom, h}, Offset: models.Vec3{x, y, z}, Color: color}
}

func sphere(r, x, y, z float64, color string) Part {
	return Part{Shape: ShapeSphere, Args: []float64{r}, Offset: models.Vec3{x, y, z}, Color: color}
}

// legs ставит одинаковые цилиндры в углы прямоугольника ±dx/±dz.
func legs(dx, dz, y, radius, height float64, color string) []Part {
	out := make([]Part, 0, 4)
	for _, p := range [][2]float64{{-dx, -dz}, {dx, -dz}, {-dx, dz}, {dx, dz}} {
		out = append(out, cylinder(radius, radius, height, p[0], y, p[1], color))
	}
	return out
}
