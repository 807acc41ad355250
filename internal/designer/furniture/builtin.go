package furniture

import "home-designer/internal/designer/models"

// ============================================================
// Built-in furniture set
// ============================================================

// Builtin - встроенный набор предметов, которые умеет рисовать сцена.
func Builtin() *Registry {
	return NewRegistry(builtinDescriptors())
}

func withParts(parts ...[]Part) []Part {
	var out []Part
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func builtinDescriptors() []Descriptor {
	return []Descriptor{
		{
			Type: "car", Name: "Car", Height: 0.5, DefaultColor: "#dc2626",
			Footprint: Footprint{Width: 4, Depth: 2},
			Parts: withParts(
				[]Part{{Shape: ShapeBox, Args: []float64{4, 1.5, 2}, Offset: models.Vec3{0, 0.5, 0}, Metalness: 0.8, Roughness: 0.2}},
				legs(1.5, 1.5, 0.2, 0.3, 0.2, "#2d3748"),
			),
		},
		{
			Type: "sofa-l", Name: "L-Shaped Sectional Sofa", Height: 0.4, DefaultColor: "#4b5563",
			Footprint: Footprint{Width: 6, Depth: 2},
			Parts: []Part{
				box(6, 1.5, 2, 0, 0, 0, ""),
				box(6, 1.5, 0.4, 0, 0.75, -0.8, ""),
				box(0.4, 1, 2, -2.8, 0.5, 0, ""),
				box(0.4, 1, 2, 2.8, 0.5, 0, ""),
			},
		},
		{
			Type: "coffee-table", Name: "Glass Coffee Table", Height: 0.2, DefaultColor: "#8b4513",
			Footprint: Footprint{Width: 2, Depth: 1},
			Parts: withParts(
				[]Part{box(2, 0.2, 1, 0, 0, 0, "")},
				legs(0.8, 0.8, -0.15, 0.05, 0.3, "#654321"),
			),
		},
		{
			Type: "tv-unit", Name: "Modern TV Unit", Height: 0.5, DefaultColor: "#2d3748",
			Footprint: Footprint{Width: 3, Depth: 0.5},
			Parts: []Part{
				box(3, 1, 0.5, 0, 0, 0, ""),
				box(2.5, 1.5, 0.1, 0, 0.8, 0, "#1a202c"),
			},
		},
		{
			Type: "plant", Name: "Monstera Plant", Height: 0, DefaultColor: "#22c55e",
			Footprint: Footprint{Width: 0.8, Depth: 0.8},
			Parts: []Part{
				cylinder(0.3, 0.25, 0.4, 0, 0.2, 0, "#8b4513"),
				sphere(0.4, 0, 0.6, 0, ""),
			},
		},
		{
			Type: "kitchen-island", Name: "Marble Kitchen Island", Height: 0.5, DefaultColor: "#f8f9fa",
			Footprint: Footprint{Width: 3.2, Depth: 1.7},
			Parts: []Part{
				box(3, 1.5, 1.5, 0, 0, 0, ""),
				{Shape: ShapeBox, Args: []float64{3.2, 0.1, 1.7}, Offset: models.Vec3{0, 0.8, 0}, Color: "#6b7280", Metalness: 0.5, Roughness: 0.3},
			},
		},
		{
			Type: "fridge", Name: "Stainless Steel Refrigerator", Height: 1, DefaultColor: "#f7fafc",
			Footprint: Footprint{Width: 1, Depth: 1},
			Parts:     []Part{{Shape: ShapeBox, Args: []float64{1, 3, 1}, Metalness: 0.3, Roughness: 0.4}},
		},
		{
			Type: "stove", Name: "Professional Gas Stove", Height: 0.4, DefaultColor: "#2d3748",
			Footprint: Footprint{Width: 1.5, Depth: 1},
			Parts: withParts(
				[]Part{box(1.5, 1.5, 1, 0, 0, 0, "")},
				legs(0.3, 0.3, 0.76, 0.15, 0.02, "#1a202c"),
			),
		},
		{
			Type: "dining-table", Name: "Dining Table", Height: 0.4, DefaultColor: "#8b4513",
			Footprint: Footprint{Width: 3, Depth: 1.5},
			Parts: withParts(
				[]Part{box(3, 0.1, 1.5, 0, 0, 0, "")},
				legs(1.3, 0.6, -0.4, 0.05, 0.8, "#654321"),
			),
		},
		{
			Type: "dining-chairs", Name: "Dining Chairs", Height: 0.4, DefaultColor: "#8b4513",
			Footprint: Footprint{Width: 3.4, Depth: 2.4},
			Parts: []Part{
				box(0.4, 0.05, 0.4, -1, 0.2, -1.1, ""),
				box(0.4, 0.05, 0.4, 1, 0.2, -1.1, ""),
				box(0.4, 0.05, 0.4, -1, 0.2, 1.1, ""),
				box(0.4, 0.05, 0.4, 1, 0.2, 1.1, ""),
			},
		},
		{
			Type: "bed", Name: "Platform Bed Frame", Height: 0.3, DefaultColor: "#f7fafc",
			Footprint: Footprint{Width: 2.7, Depth: 4.2},
			Parts: []Part{
				box(2.5, 0.3, 4, 0, 0.1, 0, ""),
				box(2.7, 0.2, 4.2, 0, -0.1, 0, "#8b4513"),
				box(2.7, 1, 0.2, 0, 0.5, -1.9, "#6b7280"),
			},
		},
		{
			Type: "wardrobe", Name: "Double Door Wardrobe", Height: 1, DefaultColor: "#4a5568",
			Footprint: Footprint{Width: 1, Depth: 2},
			Parts:     []Part{box(1, 4, 2, 0, 0, 0, "")},
		},
		{
			Type: "nightstand", Name: "Wooden Nightstand", Height: 0.3, DefaultColor: "#8b4513",
			Footprint: Footprint{Width: 0.6, Depth: 0.4},
			Parts: []Part{
				box(0.6, 1, 0.4, 0, 0, 0, ""),
				{Shape: ShapeCylinder, Args: []float64{0.02, 0.02, 0.1}, Offset: models.Vec3{0.25, 0.2, 0}, Color: "#fbbf24", Metalness: 0.8},
			},
		},
		{
			Type: "desk", Name: "Modern Office Desk", Height: 0.4, DefaultColor: "#8b4513",
			Footprint: Footprint{Width: 2, Depth: 1},
			Parts: withParts(
				[]Part{box(2, 0.05, 1, 0, 0, 0, "")},
				legs(0.9, 0.4, -0.4, 0.03, 0.8, "#374151"),
			),
		},
		{
			Type: "office-chair", Name: "Ergonomic Office Chair", Height: 0.4, DefaultColor: "#374151",
			Footprint: Footprint{Width: 0.8, Depth: 0.8},
			Parts: []Part{
				cylinder(0.3, 0.3, 0.05, 0, 0.2, 0, ""),
				box(0.5, 0.6, 0.05, 0, 0.5, -0.2, ""),
				cylinder(0.4, 0.4, 0.05, 0, -0.1, 0, "#1f2937"),
			},
		},
		{
			Type: "toilet", Name: "Toilet", Height: 0.2, DefaultColor: "#f7fafc",
			Footprint: Footprint{Width: 0.6, Depth: 0.8},
			Parts: []Part{
				cylinder(0.3, 0.25, 0.4, 0, 0.2, 0, ""),
				box(0.4, 0.6, 0.2, 0, 0.5, -0.3, ""),
			},
		},
		{
			Type: "sink", Name: "Sink", Height: 0.4, DefaultColor: "#f7fafc",
			Footprint: Footprint{Width: 0.6, Depth: 0.6},
			Parts: []Part{
				cylinder(0.3, 0.25, 0.15, 0, 0, 0, ""),
				{Shape: ShapeCylinder, Args: []float64{0.02, 0.02, 0.3}, Offset: models.Vec3{0, 0.3, -0.2}, Color: "#e5e7eb", Metalness: 0.8},
			},
		},
		{
			Type: "bathtub", Name: "Bathtub", Height: 0.3, DefaultColor: "#f7fafc",
			Footprint: Footprint{Width: 2, Depth: 1},
			Parts:     []Part{{Shape: ShapeBox, Args: []float64{2, 0.8, 1}, Roughness: 0.3}},
		},
	}
}

// ============================================================
// Room materials
// ============================================================

type Material struct {
	Floor string `json:"floor"`
	Walls string `json:"walls"`
}

var roomMaterials = map[models.RoomType]Material{
	models.RoomLiving:   {Floor: "#d4a574", Walls: "#f8f9fa"},
	models.RoomKitchen:  {Floor: "#e2e8f0", Walls: "#ffffff"},
	models.RoomBedroom:  {Floor: "#c7b299", Walls: "#f7fafc"},
	models.RoomBathroom: {Floor: "#cbd5e0", Walls: "#e2e8f0"},
	models.RoomGarage:   {Floor: "#6b7280", Walls: "#9ca3af"},
	models.RoomDining:   {Floor: "#d4a574", Walls: "#fef7f0"},
	models.RoomOffice:   {Floor: "#4a5568", Walls: "#f7fafc"},
}

var defaultMaterial = Material{Floor: "#d4a574", Walls: "#f8f9fa"}

// MaterialFor возвращает цвета пола и стен для типа комнаты.
func MaterialFor(t models.RoomType) Material {
	if m, ok := roomMaterials[t]; ok {
		return m
	}
	return defaultMaterial
}
