package render

import (
	"math"
	"strconv"

	"home-designer/internal/designer/furniture"
	"home-designer/internal/designer/geometry"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

// ============================================================
// Plan geometry
// ============================================================

// Padding - отступ вокруг раскладки в единицах плана.
const Padding = 2.0

const (
	wallColor   = "#1f2937"
	labelColor  = "#374151"
	canvasColor = "#ffffff"
)

type roomShape struct {
	id     string
	name   string
	points []models.Point
	center models.Point
	fill   string
}

type itemShape struct {
	id      string
	kind    string
	corners []models.Point
	fill    string
}

// plan - общая для SVG и PNG проекция снимка на плоскость.
type plan struct {
	rooms  []roomShape
	items  []itemShape
	bounds geometry.Bounds
	empty  bool
}

func buildPlan(snap layout.Snapshot, registry *furniture.Registry) plan {
	p := plan{empty: true}

	extend := func(points []models.Point) {
		b, ok := geometry.BoundsOf(points)
		if !ok {
			return
		}
		if p.empty {
			p.bounds = b
			p.empty = false
			return
		}
		p.bounds = p.bounds.Extend(b)
	}

	for _, room := range snap.Rooms {
		p.rooms = append(p.rooms, roomShape{
			id:     room.ID,
			name:   room.Name,
			points: room.Points,
			center: room.Center,
			fill:   furniture.MaterialFor(room.Type).Floor,
		})
		extend(room.Points)
	}

	for _, item := range snap.Furniture {
		fp := registry.Lookup(item.Type).Footprint
		w, d := fp.Width, fp.Depth
		if item.Scale != nil {
			w *= item.Scale[0]
			d *= item.Scale[2]
		}
		// поворот вокруг вертикали мира на плане идёт в обратную сторону
		corners := rectanglePoints(item.Position[0], item.Position[2], w, d, -item.Rotation[1])
		p.items = append(p.items, itemShape{
			id:      item.ID,
			kind:    item.Type,
			corners: corners,
			fill:    registry.Color(item),
		})
		extend(corners)
	}

	if !p.empty {
		p.bounds = geometry.Bounds{
			MinX: p.bounds.MinX - Padding,
			MinY: p.bounds.MinY - Padding,
			MaxX: p.bounds.MaxX + Padding,
			MaxY: p.bounds.MaxY + Padding,
		}
	}
	return p
}

// fit отображает план в холст width×height с сохранением пропорций.
func (p plan) fit(width, height float64) func(models.Point) models.Point {
	if p.empty || p.bounds.Width() <= 0 || p.bounds.Height() <= 0 {
		return func(pt models.Point) models.Point { return pt }
	}

	scale := math.Min(width/p.bounds.Width(), height/p.bounds.Height())
	offX := (width - p.bounds.Width()*scale) / 2
	offY := (height - p.bounds.Height()*scale) / 2

	return func(pt models.Point) models.Point {
		return models.Point{
			X: offX + (pt.X-p.bounds.MinX)*scale,
			Y: offY + (pt.Y-p.bounds.MinY)*scale,
		}
	}
}

// ============================================================
// Geometry helpers
// ============================================================

func rectanglePoints(cx, cy, width, height, rotation float64) []models.Point {
	halfW := width / 2
	halfH := height / 2

	points := []models.Point{
		{X: cx - halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy + halfH},
		{X: cx - halfW, Y: cy + halfH},
	}

	if rotation == 0 {
		return points
	}

	sin := math.Sin(rotation)
	cos := math.Cos(rotation)

	for i, pt := range points {
		dx := pt.X - cx
		dy := pt.Y - cy
		points[i] = models.Point{
			X: cx + dx*cos - dy*sin,
			Y: cy + dx*sin + dy*cos,
		}
	}

	return points
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p models.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
