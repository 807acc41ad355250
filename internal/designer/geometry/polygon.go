package geometry

import (
	"math"

	"home-designer/internal/designer/models"
)

// ============================================================
// Polygon metrics
// ============================================================

// SignedArea - площадь по формуле шнурков со знаком.
// Положительна при обходе против часовой стрелки (ось Y вверх).
func SignedArea(points []models.Point) float64 {
	if len(points) < 3 {
		return 0
	}

	var sum float64
	for i := range points {
		j := (i + 1) % len(points)
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return sum / 2
}

// PolygonArea возвращает площадь без знака. Для <3 точек и вырожденных наборов - 0.
func PolygonArea(points []models.Point) float64 {
	return math.Abs(SignedArea(points))
}

// PolygonCentroid - среднее арифметическое вершин, а не центр масс площади.
// Для неправильных многоугольников точка заметно смещена.
func PolygonCentroid(points []models.Point) models.Point {
	if len(points) == 0 {
		return models.Point{}
	}

	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return models.Point{X: sx / n, Y: sy / n}
}

// PointInPolygon - чётно-нечётный тест лучом. Поведение на границе не определено.
func PointInPolygon(p models.Point, polygon []models.Point) bool {
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// ============================================================
// Bounds
// ============================================================

type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) Center() models.Point {
	return models.Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Extend возвращает рамку, покрывающую обе.
func (b Bounds) Extend(o Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// BoundsOf считает ограничивающий прямоугольник. ok=false для пустого списка.
func BoundsOf(points []models.Point) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b := Bounds{MinX: points[0].X, MaxX: points[0].X, MinY: points[0].Y, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b, true
}
