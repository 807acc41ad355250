package geometry

import (
	"math"

	"home-designer/internal/designer/models"
)

// ============================================================
// Wall segments
// ============================================================

// Segment - ребро многоугольника от Start к End в порядке обхода.
type Segment struct {
	Start  models.Point `json:"start"`
	End    models.Point `json:"end"`
	Length float64      `json:"length"`
	Angle  float64      `json:"angle"` // atan2(dy, dx), радианы
	Mid    models.Point `json:"mid"`
	Normal models.Point `json:"normal"` // единичная, наружу
}

// Walls разворачивает многоугольник в рёбра (последняя вершина соединяется с первой).
// Направление нормали берётся из знака площади, поэтому порядок обхода важен.
func Walls(points []models.Point) []Segment {
	if len(points) < 2 {
		return nil
	}

	ccw := SignedArea(points) >= 0

	out := make([]Segment, 0, len(points))
	for i, p := range points {
		next := points[(i+1)%len(points)]
		dx := next.X - p.X
		dy := next.Y - p.Y
		length := math.Hypot(dx, dy)

		var normal models.Point
		if length > 0 {
			// справа от направления обхода при CCW
			normal = models.Point{X: dy / length, Y: -dx / length}
			if !ccw {
				normal = models.Point{X: -normal.X, Y: -normal.Y}
			}
		}

		out = append(out, Segment{
			Start:  p,
			End:    next,
			Length: length,
			Angle:  math.Atan2(dy, dx),
			Mid:    models.Point{X: (p.X + next.X) / 2, Y: (p.Y + next.Y) / 2},
			Normal: normal,
		})
	}
	return out
}

// Perimeter - сумма длин рёбер.
func Perimeter(points []models.Point) float64 {
	var total float64
	for _, s := range Walls(points) {
		total += s.Length
	}
	return total
}
