package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-designer/internal/designer/models"
)

func square() []models.Point {
	return []models.Point{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}
}

func reversed(points []models.Point) []models.Point {
	out := make([]models.Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name   string
		points []models.Point
		want   float64
	}{
		{"square", square(), 100},
		{"square clockwise", reversed(square()), 100},
		{"triangle", []models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}, 6},
		{"l-shape", []models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4}}, 12},
		{"two points", []models.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0},
		{"empty", nil, 0},
		{"collinear", []models.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PolygonArea(tt.points), 1e-9)
		})
	}
}

func TestSignedAreaFollowsWinding(t *testing.T) {
	assert.Greater(t, SignedArea(square()), 0.0)
	assert.Less(t, SignedArea(reversed(square())), 0.0)
}

func TestPolygonCentroid(t *testing.T) {
	assert.Equal(t, models.Point{X: 0, Y: 0}, PolygonCentroid(square()))

	// среднее вершин, а не центр масс: для L-формы они различаются
	l := []models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4}}
	c := PolygonCentroid(l)
	assert.InDelta(t, 2.0, c.X, 1e-9)
	assert.InDelta(t, 2.0, c.Y, 1e-9)

	assert.Equal(t, models.Point{}, PolygonCentroid(nil))
}

func TestPolygonCentroidIgnoresOrder(t *testing.T) {
	points := []models.Point{{X: 1, Y: 2}, {X: 7, Y: -3}, {X: 4, Y: 9}, {X: -2, Y: 5}}
	permuted := []models.Point{points[2], points[0], points[3], points[1]}

	a := PolygonCentroid(points)
	b := PolygonCentroid(permuted)
	assert.InDelta(t, a.X, b.X, 1e-9)
	assert.InDelta(t, a.Y, b.Y, 1e-9)
}

func TestPointInPolygon(t *testing.T) {
	sq := square()

	assert.True(t, PointInPolygon(models.Point{X: 0, Y: 0}, sq))
	assert.True(t, PointInPolygon(models.Point{X: 4.5, Y: -4.5}, sq))
	assert.False(t, PointInPolygon(models.Point{X: 10, Y: 10}, sq))
	assert.False(t, PointInPolygon(models.Point{X: -6, Y: 0}, sq))

	assert.True(t, PointInPolygon(models.Point{X: 0, Y: 0}, reversed(sq)))

	l := []models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4}}
	assert.True(t, PointInPolygon(models.Point{X: 1, Y: 3}, l))
	assert.False(t, PointInPolygon(models.Point{X: 3, Y: 3}, l), "notch of the L is outside")

	assert.False(t, PointInPolygon(models.Point{X: 0, Y: 0}, nil))
}

func TestBoundsOf(t *testing.T) {
	b, ok := BoundsOf(square())
	require.True(t, ok)
	assert.Equal(t, Bounds{MinX: -5, MinY: -5, MaxX: 5, MaxY: 5}, b)
	assert.Equal(t, 10.0, b.Width())
	assert.Equal(t, models.Point{}, b.Center())

	_, ok = BoundsOf(nil)
	assert.False(t, ok)
}

func TestWallsNormalsPointOutward(t *testing.T) {
	for _, points := range [][]models.Point{square(), reversed(square())} {
		walls := Walls(points)
		require.Len(t, walls, 4)

		center := PolygonCentroid(points)
		for _, w := range walls {
			assert.InDelta(t, 10, w.Length, 1e-9)

			// шаг от середины стены по нормали уводит из комнаты
			probe := models.Point{X: w.Mid.X + w.Normal.X, Y: w.Mid.Y + w.Normal.Y}
			assert.False(t, PointInPolygon(probe, points))
			assert.Greater(t,
				math.Hypot(probe.X-center.X, probe.Y-center.Y),
				math.Hypot(w.Mid.X-center.X, w.Mid.Y-center.Y))
		}
	}
}

func TestWallsClosePolygon(t *testing.T) {
	walls := Walls(square())
	last := walls[len(walls)-1]
	assert.Equal(t, models.Point{X: -5, Y: 5}, last.Start)
	assert.Equal(t, models.Point{X: -5, Y: -5}, last.End)
	assert.InDelta(t, -math.Pi/2, last.Angle, 1e-9)

	assert.InDelta(t, 40, Perimeter(square()), 1e-9)
	assert.Nil(t, Walls(nil))
}
