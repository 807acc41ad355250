package scene

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-designer/internal/designer/furniture"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

func TestBuildRoom(t *testing.T) {
	l := layout.New()
	_, err := l.CreateRoom([]models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 6}, {X: 0, Y: 6}},
		layout.WithRoomID("k"), layout.WithName("Kitchen"), layout.WithType(models.RoomKitchen))
	require.NoError(t, err)

	s := Build(l.Snapshot(), furniture.Builtin())
	require.Len(t, s.Rooms, 1)

	room := s.Rooms[0]
	assert.Equal(t, models.Vec3{5, 0.01, 3}, room.Floor.Center)
	assert.Equal(t, 10.0, room.Floor.Width)
	assert.Equal(t, 6.0, room.Floor.Depth)
	assert.Equal(t, furniture.MaterialFor(models.RoomKitchen).Floor, room.Floor.Color)

	require.Len(t, room.Walls, 4)
	first := room.Walls[0]
	assert.Equal(t, models.Vec3{5, WallHeight / 2, 0}, first.Center)
	assert.Equal(t, 10.0, first.Length)
	assert.Equal(t, WallThickness, first.Thickness)
	assert.InDelta(t, 0, first.Yaw, 1e-12)
	assert.InDelta(t, -1, first.Normal.Y, 1e-12)

	closing := room.Walls[3]
	assert.InDelta(t, -math.Pi/2, closing.Yaw, 1e-12)
	assert.InDelta(t, -1, closing.Normal.X, 1e-12)

	assert.Equal(t, "Kitchen", room.Label.Text)
	assert.Equal(t, models.Vec3{5, WallHeight + LabelLift, 3}, room.Label.Position)
}

func TestBuildFurniture(t *testing.T) {
	l := layout.New(layout.WithHeights(furniture.Builtin()))
	_, err := l.CreateRoom([]models.Point{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}})
	require.NoError(t, err)

	_, err = l.PlaceFurniture("car", models.Point{X: 0, Y: 0}, layout.WithColor("#ffffff"))
	require.NoError(t, err)
	_, err = l.PlaceFurniture("teleporter", models.Point{X: 1, Y: 1}, layout.WithScale(models.Vec3{2, 1, 2}))
	require.NoError(t, err)

	s := Build(l.Snapshot(), furniture.Builtin())
	require.Len(t, s.Furniture, 2)

	car := s.Furniture[0]
	assert.Equal(t, "#ffffff", car.Color)
	assert.Equal(t, models.Vec3{1, 1, 1}, car.Scale)
	assert.False(t, car.Fallback)
	assert.Equal(t, "#ffffff", car.Parts[0].Color)
	// колёса сохраняют собственный цвет
	assert.Equal(t, "#2d3748", car.Parts[1].Color)

	unknown := s.Furniture[1]
	assert.True(t, unknown.Fallback)
	assert.Equal(t, models.Vec3{2, 1, 2}, unknown.Scale)
	assert.NotEmpty(t, unknown.Parts)
}

func TestBuildEmptyLayoutSerializes(t *testing.T) {
	s := Build(layout.New().Snapshot(), furniture.Builtin())

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rooms":[]`)
	assert.Contains(t, string(raw), `"furniture":[]`)
	assert.Equal(t, 0.4, s.Lighting.Ambient)
	assert.InDelta(t, math.Pi/2.2, s.Camera.MaxPolar, 1e-12)
}
