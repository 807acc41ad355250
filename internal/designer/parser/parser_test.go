package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

func TestParsePathClosedSquare(t *testing.T) {
	pts, err := ParsePath("M 0 0 L 10 0 L 10 10 L 0 10 Z")
	require.NoError(t, err)
	assert.Equal(t, []models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, pts)
}

func TestParsePathRelativeAndAxisCommands(t *testing.T) {
	pts, err := ParsePath("m 1,1 h 4 v 3 H 1 z")
	require.NoError(t, err)
	assert.Equal(t, []models.Point{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 4}, {X: 1, Y: 4}}, pts)
}

func TestParsePathImplicitLineTo(t *testing.T) {
	pts, err := ParsePath("M0 0 6 0 6 6 0 0")
	require.NoError(t, err)
	assert.Len(t, pts, 3)
}

func TestParsePathErrors(t *testing.T) {
	_, err := ParsePath("   ")
	assert.Error(t, err)

	_, err = ParsePath("M 0 0 C 1 1 2 2 3 3")
	assert.Error(t, err)
}

func TestRoomNaming(t *testing.T) {
	assert.True(t, IsRoomID("Room_Kitchen_1"))
	assert.True(t, IsRoomID("Hall_room"))
	assert.True(t, IsRoomID("Guest_Room"))
	assert.False(t, IsRoomID("Wall_1"))

	assert.Equal(t, "Kitchen 1", RoomName("Room_Kitchen_1"))
	assert.Equal(t, "Hall", RoomName("Hall_room"))
	assert.Equal(t, "Room", RoomName("Room_"))

	assert.Equal(t, models.RoomKitchen, InferRoomType("Kitchen 1"))
	assert.Equal(t, models.RoomBathroom, InferRoomType("Toilet"))
	assert.Equal(t, models.RoomBedroom, InferRoomType("Master Bedroom"))
	assert.Equal(t, models.RoomLiving, InferRoomType("Pantry"))
}

const floorPlan = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <rect id="Wall_1" x="0" y="0" width="100" height="2" />
  <g id="rooms">
    <path id="Room_Kitchen_1" d="M 0 0 L 10 0 L 10 8 L 0 8 Z" />
    <rect id="Bath_room" x="10" y="0" width="6" height="5" />
    <polygon id="Office_Room" points="20,0 30,0 30,10 20,10" />
  </g>
  <path id="Room_Sliver" d="M 0 0 L 5 5 Z" />
</svg>`

func TestParseRooms(t *testing.T) {
	shapes, skipped, err := ParseRooms(strings.NewReader(floorPlan))
	require.NoError(t, err)

	require.Len(t, shapes, 3)
	assert.Equal(t, "Kitchen 1", shapes[0].Name)
	assert.Equal(t, models.RoomKitchen, shapes[0].Type)
	assert.Equal(t, "Bath", shapes[1].Name)
	assert.Equal(t, models.RoomBathroom, shapes[1].Type)
	assert.Len(t, shapes[1].Points, 4)
	assert.Equal(t, models.RoomOffice, shapes[2].Type)

	require.Len(t, skipped, 1)
	assert.Equal(t, "Room_Sliver", skipped[0].ID)
}

func TestParseRoomsRejectsGarbage(t *testing.T) {
	_, _, err := ParseRooms(strings.NewReader("<html><body/></html>"))
	assert.Error(t, err)

	_, _, err = ParseRooms(strings.NewReader("<svg><path"))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	l := layout.New()

	result, err := Import(l, strings.NewReader(floorPlan))
	require.NoError(t, err)
	assert.Len(t, result.Rooms, 3)
	assert.Len(t, result.Skipped, 1)

	rooms := l.Rooms()
	require.Len(t, rooms, 3)
	assert.InDelta(t, 80, rooms[0].Area, 1e-9)
	assert.Equal(t, "Kitchen 1", rooms[0].Name)
}
