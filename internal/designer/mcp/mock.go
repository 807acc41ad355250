package mcp

import (
	"strings"

	"github.com/google/uuid"
)

// ============================================================
// Mock data
// ============================================================

func MockRooms() []Room {
	return []Room{
		{ID: "1", Name: "Living Room", Length: 15, Width: 12},
		{ID: "2", Name: "Kitchen", Length: 10, Width: 8},
		{ID: "3", Name: "Bedroom", Length: 12, Width: 10},
		{ID: "4", Name: "Bathroom", Length: 6, Width: 5},
	}
}

func MockDoors() []Door {
	return []Door{
		{ID: "1", RoomID: "1", Width: 3, Height: 7},
		{ID: "2", RoomID: "2", Width: 2.5, Height: 7},
		{ID: "3", RoomID: "3", Width: 3, Height: 7},
		{ID: "4", RoomID: "4", Width: 2, Height: 7},
	}
}

func MockWindows() []Window {
	return []Window{
		{ID: "1", RoomID: "1", Width: 4, Height: 3},
		{ID: "2", RoomID: "1", Width: 3, Height: 3},
		{ID: "3", RoomID: "2", Width: 2, Height: 2},
		{ID: "4", RoomID: "3", Width: 3, Height: 3},
	}
}

// mockID - короткий случайный id для записей, созданных без MCP.
func mockID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
