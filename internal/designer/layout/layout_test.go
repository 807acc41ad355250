package layout_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"home-designer/internal/designer/furniture"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

func square(x1, y1, x2, y2 float64) []models.Point {
	return []models.Point{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}
}

func sequentialIDs() layout.IDGenerator {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type LayoutTestSuite struct {
	suite.Suite
	layout *layout.Layout
}

func (s *LayoutTestSuite) SetupTest() {
	s.layout = layout.New(
		layout.WithHeights(furniture.Builtin()),
		layout.WithIDGenerator(sequentialIDs()),
	)
}

func (s *LayoutTestSuite) TestCreateRoom() {
	s.Run("fewer than three points is rejected", func() {
		_, err := s.layout.CreateRoom([]models.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
		s.ErrorIs(err, layout.ErrInsufficientPoints)
		s.Empty(s.layout.Rooms())
	})

	s.Run("derives center and area", func() {
		room, err := s.layout.CreateRoom(square(-5, -5, 5, 5))
		s.Require().NoError(err)
		s.Equal("room-1", room.ID)
		s.Equal("Room 1", room.Name)
		s.Equal(models.RoomLiving, room.Type)
		s.InDelta(100, room.Area, 1e-9)
		s.Equal(models.Point{X: 0, Y: 0}, room.Center)
	})

	s.Run("explicit id, name and type", func() {
		room, err := s.layout.CreateRoom(square(10, 10, 12, 14),
			layout.WithRoomID("study"), layout.WithName("Study"), layout.WithType(models.RoomOffice))
		s.Require().NoError(err)
		s.Equal("study", room.ID)
		s.Equal("Study", room.Name)
		s.Equal(models.RoomOffice, room.Type)
		s.InDelta(8, room.Area, 1e-9)
	})

	s.Run("duplicate id is rejected", func() {
		_, err := s.layout.CreateRoom(square(0, 0, 1, 1), layout.WithRoomID("study"))
		s.ErrorIs(err, layout.ErrRoomExists)
		s.Len(s.layout.Rooms(), 2)
	})
}

func (s *LayoutTestSuite) TestCreateRoomCopiesPoints() {
	pts := square(0, 0, 4, 4)
	room, err := s.layout.CreateRoom(pts)
	s.Require().NoError(err)

	pts[0] = models.Point{X: 100, Y: 100}
	room.Points[1] = models.Point{X: -100, Y: -100}

	stored, ok := s.layout.Room(room.ID)
	s.Require().True(ok)
	s.Equal(square(0, 0, 4, 4), stored.Points)
}

func (s *LayoutTestSuite) TestReplaceRoomRecomputesDerivedFields() {
	room, err := s.layout.CreateRoom(square(0, 0, 2, 2), layout.WithName("Hall"))
	s.Require().NoError(err)

	replaced, err := s.layout.ReplaceRoom(room.ID, square(0, 0, 6, 4))
	s.Require().NoError(err)
	s.Equal(room.ID, replaced.ID)
	s.Equal("Hall", replaced.Name)
	s.InDelta(24, replaced.Area, 1e-9)
	s.Equal(models.Point{X: 3, Y: 2}, replaced.Center)

	_, err = s.layout.ReplaceRoom("missing", square(0, 0, 1, 1))
	s.ErrorIs(err, layout.ErrRoomNotFound)

	_, err = s.layout.ReplaceRoom(room.ID, square(0, 0, 1, 1)[:2])
	s.ErrorIs(err, layout.ErrInsufficientPoints)
}

func (s *LayoutTestSuite) TestPlaceFurniture() {
	room, err := s.layout.CreateRoom(square(-5, -5, 5, 5))
	s.Require().NoError(err)

	s.Run("inside a room", func() {
		item, err := s.layout.PlaceFurniture("sofa-l", models.Point{X: 0, Y: 0})
		s.Require().NoError(err)
		s.Equal(room.ID, item.RoomID)
		s.Equal("sofa-l", item.Type)
		s.Equal(models.Vec3{0, 0.4, 0}, item.Position)
	})

	s.Run("outside every room", func() {
		_, err := s.layout.PlaceFurniture("sofa-l", models.Point{X: 100, Y: 100})
		s.ErrorIs(err, layout.ErrNoOwningRoom)
		s.Len(s.layout.Furniture(), 1)
	})

	s.Run("unknown type uses fallback height", func() {
		item, err := s.layout.PlaceFurniture("hover-board", models.Point{X: 1, Y: 2},
			layout.WithRotation(models.Vec3{0, 1.5, 0}), layout.WithColor("#123456"), layout.WithScale(models.Vec3{2, 2, 2}))
		s.Require().NoError(err)
		s.Equal(models.Vec3{1, furniture.DefaultHeight, 2}, item.Position)
		s.Equal(models.Vec3{0, 1.5, 0}, item.Rotation)
		s.Equal("#123456", item.Color)
		s.Require().NotNil(item.Scale)
		s.Equal(models.Vec3{2, 2, 2}, *item.Scale)
	})
}

func (s *LayoutTestSuite) TestPlaceFurnitureFirstRoomWins() {
	first, err := s.layout.CreateRoom(square(0, 0, 10, 10), layout.WithRoomID("first"))
	s.Require().NoError(err)
	_, err = s.layout.CreateRoom(square(5, 5, 15, 15), layout.WithRoomID("second"))
	s.Require().NoError(err)

	item, err := s.layout.PlaceFurniture("plant", models.Point{X: 7, Y: 7})
	s.Require().NoError(err)
	s.Equal(first.ID, item.RoomID)

	item, err = s.layout.PlaceFurniture("plant", models.Point{X: 12, Y: 12})
	s.Require().NoError(err)
	s.Equal("second", item.RoomID)
}

func (s *LayoutTestSuite) TestDeleteRoomCascades() {
	kitchen, err := s.layout.CreateRoom(square(0, 0, 10, 10))
	s.Require().NoError(err)
	bedroom, err := s.layout.CreateRoom(square(20, 0, 30, 10))
	s.Require().NoError(err)

	for _, p := range []models.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 25, Y: 5}, {X: 3, Y: 3}} {
		_, err := s.layout.PlaceFurniture("stove", p)
		s.Require().NoError(err)
	}
	s.Len(s.layout.FurnitureInRoom(kitchen.ID), 3)

	s.layout.DeleteRoom(kitchen.ID)

	_, ok := s.layout.Room(kitchen.ID)
	s.False(ok)
	s.Empty(s.layout.FurnitureInRoom(kitchen.ID))

	left := s.layout.Furniture()
	s.Require().Len(left, 1)
	s.Equal(bedroom.ID, left[0].RoomID)

	s.NotPanics(func() { s.layout.DeleteRoom("missing") })
	s.Len(s.layout.Rooms(), 1)
}

func (s *LayoutTestSuite) TestDeleteFurnitureIsIdempotent() {
	_, err := s.layout.CreateRoom(square(0, 0, 10, 10))
	s.Require().NoError(err)
	item, err := s.layout.PlaceFurniture("bed", models.Point{X: 5, Y: 5})
	s.Require().NoError(err)
	_, err = s.layout.PlaceFurniture("desk", models.Point{X: 6, Y: 6})
	s.Require().NoError(err)

	s.layout.DeleteFurniture(item.ID)
	s.Len(s.layout.Furniture(), 1)

	s.layout.DeleteFurniture(item.ID)
	s.layout.DeleteFurniture("never-existed")
	s.Len(s.layout.Furniture(), 1)
}

func (s *LayoutTestSuite) TestAddFurnitureRequiresRoom() {
	_, err := s.layout.AddFurniture(models.FurnitureItem{Type: "bed", RoomID: "ghost"})
	s.ErrorIs(err, layout.ErrRoomNotFound)

	_, err = s.layout.CreateRoom(square(0, 0, 4, 4), layout.WithRoomID("den"))
	s.Require().NoError(err)

	item, err := s.layout.AddFurniture(models.FurnitureItem{Type: "bed", RoomID: "den", Position: models.Vec3{1, 0.3, 1}})
	s.Require().NoError(err)
	s.NotEmpty(item.ID)
}

func (s *LayoutTestSuite) TestRoomAt() {
	_, err := s.layout.CreateRoom([]models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4}},
		layout.WithRoomID("ell"))
	s.Require().NoError(err)

	room, ok := s.layout.RoomAt(models.Point{X: 1, Y: 3})
	s.True(ok)
	s.Equal("ell", room.ID)

	_, ok = s.layout.RoomAt(models.Point{X: 3, Y: 3})
	s.False(ok)
}

func (s *LayoutTestSuite) TestSnapshotAndClear() {
	_, err := s.layout.CreateRoom(square(0, 0, 4, 4))
	s.Require().NoError(err)
	_, err = s.layout.PlaceFurniture("sink", models.Point{X: 1, Y: 1}, layout.WithScale(models.Vec3{1, 1, 1}))
	s.Require().NoError(err)

	snap := s.layout.Snapshot()
	s.Len(snap.Rooms, 1)
	s.Require().Len(snap.Furniture, 1)

	snap.Furniture[0].Scale[0] = 9
	s.Equal(1.0, s.layout.Furniture()[0].Scale[0])

	s.layout.Clear()
	s.Empty(s.layout.Rooms())
	s.Empty(s.layout.Furniture())
}

func TestLayoutSuite(t *testing.T) {
	suite.Run(t, new(LayoutTestSuite))
}

// ============================================================
// Draft
// ============================================================

type DraftTestSuite struct {
	suite.Suite
	layout *layout.Layout
	draft  *layout.Draft
}

func (s *DraftTestSuite) SetupTest() {
	s.layout = layout.New()
	s.draft = layout.NewDraft()
}

func (s *DraftTestSuite) TestFinishNeedsThreePoints() {
	s.False(s.draft.Drawing())
	s.Equal(1, s.draft.AddPoint(models.Point{X: 0, Y: 0}))
	s.Equal(2, s.draft.AddPoint(models.Point{X: 3, Y: 0}))
	s.True(s.draft.Drawing())
	s.False(s.draft.CanFinish())

	_, err := s.draft.Finish(s.layout)
	s.True(errors.Is(err, layout.ErrDraftIncomplete))
	s.Len(s.draft.Points(), 2)
	s.Empty(s.layout.Rooms())
}

func (s *DraftTestSuite) TestFinishCreatesExactlyOneRoom() {
	s.draft.AddPoint(models.Point{X: 0, Y: 0})
	s.draft.AddPoint(models.Point{X: 3, Y: 0})
	s.draft.AddPoint(models.Point{X: 0, Y: 4})
	s.True(s.draft.CanFinish())

	room, err := s.draft.Finish(s.layout, layout.WithName("Nook"))
	s.Require().NoError(err)
	s.Equal("Nook", room.Name)
	s.InDelta(6, room.Area, 1e-9)

	s.Len(s.layout.Rooms(), 1)
	s.Empty(s.draft.Points())
	s.False(s.draft.Drawing())
}

func (s *DraftTestSuite) TestReset() {
	s.draft.AddPoint(models.Point{X: 1, Y: 1})
	s.draft.Reset()
	s.Empty(s.draft.Points())
	s.Empty(s.layout.Rooms())
}

func TestDraftSuite(t *testing.T) {
	suite.Run(t, new(DraftTestSuite))
}

// ============================================================
// Store and sample house
// ============================================================

func TestStore(t *testing.T) {
	store := layout.NewStore(layout.WithHeights(furniture.Builtin()))

	first := store.Create()
	second := store.Create()
	require.NotEqual(t, first.ID, second.ID)

	got, err := store.Get(first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Len(t, store.IDs(), 2)

	store.Delete(first.ID)
	store.Delete("unknown")
	_, err = store.Get(first.ID)
	assert.ErrorIs(t, err, layout.ErrLayoutNotFound)
}

func TestStoreCreateWithRegistersOnlyBuiltSessions(t *testing.T) {
	store := layout.NewStore(layout.WithHeights(furniture.Builtin()))

	var pendingID string
	session, err := store.CreateWith(func(s *layout.Session) error {
		pendingID = s.ID
		_, getErr := store.Get(s.ID)
		assert.ErrorIs(t, getErr, layout.ErrLayoutNotFound)
		return layout.SampleHouse(s.Layout)
	})
	require.NoError(t, err)
	assert.Equal(t, pendingID, session.ID)
	assert.Len(t, session.Layout.Rooms(), 8)

	got, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	failed := errors.New("template missing")
	var failedID string
	_, err = store.CreateWith(func(s *layout.Session) error {
		failedID = s.ID
		return failed
	})
	assert.ErrorIs(t, err, failed)
	_, err = store.Get(failedID)
	assert.ErrorIs(t, err, layout.ErrLayoutNotFound)
	assert.Equal(t, []string{session.ID}, store.IDs())
}

type SampleHouseTestSuite struct {
	suite.Suite
}

func (s *SampleHouseTestSuite) TestBuildsFurnishedHouse() {
	l := layout.New(layout.WithHeights(furniture.Builtin()))
	_, err := l.CreateRoom(square(100, 100, 101, 101))
	s.Require().NoError(err)

	s.Require().NoError(layout.SampleHouse(l))

	rooms := l.Rooms()
	s.Len(rooms, 8)
	s.Len(l.Furniture(), 22)

	living, ok := l.Room("living-room")
	s.Require().True(ok)
	s.InDelta(169, living.Area, 1e-9)
	s.Equal(models.Point{X: 1.5, Y: 1.5}, living.Center)
	s.Len(l.FurnitureInRoom("living-room"), 5)
	s.Len(l.FurnitureInRoom("garage"), 2)
}

func (s *SampleHouseTestSuite) TestFurnitureSitsInsideItsRoom() {
	l := layout.New()
	s.Require().NoError(layout.SampleHouse(l))

	for _, item := range l.Furniture() {
		room, ok := l.RoomAt(models.Point{X: item.Position[0], Y: item.Position[2]})
		s.True(ok, item.ID)
		s.Equal(item.RoomID, room.ID, item.ID)
	}
}

func TestSampleHouseSuite(t *testing.T) {
	suite.Run(t, new(SampleHouseTestSuite))
}
