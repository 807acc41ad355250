package layout

import (
	"sync"

	"home-designer/internal/designer/models"
)

// ============================================================
// Draft (interactive drawing)
// ============================================================

// Draft накапливает точки рисуемой комнаты. В модель не входит:
// комната появляется только при Finish.
type Draft struct {
	mu     sync.Mutex
	points []models.Point
}

func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) AddPoint(p models.Point) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.points = append(d.points, p)
	return len(d.points)
}

func (d *Draft) Points() []models.Point {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]models.Point, len(d.points))
	copy(out, d.points)
	return out
}

// Drawing - true, пока есть хотя бы одна точка.
func (d *Draft) Drawing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.points) > 0
}

// CanFinish - завершение разрешено с трёх точек.
func (d *Draft) CanFinish() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.points) >= 3
}

// Finish делает ровно один CreateRoom и очищает черновик.
// При нехватке точек ничего не меняется.
func (d *Draft) Finish(l *Layout, opts ...RoomOption) (models.Room, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.points) < 3 {
		return models.Room{}, ErrDraftIncomplete
	}

	room, err := l.CreateRoom(d.points, opts...)
	if err != nil {
		return models.Room{}, err
	}
	d.points = nil
	return room, nil
}

func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.points = nil
}
