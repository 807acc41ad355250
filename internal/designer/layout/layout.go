package layout

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"home-designer/internal/designer/geometry"
	"home-designer/internal/designer/models"
)

// ============================================================
// Layout
// ============================================================

// HeightResolver отдаёт высоту установки предмета по его типу.
type HeightResolver interface {
	PlacementHeight(furnitureType string) float64
}

// IDGenerator выдаёт новый уникальный идентификатор с префиксом.
type IDGenerator func(prefix string) string

// NewID - генератор по умолчанию: prefix-<uuid>.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// defaultHeight - высота установки, когда реестр не подключён.
const defaultHeight = 0.5

// Layout владеет списками комнат и мебели. Все изменения идут только через методы,
// каждая операция выполняется целиком под мьютексом.
type Layout struct {
	mu        sync.RWMutex
	rooms     []models.Room
	furniture []models.FurnitureItem
	heights   HeightResolver
	newID     IDGenerator
}

type Option func(*Layout)

func WithHeights(h HeightResolver) Option {
	return func(l *Layout) { l.heights = h }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(l *Layout) { l.newID = g }
}

func New(opts ...Option) *Layout {
	l := &Layout{newID: NewID}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Snapshot - копия состояния, безопасная для чтения вне мьютекса.
type Snapshot struct {
	Rooms     []models.Room          `json:"rooms"`
	Furniture []models.FurnitureItem `json:"furniture"`
}

// ============================================================
// Rooms
// ============================================================

type roomSpec struct {
	id       string
	name     string
	roomType models.RoomType
}

type RoomOption func(*roomSpec)

func WithRoomID(id string) RoomOption {
	return func(s *roomSpec) { s.id = id }
}

func WithName(name string) RoomOption {
	return func(s *roomSpec) { s.name = name }
}

func WithType(t models.RoomType) RoomOption {
	return func(s *roomSpec) { s.roomType = t }
}

// CreateRoom фиксирует новую комнату. Порядок обхода точек сохраняется как есть:
// по нему строятся стены и их внешние нормали. Самопересечения не проверяются.
func (l *Layout) CreateRoom(points []models.Point, opts ...RoomOption) (models.Room, error) {
	if len(points) < 3 {
		return models.Room{}, ErrInsufficientPoints
	}

	var spec roomSpec
	for _, opt := range opts {
		opt(&spec)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if spec.id == "" {
		spec.id = l.newID("room")
	} else if l.roomIndex(spec.id) >= 0 {
		return models.Room{}, fmt.Errorf("create room %q: %w", spec.id, ErrRoomExists)
	}
	if spec.name == "" {
		spec.name = fmt.Sprintf("Room %d", len(l.rooms)+1)
	}
	if spec.roomType == "" {
		spec.roomType = models.RoomLiving
	}

	room := buildRoom(spec.id, spec.name, spec.roomType, points)
	l.rooms = append(l.rooms, room)
	return cloneRoom(room), nil
}

// ReplaceRoom заменяет комнату целиком, сохраняя id и позицию в списке.
// Имя и тип остаются прежними, если не переданы. Мебель не трогается.
func (l *Layout) ReplaceRoom(id string, points []models.Point, opts ...RoomOption) (models.Room, error) {
	if len(points) < 3 {
		return models.Room{}, ErrInsufficientPoints
	}

	var spec roomSpec
	for _, opt := range opts {
		opt(&spec)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.roomIndex(id)
	if idx < 0 {
		return models.Room{}, fmt.Errorf("replace room %q: %w", id, ErrRoomNotFound)
	}

	current := l.rooms[idx]
	if spec.name == "" {
		spec.name = current.Name
	}
	if spec.roomType == "" {
		spec.roomType = current.Type
	}

	room := buildRoom(id, spec.name, spec.roomType, points)
	l.rooms[idx] = room
	return cloneRoom(room), nil
}

// DeleteRoom удаляет комнату и всю мебель, ссылающуюся на неё.
// Отсутствующий id - не ошибка.
func (l *Layout) DeleteRoom(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.roomIndex(id)
	if idx < 0 {
		return
	}
	l.rooms = append(l.rooms[:idx], l.rooms[idx+1:]...)

	kept := l.furniture[:0]
	for _, item := range l.furniture {
		if item.RoomID != id {
			kept = append(kept, item)
		}
	}
	// хвост обнуляется: в нём остались указатели Scale
	for i := len(kept); i < len(l.furniture); i++ {
		l.furniture[i] = models.FurnitureItem{}
	}
	l.furniture = kept
}

func (l *Layout) Room(id string) (models.Room, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx := l.roomIndex(id)
	if idx < 0 {
		return models.Room{}, false
	}
	return cloneRoom(l.rooms[idx]), true
}

// RoomAt возвращает первую по порядку комнату, содержащую точку.
// Комнаты не должны перекрываться, иначе результат зависит от порядка.
func (l *Layout) RoomAt(p models.Point) (models.Room, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	room := l.roomAt(p)
	if room == nil {
		return models.Room{}, false
	}
	return cloneRoom(*room), true
}

func (l *Layout) Rooms() []models.Room {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Room, len(l.rooms))
	for i, r := range l.rooms {
		out[i] = cloneRoom(r)
	}
	return out
}

// ============================================================
// Furniture
// ============================================================

type placeSpec struct {
	id       string
	rotation models.Vec3
	color    string
	scale    *models.Vec3
}

type PlaceOption func(*placeSpec)

func WithFurnitureID(id string) PlaceOption {
	return func(s *placeSpec) { s.id = id }
}

// WithRotation задаёт углы Эйлера в радианах (порядок XYZ).
func WithRotation(r models.Vec3) PlaceOption {
	return func(s *placeSpec) { s.rotation = r }
}

func WithColor(color string) PlaceOption {
	return func(s *placeSpec) { s.color = color }
}

func WithScale(scale models.Vec3) PlaceOption {
	return func(s *placeSpec) { s.scale = &scale }
}

// PlaceFurniture ставит предмет в точку плана. Комната-владелец определяется
// тестом точки в многоугольнике, первая подходящая побеждает. Вне комнат
// предмет не создаётся.
func (l *Layout) PlaceFurniture(furnitureType string, at models.Point, opts ...PlaceOption) (models.FurnitureItem, error) {
	var spec placeSpec
	for _, opt := range opts {
		opt(&spec)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	room := l.roomAt(at)
	if room == nil {
		return models.FurnitureItem{}, ErrNoOwningRoom
	}

	if spec.id == "" {
		spec.id = l.newID("furniture")
	}

	item := models.FurnitureItem{
		ID:       spec.id,
		Type:     furnitureType,
		Position: models.Vec3{at.X, l.placementHeight(furnitureType), at.Y},
		Rotation: spec.rotation,
		RoomID:   room.ID,
		Color:    spec.color,
		Scale:    spec.scale,
	}
	l.furniture = append(l.furniture, item)
	return cloneItem(item), nil
}

// AddFurniture добавляет уже спозиционированный предмет (шаблоны, демо-дом).
// RoomID обязан ссылаться на существующую комнату.
func (l *Layout) AddFurniture(item models.FurnitureItem) (models.FurnitureItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.roomIndex(item.RoomID) < 0 {
		return models.FurnitureItem{}, fmt.Errorf("add furniture to room %q: %w", item.RoomID, ErrRoomNotFound)
	}
	if item.ID == "" {
		item.ID = l.newID("furniture")
	}

	item = cloneItem(item)
	l.furniture = append(l.furniture, item)
	return cloneItem(item), nil
}

// DeleteFurniture удаляет один предмет. Отсутствующий id - не ошибка.
func (l *Layout) DeleteFurniture(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, item := range l.furniture {
		if item.ID == id {
			l.furniture = append(l.furniture[:i], l.furniture[i+1:]...)
			return
		}
	}
}

func (l *Layout) Furniture() []models.FurnitureItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return cloneItems(l.furniture, func(models.FurnitureItem) bool { return true })
}

// FurnitureInRoom - обратный поиск по слабой ссылке RoomID.
func (l *Layout) FurnitureInRoom(roomID string) []models.FurnitureItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return cloneItems(l.furniture, func(item models.FurnitureItem) bool { return item.RoomID == roomID })
}

// ============================================================
// Whole-layout operations
// ============================================================

func (l *Layout) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rooms = nil
	l.furniture = nil
}

func (l *Layout) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := Snapshot{
		Rooms:     make([]models.Room, len(l.rooms)),
		Furniture: cloneItems(l.furniture, func(models.FurnitureItem) bool { return true }),
	}
	for i, r := range l.rooms {
		snap.Rooms[i] = cloneRoom(r)
	}
	return snap
}

// ============================================================
// Internal helpers (вызываются под мьютексом)
// ============================================================

func (l *Layout) roomIndex(id string) int {
	for i := range l.rooms {
		if l.rooms[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Layout) roomAt(p models.Point) *models.Room {
	for i := range l.rooms {
		if geometry.PointInPolygon(p, l.rooms[i].Points) {
			return &l.rooms[i]
		}
	}
	return nil
}

func (l *Layout) placementHeight(furnitureType string) float64 {
	if l.heights == nil {
		return defaultHeight
	}
	return l.heights.PlacementHeight(furnitureType)
}

// buildRoom - единственное место, где считаются центр и площадь.
func buildRoom(id, name string, roomType models.RoomType, points []models.Point) models.Room {
	pts := make([]models.Point, len(points))
	copy(pts, points)

	return models.Room{
		ID:     id,
		Name:   name,
		Points: pts,
		Center: geometry.PolygonCentroid(pts),
		Area:   geometry.PolygonArea(pts),
		Type:   roomType,
	}
}

func cloneRoom(r models.Room) models.Room {
	pts := make([]models.Point, len(r.Points))
	copy(pts, r.Points)
	r.Points = pts
	return r
}

func cloneItem(item models.FurnitureItem) models.FurnitureItem {
	if item.Scale != nil {
		s := *item.Scale
		item.Scale = &s
	}
	return item
}

func cloneItems(items []models.FurnitureItem, keep func(models.FurnitureItem) bool) []models.FurnitureItem {
	out := make([]models.FurnitureItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, cloneItem(item))
		}
	}
	return out
}
