package models

import "strings"

// ============================================================
// Geometry primitives
// ============================================================

// Point - точка плана этажа. X/Y в единицах плана (футы или метры, как решит клиент).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 - тройка координат сцены. Y - высота, X/Z соответствуют X/Y плана.
type Vec3 [3]float64

// ============================================================
// Rooms
// ============================================================

type RoomType string

const (
	RoomLiving   RoomType = "living"
	RoomKitchen  RoomType = "kitchen"
	RoomBedroom  RoomType = "bedroom"
	RoomBathroom RoomType = "bathroom"
	RoomOffice   RoomType = "office"
	RoomDining   RoomType = "dining"
	RoomGarage   RoomType = "garage"
)

var roomTypes = []RoomType{
	RoomLiving, RoomKitchen, RoomBedroom, RoomBathroom, RoomOffice, RoomDining, RoomGarage,
}

// RoomTypes возвращает фиксированный список категорий комнат.
func RoomTypes() []RoomType {
	out := make([]RoomType, len(roomTypes))
	copy(out, roomTypes)
	return out
}

// ParseRoomType проверяет строку по перечислению. Пустая строка не валидна.
func ParseRoomType(s string) (RoomType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range roomTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Room - комната: многоугольник в порядке обхода плюс производные центр и площадь.
// Center и Area всегда считаются вместе из Points (см. layout.Layout).
type Room struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Points []Point  `json:"points"`
	Center Point    `json:"center"`
	Area   float64  `json:"area"`
	Type   RoomType `json:"type"`
}

// ============================================================
// Furniture
// ============================================================

// FurnitureItem - размещённый предмет. RoomID - слабая ссылка, только для поиска.
type FurnitureItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
	RoomID   string `json:"roomId"`
	Color    string `json:"color,omitempty"`
	Scale    *Vec3  `json:"scale,omitempty"`
}

// ============================================================
// Catalog (read-only reference data)
// ============================================================

type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Depth  float64 `json:"depth" yaml:"depth"`
}

type CatalogEntry struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Category    string     `json:"category" yaml:"category"`
	Subcategory string     `json:"subcategory" yaml:"subcategory"`
	Style       string     `json:"style" yaml:"style"`
	Rating      float64    `json:"rating" yaml:"rating"`
	Popularity  int        `json:"popularity" yaml:"popularity"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Dimensions  Dimensions `json:"dimensions" yaml:"dimensions"`
}

type Category struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Subcategories []string `json:"subcategories" yaml:"subcategories"`
	Count         int      `json:"count" yaml:"-"`
}

// TemplateFurniture - предмет стартовой комнаты шаблона, смещение от центра комнаты.
type TemplateFurniture struct {
	Type     string  `json:"type" yaml:"type"`
	OffsetX  float64 `json:"offset_x" yaml:"offset_x"`
	OffsetY  float64 `json:"offset_y" yaml:"offset_y"`
	Rotation float64 `json:"rotation,omitempty" yaml:"rotation"`
	Color    string  `json:"color,omitempty" yaml:"color"`
}

type TemplateRoom struct {
	Type      RoomType            `json:"type" yaml:"type"`
	Width     float64             `json:"width" yaml:"width"`
	Depth     float64             `json:"depth" yaml:"depth"`
	Furniture []TemplateFurniture `json:"furniture" yaml:"furniture"`
}

type ProjectTemplate struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Category    string       `json:"category" yaml:"category"`
	Style       string       `json:"style" yaml:"style"`
	Room        TemplateRoom `json:"room" yaml:"room"`
}
