package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"home-designer/internal/designer/models"
)

// ============================================================
// Furniture queries
// ============================================================

type SortOrder string

const (
	SortDefault    SortOrder = ""
	SortName       SortOrder = "name"
	SortRating     SortOrder = "rating"
	SortPopularity SortOrder = "popularity"
)

// All - значение фильтра «любая категория».
const All = "all"

type Filter struct {
	Category    string
	Subcategory string
	Query       string
	Sort        SortOrder
}

func ParseSort(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortDefault:
		return SortDefault, nil
	case SortName:
		return SortName, nil
	case SortRating:
		return SortRating, nil
	case SortPopularity:
		return SortPopularity, nil
	}
	return SortDefault, fmt.Errorf("unknown sort %q", s)
}

// Search фильтрует по категории и подкатегории (пусто или "all" - любая)
// и ищет подстроку без учёта регистра в имени или любом теге.
func (r *Repository) Search(ctx context.Context, f Filter) ([]models.CatalogEntry, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.search")
	defer span.End()

	var (
		where []string
		args  []any
	)
	if f.Category != "" && f.Category != All {
		where = append(where, "f.category = ?")
		args = append(args, f.Category)
	}
	if f.Subcategory != "" && f.Subcategory != All {
		where = append(where, "f.subcategory = ?")
		args = append(args, f.Subcategory)
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		where = append(where, `(instr(lower(f.name), ?) > 0 OR EXISTS (
            SELECT 1 FROM furniture_tags t WHERE t.furniture_id = f.id AND instr(lower(t.tag), ?) > 0))`)
		args = append(args, q, q)
	}

	query := `SELECT f.id, f.name, f.category, f.subcategory, f.style, f.rating, f.popularity, f.width, f.height, f.depth
        FROM furniture f`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy(f.Sort)

	entries, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, traceErr(span, err)
	}

	span.SetAttributes(
		attribute.String("catalog.category", f.Category),
		attribute.String("catalog.query", f.Query),
		attribute.Int("catalog.results", len(entries)),
	)
	return entries, nil
}

func orderBy(s SortOrder) string {
	switch s {
	case SortName:
		return "f.name COLLATE NOCASE ASC, f.position ASC"
	case SortRating:
		return "f.rating DESC, f.position ASC"
	case SortPopularity:
		return "f.popularity DESC, f.position ASC"
	}
	return "f.position ASC"
}

func (r *Repository) Get(ctx context.Context, id string) (*models.CatalogEntry, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.get")
	defer span.End()

	entries, err := r.queryEntries(ctx, `
        SELECT f.id, f.name, f.category, f.subcategory, f.style, f.rating, f.popularity, f.width, f.height, f.depth
        FROM furniture f
        WHERE f.id = ?
    `, id)
	if err != nil {
		return nil, traceErr(span, err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

func (r *Repository) queryEntries(ctx context.Context, query string, args ...any) ([]models.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// соединение одно: курсор закрывается до запросов тегов
	entries := []models.CatalogEntry{}
	for rows.Next() {
		var e models.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Subcategory, &e.Style, &e.Rating, &e.Popularity,
			&e.Dimensions.Width, &e.Dimensions.Height, &e.Dimensions.Depth); err != nil {
			rows.Close()
			return nil, err
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		tags, err := r.tags(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Tags = tags
	}
	return entries, nil
}

func (r *Repository) tags(ctx context.Context, id string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag FROM furniture_tags WHERE furniture_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ============================================================
// Categories
// ============================================================

// Categories возвращает категории в исходном порядке с числом предметов.
func (r *Repository) Categories(ctx context.Context) ([]models.Category, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.categories")
	defer span.End()

	rows, err := r.db.QueryContext(ctx, `
        SELECT c.id, c.name, COUNT(f.id)
        FROM categories c
        LEFT JOIN furniture f ON f.category = c.id
        GROUP BY c.id, c.name, c.position
        ORDER BY c.position
    `)
	if err != nil {
		return nil, traceErr(span, err)
	}

	out := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Count); err != nil {
			rows.Close()
			return nil, traceErr(span, err)
		}
		out = append(out, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, traceErr(span, err)
	}

	for i := range out {
		subs, err := r.subcategories(ctx, out[i].ID)
		if err != nil {
			return nil, traceErr(span, err)
		}
		out[i].Subcategories = subs
	}
	return out, nil
}

func (r *Repository) subcategories(ctx context.Context, categoryID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT subcategory FROM category_subcategories WHERE category_id = ? ORDER BY position`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// ============================================================
// Templates
// ============================================================

// Templates - шаблоны проектов; category "" или "all" возвращает все.
func (r *Repository) Templates(ctx context.Context, category string) ([]models.ProjectTemplate, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.templates")
	defer span.End()

	query := `SELECT id, title, description, category, style, room_type, room_width, room_depth FROM templates`
	var args []any
	if category != "" && category != All {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY position"

	templates, err := r.queryTemplates(ctx, query, args...)
	if err != nil {
		return nil, traceErr(span, err)
	}
	return templates, nil
}

func (r *Repository) Template(ctx context.Context, id string) (*models.ProjectTemplate, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.template")
	defer span.End()

	templates, err := r.queryTemplates(ctx,
		`SELECT id, title, description, category, style, room_type, room_width, room_depth FROM templates WHERE id = ?`, id)
	if err != nil {
		return nil, traceErr(span, err)
	}
	if len(templates) == 0 {
		return nil, ErrNotFound
	}
	return &templates[0], nil
}

func (r *Repository) queryTemplates(ctx context.Context, query string, args ...any) ([]models.ProjectTemplate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	out := []models.ProjectTemplate{}
	for rows.Next() {
		var (
			t        models.ProjectTemplate
			roomType string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Style,
			&roomType, &t.Room.Width, &t.Room.Depth); err != nil {
			rows.Close()
			return nil, err
		}
		t.Room.Type = models.RoomType(roomType)
		out = append(out, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.templateFurniture(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Room.Furniture = items
	}
	return out, nil
}

func (r *Repository) templateFurniture(ctx context.Context, templateID string) ([]models.TemplateFurniture, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT type, offset_x, offset_y, rotation, color
        FROM template_furniture
        WHERE template_id = ?
        ORDER BY position
    `, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.TemplateFurniture{}
	for rows.Next() {
		var f models.TemplateFurniture
		if err := rows.Scan(&f.Type, &f.OffsetX, &f.OffsetY, &f.Rotation, &f.Color); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// IsNotFound - удобная проверка для хендлеров.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
