package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"home-designer/internal/common/telemetry"
	"home-designer/internal/designer/models"
)

//go:embed data/catalog.yaml
var seedYAML []byte

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	ErrNotFound = errors.New("catalog entry not found")
)

// ============================================================
// Seed document
// ============================================================

type Seed struct {
	Categories []models.Category        `yaml:"categories"`
	Furniture  []models.CatalogEntry    `yaml:"furniture"`
	Templates  []models.ProjectTemplate `yaml:"templates"`
}

// LoadSeed разбирает YAML каталога. Пустой ввод - встроенный каталог.
func LoadSeed(data []byte) (*Seed, error) {
	if len(data) == 0 {
		data = seedYAML
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	seen := make(map[string]bool, len(seed.Furniture))
	for _, f := range seed.Furniture {
		if f.ID == "" {
			return nil, fmt.Errorf("catalog entry without id")
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("duplicate catalog entry %q", f.ID)
		}
		seen[f.ID] = true
	}
	return &seed, nil
}

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// OpenMemory открывает приватную in-memory базу. Одно соединение:
// у каждого нового соединения с :memory: была бы своя пустая база.
func OpenMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, tracer: telemetry.Tracer("catalog")}
}

// Init применяет миграции и загружает seed.
func (r *Repository) Init(ctx context.Context, seed *Seed) error {
	ctx, span := r.tracer.Start(ctx, "catalog.init")
	defer span.End()

	if err := r.runMigrations(ctx); err != nil {
		return traceErr(span, fmt.Errorf("migrations: %w", err))
	}
	if err := r.load(ctx, seed); err != nil {
		return traceErr(span, fmt.Errorf("seed: %w", err))
	}

	span.SetAttributes(
		attribute.Int("catalog.furniture", len(seed.Furniture)),
		attribute.Int("catalog.templates", len(seed.Templates)),
	)
	return nil
}

// Open - in-memory база со встроенным каталогом.
func Open(ctx context.Context) (*Repository, error) {
	db, err := OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	seed, err := LoadSeed(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	repo := New(db)
	if err := repo.Init(ctx, seed); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping - проверка для readiness.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func (r *Repository) load(ctx context.Context, seed *Seed) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, c := range seed.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, position) VALUES (?, ?, ?)`,
			c.ID, c.Name, i); err != nil {
			return fmt.Errorf("insert category %s: %w", c.ID, err)
		}
		for j, sub := range c.Subcategories {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO category_subcategories (category_id, subcategory, position) VALUES (?, ?, ?)`,
				c.ID, sub, j); err != nil {
				return fmt.Errorf("insert subcategory %s/%s: %w", c.ID, sub, err)
			}
		}
	}

	for i, f := range seed.Furniture {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO furniture (id, name, category, subcategory, style, rating, popularity, width, height, depth, position)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, f.ID, f.Name, f.Category, f.Subcategory, f.Style, f.Rating, f.Popularity,
			f.Dimensions.Width, f.Dimensions.Height, f.Dimensions.Depth, i); err != nil {
			return fmt.Errorf("insert furniture %s: %w", f.ID, err)
		}
		for j, tag := range f.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO furniture_tags (furniture_id, tag, position) VALUES (?, ?, ?)`,
				f.ID, tag, j); err != nil {
				return fmt.Errorf("insert tag %s/%s: %w", f.ID, tag, err)
			}
		}
	}

	for i, t := range seed.Templates {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO templates (id, title, description, category, style, room_type, room_width, room_depth, position)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, t.ID, t.Title, t.Description, t.Category, t.Style, string(t.Room.Type), t.Room.Width, t.Room.Depth, i); err != nil {
			return fmt.Errorf("insert template %s: %w", t.ID, err)
		}
		for j, f := range t.Room.Furniture {
			if _, err := tx.ExecContext(ctx, `
                INSERT INTO template_furniture (template_id, position, type, offset_x, offset_y, rotation, color)
                VALUES (?, ?, ?, ?, ?, ?, ?)
            `, t.ID, j, f.Type, f.OffsetX, f.OffsetY, f.Rotation, f.Color); err != nil {
				return fmt.Errorf("insert template furniture %s/%d: %w", t.ID, j, err)
			}
		}
	}

	return tx.Commit()
}

func traceErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
