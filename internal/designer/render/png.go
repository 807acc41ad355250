package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"home-designer/internal/designer/furniture"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

// ============================================================
// PNG renderer
// ============================================================

const (
	DefaultPNGWidth  = 1024
	DefaultPNGHeight = 768
	MaxPNGSide       = 4096
)

// PNG растеризует тот же план, что и SVG. Подписи заменены точкой в центре
// комнаты: растровый контекст работает без загруженного шрифта.
func PNG(snap layout.Snapshot, registry *furniture.Registry, width, height int, w io.Writer) error {
	if width <= 0 || height <= 0 || width > MaxPNGSide || height > MaxPNGSide {
		return fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	p := buildPlan(snap, registry)
	project := p.fit(float64(width), float64(height))

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(canvasColor))

	for _, r := range p.rooms {
		tracePolygon(dc, project, r.points)
		dc.SetHexColor(r.fill)
		if err := dc.FillPreserve(); err != nil {
			return fmt.Errorf("fill room %s: %w", r.id, err)
		}
		dc.SetHexColor(wallColor)
		dc.SetLineWidth(2)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke room %s: %w", r.id, err)
		}
	}

	for _, it := range p.items {
		tracePolygon(dc, project, it.corners)
		dc.SetHexColor(it.fill)
		if err := dc.FillPreserve(); err != nil {
			return fmt.Errorf("fill furniture %s: %w", it.id, err)
		}
		dc.SetHexColor(wallColor)
		dc.SetLineWidth(1)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke furniture %s: %w", it.id, err)
		}
	}

	for _, r := range p.rooms {
		c := project(r.center)
		dc.DrawCircle(c.X, c.Y, 3)
		dc.SetHexColor(labelColor)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("mark room %s: %w", r.id, err)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func tracePolygon(dc *gg.Context, project func(models.Point) models.Point, points []models.Point) {
	if len(points) == 0 {
		return
	}
	start := project(points[0])
	dc.MoveTo(start.X, start.Y)
	for _, pt := range points[1:] {
		next := project(pt)
		dc.LineTo(next.X, next.Y)
	}
	dc.ClosePath()
}
