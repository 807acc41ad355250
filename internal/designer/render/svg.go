package render

import (
	"encoding/xml"
	"fmt"
	"strings"

	"home-designer/internal/designer/furniture"
	"home-designer/internal/designer/layout"
	"home-designer/internal/designer/models"
)

// ============================================================
// SVG renderer
// ============================================================

// SVG рисует план в единицах раскладки: viewBox совпадает с рамкой плана.
// Пустая раскладка даёт пустой холст 1×1.
func SVG(snap layout.Snapshot, registry *furniture.Registry) string {
	p := buildPlan(snap, registry)

	minX, minY, width, height := 0.0, 0.0, 1.0, 1.0
	if !p.empty {
		minX, minY = p.bounds.MinX, p.bounds.MinY
		width, height = p.bounds.Width(), p.bounds.Height()
	}

	var elements []string
	for _, r := range p.rooms {
		elements = append(elements, renderRoom(r))
	}
	for _, it := range p.items {
		elements = append(elements, pathElement(it.id, it.corners,
			fmt.Sprintf(`fill="%s" fill-opacity="0.85" stroke="%s" stroke-width="0.05" data-type="%s"`,
				it.fill, wallColor, escape(it.kind))))
	}
	for _, r := range p.rooms {
		elements = append(elements, fmt.Sprintf(`<text x="%s" y="%s" font-size="1" text-anchor="middle" fill="%s">%s</text>`,
			formatFloat(r.center.X), formatFloat(r.center.Y), labelColor, escape(r.name)))
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`,
		formatFloat(minX), formatFloat(minY), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" />`,
		formatFloat(minX), formatFloat(minY), formatFloat(width), formatFloat(height), canvasColor))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

func renderRoom(r roomShape) string {
	return pathElement(r.id, r.points,
		fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="0.2"`, r.fill, wallColor))
}

func pathElement(id string, points []models.Point, attrs string) string {
	var path strings.Builder
	path.WriteString(`<path id="`)
	path.WriteString(escape(id))
	path.WriteString(`" d="M `)
	path.WriteString(formatPoint(points[0]))
	for _, pt := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(pt))
	}
	path.WriteString(` Z" `)
	path.WriteString(attrs)
	path.WriteString(` />`)
	return path.String()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
