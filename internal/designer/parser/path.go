package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"home-designer/internal/designer/models"
)

// ============================================================
// Path Parser
// ============================================================

var pathCommand = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath разворачивает path data в вершины контура. Поддерживаются
// M, m, L, l, H, h, V, v, Z; кривые не поддерживаются. Замыкание
// не дублирует первую вершину, явный возврат в начало тоже отбрасывается.
func ParsePath(d string) ([]models.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}
	if unsupported := strings.IndexAny(d, "CcSsQqTtAa"); unsupported >= 0 {
		return nil, fmt.Errorf("unsupported path command %q", d[unsupported])
	}

	var points []models.Point
	var x, y float64

	for _, match := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords := parseCoords(match[2])

		switch cmd {
		case "M", "L":
			// лишние пары после M трактуются как L
			for i := 0; i+1 < len(coords); i += 2 {
				x, y = coords[i], coords[i+1]
				points = append(points, models.Point{X: x, Y: y})
			}

		case "m", "l":
			for i := 0; i+1 < len(coords); i += 2 {
				x += coords[i]
				y += coords[i+1]
				points = append(points, models.Point{X: x, Y: y})
			}

		case "H", "h":
			for _, c := range coords {
				if cmd == "H" {
					x = c
				} else {
					x += c
				}
				points = append(points, models.Point{X: x, Y: y})
			}

		case "V", "v":
			for _, c := range coords {
				if cmd == "V" {
					y = c
				} else {
					y += c
				}
				points = append(points, models.Point{X: x, Y: y})
			}

		case "Z", "z":
			if len(points) > 0 {
				x, y = points[0].X, points[0].Y
			}
		}
	}

	if n := len(points); n > 1 && points[0] == points[n-1] {
		points = points[:n-1]
	}
	return points, nil
}

// ParsePoints читает атрибут points у polygon/polyline.
func ParsePoints(s string) []models.Point {
	coords := parseCoords(s)

	points := make([]models.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, models.Point{X: coords[i], Y: coords[i+1]})
	}
	if n := len(points); n > 1 && points[0] == points[n-1] {
		points = points[:n-1]
	}
	return points
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, ",", " ")

	var coords []float64
	for _, part := range strings.Fields(s) {
		val, err := strconv.ParseFloat(part, 64)
		if err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}
