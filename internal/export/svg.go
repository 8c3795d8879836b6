package export

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/render"
)

// SVG is a render.Surface that builds an SVG document in memory.
type SVG struct {
	width, height float64
	background    string
	body          strings.Builder
}

func NewSVG(bounds dynamo.Bounds) *SVG {
	return &SVG{width: bounds.Width, height: bounds.Height, background: "#ffffff"}
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) Clear() { s.body.Reset() }

func (s *SVG) FillCircle(c dynamo.Vec2, r float64, col dynamo.Color) {
	s.body.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, c.X, c.Y, r, html.EscapeString(string(col))))
}

// String returns the complete document for the last frame.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s" stroke="#000000"/>
`, s.width, s.height, s.width, s.height, s.background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}

var _ render.Surface = (*SVG)(nil)

// TrajectoryToSVG draws the path of each ball over a run on top of its
// final position.
func TrajectoryToSVG(paths [][]dynamo.Vec2, final dynamo.Balls, bounds dynamo.Bounds) string {
	svg := NewSVG(bounds)
	render.Frame(svg, final)

	var sb strings.Builder
	for i, path := range paths {
		if len(path) < 2 {
			continue
		}
		color := dynamo.Color("#888888")
		if i < len(final) {
			color = final[i].Color
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.4" stroke-width="1.5" d="M`, html.EscapeString(string(color))))
		for j, p := range path {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}
	svg.body.WriteString(sb.String())
	return svg.String()
}

// PathRecorder is a dynamo.Observer that collects per-ball positions.
type PathRecorder struct {
	Every int
	Paths [][]dynamo.Vec2
}

func NewPathRecorder(every int) *PathRecorder {
	if every <= 0 {
		every = 1
	}
	return &PathRecorder{Every: every}
}

func (p *PathRecorder) OnStep(balls dynamo.Balls, tick int) {
	if tick%p.Every != 0 {
		return
	}
	if p.Paths == nil {
		p.Paths = make([][]dynamo.Vec2, len(balls))
	}
	for i, b := range balls {
		p.Paths[i] = append(p.Paths[i], b.Pos)
	}
}
