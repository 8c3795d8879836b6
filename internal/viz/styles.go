package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas offset inside the rendered view, needed to map mouse cells back.
const (
	canvasPadTop  = 1
	canvasPadLeft = 2
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(canvasPadTop, canvasPadLeft)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
)

var levelGlyphs = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Styles is the side panel's look under one theme. Rebuild it when the
// theme changes.
type Styles struct {
	theme   Theme
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
	high    lipgloss.Style
	mid     lipgloss.Style
	low     lipgloss.Style
}

func NewStyles(t Theme) Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Styles{
		theme:   t,
		Title:   fg(t.Primary).Bold(true),
		Muted:   fg(t.Muted),
		Running: fg(t.Green).Bold(true),
		Paused:  fg(t.Accent).Bold(true),
		Label:   fg(t.Muted).Width(12),
		Value:   fg(t.Secondary).Bold(true),
		Hint:    fg(t.Muted).Italic(true),
		Error:   fg(t.Red),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(44),
		high: fg(t.Green),
		mid:  fg(t.Accent),
		low:  fg(t.Red),
	}
}

func (st Styles) level(frac float64) lipgloss.Style {
	switch {
	case frac > 0.8:
		return st.high
	case frac > 0.4:
		return st.mid
	}
	return st.low
}

// Bar renders a fraction in [0,1], colored by how full it is.
func (st Styles) Bar(frac float64, width int) string {
	filled := max(0, min(int(frac*float64(width)), width))
	return st.level(frac).Render(strings.Repeat("█", filled) + strings.Repeat("░", width-filled))
}

// Spark renders the last width values scaled to their own range.
func (st Styles) Spark(values []float64, width int) string {
	if len(values) == 0 {
		return st.Muted.Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var out strings.Builder
	top := len(levelGlyphs) - 1
	for _, v := range values {
		norm := (v - lo) / span
		g := levelGlyphs[max(0, min(int(norm*float64(top)), top))]
		out.WriteString(st.level(norm + 0.1).Render(string(g)))
	}
	return out.String()
}

func (st Styles) Rule(width int) string {
	half := width / 2
	return st.Muted.Render(strings.Repeat("─", max(half-3, 0)) + " ◆ " + strings.Repeat("─", max(width-half-3, 0)))
}

// Gradient colors text from the theme's primary to its secondary color.
func (st Styles) Gradient(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from := rgbOf(st.theme.Primary)
	to := rgbOf(st.theme.Secondary)

	var out strings.Builder
	for i, r := range runes {
		f := 0.0
		if len(runes) > 1 {
			f = float64(i) / float64(len(runes)-1)
		}
		var mixed rgb
		for k := range mixed {
			mixed[k] = from[k] + int(f*float64(to[k]-from[k]))
		}
		out.WriteString(lipgloss.NewStyle().Foreground(mixed.color()).Render(string(r)))
	}
	return out.String()
}

type rgb [3]int

// rgbOf reads a #rrggbb color; anything else is treated as white.
func rgbOf(c lipgloss.Color) rgb {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return rgb{255, 255, 255}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return rgb{255, 255, 255}
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

func (c rgb) color() lipgloss.Color {
	var sb strings.Builder
	sb.WriteByte('#')
	for _, v := range c {
		v = max(0, min(v, 255))
		sb.WriteString(strconv.FormatInt(int64(v>>4), 16))
		sb.WriteString(strconv.FormatInt(int64(v&0xf), 16))
	}
	return lipgloss.Color(sb.String())
}
