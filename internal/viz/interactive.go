package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/sim"
)

var presetInfo = map[string]string{
	"billiards": "three balls, classic layout",
	"calm":      "classic layout at rest",
	"cluster":   "four overlapping balls",
	"field":     "40 balls on a noise field",
	"crowd":     "120 small balls",
}

const (
	stateMenu = iota
	stateSim
)

// App is a preset picker that hands off to a live Model.
type App struct {
	state   int
	cursor  int
	presets []string
	opts    Options
	err     error
	live    Model
}

func NewApp(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &App{
		state:   stateMenu,
		presets: config.ListPresets(),
		opts:    opts,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a, a.start(a.presets[a.cursor])
	}
	return a, nil
}

func (a *App) start(name string) tea.Cmd {
	cfg, err := config.GetPreset(name)
	if err != nil {
		a.err = err
		return nil
	}
	s, err := sim.NewFromConfig(cfg, a.opts.Logger)
	if err != nil {
		a.err = fmt.Errorf("start %s: %w", name, err)
		a.opts.Logger.Error("preset failed", zap.String("preset", name), zap.Error(err))
		return nil
	}
	opts := a.opts
	if opts.FPS <= 0 {
		opts.FPS = cfg.FPS
	}
	a.err = nil
	a.live = NewModel(s, name, opts)
	a.state = stateSim
	return a.live.Init()
}

func (a *App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}
	st := NewStyles(GetTheme(a.opts.Theme))
	var b strings.Builder
	b.WriteString("\n\n    " + st.Gradient("BALLSIM") +
		"\n    " + st.Muted.Render("bouncing balls with a color menu") +
		"\n    " + st.Rule(32) + "\n\n")
	for i, name := range a.presets {
		desc := presetInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				st.Value.Render("▸"),
				st.Title.Render(fmt.Sprintf("%-12s", name)),
				st.Paused.UnsetBold().Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				st.Muted.Render(fmt.Sprintf("  %-12s", name)),
				st.Hint.UnsetItalic().Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + st.Error.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + st.Hint.Render("j/k navigate  enter start  q quit") + "\n")
	return b.String()
}
