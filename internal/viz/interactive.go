package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/kinetype/internal/session"
)

const (
	stateMenu = iota
	stateLive
)

var (
	menuTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuItem    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuItemDim = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// Preset is one entry of the picker menu.
type Preset struct {
	Name        string
	Description string
}

// SessionFactory builds a session for the chosen preset.
type SessionFactory func(preset string) (*session.Session, error)

// App lets the user pick a preset and then runs the live view with it.
type App struct {
	state         int
	cursor        int
	presets       []Preset
	factory       SessionFactory
	opts          []Option
	width, height int
	live          Model
	sess          *session.Session
	err           error
}

func NewApp(presets []Preset, factory SessionFactory, opts ...Option) *App {
	return &App{
		state:   stateMenu,
		presets: presets,
		factory: factory,
		opts:    opts,
		width:   80,
		height:  24,
	}
}

// Session returns the session started from the menu, or nil.
func (a *App) Session() *session.Session { return a.sess }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateLive {
		if ws, ok := msg.(tea.WindowSizeMsg); ok {
			a.width, a.height = ws.Width, ws.Height
		}
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
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
			return a, a.start()
		}
	}
	return a, nil
}

func (a *App) start() tea.Cmd {
	if len(a.presets) == 0 {
		return nil
	}
	name := a.presets[a.cursor].Name
	sess, err := a.factory(name)
	if err != nil {
		a.err = err
		return nil
	}

	a.sess = sess
	opts := append([]Option{WithTitle(name)}, a.opts...)
	a.live = NewModel(sess, opts...)
	a.live.resize(a.width, a.height)
	a.state = stateLive
	return a.live.Init()
}

func (a *App) View() string {
	if a.state == stateLive {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("KINETYPE") + "\n    " + menuSub.Render("letters that fall, bounce and come home") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, p := range a.presets {
		desc := p.Description
		if len(desc) > 32 {
			desc = desc[:29] + "..."
		}
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", p.Name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuItem.Render(fmt.Sprintf("  %-10s", p.Name)), menuItemDim.Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + errorStyle.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuSub.Render(" navigate  ") + menuKey.Render("enter") + menuSub.Render(" start  ") + menuKey.Render("q") + menuSub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset picker and blocks until quit. The session
// it started, if any, is closed before returning.
func RunInteractive(presets []Preset, factory SessionFactory, opts ...Option) error {
	app := NewApp(presets, factory, opts...)
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if s := app.Session(); s != nil {
		s.Close()
	}
	return err
}
