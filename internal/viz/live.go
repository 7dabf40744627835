package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinetype/internal/script"
	"github.com/san-kum/kinetype/internal/session"
)

const (
	frameInterval  = 16 * time.Millisecond
	panelWidth     = 34
	energyCapacity = 120
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(panelWidth - 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Italic(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a session from the terminal: a tick per frame, the mouse
// grabs and throws letters, keys trigger scatter, reset and visibility.
type Model struct {
	sess     *session.Session
	renderer *Renderer
	theme    Theme
	player   *script.Player
	title    string

	snap     session.Snapshot
	energy   []float64
	pressed  bool
	showHelp bool
	err      error
}

type Option func(*Model)

func WithTheme(name string) Option {
	return func(m *Model) { m.theme = GetTheme(name) }
}

// WithPlayer replays a script alongside the user's input.
func WithPlayer(p *script.Player) Option {
	return func(m *Model) { m.player = p }
}

func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// NewModel wraps sess and asks it to show. The session gets its viewport
// from the first window size message.
func NewModel(sess *session.Session, opts ...Option) Model {
	m := Model{
		sess:     sess,
		renderer: NewRenderer(80, 24),
		theme:    ThemePaper,
		title:    "kinetype",
		energy:   make([]float64, 0, energyCapacity),
	}
	for _, opt := range opts {
		opt(&m)
	}
	sess.Show()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.sess.Scatter()
		case "r":
			m.sess.Reset()
		case "v":
			if f := m.sess.Fade(); f == session.FadeEntering || f == session.FadeVisible {
				m.sess.Hide()
			} else {
				m.sess.Show()
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	cols := max(width-panelWidth-2, 10)
	rows := max(height, 6)
	m.renderer = NewRenderer(cols, rows)
	w, h := m.renderer.Viewport()
	if err := m.sess.Resize(w, h); err != nil {
		m.err = err
	}
}

func (m *Model) mouse(msg tea.MouseMsg) {
	// canvasStyle pads one column on the left
	x, y := m.renderer.CellCenter(msg.X-1, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.pressed = true
			m.sess.Grab(x, y)
		}
	case tea.MouseActionMotion:
		if m.pressed {
			m.sess.Drag(x, y)
		} else {
			m.sess.Hover(x, y)
		}
	case tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			m.sess.Release()
		}
	}
}

func (m *Model) step() {
	if m.player != nil {
		if err := m.player.Advance(m.sess); err != nil {
			m.err = err
			m.player = nil
		}
	}
	if _, err := m.sess.Tick(); err != nil {
		m.err = err
		return
	}
	m.snap = m.sess.Snapshot()

	ke := 0.0
	for _, l := range m.snap.Letters {
		ke += 0.5 * (l.VX*l.VX + l.VY*l.VY)
	}
	if len(m.energy) == energyCapacity {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:energyCapacity-1]
	}
	m.energy = append(m.energy, ke)
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.renderer.Render(m.snap, m.theme))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(labelStyle.Render("State") + valueStyle.Render(m.snap.Fade.String()) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.snap.Frame)) + "\n")
	s.WriteString(labelStyle.Render("Font") + valueStyle.Render(fmt.Sprintf("%.1f", m.snap.FontSize)) + "\n")

	active := 0
	for _, l := range m.snap.Letters {
		if l.Active {
			active++
		}
	}
	s.WriteString(labelStyle.Render("Moving") + valueStyle.Render(fmt.Sprintf("%d/%d", active, len(m.snap.Letters))) + "\n")
	s.WriteString(labelStyle.Render("Dust") + valueStyle.Render(fmt.Sprintf("%d", len(m.snap.Dust))) + "\n")
	s.WriteString(labelStyle.Render("Sparks") + valueStyle.Render(fmt.Sprintf("%d", len(m.snap.Sparks))) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n")

	if m.snap.AtRest && m.snap.Fade == session.FadeVisible {
		s.WriteString("\n" + hintStyle.Render("drag me") + "\n")
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(panelWidth-10), asciigraph.Caption("kinetic energy"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Scatter R:Reset V:Show/Hide\nT:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Drag a letter and throw  ║
║  Space    - Scatter the letters      ║
║  R        - Send letters home        ║
║  V        - Show / hide the name     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the live view on the alternate screen and blocks until quit.
func Run(sess *session.Session, opts ...Option) error {
	p := tea.NewProgram(NewModel(sess, opts...), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
