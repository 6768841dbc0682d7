package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/ticktype/internal/controller"
	"github.com/verte-zerg/ticktype/internal/model"
	"github.com/verte-zerg/ticktype/internal/session"
)

const visibleLineCount = 3

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	extraStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8071A"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	resultStyle      = lipgloss.NewStyle().
				Padding(0, 2).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
	resultValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

type tickMsg struct {
	at      time.Time
	session string
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctrl  *controller.Controller
	langs []string
	log   *logrus.Logger
	keys  keyMap
	help  help.Model

	width  int
	height int

	tickingFor string
	errMsg     string

	last    session.Result
	hasLast bool
}

// NewModel constructs a typing TUI model over a configured controller. langs
// lists the languages the language key cycles through.
func NewModel(ctrl *controller.Controller, langs []string, log *logrus.Logger) *Model {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Model{
		ctrl:  ctrl,
		langs: langs,
		log:   log,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// LastResult returns the most recent finished result.
func (m *Model) LastResult() (session.Result, bool) {
	return m.last, m.hasLast
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.reconfigure(m.ctrl.Lang(), m.ctrl.Seconds())
			return m, nil
		case key.Matches(msg, m.keys.Language):
			m.reconfigure(m.nextLang(), m.ctrl.Seconds())
			return m, nil
		case key.Matches(msg, m.keys.Duration):
			m.reconfigure(m.ctrl.Lang(), nextDuration(m.ctrl.Seconds()))
			return m, nil
		}
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.ctrl.HandleKey(session.BackspaceKey())
	case tea.KeySpace:
		m.ctrl.HandleKey(session.SpaceKey())
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r == ' ' {
				m.ctrl.HandleKey(session.SpaceKey())
				continue
			}
			m.ctrl.HandleKey(session.RuneKey(r))
		}
	default:
		return nil
	}
	m.captureResult()
	if m.ctrl.Phase() == session.PhaseRunning && m.tickingFor != m.ctrl.ID() {
		m.tickingFor = m.ctrl.ID()
		return tickCmd(m.tickingFor)
	}
	return nil
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.session != m.ctrl.ID() {
		return nil
	}
	if m.ctrl.HandleTick(msg.at) {
		m.captureResult()
		return nil
	}
	if m.ctrl.Phase() != session.PhaseRunning {
		return nil
	}
	return tickCmd(msg.session)
}

func tickCmd(id string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{at: t, session: id}
	})
}

func (m *Model) captureResult() {
	if res, ok := m.ctrl.Result(); ok {
		m.last = res
		m.hasLast = true
	}
}

func (m *Model) reconfigure(lang string, seconds int) {
	if err := m.ctrl.Configure(lang, seconds); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.tickingFor = ""
	m.log.WithFields(logrus.Fields{"lang": lang, "duration": seconds}).Debug("challenge reconfigured")
}

func (m *Model) nextLang() string {
	if len(m.langs) == 0 {
		return m.ctrl.Lang()
	}
	for i, lang := range m.langs {
		if lang == m.ctrl.Lang() {
			return m.langs[(i+1)%len(m.langs)]
		}
	}
	return m.langs[0]
}

func nextDuration(current int) int {
	for i, d := range model.Durations {
		if d == current {
			return model.Durations[(i+1)%len(model.Durations)]
		}
	}
	return model.Durations[0]
}

// View implements tea.Model.
func (m *Model) View() string {
	sess := m.ctrl.Session()
	if sess == nil {
		return ""
	}
	var content string
	if m.ctrl.Phase() == session.PhaseOver {
		content = m.renderResult()
	} else {
		content = m.renderText(sess)
	}
	if m.errMsg != "" {
		content = errorStyle.Render(m.errMsg) + "\n\n" + content
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderText(sess *session.Session) string {
	cur, ok := sess.Cursor()
	runes := buildStyledRunes(sess.Words(), cur, ok)
	if m.width == 0 {
		return renderStyledRunes(runes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	lines := visibleLines(wrapLines(runes, contentWidth), visibleLineCount)
	return lipgloss.NewStyle().Width(contentWidth).Render(joinLines(lines))
}

func (m *Model) renderResult() string {
	res, ok := m.ctrl.Result()
	if !ok {
		return ""
	}
	lines := []string{
		fmt.Sprintf("Words per minute: %s", resultValueStyle.Render(fmt.Sprintf("%.0f", res.WPM))),
		fmt.Sprintf("Accuracy: %s", resultValueStyle.Render(formatAccuracy(res))),
	}
	if res.Exhausted {
		lines = append(lines, footerStyle.Render("ran out of words"))
	}
	return resultStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	var info string
	switch m.ctrl.Phase() {
	case session.PhaseRunning:
		info = fmt.Sprintf("Time left: %d seconds", m.ctrl.Remaining())
	case session.PhaseOver:
		info = fmt.Sprintf("%s · %ds · over", m.ctrl.Lang(), m.ctrl.Seconds())
	default:
		info = fmt.Sprintf("%s · %ds", m.ctrl.Lang(), m.ctrl.Seconds())
	}
	return footerStyle.Render(info) + "  " + m.help.View(m.keys)
}

func formatAccuracy(res session.Result) string {
	if !res.AccuracyDefined {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", res.Accuracy)
}
