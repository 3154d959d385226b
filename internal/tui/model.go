package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spendmatch/internal/candidates"
	"spendmatch/internal/domain"
	"spendmatch/internal/match"
)

// Model is the Bubble Tea model for the interactive match explorer.
type Model struct {
	store    *candidates.Store
	opts     match.Options
	input    textinput.Model
	viewport viewport.Model
	results  []domain.MatchResult
	ref      domain.Profile
	status   string
	cursor   int
	ready    bool
}

// New creates an explorer over a loaded candidate population.
func New(store *candidates.Store, opts match.Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a reference user id and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		store:    store,
		opts:     opts,
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("Loaded %d candidate profiles.", store.Len()),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = maxInt(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			if raw != "" {
				m.runMatch(raw)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) runMatch(raw string) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		m.status = "Error: user id must be an integer"
		m.results = nil
		return
	}
	ref, ok := m.store.Get(id)
	if !ok {
		m.status = fmt.Sprintf("Error: no profile for user %d", id)
		m.results = nil
		return
	}
	m.ref = ref
	m.results = match.OneToMany(ref, m.store.All(), m.opts)
	m.cursor = 0
	m.status = fmt.Sprintf("Ranked %d candidates for user %d", len(m.results), id)
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Spendmatch Explorer")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No matches yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Rank %d/%d  user=%d  %d%%  score=%.3f",
		r.Rank, len(m.results), r.UserID, r.Percent, r.Score)
	cand, ok := m.store.Get(r.UserID)
	if !ok {
		return title
	}
	return title + "\n\n" + renderProfile(cand)
}

func renderProfile(p domain.Profile) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Top archetypes"))
	b.WriteString("\n")
	for i, t := range p.Types {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "  %s  p=%.2f sim=%.2f\n", t.Name, t.Prob, t.Sim)
	}
	b.WriteString(sectionStyle.Render("Top keywords"))
	b.WriteString("\n")
	for i, k := range p.Keywords {
		if i == 8 {
			break
		}
		fmt.Fprintf(&b, "  %-16s %.3f\n", k.Name, k.Score)
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
