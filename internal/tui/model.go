package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"traductor/internal/domain"
)

// TranslatorPort is the TUI-facing subset of the orchestrator.
type TranslatorPort interface {
	Begin() uint64
	Stale(gen uint64) bool
	Translate(ctx context.Context, sourceText string, direction domain.Direction) (domain.TranslationResult, error)
}

// resultMsg carries a finished pipeline run back into the update loop,
// tagged with its generation so stale completions are dropped.
type resultMsg struct {
	gen    uint64
	result domain.TranslationResult
	err    error
}

// Model is the Bubble Tea model for the translator UI.
type Model struct {
	service   TranslatorPort
	input     textinput.Model
	viewport  viewport.Model
	direction domain.Direction
	result    *domain.TranslationResult
	status    string
	pending   bool
	ready     bool
}

// New creates a new TUI model instance.
func New(service TranslatorPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type text and press Enter to translate (Tab switches direction)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:   service,
		input:     ti,
		viewport:  vp,
		direction: domain.EnglishToSpanish,
		status:    "Ready.",
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
		reserved := 2 + 1 + qh + 1 // header + direction, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResult())
		return m, nil
	case resultMsg:
		// A newer request supersedes this one: never let a late response
		// overwrite its result.
		if m.service.Stale(msg.gen) {
			return m, nil
		}
		m.pending = false
		if msg.err != nil {
			m.status = "Error: " + stageMessage(msg.err)
			m.result = nil
		} else {
			r := msg.result
			m.result = &r
			m.status = fmt.Sprintf("Done. %d context passages (%d chars).",
				r.Metadata.TotalResults, r.Metadata.ContextLength)
		}
		m.viewport.SetContent(m.renderResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m.direction = m.direction.Reverse()
			return m, nil
		case "enter":
			if m.pending {
				// one pipeline in flight per user action
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.pending = true
			m.status = "Translating..."
			gen := m.service.Begin()
			dir := m.direction
			svc := m.service
			return m, func() tea.Msg {
				res, err := svc.Translate(context.Background(), text, dir)
				return resultMsg{gen: gen, result: res, err: err}
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Traductor")
	dir := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.direction.String())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "  " + dir + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "No translation yet."
	}
	var b strings.Builder
	b.WriteString(translationStyle.Render(m.result.TranslatedText))
	b.WriteString("\n")
	if len(m.result.ContextUsed) == 0 {
		b.WriteString(contextHeadStyle.Render("\nNo corpus context was used."))
		return b.String()
	}
	b.WriteString(contextHeadStyle.Render("\nContext used:"))
	b.WriteString("\n")
	for i, c := range m.result.ContextUsed {
		label := string(c.Item.Level)
		if c.Item.Title != "" {
			label += " · " + c.Item.Title
		}
		fmt.Fprintf(&b, "%d. [%s] score=%.3f\n%s\n", i+1, label, c.Score, snippet(c.Item.Text, 200))
	}
	return b.String()
}

// stageMessage turns a stage-tagged pipeline error into a user-facing line.
func stageMessage(err error) string {
	switch domain.StageOf(err) {
	case domain.StageEmbedding:
		if errors.Is(err, domain.ErrEmptyInput) {
			return "nothing to translate"
		}
		if errors.Is(err, domain.ErrCredentialMissing) {
			return "no API key configured (run: traductor key set)"
		}
		return "embedding failed: " + rootMessage(err)
	case domain.StageRanking, domain.StageBudgeting:
		return "context retrieval failed: " + rootMessage(err)
	case domain.StageTranslation:
		return "translation service failed: " + rootMessage(err)
	}
	return err.Error()
}

func rootMessage(err error) string {
	var se *domain.StageError
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}

func snippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

var (
	resultBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	translationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	contextHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
