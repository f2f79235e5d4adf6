// Package tui provides an interactive terminal search interface over the
// statute index. One view: a query input, a scrollable result list and a
// detail pane for the selected chunk.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driving"
)

// searchResultMsg carries search results back into the update loop.
type searchResultMsg struct {
	results []domain.ScoredChunk
	err     error
}

// App is the bubbletea model for the search interface.
type App struct {
	retrieval driving.RetrievalService
	topK      int

	input    textinput.Model
	spinner  spinner.Model
	results  []domain.ScoredChunk
	selected int
	searched bool
	loading  bool
	err      error
	width    int
	height   int

	ctx context.Context
}

// NewApp creates the search TUI. topK controls how many results each query
// returns.
func NewApp(retrieval driving.RetrievalService, topK int) (*App, error) {
	if retrieval == nil {
		return nil, fmt.Errorf("retrieval service is required")
	}
	if topK < 1 {
		topK = 5
	}

	input := textinput.New()
	input.Placeholder = "Search statutes..."
	input.PromptStyle = promptStyle
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		retrieval: retrieval,
		topK:      topK,
		input:     input,
		spinner:   sp,
		ctx:       context.Background(),
	}, nil
}

// WithContext sets the context used for search calls.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			query := strings.TrimSpace(a.input.Value())
			if query == "" || a.loading {
				return a, nil
			}
			a.loading = true
			a.err = nil
			return a, tea.Batch(a.spinner.Tick, a.search(query))
		case "up", "ctrl+k":
			if a.selected > 0 {
				a.selected--
			}
			return a, nil
		case "down", "ctrl+j":
			if a.selected < len(a.results)-1 {
				a.selected++
			}
			return a, nil
		}

	case searchResultMsg:
		a.loading = false
		a.searched = true
		a.selected = 0
		a.results = msg.results
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("LegalEase Statute Search"))
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	switch {
	case a.loading:
		b.WriteString(a.spinner.View() + " Searching...\n")
	case a.err != nil:
		b.WriteString(errorStyle.Render("Error: "+a.err.Error()) + "\n")
	case a.searched && len(a.results) == 0:
		b.WriteString("No results.\n")
	default:
		a.renderResults(&b)
	}

	b.WriteString(helpStyle.Render("enter search · ↑/↓ select · esc quit"))
	return b.String()
}

func (a *App) renderResults(b *strings.Builder) {
	for i := range a.results {
		r := &a.results[i]
		line := fmt.Sprintf("[%d] %s §%s", i+1, r.LawName, r.SectionID)
		if i == a.selected {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(resultTitleStyle.Render(line))
		}
		b.WriteString(scoreStyle.Render(fmt.Sprintf("  %.4f", r.Score)))
		b.WriteString("\n")
	}

	if a.selected >= 0 && a.selected < len(a.results) {
		r := &a.results[a.selected]
		b.WriteString("\n")
		if r.SectionTitle != "" {
			b.WriteString(resultTitleStyle.Render(r.SectionTitle) + "\n")
		}
		b.WriteString(snippetStyle.Render(truncate(r.Text, a.detailBudget())) + "\n")
	}
}

// detailBudget sizes the detail pane to what remains of the terminal.
func (a *App) detailBudget() int {
	if a.height == 0 {
		return 600
	}
	lines := a.height - len(a.results) - 8
	if lines < 3 {
		lines = 3
	}
	width := a.width
	if width == 0 {
		width = 80
	}
	return lines * width
}

func truncate(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}

func (a *App) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.retrieval.Search(a.ctx, query, a.topK)
		return searchResultMsg{results: results, err: err}
	}
}
