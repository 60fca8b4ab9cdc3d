// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// maxPreviewLines is how many snippets are shown under each hit.
const maxPreviewLines = 2

// ResultList displays ranked hits in a navigable list.
type ResultList struct {
	results  []domain.SearchResult
	total    int
	selected int
	expanded bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No matches")
	}

	lines := make([]string, 0, len(r.results)*2+2)

	header := fmt.Sprintf("Results (%d)", len(r.results))
	if r.total > len(r.results) {
		header = fmt.Sprintf("Results (%d of %d)", len(r.results), r.total)
	}
	lines = append(lines, r.styles.Subtitle.Render(header), "")

	// each hit takes a title line plus up to two preview lines
	visibleCount := (r.height - 4) / (1 + maxPreviewLines)
	if r.expanded {
		visibleCount = 1
	}
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	if r.expanded {
		if result := r.SelectedResult(); result != nil {
			lines = append(lines, "", r.styles.Border.Padding(0, 1).Render(result.FullContent))
		}
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single hit with its preview snippets.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	maxLabelLen := r.width - 24
	if maxLabelLen < 10 {
		maxLabelLen = 10
	}
	label := truncate(result.SourceLabel, maxLabelLen)
	score := fmt.Sprintf("%d", result.Score)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxLabelLen, label, score))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxLabelLen, label)) +
			r.styles.Score.Render(score)
	}
	titleLine += " " + r.styles.Tag(result.Type)

	maxPreviewLen := r.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}

	lines := []string{titleLine}
	for i, snippet := range result.Preview {
		if i == maxPreviewLines {
			break
		}
		lines = append(lines, r.styles.Muted.Render("    "+truncate(snippet, maxPreviewLen)))
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// SetResults replaces the hits. total is the match count before paging.
func (r *ResultList) SetResults(results []domain.SearchResult, total int) {
	r.results = results
	r.total = total
	r.selected = 0
	r.expanded = false
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Total returns the match count before paging.
func (r *ResultList) Total() int {
	return r.total
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// ToggleExpanded shows or hides the full text of the selected result.
func (r *ResultList) ToggleExpanded() {
	if len(r.results) == 0 {
		return
	}
	r.expanded = !r.expanded
}

// Expanded reports whether the selected result's full text is shown.
func (r *ResultList) Expanded() bool {
	return r.expanded
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
