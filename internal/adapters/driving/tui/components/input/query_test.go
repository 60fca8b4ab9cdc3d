package input

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/styles"
)

func TestNewQueryInput(t *testing.T) {
	input := NewQueryInput(styles.DefaultStyles())

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.True(t, input.Focused())
	assert.Empty(t, input.History())
}

func TestNewQueryInput_NilStyles(t *testing.T) {
	input := NewQueryInput(nil)

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestQueryInput_Init(t *testing.T) {
	assert.NotNil(t, NewQueryInput(nil).Init())
}

func TestQueryInput_UpdateTypesRunes(t *testing.T) {
	input := NewQueryInput(nil)

	for _, r := range "acme" {
		input, _ = input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "acme", input.Value())
}

func TestQueryInput_View(t *testing.T) {
	input := NewQueryInput(nil)
	input.SetValue("recruiter")

	view := input.View()

	assert.Contains(t, view, "Query:")
	assert.Contains(t, view, "recruiter")
}

func TestQueryInput_Submit(t *testing.T) {
	input := NewQueryInput(nil)

	input.SetValue("  acme recruiter  ")
	assert.Equal(t, "acme recruiter", input.Submit())

	input.SetValue("   ")
	assert.Equal(t, "", input.Submit())

	input.SetValue("acme recruiter")
	input.Submit()

	assert.Equal(t, []string{"acme recruiter"}, input.History())
}

func TestQueryInput_SubmitCapsHistory(t *testing.T) {
	input := NewQueryInput(nil)

	for i := 0; i < maxHistory+5; i++ {
		input.SetValue(fmt.Sprintf("q%d", i))
		input.Submit()
	}

	history := input.History()
	require.Len(t, history, maxHistory)
	assert.Equal(t, "q5", history[0])
	assert.Equal(t, fmt.Sprintf("q%d", maxHistory+4), history[len(history)-1])
}

func TestQueryInput_Recall(t *testing.T) {
	input := NewQueryInput(nil)
	for _, q := range []string{"acme", "beta", "gamma"} {
		input.SetValue(q)
		input.Submit()
	}
	input.Reset()

	input.Recall(-1)
	assert.Equal(t, "gamma", input.Value())

	input.Recall(-1)
	assert.Equal(t, "beta", input.Value())

	input.Recall(-5)
	assert.Equal(t, "acme", input.Value())

	input.Recall(1)
	assert.Equal(t, "beta", input.Value())

	input.Recall(5)
	assert.Equal(t, "", input.Value())
}

func TestQueryInput_RecallEmptyHistory(t *testing.T) {
	input := NewQueryInput(nil)
	input.SetValue("draft")

	input.Recall(-1)

	assert.Equal(t, "draft", input.Value())
}

func TestQueryInput_FocusBlur(t *testing.T) {
	input := NewQueryInput(nil)

	input.Blur()
	assert.False(t, input.Focused())

	input.Focus()
	assert.True(t, input.Focused())
}

func TestQueryInput_SetWidth(t *testing.T) {
	input := NewQueryInput(nil)

	input.SetWidth(100)
	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 88, input.textinput.Width)

	input.SetWidth(10)
	assert.Equal(t, 20, input.textinput.Width)
}
