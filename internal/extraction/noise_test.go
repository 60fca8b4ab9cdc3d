package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

func TestFilterLines_EmptyInput(t *testing.T) {
	lines := FilterLines("", nil)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestFilterLines_DropsChrome(t *testing.T) {
	raw := "Previous\nJane Doe\n\n  Senior Recruiter at Acme  \n2\n3\nNext\nPage 2 of 10\nView Jane Doe’s profile\nLinkedIn Corporation © 2024\n"
	lines := FilterLines(raw, nil)
	assert.Equal(t, []string{"Jane Doe", "Senior Recruiter at Acme"}, lines)
}

func TestFilterLines_KeepsAnchorLiterals(t *testing.T) {
	p := &domain.LayoutProfile{
		Anchors: []domain.AnchorPredicate{{Kind: domain.AnchorExact, Text: "Message"}},
	}
	raw := "Jane Doe\nMessage\nConnect"

	assert.Equal(t, []string{"Jane Doe", "Message"}, FilterLines(raw, p))
	assert.Equal(t, []string{"Jane Doe"}, FilterLines(raw, nil))
}

func TestFilterLines_ProfileNoise(t *testing.T) {
	p := &domain.LayoutProfile{Noise: []string{"Archive"}}
	assert.Equal(t, []string{"Engineer"}, FilterLines("Archive\nEngineer", p))
}

func TestFilterLines_KeepNumeric(t *testing.T) {
	p := &domain.LayoutProfile{KeepNumeric: true}
	assert.Equal(t, []string{"42"}, FilterLines("42", p))
	assert.Empty(t, FilterLines("42", nil))
}

func TestFilterLines_NormalisesUnicode(t *testing.T) {
	// Non-breaking space and fullwidth letters fold under NFKC.
	raw := "Jane\u00a0Doe\r\nＡｃｍｅ"
	assert.Equal(t, []string{"Jane Doe", "Acme"}, FilterLines(raw, nil))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, isNumeric("12"))
	assert.True(t, isNumeric("1,024"))
	assert.False(t, isNumeric("2nd"))
	assert.False(t, isNumeric("..."))
}
