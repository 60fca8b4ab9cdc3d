package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

func testBuiltins() []domain.LayoutProfile {
	return []domain.LayoutProfile{
		{
			Name:    "search",
			Kind:    domain.RecordKindContact,
			Anchors: []domain.AnchorPredicate{{Kind: domain.AnchorExact, Text: "Message"}},
			Templates: []domain.OffsetTemplate{{
				Name:  "plain",
				Slots: []domain.TemplateSlot{{Offset: -1, Field: domain.FieldName}},
			}},
		},
		{
			Name:         "list",
			Kind:         domain.RecordKindContact,
			Stride:       1,
			StrideFields: []domain.Field{domain.FieldName},
		},
	}
}

const recruiterBoard = `name: recruiter-board
description: Talent board export
kind: contact
anchors:
  - kind: prefix
    text: "Added "
noise:
  - Shortlist
templates:
  - name: plain
    slots:
      - offset: -2
        field: name
      - offset: -1
        field: headline
    rules:
      - kind: plausible_name
        offset: -2
separators: [" at "]
field_limits:
  name: 40
`

func writeLayout(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLayoutStore_MissingDirectoryServesBuiltins(t *testing.T) {
	store, err := NewLayoutStore(filepath.Join(t.TempDir(), "none"), testBuiltins())
	require.NoError(t, err)

	profiles, err := store.List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "search", profiles[0].Name)
}

func TestLayoutStore_LoadsUserProfile(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "board.yaml", recruiterBoard)
	writeLayout(t, dir, "ignored.txt", "not yaml")

	store, err := NewLayoutStore(dir, testBuiltins())
	require.NoError(t, err)

	p, err := store.Get("recruiter-board")
	require.NoError(t, err)
	assert.Equal(t, domain.RecordKindContact, p.Kind)
	assert.Equal(t, domain.AnchorPrefix, p.Anchors[0].Kind)
	assert.Equal(t, []string{"Shortlist"}, p.Noise)
	require.Len(t, p.Templates, 1)
	assert.Equal(t, -2, p.Templates[0].Slots[0].Offset)
	assert.Equal(t, domain.RulePlausibleName, p.Templates[0].Rules[0].Kind)
	assert.Equal(t, 40, p.Limit(domain.FieldName))
	assert.Equal(t, 300, p.Limit(domain.FieldHeadline))

	profiles, err := store.List()
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "recruiter-board", profiles[2].Name)
}

func TestLayoutStore_UserProfileReplacesBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "list.yml", `name: list
kind: contact
stride: 2
stride_fields: [name, headline]
`)

	store, err := NewLayoutStore(dir, testBuiltins())
	require.NoError(t, err)

	profiles, err := store.List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "list", profiles[1].Name)
	assert.Equal(t, 2, profiles[1].Stride)
}

func TestLayoutStore_MultiDocumentFile(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "many.yaml", recruiterBoard+`---
name: pairs
kind: deal
stride: 2
stride_fields: [company, title]
`)

	store, err := NewLayoutStore(dir, nil)
	require.NoError(t, err)

	profiles, err := store.List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, domain.RecordKindDeal, profiles[1].Kind)
}

func TestLayoutStore_InvalidProfile(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "bad.yaml", "name: bad\nkind: contact\n")

	store, err := NewLayoutStore(dir, testBuiltins())
	require.NoError(t, err)

	_, err = store.List()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLayoutStore_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "bad.yaml", "name: [unterminated")

	store, err := NewLayoutStore(dir, nil)
	require.NoError(t, err)

	_, err = store.Get("bad")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLayoutStore_GetUnknown(t *testing.T) {
	store, err := NewLayoutStore(t.TempDir(), testBuiltins())
	require.NoError(t, err)

	_, err = store.Get("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownProfile)
}

func TestLayoutStore_Reload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLayoutStore(dir, testBuiltins())
	require.NoError(t, err)

	_, err = store.Get("recruiter-board")
	require.ErrorIs(t, err, domain.ErrUnknownProfile)

	writeLayout(t, dir, "board.yaml", recruiterBoard)
	_, err = store.Get("recruiter-board")
	assert.ErrorIs(t, err, domain.ErrUnknownProfile, "cached until reload")

	store.Reload()
	_, err = store.Get("recruiter-board")
	assert.NoError(t, err)
}
