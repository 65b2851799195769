package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doublemix/msche-team-visit/internal/domain"
)

func TestParse(t *testing.T) {
	t.Run("styled run", func(t *testing.T) {
		runs, err := Parse("<r><rPr><b/></rPr><t>Hi</t></r>")
		require.NoError(t, err)
		assert.Equal(t, []domain.TextRun{{Bold: true, Text: "Hi"}}, runs)
	})

	t.Run("bare text element", func(t *testing.T) {
		runs, err := Parse("<t>plain</t>")
		require.NoError(t, err)
		assert.Equal(t, []domain.TextRun{{Text: "plain"}}, runs)
	})

	t.Run("empty fragment", func(t *testing.T) {
		runs, err := Parse("")
		require.NoError(t, err)
		assert.Empty(t, runs)
	})

	t.Run("styles accumulate across rPr elements", func(t *testing.T) {
		runs, err := Parse("<r><rPr><b/></rPr><rPr><i/><u/></rPr><t>all</t></r>")
		require.NoError(t, err)
		assert.Equal(t, []domain.TextRun{{Bold: true, Italics: true, Underline: true, Text: "all"}}, runs)
	})

	t.Run("nested style flags still count", func(t *testing.T) {
		runs, err := Parse("<r><rPr><x><b/></x></rPr><t>deep</t></r>")
		require.NoError(t, err)
		assert.Equal(t, []domain.TextRun{{Bold: true, Text: "deep"}}, runs)
	})

	t.Run("multiple text elements share the run style", func(t *testing.T) {
		runs, err := Parse("<r><rPr><i/></rPr><t>one</t><t>two</t></r>")
		require.NoError(t, err)
		assert.Equal(t, []domain.TextRun{
			{Italics: true, Text: "one"},
			{Italics: true, Text: "two"},
		}, runs)
	})

	t.Run("document order is preserved", func(t *testing.T) {
		runs, err := Parse("<r><t>a</t></r><t>b</t><r><rPr><b/></rPr><t>c</t></r>")
		require.NoError(t, err)
		assert.Equal(t, []domain.TextRun{
			{Text: "a"},
			{Text: "b"},
			{Bold: true, Text: "c"},
		}, runs)
	})

	t.Run("whitespace between elements is tolerated", func(t *testing.T) {
		runs, err := Parse("  <r> <rPr><b/></rPr> <t>Hi</t> </r>  ")
		require.NoError(t, err)
		assert.Equal(t, []domain.TextRun{{Bold: true, Text: "Hi"}}, runs)
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("non-blank top-level text", func(t *testing.T) {
		_, err := Parse("stray text")
		var unexpected *domain.UnexpectedTextError
		require.ErrorAs(t, err, &unexpected)
		assert.True(t, domain.IsUserError(err))
	})

	t.Run("non-blank text inside a run", func(t *testing.T) {
		_, err := Parse("<r>loose</r>")
		var unexpected *domain.UnexpectedTextError
		require.ErrorAs(t, err, &unexpected)
	})

	t.Run("unknown top-level tag", func(t *testing.T) {
		_, err := Parse("<p>nope</p>")
		var unexpected *domain.UnexpectedTagError
		require.ErrorAs(t, err, &unexpected)
		assert.Equal(t, "p", unexpected.Tag)
	})

	t.Run("unknown tag inside a run", func(t *testing.T) {
		_, err := Parse("<r><q/></r>")
		var unexpected *domain.UnexpectedTagError
		require.ErrorAs(t, err, &unexpected)
	})

	t.Run("tag inside a text element", func(t *testing.T) {
		_, err := Parse("<t><b/></t>")
		var unexpected *domain.UnexpectedTagError
		require.ErrorAs(t, err, &unexpected)
	})
}
