package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/mapper"
)

func TestSheetTable(t *testing.T) {
	sheet := NewSheet("People", [][]string{
		{"Name", "Title", "Email"},
		{"Alice", "Provost"},
		{"Bob", "Registrar", "bob@example.edu"},
	})

	table, err := sheet.Table(0)
	require.NoError(t, err)

	t.Run("rows are keyed by header", func(t *testing.T) {
		require.Len(t, table.Rows, 2)
		assert.Equal(t, mapper.Row{"Name": "Alice", "Title": "Provost", "Email": ""}, table.Rows[0])
		assert.Equal(t, mapper.Row{"Name": "Bob", "Title": "Registrar", "Email": "bob@example.edu"}, table.Rows[1])
	})

	t.Run("HasColumn", func(t *testing.T) {
		assert.True(t, table.HasColumn("Title"))
		assert.False(t, table.HasColumn("Missing"))
	})

	t.Run("bad header row", func(t *testing.T) {
		_, err := sheet.Table(5)
		assert.Error(t, err)
	})
}

func TestTableWithHeaderOffset(t *testing.T) {
	sheet := NewSheet("Schedule", [][]string{
		{"Smith"},
		{},
		{"Date", "Time"},
		{"March 23, 2025", "9:00 a.m."},
	})

	table, err := sheet.Table(2)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "March 23, 2025", table.Rows[0]["Date"])
	assert.Equal(t, "Smith", sheet.Cell(0, 0))
}

func TestRichText(t *testing.T) {
	sheet := NewSheet("Schedule", [][]string{
		{"Date", "Team Roles"},
		{"March 23, 2025", "SI: Budget"},
		{"March 24, 2025", ""},
	})
	sheet.SetRichText(1, 1, "<r><rPr><b/></rPr><t>SI: Budget</t></r>")

	table, err := sheet.Table(0)
	require.NoError(t, err)

	t.Run("rich cell passes its fragment through", func(t *testing.T) {
		assert.Equal(t, "<r><rPr><b/></rPr><t>SI: Budget</t></r>", table.RichText(0, "Team Roles"))
	})

	t.Run("blank cell is empty", func(t *testing.T) {
		assert.Equal(t, "", table.RichText(1, "Team Roles"))
	})

	t.Run("unknown header is empty", func(t *testing.T) {
		assert.Equal(t, "", table.RichText(0, "Missing"))
	})
}

func TestRichTextPlainCellEscapes(t *testing.T) {
	sheet := NewSheet("Schedule", [][]string{
		{"Team Roles"},
		{"A & B <together>"},
	})
	table, err := sheet.Table(0)
	require.NoError(t, err)
	assert.Equal(t, "<t>A &amp; B &lt;together&gt;</t>", table.RichText(0, "Team Roles"))
}

func TestStaticSource(t *testing.T) {
	src := Static{"People": NewSheet("People", [][]string{{"Name"}})}

	sheet, err := src.Sheet("People")
	require.NoError(t, err)
	assert.Equal(t, "People", sheet.Name)

	_, err = src.Sheet("Missing")
	var notFound *domain.SheetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Missing", notFound.Name)
	assert.True(t, domain.IsUserError(err))
}
