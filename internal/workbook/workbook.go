// Package workbook adapts spreadsheet input into the shapes the load
// pipeline consumes: raw grid rows, header-keyed row maps, and rich-text
// cells re-serialized into the constrained run-markup fragment form.
// Spreadsheet file parsing itself is delegated to excelize.
package workbook

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/mapper"
)

// Source provides worksheets by name. The excelize-backed File is the real
// implementation; Static backs tests.
type Source interface {
	Sheet(name string) (*Sheet, error)
}

// Sheet is one worksheet: the raw cell grid plus markup fragments for the
// cells that carry rich text.
type Sheet struct {
	Name string
	Grid [][]string

	rich map[[2]int]string
}

// NewSheet builds an in-memory sheet from a raw grid.
func NewSheet(name string, grid [][]string) *Sheet {
	return &Sheet{Name: name, Grid: grid, rich: make(map[[2]int]string)}
}

// SetRichText attaches a markup fragment to a cell, by zero-based grid
// coordinates.
func (s *Sheet) SetRichText(row, col int, fragment string) {
	s.rich[[2]int{row, col}] = fragment
}

// Cell returns the raw text of a cell, blank when out of range.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Grid) {
		return ""
	}
	if col < 0 || col >= len(s.Grid[row]) {
		return ""
	}
	return s.Grid[row][col]
}

// Table interprets the sheet as a header row followed by data rows.
// headerRow is the zero-based grid index of the header row.
func (s *Sheet) Table(headerRow int) (*Table, error) {
	if headerRow < 0 || headerRow >= len(s.Grid) {
		return nil, fmt.Errorf("workbook: sheet %q has no header row %d", s.Name, headerRow)
	}

	headers := s.Grid[headerRow]
	headerCols := make(map[string]int, len(headers))
	for col, header := range headers {
		if header == "" {
			continue
		}
		headerCols[header] = col
	}

	var rows []mapper.Row
	for gridRow := headerRow + 1; gridRow < len(s.Grid); gridRow++ {
		row := make(mapper.Row, len(headerCols))
		for header, col := range headerCols {
			row[header] = s.Cell(gridRow, col)
		}
		rows = append(rows, row)
	}

	return &Table{
		sheet:      s,
		Headers:    headers,
		headerCols: headerCols,
		Rows:       rows,
		dataStart:  headerRow + 1,
	}, nil
}

// Table is the header-keyed view of a sheet.
type Table struct {
	sheet      *Sheet
	Headers    []string
	headerCols map[string]int
	Rows       []mapper.Row
	dataStart  int
}

// HasColumn reports whether the header row contains the given header.
func (t *Table) HasColumn(header string) bool {
	_, ok := t.headerCols[header]
	return ok
}

// RichText returns the markup fragment for a data-row cell. Cells authored
// as plain text come back as a single unstyled <t> fragment; blank cells
// come back empty.
func (t *Table) RichText(dataRow int, header string) string {
	col, ok := t.headerCols[header]
	if !ok {
		return ""
	}
	gridRow := t.dataStart + dataRow
	if fragment, ok := t.sheet.rich[[2]int{gridRow, col}]; ok {
		return fragment
	}
	plain := t.sheet.Cell(gridRow, col)
	if plain == "" {
		return ""
	}
	return "<t>" + escapeText(plain) + "</t>"
}

// Static is an in-memory Source keyed by sheet name.
type Static map[string]*Sheet

func (s Static) Sheet(name string) (*Sheet, error) {
	sheet, ok := s[name]
	if !ok {
		return nil, &domain.SheetNotFoundError{Name: name}
	}
	return sheet, nil
}

func escapeText(s string) string {
	var buf bytes.Buffer
	// xml.EscapeText only errors on writer failure, which bytes.Buffer
	// never produces.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// File is the excelize-backed Source. Sheets are materialized eagerly so
// the underlying file handle is not held open.
type File struct {
	sheets Static
}

// OpenBytes parses a workbook from an in-memory buffer.
func OpenBytes(data []byte) (*File, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("workbook: failed to open: %w", err)
	}
	defer f.Close()

	sheets := make(Static)
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name)
		if err != nil {
			return nil, err
		}
		sheets[name] = sheet
	}

	return &File{sheets: sheets}, nil
}

func (f *File) Sheet(name string) (*Sheet, error) {
	return f.sheets.Sheet(name)
}

func readSheet(f *excelize.File, name string) (*Sheet, error) {
	grid, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("workbook: failed to read sheet %q: %w", name, err)
	}

	sheet := NewSheet(name, grid)
	for row := range grid {
		for col := range grid[row] {
			cellName, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return nil, fmt.Errorf("workbook: bad cell coordinates: %w", err)
			}
			runs, err := f.GetCellRichText(name, cellName)
			if err != nil || !isRich(runs) {
				continue
			}
			sheet.SetRichText(row, col, fragmentFromRuns(runs))
		}
	}
	return sheet, nil
}

// isRich reports whether the cell carries formatting worth preserving: a
// single unstyled run is just plain text.
func isRich(runs []excelize.RichTextRun) bool {
	if len(runs) > 1 {
		return true
	}
	for _, run := range runs {
		if run.Font != nil && (run.Font.Bold || run.Font.Italic || run.Font.Underline != "") {
			return true
		}
	}
	return false
}

// fragmentFromRuns re-serializes rich-text runs into the constrained
// markup form the interpreter understands.
func fragmentFromRuns(runs []excelize.RichTextRun) string {
	var buf bytes.Buffer
	for _, run := range runs {
		buf.WriteString("<r>")
		if run.Font != nil && (run.Font.Bold || run.Font.Italic || run.Font.Underline != "") {
			buf.WriteString("<rPr>")
			if run.Font.Bold {
				buf.WriteString("<b/>")
			}
			if run.Font.Italic {
				buf.WriteString("<i/>")
			}
			if run.Font.Underline != "" {
				buf.WriteString("<u/>")
			}
			buf.WriteString("</rPr>")
		}
		buf.WriteString("<t>")
		buf.WriteString(escapeText(run.Text))
		buf.WriteString("</t></r>")
	}
	return buf.String()
}
