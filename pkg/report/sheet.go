package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// sheetWriter fills one sheet cell by cell, left to right, tracking the
// widest content per column so the sheet can be sized to fit afterwards.
// The first write error sticks and short-circuits later writes.
type sheetWriter struct {
	f         *excelize.File
	sheet     string
	row       int
	col       int
	colWidths []float64
	err       error
}

func newSheetWriter(f *excelize.File, sheet string, headers []string) (*sheetWriter, error) {
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	w := &sheetWriter{f: f, sheet: sheet, row: 1}
	for _, h := range headers {
		w.cell(h)
	}
	return w, w.err
}

func (w *sheetWriter) nextRow() {
	w.row++
	w.col = 0
}

// cell writes value into the next column of the current row.
func (w *sheetWriter) cell(value interface{}) {
	w.col++
	if w.err != nil {
		return
	}
	ref, err := excelize.CoordinatesToCellName(w.col, w.row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, ref, value); err != nil {
		w.err = fmt.Errorf("writing %s!%s: %w", w.sheet, ref, err)
		return
	}
	w.trackWidth(value)
}

// warningFlag writes the DA/NU warnings column; when warnings exist, the
// cell gets a hidden comment holding the joined warning text.
func (w *sheetWriter) warningFlag(warnings []string) error {
	if len(warnings) == 0 {
		w.cell("NU")
		return w.err
	}
	w.cell("DA")
	if w.err != nil {
		return w.err
	}
	ref, err := excelize.CoordinatesToCellName(w.col, w.row)
	if err != nil {
		return err
	}
	if err := w.f.AddComment(w.sheet, excelize.Comment{
		Cell: ref,
		Text: strings.Join(warnings, "\n"),
	}); err != nil {
		return fmt.Errorf("adding warning comment at %s!%s: %w", w.sheet, ref, err)
	}
	return nil
}

func (w *sheetWriter) trackWidth(value interface{}) {
	for len(w.colWidths) < w.col {
		w.colWidths = append(w.colWidths, 0)
	}
	width := float64(utf8.RuneCountInString(fmt.Sprint(value))) + 2
	if width > w.colWidths[w.col-1] {
		w.colWidths[w.col-1] = width
	}
}

// fitColumns sizes every column to its widest content, capped so a single
// long value cannot blow the sheet up.
func (w *sheetWriter) fitColumns() {
	const maxWidth = 60
	if w.err != nil {
		return
	}
	for i, width := range w.colWidths {
		if width > maxWidth {
			width = maxWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetColWidth(w.sheet, name, name, width); err != nil {
			w.err = fmt.Errorf("sizing column %s: %w", name, err)
			return
		}
	}
}
