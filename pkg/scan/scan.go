// Package scan walks a page geometrically, carving it into fixed-height
// bands and fixed-width cells according to a layout template, and produces
// the raw row stream the normalizer consumes.
//
// The scan is deterministic and stateless per page: each page depends only
// on its own tokens and the template's offsets. Scanning a page stops at the
// first fully empty band or when the cursor crosses the template's bottom
// margin, whichever comes first; rows below a blank band are never
// recovered.
package scan

import (
	"strings"

	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/pdfgeom"
)

// Cell is one named raw-text cell of a row. Text may be empty.
type Cell struct {
	Name string
	Text string
}

// RawRow is one scanned band: the ordered cells of the template, plus the
// page it came from and its 1-based position within that page.
type RawRow struct {
	Page      int
	RowInPage int
	Cells     []Cell
}

// Field returns the text of the named cell, or the empty string when the
// template has no such cell.
func (r RawRow) Field(name string) string {
	for _, c := range r.Cells {
		if c.Name == name {
			return c.Text
		}
	}
	return ""
}

// Empty reports whether every cell is empty or whitespace-only.
func (r RawRow) Empty() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c.Text) != "" {
			return false
		}
	}
	return true
}

// DetailOnly reports whether the row carries data only in the template's
// detail cells: every header cell blank, at least one detail cell not.
// Rows like this continue the logical record opened by an earlier row.
func (r RawRow) DetailOnly(tpl *layout.Template) bool {
	anyDetail := false
	for i, c := range r.Cells {
		blank := strings.TrimSpace(c.Text) == ""
		switch tpl.Cells[i].Role {
		case layout.RoleHeader:
			if !blank {
				return false
			}
		case layout.RoleDetail:
			if !blank {
				anyDetail = true
			}
		}
	}
	return anyDetail
}

// Page scans one page top-to-bottom and returns its rows in band order.
// A page that is blank from the first band onward contributes zero rows.
func Page(pageNum int, tokens []pdfgeom.Token, tpl *layout.Template, tracer Tracer) []RawRow {
	if tracer == nil {
		tracer = NopTracer{}
	}
	ix := pdfgeom.NewIndex(tokens)

	var rows []RawRow
	rowInPage := 1
	for y := tpl.StartY(pageNum); y > tpl.BottomMargin; y -= tpl.RowHeight {
		row := band(pageNum, rowInPage, y, ix, tpl, tracer)
		if row.Empty() {
			break
		}
		rows = append(rows, row)
		rowInPage++
	}
	return rows
}

// band reads the template's cell sequence at one vertical offset. Cells are
// contiguous: each starts where the previous one ends.
func band(pageNum, rowInPage int, y float64, ix *pdfgeom.Index, tpl *layout.Template, tracer Tracer) RawRow {
	row := RawRow{
		Page:      pageNum,
		RowInPage: rowInPage,
		Cells:     make([]Cell, 0, len(tpl.Cells)),
	}

	x := tpl.StartX
	for _, spec := range tpl.Cells {
		rect := ix.CellRect(x, y, spec.Width, tpl.RowHeight)
		tracer.Rect(rect)
		row.Cells = append(row.Cells, Cell{Name: spec.Name, Text: ix.TextIn(rect)})
		x += spec.Width
	}
	return row
}
