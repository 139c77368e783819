// Package layout defines the closed set of document templates the extractor
// understands and decides which one, if any, a document matches.
//
// A template is static configuration: the marker phrase that identifies the
// document on its first page, plus the full geometry table (row height,
// per-page start offsets, bottom margin and the ordered cell width sequence)
// that drives the generic band scanner. Nothing here is computed from the
// document; an unrecognized layout is a "no match" outcome, not a parsing
// target.
package layout

import (
	"strings"

	"github.com/Optisol-SRL/vatee/pkg/pdfgeom"
)

// Kind identifies a supported document template.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvoice
	KindCashRegister
)

// String returns the template name used in logs and statuses.
func (k Kind) String() string {
	switch k {
	case KindInvoice:
		return "invoice"
	case KindCashRegister:
		return "cash-register"
	default:
		return "unknown"
	}
}

// Role classifies a cell for the purposes of multi-line record grouping.
// Header cells belong to the logical record itself; detail cells repeat on
// the continuation sub-rows that follow it.
type Role int

const (
	RoleHeader Role = iota
	RoleDetail
)

// CellSpec is one fixed-width cell in a scan band. Cells are contiguous:
// each cell starts where the previous one ends.
type CellSpec struct {
	Name  string
	Width float64
	Role  Role
}

// CellBox anchors a standalone query cell (x, y, width, height).
type CellBox struct {
	X, Y, W, H float64
}

// Template is the full geometry table for one known document layout.
type Template struct {
	Kind   Kind
	Marker string // diacritic-folded phrase expected inside Header

	Header CellBox // header marker cell, shared across templates

	RowHeight        float64
	StartX           float64
	FirstPageStartY  float64
	OtherPagesStartY float64
	BottomMargin     float64

	Cells []CellSpec
}

// StartY returns the vertical scan origin for a page. The first page starts
// lower to skip the taller masthead.
func (t *Template) StartY(pageNum int) float64 {
	if pageNum == 1 {
		return t.FirstPageStartY
	}
	return t.OtherPagesStartY
}

// Cell returns the CellSpec with the given name, if present.
func (t *Template) Cell(name string) (CellSpec, bool) {
	for _, c := range t.Cells {
		if c.Name == name {
			return c, true
		}
	}
	return CellSpec{}, false
}

// Matches reports whether the first page of a document carries this
// template's marker phrase. The header cell is read through the same
// geometry index as regular cells; whitespace-only header text is a
// non-match without any further processing.
func (t *Template) Matches(firstPage []pdfgeom.Token) bool {
	ix := pdfgeom.NewIndex(firstPage)
	header := ix.CellText(t.Header.X, t.Header.Y, t.Header.W, t.Header.H)
	if strings.TrimSpace(header) == "" {
		return false
	}
	return strings.Contains(FoldDiacritics(header), t.Marker)
}

// Detect tries each template in turn against the first page's tokens and
// returns the first match, or nil when the document matches none of them.
func Detect(firstPage []pdfgeom.Token, templates []*Template) *Template {
	for _, t := range templates {
		if t.Matches(firstPage) {
			return t
		}
	}
	return nil
}
