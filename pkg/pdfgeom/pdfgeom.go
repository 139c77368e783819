// Package pdfgeom provides the positional text model the extraction
// pipeline is built on: tokens with bounding rectangles in PDF page
// coordinates (origin bottom-left, Y increasing upward) and rectangle
// containment queries over them.
//
// The package answers one question: "which tokens fall inside this
// rectangle". Tokens are supplied fully materialized by a PDF text layer
// and are never re-sorted; query results preserve the token stream order.
package pdfgeom

import "strings"

// DefaultPadding is the horizontal slack, in layout units, added to cell
// rectangles on construction. It absorbs sub-pixel rendering drift without
// capturing text from adjacent columns.
const DefaultPadding = 3

// Rect is a rectangle in page coordinates.
type Rect struct {
	LLx float64 // left
	LLy float64 // bottom
	URx float64 // right
	URy float64 // top
}

// NewRect builds a rectangle from its lower-left and upper-right corners.
func NewRect(llx, lly, urx, ury float64) Rect {
	return Rect{LLx: llx, LLy: lly, URx: urx, URy: ury}
}

// Contains reports whether other lies fully inside r, borders included.
// Partial overlap is a miss; a token straddling a cell boundary is never
// attributed to either cell.
func (r Rect) Contains(other Rect) bool {
	return other.LLx >= r.LLx && other.URx <= r.URx &&
		other.LLy >= r.LLy && other.URy <= r.URy
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.URx - r.LLx }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.URy - r.LLy }

// Token is one positioned piece of text on a page. Immutable once built.
type Token struct {
	Text string
	Page int // 1-based
	BBox Rect
}

// Index wraps one page's token list and serves rectangle queries against it.
type Index struct {
	tokens  []Token
	padding float64
}

// NewIndex builds an index over tokens using DefaultPadding.
// The slice is retained, not copied; callers must not mutate it.
func NewIndex(tokens []Token) *Index {
	return &Index{tokens: tokens, padding: DefaultPadding}
}

// NewIndexWithPadding builds an index with an explicit cell padding.
func NewIndexWithPadding(tokens []Token, padding float64) *Index {
	return &Index{tokens: tokens, padding: padding}
}

// CellRect builds the query rectangle for a cell anchored at (x, y) with the
// given width and height. Padding is applied here, on construction, never
// during lookup: horizontally by the index's padding, vertically by one unit.
func (ix *Index) CellRect(x, y, width, height float64) Rect {
	return Rect{
		LLx: x - ix.padding,
		LLy: y - 1,
		URx: x + width + ix.padding,
		URy: y + height + 1,
	}
}

// TextIn returns the space-joined text of every token fully contained in r,
// in token stream order. An empty result is a valid, common outcome (blank
// cell), not an error.
func (ix *Index) TextIn(r Rect) string {
	var parts []string
	for _, tok := range ix.tokens {
		if r.Contains(tok.BBox) {
			parts = append(parts, tok.Text)
		}
	}
	return strings.Join(parts, " ")
}

// CellText composes CellRect and TextIn.
func (ix *Index) CellText(x, y, width, height float64) string {
	return ix.TextIn(ix.CellRect(x, y, width, height))
}
