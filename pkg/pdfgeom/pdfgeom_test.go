package pdfgeom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tok(text string, llx, lly, urx, ury float64) Token {
	return Token{Text: text, Page: 1, BBox: NewRect(llx, lly, urx, ury)}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 50, 30)

	assert.True(t, r.Contains(NewRect(20, 15, 40, 25)), "fully inside")
	assert.True(t, r.Contains(NewRect(10, 10, 50, 30)), "borders are inclusive")
	assert.False(t, r.Contains(NewRect(5, 15, 40, 25)), "sticking out left")
	assert.False(t, r.Contains(NewRect(20, 15, 55, 25)), "sticking out right")
	assert.False(t, r.Contains(NewRect(20, 5, 40, 25)), "sticking out below")
	assert.False(t, r.Contains(NewRect(60, 40, 70, 50)), "fully outside")
}

func TestCellRectAppliesPaddingOnConstruction(t *testing.T) {
	ix := NewIndex(nil)
	r := ix.CellRect(100, 200, 48, 20)

	assert.Equal(t, NewRect(97, 199, 151, 221), r)
}

func TestCellRectCustomPadding(t *testing.T) {
	ix := NewIndexWithPadding(nil, 5)
	r := ix.CellRect(100, 200, 48, 20)

	assert.Equal(t, NewRect(95, 199, 153, 221), r)
}

func TestTextInJoinsContainedTokensInStreamOrder(t *testing.T) {
	// Stream order deliberately differs from left-to-right order: the
	// index must not re-sort.
	ix := NewIndex([]Token{
		tok("world", 60, 10, 90, 20),
		tok("hello", 10, 10, 40, 20),
		tok("outside", 200, 200, 230, 210),
	})

	got := ix.TextIn(NewRect(0, 0, 100, 30))
	assert.Equal(t, "world hello", got)
}

func TestTextInExcludesPartiallyContainedToken(t *testing.T) {
	// A token straddling the cell border must not bleed into the cell.
	ix := NewIndex([]Token{
		tok("straddler", 90, 10, 130, 20),
		tok("inside", 10, 10, 40, 20),
	})

	got := ix.TextIn(NewRect(0, 0, 100, 30))
	assert.Equal(t, "inside", got)
}

func TestTextInEmptyCell(t *testing.T) {
	ix := NewIndex([]Token{tok("far", 500, 500, 520, 510)})

	assert.Equal(t, "", ix.TextIn(NewRect(0, 0, 100, 30)))
	assert.Equal(t, "", ix.CellText(0, 0, 100, 30))
}

func TestCellTextMatchesPaddedRect(t *testing.T) {
	// Token sits just outside the raw cell but within the padding slack.
	ix := NewIndex([]Token{tok("edge", 98, 200, 110, 210)})

	assert.Equal(t, "edge", ix.CellText(100, 199, 50, 20))
}
