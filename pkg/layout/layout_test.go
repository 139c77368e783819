package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Optisol-SRL/vatee/pkg/pdfgeom"
)

// headerTokens places the words of a marker phrase inside the shared
// header cell on page one.
func headerTokens(words ...string) []pdfgeom.Token {
	tokens := make([]pdfgeom.Token, 0, len(words))
	x := markerHeader.X + 10.0
	for _, w := range words {
		tokens = append(tokens, pdfgeom.Token{
			Text: w,
			Page: 1,
			BBox: pdfgeom.NewRect(x, markerHeader.Y+40, x+30, markerHeader.Y+50),
		})
		x += 40
	}
	return tokens
}

func TestDetectInvoice(t *testing.T) {
	page := headerTokens("Sistemul", "național", "RO", "e-Factura")

	tpl := Detect(page, Defaults())
	require.NotNil(t, tpl)
	assert.Equal(t, KindInvoice, tpl.Kind)
}

func TestDetectCashRegister(t *testing.T) {
	page := headerTokens("Sistemul", "informatic", "național", "RO", "e-Case", "de", "marcat")

	tpl := Detect(page, Defaults())
	require.NotNil(t, tpl)
	assert.Equal(t, KindCashRegister, tpl.Kind)
}

func TestDetectUnknownDocument(t *testing.T) {
	page := headerTokens("Declarație", "privind", "obligațiile", "de", "plată")

	assert.Nil(t, Detect(page, Defaults()))
}

func TestDetectEmptyHeader(t *testing.T) {
	// Marker words outside the header cell must not match.
	page := []pdfgeom.Token{
		{Text: "Sistemul", Page: 1, BBox: pdfgeom.NewRect(20, 100, 60, 110)},
		{Text: "național", Page: 1, BBox: pdfgeom.NewRect(70, 100, 110, 110)},
		{Text: "RO", Page: 1, BBox: pdfgeom.NewRect(120, 100, 135, 110)},
		{Text: "e-Factura", Page: 1, BBox: pdfgeom.NewRect(140, 100, 190, 110)},
	}

	assert.Nil(t, Detect(page, Defaults()))
	assert.Nil(t, Detect(nil, Defaults()))
}

func TestStartY(t *testing.T) {
	assert.Equal(t, 352.0, Invoice.StartY(1))
	assert.Equal(t, 490.0, Invoice.StartY(2))
	assert.Equal(t, 490.0, Invoice.StartY(7))
}

func TestCellLookup(t *testing.T) {
	c, ok := Invoice.Cell(FieldInvoiceType)
	require.True(t, ok)
	assert.Equal(t, 20.0, c.Width)
	assert.Equal(t, RoleHeader, c.Role)

	c, ok = Invoice.Cell(FieldVatBase)
	require.True(t, ok)
	assert.Equal(t, RoleDetail, c.Role)

	_, ok = Invoice.Cell("nonexistent")
	assert.False(t, ok)
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "nationala", FoldDiacritics("națională"))
	assert.Equal(t, "Timisoara", FoldDiacritics("Timişoara"))
	assert.Equal(t, "intarziere", FoldDiacritics("întârziere"))
	assert.Equal(t, "plain ascii", FoldDiacritics("plain ascii"))
}

func TestFromYAMLOverrides(t *testing.T) {
	src := []byte(`
invoice:
  row_height: 21
  cell_widths:
    upload_id: 50
cash_register:
  bottom_margin: 30
`)

	tpls, err := FromYAML(src)
	require.NoError(t, err)
	require.Len(t, tpls, 2)

	inv, cash := tpls[0], tpls[1]
	assert.Equal(t, 21.0, inv.RowHeight)
	c, ok := inv.Cell(FieldUploadID)
	require.True(t, ok)
	assert.Equal(t, 50.0, c.Width)
	assert.Equal(t, 30.0, cash.BottomMargin)

	// Built-ins stay untouched.
	assert.Equal(t, 20.0, Invoice.RowHeight)
	orig, _ := Invoice.Cell(FieldUploadID)
	assert.Equal(t, 48.0, orig.Width)
	assert.Equal(t, 0.35*72, CashRegister.BottomMargin)
}

func TestFromYAMLUnknownCell(t *testing.T) {
	_, err := FromYAML([]byte("invoice:\n  cell_widths:\n    bogus: 10\n"))
	assert.Error(t, err)
}

func TestFromYAMLEmpty(t *testing.T) {
	tpls, err := FromYAML([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Invoice.RowHeight, tpls[0].RowHeight)
	assert.Equal(t, CashRegister.RowHeight, tpls[1].RowHeight)
}
