package vatee

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Optisol-SRL/vatee/pkg/inspect"
	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/pdfgeom"
	"github.com/Optisol-SRL/vatee/pkg/pdftext"
)

// invoiceMarker places the e-Factura marker phrase inside the header cell
// of page one.
func invoiceMarker() []pdfgeom.Token {
	words := []string{"Sistemul", "național", "RO", "e-Factura"}
	tokens := make([]pdfgeom.Token, 0, len(words))
	x := 290.0
	for _, w := range words {
		tokens = append(tokens, pdfgeom.Token{
			Text: w,
			Page: 1,
			BBox: pdfgeom.NewRect(x, 540, x+30, 550),
		})
		x += 40
	}
	return tokens
}

// invoiceRowTokens drops text into the first cells of the band anchored
// at the given Y.
func invoiceRowTokens(y float64, uploadID, uploadDate string) []pdfgeom.Token {
	return []pdfgeom.Token{
		{Text: uploadID, Page: 1, BBox: pdfgeom.NewRect(30, y+4, 60, y+14)},
		{Text: uploadDate, Page: 1, BBox: pdfgeom.NewRect(80, y+4, 120, y+14)},
	}
}

func invoiceDoc(tokens []pdfgeom.Token) *pdftext.Document {
	return &pdftext.Document{Pages: []pdftext.Page{
		{Number: 1, Width: 595, Height: 842, Tokens: tokens},
	}}
}

func TestExtractDocumentNoTemplateMatch(t *testing.T) {
	doc := invoiceDoc([]pdfgeom.Token{
		{Text: "altceva", Page: 1, BBox: pdfgeom.NewRect(300, 540, 340, 550)},
	})

	res, err := ExtractDocument(doc, "x.pdf", Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusNoTemplateMatch, res.Status)
	assert.Equal(t, layout.KindUnknown, res.Kind)
	assert.Empty(t, res.Rows)
}

func TestExtractDocumentNoEntries(t *testing.T) {
	res, err := ExtractDocument(invoiceDoc(invoiceMarker()), "x.pdf", Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusNoEntries, res.Status)
	assert.Equal(t, layout.KindInvoice, res.Kind)
}

func TestExtractDocumentRows(t *testing.T) {
	tokens := invoiceMarker()
	tokens = append(tokens, invoiceRowTokens(352, "5001", "02.07.2024")...)
	tokens = append(tokens, invoiceRowTokens(332, "5002", "03.07.2024")...)

	res, err := ExtractDocument(invoiceDoc(tokens), "x.pdf", Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "5001", res.Rows[0].Field(layout.FieldUploadID))
	assert.Equal(t, "02.07.2024", res.Rows[0].Field(layout.FieldUploadDate))
	assert.Equal(t, "5002", res.Rows[1].Field(layout.FieldUploadID))
	assert.Equal(t, 2, res.Rows[1].RowInPage)
}

func TestExtractDocumentEmptyDocument(t *testing.T) {
	res, err := ExtractDocument(&pdftext.Document{}, "x.pdf", Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusNoTemplateMatch, res.Status)
}

func TestExtractDocumentWritesDebugOverlay(t *testing.T) {
	dir := t.TempDir()
	tokens := append(invoiceMarker(), invoiceRowTokens(352, "5001", "02.07.2024")...)

	res, err := ExtractDocument(invoiceDoc(tokens), "doc.pdf", Options{DebugDir: dir})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)

	data, err := os.ReadFile(filepath.Join(dir, "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExtractGroupRequiresSuccessfulInspection(t *testing.T) {
	_, err := ExtractGroup(nil, Options{})
	assert.Error(t, err)

	_, err = ExtractGroup(&inspect.Result{Type: inspect.ErrorArchiveNoFiles}, Options{})
	assert.Error(t, err)

	_, err = ExtractGroup(&inspect.Result{Type: inspect.Success}, Options{})
	assert.Error(t, err)
}

func TestGroupEmptyAndOutput(t *testing.T) {
	g := &Group{}
	assert.True(t, g.Empty())

	g.Invoice = &InvoiceResult{Status: StatusNoEntries}
	assert.True(t, g.Empty())

	g.Invoice.Status = StatusSuccess
	assert.False(t, g.Empty())

	out := g.Output()
	assert.Nil(t, out.CashRegisterReports)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "no-entries", StatusNoEntries.String())
	assert.Equal(t, "no-template-match", StatusNoTemplateMatch.String())
}
