// Package overlay renders the geometric walk of an extraction back onto a
// reconstruction of the document: each page's tokens redrawn in place and
// every queried cell rectangle stroked in a rotating color. The output is a
// PDF for visual verification of the template geometry; it plays no part in
// extraction correctness.
package overlay

import (
	"bytes"
	"fmt"
	"os"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/pdfgeom"
)

// palette cycles per traced rectangle so adjacent cells stay telling apart.
var palette = [][3]int{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
	{255, 255, 0},
	{255, 0, 255},
	{0, 255, 255},
	{255, 128, 0},
	{128, 0, 255},
	{0, 128, 0},
	{0, 0, 128},
}

// Debugger implements scan.Tracer on top of an fpdf document builder.
// It is not safe for concurrent use; give each document its own.
type Debugger struct {
	pdf        *fpdf.Fpdf
	pageHeight float64
	colorIndex int
}

// New creates an empty overlay document. Pages are added as the scan
// enters them.
func New() *Debugger {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 8)
	return &Debugger{pdf: pdf}
}

// StartPage opens a fresh page of the original's dimensions and redraws the
// page's tokens at their recorded positions. Diacritics are folded and text
// is re-encoded to ISO-8859-1; glyph fidelity does not matter here.
func (d *Debugger) StartPage(pageNum int, width, height float64, tokens []pdfgeom.Token) {
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	d.pageHeight = height

	d.pdf.SetTextColor(0, 0, 0)
	for _, tok := range tokens {
		size := tok.BBox.Height()
		if size <= 0 {
			size = 8
		}
		d.pdf.SetFontSize(size)

		text := layout.FoldDiacritics(tok.Text)
		if latin1, err := charmap.ISO8859_1.NewEncoder().String(text); err == nil {
			text = latin1
		}
		d.pdf.Text(tok.BBox.LLx, d.flip(tok.BBox.LLy), text)
	}
}

// Rect strokes one queried cell rectangle in the next palette color.
func (d *Debugger) Rect(r pdfgeom.Rect) {
	c := palette[d.colorIndex]
	d.colorIndex = (d.colorIndex + 1) % len(palette)
	d.pdf.SetDrawColor(c[0], c[1], c[2])
	d.pdf.Rect(r.LLx, d.flip(r.URy), r.Width(), r.Height(), "D")
}

// Output renders the overlay document to PDF bytes.
func (d *Debugger) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering overlay PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the overlay document and writes it to path.
func (d *Debugger) WriteFile(path string) error {
	data, err := d.Output()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing overlay PDF: %w", err)
	}
	return nil
}

// flip converts a page-space Y (origin bottom-left, increasing upward) to
// fpdf's top-left downward coordinate system.
func (d *Debugger) flip(y float64) float64 {
	return d.pageHeight - y
}
