// Package pdftext reads the native text layer of a PDF and materializes it
// as positioned word tokens, page by page, in the page's own coordinate
// space (origin bottom-left, Y increasing upward).
//
// The underlying reader emits individual text runs, often one glyph at a
// time; this package reassembles them into words by baseline and horizontal
// gap before handing them to the geometry index. Extraction itself never
// touches a PDF: everything downstream of this package works on tokens.
package pdftext

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/Optisol-SRL/vatee/pkg/pdfgeom"
)

// Page is one page's materialized text layer.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Tokens []pdfgeom.Token
}

// Document is a fully materialized text layer, all pages in order.
type Document struct {
	Pages []Page
}

// Load parses PDF bytes and materializes every page's text layer.
func Load(data []byte) (*Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	doc := &Document{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		width, height := pageSize(page)
		doc.Pages = append(doc.Pages, Page{
			Number: i,
			Width:  width,
			Height: height,
			Tokens: assembleWords(i, page.Content().Text),
		})
	}
	return doc, nil
}

// LoadFile reads and materializes a PDF from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Load(data)
}

// a4Width and a4Height are the fallback page dimensions when a page carries
// no resolvable MediaBox.
const (
	a4Width  = 595.0
	a4Height = 842.0
)

func pageSize(page pdf.Page) (width, height float64) {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return a4Width, a4Height
	}
	llx, lly := box.Index(0).Float64(), box.Index(1).Float64()
	urx, ury := box.Index(2).Float64(), box.Index(3).Float64()
	if urx <= llx || ury <= lly {
		return a4Width, a4Height
	}
	return urx - llx, ury - lly
}

// assembleWords groups the raw text runs into word tokens. Runs continue the
// current word while they share its baseline and the horizontal gap stays
// within a fraction of the font size; whitespace runs and line changes end
// the word.
func assembleWords(pageNum int, texts []pdf.Text) []pdfgeom.Token {
	const (
		baselineTolerance = 0.5
		gapFraction       = 0.3
	)

	var tokens []pdfgeom.Token
	var word bytes.Buffer
	var startX, endX, baseY, height float64

	flush := func() {
		if word.Len() == 0 {
			return
		}
		tokens = append(tokens, pdfgeom.Token{
			Text: word.String(),
			Page: pageNum,
			BBox: pdfgeom.NewRect(startX, baseY, endX, baseY+height),
		})
		word.Reset()
	}

	for _, t := range texts {
		if isWhitespace(t.S) {
			flush()
			continue
		}

		gap := gapFraction * t.FontSize
		if gap <= 0 {
			gap = 1
		}

		sameLine := word.Len() > 0 && abs(t.Y-baseY) <= baselineTolerance
		adjacent := sameLine && t.X-endX <= gap && t.X >= startX
		if !adjacent {
			flush()
			startX, baseY = t.X, t.Y
			height = t.FontSize
			if height <= 0 {
				height = 1
			}
		}
		word.WriteString(t.S)
		endX = t.X + t.W
	}
	flush()

	return tokens
}

func isWhitespace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
