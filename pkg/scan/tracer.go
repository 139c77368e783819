package scan

import "github.com/Optisol-SRL/vatee/pkg/pdfgeom"

// Tracer observes the geometric walk for diagnostics: every page entered
// and every cell rectangle queried. It is never required for correctness;
// the default implementation discards everything. The debug overlay in
// pkg/overlay renders the traced rectangles back onto a copy of the page.
type Tracer interface {
	// StartPage is called once per page before any of its cells are read.
	StartPage(pageNum int, width, height float64, tokens []pdfgeom.Token)
	// Rect is called for each cell rectangle queried, in scan order.
	Rect(r pdfgeom.Rect)
}

// NopTracer discards all trace events.
type NopTracer struct{}

// StartPage implements Tracer.
func (NopTracer) StartPage(int, float64, float64, []pdfgeom.Token) {}

// Rect implements Tracer.
func (NopTracer) Rect(pdfgeom.Rect) {}
