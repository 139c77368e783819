// Package vatee wires the extraction pipeline together: template detection
// gates the geometric row scan, and the raw row stream is normalized into
// typed records. The two ledger kinds of a report bundle are independent
// documents and are extracted concurrently.
package vatee

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Optisol-SRL/vatee/pkg/inspect"
	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/normalize"
	"github.com/Optisol-SRL/vatee/pkg/overlay"
	"github.com/Optisol-SRL/vatee/pkg/pdftext"
	"github.com/Optisol-SRL/vatee/pkg/scan"
)

// Status is the tri-state outcome of extracting one document.
type Status int

const (
	StatusSuccess Status = iota
	StatusNoEntries
	StatusNoTemplateMatch
)

// String names the status for logs and CLI output.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoEntries:
		return "no-entries"
	default:
		return "no-template-match"
	}
}

// Options configures a pipeline run. The zero value is usable.
type Options struct {
	// Logger for diagnostics; nil discards everything.
	Logger *zap.Logger
	// Templates overrides the built-in template set; nil uses the defaults.
	Templates []*layout.Template
	// DebugDir, when set, receives one overlay PDF per extracted document.
	DebugDir string
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) templates() []*layout.Template {
	if o.Templates == nil {
		return layout.Defaults()
	}
	return o.Templates
}

// DocumentResult is the raw outcome of scanning one document.
type DocumentResult struct {
	Status Status
	Kind   layout.Kind
	Rows   []scan.RawRow
}

// ExtractDocument detects the document's template and, on a match, scans
// every page for raw rows. When the first page matches no template the
// scanner is never invoked and the result is StatusNoTemplateMatch.
func ExtractDocument(doc *pdftext.Document, fileName string, opts Options) (*DocumentResult, error) {
	log := opts.logger()

	if len(doc.Pages) == 0 {
		return &DocumentResult{Status: StatusNoTemplateMatch, Kind: layout.KindUnknown}, nil
	}

	tpl := layout.Detect(doc.Pages[0].Tokens, opts.templates())
	if tpl == nil {
		log.Info("document matches no known template", zap.String("file", fileName))
		return &DocumentResult{Status: StatusNoTemplateMatch, Kind: layout.KindUnknown}, nil
	}
	log.Info("template matched",
		zap.String("file", fileName), zap.Stringer("template", tpl.Kind))

	var tracer scan.Tracer = scan.NopTracer{}
	var debugger *overlay.Debugger
	if opts.DebugDir != "" {
		debugger = overlay.New()
		tracer = debugger
	}

	var rows []scan.RawRow
	for _, page := range doc.Pages {
		tracer.StartPage(page.Number, page.Width, page.Height, page.Tokens)
		pageRows := scan.Page(page.Number, page.Tokens, tpl, tracer)
		for _, row := range pageRows {
			log.Debug("extracted row",
				zap.Int("page", row.Page),
				zap.Int("rowInPage", row.RowInPage),
				zap.String("cells", tabJoin(row)))
		}
		rows = append(rows, pageRows...)
	}

	if debugger != nil {
		path := filepath.Join(opts.DebugDir, fileName)
		if err := debugger.WriteFile(path); err != nil {
			return nil, fmt.Errorf("writing debug overlay: %w", err)
		}
		log.Info("debug overlay written", zap.String("path", path))
	}

	status := StatusSuccess
	if len(rows) == 0 {
		status = StatusNoEntries
	}
	return &DocumentResult{Status: status, Kind: tpl.Kind, Rows: rows}, nil
}

// InvoiceResult is the normalized outcome of the invoice ledger.
type InvoiceResult struct {
	Status   Status
	Invoices []*normalize.Invoice
}

// CashRegisterResult is the normalized outcome of the cash-register ledger.
type CashRegisterResult struct {
	Status  Status
	Reports []*normalize.CashRegisterReport
}

// Group holds the outcome for a report bundle; either side may be nil when
// the inspection found no document of that kind.
type Group struct {
	Invoice      *InvoiceResult
	CashRegister *CashRegisterResult
}

// Empty reports whether no document in the group extracted successfully.
func (g *Group) Empty() bool {
	return (g.Invoice == nil || g.Invoice.Status != StatusSuccess) &&
		(g.CashRegister == nil || g.CashRegister.Status != StatusSuccess)
}

// Output bundles the group's records for the workbook renderer.
func (g *Group) Output() *normalize.Output {
	out := &normalize.Output{}
	if g.Invoice != nil {
		out.Invoices = g.Invoice.Invoices
	}
	if g.CashRegister != nil {
		out.CashRegisterReports = g.CashRegister.Reports
	}
	return out
}

// ExtractGroup extracts and normalizes every document an inspection found.
// The documents share no state, so they run concurrently. Inspection must
// have succeeded with at least one candidate; anything else is a violated
// precondition, not a data problem.
func ExtractGroup(ins *inspect.Result, opts Options) (*Group, error) {
	if ins == nil || ins.Type != inspect.Success {
		return nil, errors.New("extraction requires a successful inspection")
	}
	if ins.InvoicePDF == nil && ins.CashRegisterPDF == nil {
		return nil, errors.New("inspection carries no candidate documents")
	}

	group := &Group{}
	var wg sync.WaitGroup
	var invoiceErr, cashRegisterErr error

	if ins.InvoicePDF != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			group.Invoice, invoiceErr = extractInvoices(ins.InvoicePDF, opts)
		}()
	}
	if ins.CashRegisterPDF != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			group.CashRegister, cashRegisterErr = extractCashRegister(ins.CashRegisterPDF, opts)
		}()
	}
	wg.Wait()

	if err := errors.Join(invoiceErr, cashRegisterErr); err != nil {
		return nil, err
	}
	return group, nil
}

func extractInvoices(c *inspect.CandidatePDF, opts Options) (*InvoiceResult, error) {
	res, err := extractCandidate(c, layout.KindInvoice, opts)
	if err != nil {
		return nil, err
	}
	out := &InvoiceResult{Status: res.Status}
	if res.Status == StatusSuccess {
		tpl := templateFor(layout.KindInvoice, opts.templates())
		out.Invoices = normalize.Invoices(res.Rows, tpl, opts.logger())
	}
	return out, nil
}

func extractCashRegister(c *inspect.CandidatePDF, opts Options) (*CashRegisterResult, error) {
	res, err := extractCandidate(c, layout.KindCashRegister, opts)
	if err != nil {
		return nil, err
	}
	out := &CashRegisterResult{Status: res.Status}
	if res.Status == StatusSuccess {
		out.Reports = normalize.CashRegisterReports(res.Rows)
	}
	return out, nil
}

// extractCandidate re-parses the candidate bytes and extracts against the
// single template its archive slot promises.
func extractCandidate(c *inspect.CandidatePDF, kind layout.Kind, opts Options) (*DocumentResult, error) {
	doc, err := pdftext.Load(c.Data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.FileName, err)
	}
	scoped := opts
	scoped.Templates = []*layout.Template{templateFor(kind, opts.templates())}
	return ExtractDocument(doc, c.FileName, scoped)
}

func templateFor(kind layout.Kind, templates []*layout.Template) *layout.Template {
	for _, t := range templates {
		if t.Kind == kind {
			return t
		}
	}
	// The template set is static configuration; a missing kind is a
	// programming error.
	panic(fmt.Sprintf("vatee: no template for kind %s", kind))
}

func tabJoin(row scan.RawRow) string {
	parts := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		parts[i] = c.Text
	}
	return strings.Join(parts, "\t")
}
