// Package inspect decides what an input file actually is: a bare ledger
// PDF, a report archive holding candidate ledger PDFs, or neither. It only
// sniffs and template-verifies; extraction proper lives elsewhere.
//
// Two quirks of the upstream portal are handled deliberately: archives are
// sometimes saved with a .pdf name, so a file that will not open as a PDF is
// retried as a zip; and an archive carries at most one invoice ledger and
// one cash-register ledger, named P300_Facturi_*.pdf and P300_Amef_*.pdf.
package inspect

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/pdftext"
)

// ResultType is the outcome of an inspection.
type ResultType int

const (
	Success ResultType = iota
	ErrorReadFile
	ErrorUnknownType
	ErrorArchiveNoFiles
	ErrorArchiveTooManyFiles
	ErrorPdfUnknownTemplate
	ErrorGeneric
)

// CandidatePDF is a template-verified ledger PDF ready for extraction.
type CandidatePDF struct {
	FileName string
	Data     []byte
}

// Result carries the inspection outcome. On Success at least one of the two
// candidates is set.
type Result struct {
	Type            ResultType
	InvoicePDF      *CandidatePDF
	CashRegisterPDF *CandidatePDF
}

const (
	invoicePrefix      = "P300_Facturi_"
	cashRegisterPrefix = "P300_Amef_"
)

// Inspect reads and classifies the file at path.
func Inspect(path string, log *zap.Logger) *Result {
	data, err := os.ReadFile(path)
	if err != nil {
		if log != nil {
			log.Warn("reading input file", zap.String("path", path), zap.Error(err))
		}
		return &Result{Type: ErrorReadFile}
	}
	return InspectBytes(filepathBase(path), data, log)
}

// InspectBytes classifies in-memory file content by its name's extension.
func InspectBytes(name string, data []byte, log *zap.Logger) *Result {
	if log == nil {
		log = zap.NewNop()
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		doc, err := pdftext.Load(data)
		if err != nil {
			// Some client software saves the portal's zip under a .pdf name.
			log.Debug("input does not open as PDF, retrying as archive", zap.Error(err))
			return inspectArchive(data, log)
		}
		return classifyPDF(name, data, doc)
	case ".zip":
		return inspectArchive(data, log)
	default:
		return &Result{Type: ErrorUnknownType}
	}
}

func classifyPDF(name string, data []byte, doc *pdftext.Document) *Result {
	if len(doc.Pages) == 0 {
		return &Result{Type: ErrorPdfUnknownTemplate}
	}
	tpl := layout.Detect(doc.Pages[0].Tokens, layout.Defaults())
	if tpl == nil {
		return &Result{Type: ErrorPdfUnknownTemplate}
	}

	candidate := &CandidatePDF{FileName: name, Data: data}
	res := &Result{Type: Success}
	switch tpl.Kind {
	case layout.KindInvoice:
		res.InvoicePDF = candidate
	case layout.KindCashRegister:
		res.CashRegisterPDF = candidate
	}
	return res
}

func inspectArchive(data []byte, log *zap.Logger) *Result {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Warn("opening archive", zap.Error(err))
		return &Result{Type: ErrorGeneric}
	}

	var invoiceEntries, cashRegisterEntries []*zip.File
	for _, f := range archive.File {
		name := path.Base(f.Name)
		if !strings.HasSuffix(name, ".pdf") {
			continue
		}
		if strings.HasPrefix(name, invoicePrefix) {
			invoiceEntries = append(invoiceEntries, f)
		}
		if strings.HasPrefix(name, cashRegisterPrefix) {
			cashRegisterEntries = append(cashRegisterEntries, f)
		}
	}

	if len(invoiceEntries) > 1 || len(cashRegisterEntries) > 1 {
		return &Result{Type: ErrorArchiveTooManyFiles}
	}
	if len(invoiceEntries) == 0 && len(cashRegisterEntries) == 0 {
		return &Result{Type: ErrorArchiveNoFiles}
	}

	res := &Result{Type: Success}
	if len(invoiceEntries) == 1 {
		res.InvoicePDF = verifyEntry(invoiceEntries[0], layout.Invoice, log)
	}
	if len(cashRegisterEntries) == 1 {
		res.CashRegisterPDF = verifyEntry(cashRegisterEntries[0], layout.CashRegister, log)
	}

	if res.InvoicePDF == nil && res.CashRegisterPDF == nil {
		return &Result{Type: ErrorArchiveNoFiles}
	}
	return res
}

// verifyEntry extracts an archive entry and checks it against the expected
// template. Entries that fail to read or do not match are discarded.
func verifyEntry(f *zip.File, tpl *layout.Template, log *zap.Logger) *CandidatePDF {
	rc, err := f.Open()
	if err != nil {
		log.Warn("opening archive entry", zap.String("entry", f.Name), zap.Error(err))
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		log.Warn("reading archive entry", zap.String("entry", f.Name), zap.Error(err))
		return nil
	}

	doc, err := pdftext.Load(data)
	if err != nil {
		log.Warn("archive entry is not a readable PDF", zap.String("entry", f.Name), zap.Error(err))
		return nil
	}
	if len(doc.Pages) == 0 || !tpl.Matches(doc.Pages[0].Tokens) {
		return nil
	}
	return &CandidatePDF{FileName: path.Base(f.Name), Data: data}
}

func filepathBase(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
