// Package report renders normalized extraction output into an xlsx workbook
// for the accountants downstream: one sheet per document kind, one
// spreadsheet row per VAT line (invoices) or Z report (cash registers).
// Warnings surface as a DA/NU flag column whose cell comment carries the
// full warning text.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/normalize"
	"github.com/Optisol-SRL/vatee/pkg/roparse"
)

const (
	invoiceSheet      = "Facturi"
	cashRegisterSheet = "AMEF"
)

var invoiceHeaders = []string{
	"Rând în fișier", "Nr. Pagină", "Rând în pagină", "Rând în factură", "Avertismente",
	"Index", "Data inreg.", "CIF emitent", "Denumire emitent", "CIF beneficiar",
	"Denumire beneficiar", "Nr. factur" /*sic*/, "Data emitere", "Data exigib",
	"Data livrare", "Data scadent", "Tip fact.", "Data selectie",
	"Cota TVA", "Baza", "TVA",
}

var cashRegisterHeaders = []string{
	"Rând în fișier", "Nr. Pagină", "Rând în pagină", "Avertismente",
	"N.U.I - A.M.E.F",
	"Numarul de ordine al raportului Z",
	"Data emiterii raportului Z",
	"Valoarea totală zilnică a operațiunilor cu cota de 19%",
	"Valoarea TVA aferentă operațiunilor cu cota de 19%",
	"Valoarea totală zilnică a operațiunilor cu cota de 9%",
	"Valoarea TVA aferentă operațiunilor cu cota de 9%",
	"Valoarea totală zilnică a operațiunilor cu cota de 5%",
	"Valoarea TVA aferentă operațiunilor cu cota de 5%",
	"Valoarea totală zilnică a operațiunilor scutite",
	"Valoarea TVA aferentă operațiunilor scutite",
}

// Build renders the workbook and returns it as bytes. Sheets for absent or
// empty record sets are omitted; at least one sheet must have data.
func Build(output *normalize.Output) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	wroteAny := false
	if len(output.Invoices) > 0 {
		if err := writeInvoices(f, output.Invoices); err != nil {
			return nil, err
		}
		wroteAny = true
	}
	if len(output.CashRegisterReports) > 0 {
		if err := writeCashRegister(f, output.CashRegisterReports); err != nil {
			return nil, err
		}
		wroteAny = true
	}
	if !wroteAny {
		return nil, fmt.Errorf("no records to render")
	}

	// The implicit first sheet is replaced by ours.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeInvoices(f *excelize.File, invoices []*normalize.Invoice) error {
	w, err := newSheetWriter(f, invoiceSheet, invoiceHeaders)
	if err != nil {
		return err
	}

	for _, inv := range invoices {
		rowWarnings := collectInvoiceWarnings(inv)
		for lineIdx, q := range inv.VatQuotas {
			w.nextRow()
			w.cell(q.GlobalIndex)
			w.cell(q.Page)
			w.cell(q.PageIndex)
			w.cell(lineIdx + 1)
			if err := w.warningFlag(rowWarnings); err != nil {
				return err
			}
			w.cell(inv.UploadID)
			w.cell(formatDate(inv.UploadDate))
			w.cell(inv.SellerFiscal)
			w.cell(inv.SellerName)
			w.cell(inv.BuyerFiscal)
			w.cell(inv.BuyerName)
			w.cell(inv.InvoiceNum)
			w.cell(formatDate(inv.IssueDate))
			w.cell(formatDatePtr(inv.TaxDate))
			w.cell(formatDatePtr(inv.DeliveryDate))
			w.cell(formatDatePtr(inv.DueDate))
			w.cell(inv.InvoiceType)
			w.cell(formatDate(inv.SelectionDate))
			w.cell(decimalValue(q.Rate))
			w.cell(decimalValue(q.Base))
			w.cell(decimalValue(q.Value))
		}
	}

	w.fitColumns()
	return w.err
}

func writeCashRegister(f *excelize.File, reports []*normalize.CashRegisterReport) error {
	w, err := newSheetWriter(f, cashRegisterSheet, cashRegisterHeaders)
	if err != nil {
		return err
	}

	for _, rep := range reports {
		w.nextRow()
		w.cell(rep.GlobalIndex)
		w.cell(rep.Page)
		w.cell(rep.PageIndex)
		if err := w.warningFlag(rep.Warnings); err != nil {
			return err
		}
		w.cell(rep.RegisterID)
		w.cell(intPtrValue(rep.ReportID))
		w.cell(formatDatePtr(rep.ReportDate))
		for _, rate := range layout.VatRates {
			pair := rep.Vat[rate]
			w.cell(decimalPtrValue(pair.Base))
			w.cell(decimalPtrValue(pair.Value))
		}
	}

	w.fitColumns()
	return w.err
}

// collectInvoiceWarnings merges the header warnings with every line's, so
// each spreadsheet row of the invoice shows the invoice's full picture.
func collectInvoiceWarnings(inv *normalize.Invoice) []string {
	seen := make(map[string]bool)
	var all []string
	add := func(ws []string) {
		for _, w := range ws {
			if !seen[w] {
				seen[w] = true
				all = append(all, w)
			}
		}
	}
	add(inv.Warnings)
	for _, q := range inv.VatQuotas {
		add(q.Warnings)
	}
	return all
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(roparse.DateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(roparse.DateLayout)
}

func decimalValue(d decimal.Decimal) interface{} {
	f, _ := d.Float64()
	return f
}

func decimalPtrValue(d *decimal.Decimal) interface{} {
	if d == nil {
		return ""
	}
	f, _ := d.Float64()
	return f
}

func intPtrValue(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}
