package normalize

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/roparse"
	"github.com/Optisol-SRL/vatee/pkg/scan"
)

// validInvoiceTypes is the UNTDID 1001 subset the ANAF ledger emits.
var validInvoiceTypes = []string{"380", "381", "384", "389", "751"}

// Invoices folds the ordered row stream into logical invoices. The grouping
// is a two-state accumulator: with no open header, a detail-only row cannot
// be attributed to any invoice and is dropped; any other row opens a new
// header (committing it immediately) and becomes the target for the VAT
// lines that follow, its own included.
func Invoices(rows []scan.RawRow, tpl *layout.Template, log *zap.Logger) []*Invoice {
	if log == nil {
		log = zap.NewNop()
	}

	var out []*Invoice
	var open *Invoice
	idx := newCounters()

	for _, row := range rows {
		if row.Empty() {
			continue
		}
		page, pageIndex, globalIndex := idx.take(row)

		if !row.DetailOnly(tpl) {
			open = parseInvoiceHeader(row, page, pageIndex, globalIndex)
			out = append(out, open)
		}

		if open == nil {
			// Malformed leading fragment: a detail row before any header.
			log.Debug("dropping detail row with no open invoice",
				zap.Int("page", page), zap.Int("rowInPage", row.RowInPage))
			continue
		}

		open.VatQuotas = append(open.VatQuotas, parseVatLine(row, page, pageIndex, globalIndex))
	}

	return out
}

func parseInvoiceHeader(row scan.RawRow, page, pageIndex, globalIndex int) *Invoice {
	inv := &Invoice{Page: page, PageIndex: pageIndex, GlobalIndex: globalIndex}

	if d, ok := roparse.Date(row.Field(layout.FieldUploadDate)); ok {
		inv.UploadDate = d
	} else {
		inv.Warnings = append(inv.Warnings, "Dată încărcare invalidă.")
	}

	inv.UploadID = strings.TrimSpace(row.Field(layout.FieldUploadID))
	if inv.UploadID == "" {
		inv.Warnings = append(inv.Warnings, "Lipseste Indexul facturii.")
	}

	inv.SellerFiscal = strings.TrimSpace(row.Field(layout.FieldSellerFiscal))
	if inv.SellerFiscal == "" {
		inv.Warnings = append(inv.Warnings, "Lipseste CIF emitent.")
	}
	inv.SellerName = strings.TrimSpace(row.Field(layout.FieldSellerName))

	inv.BuyerFiscal = strings.TrimSpace(row.Field(layout.FieldBuyerFiscal))
	if inv.BuyerFiscal == "" {
		inv.Warnings = append(inv.Warnings, "Lipseste CIF beneficiar.")
	}
	inv.BuyerName = strings.TrimSpace(row.Field(layout.FieldBuyerName))

	inv.InvoiceNum = strings.TrimSpace(row.Field(layout.FieldInvoiceNum))
	if inv.InvoiceNum == "" {
		inv.Warnings = append(inv.Warnings, "Lipseste numarul facturii.")
	}

	if d, ok := roparse.Date(row.Field(layout.FieldIssueDate)); ok {
		inv.IssueDate = d
	} else {
		inv.Warnings = append(inv.Warnings, "Dată emitere invalidă.")
	}

	inv.TaxDate = optionalDate(row.Field(layout.FieldTaxDate), &inv.Warnings, "Dată exigibilitate invalidă.")
	inv.DeliveryDate = optionalDate(row.Field(layout.FieldDeliveryDate), &inv.Warnings, "Dată livrare invalidă.")
	inv.DueDate = optionalDate(row.Field(layout.FieldDueDate), &inv.Warnings, "Dată scadență invalidă.")

	// Unknown type codes are kept verbatim; the warning is the only signal.
	inv.InvoiceType = row.Field(layout.FieldInvoiceType)
	if !isValidInvoiceType(inv.InvoiceType) {
		inv.Warnings = append(inv.Warnings, fmt.Sprintf("Tip factură invalid '%s'.", inv.InvoiceType))
	}

	if d, ok := roparse.Date(row.Field(layout.FieldSelectionDate)); ok {
		inv.SelectionDate = d
	} else {
		inv.Warnings = append(inv.Warnings, "Dată selecție invalidă.")
	}

	return inv
}

// optionalDate maps an empty cell to nil with no warning; a non-empty cell
// that fails to parse warns and stays nil.
func optionalDate(s string, warnings *[]string, warning string) *time.Time {
	if roparse.Blank(s) {
		return nil
	}
	d, ok := roparse.Date(s)
	if !ok {
		*warnings = append(*warnings, warning)
		return nil
	}
	return &d
}

func isValidInvoiceType(code string) bool {
	for _, t := range validInvoiceTypes {
		if code == t {
			return true
		}
	}
	return false
}

func parseVatLine(row scan.RawRow, page, pageIndex, globalIndex int) *VatQuota {
	q := &VatQuota{Page: page, PageIndex: pageIndex, GlobalIndex: globalIndex}

	if d, ok := roparse.Decimal(row.Field(layout.FieldVatQuota)); ok {
		q.Rate = d
	} else {
		q.Warnings = append(q.Warnings, "Cotă TVA invalidă.")
	}
	if d, ok := roparse.Decimal(row.Field(layout.FieldVatBase)); ok {
		q.Base = d
	} else {
		q.Warnings = append(q.Warnings, "Bază TVA invalidă.")
	}
	if d, ok := roparse.Decimal(row.Field(layout.FieldVatValue)); ok {
		q.Value = d
	} else {
		q.Warnings = append(q.Warnings, "Valoare TVA invalidă.")
	}

	return q
}
