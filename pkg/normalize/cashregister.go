package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/roparse"
	"github.com/Optisol-SRL/vatee/pkg/scan"
)

// CashRegisterReports normalizes the Z-report ledger: every non-empty row
// is already one logical record, so no grouping state is needed.
func CashRegisterReports(rows []scan.RawRow) []*CashRegisterReport {
	var out []*CashRegisterReport
	idx := newCounters()

	for _, row := range rows {
		if row.Empty() {
			continue
		}
		page, pageIndex, globalIndex := idx.take(row)
		out = append(out, parseCashRegisterRow(row, page, pageIndex, globalIndex))
	}

	return out
}

func parseCashRegisterRow(row scan.RawRow, page, pageIndex, globalIndex int) *CashRegisterReport {
	rep := &CashRegisterReport{
		Page:        page,
		PageIndex:   pageIndex,
		GlobalIndex: globalIndex,
		Vat:         make(map[int]VatPair, len(layout.VatRates)),
	}

	rep.RegisterID = strings.TrimSpace(row.Field(layout.FieldRegisterID))
	if rep.RegisterID == "" {
		rep.Warnings = append(rep.Warnings, "Nu am putut extrage NUI AMEF")
	}

	if n, ok := roparse.Int(row.Field(layout.FieldReportID)); ok {
		rep.ReportID = &n
	} else {
		rep.Warnings = append(rep.Warnings, "Nu am putut extrage nr. ordine Z")
	}

	if d, ok := roparse.Date(row.Field(layout.FieldReportDate)); ok {
		rep.ReportDate = &d
	} else {
		rep.Warnings = append(rep.Warnings, "Nu am putut extrage data raportului Z")
	}

	for _, rate := range layout.VatRates {
		base := optionalDecimal(row.Field(layout.VatBaseField(rate)))
		value := optionalDecimal(row.Field(layout.VatValueField(rate)))

		// One-sided pairs are a consistency problem worth flagging, but the
		// parsed side is stored regardless.
		if base == nil && value != nil {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("Am extras valoarea TVA dar nu si baza pentru cota %d%%", rate))
		}
		if base != nil && value == nil {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("Am extras baza TVA dar nu si valoarea pentru cota %d%%", rate))
		}

		rep.Vat[rate] = VatPair{Base: base, Value: value}
	}

	return rep
}

// optionalDecimal maps blank or unparseable cells to nil; the pair-level
// consistency check is the caller's concern.
func optionalDecimal(s string) *decimal.Decimal {
	if roparse.Blank(s) {
		return nil
	}
	d, ok := roparse.Decimal(s)
	if !ok {
		return nil
	}
	return &d
}
