package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Optisol-SRL/vatee/pkg/normalize"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sampleOutput() *normalize.Output {
	due := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	reportDate := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	reportID := 12

	return &normalize.Output{
		Invoices: []*normalize.Invoice{{
			Page: 1, PageIndex: 1, GlobalIndex: 1,
			UploadID:      "5001",
			UploadDate:    time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC),
			SellerFiscal:  "RO1234567",
			SellerName:    "ACME SRL",
			BuyerFiscal:   "RO7654321",
			BuyerName:     "BETA SRL",
			InvoiceNum:    "F-100",
			IssueDate:     time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			DueDate:       &due,
			InvoiceType:   "380",
			SelectionDate: time.Date(2024, time.July, 3, 0, 0, 0, 0, time.UTC),
			Warnings:      []string{"Lipseste CIF emitent."},
			VatQuotas: []*normalize.VatQuota{
				{Page: 1, PageIndex: 1, GlobalIndex: 1, Rate: dec("19"), Base: dec("100"), Value: dec("19")},
				{Page: 1, PageIndex: 2, GlobalIndex: 2, Rate: dec("9"), Base: dec("200"), Value: dec("18")},
			},
		}},
		CashRegisterReports: []*normalize.CashRegisterReport{{
			Page: 1, PageIndex: 1, GlobalIndex: 1,
			RegisterID: "AMEF001",
			ReportID:   &reportID,
			ReportDate: &reportDate,
			Vat: map[int]normalize.VatPair{
				19: {Base: decPtr("100"), Value: decPtr("19")},
				9:  {}, 5: {}, 0: {},
			},
		}},
	}
}

func TestBuildWorkbook(t *testing.T) {
	data, err := Build(sampleOutput())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{invoiceSheet, cashRegisterSheet}, f.GetSheetList())

	// Invoice sheet: header row plus one row per VAT line.
	rows, err := f.GetRows(invoiceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, invoiceHeaders, rows[0][:len(invoiceHeaders)])

	first := rows[1]
	assert.Equal(t, "1", first[0], "global index")
	assert.Equal(t, "1", first[3], "line number within invoice")
	assert.Equal(t, "DA", first[4])
	assert.Equal(t, "5001", first[5])
	assert.Equal(t, "02.07.2024", first[6])
	assert.Equal(t, "F-100", first[11])
	assert.Equal(t, "15.07.2024", first[15])
	assert.Equal(t, "380", first[16])
	assert.Equal(t, "19", first[18])
	assert.Equal(t, "100", first[19])

	second := rows[2]
	assert.Equal(t, "2", second[0])
	assert.Equal(t, "2", second[3], "line number within invoice")
	assert.Equal(t, "9", second[18])

	// Warning comment carries the joined text.
	comments, err := f.GetComments(invoiceSheet)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	for _, c := range comments {
		text := c.Text
		for _, p := range c.Paragraph {
			text += p.Text
		}
		assert.Contains(t, text, "Lipseste CIF emitent.")
	}
}

func TestBuildCashRegisterSheet(t *testing.T) {
	data, err := Build(sampleOutput())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(cashRegisterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, cashRegisterHeaders, rows[0][:len(cashRegisterHeaders)])

	row := rows[1]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "NU", row[3])
	assert.Equal(t, "AMEF001", row[4])
	assert.Equal(t, "12", row[5])
	assert.Equal(t, "01.07.2024", row[6])
	assert.Equal(t, "100", row[7])
	assert.Equal(t, "19", row[8])
}

func TestBuildOmitsEmptySheets(t *testing.T) {
	out := sampleOutput()
	out.CashRegisterReports = nil

	data, err := Build(out)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{invoiceSheet}, f.GetSheetList())
}

func TestBuildNoRecords(t *testing.T) {
	_, err := Build(&normalize.Output{})
	assert.Error(t, err)
}

func TestCollectInvoiceWarningsDeduplicates(t *testing.T) {
	inv := &normalize.Invoice{
		Warnings: []string{"a", "b"},
		VatQuotas: []*normalize.VatQuota{
			{Warnings: []string{"b", "c"}},
			{Warnings: []string{"a"}},
		},
	}
	assert.Equal(t, []string{"a", "b", "c"}, collectInvoiceWarnings(inv))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", formatDate(time.Time{}))
	assert.Equal(t, "05.03.2024", formatDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", formatDatePtr(nil))
}
