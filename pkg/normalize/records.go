// Package normalize turns the raw row stream of a scanned ledger into typed,
// validated business records.
//
// Parsing is partial-failure tolerant by design: a cell that fails to parse
// or fails a domain constraint leaves the typed field unset or defaulted and
// appends a human-readable warning to the owning record, in the wording the
// business uses. Records are never dropped because of field-level failures.
package normalize

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is one logical invoice from the e-Factura ledger: the header row
// plus the VAT-quota lines accumulated under it.
type Invoice struct {
	Page        int
	PageIndex   int
	GlobalIndex int

	UploadID      string
	UploadDate    time.Time
	SellerFiscal  string
	SellerName    string
	BuyerFiscal   string
	BuyerName     string
	InvoiceNum    string
	IssueDate     time.Time
	TaxDate       *time.Time
	DeliveryDate  *time.Time
	DueDate       *time.Time
	InvoiceType   string
	SelectionDate time.Time

	VatQuotas []*VatQuota
	Warnings  []string
}

// VatQuota is one VAT line of an invoice. Its indexes are those of the row
// it was read from, which for continuation rows differ from the header's.
type VatQuota struct {
	Page        int
	PageIndex   int
	GlobalIndex int

	Rate  decimal.Decimal
	Base  decimal.Decimal
	Value decimal.Decimal

	Warnings []string
}

// VatPair is the (daily base, VAT amount) pair of one cash-register VAT-rate
// bucket. Either side may be absent when its cell failed to parse.
type VatPair struct {
	Base  *decimal.Decimal
	Value *decimal.Decimal
}

// CashRegisterReport is one Z report from the e-Case de marcat ledger.
type CashRegisterReport struct {
	Page        int
	PageIndex   int
	GlobalIndex int

	RegisterID string
	ReportID   *int
	ReportDate *time.Time
	Vat        map[int]VatPair // keyed by VAT rate bucket: 19, 9, 5, 0

	Warnings []string
}

// Output bundles the normalized records of one extraction run, one slice per
// document kind. Either slice may be nil when the corresponding document was
// absent.
type Output struct {
	Invoices            []*Invoice
	CashRegisterReports []*CashRegisterReport
}
