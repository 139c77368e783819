package layout

// Field names for the invoice ledger template.
const (
	FieldUploadID      = "upload_id"
	FieldUploadDate    = "upload_date"
	FieldSellerFiscal  = "seller_fiscal"
	FieldSellerName    = "seller_name"
	FieldBuyerFiscal   = "buyer_fiscal"
	FieldBuyerName     = "buyer_name"
	FieldInvoiceNum    = "invoice_num"
	FieldIssueDate     = "issue_date"
	FieldTaxDate       = "tax_date"
	FieldDeliveryDate  = "delivery_date"
	FieldDueDate       = "due_date"
	FieldInvoiceType   = "invoice_type"
	FieldSelectionDate = "selection_date"
	FieldVatQuota      = "vat_quota"
	FieldVatBase       = "vat_base"
	FieldVatValue      = "vat_value"
)

// Field names for the cash-register ledger template.
const (
	FieldRegisterID = "register_id"
	FieldReportID   = "report_id"
	FieldReportDate = "report_date"
)

// VatRates are the cash-register VAT-rate buckets, in column order.
var VatRates = []int{19, 9, 5, 0}

// VatBaseField returns the cell name holding the daily base amount for a
// VAT-rate bucket.
func VatBaseField(rate int) string {
	return "vat" + itoa(rate) + "_base"
}

// VatValueField returns the cell name holding the VAT amount for a VAT-rate
// bucket.
func VatValueField(rate int) string {
	return "vat" + itoa(rate) + "_value"
}

func itoa(rate int) string {
	switch rate {
	case 19:
		return "19"
	case 9:
		return "9"
	case 5:
		return "5"
	case 0:
		return "0"
	default:
		panic("layout: unknown VAT rate bucket")
	}
}

const ptPerInch = 72

// markerHeader is the header marker cell both ANAF report layouts share,
// in the upper-right quadrant of page 1.
var markerHeader = CellBox{X: 280, Y: 500, W: 400, H: 100}

// Invoice is the RO e-Factura invoice ledger layout. Offsets were measured
// against the reports the ANAF portal generates.
var Invoice = &Template{
	Kind:   KindInvoice,
	Marker: "Sistemul national RO e-Factura",
	Header: markerHeader,

	RowHeight:        20,
	StartX:           25,
	FirstPageStartY:  352,
	OtherPagesStartY: 490,
	BottomMargin:     40,

	Cells: []CellSpec{
		{Name: FieldUploadID, Width: 48},
		{Name: FieldUploadDate, Width: 51},
		{Name: FieldSellerFiscal, Width: 47},
		{Name: FieldSellerName, Width: 72},
		{Name: FieldBuyerFiscal, Width: 53},
		{Name: FieldBuyerName, Width: 60},
		{Name: FieldInvoiceNum, Width: 70},
		{Name: FieldIssueDate, Width: 55},
		{Name: FieldTaxDate, Width: 45},
		{Name: FieldDeliveryDate, Width: 49},
		{Name: FieldDueDate, Width: 45},
		{Name: FieldInvoiceType, Width: 20},
		{Name: FieldSelectionDate, Width: 50},
		{Name: FieldVatQuota, Width: 22, Role: RoleDetail},
		{Name: FieldVatBase, Width: 62, Role: RoleDetail},
		{Name: FieldVatValue, Width: 62, Role: RoleDetail},
	},
}

// CashRegister is the RO e-Case de marcat Z-report ledger layout. The report
// is landscape A4 (595pt tall); vertical offsets derive from the masthead
// and table header heights in inches.
var CashRegister = &Template{
	Kind:   KindCashRegister,
	Marker: "Sistemul informatic national RO e-Case de marcat",
	Header: markerHeader,

	RowHeight:        13,
	StartX:           20,
	FirstPageStartY:  595 - 1.67*ptPerInch - 0.57*ptPerInch - 13,
	OtherPagesStartY: 595 - 0.31*ptPerInch - 0.57*ptPerInch - 13,
	BottomMargin:     0.35 * ptPerInch,

	Cells: []CellSpec{
		{Name: FieldRegisterID, Width: 70},
		{Name: FieldReportID, Width: 54},
		{Name: FieldReportDate, Width: 55},
		{Name: VatBaseField(19), Width: 1.1 * ptPerInch},
		{Name: VatValueField(19), Width: 1.21 * ptPerInch},
		{Name: VatBaseField(9), Width: 1 * ptPerInch},
		{Name: VatValueField(9), Width: 1.04 * ptPerInch},
		{Name: VatBaseField(5), Width: 1.04 * ptPerInch},
		{Name: VatValueField(5), Width: 1.04 * ptPerInch},
		{Name: VatBaseField(0), Width: 1.04 * ptPerInch},
		{Name: VatValueField(0), Width: 1.17 * ptPerInch},
	},
}

// Defaults returns the built-in template set, in detection order.
func Defaults() []*Template {
	return []*Template{Invoice, CashRegister}
}
