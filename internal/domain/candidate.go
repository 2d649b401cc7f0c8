package domain

// FieldConfidence carries per-field extraction confidence in [0,1].
type FieldConfidence struct {
	SupplierGSTIN float64 `json:"supplier_gstin"`
	CustomerGSTIN float64 `json:"customer_gstin"`
	InvoiceNumber float64 `json:"invoice_number"`
	TaxValues     float64 `json:"tax_values"`
}

// CandidateInvoice is the provider-agnostic result of structuring one invoice
// document. String fields are empty (never omitted) when the document lacks
// them; numeric fields default to zero. It has not been validated yet.
type CandidateInvoice struct {
	SupplierName      string          `json:"supplier_name"`
	SupplierGSTIN     string          `json:"supplier_gstin"`
	BuyerGSTIN        string          `json:"buyer_gstin"`
	CustomerName      string          `json:"customer_name"`
	CustomerGSTIN     string          `json:"customer_gstin"`
	InvoiceNumber     string          `json:"invoice_number"`
	InvoiceDate       string          `json:"invoice_date"`
	InvoiceType       string          `json:"invoice_type"`
	HSNOrSACCode      string          `json:"hsn_or_sac_code"`
	Description       string          `json:"description_of_goods_services"`
	Quantity          float64         `json:"quantity"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	RatePerUnit       float64         `json:"rate_per_unit"`
	TaxableValue      float64         `json:"taxable_value"`
	CGSTAmount        float64         `json:"cgst_amount"`
	SGSTAmount        float64         `json:"sgst_amount"`
	IGSTAmount        float64         `json:"igst_amount"`
	CessAmount        float64         `json:"cess_amount"`
	TotalInvoiceValue float64         `json:"total_invoice_value"`
	IRN               string          `json:"irn"`
	IsReverseCharge   bool            `json:"is_reverse_charge"`
	IsITCEligible     *bool           `json:"is_itc_eligible"`
	Confidence        FieldConfidence `json:"confidence"`
}

// ITCEligible resolves the nullable eligibility flag. Absent means eligible;
// only an explicit false opts an invoice out of input tax credit.
func (c *CandidateInvoice) ITCEligible() bool {
	return c.IsITCEligible == nil || *c.IsITCEligible
}
