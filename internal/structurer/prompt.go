package structurer

import "saralgst/internal/domain"

const candidateSchema = `{
  "supplier_name": "",
  "supplier_gstin": "",
  "buyer_gstin": "",
  "customer_name": "",
  "customer_gstin": "",
  "invoice_number": "",
  "invoice_date": "",
  "invoice_type": "",
  "hsn_or_sac_code": "",
  "description_of_goods_services": "",
  "quantity": 0,
  "unit_of_measure": "",
  "rate_per_unit": 0,
  "taxable_value": 0,
  "cgst_amount": 0,
  "sgst_amount": 0,
  "igst_amount": 0,
  "cess_amount": 0,
  "total_invoice_value": 0,
  "irn": "",
  "is_reverse_charge": false,
  "is_itc_eligible": true,
  "confidence": {
    "supplier_gstin": 0.0,
    "customer_gstin": 0.0,
    "invoice_number": 0.0,
    "tax_values": 0.0
  }
}`

// BuildInvoicePrompt returns the structuring prompt for a GST tax invoice.
// The role mapping differs by register: on a purchase invoice the document's
// seller is the supplier and the tenant is the buyer; on a sales invoice the
// tenant is the supplier and the document's buyer is the customer.
func BuildInvoicePrompt(category domain.InvoiceCategory) string {
	roleMapping := `- The party that ISSUED the invoice is the supplier: map its name to "supplier_name" and its GSTIN to "supplier_gstin".
- The party BILLED by the invoice is the buyer: map its GSTIN to "buyer_gstin". Leave "customer_name" and "customer_gstin" empty.`
	if category == domain.CategorySales {
		roleMapping = `- The party that ISSUED the invoice is the seller: map its name to "supplier_name" and its GSTIN to "supplier_gstin".
- The party BILLED by the invoice is the customer: map its name to "customer_name" and its GSTIN to "customer_gstin". Leave "buyer_gstin" empty.`
	}

	return `You are a GST tax invoice data extraction assistant. Extract the invoice data into the following JSON structure.

IMPORTANT INSTRUCTIONS:
` + roleMapping + `
- GSTINs are exactly 15 characters: 2 digits, 5 uppercase letters, 4 digits, 1 letter, 1 alphanumeric, the letter Z, 1 alphanumeric. Return them uppercase with no spaces.
- Normalize all dates to YYYY-MM-DD. Strip timestamps and any surrounding text.
- All monetary amounts and quantities must be JSON numbers, never strings.
- "invoice_type" must be one of: B2B, B2C, Export, SEZ, CreditNote.
- If a field is not present in the document, use empty string for text, 0 for numbers, and false for booleans. Never omit a key.
- "confidence" values are floats between 0.0 and 1.0; use 0.0 for fields not found.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation - just the raw JSON object matching this schema:

` + candidateSchema
}
