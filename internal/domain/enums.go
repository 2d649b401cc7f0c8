package domain

// FileType represents the allowed file types for invoice upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
// image/jpg is not a registered MIME type but shows up from some clients.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/jpg":       FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// MaxFileSizeBytes is the hard upload limit for a single invoice document.
const MaxFileSizeBytes = 10 << 20

// InvoiceCategory distinguishes the purchase register from the sales register.
type InvoiceCategory string

const (
	CategoryPurchase InvoiceCategory = "purchase"
	CategorySales    InvoiceCategory = "sales"
)

// Valid reports whether c is a known register category.
func (c InvoiceCategory) Valid() bool {
	return c == CategoryPurchase || c == CategorySales
}

// InvoiceType classifies the commercial nature of an invoice.
type InvoiceType string

const (
	InvoiceTypeB2B        InvoiceType = "B2B"
	InvoiceTypeB2C        InvoiceType = "B2C"
	InvoiceTypeExport     InvoiceType = "Export"
	InvoiceTypeSEZ        InvoiceType = "SEZ"
	InvoiceTypeCreditNote InvoiceType = "CreditNote"
)

// KnownInvoiceTypes lists the invoice types the extraction prompt may emit.
var KnownInvoiceTypes = map[InvoiceType]bool{
	InvoiceTypeB2B:        true,
	InvoiceTypeB2C:        true,
	InvoiceTypeExport:     true,
	InvoiceTypeSEZ:        true,
	InvoiceTypeCreditNote: true,
}

// SupplyType captures whether a transaction crosses state lines.
type SupplyType string

const (
	SupplyIntraState SupplyType = "intra"
	SupplyInterState SupplyType = "inter"
)

// InvoiceStatus is the lifecycle of an invoice record.
//
//	pending -> error         (terminal pipeline failure)
//	pending -> extracted     (clean extraction, no validation errors)
//	pending -> needs_review  (extraction succeeded, validation found errors)
//	extracted|needs_review -> verified (reviewer sign-off)
type InvoiceStatus string

const (
	InvoiceStatusPending     InvoiceStatus = "pending"
	InvoiceStatusError       InvoiceStatus = "error"
	InvoiceStatusExtracted   InvoiceStatus = "extracted"
	InvoiceStatusNeedsReview InvoiceStatus = "needs_review"
	InvoiceStatusVerified    InvoiceStatus = "verified"
)

var invoiceStatusTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusPending:     {InvoiceStatusError, InvoiceStatusExtracted, InvoiceStatusNeedsReview},
	InvoiceStatusExtracted:   {InvoiceStatusNeedsReview, InvoiceStatusVerified},
	InvoiceStatusNeedsReview: {InvoiceStatusExtracted, InvoiceStatusVerified},
	InvoiceStatusError:       {},
	InvoiceStatusVerified:    {},
}

// CanTransition reports whether moving from s to next is a legal status change.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	for _, allowed := range invoiceStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InvoiceSource records how a document entered the system.
type InvoiceSource string

const (
	SourceManual   InvoiceSource = "manual"
	SourceEmail    InvoiceSource = "email"
	SourceWhatsApp InvoiceSource = "whatsapp"
	SourceBulk     InvoiceSource = "bulk"
)

// Valid reports whether s is a known ingestion source.
func (s InvoiceSource) Valid() bool {
	switch s {
	case SourceManual, SourceEmail, SourceWhatsApp, SourceBulk:
		return true
	}
	return false
}

// IssueType classifies a review finding attached to an invoice field.
type IssueType string

const (
	IssueMissing       IssueType = "missing"
	IssueUnreadable    IssueType = "unreadable"
	IssueMismatch      IssueType = "mismatch"
	IssueInvalidFormat IssueType = "invalid_format"
	IssueInvalid       IssueType = "invalid"
	IssueLowConfidence IssueType = "low_confidence"
)

// IssueStatus is the review lifecycle of an issue. Only open issues may move.
type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "open"
	IssueStatusResolved IssueStatus = "resolved"
	IssueStatusIgnored  IssueStatus = "ignored"
)
