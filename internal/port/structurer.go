package port

import (
	"context"
	"encoding/json"

	"saralgst/internal/domain"
)

// StructureDocumentInput carries a raw document for direct multimodal
// structuring, without a separate OCR step.
type StructureDocumentInput struct {
	FileBytes   []byte
	ContentType string
	Category    domain.InvoiceCategory
}

// StructureTextInput carries OCR text for structuring.
type StructureTextInput struct {
	Text     string
	Category domain.InvoiceCategory
}

// StructureOutput contains the structured candidate invoice along with the
// raw provider JSON kept for audit.
type StructureOutput struct {
	Candidate *domain.CandidateInvoice
	RawJSON   json.RawMessage
	ModelUsed string
}

// InvoiceStructurer abstracts LLM-based invoice structuring. Implementations
// return provider output as-is after shape repair; they do not validate
// business rules.
type InvoiceStructurer interface {
	StructureDocument(ctx context.Context, input StructureDocumentInput) (*StructureOutput, error)
	StructureText(ctx context.Context, input StructureTextInput) (*StructureOutput, error)
}
