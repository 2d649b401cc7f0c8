// Package extract decides how a document becomes a candidate invoice: direct
// multimodal structuring where possible, recognize-then-structure otherwise.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"saralgst/internal/domain"
	"saralgst/internal/port"
)

// Extraction strategies.
const (
	StrategyDirect   = "direct"
	StrategyTwoStage = "two_stage"
)

// Failure stages.
const (
	StageOCR         = "ocr"
	StageStructuring = "structuring"
)

// Failure is the terminal error of an extraction attempt. Stage records which
// half of the fallback path gave out; RawText carries whatever text was
// recognized before the failure so callers can surface it to reviewers.
type Failure struct {
	Stage   string
	Reason  string
	RawText string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("extraction failed at %s stage: %s", f.Stage, f.Reason)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure unwraps err into a *Failure if one is in its chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Extraction is a successful extraction outcome, not yet validated.
type Extraction struct {
	Candidate  *domain.CandidateInvoice
	RawJSON    json.RawMessage
	Confidence float64
	Strategy   string
	ModelUsed  string
}

// Input carries one uploaded document through extraction.
type Input struct {
	FileBytes   []byte
	ContentType string
	Category    domain.InvoiceCategory
}

// Orchestrator runs the extraction strategy decision table. Purchase
// documents try direct multimodal structuring first and fall back to the
// two-stage path; sales documents always take the two-stage path. There are
// no automatic retries: each provider is called at most once per attempt.
type Orchestrator struct {
	recognizer    port.TextRecognizer
	structurer    port.InvoiceStructurer
	directEnabled bool
}

// NewOrchestrator creates an extraction orchestrator.
func NewOrchestrator(recognizer port.TextRecognizer, structurer port.InvoiceStructurer, directEnabled bool) *Orchestrator {
	return &Orchestrator{
		recognizer:    recognizer,
		structurer:    structurer,
		directEnabled: directEnabled,
	}
}

// Extract turns a document into a candidate invoice. A returned error is
// always a *Failure and is terminal for this attempt.
func (o *Orchestrator) Extract(ctx context.Context, input Input) (*Extraction, error) {
	if input.Category == domain.CategoryPurchase && o.directEnabled {
		out, err := o.structurer.StructureDocument(ctx, port.StructureDocumentInput{
			FileBytes:   input.FileBytes,
			ContentType: input.ContentType,
			Category:    input.Category,
		})
		if err == nil {
			conf := out.Candidate.Confidence
			overall := (conf.SupplierGSTIN + conf.InvoiceNumber + conf.TaxValues) / 3
			return &Extraction{
				Candidate:  out.Candidate,
				RawJSON:    out.RawJSON,
				Confidence: overall,
				Strategy:   StrategyDirect,
				ModelUsed:  out.ModelUsed,
			}, nil
		}
		log.Printf("extract.Orchestrator.Extract: direct structuring failed, falling back to two-stage: %v", err)
	}

	recognized, err := o.recognizer.Recognize(ctx, port.RecognizeInput{
		FileBytes:   input.FileBytes,
		ContentType: input.ContentType,
	})
	if err != nil {
		return nil, &Failure{
			Stage:  StageOCR,
			Reason: err.Error(),
			Err:    err,
		}
	}
	if recognized.Text == "" {
		return nil, &Failure{
			Stage:  StageOCR,
			Reason: "no text recognized in document",
		}
	}

	out, err := o.structurer.StructureText(ctx, port.StructureTextInput{
		Text:     recognized.Text,
		Category: input.Category,
	})
	if err != nil {
		return nil, &Failure{
			Stage:   StageStructuring,
			Reason:  err.Error(),
			RawText: recognized.Text,
			Err:     err,
		}
	}

	return &Extraction{
		Candidate:  out.Candidate,
		RawJSON:    out.RawJSON,
		Confidence: recognized.Confidence,
		Strategy:   StrategyTwoStage,
		ModelUsed:  out.ModelUsed,
	}, nil
}
