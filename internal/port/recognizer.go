package port

import "context"

// RecognizeInput carries a document for raw text recognition.
type RecognizeInput struct {
	FileBytes   []byte
	ContentType string
}

// RecognizeOutput contains the recognized text and the provider's overall
// confidence in it, in [0,1].
type RecognizeOutput struct {
	Text       string
	Confidence float64
	Provider   string
}

// TextRecognizer abstracts OCR over invoice documents.
type TextRecognizer interface {
	Recognize(ctx context.Context, input RecognizeInput) (*RecognizeOutput, error)
}
