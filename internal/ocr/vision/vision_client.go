package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"saralgst/internal/config"
	"saralgst/internal/port"
)

const (
	imageEndpoint = "https://vision.googleapis.com/v1/images:annotate"
	fileEndpoint  = "https://vision.googleapis.com/v1/files:annotate"
)

// Client implements port.TextRecognizer using the Google Cloud Vision API.
// Images go through images:annotate; PDFs go through files:annotate with
// inline content. Both use DOCUMENT_TEXT_DETECTION.
type Client struct {
	apiKey        string
	imageEndpoint string
	fileEndpoint  string
	client        *http.Client
}

// NewClient creates a Vision-based text recognizer.
func NewClient(cfg *config.OCRConfig) *Client {
	return newClient(cfg, imageEndpoint, fileEndpoint)
}

// NewClientWithEndpoints creates a client pointing at custom API endpoints (for testing).
func NewClientWithEndpoints(cfg *config.OCRConfig, imageURL, fileURL string) *Client {
	return newClient(cfg, imageURL, fileURL)
}

func newClient(cfg *config.OCRConfig, imageURL, fileURL string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:        cfg.APIKey,
		imageEndpoint: imageURL,
		fileEndpoint:  fileURL,
		client:        &http.Client{Timeout: timeout},
	}
}

func (c *Client) Recognize(ctx context.Context, input port.RecognizeInput) (*port.RecognizeOutput, error) {
	encoded := base64.StdEncoding.EncodeToString(input.FileBytes)

	var endpoint string
	var reqBody map[string]interface{}
	if input.ContentType == "application/pdf" {
		endpoint = c.fileEndpoint
		reqBody = map[string]interface{}{
			"requests": []map[string]interface{}{
				{
					"inputConfig": map[string]interface{}{
						"content":  encoded,
						"mimeType": "application/pdf",
					},
					"features": []map[string]interface{}{
						{"type": "DOCUMENT_TEXT_DETECTION"},
					},
				},
			},
		}
	} else {
		endpoint = c.imageEndpoint
		reqBody = map[string]interface{}{
			"requests": []map[string]interface{}{
				{
					"image": map[string]interface{}{
						"content": encoded,
					},
					"features": []map[string]interface{}{
						{"type": "DOCUMENT_TEXT_DETECTION"},
					},
				},
			},
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?key="+c.apiKey, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling vision API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if input.ContentType == "application/pdf" {
		return parseFileResponse(respBody)
	}
	return parseImageResponse(respBody)
}

type fullTextAnnotation struct {
	Text  string `json:"text"`
	Pages []struct {
		Confidence float64 `json:"confidence"`
		Blocks     []struct {
			Confidence float64 `json:"confidence"`
		} `json:"blocks"`
	} `json:"pages"`
}

type annotateResponse struct {
	FullTextAnnotation *fullTextAnnotation `json:"fullTextAnnotation"`
	Error              *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func parseImageResponse(body []byte) (*port.RecognizeOutput, error) {
	var resp struct {
		Responses []annotateResponse `json:"responses"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}
	return toOutput(resp.Responses[0])
}

func parseFileResponse(body []byte) (*port.RecognizeOutput, error) {
	var resp struct {
		Responses []struct {
			Responses []annotateResponse `json:"responses"`
		} `json:"responses"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Responses) == 0 || len(resp.Responses[0].Responses) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	// Concatenate page texts and average page confidence across the document.
	var text string
	var confSum float64
	var confCount int
	for _, page := range resp.Responses[0].Responses {
		out, err := toOutput(page)
		if err != nil {
			return nil, err
		}
		if text != "" {
			text += "\n"
		}
		text += out.Text
		confSum += out.Confidence
		confCount++
	}

	confidence := 0.0
	if confCount > 0 {
		confidence = confSum / float64(confCount)
	}
	return &port.RecognizeOutput{Text: text, Confidence: confidence, Provider: "vision"}, nil
}

func toOutput(resp annotateResponse) (*port.RecognizeOutput, error) {
	if resp.Error != nil {
		return nil, fmt.Errorf("vision annotation error: %s", resp.Error.Message)
	}
	if resp.FullTextAnnotation == nil || resp.FullTextAnnotation.Text == "" {
		return nil, fmt.Errorf("no text detected in document")
	}

	// Pages carry a document-level confidence; fall back to block averages
	// when the page value is absent.
	var confSum float64
	var confCount int
	for _, p := range resp.FullTextAnnotation.Pages {
		if p.Confidence > 0 {
			confSum += p.Confidence
			confCount++
			continue
		}
		for _, b := range p.Blocks {
			confSum += b.Confidence
			confCount++
		}
	}
	confidence := 0.0
	if confCount > 0 {
		confidence = confSum / float64(confCount)
	}

	return &port.RecognizeOutput{
		Text:       resp.FullTextAnnotation.Text,
		Confidence: confidence,
		Provider:   "vision",
	}, nil
}
