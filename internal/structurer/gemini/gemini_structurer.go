package gemini

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
	"saralgst/internal/structurer"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Structurer implements port.InvoiceStructurer using Google's Gemini API.
// StructureDocument sends the document bytes inline for multimodal
// structuring; StructureText sends previously recognized text.
type Structurer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewStructurer creates a Gemini-based invoice structurer.
func NewStructurer(cfg *config.StructurerConfig) *Structurer {
	return newStructurer(cfg, "")
}

// NewStructurerWithEndpoint creates a structurer pointing at a custom API endpoint (for testing).
func NewStructurerWithEndpoint(cfg *config.StructurerConfig, endpoint string) *Structurer {
	return newStructurer(cfg, endpoint)
}

func newStructurer(cfg *config.StructurerConfig, endpoint string) *Structurer {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Structurer{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *Structurer) StructureDocument(ctx context.Context, input port.StructureDocumentInput) (*port.StructureOutput, error) {
	mimeType, err := toGeminiMimeType(input.ContentType)
	if err != nil {
		return nil, err
	}

	prompt := structurer.BuildInvoicePrompt(input.Category)
	encoded := base64.StdEncoding.EncodeToString(input.FileBytes)

	parts := []map[string]interface{}{
		{
			"inline_data": map[string]interface{}{
				"mime_type": mimeType,
				"data":      encoded,
			},
		},
		{
			"text": prompt,
		},
	}
	return s.generate(ctx, parts)
}

func (s *Structurer) StructureText(ctx context.Context, input port.StructureTextInput) (*port.StructureOutput, error) {
	prompt := structurer.BuildInvoicePrompt(input.Category)

	parts := []map[string]interface{}{
		{
			"text": prompt + "\n\nINVOICE TEXT:\n" + input.Text,
		},
	}
	return s.generate(ctx, parts)
}

func (s *Structurer) generate(ctx context.Context, parts []map[string]interface{}) (*port.StructureOutput, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"maxOutputTokens":  8192,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return s.parseResponse(respBody)
}

func toGeminiMimeType(contentType string) (string, error) {
	switch contentType {
	case "application/pdf":
		return "application/pdf", nil
	case "image/jpeg", "image/jpg":
		return "image/jpeg", nil
	case "image/png":
		return "image/png", nil
	default:
		return "", fmt.Errorf("unsupported content type for structuring: %s", contentType)
	}
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (s *Structurer) parseResponse(body []byte) (*port.StructureOutput, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API: no parts")
	}

	text := resp.Candidates[0].Content.Parts[0].Text

	candidate, rawJSON, err := structurer.DecodeCandidate(text)
	if err != nil {
		return nil, err
	}

	return &port.StructureOutput{
		Candidate: candidate,
		RawJSON:   rawJSON,
		ModelUsed: s.model,
	}, nil
}
