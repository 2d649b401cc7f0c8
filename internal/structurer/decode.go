package structurer

import (
	"encoding/json"
	"fmt"
	"strings"

	"saralgst/internal/domain"
)

// DecodeCandidate repairs and decodes raw provider text into a candidate
// invoice. It returns the repaired JSON alongside the candidate so callers
// can persist the provider output for audit.
func DecodeCandidate(raw string) (*domain.CandidateInvoice, json.RawMessage, error) {
	repaired := RepairJSON(raw)

	var candidate domain.CandidateInvoice
	if err := json.Unmarshal([]byte(repaired), &candidate); err != nil {
		return nil, nil, fmt.Errorf("decoding structured output: %w (raw: %s)", err, Truncate(raw, 500))
	}

	candidate.SupplierGSTIN = normalizeGSTIN(candidate.SupplierGSTIN)
	candidate.BuyerGSTIN = normalizeGSTIN(candidate.BuyerGSTIN)
	candidate.CustomerGSTIN = normalizeGSTIN(candidate.CustomerGSTIN)

	return &candidate, json.RawMessage(repaired), nil
}

func normalizeGSTIN(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// Truncate shortens s to maxLen runes of prefix for log and issue payloads.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
