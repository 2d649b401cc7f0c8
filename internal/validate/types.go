package validate

import "saralgst/internal/domain"

// Severity grades a finding. Critical and error findings block the extracted
// status; warnings and infos are advisory.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Finding is one observation about one field of a candidate invoice.
type Finding struct {
	RuleKey       string
	Field         string
	Severity      Severity
	Kind          domain.IssueType
	Message       string
	DetectedValue string
	ExpectedValue string
}

// Blocking reports whether this finding prevents a clean extraction.
func (f Finding) Blocking() bool {
	return f.Severity == SeverityCritical || f.Severity == SeverityError
}

// Result is the outcome of validating one candidate invoice.
type Result struct {
	Errors   []Finding
	Warnings []Finding
}

// IsValid reports whether no blocking finding was raised.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Findings returns all findings, blocking first.
func (r *Result) Findings() []Finding {
	out := make([]Finding, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return out
}

// rule is a single keyed validation check. Rules inspect the candidate only;
// they never touch storage or the network, and a rule whose subject field is
// absent (unless it is a presence rule) passes by returning nothing.
type rule struct {
	key   string
	name  string
	check func(c *domain.CandidateInvoice, category domain.InvoiceCategory) []Finding
}
