// Package validate checks a candidate invoice against GST filing rules. The
// engine is pure: it reads the candidate, returns findings, and never touches
// storage, the network, or the clock beyond a future-date comparison.
package validate

import "saralgst/internal/domain"

// allRules assembles the rule set in evaluation order. Every rule runs; a
// failing rule never short-circuits the rest.
func allRules() []rule {
	var rules []rule
	rules = append(rules, requiredRules()...)
	rules = append(rules, formatRules()...)
	rules = append(rules, crossFieldRules()...)
	rules = append(rules, commercialRules()...)
	rules = append(rules, categoryRules()...)
	return rules
}

// Validate runs the full rule set for one candidate invoice. Blocking
// findings (critical, error) land in Result.Errors; advisory findings
// (warning, info) land in Result.Warnings.
func Validate(c *domain.CandidateInvoice, category domain.InvoiceCategory) Result {
	var result Result
	for _, r := range allRules() {
		for _, f := range r.check(c, category) {
			if f.Blocking() {
				result.Errors = append(result.Errors, f)
			} else {
				result.Warnings = append(result.Warnings, f)
			}
		}
	}
	return result
}
