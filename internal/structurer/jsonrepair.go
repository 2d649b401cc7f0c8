package structurer

import (
	"regexp"
	"strings"
)

// maxRepairIterations bounds the newline-folding loop. Five passes handle
// multiple wrapped values per line without risking quadratic blowups on
// adversarial output.
const maxRepairIterations = 5

var embeddedNewline = regexp.MustCompile(`"([^"]*?)\n([^"]*?)"`)

// RepairJSON cleans up the most common defects in LLM JSON output: markdown
// code fences around the object and raw newlines inside string literals.
// It never attempts structural repair; output that is still invalid JSON
// after this pass is a provider failure.
func RepairJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	for i := 0; i < maxRepairIterations; i++ {
		repaired := embeddedNewline.ReplaceAllString(s, `"$1 $2"`)
		if repaired == s {
			break
		}
		s = repaired
	}
	return s
}
