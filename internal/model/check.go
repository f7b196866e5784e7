package model

// RuleViolation is a single source rule violation found by the rule checker.
type RuleViolation struct {
	Path    string // Path of the file relative to the scanned root.
	Line    int    // 1-based line number.
	Message string // Human-readable description of the violated rule.
}

// HasViolations returns true if there is at least one violation.
func HasViolations(vs []RuleViolation) bool {
	return len(vs) > 0
}

// CountByPath counts violations by file path.
func CountByPath(vs []RuleViolation) map[string]int {
	counts := make(map[string]int)
	for _, v := range vs {
		counts[v.Path]++
	}
	return counts
}
