package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal
// whitespace runs. It is used for full-name normalization.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLabel lower-cases and trims a model-returned label before it is
// validated against a closed set.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
