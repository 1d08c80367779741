package knowledge

import "strings"

// NormalizeName lowercases, trims and collapses inner whitespace. Used for
// drug and condition names.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeSymptom lowercases and strips all whitespace so that display forms
// like "Chest Pain" map onto the "chestpain" id.
func NormalizeSymptom(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}
