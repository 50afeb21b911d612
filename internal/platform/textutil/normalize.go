package textutil

import "strings"

// NormalizeText trims surrounding whitespace. Inner whitespace is preserved so a
// phrase round-trips through storage exactly as entered.
func NormalizeText(value string) string {
	return strings.TrimSpace(value)
}

// NormalizeKey lowercases the trimmed value. Used for source phrases and language tags
// so lookups are case-insensitive.
func NormalizeKey(value string) string {
	return strings.ToLower(NormalizeText(value))
}

// PairKey builds the dictionary bucket key for an ordered language pair,
// e.g. ("EN", "fr") -> "en-fr".
func PairKey(sourceLang, targetLang string) string {
	return NormalizeKey(sourceLang) + "-" + NormalizeKey(targetLang)
}
