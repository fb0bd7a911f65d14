package util

import "strings"

// SanitizeText drops NUL bytes and other non-printing controls some PDF
// extractors emit. Form feeds become newlines; tabs and newlines are kept.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.Map(func(ch rune) rune {
		switch {
		case ch == '\f':
			return '\n'
		case ch == '\n', ch == '\r', ch == '\t':
			return ch
		case ch < 0x20, ch == 0x7f:
			return -1
		}
		return ch
	}, s)
	return strings.TrimSpace(s)
}
