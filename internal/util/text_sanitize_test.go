package util

import "testing"

func TestSanitizeTextRemovesNulAndControls(t *testing.T) {
	in := "ab\x00cd\x01\x02\n\txy\x7f"
	out := SanitizeText(in)
	if out != "abcd\n\txy" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSanitizeTextFormFeedBecomesNewline(t *testing.T) {
	out := SanitizeText("page one\fpage two")
	if out != "page one\npage two" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}
