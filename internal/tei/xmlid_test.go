package tei

import (
	"regexp"
	"testing"
)

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1863 sample3.jpg", "_1863_sample3"},
		{"serbia_1863_codes.csv", "serbia_1863_codes"},
		{"study (final).pdf", "study__final_"},
		{"scan.v2.JPG", "scan_v2"},
		{"übersicht.pdf", "_bersicht"},
		{"plain", "plain"},
		{"_already_fine", "_already_fine"},
		{"", "id_unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeID(tt.in); got != tt.want {
				t.Errorf("SanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIDIdempotent(t *testing.T) {
	valid := regexp.MustCompile(`^_?[A-Za-z0-9_]+$`)

	inputs := []string{
		"1863 sample3.jpg", "a-b c.d", "....", "9", "x", "",
		"Straße mit Umlauten.png", "file.tar.gz",
	}
	for _, in := range inputs {
		once := SanitizeID(in)
		twice := SanitizeID(once)
		if once != twice {
			t.Errorf("SanitizeID not idempotent for %q: %q != %q", in, once, twice)
		}
		if !valid.MatchString(once) {
			t.Errorf("SanitizeID(%q) = %q does not match %s", in, once, valid)
		}
	}
}
