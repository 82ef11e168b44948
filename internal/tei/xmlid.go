package tei

import (
	"path"
	"strings"
)

// SanitizeID derives a valid xml:id token from a filename.
//
// The file extension is dropped, every character outside [A-Za-z0-9_] is
// replaced with an underscore, and a leading digit gets an underscore
// prepended. The result always matches `_?[A-Za-z0-9_]+` and the function is
// idempotent. An empty input yields the fixed token "id_unknown".
func SanitizeID(filename string) string {
	name := strings.TrimSuffix(filename, path.Ext(filename))

	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		ok := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if i == 0 && r >= '0' && r <= '9' {
			b.WriteByte('_')
		}
		if ok {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	if b.Len() == 0 {
		return "id_unknown"
	}
	return b.String()
}
