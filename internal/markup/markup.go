// Package markup converts the spreadsheet's inline emphasis convention into
// structural fragments.
//
// The only supported markup is *emphasis*: a single asterisk on each side of
// a span. Everything else passes through verbatim.
package markup

import "regexp"

// Kind discriminates fragment variants.
type Kind int

const (
	// Text is literal character data.
	Text Kind = iota
	// Emphasis is a span that was delimited by asterisks in the source.
	Emphasis
)

// Fragment is one run of either literal text or emphasized text.
type Fragment struct {
	Kind  Kind
	Value string
}

// Spans may not nest or overlap, so a non-greedy single-level match is exact.
// An odd trailing asterisk finds no partner and stays literal.
var emphasisRe = regexp.MustCompile(`\*([^*]+)\*`)

// Format splits raw text into text and emphasis fragments.
//
// All non-overlapping `*...*` spans become Emphasis fragments; unmatched
// lone asterisks remain literal text. Whitespace and every other character
// are preserved exactly. Empty input yields no fragments.
func Format(raw string) []Fragment {
	if raw == "" {
		return nil
	}

	var frags []Fragment
	pos := 0
	for _, m := range emphasisRe.FindAllStringSubmatchIndex(raw, -1) {
		if m[0] > pos {
			frags = append(frags, Fragment{Kind: Text, Value: raw[pos:m[0]]})
		}
		frags = append(frags, Fragment{Kind: Emphasis, Value: raw[m[2]:m[3]]})
		pos = m[1]
	}
	if pos < len(raw) {
		frags = append(frags, Fragment{Kind: Text, Value: raw[pos:]})
	}
	return frags
}

// Plain reports whether the text contains no recognizable emphasis spans.
func Plain(raw string) bool {
	return !emphasisRe.MatchString(raw)
}
