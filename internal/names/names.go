// Package names splits citation strings into person names.
//
// The split is a best-effort heuristic over free text. It is known to
// mis-split names whose middle initial is followed by a period immediately
// before a comma ("Halpern, Joel M., ..." yields a spurious surname "M");
// that limitation is deliberate and cannot be fixed without structured input.
package names

import "strings"

// Name is a parsed person name.
type Name struct {
	Forename string // may be empty for surname-only groups
	Surname  string
}

// Parse extracts person names from the head of a citation string.
//
// Groups are separated by commas and the conjunction "and". The phrases
// "and others" and "et al." end the scan, as does the first token that ends
// a sentence (a period after more than two characters: a surname, not an
// initial). Within a group the final token is the surname and the preceding
// tokens, joined by spaces, form the forename; a trailing period is stripped
// from initials. Empty or whitespace-only input yields no names.
func Parse(citation string) []Name {
	tokens := strings.Fields(citation)
	if len(tokens) == 0 {
		return nil
	}

	var parsed []Name
	var group []string

	flush := func() {
		if name, ok := groupName(group); ok {
			parsed = append(parsed, name)
		}
		group = group[:0]
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if isConjunction(tok) {
			if i+1 < len(tokens) && isEtcetera(tokens[i+1]) {
				break // "and others": the list is open-ended, stop here
			}
			flush()
			continue
		}
		if strings.EqualFold(trimToken(tok), "et") && i+1 < len(tokens) && isEtAl(tokens[i+1]) {
			break
		}

		comma := strings.HasSuffix(tok, ",")
		tok = strings.TrimSuffix(tok, ",")

		if terminal(tok) && !comma {
			// Sentence end: this token closes the author list.
			group = append(group, strings.TrimSuffix(tok, "."))
			flush()
			return parsed
		}

		if tok != "" {
			group = append(group, tok)
		}
		if comma {
			flush()
		}
	}

	flush()
	return parsed
}

// groupName turns accumulated tokens into a Name.
func groupName(group []string) (Name, bool) {
	if len(group) == 0 {
		return Name{}, false
	}
	surname := strings.TrimSuffix(group[len(group)-1], ".")
	forename := strings.Join(group[:len(group)-1], " ")
	forename = strings.TrimSuffix(forename, ".")
	if surname == "" {
		return Name{}, false
	}
	return Name{Forename: forename, Surname: surname}, true
}

// terminal reports whether a token ends the author list: a period after a
// stem longer than two runes is a sentence end, not an initial.
func terminal(tok string) bool {
	if !strings.HasSuffix(tok, ".") {
		return false
	}
	stem := strings.TrimSuffix(tok, ".")
	return len([]rune(stem)) > 2
}

func isConjunction(tok string) bool {
	return strings.EqualFold(trimToken(tok), "and") || tok == "&"
}

func isEtcetera(tok string) bool {
	return strings.EqualFold(trimToken(tok), "others")
}

func isEtAl(tok string) bool {
	t := strings.ToLower(trimToken(tok))
	return t == "al"
}

func trimToken(tok string) string {
	return strings.Trim(tok, ".,")
}
