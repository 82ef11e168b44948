// Package gazetteer resolves place names to Wikidata identifiers.
package gazetteer

// Sentinel is the placeholder ref emitted for unknown places. Generated
// documents are meant to be grepped for it during manual review.
const Sentinel = "wd:QXXX"

// builtin maps the place names that occur in the archive to Wikidata QIDs.
// Extensible via config overrides; lookups are case-sensitive exact matches.
var builtin = map[string]string{
	// Countries
	"Serbia":     "Q403",
	"Albania":    "Q222",
	"Montenegro": "Q236",
	"Turkey":     "Q43",
	"Bosnia":     "Q225",
	"Greece":     "Q41",
	"Bulgaria":   "Q219",
	"Romania":    "Q218",
	"Croatia":    "Q224",
	// Regions and cities
	"Istanbul": "Q406",
	"Kruševac": "Q201442",
	// Mis-encoded variant seen in source spreadsheets.
	"Krušev ac": "Q201442",
}

// Location is a place name paired with its resolved identifier.
type Location struct {
	Name string
	Ref  string // "wd:Q..." or Sentinel

	// Resolved is false when Ref is the Sentinel placeholder.
	Resolved bool
}

// Resolver looks up place names, preferring explicit per-record identifiers.
type Resolver struct {
	entries map[string]string
}

// New returns a Resolver over the built-in table plus overrides.
// Overrides map place names to bare QIDs (e.g. "Q403") and shadow the
// built-in entries.
func New(overrides map[string]string) *Resolver {
	entries := make(map[string]string, len(builtin)+len(overrides))
	for name, qid := range builtin {
		entries[name] = qid
	}
	for name, qid := range overrides {
		entries[name] = qid
	}
	return &Resolver{entries: entries}
}

// Resolve maps a place name to a Location.
//
// A non-empty explicitID (a bare QID supplied in the source data) wins
// unconditionally. Otherwise the name is looked up in the table. Unknown
// names yield the Sentinel ref, marked unresolved; this is never an error.
func (r *Resolver) Resolve(name, explicitID string) Location {
	if explicitID != "" {
		return Location{Name: name, Ref: "wd:" + explicitID, Resolved: true}
	}
	if qid, ok := r.entries[name]; ok {
		return Location{Name: name, Ref: "wd:" + qid, Resolved: true}
	}
	return Location{Name: name, Ref: Sentinel}
}
