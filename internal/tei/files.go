package tei

import (
	"path"
	"strings"
)

// Role classifies a file reference by its position in the source sheet.
type Role int

const (
	// PrimaryCodeData is the coded primary data file (CSV Codes).
	PrimaryCodeData Role = iota
	// PrimaryLabelData is the labelled primary data file (CSV Labels).
	PrimaryLabelData
	// SupplementaryDocument is a supplementary file (Zusatzdatei).
	SupplementaryDocument
	// Image is a scanned image (Bild).
	Image
	// Map is an image whose description names cartographic content.
	Map
)

func (r Role) String() string {
	switch r {
	case PrimaryCodeData:
		return "primary-code-data"
	case PrimaryLabelData:
		return "primary-label-data"
	case SupplementaryDocument:
		return "supplementary-document"
	case Image:
		return "image"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Reference is one file reference resolved for output.
type Reference struct {
	Filename string
	Title    string // empty when the source entry lacked one
	Role     Role
	ID       string // sanitized xml:id
	MIME     string
	URL      string // relative to the output document's directory
}

// ParseEntry splits a raw "filename - Title" cell.
//
// A missing " - " separator means the title is absent; that is tolerated and
// reported by the caller, not an error. An empty filename before the
// separator yields ok=false.
func ParseEntry(raw string) (filename, title string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}

	before, after, found := strings.Cut(raw, " - ")
	if !found {
		return raw, "", true
	}

	filename = strings.TrimSpace(before)
	title = strings.TrimSpace(after)
	if filename == "" {
		return "", "", false
	}
	return filename, title, true
}

// NewReference resolves a parsed entry against the dataset folder.
// folder may be empty when no mapping exists; the URL then stays bare.
func NewReference(filename, title string, role Role, folder string) Reference {
	return Reference{
		Filename: filename,
		Title:    title,
		Role:     role,
		ID:       SanitizeID(filename),
		MIME:     mimeType(filename, role),
		URL:      fileURL(filename, folder),
	}
}

// fileURL prefixes the filename with the dataset folder and a relative
// ascent, because output documents live one level below the data folders.
func fileURL(filename, folder string) string {
	if folder == "" || filename == "" {
		return filename
	}
	return "../" + folder + "/" + filename
}

// mimeType derives the media type from the extension, with role-appropriate
// fallbacks.
func mimeType(filename string, role Role) string {
	switch role {
	case PrimaryCodeData, PrimaryLabelData:
		return "text/csv"
	}

	switch strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")) {
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	}

	if role == Image || role == Map {
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// ClassifySupplement picks the rs type for a supplementary document.
// A title mentioning a sample is a "sample"; everything else is treated as
// accompanying literature. Bare references without files are always
// "literature" (decided at the call site where no file exists).
func ClassifySupplement(title string) string {
	if strings.Contains(strings.ToLower(title), "sample") {
		return "sample"
	}
	return "literature"
}

// ClassifyImage picks the rs type for an image. Titles naming cartographic
// content (map, Karte) are maps; everything else is a scan.
func ClassifyImage(title string) string {
	lower := strings.ToLower(title)
	if strings.Contains(lower, "map") || strings.Contains(lower, "karte") {
		return "map"
	}
	return "scan"
}
