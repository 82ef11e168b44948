package tei

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/dhcraft/histdem/internal/gazetteer"
	"github.com/dhcraft/histdem/internal/markup"
	"github.com/dhcraft/histdem/internal/names"
	"github.com/dhcraft/histdem/internal/record"
)

// TEI is the namespace of every emitted element.
const teiNS = "http://www.tei-c.org/ns/1.0"

// Fixed series title of the upstream microdata files referenced in citations.
const mosaicSeriesTitle = "Mosaic Historical Microdata File"

// maxEditors bounds how many parsed citation names become editor entries.
const maxEditors = 3

// Review flag codes. Flags are not errors; they mark output that needs a
// human pass before publication.
const (
	FlagUnresolvedPlace = "UNRESOLVED_PLACE"
	FlagMissingTitle    = "MISSING_FILE_TITLE"
	FlagEmptyFilename   = "EMPTY_FILENAME"
	FlagNoEditors       = "NO_EDITORS"
	FlagMissingDate     = "MISSING_DATE"
)

// Flag marks a spot in a generated document that needs manual review.
type Flag struct {
	Code    string
	Message string
}

// Builder assembles TEI documents from records and the fixed boilerplate.
// It is immutable after construction and safe to reuse across records.
type Builder struct {
	tpl     *Template
	gaz     *gazetteer.Resolver
	folders map[string]string // dataset id -> data folder name
	now     func() time.Time
}

// NewBuilder validates the template and returns a Builder.
// An incomplete template is a fatal configuration error.
func NewBuilder(tpl *Template, gaz *gazetteer.Resolver, folders map[string]string) (*Builder, error) {
	if missing := tpl.missingFields(); len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}
	return &Builder{tpl: tpl, gaz: gaz, folders: folders, now: time.Now}, nil
}

var trailingYearRe = regexp.MustCompile(`(\d{4})\.?\s*$`)

// issuedYear returns the publication year stamped on documents.
func (b *Builder) issuedYear() string {
	if b.tpl.Issued != "" {
		return b.tpl.Issued
	}
	return strconv.Itoa(b.now().Year())
}

// Build assembles the complete output document for one record.
//
// The returned flags mark places needing manual review (unresolved
// gazetteer lookups, placeholder editors or dates, entries without titles);
// none of them prevent the document from being written.
func (b *Builder) Build(rec *record.Record) (*etree.Document, []Flag) {
	var flags []Flag
	flag := func(code, format string, args ...any) {
		flags = append(flags, Flag{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("xml-model", fmt.Sprintf(
		`href=%q type="application/xml" schematypens="http://relaxng.org/ns/structure/1.0"`,
		b.tpl.SchemaRef))

	root := doc.CreateElement("TEI")
	root.CreateAttr("xmlns", teiNS)

	header := root.CreateElement("teiHeader")
	header.CreateAttr("xml:lang", "en")

	fileDesc := header.CreateElement("fileDesc")
	b.buildTitleStmt(fileDesc, rec, flag)
	b.buildPublicationStmt(fileDesc, rec)
	b.buildSeriesStmt(fileDesc)
	b.buildSourceDesc(fileDesc, rec, flag)

	b.buildEncodingDesc(header)
	b.buildProfileDesc(header, rec)
	b.buildBody(root, rec)

	return doc, flags
}

func (b *Builder) buildTitleStmt(fileDesc *etree.Element, rec *record.Record, flag func(string, string, ...any)) {
	titleStmt := fileDesc.CreateElement("titleStmt")
	titleStmt.CreateElement("title").SetText(fmt.Sprintf("Nr. %s: %s", rec.ID, rec.Title))

	editors := names.Parse(rec.Citation)
	if len(editors) > maxEditors {
		editors = editors[:maxEditors]
	}
	if len(editors) == 0 {
		flag(FlagNoEditors, "no editors parsed from citation, emitted FIRST/LAST placeholder")
		editors = []names.Name{{Forename: "FIRST", Surname: "LAST"}}
	}
	for _, n := range editors {
		editor := titleStmt.CreateElement("editor")
		editor.CreateAttr("ana", "marcrelator:edt")
		addPersName(editor, n.Forename, n.Surname)
	}

	resp := titleStmt.CreateElement("respStmt")
	resp.CreateAttr("ana", "marcrelator:mrk")
	resp.CreateElement("resp").SetText("XML encoding")
	addPersName(resp, b.tpl.Encoder.Forename, b.tpl.Encoder.Surname)

	funder := titleStmt.CreateElement("funder")
	funder.CreateAttr("ana", "marcrelator:fnd")
	addOrgName(funder, Org{Name: b.tpl.Funder.Name, Ref: b.tpl.Funder.Ref})
	funder.CreateElement("num").SetText(b.tpl.Funder.Num)
}

func (b *Builder) buildPublicationStmt(fileDesc *etree.Element, rec *record.Record) {
	pub := fileDesc.CreateElement("publicationStmt")

	addOrgName(pub.CreateElement("publisher"), b.tpl.Publisher)

	for _, a := range b.tpl.Authorities {
		authority := pub.CreateElement("authority")
		authority.CreateAttr("ana", "marcrelator:his")
		addOrgName(authority, a)
	}

	distributor := pub.CreateElement("distributor")
	distributor.CreateAttr("ana", "marcrelator:rps")
	addOrgName(distributor, b.tpl.Distributor)

	licence := pub.CreateElement("availability").CreateElement("licence")
	licence.CreateAttr("target", b.tpl.License.Target)
	licence.SetText(b.tpl.License.Text)

	year := b.issuedYear()
	date := pub.CreateElement("date")
	date.CreateAttr("when", year)
	date.CreateAttr("ana", "dcterms:issued")
	date.SetText(year)

	place := pub.CreateElement("pubPlace")
	place.CreateAttr("ana", "marcrelator:pup")
	place.SetText(b.tpl.PubPlace)

	pid := rec.PID
	if pid == "" {
		pid = b.tpl.PIDPrefix + rec.ID
	}
	idno := pub.CreateElement("idno")
	idno.CreateAttr("type", "PID")
	idno.SetText(pid)
}

func (b *Builder) buildSeriesStmt(fileDesc *etree.Element) {
	series := fileDesc.CreateElement("seriesStmt")

	for _, st := range b.tpl.SeriesTitles {
		title := series.CreateElement("title")
		if st.Lang != "" {
			title.CreateAttr("xml:lang", st.Lang)
		}
		if st.Ref != "" {
			title.CreateAttr("ref", st.Ref)
		}
		title.SetText(st.Text)
	}

	pdr := series.CreateElement("respStmt")
	pdr.CreateAttr("ana", "marcrelator:pdr")
	pdr.CreateElement("resp").SetText(b.tpl.ProjectDirector.Resp)
	addPersName(pdr, b.tpl.ProjectDirector.Forename, b.tpl.ProjectDirector.Surname)

	if b.tpl.ResearchTeam.OrgName != "" {
		rth := series.CreateElement("respStmt")
		rth.CreateAttr("ana", "marcrelator:rth")
		rth.CreateElement("resp").SetText(b.tpl.ResearchTeam.Resp)
		addOrgName(rth, Org{Name: b.tpl.ResearchTeam.OrgName, Ref: b.tpl.ResearchTeam.OrgRef})
	}
}

func (b *Builder) buildSourceDesc(fileDesc *etree.Element, rec *record.Record, flag func(string, string, ...any)) {
	sourceDesc := fileDesc.CreateElement("sourceDesc")

	b.buildSourceBibl(sourceDesc, rec, flag)
	b.buildCitationBibl(sourceDesc, rec)
	b.buildDataBibl(sourceDesc, rec, flag)
	b.buildAdditionalBibl(sourceDesc, rec, flag)
}

func (b *Builder) buildSourceBibl(sourceDesc *etree.Element, rec *record.Record, flag func(string, string, ...any)) {
	bibl := sourceDesc.CreateElement("bibl")

	date := bibl.CreateElement("date")
	date.CreateAttr("ana", "dcterms:created")
	switch {
	case rec.HasRange():
		date.CreateAttr("from", strconv.Itoa(rec.From))
		date.CreateAttr("to", strconv.Itoa(rec.To))
		date.SetText(fmt.Sprintf("%d-%d", rec.From, rec.To))
	case rec.Year != 0:
		date.CreateAttr("when", strconv.Itoa(rec.Year))
		date.SetText(strconv.Itoa(rec.Year))
	default:
		// Placeholder for human follow-up, matching the review convention.
		date.CreateAttr("when", "YEAR")
		date.SetText("YEAR")
		flag(FlagMissingDate, "no year or date range, emitted YEAR placeholder")
	}

	country := bibl.CreateElement("country")
	country.CreateAttr("ana", "marcrelator:prp")
	loc := b.gaz.Resolve(rec.Country, rec.CountryRef)
	country.CreateAttr("ref", loc.Ref)
	country.SetText(rec.Country)
	if !loc.Resolved {
		flag(FlagUnresolvedPlace, "country %q has no Wikidata id, emitted %s", rec.Country, loc.Ref)
	}

	if rec.Region != "" {
		region := bibl.CreateElement("region")
		region.CreateAttr("ana", "marcrelator:prp")
		loc := b.gaz.Resolve(rec.Region, rec.RegionRef)
		region.CreateAttr("ref", loc.Ref)
		region.SetText(rec.Region)
		if !loc.Resolved {
			flag(FlagUnresolvedPlace, "region %q has no Wikidata id, emitted %s", rec.Region, loc.Ref)
		}
	}
}

func (b *Builder) buildCitationBibl(sourceDesc *etree.Element, rec *record.Record) {
	if rec.Citation == "" {
		return
	}

	bibl := sourceDesc.CreateElement("bibl")
	bibl.CreateAttr("type", "citation")

	for _, n := range names.Parse(rec.Citation) {
		full := strings.TrimSpace(n.Forename + " " + n.Surname)
		bibl.CreateElement("author").SetText(full)
	}

	analytic := bibl.CreateElement("title")
	analytic.CreateAttr("level", "a")
	analytic.SetText(rec.Title)

	series := bibl.CreateElement("title")
	series.CreateAttr("level", "s")
	series.SetText(mosaicSeriesTitle)

	bibl.CreateElement("publisher").SetText(citationPublisher(rec.Citation))
	bibl.CreateElement("date").SetText(citationYear(rec))

	rs := bibl.CreateElement("rs")
	rs.CreateAttr("type", "citation_recommendation")
	addMixedContent(rs, rec.Citation)
}

// citationPublisher picks the publisher named in the citation text.
func citationPublisher(citation string) string {
	if strings.Contains(citation, "censusmosaic.org") {
		return "www.censusmosaic.org"
	}
	return "mosaic.ipums.org"
}

// citationYear extracts a trailing four-digit year from the citation,
// falling back to the record's own year.
func citationYear(rec *record.Record) string {
	if m := trailingYearRe.FindStringSubmatch(rec.Citation); m != nil {
		return m[1]
	}
	if rec.Year != 0 {
		return strconv.Itoa(rec.Year)
	}
	return "2024"
}

func (b *Builder) buildDataBibl(sourceDesc *etree.Element, rec *record.Record, flag func(string, string, ...any)) {
	bibl := sourceDesc.CreateElement("bibl")
	bibl.CreateAttr("type", "data")

	folder := b.folders[rec.ID]

	if ref, ok := b.fileRef(rec.Codes, record.FieldCodes, PrimaryCodeData, folder, flag); ok {
		rs := bibl.CreateElement("rs")
		rs.CreateAttr("type", "codes")
		addRSTitle(rs, ref, "Data with Codes")
		addMedia(rs, ref)
	}
	if ref, ok := b.fileRef(rec.Labels, record.FieldLabels, PrimaryLabelData, folder, flag); ok {
		rs := bibl.CreateElement("rs")
		rs.CreateAttr("type", "labels")
		addRSTitle(rs, ref, "Data with Labels")
		addMedia(rs, ref)
	}
}

func (b *Builder) buildAdditionalBibl(sourceDesc *etree.Element, rec *record.Record, flag func(string, string, ...any)) {
	// Built detached; only attached when it has at least one entry.
	bibl := etree.NewElement("bibl")
	bibl.CreateAttr("type", "additional")

	folder := b.folders[rec.ID]

	for i, raw := range rec.Supplements {
		ref, ok := b.fileRef(raw, record.SupplementField(i+1), SupplementaryDocument, folder, flag)
		if !ok {
			continue
		}
		rs := bibl.CreateElement("rs")
		rs.CreateAttr("type", ClassifySupplement(ref.Title))
		addRSTitle(rs, ref, ref.Filename)
		addMedia(rs, ref)
	}

	for i, raw := range rec.Images {
		ref, ok := b.fileRef(raw, record.ImageField(i+1), Image, folder, flag)
		if !ok {
			continue
		}
		kind := ClassifyImage(ref.Title)
		if kind == "map" {
			ref.Role = Map
		}
		rs := bibl.CreateElement("rs")
		rs.CreateAttr("type", kind)
		addRSTitle(rs, ref, ref.Filename)
		if strings.HasPrefix(ref.MIME, "image/") {
			addGraphic(rs, ref)
		} else {
			addMedia(rs, ref)
		}
	}

	// References without files are always literature.
	for _, lit := range rec.Literature {
		rs := bibl.CreateElement("rs")
		rs.CreateAttr("type", "literature")
		rs.CreateElement("title").SetText(lit)
	}

	if len(bibl.SelectElements("rs")) > 0 {
		sourceDesc.AddChild(bibl)
	}
}

// fileRef parses a raw entry and resolves it into a Reference, flagging
// format problems without failing the record.
func (b *Builder) fileRef(raw, field string, role Role, folder string, flag func(string, string, ...any)) (Reference, bool) {
	if raw == "" {
		return Reference{}, false
	}
	filename, title, ok := ParseEntry(raw)
	if !ok {
		flag(FlagEmptyFilename, "%s: empty filename before ' - ' in %q", field, raw)
		return Reference{}, false
	}
	if title == "" {
		flag(FlagMissingTitle, "%s: entry %q has no title (expected 'filename - Title')", field, raw)
	}
	return NewReference(filename, title, role, folder), true
}

func addRSTitle(rs *etree.Element, ref Reference, fallback string) {
	title := ref.Title
	if title == "" {
		title = fallback
	}
	rs.CreateElement("title").SetText(title)
}

func addMedia(rs *etree.Element, ref Reference) {
	media := rs.CreateElement("media")
	media.CreateAttr("url", ref.URL)
	media.CreateAttr("mimeType", ref.MIME)
	media.CreateAttr("xml:id", ref.ID)
}

func addGraphic(rs *etree.Element, ref Reference) {
	graphic := rs.CreateElement("graphic")
	graphic.CreateAttr("url", ref.URL)
	graphic.CreateAttr("mimeType", ref.MIME)
	graphic.CreateAttr("xml:id", ref.ID)
}

func (b *Builder) buildEncodingDesc(header *etree.Element) {
	encodingDesc := header.CreateElement("encodingDesc")
	projectDesc := encodingDesc.CreateElement("projectDesc")

	if b.tpl.ProjectContext.Text != "" {
		ref := projectDesc.CreateElement("ab").CreateElement("ref")
		ref.CreateAttr("target", b.tpl.ProjectContext.Target)
		if b.tpl.ProjectContext.Type != "" {
			ref.CreateAttr("type", b.tpl.ProjectContext.Type)
		}
		ref.SetText(b.tpl.ProjectContext.Text)
	}

	for _, p := range b.tpl.ProjectDescription {
		projectDesc.CreateElement("p").SetText(p)
	}

	prefixes := encodingDesc.CreateElement("listPrefixDef")
	addPrefixDef(prefixes, "marcrelator", `([a-z]+)`,
		"http://id.loc.gov/vocabulary/relators/$1", "Taxonomie Rollen MARC")
	addPrefixDef(prefixes, "dcterms", `([a-z]+)`,
		"http://purl.org/dc/terms/$1", "DCterms")
	addPrefixDef(prefixes, "wd", `(Q\d+)`,
		"https://www.wikidata.org/entity/$1", "Wikidata")
}

func addPrefixDef(parent *etree.Element, ident, match, replacement, label string) {
	def := parent.CreateElement("prefixDef")
	def.CreateAttr("ident", ident)
	def.CreateAttr("matchPattern", match)
	def.CreateAttr("replacementPattern", replacement)
	def.CreateElement("p").SetText(label)
}

// languageNames maps the archive's ISO 639-1 codes to display names.
var languageNames = map[string]string{
	"sr": "Serbian",
	"sq": "Albanian",
	"en": "English",
	"de": "German",
	"hy": "Armenian",
	"tr": "Turkish",
}

func (b *Builder) buildProfileDesc(header *etree.Element, rec *record.Record) {
	profileDesc := header.CreateElement("profileDesc")

	langUsage := profileDesc.CreateElement("langUsage")
	langs := rec.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	for _, code := range langs {
		name, ok := languageNames[code]
		if !ok {
			name = strings.ToUpper(code)
		}
		language := langUsage.CreateElement("language")
		language.CreateAttr("ident", code)
		language.SetText(name)
	}

	list := profileDesc.CreateElement("textClass").
		CreateElement("keywords").
		CreateElement("list")
	for _, kw := range rec.Keywords {
		list.CreateElement("item").CreateElement("term").SetText(kw)
	}
}

func (b *Builder) buildBody(root *etree.Element, rec *record.Record) {
	body := root.CreateElement("text").CreateElement("body")

	head := rec.Headline
	if head == "" {
		head = strings.TrimSpace(rec.Country + " " + temporalText(rec))
	}
	body.CreateElement("head").SetText(head)

	wrote := false
	for _, para := range strings.Split(rec.Body, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			body.CreateElement("p").SetText(para)
			wrote = true
		}
	}
	if !wrote {
		body.CreateElement("p").SetText("Description pending.")
	}

	notes := rec.Notes
	if notes == "" {
		notes = "No additional notes."
	}
	body.CreateElement("note").SetText(notes)
}

func temporalText(rec *record.Record) string {
	switch {
	case rec.HasRange():
		return fmt.Sprintf("%d-%d", rec.From, rec.To)
	case rec.Year != 0:
		return strconv.Itoa(rec.Year)
	default:
		return ""
	}
}

func addPersName(parent *etree.Element, forename, surname string) {
	persName := parent.CreateElement("persName")
	if forename != "" {
		persName.CreateElement("forename").SetText(forename)
	}
	persName.CreateElement("surname").SetText(surname)
}

func addOrgName(parent *etree.Element, org Org) {
	orgName := parent.CreateElement("orgName")
	if org.Corresp != "" {
		orgName.CreateAttr("corresp", org.Corresp)
	}
	if org.Ref != "" {
		orgName.CreateAttr("ref", org.Ref)
	}
	orgName.SetText(org.Name)
}

// addMixedContent writes text with inline emphasis as mixed text/hi children.
func addMixedContent(parent *etree.Element, text string) {
	for _, frag := range markup.Format(text) {
		switch frag.Kind {
		case markup.Emphasis:
			hi := parent.CreateElement("hi")
			hi.CreateAttr("rend", "italic")
			hi.SetText(frag.Value)
		default:
			parent.CreateText(frag.Value)
		}
	}
}
