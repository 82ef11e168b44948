// Package tei builds schema-conformant TEI documents from dataset records.
package tei

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// IncompleteError is the fatal configuration error raised when the
// boilerplate template lacks required fields. The builder never emits a
// partial document over an incomplete template.
type IncompleteError struct {
	Path    string
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("template %s is incomplete: missing %s", e.Path, strings.Join(e.Missing, ", "))
}

// Org is an organisation reference. Corresp and Ref become the attributes of
// the same name on the emitted orgName element; either may be empty.
type Org struct {
	Name    string `yaml:"name"`
	Corresp string `yaml:"corresp"`
	Ref     string `yaml:"ref"`
}

// Person is a forename/surname pair used for fixed responsibility statements.
type Person struct {
	Forename string `yaml:"forename"`
	Surname  string `yaml:"surname"`
}

// License is the availability statement.
type License struct {
	Text   string `yaml:"text"`
	Target string `yaml:"target"`
}

// Funder is the funding body with its grant number.
type Funder struct {
	Name string `yaml:"name"`
	Ref  string `yaml:"ref"`
	Num  string `yaml:"num"`
}

// SeriesTitle is one title of the publication series.
type SeriesTitle struct {
	Text string `yaml:"text"`
	Lang string `yaml:"lang"`
	Ref  string `yaml:"ref"`
}

// RespStmt is a fixed responsibility statement (project director, team).
type RespStmt struct {
	Resp     string `yaml:"resp"`
	Forename string `yaml:"forename"`
	Surname  string `yaml:"surname"`
	OrgName  string `yaml:"org_name"`
	OrgRef   string `yaml:"org_ref"`
}

// ContextRef is the pointer to the project context page.
type ContextRef struct {
	Text   string `yaml:"text"`
	Target string `yaml:"target"`
	Type   string `yaml:"type"`
}

// Template holds every dataset-invariant piece of the output documents.
// It is loaded once per run and treated as read-only.
type Template struct {
	PIDPrefix string `yaml:"pid_prefix"`
	SchemaRef string `yaml:"schema"` // relative href for the xml-model instruction

	// Issued is the publication year stamped on every document. Empty means
	// the current year at run time.
	Issued string `yaml:"issued"`

	Encoder     Person  `yaml:"encoder"`
	Publisher   Org     `yaml:"publisher"`
	Authorities []Org   `yaml:"authorities"`
	Distributor Org     `yaml:"distributor"`
	License     License `yaml:"license"`
	PubPlace    string  `yaml:"pub_place"`
	Funder      Funder  `yaml:"funder"`

	SeriesTitles    []SeriesTitle `yaml:"series_titles"`
	ProjectDirector RespStmt      `yaml:"project_director"`
	ResearchTeam    RespStmt      `yaml:"research_team"`

	ProjectContext     ContextRef `yaml:"project_context"`
	ProjectDescription []string   `yaml:"project_description"`
}

// LoadTemplate reads and validates a template file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}

	if missing := tpl.missingFields(); len(missing) > 0 {
		return nil, &IncompleteError{Path: path, Missing: missing}
	}
	return &tpl, nil
}

// missingFields lists required boilerplate fields that are absent.
func (t *Template) missingFields() []string {
	var missing []string
	need := func(ok bool, name string) {
		if !ok {
			missing = append(missing, name)
		}
	}

	need(t.PIDPrefix != "", "pid_prefix")
	need(t.SchemaRef != "", "schema")
	need(t.Encoder.Forename != "" && t.Encoder.Surname != "", "encoder")
	need(t.Publisher.Name != "", "publisher.name")
	need(len(t.Authorities) > 0, "authorities")
	for i, a := range t.Authorities {
		need(a.Name != "", fmt.Sprintf("authorities[%d].name", i))
	}
	need(t.Distributor.Name != "", "distributor.name")
	need(t.License.Text != "" && t.License.Target != "", "license")
	need(t.PubPlace != "", "pub_place")
	need(t.Funder.Name != "" && t.Funder.Num != "", "funder")
	need(len(t.SeriesTitles) > 0, "series_titles")
	need(t.ProjectDirector.Forename != "" && t.ProjectDirector.Surname != "", "project_director")
	need(len(t.ProjectDescription) > 0, "project_description")

	return missing
}
