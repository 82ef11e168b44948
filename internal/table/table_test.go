package table

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `Metadaten,,
FELDNAME,BESCHREIBUNG,Datensatz 1,Datensatz 2
,,,
,,,
Datensatz ID,Stabile Kennung,147,21
Datensatz Titel,Titel,Serbia 1863,Albania 1918
Land,Land,Serbia,Albania
Region,Region,,Shkodra
Jahr,Jahr,1863,
`

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	if len(tbl.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(tbl.Columns))
	}

	first := tbl.Columns[0]
	if first.Header != "Datensatz 1" {
		t.Errorf("header = %q, want %q", first.Header, "Datensatz 1")
	}
	if got := first.Get("Datensatz ID"); got != "147" {
		t.Errorf("Datensatz ID = %q, want %q", got, "147")
	}
	if got := first.Get("Datensatz Titel"); got != "Serbia 1863" {
		t.Errorf("Datensatz Titel = %q, want %q", got, "Serbia 1863")
	}

	// Blank cells must be absent, not empty strings.
	if _, ok := first.Fields["Region"]; ok {
		t.Error("blank Region cell should be absent from Fields")
	}
	if got := tbl.Columns[1].Get("Region"); got != "Shkodra" {
		t.Errorf("second column Region = %q, want %q", got, "Shkodra")
	}
	if _, ok := tbl.Columns[1].Fields["Jahr"]; ok {
		t.Error("blank Jahr cell should be absent from second column")
	}
}

func TestReadRaggedRows(t *testing.T) {
	// Short rows simply end the data for trailing columns.
	csv := "x,,\n" +
		"FELDNAME,BESCHREIBUNG,Datensatz 1,Datensatz 2\n" +
		",,\n" +
		",,\n" +
		"Datensatz ID,id,147\n" +
		"Land,Land,Serbia,Albania\n"

	tbl, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got := tbl.Columns[0].Get("Datensatz ID"); got != "147" {
		t.Errorf("Datensatz ID = %q, want %q", got, "147")
	}
	if _, ok := tbl.Columns[1].Fields["Datensatz ID"]; ok {
		t.Error("short row should leave second column without Datensatz ID")
	}
	if got := tbl.Columns[1].Get("Land"); got != "Albania" {
		t.Errorf("Land = %q, want %q", got, "Albania")
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single row", "just,one,row\n"},
		{"no dataset columns", "a,b\nFELDNAME,BESCHREIBUNG\n,,\n,,\nLand,Land\n"},
		{"no metadata rows", "a,b,c\nFELDNAME,BESCHREIBUNG,Datensatz 1\n,,\n,,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			var malformed *MalformedError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedError, got %v", err)
			}
		})
	}
}
