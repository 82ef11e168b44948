package markup

import (
	"reflect"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Fragment
	}{
		{
			"plain text unchanged",
			"no markers here",
			[]Fragment{{Text, "no markers here"}},
		},
		{
			"single span",
			"see *Serbian Census* for details",
			[]Fragment{{Text, "see "}, {Emphasis, "Serbian Census"}, {Text, " for details"}},
		},
		{
			"whole string emphasized",
			"*everything*",
			[]Fragment{{Emphasis, "everything"}},
		},
		{
			"two spans preserve interior whitespace",
			"*a*  and  *b*",
			[]Fragment{{Emphasis, "a"}, {Text, "  and  "}, {Emphasis, "b"}},
		},
		{
			"odd marker count leaves last literal",
			"*a* and * more",
			[]Fragment{{Emphasis, "a"}, {Text, " and * more"}},
		},
		{
			"lone marker is literal",
			"5 * 3",
			[]Fragment{{Text, "5 * 3"}},
		},
		{
			"empty input",
			"",
			nil,
		},
		{
			"citation style",
			"Halpern, Joel M. *Mosaic Historical Microdata File*. 2014.",
			[]Fragment{
				{Text, "Halpern, Joel M. "},
				{Emphasis, "Mosaic Historical Microdata File"},
				{Text, ". 2014."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Format(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	// Concatenating fragment values (with markers restored around emphasis)
	// reproduces the input exactly.
	inputs := []string{
		"plain",
		"*a* b *c*",
		"trailing *odd",
		"mixed *spans* with * stray markers",
	}
	for _, in := range inputs {
		var out string
		for _, f := range Format(in) {
			if f.Kind == Emphasis {
				out += "*" + f.Value + "*"
			} else {
				out += f.Value
			}
		}
		if out != in {
			t.Errorf("round trip of %q produced %q", in, out)
		}
	}
}

func TestPlain(t *testing.T) {
	if !Plain("nothing to see") {
		t.Error("Plain should be true for marker-free text")
	}
	if Plain("*marked*") {
		t.Error("Plain should be false when a span is present")
	}
	if !Plain("odd * marker") {
		t.Error("a lone marker is not a span")
	}
}
