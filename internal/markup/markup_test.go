package markup

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "plain text",
			in:   "nothing special here",
			want: []Segment{{Text: "nothing special here"}},
		},
		{
			name: "single bold span",
			in:   "Find **the key** quickly",
			want: []Segment{
				{Text: "Find "},
				{Text: "the key", Bold: true},
				{Text: " quickly"},
			},
		},
		{
			name: "bold at start",
			in:   "**Danger** ahead",
			want: []Segment{
				{Text: "Danger", Bold: true},
				{Text: " ahead"},
			},
		},
		{
			name: "bold at end",
			in:   "beware the **mimic**",
			want: []Segment{
				{Text: "beware the "},
				{Text: "mimic", Bold: true},
			},
		},
		{
			name: "multiple spans",
			in:   "**a** and **b**",
			want: []Segment{
				{Text: "a", Bold: true},
				{Text: " and "},
				{Text: "b", Bold: true},
			},
		},
		{
			name: "unpaired delimiter is literal",
			in:   "broken **span",
			want: []Segment{{Text: "broken **span"}},
		},
		{
			name: "trailing unpaired after a pair",
			in:   "**ok** then **oops",
			want: []Segment{
				{Text: "ok", Bold: true},
				{Text: " then **oops"},
			},
		},
		{
			name: "empty bold span",
			in:   "a****b",
			want: []Segment{
				{Text: "a"},
				{Text: "", Bold: true},
				{Text: "b"},
			},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Find **the key** quickly", "Find the key quickly"},
		{"no markup", "no markup"},
		{"unpaired ** stays", "unpaired ** stays"},
	}
	for _, tc := range cases {
		if got := Strip(tc.in); got != tc.want {
			t.Errorf("Strip(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
