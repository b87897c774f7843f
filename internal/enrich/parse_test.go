package enrich

import "testing"

func TestMapRole(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Carry", "Carry"},
		{"Hard Carry", "Carry"},
		{"Position 1", "Carry"},
		{"Mid", "Mid"},
		{"Middle", "Mid"},
		{"pos 2", "Mid"},
		{"Offlaner", "Offlane"},
		{"Offlane", "Offlane"},
		{"position 3", "Offlane"},
		{"Soft Support", "Soft Support"},
		{"pos4", "Soft Support"},
		{"Hard Support", "Hard Support"},
		{"Support", "Hard Support"},
		{"position 5", "Hard Support"},
		{"{{RoleIcon|Offlaner}}", "Offlane"},
		{"[[Carry]]", "Carry"},
		{"Coach", ""},
		{"Analyst", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MapRole(tc.in); got != tc.want {
			t.Errorf("MapRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoleFromWikitext(t *testing.T) {
	cases := []struct {
		name, wikitext, want string
	}{
		{"linked role", "|role=[[Offlaner]]\n|team=[[T1]]", "Offlane"},
		{"two linked roles keeps first", "|roles=[[Carry]] [[Mid]]\n", "Carry"},
		{"plain text", "|role=Support\n", "Hard Support"},
		{"slash separated", "|role=Mid/Carry\n", "Mid"},
		{"coach unmapped", "|role=[[Coach]]\n", ""},
		{"no role line", "|team=[[OG]]\n", ""},
	}
	for _, tc := range cases {
		if got := roleFromWikitext(tc.wikitext); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTeamFromWikitext(t *testing.T) {
	cases := []struct {
		name, wikitext, want string
	}{
		{"linked", "|team=[[Team Spirit]]\n", "Team Spirit"},
		{"linked with display", "|team=[[Team Spirit|Spirit]]\n", "Team Spirit"},
		{"plain", "|team=Tundra Esports\n", "Tundra Esports"},
		{"template ignored", "|team={{TBD}}\n", ""},
		{"absent", "|role=[[Carry]]\n", ""},
	}
	for _, tc := range cases {
		if got := teamFromWikitext(tc.wikitext); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTeamFromHTML(t *testing.T) {
	cases := []struct {
		name, html, want string
	}{
		{"label", "Name: Kuku Team: T1 Alternate IDs: none", "T1"},
		{"label at tag close", "<div>Team: Talon Esports</div>", "Talon Esports"},
		{"present history", "2023 - Present Team Falcons Recent Matches", "Team Falcons"},
		{"year rejected", "Present 2024 something", ""},
		{"absent", "<div>No infobox here</div>", ""},
	}
	for _, tc := range cases {
		if got := teamFromHTML(tc.html); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
