package enrich

import (
	"regexp"
	"strings"
)

var (
	teamLinkedRe = regexp.MustCompile(`(?i)\|team\s*=\s*\[\[([^\]|]+)`)
	teamPlainRe  = regexp.MustCompile(`(?i)\|team\s*=\s*([^\n|\[]+)`)

	// Rendered-page fallbacks. The trailing group anchors where the team
	// name ends (next infobox label, tag close, or end of input).
	teamLabelRe   = regexp.MustCompile(`(?i)Team:\s*([A-Za-z0-9_\s.\-]+?)(\s+Alternate|\s+Approx|\s+Years|</|\n\n|$)`)
	teamPresentRe = regexp.MustCompile(`(?i)Present\s+([A-Za-z0-9_\s.\-]+?)(\s+Recent|\s+Upcoming|\s+\d{4}|$)`)

	roleLineRe  = regexp.MustCompile(`(?is)\|roles?\s*=\s*(.+?)(\n\||$)`)
	roleLinkRe  = regexp.MustCompile(`\[\[([^\]|]+)\]\]`)
	coachRe     = regexp.MustCompile(`(?i)^coach$`)
	offlaneRe   = regexp.MustCompile(`(?i)\bofflane|\bofflaner|position\s*3|pos\s*3|pos3`)
	carryRe     = regexp.MustCompile(`(?i)\bcarry|position\s*1|pos\s*1|pos1|hard\s*carry`)
	midRe       = regexp.MustCompile(`(?i)\bmid|\bmiddle|position\s*2|pos\s*2|pos2`)
	softSupRe   = regexp.MustCompile(`(?i)soft\s*support|position\s*4|pos\s*4|pos4`)
	hardSupRe   = regexp.MustCompile(`(?i)hard\s*support|position\s*5|pos\s*5|pos5|\bsupport\b`)
)

func teamFromWikitext(wikitext string) string {
	if m := teamLinkedRe.FindStringSubmatch(wikitext); m != nil && !strings.HasPrefix(m[1], "{{") {
		team := strings.TrimSpace(m[1])
		if len(team) > 0 && len(team) < 120 {
			return team
		}
	}
	if m := teamPlainRe.FindStringSubmatch(wikitext); m != nil {
		team := strings.TrimSpace(m[1])
		if len(team) > 0 && len(team) < 120 && !strings.Contains(team, "{{") {
			return team
		}
	}
	return ""
}

func teamFromHTML(html string) string {
	if m := teamLabelRe.FindStringSubmatch(html); m != nil {
		team := strings.TrimSpace(m[1])
		if len(team) > 0 && len(team) < 80 {
			return team
		}
	}
	if m := teamPresentRe.FindStringSubmatch(html); m != nil {
		team := strings.TrimSpace(m[1])
		if len(team) > 0 && len(team) < 80 && !(team[0] >= '0' && team[0] <= '9') {
			return team
		}
	}
	return ""
}

// roleFromWikitext extracts the first role from the infobox role line:
// [[Offlaner]]/[[Carry]], [[Offlaner]] [[Carry]], or plain text.
func roleFromWikitext(wikitext string) string {
	m := roleLineRe.FindStringSubmatch(wikitext)
	if m == nil {
		return ""
	}
	raw := strings.TrimSpace(m[1])
	first := raw
	if link := roleLinkRe.FindStringSubmatch(raw); link != nil {
		first = link[1]
	} else if i := strings.IndexAny(raw, "/[]"); i >= 0 {
		first = strings.TrimSpace(raw[:i])
		if first == "" {
			first = raw
		}
	}
	return MapRole(first)
}

// MapRole maps a Liquipedia role string to one of the five game roles.
// Empty string means not mappable (e.g. Coach). Check order matters:
// offlane before the generic support patterns.
func MapRole(raw string) string {
	s := strings.ToLower(strings.NewReplacer("[", "", "]", "", "{", "", "}", "").Replace(raw))
	s = strings.TrimSpace(s)
	// {{RoleIcon|Offlaner}} keeps the part after the last |
	if i := strings.LastIndex(s, "|"); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	switch {
	case coachRe.MatchString(s):
		return ""
	case offlaneRe.MatchString(s):
		return "Offlane"
	case carryRe.MatchString(s):
		return "Carry"
	case midRe.MatchString(s):
		return "Mid"
	case softSupRe.MatchString(s):
		return "Soft Support"
	case hardSupRe.MatchString(s):
		return "Hard Support"
	}
	return ""
}
