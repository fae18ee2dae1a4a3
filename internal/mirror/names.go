package mirror

import (
	"fmt"
	"regexp"
	"strings"
)

// Side tokens used in shape-key naming conventions.
const (
	SideLeft  = "L"
	SideRight = "R"
)

// SidePattern describes how a shape-key name encodes its side. A zero Base
// means no known convention matched and the name is ambiguous.
type SidePattern struct {
	Base      string // name with the side token stripped
	From      string // "L" or "R"
	To        string // opposite of From
	Separator string // "_", ".", "-" or "" for a direct suffix
}

// Ambiguous reports whether no side convention was detected.
func (p SidePattern) Ambiguous() bool {
	return p.Base == ""
}

// sideRule is one naming convention. Rules are tried in order and the first
// match wins, so precedence stays auditable: all left forms before all right
// forms, bare suffix before separated, short token before long.
type sideRule struct {
	re   *regexp.Regexp
	from string
}

var sideRules = []sideRule{
	{regexp.MustCompile(`^([A-Za-z0-9]+)L$`), SideLeft},
	{regexp.MustCompile(`^([A-Za-z0-9]+)([._-])L$`), SideLeft},
	{regexp.MustCompile(`^([A-Za-z0-9]+)Left$`), SideLeft},
	{regexp.MustCompile(`^([A-Za-z0-9]+)([._-])Left$`), SideLeft},
	{regexp.MustCompile(`^([A-Za-z0-9]+)R$`), SideRight},
	{regexp.MustCompile(`^([A-Za-z0-9]+)([._-])R$`), SideRight},
	{regexp.MustCompile(`^([A-Za-z0-9]+)Right$`), SideRight},
	{regexp.MustCompile(`^([A-Za-z0-9]+)([._-])Right$`), SideRight},
}

// DetectSide parses a shape-key name against the known L/R conventions.
// Returns a zero-value pattern when none match.
func DetectSide(name string) SidePattern {
	for _, rule := range sideRules {
		m := rule.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		p := SidePattern{Base: m[1], From: rule.from}
		if p.From == SideLeft {
			p.To = SideRight
		} else {
			p.To = SideLeft
		}
		if len(m) > 2 {
			p.Separator = m[2]
		}
		return p
	}
	return SidePattern{}
}

// MirrorName synthesizes the opposite-side name for a shape key. Ambiguous
// names get a "_Mirror" suffix. Collisions with existing names resolve
// deterministically: first "_Mirror", then "_1", "_2", and so on.
func MirrorName(name string, pat SidePattern, existing map[string]bool) string {
	var newName string
	switch {
	case pat.Ambiguous():
		newName = name + "_Mirror"
	case pat.To == SideLeft && strings.Contains(name, "Right"):
		// The side was spelled out, keep the word form.
		newName = pat.Base + pat.Separator + "Left"
	case pat.To == SideRight && strings.Contains(name, "Left"):
		newName = pat.Base + pat.Separator + "Right"
	default:
		newName = pat.Base + pat.Separator + pat.To
	}

	if !existing[newName] {
		return newName
	}
	newName += "_Mirror"
	if !existing[newName] {
		return newName
	}
	return probeName(newName, existing)
}

// probeName appends "_1", "_2", ... until the name is free. Bounded by the
// size of the existing set plus one.
func probeName(base string, existing map[string]bool) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !existing[candidate] {
			return candidate
		}
	}
}
