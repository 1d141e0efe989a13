// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// Deduplicate collapses case variants of the same lemma: candidates are
// grouped by lowercased form and one representative survives per group.
// A capitalized variant beats lowercase ones; among several capitalized
// variants, an exact Title-case form wins, else the first one generated.
// Group order follows first appearance, so the result is deterministic
// and re-running on its own output is a no-op.
func Deduplicate(candidates []string) []string {
	type group struct {
		rep      string
		hasUpper bool
	}

	var order []string
	groups := make(map[string]*group)

	for _, c := range candidates {
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		g, ok := groups[key]
		if !ok {
			g = &group{rep: c, hasUpper: startsUpper(c)}
			groups[key] = g
			order = append(order, key)
			continue
		}

		if !startsUpper(c) {
			continue
		}
		switch {
		case !g.hasUpper:
			g.rep = c
			g.hasUpper = true
		case c == capitalize(key) && g.rep != capitalize(key):
			// Exact Title-case beats other capitalized variants.
			g.rep = c
		}
	}

	var out []string
	for _, key := range order {
		out = append(out, groups[key].rep)
	}
	return out
}
