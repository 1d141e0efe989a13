// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ParseTargetTags builds the decomposition target-tag set from user input.
//
// Plain tags select an inclusion set. A "!"-prefixed tag switches to
// exclusion mode: the result is every tag except the negated ones, and any
// un-prefixed tags in the same list are ignored. The keyword "ALL" selects
// every tag.
func ParseTargetTags(args []string) map[POS]bool {
	// Accept both space-joined defaults ("NOUN PROPN ADV ADJ") and
	// individually passed tags.
	var tags []string
	for _, a := range args {
		tags = append(tags, strings.Fields(a)...)
	}

	set := make(map[POS]bool)

	negated := false
	for _, t := range tags {
		if strings.HasPrefix(t, "!") {
			negated = true
			break
		}
	}

	if negated {
		excluded := make(map[POS]bool)
		for _, t := range tags {
			if strings.HasPrefix(t, "!") {
				excluded[POS(strings.TrimPrefix(t, "!"))] = true
			}
		}
		for _, p := range AllPOSTags {
			if !excluded[p] {
				set[p] = true
			}
		}
		return set
	}

	for _, t := range tags {
		if t == "ALL" {
			for _, p := range AllPOSTags {
				set[p] = true
			}
			return set
		}
	}

	for _, t := range tags {
		set[POS(t)] = true
	}
	return set
}
