// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestParseTargetTagsInclusion(t *testing.T) {
	set := ParseTargetTags([]string{"NOUN", "ADJ"})
	if !set[POSNoun] || !set[POSAdj] {
		t.Errorf("inclusion set missing listed tags: %v", set)
	}
	if set[POSVerb] {
		t.Errorf("inclusion set contains unlisted tag: %v", set)
	}
}

func TestParseTargetTagsSpaceJoinedDefault(t *testing.T) {
	set := ParseTargetTags([]string{"NOUN PROPN ADV ADJ"})
	for _, p := range []POS{POSNoun, POSPropn, POSAdv, POSAdj} {
		if !set[p] {
			t.Errorf("space-joined default missing %s", p)
		}
	}
	if len(set) != 4 {
		t.Errorf("got %d tags, want 4", len(set))
	}
}

func TestParseTargetTagsExclusion(t *testing.T) {
	set := ParseTargetTags([]string{"!VERB", "!AUX"})
	if set[POSVerb] || set[POSAux] {
		t.Errorf("exclusion set contains negated tags: %v", set)
	}
	if !set[POSNoun] || !set[POSAdj] {
		t.Errorf("exclusion set missing remaining tags: %v", set)
	}
}

func TestParseTargetTagsExclusionIgnoresPlainTags(t *testing.T) {
	// One negation switches the whole list to exclusion mode.
	set := ParseTargetTags([]string{"NOUN", "!VERB"})
	if set[POSVerb] {
		t.Errorf("negated tag present: %v", set)
	}
	if len(set) != len(AllPOSTags)-1 {
		t.Errorf("got %d tags, want all but VERB", len(set))
	}
}

func TestParseTargetTagsAll(t *testing.T) {
	set := ParseTargetTags([]string{"ALL"})
	if len(set) != len(AllPOSTags) {
		t.Errorf("ALL yielded %d tags, want %d", len(set), len(AllPOSTags))
	}
}
