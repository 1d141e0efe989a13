// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseRouting(t *testing.T) {
	input := strings.Join([]string{
		"# comment line",
		"",
		"gehen\tging\tgehen",
		"sein\tregex:w[aä]re?n?\tsein",
		"\tOnline\tonline",
		"\tregex:[A-Z]+-Shop\tShop",
		"gehen\t\tgehen",
	}, "\n")

	var warn bytes.Buffer
	rs := Parse(strings.NewReader(input), &warn)

	if got := len(rs.lemmaWord); got != 1 {
		t.Errorf("lemmaWord entries = %d, want 1", got)
	}
	if got := len(rs.lemmaWordRegex); got != 1 {
		t.Errorf("lemmaWordRegex entries = %d, want 1", got)
	}
	if got := len(rs.word); got != 1 {
		t.Errorf("word entries = %d, want 1", got)
	}
	if got := len(rs.wordRegex); got != 1 {
		t.Errorf("wordRegex entries = %d, want 1", got)
	}
	if got := len(rs.lemma); got != 1 {
		t.Errorf("lemma entries = %d, want 1", got)
	}
	if rs.SkippedRows != 0 {
		t.Errorf("SkippedRows = %d, want 0; warnings: %s", rs.SkippedRows, warn.String())
	}
	if rs.Len() != 5 {
		t.Errorf("Len() = %d, want 5", rs.Len())
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"too few columns", "gehen\tging"},
		{"empty target", "gehen\tging\t"},
		{"no match keys", "\t\tgehen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warn bytes.Buffer
			rs := Parse(strings.NewReader(tt.row+"\n"), &warn)
			if rs.Len() != 0 {
				t.Errorf("Len() = %d, want 0", rs.Len())
			}
			if rs.SkippedRows != 1 {
				t.Errorf("SkippedRows = %d, want 1", rs.SkippedRows)
			}
			if !strings.Contains(warn.String(), "warning") {
				t.Errorf("expected a warning, got %q", warn.String())
			}
		})
	}
}

func TestParsePreservesSourceOrder(t *testing.T) {
	input := strings.Join([]string{
		"gehen\tging\tfirst\tctx-a",
		"gehen\tging\tsecond\tctx-b",
		"gehen\tging\tthird",
	}, "\n")

	var warn bytes.Buffer
	rs := Parse(strings.NewReader(input), &warn)

	list := rs.lemmaWord[lemmaWordKey{Lemma: "gehen", Word: "ging"}]
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	want := []string{"first", "second", "third"}
	for i, r := range list {
		if r.Target != want[i] {
			t.Errorf("list[%d].Target = %q, want %q", i, r.Target, want[i])
		}
	}
	if list[2].Cond != nil {
		t.Errorf("list[2] should be unconditioned")
	}
}

func TestParseContextConditionTagging(t *testing.T) {
	input := strings.Join([]string{
		"a\tb\tc\tliteral ctx",
		"a\tb\td\tregex:ctx.*pattern",
	}, "\n")

	var warn bytes.Buffer
	rs := Parse(strings.NewReader(input), &warn)

	list := rs.lemmaWord[lemmaWordKey{Lemma: "a", Word: "b"}]
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].Cond == nil || list[0].Cond.IsRegex {
		t.Errorf("first condition should be a literal, got %+v", list[0].Cond)
	}
	if list[1].Cond == nil || !list[1].Cond.IsRegex || list[1].Cond.Expr != "ctx.*pattern" {
		t.Errorf("second condition should be regex ctx.*pattern, got %+v", list[1].Cond)
	}
}

func TestLoadMissingFileYieldsEmptySet(t *testing.T) {
	var warn bytes.Buffer
	rs := Load("testdata/does-not-exist.tsv", &warn)
	if rs == nil {
		t.Fatal("Load returned nil")
	}
	if rs.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rs.Len())
	}
	if !strings.Contains(warn.String(), "warning") {
		t.Errorf("expected a warning, got %q", warn.String())
	}
}
