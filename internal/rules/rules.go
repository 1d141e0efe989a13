// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules loads lemma override rules and resolves them against
// tokens with a fixed priority cascade.
package rules

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// regexMarker prefixes a word match or context condition that should be
// interpreted as a regular expression instead of a literal.
const regexMarker = "regex:"

// Condition is an optional sentence-context gate on a rule. A regex
// condition matches when the pattern is found anywhere in the sentence;
// a literal condition matches when it is a substring of the sentence.
type Condition struct {
	IsRegex bool
	Expr    string
}

// Rule maps a matched key to a replacement lemma, optionally gated on
// sentence context.
type Rule struct {
	Target string
	Cond   *Condition
}

// lemmaWordKey keys the highest-priority tier on the analyzer lemma and
// the original surface word together.
type lemmaWordKey struct {
	Lemma string
	Word  string
}

// lemmaPatternRule gates a word regex on exact lemma equality.
type lemmaPatternRule struct {
	Lemma   string
	Pattern string
	Rule    Rule
}

// patternRule matches a word (or compound part) against a regex.
type patternRule struct {
	Pattern string
	Rule    Rule
}

// RuleSet is the immutable, tiered override-rule table. Within each keyed
// list the source-file order is preserved; it is the tie-break for
// context-conditioned rules.
type RuleSet struct {
	lemmaWord      map[lemmaWordKey][]Rule
	lemmaWordRegex []lemmaPatternRule
	word           map[string][]Rule
	wordRegex      []patternRule
	lemma          map[string][]Rule

	// SkippedRows counts malformed rows dropped during loading.
	SkippedRows int
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		lemmaWord: make(map[lemmaWordKey][]Rule),
		word:      make(map[string][]Rule),
		lemma:     make(map[string][]Rule),
	}
}

// Len returns the total number of loaded rules.
func (rs *RuleSet) Len() int {
	n := len(rs.lemmaWordRegex) + len(rs.wordRegex)
	for _, l := range rs.lemmaWord {
		n += len(l)
	}
	for _, l := range rs.word {
		n += len(l)
	}
	for _, l := range rs.lemma {
		n += len(l)
	}
	return n
}

// Load reads override rules from a tab-separated file. A missing or
// unreadable file is reported to warn and yields an empty set; extraction
// proceeds without overrides. Malformed rows are reported per-row and
// skipped.
func Load(path string, warn io.Writer) *RuleSet {
	rs := NewRuleSet()

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(warn, "warning: lemma override file %s: %v\n", path, err)
		return rs
	}
	defer f.Close()

	if err := rs.parse(f, path, warn); err != nil {
		fmt.Fprintf(warn, "warning: reading lemma override file %s: %v\n", path, err)
	}
	return rs
}

// Parse reads override rules from r. Exposed for tests and for callers
// that hold rule text in memory.
func Parse(r io.Reader, warn io.Writer) *RuleSet {
	rs := NewRuleSet()
	if err := rs.parse(r, "<reader>", warn); err != nil {
		fmt.Fprintf(warn, "warning: reading lemma override rules: %v\n", err)
	}
	return rs
}

func (rs *RuleSet) parse(r io.Reader, name string, warn io.Writer) error {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		if len(row) == 0 || row[0] == "" && allEmpty(row) || strings.HasPrefix(row[0], "#") {
			continue
		}

		if len(row) < 3 {
			fmt.Fprintf(warn, "warning: %s line %d: expected at least 3 columns, skipping\n", name, line)
			rs.SkippedRows++
			continue
		}

		lemmaMatch := strings.TrimSpace(row[0])
		wordMatchRaw := row[1]
		target := strings.TrimSpace(row[2])

		var cond *Condition
		if len(row) > 3 && row[3] != "" {
			raw := row[3]
			if strings.HasPrefix(raw, regexMarker) {
				cond = &Condition{IsRegex: true, Expr: strings.TrimPrefix(raw, regexMarker)}
			} else if lit := strings.TrimSpace(raw); lit != "" {
				cond = &Condition{Expr: lit}
			}
		}

		if target == "" || (lemmaMatch == "" && strings.TrimSpace(wordMatchRaw) == "") {
			fmt.Fprintf(warn, "warning: %s line %d: target lemma and at least one of lemma match or word match must be set, skipping\n", name, line)
			rs.SkippedRows++
			continue
		}

		rule := Rule{Target: target, Cond: cond}
		wordIsRegex := strings.HasPrefix(wordMatchRaw, regexMarker)
		wordMatch := strings.TrimSpace(wordMatchRaw)

		switch {
		case lemmaMatch != "" && wordMatch != "":
			if wordIsRegex {
				rs.lemmaWordRegex = append(rs.lemmaWordRegex, lemmaPatternRule{
					Lemma:   lemmaMatch,
					Pattern: strings.TrimPrefix(wordMatchRaw, regexMarker),
					Rule:    rule,
				})
			} else {
				key := lemmaWordKey{Lemma: lemmaMatch, Word: wordMatch}
				rs.lemmaWord[key] = append(rs.lemmaWord[key], rule)
			}
		case wordMatch != "":
			if wordIsRegex {
				rs.wordRegex = append(rs.wordRegex, patternRule{
					Pattern: strings.TrimPrefix(wordMatchRaw, regexMarker),
					Rule:    rule,
				})
			} else {
				rs.word[wordMatch] = append(rs.word[wordMatch], rule)
			}
		default:
			rs.lemma[lemmaMatch] = append(rs.lemma[lemmaMatch], rule)
		}
	}
}

func allEmpty(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
