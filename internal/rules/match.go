// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// tier identifies one level of the resolution cascade, evaluated in
// declaration order. The first tier that yields a match wins.
type tier int

const (
	tierLemmaWord tier = iota
	tierLemmaWordRegex
	tierWord
	tierWordRegex
	tierLemma
)

var cascade = []tier{tierLemmaWord, tierLemmaWordRegex, tierWord, tierWordRegex, tierLemma}

// tierNames keys the per-tier hit counters in run reports.
var tierNames = map[tier]string{
	tierLemmaWord:      "lemma_word",
	tierLemmaWordRegex: "lemma_word_regex",
	tierWord:           "word",
	tierWordRegex:      "word_regex",
	tierLemma:          "lemma",
}

// Matcher resolves lemma candidates against a RuleSet. It caches compiled
// patterns; an invalid pattern is reported once and treated as
// non-matching thereafter.
type Matcher struct {
	rules *RuleSet
	warn  io.Writer

	// compiled maps pattern source to its compiled form, nil for
	// patterns that failed to compile.
	compiled map[string]*regexp.Regexp

	hits map[string]int
}

// NewMatcher builds a Matcher over rs. Pattern problems are reported to
// warn.
func NewMatcher(rs *RuleSet, warn io.Writer) *Matcher {
	return &Matcher{
		rules:    rs,
		warn:     warn,
		compiled: make(map[string]*regexp.Regexp),
		hits:     make(map[string]int),
	}
}

// TierHits returns a copy of the per-tier match counters.
func (m *Matcher) TierHits() map[string]int {
	out := make(map[string]int, len(m.hits))
	for k, v := range m.hits {
		out[k] = v
	}
	return out
}

// ResolveWord resolves the lemma for a whole token. The word tiers match
// against the original surface word.
func (m *Matcher) ResolveWord(initialLemma, word, sentence string) string {
	return m.resolve(initialLemma, word, word, sentence)
}

// ResolvePart resolves the lemma for one compound component. The
// lemma+word tiers still match against the full original word; the word
// tiers match against the component itself.
func (m *Matcher) ResolvePart(initialLemma, part, word, sentence string) string {
	return m.resolve(initialLemma, part, word, sentence)
}

// resolve runs the cascade. wordKey feeds the word tiers; fullWord feeds
// the lemma+word tiers. When no tier matches, the initial lemma stands.
func (m *Matcher) resolve(initialLemma, wordKey, fullWord, sentence string) string {
	for _, t := range cascade {
		if target, ok := m.matchTier(t, initialLemma, wordKey, fullWord, sentence); ok {
			m.hits[tierNames[t]]++
			return target
		}
	}
	return initialLemma
}

func (m *Matcher) matchTier(t tier, initialLemma, wordKey, fullWord, sentence string) (string, bool) {
	switch t {
	case tierLemmaWord:
		return m.selectInContext(m.rules.lemmaWord[lemmaWordKey{Lemma: initialLemma, Word: fullWord}], sentence)

	case tierLemmaWordRegex:
		for _, pr := range m.rules.lemmaWordRegex {
			if pr.Lemma != initialLemma {
				continue
			}
			if !m.fullMatch(pr.Pattern, fullWord) {
				continue
			}
			if target, ok := m.selectInContext([]Rule{pr.Rule}, sentence); ok {
				return target, true
			}
		}

	case tierWord:
		return m.selectInContext(m.rules.word[wordKey], sentence)

	case tierWordRegex:
		for _, pr := range m.rules.wordRegex {
			if !m.fullMatch(pr.Pattern, wordKey) {
				continue
			}
			if target, ok := m.selectInContext([]Rule{pr.Rule}, sentence); ok {
				return target, true
			}
		}

	case tierLemma:
		return m.selectInContext(m.rules.lemma[initialLemma], sentence)
	}
	return "", false
}

// selectInContext applies the context selection algorithm to one tier's
// candidate list: conditioned rules are tried first in source order, and
// a single unconditioned rule acts as the fallback. With zero or several
// unconditioned rules and no matching condition, the tier yields nothing
// and the cascade continues.
func (m *Matcher) selectInContext(candidates []Rule, sentence string) (string, bool) {
	var fallback *Rule
	fallbackCount := 0

	for i := range candidates {
		r := &candidates[i]
		if r.Cond == nil {
			if fallback == nil {
				fallback = r
			}
			fallbackCount++
			continue
		}
		if m.condMatches(r.Cond, sentence) {
			return r.Target, true
		}
	}

	if fallbackCount == 1 {
		return fallback.Target, true
	}
	return "", false
}

// condMatches evaluates one context condition against the sentence text.
func (m *Matcher) condMatches(c *Condition, sentence string) bool {
	if !c.IsRegex {
		return c.Expr != "" && strings.Contains(sentence, c.Expr)
	}
	re := m.compile(c.Expr, false)
	if re == nil {
		return false
	}
	return re.MatchString(sentence)
}

// fullMatch reports whether pattern matches the whole of s.
func (m *Matcher) fullMatch(pattern, s string) bool {
	re := m.compile(pattern, true)
	if re == nil {
		return false
	}
	return re.MatchString(s)
}

// compile returns the cached compiled pattern, anchoring it when anchored
// is set. Compile failures are reported once per pattern.
func (m *Matcher) compile(pattern string, anchored bool) *regexp.Regexp {
	key := pattern
	if anchored {
		key = "\x00" + pattern
	}
	if re, ok := m.compiled[key]; ok {
		return re
	}

	src := pattern
	if anchored {
		src = "^(?:" + pattern + ")$"
	}
	re, err := regexp.Compile(src)
	if err != nil {
		fmt.Fprintf(m.warn, "warning: invalid regex in override rule %q: %v\n", pattern, err)
		re = nil
	}
	m.compiled[key] = re
	return re
}
