// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns annotated text into deduplicated vocabulary
// lemmas. The override-rule cascade, the capitalization policy, the
// compound-decomposition bridge, and the case-aware deduplication all
// meet here.
package extract

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kardenwort/kardenwort/internal/analyze"
	"github.com/kardenwort/kardenwort/internal/compound"
	"github.com/kardenwort/kardenwort/internal/rules"
	"github.com/kardenwort/kardenwort/internal/wordlist"
	"github.com/kardenwort/kardenwort/pkg/types"
)

// partCacheSize bounds the compound-part lemmatization cache.
const partCacheSize = 16384

// Decomposer abstracts the compound decomposer so tests can supply a
// stub. compound.Splitter is the production implementation.
type Decomposer interface {
	Dissect(word string, opts compound.DissectOptions) ([]string, error)
}

// Summary counts what one extraction run processed.
type Summary struct {
	Units           int            `yaml:"units"`
	Tokens          int            `yaml:"tokens"`
	SplitTokens     int            `yaml:"split_tokens"`
	Lemmas          int            `yaml:"lemmas"`
	SkippedRuleRows int            `yaml:"skipped_rule_rows"`
	OverrideHits    map[string]int `yaml:"override_hits,omitempty"`
}

// Extractor runs the lemma pipeline over text units. All referenced
// state is read-only after construction.
type Extractor struct {
	analyzer analyze.Analyzer
	dict     *wordlist.Dictionary
	freq     *wordlist.FrequencyIndex
	matcher  *rules.Matcher
	splitter Decomposer
	opts     types.ExtractOptions
	warn     io.Writer

	partCache *lru.Cache[string, string]

	summary Summary
}

// New builds an Extractor. splitter may be nil when decomposition is
// disabled or no dictionary is available.
func New(analyzer analyze.Analyzer, dict *wordlist.Dictionary, freq *wordlist.FrequencyIndex,
	matcher *rules.Matcher, splitter Decomposer, opts types.ExtractOptions, warn io.Writer) *Extractor {

	cache, _ := lru.New[string, string](partCacheSize)
	return &Extractor{
		analyzer:  analyzer,
		dict:      dict,
		freq:      freq,
		matcher:   matcher,
		splitter:  splitter,
		opts:      opts,
		warn:      warn,
		partCache: cache,
	}
}

// Summary returns the run counters accumulated so far, including the
// matcher's per-tier override hits.
func (e *Extractor) Summary() Summary {
	s := e.summary
	if e.matcher != nil {
		if hits := e.matcher.TierHits(); len(hits) > 0 {
			s.OverrideHits = hits
		}
	}
	return s
}

// AddSkippedRuleRows folds rule-loader statistics into the run summary.
func (e *Extractor) AddSkippedRuleRows(n int) { e.summary.SkippedRuleRows += n }

// tokenLemma pairs one deduplicated lemma with the surface form it came
// from.
type tokenLemma struct {
	Lemma   string
	Surface string
}

// unitLemmas runs the full per-token pipeline over one text unit and
// returns the deduplicated lemmas in token order.
func (e *Extractor) unitLemmas(unit string) ([]tokenLemma, error) {
	tokens, err := e.analyzer.Annotate(unit)
	if err != nil {
		return nil, fmt.Errorf("annotating text unit: %w", err)
	}

	pairs := analyze.SeparableVerbPairs(tokens)
	skip := analyze.ParticleIndices(pairs)

	var out []tokenLemma
	for _, tok := range tokens {
		if skip[tok.Index] {
			continue
		}
		if !tok.IsAlpha && !strings.Contains(tok.Text, "-") {
			continue
		}
		e.summary.Tokens++

		var particle *types.Token
		if p, ok := pairs[tok.Index]; ok {
			particle = &p
		}

		candidates, surface := e.tokenCandidates(tok, particle, unit)
		for _, lemma := range Deduplicate(candidates) {
			out = append(out, tokenLemma{Lemma: lemma, Surface: surface})
		}
	}
	return out, nil
}

// tokenCandidates produces the candidate lemma set for one token: the
// resolved base lemma, plus resolved component lemmas when a
// decomposition mechanism fires. The set is never empty.
func (e *Extractor) tokenCandidates(tok types.Token, particle *types.Token, sentence string) ([]string, string) {
	sourceWord := tok.Text
	var lemma string
	if particle != nil {
		// Separable verb: fuse the particle onto the verb lemma before
		// any override lookup.
		lemma = strings.ToLower(particle.Text) + strings.ToLower(tok.Lemma)
		sourceWord = tok.Text + " " + particle.Text
	} else {
		lemma = e.defaultLemma(tok)
	}
	base := e.matcher.ResolveWord(lemma, sourceWord, sentence)

	special := tok.LikeURL || tok.LikeEmail
	var candidates []string

	switch {
	case e.opts.Split.Enabled && strings.Contains(tok.Text, "-") && !special:
		candidates = e.hyphenCandidates(tok, base, sentence)

	case e.automatonApplies(tok, special):
		candidates = e.automatonCandidates(tok, base, sentence)
	}

	if len(candidates) == 0 {
		candidates = []string{base}
	}
	return candidates, sourceWord
}

// hyphenCandidates splits strictly on hyphens. Parts of one rune or less
// are discarded; with fewer than two surviving parts the token stays
// unsplit.
func (e *Extractor) hyphenCandidates(tok types.Token, base, sentence string) []string {
	var parts []string
	for _, p := range strings.Split(tok.Text, "-") {
		if len([]rune(p)) > 1 {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return nil
	}
	e.summary.SplitTokens++

	var candidates []string
	if e.opts.Split.PreserveCompound {
		candidates = append(candidates, base)
	}
	for _, part := range parts {
		initial := e.lemmatizePart(part)
		if resolved := e.matcher.ResolvePart(initial, part, tok.Text, sentence); resolved != "" {
			candidates = append(candidates, resolved)
		}
	}
	return candidates
}

// automatonApplies gates dictionary-automaton splitting: German only,
// never on URL-like tokens, only beyond four characters, and only for
// the configured POS tags.
func (e *Extractor) automatonApplies(tok types.Token, special bool) bool {
	return e.opts.Split.Enabled &&
		e.splitter != nil &&
		e.opts.Language == "de" &&
		!special &&
		len([]rune(tok.Text)) > 3 &&
		e.opts.Split.TargetTags[tok.POS]
}

// automatonCandidates drives the decomposer. Any decomposer failure
// falls back silently to the unsplit token.
func (e *Extractor) automatonCandidates(tok types.Token, base, sentence string) []string {
	components, err := e.dissect(tok)
	if err != nil || len(components) <= 1 {
		return nil
	}
	e.summary.SplitTokens++

	var candidates []string
	if e.opts.Split.PreserveCompound {
		candidates = append(candidates, base)
	}

	seen := make(map[string]bool, len(components))
	for _, raw := range components {
		if seen[raw] {
			continue
		}
		seen[raw] = true

		component := strings.Trim(raw, "-")
		if len([]rune(component)) < 3 {
			continue
		}

		initial := e.lemmatizePart(component)
		resolved := e.matcher.ResolvePart(initial, component, tok.Text, sentence)
		if formatted := formatComponentCase(resolved); formatted != "" {
			candidates = append(candidates, formatted)
		}
	}
	return candidates
}

// SentenceLemmas extracts the sorted unique lemma list for one sentence.
func (e *Extractor) SentenceLemmas(sentence string) ([]string, error) {
	found, err := e.unitLemmas(sentence)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(found))
	var lemmas []string
	for _, tl := range found {
		if !set[tl.Lemma] {
			set[tl.Lemma] = true
			lemmas = append(lemmas, tl.Lemma)
		}
	}
	e.SortLemmas(lemmas)
	return lemmas, nil
}

// Occurrence records where a lemma was first seen and its shortest
// observed surface form.
type Occurrence struct {
	Line     int
	Sentence string
	Surface  string
}

// Vocabulary is the document-level lemma accumulator. The first sighting
// of a lemma fixes its location; only the surface form may later be
// replaced by a shorter one.
type Vocabulary struct {
	entries map[string]*Occurrence
}

// NewVocabulary returns an empty accumulator.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{entries: make(map[string]*Occurrence)}
}

// Add merges one sighting into the accumulator.
func (v *Vocabulary) Add(lemma, surface string, line int, sentence string) {
	if lemma == "" {
		return
	}
	occ, ok := v.entries[lemma]
	if !ok {
		v.entries[lemma] = &Occurrence{Line: line, Sentence: sentence, Surface: surface}
		return
	}
	if utf8.RuneCountInString(surface) < utf8.RuneCountInString(occ.Surface) {
		occ.Surface = surface
	}
}

// Get returns the occurrence recorded for lemma.
func (v *Vocabulary) Get(lemma string) (Occurrence, bool) {
	occ, ok := v.entries[lemma]
	if !ok {
		return Occurrence{}, false
	}
	return *occ, true
}

// Len returns the number of accumulated lemmas.
func (v *Vocabulary) Len() int { return len(v.entries) }

// Lemmas returns the accumulated lemmas in unspecified order.
func (v *Vocabulary) Lemmas() []string {
	out := make([]string, 0, len(v.entries))
	for l := range v.entries {
		out = append(out, l)
	}
	return out
}

// AccumulateUnit extracts one text unit into the accumulator. line is
// the 1-based position of the unit within its document.
func (e *Extractor) AccumulateUnit(v *Vocabulary, line int, unit string) error {
	e.summary.Units++
	found, err := e.unitLemmas(unit)
	if err != nil {
		return err
	}
	for _, tl := range found {
		v.Add(tl.Lemma, tl.Surface, line, unit)
	}
	e.summary.Lemmas = v.Len()
	return nil
}

// SortLemmas orders lemmas by frequency-index rank, with unindexed
// lemmas last in case-insensitive alphabetical order. The sort is
// stable, so equal keys keep their incoming order.
func (e *Extractor) SortLemmas(lemmas []string) {
	type key struct {
		unindexed bool
		rank      int
		lower     string
	}
	keys := make(map[string]key, len(lemmas))
	for _, l := range lemmas {
		r, ok := e.freq.Rank(l)
		if !ok {
			r = 0
		}
		keys[l] = key{unindexed: !ok, rank: r, lower: strings.ToLower(l)}
	}

	sort.SliceStable(lemmas, func(i, j int) bool {
		a, b := keys[lemmas[i]], keys[lemmas[j]]
		if a.unindexed != b.unindexed {
			return !a.unindexed
		}
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return a.lower < b.lower
	})
}
