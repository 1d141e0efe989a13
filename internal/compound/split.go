// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compound decomposes German compound words into their
// constituent sub-words using a dictionary automaton.
package compound

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the dissection cache. Compound vocabulary in running
// text repeats heavily, so a modest cache carries most of the load.
const cacheSize = 65536

// minComponentRunes is the shortest prefix the automaton will match.
const minComponentRunes = 2

// pluralSuffixes are tried during singularization, longest first.
var pluralSuffixes = []string{"nen", "en", "er", "e", "n", "s"}

// ErrEmptyAutomaton is returned when dissection is attempted without any
// loaded dictionary entries.
var ErrEmptyAutomaton = errors.New("compound automaton is empty")

// Automaton is the read-only dictionary the splitter matches prefixes
// against. Entries remember whether the source word list capitalized
// them; in a German word list that marks nouns.
type Automaton struct {
	entries map[string]bool // lowercased form → capitalized in source
}

// NewAutomaton builds an automaton from a word list.
func NewAutomaton(words []string) *Automaton {
	a := &Automaton{entries: make(map[string]bool, len(words))}
	for _, w := range words {
		if w == "" {
			continue
		}
		lower := strings.ToLower(w)
		noun := startsUpper(w)
		// A capitalized sighting wins: the same form may appear both as
		// noun and verb stem in the list.
		a.entries[lower] = a.entries[lower] || noun
		if norm := normalizeUmlauts(lower); norm != lower {
			a.entries[norm] = a.entries[norm] || noun
		}
	}
	return a
}

// Len returns the number of automaton entries.
func (a *Automaton) Len() int { return len(a.entries) }

// lookup reports whether form is a known word, and whether it is a noun.
func (a *Automaton) lookup(form string) (known, noun bool) {
	if n, ok := a.entries[form]; ok {
		return true, n
	}
	if norm := normalizeUmlauts(form); norm != form {
		if n, ok := a.entries[norm]; ok {
			return true, n
		}
	}
	return false, false
}

// DissectOptions controls one dissection pass.
type DissectOptions struct {
	// MakeSingular reduces plural components to their dictionary
	// singular where one exists.
	MakeSingular bool

	// OnlyNouns restricts component matches to dictionary nouns.
	OnlyNouns bool

	// MaskUnknown drops a trailing fragment that is not in the
	// dictionary instead of refusing the split.
	MaskUnknown bool
}

// Splitter dissects compounds against an Automaton, caching results.
type Splitter struct {
	auto  *Automaton
	cache *lru.Cache[string, []string]
}

// NewSplitter builds a Splitter over the automaton.
func NewSplitter(auto *Automaton) *Splitter {
	cache, _ := lru.New[string, []string](cacheSize)
	return &Splitter{auto: auto, cache: cache}
}

// Dissect splits word into components. When the word cannot be split it
// is returned as its own single component; the caller treats one-element
// results as unsplit. The only error condition is an unusable automaton.
func (s *Splitter) Dissect(word string, opts DissectOptions) ([]string, error) {
	if s.auto == nil || s.auto.Len() == 0 {
		return nil, ErrEmptyAutomaton
	}

	key := fmt.Sprintf("%s|%v|%v|%v", word, opts.MakeSingular, opts.OnlyNouns, opts.MaskUnknown)
	if cached, ok := s.cache.Get(key); ok {
		out := make([]string, len(cached))
		copy(out, cached)
		return out, nil
	}

	parts := s.dissect(strings.ToLower(word), opts)
	if len(parts) == 0 {
		parts = []string{word}
	}

	s.cache.Add(key, parts)
	out := make([]string, len(parts))
	copy(out, parts)
	return out, nil
}

// dissect runs the greedy longest-prefix split. Returns nil when no
// acceptable split exists.
func (s *Splitter) dissect(word string, opts DissectOptions) []string {
	var parts []string
	remaining := []rune(word)

	for len(remaining) > 0 {
		matched := 0
		for length := len(remaining); length >= minComponentRunes; length-- {
			prefix := string(remaining[:length])
			known, noun := s.auto.lookup(prefix)
			if !known {
				continue
			}
			if opts.OnlyNouns && !noun && length < len(remaining) {
				// Non-noun components are only acceptable as the final
				// fragment, where inflection endings accumulate.
				continue
			}
			matched = length
			parts = append(parts, prefix)
			break
		}

		if matched == 0 {
			// The rest of the word is unknown. Gluing it onto the last
			// matched part keeps inflection endings; masking drops it.
			if len(parts) == 0 {
				return nil
			}
			if !opts.MaskUnknown {
				if len(remaining) <= minComponentRunes {
					parts[len(parts)-1] += string(remaining)
				} else {
					return nil
				}
			}
			break
		}
		remaining = remaining[matched:]
	}

	if opts.MakeSingular {
		for i, p := range parts {
			parts[i] = s.singularize(p)
		}
	}
	return parts
}

// singularize strips a plural suffix when the stripped form is a known
// dictionary word.
func (s *Splitter) singularize(form string) string {
	for _, suffix := range pluralSuffixes {
		if !strings.HasSuffix(form, suffix) {
			continue
		}
		stem := strings.TrimSuffix(form, suffix)
		if len([]rune(stem)) < minComponentRunes+1 {
			continue
		}
		if known, _ := s.auto.lookup(stem); known {
			return stem
		}
	}
	return form
}

// MergeFractions combines raw split fragments into plausible sub-word
// units: linking elements too short to stand alone are glued onto their
// neighbouring fragment.
func MergeFractions(fractions []string) []string {
	var merged []string
	var pending string

	for _, f := range fractions {
		if len([]rune(f)) <= minComponentRunes {
			if len(merged) > 0 {
				merged[len(merged)-1] += f
			} else {
				pending += f
			}
			continue
		}
		merged = append(merged, pending+f)
		pending = ""
	}
	if pending != "" {
		if len(merged) > 0 {
			merged[len(merged)-1] += pending
		} else {
			merged = append(merged, pending)
		}
	}
	return merged
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// normalizeUmlauts folds umlauts for dictionary lookup only; it never
// touches emitted components.
var umlautReplacer = strings.NewReplacer(
	"ä", "a", "ö", "o", "ü", "u", "ß", "ss",
)

func normalizeUmlauts(s string) string {
	return umlautReplacer.Replace(s)
}
