// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordlist loads the flat-file language resources: the dictionary
// word list and the lemma frequency index.
package wordlist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Dictionary is a read-only set of known word forms backed by a flat
// word list, one word per line.
type Dictionary struct {
	words map[string]struct{}
}

// NewDictionary builds a dictionary from the given words. Used by tests
// and by callers that hold word lists in memory.
func NewDictionary(words ...string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		d.words[w] = struct{}{}
	}
	return d
}

// LoadDictionary reads a word list from path. A missing or unreadable
// file is reported to warn and yields an empty dictionary.
func LoadDictionary(path string, warn io.Writer) *Dictionary {
	d := NewDictionary()

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(warn, "warning: dictionary file %s: %v\n", path, err)
		return d
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w != "" {
			d.words[w] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(warn, "warning: reading dictionary file %s: %v\n", path, err)
	}
	return d
}

// Contains reports whether the exact word form is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.words) }

// Words returns all entries in unspecified order. Used to seed the
// compound decomposer automaton.
func (d *Dictionary) Words() []string {
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	return out
}

// FrequencyIndex ranks lemmas by their first-column position in a CSV
// file. The first occurrence of a lemma wins its rank.
type FrequencyIndex struct {
	rank map[string]int
}

// NewFrequencyIndex builds an index from an ordered lemma list.
func NewFrequencyIndex(lemmas ...string) *FrequencyIndex {
	idx := &FrequencyIndex{rank: make(map[string]int, len(lemmas))}
	for i, l := range lemmas {
		if _, ok := idx.rank[l]; !ok {
			idx.rank[l] = i
		}
	}
	return idx
}

// LoadFrequencyIndex reads the index CSV from path. A missing or
// unreadable file is reported to warn and yields an empty index.
func LoadFrequencyIndex(path string, warn io.Writer) *FrequencyIndex {
	idx := NewFrequencyIndex()

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(warn, "warning: frequency index file %s: %v\n", path, err)
		return idx
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	for line := 0; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(warn, "warning: frequency index file %s line %d: %v\n", path, line+1, err)
			return NewFrequencyIndex()
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if _, ok := idx.rank[row[0]]; !ok {
			idx.rank[row[0]] = line
		}
	}
	return idx
}

// Rank returns the lemma's rank and whether the lemma is indexed.
func (idx *FrequencyIndex) Rank(lemma string) (int, bool) {
	r, ok := idx.rank[lemma]
	return r, ok
}

// Len returns the number of indexed lemmas.
func (idx *FrequencyIndex) Len() int { return len(idx.rank) }
