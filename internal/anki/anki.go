// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package anki renders flashcard rows in the 80-column Anki TSV layout.
// Most columns are reserved for downstream enrichment (audio, AI
// definitions, morpheme glosses) and stay empty here; only the column
// positions matter for import.
package anki

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/kardenwort/kardenwort/pkg/types"
)

// NumColumns is the fixed width of every flashcard row.
const NumColumns = 80

// Column positions within a row. Only the ones the generator fills are
// named; the full set is visible in Header.
const (
	colQuotation          = 0
	colWordSource         = 1
	colInflectedForm      = 2
	colSourceContextLeft  = 5
	colSourceSentence     = 6
	colSourceContextRight = 7
	colTargetContextLeft  = 8
	colTargetSentence     = 9
	colTargetContextRight = 10
	colWordlist           = 11
	colCloze              = 12
	colSourceEnGB         = 56
	colSourceDeDE         = 58
	colDestRuRU           = 65
	colTertiaryLeft       = 77
	colTertiarySentence   = 78
	colTertiaryRight      = 79
)

// Header returns the full Anki note-type column header.
func Header() []string {
	return []string{
		"Quotation", "WordSource", "WordSourceInflectedForm", "WordDestination", "WordSourceContext",
		"SentenceSourceContextLeft", "SentenceSource", "SentenceSourceContextRight",
		"SentenceDestinationContextLeft", "SentenceDestination", "SentenceDestinationContextRight",
		"SentenceSourceWordlist", "SentenceSourceCloze", "SentenceSourceRewriteAISentenceSource",
		"SentenceSourceRewriteAISentenceDestination", "WordSourceMorphologyAI", "Note", "WordRussian",
		"WordUkrainian", "WordEnglish", "WordGerman", "WordSourceMorphemeFirst",
		"WordSourceMorphemeFirstDefinition", "WordSourceMorphemeSecond", "WordSourceMorphemeSecondDefinition",
		"WordSourceMorphemeThird", "WordSourceMorphemeThirdDefinition", "WordSourceMorphemeFourth",
		"WordSourceMorphemeFourthDefinition", "WordSourceMorphemeFifth", "WordSourceMorphemeFifthDefinition",
		"WordSourceIPA", "WordSourceSynonymAI", "WordSourceDefinitionAISentenceSource",
		"WordSourceDefinitionAISentenceDestination", "WordSourceDefinitionFirst",
		"WordSourceDefinitionFirstClipping", "WordSourceDefinitionSecond", "WordDestinationDefinitionFirst",
		"WordDestinationDefinitionSecond", "WordSourceAudio", "SentenceSourceIPA", "SentenceSourceAudio",
		"Image", "WordSourceCloze", "WordSourceContextAI", "TextSource", "TextDestination",
		"TextSourceURL", "SentenceEnglish", "SentenceGerman", "SentenceUkrainian", "SentenceRussian",
		"Source", "SourceURL", "SeparatorAudio", "Source-en-GB", "Source-en-US", "Source-de-DE",
		"Source-uk-UA", "Source-ru-RU", "Destination-en-GB", "Destination-en-US",
		"Destination-de-DE", "Destination-uk-UA", "Destination-ru-RU", "Overlapping",
		"ToggleAlwaysEmptyField", "Note ID", "am-all-morphs", "am-all-morphs-count",
		"am-unknown-morphs", "am-unknown-morphs-count", "am-highlighted", "am-score",
		"am-score-terms", "am-study-morphs", "SentenceDestination2ContextLeft",
		"SentenceDestination2", "SentenceDestination2ContextRight",
	}
}

// Row is one flashcard before layout. Word cards set both Quotation and
// WordSource to the lemma; sentence cards fill only Quotation.
type Row struct {
	Quotation  string
	WordSource string
	Inflected  string

	SourceLeft     string
	SourceSentence string
	SourceRight    string

	TargetLeft     string
	TargetSentence string
	TargetRight    string

	TertiaryLeft     string
	TertiarySentence string
	TertiaryRight    string

	Wordlist []string
}

// Writer lays Rows out as tab-separated Anki import lines.
type Writer struct {
	csv  *csv.Writer
	lang string
	opts types.OutputOptions
}

// NewWriter wraps w for the given source language.
func NewWriter(w io.Writer, lang string, opts types.OutputOptions) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &Writer{csv: cw, lang: lang, opts: opts}
}

// WriteHeader emits the column header row when configured.
func (w *Writer) WriteHeader() error {
	if !w.opts.AddHeader {
		return nil
	}
	if err := w.csv.Write(Header()); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	return nil
}

// WriteRow lays out and emits one flashcard.
func (w *Writer) WriteRow(r Row) error {
	cols := make([]string, NumColumns)

	cols[colQuotation] = r.Quotation
	cols[colWordSource] = r.WordSource
	if w.opts.AddSourceWordCol {
		cols[colInflectedForm] = r.Inflected
	}

	cols[colSourceContextLeft] = r.SourceLeft
	cols[colSourceSentence] = r.SourceSentence
	cols[colSourceContextRight] = r.SourceRight
	cols[colTargetContextLeft] = r.TargetLeft
	cols[colTargetSentence] = r.TargetSentence
	cols[colTargetContextRight] = r.TargetRight
	cols[colTertiaryLeft] = r.TertiaryLeft
	cols[colTertiarySentence] = r.TertiarySentence
	cols[colTertiaryRight] = r.TertiaryRight

	cols[colCloze] = r.SourceSentence

	if w.opts.AddWordlistCol && len(r.Wordlist) > 0 {
		sep := "\n"
		if w.opts.WordlistUseBR {
			sep = "<br>"
		}
		cols[colWordlist] = strings.Join(r.Wordlist, sep)
	}

	// Language marker columns drive note-type conditionals in Anki.
	switch w.lang {
	case "de":
		cols[colSourceDeDE] = "1"
		cols[colDestRuRU] = "1"
	case "en":
		cols[colSourceEnGB] = "1"
		cols[colDestRuRU] = "1"
	}

	if err := w.csv.Write(cols); err != nil {
		return fmt.Errorf("writing flashcard row: %w", err)
	}
	return nil
}

// Flush drains buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// ContextWindow returns the trimmed, space-joined units before and after
// index i, up to size units on each side.
func ContextWindow(units []string, i, size int) (left, right string) {
	if size < 0 {
		size = 0
	}
	start := i - size
	if start < 0 {
		start = 0
	}
	end := i + size + 1
	if end > len(units) {
		end = len(units)
	}

	var parts []string
	for _, u := range units[start:i] {
		parts = append(parts, strings.TrimSpace(u))
	}
	left = strings.Join(parts, " ")

	parts = parts[:0]
	if i+1 < end {
		for _, u := range units[i+1 : end] {
			parts = append(parts, strings.TrimSpace(u))
		}
	}
	right = strings.Join(parts, " ")
	return left, right
}
