// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/kardenwort/kardenwort/pkg/types"
)

// lexEntry is one lexicon row: the annotation assigned to a surface form.
type lexEntry struct {
	Lemma     string
	POS       types.POS
	MorphCase []string
	Particle  bool
}

var (
	reURL   = regexp.MustCompile(`^(?:https?://|www\.)\S+$`)
	reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// reToken captures URLs and e-mail addresses whole, then words
	// (letters, optionally hyphen-joined), then any other non-space run,
	// so punctuation survives as tokens.
	reToken = regexp.MustCompile(`(?:https?://|www\.)\S+|[^\s@]+@[^\s@]+\.[^\s@]+|[\p{L}\p{M}]+(?:-[\p{L}\p{M}]+)*|\S+`)
	// reSentence splits on terminal punctuation followed by whitespace.
	reSentence = regexp.MustCompile(`[^.!?]+[.!?]*\s*`)
)

// LexiconAnalyzer is a flat-file analyzer: a TSV lexicon maps surface
// forms to lemma, POS, and morphology, with heuristics for everything
// the lexicon does not cover. It stands in for a full statistical
// analyzer so the pipeline runs without an external NLP process.
//
// Lexicon row format (tab separated, # comments):
//
//	surface	lemma	POS	[Case=Gen|...]	[svp]
type LexiconAnalyzer struct {
	lang    string
	entries map[string]lexEntry
}

// NewLexiconAnalyzer returns an analyzer for lang ("de" or "en") with an
// empty lexicon. Entries can be added with Add.
func NewLexiconAnalyzer(lang string) *LexiconAnalyzer {
	return &LexiconAnalyzer{lang: lang, entries: make(map[string]lexEntry)}
}

// LoadLexiconAnalyzer reads the lexicon from path. A missing file is
// reported to warn and yields a heuristics-only analyzer.
func LoadLexiconAnalyzer(lang, path string, warn io.Writer) *LexiconAnalyzer {
	a := NewLexiconAnalyzer(lang)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(warn, "warning: lexicon file %s: %v\n", path, err)
		return a
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < 3 {
			fmt.Fprintf(warn, "warning: lexicon file %s line %d: expected at least 3 columns, skipping\n", path, line)
			continue
		}
		entry := lexEntry{Lemma: cols[1], POS: types.POS(cols[2])}
		for _, extra := range cols[3:] {
			switch {
			case extra == "svp":
				entry.Particle = true
			case strings.HasPrefix(extra, "Case="):
				entry.MorphCase = strings.Split(strings.TrimPrefix(extra, "Case="), ",")
			}
		}
		a.entries[cols[0]] = entry
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(warn, "warning: reading lexicon file %s: %v\n", path, err)
	}
	return a
}

// Add inserts one lexicon entry. Morph case tags and the particle flag
// are optional extras in the same format as lexicon rows.
func (a *LexiconAnalyzer) Add(surface, lemma string, pos types.POS, extras ...string) {
	entry := lexEntry{Lemma: lemma, POS: pos}
	for _, extra := range extras {
		switch {
		case extra == "svp":
			entry.Particle = true
		case strings.HasPrefix(extra, "Case="):
			entry.MorphCase = strings.Split(strings.TrimPrefix(extra, "Case="), ",")
		}
	}
	a.entries[surface] = entry
}

// Segment splits text into sentences on terminal punctuation.
func (a *LexiconAnalyzer) Segment(text string) ([]string, error) {
	var out []string
	for _, m := range reSentence.FindAllString(text, -1) {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Annotate tokenizes one text unit and tags each token from the lexicon,
// falling back to heuristics for unknown forms. Separable-verb particles
// are attached to the most recent verb in the sentence.
func (a *LexiconAnalyzer) Annotate(text string) ([]types.Token, error) {
	raw := reToken.FindAllString(text, -1)

	tokens := make([]types.Token, 0, len(raw))
	lastVerb := -1
	sentStart := true

	for _, surface := range raw {
		tok := types.Token{
			Index:     len(tokens),
			Text:      surface,
			SentStart: sentStart && isWordLike(surface),
			IsAlpha:   isAlpha(surface),
			Head:      -1,
		}

		switch {
		case reURL.MatchString(surface):
			tok.LikeURL = true
			tok.Lemma = surface
			tok.POS = types.POSOther
		case reEmail.MatchString(surface):
			tok.LikeEmail = true
			tok.Lemma = surface
			tok.POS = types.POSOther
		default:
			a.tag(&tok, sentStart)
		}

		if tok.POS == types.POSVerb || tok.POS == types.POSAux {
			lastVerb = tok.Index
		}
		if tok.Dep == types.DepSeparableParticle {
			if lastVerb >= 0 && lastVerb != tok.Index {
				tok.Head = lastVerb
			} else {
				// No governing verb seen; demote to a plain particle.
				tok.Dep = ""
			}
		}

		if isWordLike(surface) {
			sentStart = false
		}
		if isSentenceEnd(surface) {
			sentStart = true
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// tag fills lemma, POS, and morphology from the lexicon, with a
// capitalization-based guess for unknown forms.
func (a *LexiconAnalyzer) tag(tok *types.Token, sentStart bool) {
	if e, ok := a.entries[tok.Text]; ok {
		a.apply(tok, e)
		return
	}
	// Sentence-initial capitalization: retry with the lowercased form.
	if lower := strings.ToLower(tok.Text); lower != tok.Text {
		if e, ok := a.entries[lower]; ok {
			a.apply(tok, e)
			return
		}
	}

	switch {
	case !tok.IsAlpha && !strings.Contains(tok.Text, "-"):
		tok.Lemma = tok.Text
		tok.POS = types.POSPunct
		if hasDigit(tok.Text) {
			tok.POS = types.POSNum
		}
	case a.lang == "de" && startsUpper(tok.Text) && !sentStart:
		// Mid-sentence capitalization marks a German noun.
		tok.Lemma = tok.Text
		tok.POS = types.POSNoun
	default:
		tok.Lemma = strings.ToLower(tok.Text)
		tok.POS = types.POSOther
	}
}

func (a *LexiconAnalyzer) apply(tok *types.Token, e lexEntry) {
	tok.Lemma = e.Lemma
	tok.POS = e.POS
	tok.MorphCase = e.MorphCase
	if e.Particle {
		tok.Dep = types.DepSeparableParticle
	}
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func isWordLike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isSentenceEnd(s string) bool {
	return strings.ContainsAny(s, ".!?")
}
