// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package anki

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// timestampLayout renders a sortable 14-digit timestamp.
const timestampLayout = "20060102150405"

var (
	asciiWords     = regexp.MustCompile(`[a-z0-9]+`)
	umlautReplacer = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
)

// FilenamePrefix derives a slug from the first wordCount words of text:
// lowercased, umlauts transliterated, non-alphanumerics dropped, words
// joined with hyphens.
func FilenamePrefix(text string, wordCount int) string {
	if text == "" || wordCount <= 0 {
		return ""
	}
	normalized := umlautReplacer.Replace(strings.ToLower(text))
	words := asciiWords.FindAllString(normalized, -1)
	if len(words) > wordCount {
		words = words[:wordCount]
	}
	return strings.Join(words, "-")
}

// NameOptions controls output-path decoration.
type NameOptions struct {
	// AddTimestamp prepends a YYYYMMDDHHMMSS stamp to the base name.
	AddTimestamp bool

	// PrefixWords derives the base name from the first N words of the
	// input text; 0 disables it.
	PrefixWords int
}

// OutputPath decorates path according to opts. text supplies the words
// for the generated prefix; now supplies the timestamp. Without any
// decoration the path is returned unchanged.
func OutputPath(path, text string, opts NameOptions, now time.Time) string {
	if path == "" || (!opts.AddTimestamp && opts.PrefixWords <= 0) {
		return path
	}

	stamp := now.Format(timestampLayout)
	dir := filepath.Dir(path)
	name := filepath.Base(path)

	if opts.PrefixWords > 0 {
		if prefix := FilenamePrefix(text, opts.PrefixWords); prefix != "" {
			ext := ""
			if dot := strings.Index(name, "."); dot != -1 {
				ext = name[dot:]
			}
			return filepath.Join(dir, stamp+"-"+prefix+ext)
		}
	}
	return filepath.Join(dir, stamp+"-"+name)
}
