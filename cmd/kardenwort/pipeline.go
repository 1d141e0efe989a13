// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kardenwort/kardenwort/internal/analyze"
	"github.com/kardenwort/kardenwort/internal/compound"
	"github.com/kardenwort/kardenwort/internal/extract"
	"github.com/kardenwort/kardenwort/internal/rules"
	"github.com/kardenwort/kardenwort/internal/wordlist"
	"github.com/kardenwort/kardenwort/pkg/types"
)

// addResourceFlags registers the language-resource file flags shared by
// all pipeline commands.
func addResourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("de-dictionary-file", "", "dictionary file for German-specific operations (default german.dic)")
	cmd.Flags().String("lexicon-file", "", "lexicon TSV backing the built-in analyzer")
	cmd.Flags().String("lemma-override-file", "", "TSV file with lemma override rules")
	cmd.Flags().String("lemma-index-file", "", "CSV file with lemmas for frequency-based sorting")
	cmd.Flags().String("card-log-file", "", "SQLite database logging exported lemmas")
}

// addLemmatizationFlags registers the flags that shape lemma resolution.
func addLemmatizationFlags(cmd *cobra.Command) {
	cmd.Flags().String("language", "de", "input language: de or en")
	cmd.Flags().Bool("force-proper-noun-capitalization", false, "capitalize proper-noun lemmas")
	cmd.Flags().Bool("de-fix-genitive", false, "correct German genitive noun lemmas against the dictionary")
	cmd.Flags().Bool("de-force-noun-capitalization", false, "capitalize all German noun lemmas")

	cmd.Flags().Bool("de-gcs", false, "enable German compound splitting")
	cmd.Flags().StringSlice("de-gcs-pos-tags", []string{"NOUN PROPN ADV ADJ"},
		"POS tags eligible for splitting; prefix with ! for exclusion mode, or use ALL")
	cmd.Flags().String("de-gcs-split-mode", "only-nouns", "splitting mode: only-nouns, any, or combined")
	cmd.Flags().String("de-gcs-part-singularization", "only-nouns", "singularize split parts: only-nouns, all, or none")
	cmd.Flags().Bool("de-gcs-mask-unknown-parts", false, "drop split parts missing from the dictionary")
	cmd.Flags().Bool("de-gcs-preserve-compound-word", false, "keep the compound lemma alongside its parts")
	cmd.Flags().Bool("de-gcs-add-parts-to-wordlist", false, "include split parts in the sentence wordlist")
	cmd.Flags().Bool("de-gcs-skip-merge-fractions", false, "emit raw dissection fragments without merging")
}

// addOutputFlags registers the flashcard formatting flags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("add-header", false, "prepend the full Anki column header row")
	cmd.Flags().Bool("add-source-word-col", false, "fill the inflected source-word column")
	cmd.Flags().Bool("add-wordlist-col", false, "fill the per-sentence wordlist column")
	cmd.Flags().Bool("wordlist-use-br", false, "join wordlist entries with <br> instead of newlines")
	cmd.Flags().Int("sentence-context-size", 1, "number of neighbouring text units kept as context")
}

// stringFlagOr resolves a flag, falling back to a config key and then a
// hard default.
func stringFlagOr(cmd *cobra.Command, flag, configKey, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if configKey != "" {
		if v := viper.GetString(configKey); v != "" {
			return v
		}
	}
	return fallback
}

// extractOptionsFromFlags assembles the pipeline configuration.
func extractOptionsFromFlags(cmd *cobra.Command) (types.ExtractOptions, error) {
	lang, _ := cmd.Flags().GetString("language")
	if lang != "de" && lang != "en" {
		return types.ExtractOptions{}, fmt.Errorf("unsupported language %q: use de or en", lang)
	}

	gcs, _ := cmd.Flags().GetBool("de-gcs")
	if gcs && lang != "de" {
		fmt.Fprintln(os.Stderr, "Warning: compound splitting is German-only; --de-gcs will be ignored.")
		gcs = false
	}

	addParts, _ := cmd.Flags().GetBool("de-gcs-add-parts-to-wordlist")
	preserve, _ := cmd.Flags().GetBool("de-gcs-preserve-compound-word")
	if addParts && !gcs {
		return types.ExtractOptions{}, fmt.Errorf("--de-gcs-add-parts-to-wordlist requires --de-gcs")
	}
	if preserve && !gcs {
		return types.ExtractOptions{}, fmt.Errorf("--de-gcs-preserve-compound-word requires --de-gcs")
	}

	tagArgs, _ := cmd.Flags().GetStringSlice("de-gcs-pos-tags")
	splitMode, _ := cmd.Flags().GetString("de-gcs-split-mode")
	singularize, _ := cmd.Flags().GetString("de-gcs-part-singularization")
	maskUnknown, _ := cmd.Flags().GetBool("de-gcs-mask-unknown-parts")
	skipMerge, _ := cmd.Flags().GetBool("de-gcs-skip-merge-fractions")

	fixGenitive, _ := cmd.Flags().GetBool("de-fix-genitive")
	nounCaps, _ := cmd.Flags().GetBool("de-force-noun-capitalization")
	properCaps, _ := cmd.Flags().GetBool("force-proper-noun-capitalization")

	return types.ExtractOptions{
		Language:            lang,
		FixGenitive:         fixGenitive,
		ForceNounCaps:       nounCaps,
		ForceProperNounCaps: properCaps,
		Split: types.SplitOptions{
			Enabled:            gcs,
			Mode:               types.SplitMode(splitMode),
			Singularize:        types.SingularizePolicy(singularize),
			MaskUnknown:        maskUnknown,
			PreserveCompound:   preserve,
			SkipMergeFractions: skipMerge,
			AddPartsToWordlist: addParts,
			TargetTags:         types.ParseTargetTags(tagArgs),
		},
	}, nil
}

func outputOptionsFromFlags(cmd *cobra.Command) types.OutputOptions {
	addHeader, _ := cmd.Flags().GetBool("add-header")
	addSource, _ := cmd.Flags().GetBool("add-source-word-col")
	addWordlist, _ := cmd.Flags().GetBool("add-wordlist-col")
	useBR, _ := cmd.Flags().GetBool("wordlist-use-br")
	ctxSize, _ := cmd.Flags().GetInt("sentence-context-size")

	return types.OutputOptions{
		AddHeader:        addHeader,
		AddSourceWordCol: addSource,
		AddWordlistCol:   addWordlist,
		WordlistUseBR:    useBR,
		ContextSize:      ctxSize,
	}
}

func resourcesFromFlags(cmd *cobra.Command) types.ResourceConfig {
	return types.ResourceConfig{
		DictionaryFile:     stringFlagOr(cmd, "de-dictionary-file", "resources.dictionary_file", "german.dic"),
		LexiconFile:        stringFlagOr(cmd, "lexicon-file", "resources.lexicon_file", ""),
		OverrideFile:       stringFlagOr(cmd, "lemma-override-file", "resources.override_file", ""),
		FrequencyIndexFile: stringFlagOr(cmd, "lemma-index-file", "resources.frequency_index_file", ""),
		CardLogFile:        stringFlagOr(cmd, "card-log-file", "resources.card_log_file", ""),
	}
}

// pipeline bundles the constructed extraction machinery for one run.
type pipeline struct {
	analyzer  *analyze.LexiconAnalyzer
	extractor *extract.Extractor

	// wordlister regenerates per-sentence wordlists. It splits compounds
	// only when --de-gcs-add-parts-to-wordlist is set.
	wordlister *extract.Extractor

	opts      types.ExtractOptions
	resources types.ResourceConfig
}

// buildPipeline loads all resources named by the flags and wires the
// extractors. Missing resource files degrade with a warning.
func buildPipeline(cmd *cobra.Command) (*pipeline, error) {
	opts, err := extractOptionsFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	res := resourcesFromFlags(cmd)
	warn := os.Stderr

	analyzer := analyze.NewLexiconAnalyzer(opts.Language)
	if res.LexiconFile != "" {
		analyzer = analyze.LoadLexiconAnalyzer(opts.Language, res.LexiconFile, warn)
	}

	var dict *wordlist.Dictionary
	if opts.Language == "de" {
		dict = wordlist.LoadDictionary(res.DictionaryFile, warn)
		if dict.Len() == 0 {
			fmt.Fprintln(warn, "Warning: German dictionary is empty or not loaded.")
		}
	} else {
		dict = wordlist.NewDictionary()
	}

	ruleSet := rules.NewRuleSet()
	if res.OverrideFile != "" {
		ruleSet = rules.Load(res.OverrideFile, warn)
	}
	matcher := rules.NewMatcher(ruleSet, warn)

	freq := wordlist.NewFrequencyIndex()
	if res.FrequencyIndexFile != "" {
		freq = wordlist.LoadFrequencyIndex(res.FrequencyIndexFile, warn)
	}

	var splitter extract.Decomposer
	if opts.Split.Enabled {
		auto := compound.NewAutomaton(dict.Words())
		if auto.Len() == 0 {
			return nil, fmt.Errorf("compound splitting requires a non-empty dictionary at %s", res.DictionaryFile)
		}
		splitter = compound.NewSplitter(auto)
	}

	extractor := extract.New(analyzer, dict, freq, matcher, splitter, opts, warn)
	extractor.AddSkippedRuleRows(ruleSet.SkippedRows)

	wordlistOpts := opts
	wordlistOpts.Split.Enabled = opts.Split.Enabled && opts.Split.AddPartsToWordlist
	wordlister := extract.New(analyzer, dict, freq, matcher, splitter, wordlistOpts, warn)

	return &pipeline{
		analyzer:   analyzer,
		extractor:  extractor,
		wordlister: wordlister,
		opts:       opts,
		resources:  res,
	}, nil
}

// readInputText gathers the input: --text, --text1-file, the
// KARDENWORT_INPUT_TEXT environment variable, or piped stdin.
func readInputText(cmd *cobra.Command) (string, error) {
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("text1-file")
	if text != "" && file != "" {
		return "", fmt.Errorf("--text and --text1-file are mutually exclusive")
	}
	if text != "" {
		return text, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return string(data), nil
	}
	if env := os.Getenv("KARDENWORT_INPUT_TEXT"); env != "" {
		return env, nil
	}
	if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("no input provided: use --text, --text1-file, KARDENWORT_INPUT_TEXT, or pipe via stdin")
}

// textUnits splits the input into processing units: by line when the
// text is multi-line, otherwise by sentence.
func (p *pipeline) textUnits(text string) ([]string, error) {
	if strings.Contains(strings.TrimSpace(text), "\n") {
		return strings.Split(text, "\n"), nil
	}
	return p.analyzer.Segment(text)
}
