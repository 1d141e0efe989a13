// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/kardenwort/kardenwort/internal/anki"
	"github.com/kardenwort/kardenwort/internal/extract"
	"github.com/kardenwort/kardenwort/internal/vocab"
	"github.com/kardenwort/kardenwort/pkg/types"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Extract a vocabulary lemma list from text",
	Long: `Words reads text, resolves every word to its dictionary form, and
emits the deduplicated vocabulary sorted by frequency rank. Without
--output-file the list goes to stdout; with it, an Anki-importable
TSV flashcard file is written.

Multi-line input is processed line by line; single-line input is
segmented into sentences first.`,
	RunE: runWords,
}

func init() {
	wordsCmd.Flags().String("text", "", "input text to process (mutually exclusive with --text1-file)")
	wordsCmd.Flags().String("text1-file", "", "path to the primary input text file")
	wordsCmd.Flags().String("text2-file", "", "path to a parallel (translated) text file")
	wordsCmd.Flags().String("text3-file", "", "path to a third parallel text file")
	wordsCmd.Flags().String("output-file", "", "path to the flashcard TSV output; stdout when omitted")
	wordsCmd.Flags().String("stdout-format", "list", "stdout format: list, context, tsv, or html")
	wordsCmd.Flags().Bool("basename-add-timestamp", false, "prepend a YYYYMMDDHHMMSS timestamp to the output filename")
	wordsCmd.Flags().Int("basename-add-first-words", 0, "derive the output filename from the first N input words")
	wordsCmd.Flags().Bool("stdout-print-output-basename", false, "print the generated output basename to stdout")
	wordsCmd.Flags().Bool("skip-known", false, "drop lemmas already recorded in the card log")
	wordsCmd.Flags().String("report", "", "write a YAML run summary to this file")

	addResourceFlags(wordsCmd)
	addLemmatizationFlags(wordsCmd)
	addOutputFlags(wordsCmd)

	rootCmd.AddCommand(wordsCmd)
}

func runWords(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}
	input, err := readInputText(cmd)
	if err != nil {
		return err
	}
	units, err := p.textUnits(input)
	if err != nil {
		return fmt.Errorf("segmenting input: %w", err)
	}
	outOpts := outputOptionsFromFlags(cmd)

	acc := extract.NewVocabulary()
	for i, unit := range units {
		if strings.TrimSpace(unit) == "" {
			continue
		}
		if err := p.extractor.AccumulateUnit(acc, i+1, unit); err != nil {
			return err
		}
	}

	lemmas := acc.Lemmas()
	p.extractor.SortLemmas(lemmas)

	skipKnown, _ := cmd.Flags().GetBool("skip-known")
	var store *vocab.Store
	if p.resources.CardLogFile != "" {
		store, err = vocab.Open(p.resources.CardLogFile)
		if err != nil {
			return err
		}
		defer store.Close()
	}
	if skipKnown {
		if store == nil {
			return fmt.Errorf("--skip-known requires --card-log-file")
		}
		known, err := store.KnownSet(context.Background())
		if err != nil {
			return err
		}
		kept := lemmas[:0]
		for _, l := range lemmas {
			if !known[l] {
				kept = append(kept, l)
			}
		}
		lemmas = kept
	}

	outputFile, _ := cmd.Flags().GetString("output-file")
	addTimestamp, _ := cmd.Flags().GetBool("basename-add-timestamp")
	prefixWords, _ := cmd.Flags().GetInt("basename-add-first-words")
	outputPath := anki.OutputPath(outputFile, input,
		anki.NameOptions{AddTimestamp: addTimestamp, PrefixWords: prefixWords}, time.Now())

	if outputPath == "" {
		format, _ := cmd.Flags().GetString("stdout-format")
		if err := printWords(cmd, acc, lemmas, units, format, outOpts.ContextSize); err != nil {
			return err
		}
	} else {
		targets, err := readUnitLines(cmd, "text2-file")
		if err != nil {
			return err
		}
		tertiary, err := readUnitLines(cmd, "text3-file")
		if err != nil {
			return err
		}
		if err := writeWordCards(p, acc, lemmas, units, targets, tertiary, outputPath, outOpts); err != nil {
			return err
		}
	}

	if store != nil {
		if err := recordLemmas(store, acc, lemmas); err != nil {
			return err
		}
	}

	if printBase, _ := cmd.Flags().GetBool("stdout-print-output-basename"); printBase && outputPath != "" {
		fmt.Fprintln(os.Stdout, filepath.Base(outputPath))
	}

	if reportFile, _ := cmd.Flags().GetString("report"); reportFile != "" {
		if err := writeReport(reportFile, p.extractor.Summary()); err != nil {
			return err
		}
	}
	return nil
}

// printWords renders the lemma list to stdout in the selected format.
func printWords(cmd *cobra.Command, acc *extract.Vocabulary, lemmas, units []string, format string, ctxSize int) error {
	out := cmd.OutOrStdout()
	switch format {
	case "html":
		fmt.Fprintln(out, "<table>")
		for _, l := range lemmas {
			occ, _ := acc.Get(l)
			fmt.Fprintf(out, "<tr><td>%s</td><td>%s</td></tr>\n", l, occ.Surface)
		}
		fmt.Fprintln(out, "</table>")
	case "tsv":
		for _, l := range lemmas {
			occ, _ := acc.Get(l)
			fmt.Fprintf(out, "%s\t%s\n", l, occ.Surface)
		}
	case "context":
		for _, l := range lemmas {
			occ, ok := acc.Get(l)
			if !ok {
				continue
			}
			left, right := anki.ContextWindow(units, occ.Line-1, ctxSize)
			fmt.Fprintln(out, l)
			if left != "" {
				fmt.Fprintln(out, left)
			}
			fmt.Fprintln(out, strings.TrimSpace(occ.Sentence))
			if right != "" {
				fmt.Fprintln(out, right)
			}
			fmt.Fprintln(out)
		}
	case "list", "":
		for _, l := range lemmas {
			fmt.Fprintln(out, l)
		}
	default:
		return fmt.Errorf("unsupported stdout format %q: use list, context, tsv, or html", format)
	}
	return nil
}

// readUnitLines loads an optional parallel text file as raw lines.
func readUnitLines(cmd *cobra.Command, flag string) ([]string, error) {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		return nil, nil
	}
	return readLines(path)
}

// writeWordCards renders one flashcard per lemma into an Anki TSV file.
func writeWordCards(p *pipeline, acc *extract.Vocabulary, lemmas, units, targets, tertiary []string, path string, outOpts types.OutputOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	w := anki.NewWriter(f, p.opts.Language, outOpts)
	if err := w.WriteHeader(); err != nil {
		return err
	}

	for _, lemma := range lemmas {
		occ, ok := acc.Get(lemma)
		if !ok {
			continue
		}
		idx := occ.Line - 1
		row := anki.Row{
			Quotation:      lemma,
			WordSource:     lemma,
			Inflected:      occ.Surface,
			SourceSentence: strings.TrimSpace(occ.Sentence),
		}
		row.SourceLeft, row.SourceRight = anki.ContextWindow(units, idx, outOpts.ContextSize)
		if idx < len(targets) {
			row.TargetSentence = strings.TrimSpace(targets[idx])
			row.TargetLeft, row.TargetRight = anki.ContextWindow(targets, idx, outOpts.ContextSize)
		}
		if idx < len(tertiary) {
			row.TertiarySentence = strings.TrimSpace(tertiary[idx])
			row.TertiaryLeft, row.TertiaryRight = anki.ContextWindow(tertiary, idx, outOpts.ContextSize)
		}
		if outOpts.AddWordlistCol {
			wl, err := p.wordlister.SentenceLemmas(occ.Sentence)
			if err != nil {
				return err
			}
			row.Wordlist = wl
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// recordLemmas logs the exported lemmas to the card log.
func recordLemmas(store *vocab.Store, acc *extract.Vocabulary, lemmas []string) error {
	cards := make([]vocab.Card, 0, len(lemmas))
	for _, l := range lemmas {
		occ, ok := acc.Get(l)
		if !ok {
			continue
		}
		cards = append(cards, vocab.Card{
			Lemma:      l,
			Surface:    occ.Surface,
			SourceLine: occ.Line,
			Sentence:   strings.TrimSpace(occ.Sentence),
		})
	}
	return store.RecordBatch(context.Background(), cards)
}

// writeReport dumps the run summary as YAML.
func writeReport(path string, summary extract.Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}
	return nil
}
