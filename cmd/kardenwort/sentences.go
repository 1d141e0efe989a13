// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kardenwort/kardenwort/internal/anki"
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "Build parallel-sentence flashcards from aligned text files",
	Long: `Sentences pairs lines from a source text file with the same lines of a
translated file (and optionally a third language) and writes one
flashcard per line pair. Files are aligned by line number; trailing
unmatched lines are dropped.`,
	RunE: runSentences,
}

func init() {
	sentencesCmd.Flags().String("text1-file", "", "path to the source text file (required)")
	sentencesCmd.Flags().String("text2-file", "", "path to the parallel translated file (required)")
	sentencesCmd.Flags().String("text3-file", "", "path to a third parallel text file")
	sentencesCmd.Flags().String("output-file", "", "path to the flashcard TSV output (required)")
	sentencesCmd.Flags().Bool("basename-add-timestamp", false, "prepend a YYYYMMDDHHMMSS timestamp to the output filename")
	sentencesCmd.Flags().Bool("stdout-print-output-basename", false, "print the generated output basename to stdout")

	addResourceFlags(sentencesCmd)
	addLemmatizationFlags(sentencesCmd)
	addOutputFlags(sentencesCmd)

	rootCmd.AddCommand(sentencesCmd)
}

func runSentences(cmd *cobra.Command, args []string) error {
	sourcePath, _ := cmd.Flags().GetString("text1-file")
	targetPath, _ := cmd.Flags().GetString("text2-file")
	outputFile, _ := cmd.Flags().GetString("output-file")
	if sourcePath == "" || targetPath == "" {
		return fmt.Errorf("--text1-file and --text2-file are required")
	}
	if outputFile == "" {
		return fmt.Errorf("--output-file is required")
	}

	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}
	outOpts := outputOptionsFromFlags(cmd)

	source, err := readLines(sourcePath)
	if err != nil {
		return err
	}
	target, err := readLines(targetPath)
	if err != nil {
		return err
	}
	var tertiary []string
	if path, _ := cmd.Flags().GetString("text3-file"); path != "" {
		if tertiary, err = readLines(path); err != nil {
			return err
		}
	}

	count := len(source)
	if len(target) < count {
		count = len(target)
	}
	if tertiary != nil && len(tertiary) < count {
		count = len(tertiary)
	}

	addTimestamp, _ := cmd.Flags().GetBool("basename-add-timestamp")
	outputPath := anki.OutputPath(outputFile, "", anki.NameOptions{AddTimestamp: addTimestamp}, time.Now())

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	w := anki.NewWriter(f, p.opts.Language, outOpts)
	if err := w.WriteHeader(); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		sentence := strings.TrimSpace(source[i])
		row := anki.Row{
			Quotation:      sentence,
			SourceSentence: sentence,
			TargetSentence: strings.TrimSpace(target[i]),
		}
		row.SourceLeft, row.SourceRight = anki.ContextWindow(source, i, outOpts.ContextSize)
		row.TargetLeft, row.TargetRight = anki.ContextWindow(target, i, outOpts.ContextSize)
		if tertiary != nil {
			row.TertiarySentence = strings.TrimSpace(tertiary[i])
			row.TertiaryLeft, row.TertiaryRight = anki.ContextWindow(tertiary, i, outOpts.ContextSize)
		}
		if outOpts.AddWordlistCol {
			wl, err := p.wordlister.SentenceLemmas(sentence)
			if err != nil {
				return err
			}
			row.Wordlist = wl
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if printBase, _ := cmd.Flags().GetBool("stdout-print-output-basename"); printBase {
		fmt.Fprintln(os.Stdout, filepath.Base(outputPath))
	}
	return nil
}

// readLines loads a file as raw lines without the trailing newline.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}
