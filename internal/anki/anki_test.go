// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package anki

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/kardenwort/kardenwort/pkg/types"
)

func TestHeaderWidth(t *testing.T) {
	if got := len(Header()); got != NumColumns {
		t.Fatalf("header has %d columns, want %d", got, NumColumns)
	}
}

func parseRows(t *testing.T, data string) [][]string {
	t.Helper()
	r := csv.NewReader(strings.NewReader(data))
	r.Comma = '\t'
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteRowLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "de", types.OutputOptions{
		AddHeader:        true,
		AddSourceWordCol: true,
		AddWordlistCol:   true,
	})

	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	err := w.WriteRow(Row{
		Quotation:      "Haus",
		WordSource:     "Haus",
		Inflected:      "Hauses",
		SourceLeft:     "Vorher.",
		SourceSentence: "Das Haus steht.",
		SourceRight:    "Nachher.",
		Wordlist:       []string{"Haus", "stehen"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	rows := parseRows(t, buf.String())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus card", len(rows))
	}
	card := rows[1]
	if len(card) != NumColumns {
		t.Fatalf("card has %d columns, want %d", len(card), NumColumns)
	}
	checks := map[int]string{
		0:  "Haus",
		1:  "Haus",
		2:  "Hauses",
		5:  "Vorher.",
		6:  "Das Haus steht.",
		7:  "Nachher.",
		11: "Haus\nstehen",
		12: "Das Haus steht.",
		58: "1",
		65: "1",
	}
	for col, want := range checks {
		if card[col] != want {
			t.Errorf("column %d = %q, want %q", col, card[col], want)
		}
	}
	if card[56] != "" {
		t.Errorf("English marker set on a German card")
	}
}

func TestWriteRowEnglishMarkers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "en", types.OutputOptions{})
	if err := w.WriteRow(Row{Quotation: "house", WordSource: "house"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	card := parseRows(t, buf.String())[0]
	if card[56] != "1" || card[65] != "1" {
		t.Errorf("columns 56/65 = %q/%q, want markers set", card[56], card[65])
	}
	if card[58] != "" {
		t.Errorf("German marker set on an English card")
	}
}

func TestWriteRowOptionalColumnsStayEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "de", types.OutputOptions{})
	err := w.WriteRow(Row{
		Quotation:  "Haus",
		WordSource: "Haus",
		Inflected:  "Hauses",
		Wordlist:   []string{"Haus"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	card := parseRows(t, buf.String())[0]
	if card[2] != "" || card[11] != "" {
		t.Errorf("columns 2/11 = %q/%q, want empty without flags", card[2], card[11])
	}
}

func TestWordlistBRSeparator(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "de", types.OutputOptions{AddWordlistCol: true, WordlistUseBR: true})
	if err := w.WriteRow(Row{Quotation: "x", Wordlist: []string{"a", "b"}}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	card := parseRows(t, buf.String())[0]
	if card[11] != "a<br>b" {
		t.Errorf("wordlist = %q, want <br> separator", card[11])
	}
}

func TestContextWindow(t *testing.T) {
	units := []string{"Eins.", "Zwei.", "Drei.", "Vier.", "Fünf."}

	tests := []struct {
		name        string
		i, size     int
		left, right string
	}{
		{"middle", 2, 1, "Zwei.", "Vier."},
		{"wide", 2, 2, "Eins. Zwei.", "Vier. Fünf."},
		{"start", 0, 1, "", "Zwei."},
		{"end", 4, 1, "Vier.", ""},
		{"zero size", 2, 0, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := ContextWindow(units, tt.i, tt.size)
			if left != tt.left || right != tt.right {
				t.Errorf("ContextWindow = %q/%q, want %q/%q", left, right, tt.left, tt.right)
			}
		})
	}
}

func TestFilenamePrefix(t *testing.T) {
	tests := []struct {
		text  string
		words int
		want  string
	}{
		{"Der schöne Tag beginnt früh heute", 4, "der-schoene-tag-beginnt"},
		{"Größe & Maß!", 2, "groesse-mass"},
		{"", 4, ""},
		{"!!!", 4, ""},
		{"eins zwei", 5, "eins-zwei"},
	}
	for _, tt := range tests {
		if got := FilenamePrefix(tt.text, tt.words); got != tt.want {
			t.Errorf("FilenamePrefix(%q, %d) = %q, want %q", tt.text, tt.words, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	got := OutputPath("out/cards.tsv", "Der schöne Tag", NameOptions{PrefixWords: 3}, now)
	want := "out/20260314150926-der-schoene-tag.tsv"
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}

	got = OutputPath("cards.tsv", "", NameOptions{AddTimestamp: true}, now)
	if got != "20260314150926-cards.tsv" {
		t.Errorf("OutputPath = %q, want timestamped name", got)
	}

	got = OutputPath("cards.tsv", "text", NameOptions{}, now)
	if got != "cards.tsv" {
		t.Errorf("OutputPath = %q, want unchanged path", got)
	}
}
