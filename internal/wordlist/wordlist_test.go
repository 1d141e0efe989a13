// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordlist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDictionary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "german.dic", "Haus\nTür\n\n  Baum  \n")

	var warn bytes.Buffer
	d := LoadDictionary(path, &warn)

	assert.Equal(t, 3, d.Len())
	assert.True(t, d.Contains("Haus"))
	assert.True(t, d.Contains("Baum"), "entries should be trimmed")
	assert.False(t, d.Contains("haus"), "lookup is case sensitive")
	assert.Empty(t, warn.String())
}

func TestLoadDictionaryMissingFile(t *testing.T) {
	var warn bytes.Buffer
	d := LoadDictionary(filepath.Join(t.TempDir(), "nope.dic"), &warn)

	require.NotNil(t, d)
	assert.Equal(t, 0, d.Len())
	assert.Contains(t, warn.String(), "warning")
}

func TestLoadFrequencyIndex(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "freq.csv", strings.Join([]string{
		"der,1000000",
		"die,900000",
		"der,1", // duplicate: first occurrence keeps its rank
		"und,800000",
	}, "\n"))

	var warn bytes.Buffer
	idx := LoadFrequencyIndex(path, &warn)

	require.Equal(t, 3, idx.Len())

	r, ok := idx.Rank("der")
	require.True(t, ok)
	assert.Equal(t, 0, r, "first occurrence wins the rank")

	r, ok = idx.Rank("und")
	require.True(t, ok)
	assert.Equal(t, 3, r, "rank is the CSV line number")

	_, ok = idx.Rank("Zeit")
	assert.False(t, ok)
}

func TestLoadFrequencyIndexMissingFile(t *testing.T) {
	var warn bytes.Buffer
	idx := LoadFrequencyIndex(filepath.Join(t.TempDir(), "nope.csv"), &warn)

	require.NotNil(t, idx)
	assert.Equal(t, 0, idx.Len())
	assert.Contains(t, warn.String(), "warning")
}
