// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordBatchAndKnownSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.RecordBatch(ctx, []Card{
		{Lemma: "Haus", Surface: "Hauses", SourceLine: 3, Sentence: "Des Hauses Dach."},
		{Lemma: "gehen", Surface: "ging", SourceLine: 1, Sentence: "Er ging."},
	})
	require.NoError(t, err)

	known, err := s.KnownSet(ctx)
	require.NoError(t, err)
	assert.True(t, known["Haus"])
	assert.True(t, known["gehen"])
	assert.False(t, known["Tür"])

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecordBatchKeepsFirstEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := Card{Lemma: "Haus", Surface: "Haus", SourceLine: 1, Sentence: "Das Haus.",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, s.RecordBatch(ctx, []Card{first}))
	require.NoError(t, s.RecordBatch(ctx, []Card{
		{Lemma: "Haus", Surface: "Hauses", SourceLine: 9, Sentence: "Des Hauses Dach."},
	}))

	got, ok, err := s.Get(ctx, "Haus")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Haus", got.Surface)
	assert.Equal(t, 1, got.SourceLine)
	assert.Equal(t, first.CreatedAt, got.CreatedAt)
}

func TestGetMissingLemma(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Get(context.Background(), "fehlt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordBatchEmptyIsNoOp(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.RecordBatch(context.Background(), nil))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.RecordBatch(context.Background(), []Card{{Lemma: "Haus"}}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	known, err := s2.KnownSet(context.Background())
	require.NoError(t, err)
	assert.True(t, known["Haus"])
}
