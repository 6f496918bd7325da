package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/repoindex/core/internal/errors"
)

func TestIndex_RejectsEmptyPaths(t *testing.T) {
	s := newTestService(t)
	_, err := s.Index(context.Background(), nil, IndexOptions{})
	require.Error(t, err)
	assert.Equal(t, coreerrors.KindInvalidArgument, coreerrors.KindOf(err))
}

func TestIndex_BuildsAndPersistsAnIndex(t *testing.T) {
	s := newTestService(t)
	root := writeTree(t, map[string]string{
		"main.go":   "package main\n\nfunc main() {}\n",
		"README.md": "# Title\n\nSome text.\n",
	})

	res, err := s.Index(context.Background(), []string{root}, IndexOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, res.IndexID)
	assert.True(t, res.Created)
	assert.Equal(t, 2, res.Stats.FileCount)

	idx, err := s.loadIndex(res.IndexID)
	require.NoError(t, err)
	assert.Equal(t, res.IndexID, idx.IndexID)
	assert.NotEmpty(t, idx.Chunks)
}

func TestIndex_ReindexingSamePathsYieldsSameIndexID(t *testing.T) {
	s := newTestService(t)
	root := writeTree(t, map[string]string{
		"a.go": "package a\n",
	})

	first, err := s.Index(context.Background(), []string{root}, IndexOptions{})
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := s.Index(context.Background(), []string{root}, IndexOptions{})
	require.NoError(t, err)
	assert.Equal(t, first.IndexID, second.IndexID)
	assert.False(t, second.Created)
}

func TestIndex_ChunksAreOrderedByPathThenStartLine(t *testing.T) {
	s := newTestService(t)
	root := writeTree(t, map[string]string{
		"z.go": "package z\n\nfunc Z() {}\n",
		"a.go": "package a\n\nfunc A() {}\n",
	})

	res, err := s.Index(context.Background(), []string{root}, IndexOptions{})
	require.NoError(t, err)

	idx, err := s.loadIndex(res.IndexID)
	require.NoError(t, err)
	for i := 1; i < len(idx.Chunks); i++ {
		prev, cur := idx.Chunks[i-1], idx.Chunks[i]
		if prev.Path == cur.Path {
			assert.LessOrEqual(t, prev.StartLine, cur.StartLine)
		} else {
			assert.Less(t, prev.Path, cur.Path)
		}
		assert.Equal(t, i, cur.IndexPosition)
	}
}
