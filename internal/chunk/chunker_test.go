package chunk

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkFile_AssignsSequentialIndexPositions(t *testing.T) {
	src := []byte("package main\n\nfunc A() {}\n\nfunc B() {}\n")

	result, err := ChunkFile(context.Background(), "main.go", src, 0, Options{})

	require.NoError(t, err)
	require.Len(t, result.Chunks, 2)
	assert.Equal(t, 0, result.Chunks[0].IndexPosition)
	assert.Equal(t, 1, result.Chunks[1].IndexPosition)
	assert.Equal(t, KindSourceCode, result.File.Kind)
	assert.Equal(t, "go", result.File.Language)
}

func TestChunkFile_OversizedFileMarkedBinarySkipped(t *testing.T) {
	big := make([]byte, 100)
	for i := range big {
		big[i] = 'a'
	}
	opts := Options{MaxFileBytes: 10}

	result, err := ChunkFile(context.Background(), "big.txt", big, 0, opts)

	require.NoError(t, err)
	assert.Equal(t, KindBinarySkipped, result.File.Kind)
	assert.Empty(t, result.Chunks)
}

func TestChunkFile_BinaryContentMarkedBinarySkipped(t *testing.T) {
	content := []byte("abc\x00def")

	result, err := ChunkFile(context.Background(), "data.bin", content, 0, Options{})

	require.NoError(t, err)
	assert.Equal(t, KindBinarySkipped, result.File.Kind)
	assert.Empty(t, result.Chunks)
}

func TestChunkFile_FingerprintStableAcrossRuns(t *testing.T) {
	src := []byte("same content\n")

	r1, err := ChunkFile(context.Background(), "a.txt", src, 0, Options{})
	require.NoError(t, err)
	r2, err := ChunkFile(context.Background(), "a.txt", src, 0, Options{})
	require.NoError(t, err)

	assert.Equal(t, r1.File.ContentFingerprint, r2.File.ContentFingerprint)
}

func TestChunkFile_MarkdownProducesHeadingPath(t *testing.T) {
	src := []byte("# Title\n\nbody\n")

	result, err := ChunkFile(context.Background(), "doc.md", src, 0, Options{})

	require.NoError(t, err)
	require.NotEmpty(t, result.Chunks)
	assert.Equal(t, []string{"Title"}, result.Chunks[0].HeadingPath)
}

func TestChunkFile_HTMLRoutedThroughMarkdownConversion(t *testing.T) {
	src := []byte("<html><body><h1>Title</h1><p>body text</p></body></html>")

	result, err := ChunkFile(context.Background(), "page.html", src, 0, Options{})

	require.NoError(t, err)
	require.NotEmpty(t, result.Chunks)
	for _, c := range result.Chunks {
		assert.NotContains(t, c.Content, "<h1>")
	}
}

func TestChunkFile_LineCountMatchesContent(t *testing.T) {
	src := []byte("a\nb\nc\n")

	result, err := ChunkFile(context.Background(), "f.txt", src, 0, Options{})

	require.NoError(t, err)
	assert.Equal(t, 3, result.File.LineCount)
}

func TestEstimateTokens_MatchesCeilDivision(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}
