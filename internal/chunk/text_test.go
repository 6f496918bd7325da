package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_SplitsOnBlankLineOnceTargetReached(t *testing.T) {
	// Given: two paragraphs, the first padded past chunk_target_chars
	first := strings.Repeat("x", 50)
	content := first + "\n\nsecond paragraph"
	opts := Options{ChunkTargetChars: 10, ChunkMaxChars: 1000}

	// When: chunking as plain text
	chunks := chunkText("notes.txt", []byte(content), opts, KindText)

	// Then: the blank line becomes the split point
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].StartLine)
	assert.Contains(t, chunks[0].Content, first)
	assert.Contains(t, chunks[1].Content, "second paragraph")
}

func TestChunkText_HardCapIgnoresParagraphBoundary(t *testing.T) {
	// Given: one long paragraph with no blank line, past chunk_max_chars
	content := strings.Repeat("a", 30)
	opts := Options{ChunkTargetChars: 1000, ChunkMaxChars: 20}

	chunks := chunkText("notes.txt", []byte(content), opts, KindText)

	require.GreaterOrEqual(t, len(chunks), 1)
	for _, c := range chunks {
		assert.Equal(t, KindText, c.Kind)
	}
}

func TestChunkText_EmptyContentYieldsNoChunks(t *testing.T) {
	chunks := chunkText("empty.txt", []byte(""), Options{ChunkTargetChars: 10, ChunkMaxChars: 20}, KindText)
	assert.Nil(t, chunks)
}

func TestChunkText_FullLineCoverage(t *testing.T) {
	// Given: several short lines
	content := "line1\nline2\nline3\nline4\nline5"
	opts := Options{ChunkTargetChars: 8, ChunkMaxChars: 16}

	chunks := chunkText("notes.txt", []byte(content), opts, KindText)

	// Then: every line is covered exactly once across chunks, in order
	lineNum := 1
	for _, c := range chunks {
		assert.Equal(t, lineNum, c.StartLine)
		lineNum = c.EndLine + 1
	}
	assert.Equal(t, 6, lineNum)
}
