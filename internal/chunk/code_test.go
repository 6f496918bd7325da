package chunk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkCode_OneChunkPerTopLevelDeclaration(t *testing.T) {
	// Given: a small Go file with two top-level functions
	src := "package main\n\nimport \"fmt\"\n\nfunc A() {\n\tfmt.Println(\"a\")\n}\n\nfunc B() {\n\tfmt.Println(\"b\")\n}\n"
	opts := Options{ChunkTargetChars: 2000, ChunkMaxChars: 3000}

	chunks := chunkCode(context.Background(), "main.go", "go", []byte(src), opts)

	require.Len(t, chunks, 2)
	assert.Equal(t, "A", chunks[0].Symbol)
	assert.Equal(t, "B", chunks[1].Symbol)
	// The leading package/import lines attach to the first declaration.
	assert.Equal(t, 1, chunks[0].StartLine)
}

func TestChunkCode_FullLineCoverage(t *testing.T) {
	src := "package main\n\nfunc A() {}\n\nfunc B() {}\n"
	opts := Options{ChunkTargetChars: 2000, ChunkMaxChars: 3000}

	chunks := chunkCode(context.Background(), "main.go", "go", []byte(src), opts)

	require.Len(t, chunks, 2)
	assert.Equal(t, chunks[0].EndLine+1, chunks[1].StartLine)
}

func TestChunkCode_UnsupportedLanguageFallsBackToText(t *testing.T) {
	// Given: a language with no registered grammar
	src := "fn main() {\n    println!(\"hi\");\n}\n"
	opts := Options{ChunkTargetChars: 2000, ChunkMaxChars: 3000}

	chunks := chunkCode(context.Background(), "main.rs", "rust", []byte(src), opts)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.Equal(t, KindSourceCode, c.Kind)
		assert.Empty(t, c.Symbol)
	}
}
