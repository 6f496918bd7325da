package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoindex/core/internal/chunk"
	"github.com/repoindex/core/internal/store"
)

func sampleIndex() *store.IndexFile {
	files := []chunk.FileRecord{
		{Path: "a.go", Kind: chunk.KindSourceCode, Language: "go", LineCount: 3, ContentFingerprint: "fp-a"},
	}
	chunks := []chunk.Chunk{
		{
			ID: "1111111111111111111111111111111111111111111111111111111111111111"[:64],
			Ref: "111111", Path: "a.go", Kind: chunk.KindSourceCode,
			StartLine: 1, EndLine: 3, Content: "package a\n\nfunc A() {}\n",
			Symbol: "A", TokenEstimate: 6, ContentFingerprint: "fp-chunk",
		},
	}
	return &store.IndexFile{
		IndexID:   "deadbeef",
		RootPath:  "/tmp/project",
		CreatedAt: time.Unix(0, 0),
		Version:   store.CurrentVersion,
		Files:     files,
		Chunks:    chunks,
		Stats:     store.BuildStats(files, chunks),
	}
}

func TestWriteBundle_ProducesExpectedEntries(t *testing.T) {
	idx := sampleIndex()

	var buf bytes.Buffer
	require.NoError(t, WriteBundle(&buf, idx))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["llm.md"])
	assert.True(t, names["manifest.json"])
	assert.True(t, names["index.json"])
	assert.True(t, names["chunks/111111.md"])
}

func TestBuildOutline_ListsFileHeaderAndChunkLine(t *testing.T) {
	idx := sampleIndex()
	outline := buildOutline(idx)
	assert.Contains(t, outline, "### a.go (source-code-by-language, 3)")
	assert.Contains(t, outline, "111111 (1-3) A")
}

func TestBuildManifest_DeduplicatesPathsAndKinds(t *testing.T) {
	idx := sampleIndex()
	data, err := buildManifest(idx)
	require.NoError(t, err)

	var m manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, FormatVersion, m.FormatVersion)
	assert.Equal(t, []string{"a.go"}, m.Paths)
	assert.Equal(t, []string{string(chunk.KindSourceCode)}, m.Kinds)
	require.Len(t, m.Chunks, 1)
	assert.Equal(t, "111111", m.Chunks[0][0])
}

func TestBuildChunkFile_IncludesFrontMatterAndContent(t *testing.T) {
	idx := sampleIndex()
	content, err := buildChunkFile(idx.Chunks[0])
	require.NoError(t, err)

	s := string(content)
	assert.Contains(t, s, "ref: \"111111\"")
	assert.Contains(t, s, "content_sha256: fp-chunk")
	assert.Contains(t, s, "func A() {}")
}
