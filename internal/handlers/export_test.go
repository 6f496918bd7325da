package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_RejectsEmptyIndexID(t *testing.T) {
	s := newTestService(t)
	var buf bytes.Buffer
	err := s.Export(context.Background(), "", &buf)
	assert.Error(t, err)
}

func TestExport_UnknownIndexIsNotFound(t *testing.T) {
	s := newTestService(t)
	var buf bytes.Buffer
	err := s.Export(context.Background(), "missing", &buf)
	assert.ErrorContains(t, err, "not-found")
}

func TestExport_WritesAZipBundle(t *testing.T) {
	s := newTestService(t)
	root := writeTree(t, map[string]string{"a.go": "package a\n\nfunc A() {}\n"})
	indexID := mustIndex(t, s, root)

	var buf bytes.Buffer
	require.NoError(t, s.Export(context.Background(), indexID, &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["llm.md"])
	assert.True(t, names["manifest.json"])
	assert.True(t, names["index.json"])
}
