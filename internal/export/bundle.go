// Package export packages an already-built index into a single portable
// archive: an LLM-readable outline, a compact manifest, one file per chunk,
// and the raw IndexFile, per spec.md §6's "Export bundle" layout.
package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/repoindex/core/internal/chunk"
	"github.com/repoindex/core/internal/store"
)

// FormatVersion is the manifest.json schema version written by this package.
const FormatVersion = 2

// WriteBundle writes idx as a zip archive to w containing llm.md,
// manifest.json, index.json, and one chunks/<ref>.md per chunk.
func WriteBundle(w io.Writer, idx *store.IndexFile) error {
	zw := zip.NewWriter(w)

	if err := writeEntry(zw, "llm.md", []byte(buildOutline(idx))); err != nil {
		return err
	}

	manifest, err := buildManifest(idx)
	if err != nil {
		return err
	}
	if err := writeEntry(zw, "manifest.json", manifest); err != nil {
		return err
	}

	indexJSON, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal index.json: %w", err)
	}
	if err := writeEntry(zw, "index.json", indexJSON); err != nil {
		return err
	}

	for _, c := range sortedChunks(idx.Chunks) {
		content, err := buildChunkFile(c)
		if err != nil {
			return err
		}
		if err := writeEntry(zw, "chunks/"+c.Ref+".md", content); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// buildOutline renders llm.md: per file a header, followed by one line per
// chunk naming its ref, line range, and heading/symbol.
func buildOutline(idx *store.IndexFile) string {
	chunksByPath := make(map[string][]chunk.Chunk)
	for _, c := range sortedChunks(idx.Chunks) {
		chunksByPath[c.Path] = append(chunksByPath[c.Path], c)
	}

	var b strings.Builder
	for _, f := range idx.Files {
		fmt.Fprintf(&b, "### %s (%s, %d)\n", f.Path, f.Kind, f.LineCount)
		for _, c := range chunksByPath[f.Path] {
			label := c.Symbol
			if label == "" && len(c.HeadingPath) > 0 {
				label = strings.Join(c.HeadingPath, " > ")
			}
			fmt.Fprintf(&b, "- %s (%d-%d) %s\n", c.Ref, c.StartLine, c.EndLine, label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// chunkColumns names the manifest.json chunk row tuple fields, in order.
var chunkColumns = []string{
	"ref", "path_index", "kind_index", "start_line", "end_line", "token_estimate",
}

// manifest is the manifest.json wire shape: string tables deduplicate common
// values across rows, and each chunk row is a positional tuple rather than a
// repeated object.
type manifest struct {
	FormatVersion int             `json:"format_version"`
	Paths         []string        `json:"paths"`
	Kinds         []string        `json:"kinds"`
	ChunkColumns  []string        `json:"chunk_columns"`
	Chunks        [][]interface{} `json:"chunks"`
}

func buildManifest(idx *store.IndexFile) ([]byte, error) {
	pathIndex := make(map[string]int)
	var paths []string
	kindIndex := make(map[string]int)
	var kinds []string

	indexOf := func(table map[string]int, list *[]string, value string) int {
		if i, ok := table[value]; ok {
			return i
		}
		i := len(*list)
		table[value] = i
		*list = append(*list, value)
		return i
	}

	rows := make([][]interface{}, 0, len(idx.Chunks))
	for _, c := range idx.Chunks {
		pi := indexOf(pathIndex, &paths, c.Path)
		ki := indexOf(kindIndex, &kinds, string(c.Kind))
		rows = append(rows, []interface{}{c.Ref, pi, ki, c.StartLine, c.EndLine, c.TokenEstimate})
	}

	m := manifest{
		FormatVersion: FormatVersion,
		Paths:         paths,
		Kinds:         kinds,
		ChunkColumns:  chunkColumns,
		Chunks:        rows,
	}
	return json.Marshal(m)
}

// chunkFrontMatter is the YAML header written at the top of each
// chunks/<ref>.md file.
type chunkFrontMatter struct {
	Ref           string   `yaml:"ref"`
	ID            string   `yaml:"id"`
	Path          string   `yaml:"path"`
	Lines         [2]int   `yaml:"lines"`
	Kind          string   `yaml:"kind"`
	HeadingPath   []string `yaml:"heading_path,omitempty"`
	Symbol        string   `yaml:"symbol,omitempty"`
	TokenEstimate int      `yaml:"token_estimate"`
	ContentSHA256 string   `yaml:"content_sha256"`
}

func buildChunkFile(c chunk.Chunk) ([]byte, error) {
	fm := chunkFrontMatter{
		Ref:           c.Ref,
		ID:            c.ID,
		Path:          c.Path,
		Lines:         [2]int{c.StartLine, c.EndLine},
		Kind:          string(c.Kind),
		HeadingPath:   c.HeadingPath,
		Symbol:        c.Symbol,
		TokenEstimate: c.TokenEstimate,
		ContentSHA256: c.ContentFingerprint,
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("marshal front matter for %s: %w", c.Ref, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(c.Content)
	return []byte(b.String()), nil
}

// sortedChunks is exposed for callers that want a stable chunk order
// independent of idx.Chunks' own persisted ordering (already sorted by
// (path, start_line) at index time, but re-sorted defensively here since
// a hand-edited IndexFile could violate that).
func sortedChunks(chunks []chunk.Chunk) []chunk.Chunk {
	out := make([]chunk.Chunk, len(chunks))
	copy(out, chunks)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].StartLine < out[j].StartLine
	})
	return out
}
