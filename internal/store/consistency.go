package store

import "fmt"

// Discrepancy describes one inconsistency found between an IndexFile's
// parts, or between the file and its registry entry.
type Discrepancy struct {
	Field    string `json:"field"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Verify cross-checks an IndexFile's internal structure: inverted index
// postings must reference valid chunk positions, an embedding table (if
// present) must have one row per chunk, and the registry's counts must
// match the file's actual content.
func Verify(idx *IndexFile, registryMeta *IndexMetadata) []Discrepancy {
	var problems []Discrepancy

	chunkCount := len(idx.Chunks)

	for term, entry := range idx.InvertedIndex.Terms {
		if entry.DF != len(entry.Postings) {
			problems = append(problems, Discrepancy{
				Field:    fmt.Sprintf("inverted_index.terms[%s].df", term),
				Expected: fmt.Sprintf("%d", len(entry.Postings)),
				Actual:   fmt.Sprintf("%d", entry.DF),
			})
		}
		for _, p := range entry.Postings {
			if p.ChunkPosition < 0 || p.ChunkPosition >= chunkCount {
				problems = append(problems, Discrepancy{
					Field:    fmt.Sprintf("inverted_index.terms[%s].postings", term),
					Expected: fmt.Sprintf("chunk_position in [0,%d)", chunkCount),
					Actual:   fmt.Sprintf("%d", p.ChunkPosition),
				})
			}
		}
	}

	if idx.Embeddings != nil && len(idx.Embeddings) != chunkCount {
		problems = append(problems, Discrepancy{
			Field:    "embeddings",
			Expected: fmt.Sprintf("%d rows (one per chunk)", chunkCount),
			Actual:   fmt.Sprintf("%d rows", len(idx.Embeddings)),
		})
	}

	if registryMeta != nil {
		if registryMeta.FileCount != len(idx.Files) {
			problems = append(problems, Discrepancy{
				Field:    "registry.file_count",
				Expected: fmt.Sprintf("%d", len(idx.Files)),
				Actual:   fmt.Sprintf("%d", registryMeta.FileCount),
			})
		}
		if registryMeta.ChunkCount != chunkCount {
			problems = append(problems, Discrepancy{
				Field:    "registry.chunk_count",
				Expected: fmt.Sprintf("%d", chunkCount),
				Actual:   fmt.Sprintf("%d", registryMeta.ChunkCount),
			})
		}
	}

	return problems
}
