package chunk

import (
	"bytes"
	"context"
)

// chunkFile normalizes content, classifies it, dispatches to the
// kind-specific chunker, and assembles the file record and ordered chunk
// list. This is the single entry point backing ChunkFile.
func chunkFile(ctx context.Context, path string, content []byte, mtimeMS int64, opts Options) (Result, error) {
	normalized := normalizeBytes(content)
	fingerprint := fileFingerprint(normalized)

	kind, language := classify(path)

	record := FileRecord{
		Path:               path,
		Kind:               kind,
		Language:           language,
		LineCount:          lineCount(normalized),
		ByteLen:            len(content),
		MtimeMS:            mtimeMS,
		ContentFingerprint: fingerprint,
	}

	if int64(len(content)) > opts.MaxFileBytes || looksBinary(normalized) {
		record.Kind = KindBinarySkipped
		return Result{File: record, Chunks: nil}, nil
	}

	var chunks []Chunk
	switch kind {
	case KindMarkdown:
		if isHTML(path) {
			chunks = chunkHTML(path, normalized, opts)
		} else {
			chunks = chunkMarkdown(path, normalized, opts)
		}
	case KindSourceCode:
		chunks = chunkCode(ctx, path, language, normalized, opts)
	case KindStructured:
		chunks = chunkStructured(path, normalized, opts)
	default:
		chunks = chunkText(path, normalized, opts, KindText)
	}

	for i := range chunks {
		chunks[i].IndexPosition = i
	}

	return Result{File: record, Chunks: chunks}, nil
}

func lineCount(normalized []byte) int {
	if len(normalized) == 0 {
		return 0
	}
	n := bytes.Count(normalized, []byte("\n"))
	if !bytes.HasSuffix(normalized, []byte("\n")) {
		n++
	}
	return n
}
