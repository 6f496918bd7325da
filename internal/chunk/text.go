package chunk

import "strings"

// chunkText performs paragraph-boundary flushing: lines accumulate until a
// blank line is seen once the buffer has reached chunk_target_chars, with a
// hard flush at the line that brings the buffer to chunk_max_chars, blank or
// not. Lines are never split, so a chunk can exceed chunk_max_chars by up to
// one line. Used for plain
// text, unknown textual files, and as the structural-parse fallback for code.
func chunkText(path string, normalized []byte, opts Options, kind Kind) []Chunk {
	lines := splitLines(normalized)
	if len(lines) == 0 {
		return nil
	}

	var chunks []Chunk
	var buf []string
	bufStart := 1
	bufLen := 0

	flush := func(endLine int) {
		if len(buf) == 0 {
			return
		}
		content := strings.Join(buf, "\n")
		chunks = append(chunks, newChunk(path, kind, bufStart, endLine, content, nil, ""))
		buf = nil
		bufLen = 0
	}

	for i, line := range lines {
		lineNum := i + 1
		if len(buf) == 0 {
			bufStart = lineNum
		}
		buf = append(buf, line)
		bufLen += len(line) + 1

		isBlank := strings.TrimSpace(line) == ""
		if bufLen >= opts.ChunkMaxChars {
			flush(lineNum)
			continue
		}
		if isBlank && bufLen >= opts.ChunkTargetChars {
			flush(lineNum)
		}
	}
	flush(len(lines))

	return chunks
}
