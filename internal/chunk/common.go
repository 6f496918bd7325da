package chunk

import (
	"fmt"
	"strings"
)

// splitLines splits normalized (LF-only) content into lines without the
// trailing newline, matching the 1-indexed line numbering used throughout
// this package.
func splitLines(content []byte) []string {
	s := string(content)
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// joinLines rejoins lines [start, end] (1-indexed, inclusive) into a string.
func joinLines(lines []string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}

// newChunk builds a Chunk with its id/ref/token_estimate/fingerprint
// derived from its content, leaving IndexPosition for the caller to assign
// once the full ordered set for a file is known.
func newChunk(path string, kind Kind, startLine, endLine int, content string, headingPath []string, symbol string) Chunk {
	id := chunkID(path, startLine, endLine, content)
	return Chunk{
		ID:                 id,
		Ref:                refOf(id),
		Path:               path,
		Kind:               kind,
		StartLine:          startLine,
		EndLine:            endLine,
		Content:            content,
		HeadingPath:        headingPath,
		Symbol:             symbol,
		Address:            fmt.Sprintf("%s:%d-%d", path, startLine, endLine),
		TokenEstimate:      EstimateTokens(content),
		ContentFingerprint: fileFingerprint([]byte(content)),
	}
}
