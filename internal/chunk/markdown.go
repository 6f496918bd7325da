package chunk

import (
	"regexp"
	"strings"
)

var markdownHeadingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)

// chunkMarkdown streams lines while maintaining a stack of heading levels.
// A chunk is emitted at every heading line outside a fence, whatever its
// level, or when the buffer reaches chunk_target_chars outside a fence. A
// fenced code block is split only by chunk_max_chars, which is a hard cap
// regardless of fence state.
func chunkMarkdown(path string, normalized []byte, opts Options) []Chunk {
	lines := splitLines(normalized)
	if len(lines) == 0 {
		return nil
	}

	var chunks []Chunk
	var buf []string
	bufStart := 1
	bufLen := 0
	inFence := false

	headingStack := make([]string, 6)
	var currentPath []string

	flush := func(endLine int) {
		if len(buf) == 0 {
			return
		}
		content := strings.Join(buf, "\n")
		pathCopy := append([]string(nil), currentPath...)
		chunks = append(chunks, newChunk(path, KindMarkdown, bufStart, endLine, content, pathCopy, ""))
		buf = nil
		bufLen = 0
	}

	isFenceDelim := func(line string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), "```")
	}

	for i, line := range lines {
		lineNum := i + 1

		if isFenceDelim(line) {
			inFence = !inFence
			if len(buf) == 0 {
				bufStart = lineNum
			}
			buf = append(buf, line)
			bufLen += len(line) + 1
			continue
		}

		if !inFence {
			if m := markdownHeadingPattern.FindStringSubmatch(line); m != nil {
				level := len(m[1])
				title := m[2]

				// A heading boundary flushes the preceding section under
				// its own heading_path before the stack advances.
				flush(lineNum - 1)

				headingStack[level-1] = title
				for lvl := level; lvl < 6; lvl++ {
					headingStack[lvl] = ""
				}
				currentPath = currentPath[:0]
				for _, h := range headingStack {
					if h != "" {
						currentPath = append(currentPath, h)
					}
				}

				bufStart = lineNum
				buf = append(buf, line)
				bufLen += len(line) + 1
				continue
			}
		}

		if len(buf) == 0 {
			bufStart = lineNum
		}
		buf = append(buf, line)
		bufLen += len(line) + 1

		if bufLen >= opts.ChunkMaxChars {
			flush(lineNum)
			continue
		}
		if !inFence && bufLen >= opts.ChunkTargetChars {
			flush(lineNum)
		}
	}
	flush(len(lines))

	return chunks
}
