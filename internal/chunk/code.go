package chunk

import (
	"context"
	"strings"
)

// chunkCode attempts a structural parse of source code and emits one chunk
// per top-level declaration, with adjacent non-declaration lines attached to
// the preceding declaration. Falls back to text chunking when the language
// is unsupported or the parse fails.
func chunkCode(ctx context.Context, path, language string, normalized []byte, opts Options) []Chunk {
	registry := DefaultRegistry()
	config, ok := registry.GetByName(language)
	if !ok {
		return chunkText(path, normalized, opts, KindSourceCode)
	}

	parser := NewParser()
	defer parser.Close()

	tree, err := parser.Parse(ctx, normalized, language)
	if err != nil {
		return chunkText(path, normalized, opts, KindSourceCode)
	}

	decls := findDeclarations(tree, config)
	if len(decls) == 0 {
		return chunkText(path, normalized, opts, KindSourceCode)
	}

	lines := splitLines(normalized)
	total := len(lines)

	type span struct {
		start, end int // 1-indexed, inclusive
		symbol     string
	}

	spans := make([]span, 0, len(decls))
	for i, d := range decls {
		startLine := int(d.node.StartPoint.Row) + 1
		var endLine int
		if i+1 < len(decls) {
			endLine = int(decls[i+1].node.StartPoint.Row)
		} else {
			endLine = total
		}
		spans = append(spans, span{start: startLine, end: endLine, symbol: d.name})
	}

	// Attach any lines preceding the first declaration to that declaration's
	// chunk so invariant I1 (full coverage) holds.
	spans[0].start = 1

	chunks := make([]Chunk, 0, len(spans))
	for _, s := range spans {
		if s.start > s.end {
			continue
		}
		content := joinLines(lines, s.start, s.end)
		if strings.TrimSpace(content) == "" {
			continue
		}
		chunks = append(chunks, newChunk(path, KindSourceCode, s.start, s.end, content, nil, s.symbol))
	}

	if len(chunks) == 0 {
		return chunkText(path, normalized, opts, KindSourceCode)
	}

	return chunks
}
