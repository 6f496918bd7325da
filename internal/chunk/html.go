package chunk

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// chunkHTML converts HTML source to markdown and chunks the result the same
// way as a native markdown file. The converter's DOM walk unescapes HTML
// entities as part of producing markdown text, so no separate entity
// decoding step is needed here.
func chunkHTML(path string, normalized []byte, opts Options) []Chunk {
	markdown, err := htmltomarkdown.ConvertString(string(normalized))
	if err != nil {
		return chunkText(path, normalized, opts, KindMarkdown)
	}
	return chunkMarkdown(path, []byte(markdown), opts)
}
