package chunk

import (
	"bytes"
	"path/filepath"
	"strings"
)

// languageByExtension maps file extensions to the tree-sitter language name
// used by the language registry.
var languageByExtension = map[string]string{
	".go":  "go",
	".ts":  "typescript",
	".tsx": "tsx",
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".py":  "python",
}

var markdownExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
}

var htmlExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

var structuredExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

var specialFilenames = map[string]string{
	"Dockerfile":     "",
	"Makefile":       "",
	"Jenkinsfile":    "",
	"Vagrantfile":    "ruby",
	"Gemfile":        "ruby",
	"Rakefile":       "ruby",
	"CMakeLists.txt": "",
}

// classify inspects a path's extension/filename and returns the chunk kind
// and, for source code, the tree-sitter language name.
func classify(path string) (kind Kind, language string) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	if markdownExtensions[ext] {
		return KindMarkdown, ""
	}
	if htmlExtensions[ext] {
		return KindMarkdown, ""
	}
	if structuredExtensions[ext] {
		return KindStructured, ""
	}
	if lang, ok := languageByExtension[ext]; ok {
		return KindSourceCode, lang
	}
	if lang, ok := specialFilenames[base]; ok {
		if lang == "" {
			return KindText, ""
		}
		return KindSourceCode, lang
	}
	return KindText, ""
}

// isHTML reports whether a path should be routed through the HTML-to-markdown
// conversion step rather than the native markdown splitter.
func isHTML(path string) bool {
	return htmlExtensions[strings.ToLower(filepath.Ext(path))]
}

// looksBinary sniffs the first bytes of content for a NUL byte, the
// conventional signal that content is not text.
func looksBinary(content []byte) bool {
	n := len(content)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(content[:n], 0) != -1
}
