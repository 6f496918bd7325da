package chunk

// chunkStructured handles JSON/TOML/YAML files: the same paragraph/size
// based flushing as plain text, with no symbol extraction.
func chunkStructured(path string, normalized []byte, opts Options) []Chunk {
	return chunkText(path, normalized, opts, KindStructured)
}
