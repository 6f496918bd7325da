package chunk

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// fileFingerprint hashes normalized file bytes. Equal fingerprints across
// runs mean the file need not be re-chunked.
func fileFingerprint(normalized []byte) string {
	sum := sha256.Sum256(normalized)
	return hex.EncodeToString(sum[:])
}

// chunkID derives a content-addressable id from the chunk's location and
// normalized content, stable across runs for identical input (BUG-052:
// hashing on path+lines+content rather than position keeps ids stable
// across unrelated edits elsewhere in the file).
func chunkID(path string, startLine, endLine int, content string) string {
	input := fmt.Sprintf("%s\x00%d\x00%d\x00%s", path, startLine, endLine, content)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// refOf returns the short, URL-safe identifier exposed to callers.
func refOf(id string) string {
	if len(id) < 12 {
		return id
	}
	return id[:12]
}
