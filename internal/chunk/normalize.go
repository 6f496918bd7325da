package chunk

import "strings"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeBytes strips a UTF-8 BOM and normalizes CRLF/CR line endings to
// LF. Trailing whitespace on a line is preserved. Deterministic: no
// wall-clock or random input.
func normalizeBytes(b []byte) []byte {
	if len(b) >= 3 && b[0] == utf8BOM[0] && b[1] == utf8BOM[1] && b[2] == utf8BOM[2] {
		b = b[3:]
	}
	s := string(b)
	if strings.Contains(s, "\r\n") {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	if strings.Contains(s, "\r") {
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	return []byte(s)
}
