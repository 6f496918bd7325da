package search

import "strings"

// SnippetLength is the maximum snippet length in characters, per spec.md §4.4.
const SnippetLength = 240

// SnippetWindow is the width of the window centered on the earliest
// query-term match, per spec.md §4.4.
const SnippetWindow = 40

// buildSnippet returns the first SnippetLength characters of content, unless
// one of the query terms appears in content, in which case it returns the
// SnippetLength characters starting SnippetWindow/2 characters before the
// earliest such match, so a SnippetWindow-wide window centered on the match
// start opens the snippet. Near the end of content the slice is shifted back
// so it still ends at the last character.
func buildSnippet(content string, terms []string) string {
	if len(content) <= SnippetLength {
		return content
	}

	earliest := -1
	lower := strings.ToLower(content)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if idx := strings.Index(lower, strings.ToLower(term)); idx != -1 {
			if earliest == -1 || idx < earliest {
				earliest = idx
			}
		}
	}

	if earliest == -1 {
		return content[:SnippetLength]
	}

	start := earliest - SnippetWindow/2
	if start < 0 {
		start = 0
	}
	end := start + SnippetLength
	if end > len(content) {
		end = len(content)
		start = end - SnippetLength
		if start < 0 {
			start = 0
		}
	}
	return content[start:end]
}
