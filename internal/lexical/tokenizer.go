// Package lexical implements the BM25 inverted index over chunk content:
// the fixed tokenizer, the term->postings table, and Okapi BM25 scoring.
package lexical

import (
	"regexp"
	"strings"
	"unicode"
)

var tokenRegex = regexp.MustCompile(`[a-zA-Z0-9_]+`)

// Tokenize applies the fixed tokenizer: lowercase, split on non-alphanumeric,
// drop tokens shorter than 2 characters, drop stopwords. Identifiers are
// additionally split on camelCase/snake_case boundaries so "getUserById"
// indexes as "get", "user", "by", "id" alongside code search terms.
func Tokenize(text string) []string {
	words := tokenRegex.FindAllString(text, -1)

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		for _, sub := range splitIdentifier(word) {
			lower := strings.ToLower(sub)
			if len(lower) < 2 {
				continue
			}
			if stopwords[lower] {
				continue
			}
			tokens = append(tokens, lower)
		}
	}
	return tokens
}

func splitIdentifier(token string) []string {
	if strings.Contains(token, "_") {
		var result []string
		for _, part := range strings.Split(token, "_") {
			if part != "" {
				result = append(result, splitCamelCase(part)...)
			}
		}
		return result
	}
	return splitCamelCase(token)
}

// splitCamelCase splits camelCase/PascalCase identifiers, keeping acronym
// runs together: "HTTPHandler" -> ["HTTP", "Handler"], "getUserByID" ->
// ["get", "User", "By", "ID"].
func splitCamelCase(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				if current.Len() > 0 {
					result = append(result, current.String())
					current.Reset()
				}
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}
