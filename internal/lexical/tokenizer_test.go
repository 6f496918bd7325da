package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndSplitsNonAlnum(t *testing.T) {
	tokens := Tokenize("Hello, World! This-is-a test.")
	assert.Contains(t, tokens, "hello")
	assert.Contains(t, tokens, "world")
	assert.Contains(t, tokens, "test")
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	tokens := Tokenize("a I to be")
	assert.NotContains(t, tokens, "a")
	assert.NotContains(t, tokens, "i")
}

func TestTokenize_DropsStopwords(t *testing.T) {
	tokens := Tokenize("the function returns a value from the cache")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "function")
	assert.NotContains(t, tokens, "value")
	assert.Contains(t, tokens, "returns")
	assert.Contains(t, tokens, "cache")
}

func TestTokenize_SplitsCamelCaseIdentifiers(t *testing.T) {
	tokens := Tokenize("getUserByID")
	assert.Contains(t, tokens, "get")
	assert.Contains(t, tokens, "user")
	assert.Contains(t, tokens, "by")
	assert.Contains(t, tokens, "id")
}

func TestTokenize_SplitsSnakeCase(t *testing.T) {
	tokens := Tokenize("parse_http_request")
	assert.Contains(t, tokens, "parse")
	assert.Contains(t, tokens, "http")
	assert.Contains(t, tokens, "request")
}

func TestTokenize_EmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}
