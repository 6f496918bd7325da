package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSnippet_ShortContentReturnedUnchanged(t *testing.T) {
	content := "fn login() {}"
	assert.Equal(t, content, buildSnippet(content, []string{"login"}))
}

func TestBuildSnippet_LongContentWithoutMatchReturnsFirstWindow(t *testing.T) {
	content := strings.Repeat("x", 500)
	snippet := buildSnippet(content, []string{"nomatch"})
	assert.Len(t, snippet, SnippetLength)
	assert.Equal(t, content[:SnippetLength], snippet)
}

func TestBuildSnippet_CentersWindowOnEarliestMatch(t *testing.T) {
	prefix := strings.Repeat("a", 300)
	content := prefix + "AUTHENTICATION" + strings.Repeat("b", 300)

	snippet := buildSnippet(content, []string{"authentication"})

	assert.Len(t, snippet, SnippetLength)
	assert.Contains(t, strings.ToLower(snippet), "authentication")
}

func TestBuildSnippet_ClipsWindowAtContentEnd(t *testing.T) {
	content := strings.Repeat("a", 300) + "needle"
	snippet := buildSnippet(content, []string{"needle"})
	assert.Len(t, snippet, SnippetLength)
	assert.True(t, strings.HasSuffix(snippet, "needle"))
}
