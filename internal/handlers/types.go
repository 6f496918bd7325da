package handlers

import (
	"time"

	"github.com/repoindex/core/internal/search"
	"github.com/repoindex/core/internal/store"
)

// IndexOptions overrides chunking thresholds for one index call; zero
// fields fall back to the Service's configured defaults.
type IndexOptions struct {
	ChunkTargetChars int   `json:"chunk_target_chars,omitempty"`
	ChunkMaxChars    int   `json:"chunk_max_chars,omitempty"`
	MaxFileBytes     int64 `json:"max_file_bytes,omitempty"`
}

// IndexResult is the response shape of the index operation.
type IndexResult struct {
	IndexID string      `json:"index_id"`
	Created bool        `json:"created"`
	Stats   store.Stats `json:"stats"`
}

// SearchRequest is the request shape of the search operation.
type SearchRequest struct {
	IndexID   string         `json:"index_id"`
	Query     string         `json:"query"`
	Filters   search.Filters `json:"filters,omitempty"`
	Limit     int            `json:"limit,omitempty"`
	MaxTokens int            `json:"max_tokens,omitempty"`
	Mode      string         `json:"mode,omitempty"`
}

// ExploreMode selects what explore lists.
type ExploreMode string

const (
	ExploreFiles   ExploreMode = "files"
	ExploreOutline ExploreMode = "outline"
	ExploreSymbols ExploreMode = "symbols"
)

// ExploreItem is one row of an explore response; which fields are populated
// depends on the requested mode.
type ExploreItem struct {
	Path        string   `json:"path"`
	Kind        string   `json:"kind,omitempty"`
	Language    string   `json:"language,omitempty"`
	LineCount   int      `json:"line_count,omitempty"`
	Ref         string   `json:"ref,omitempty"`
	StartLine   int      `json:"start_line,omitempty"`
	EndLine     int      `json:"end_line,omitempty"`
	HeadingPath []string `json:"heading_path,omitempty"`
	Symbol      string   `json:"symbol,omitempty"`
}

// ExploreResult is the response shape of the explore operation.
type ExploreResult struct {
	Items []ExploreItem `json:"items"`
	Total int           `json:"total"`
}

// ManageAction selects what manage does.
type ManageAction string

const (
	ManageList   ManageAction = "list"
	ManageDelete ManageAction = "delete"
	ManageVerify ManageAction = "verify"
)

// IndexSummary is one registry row as surfaced by manage{action:"list"}.
type IndexSummary struct {
	IndexID    string    `json:"index_id"`
	RootPath   string    `json:"root_path"`
	CreatedAt  time.Time `json:"created_at"`
	FileCount  int       `json:"file_count"`
	ChunkCount int       `json:"chunk_count"`
}

// ManageResult is the response shape of the manage operation; only the
// fields relevant to the requested action are populated.
type ManageResult struct {
	Success       bool                `json:"success,omitempty"`
	Message       string              `json:"message,omitempty"`
	Indexes       []IndexSummary      `json:"indexes,omitempty"`
	Discrepancies []store.Discrepancy `json:"discrepancies,omitempty"`
}
