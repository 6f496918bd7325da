package mcp

import (
	"github.com/repoindex/core/internal/chunk"
	"github.com/repoindex/core/internal/handlers"
	"github.com/repoindex/core/internal/search"
	"github.com/repoindex/core/internal/store"
)

// IndexToolInput defines the input schema for the index tool.
type IndexToolInput struct {
	Paths            []string `json:"paths" jsonschema:"one or more filesystem paths to scan and index"`
	ChunkTargetChars int      `json:"chunk_target_chars,omitempty" jsonschema:"preferred chunk size in characters, overrides the configured default"`
	ChunkMaxChars    int      `json:"chunk_max_chars,omitempty" jsonschema:"hard chunk size ceiling in characters"`
	MaxFileBytes     int64    `json:"max_file_bytes,omitempty" jsonschema:"files larger than this are recorded but not chunked"`
}

// IndexToolOutput defines the output schema for the index tool.
type IndexToolOutput struct {
	IndexID string      `json:"index_id" jsonschema:"identifier for the built index, pass this to search/explore/get_chunk/manage"`
	Created bool        `json:"created" jsonschema:"true if this call created a new index rather than refreshing an existing one"`
	Stats   store.Stats `json:"stats" jsonschema:"file and chunk counts for the built index"`
}

// SearchToolInput defines the input schema for the search tool.
type SearchToolInput struct {
	IndexID   string `json:"index_id" jsonschema:"identifier returned by a prior index call"`
	Query     string `json:"query" jsonschema:"the search query to execute"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
	MaxTokens int    `json:"max_tokens,omitempty" jsonschema:"token budget for returned content, default 16000"`
	Mode      string `json:"mode,omitempty" jsonschema:"one of lexical, semantic, hybrid, auto (default auto)"`

	PathPrefix    string `json:"path_prefix,omitempty" jsonschema:"restrict results to paths with this prefix"`
	Kind          string `json:"kind,omitempty" jsonschema:"restrict results to chunks of this kind"`
	SymbolPrefix  string `json:"symbol_prefix,omitempty" jsonschema:"restrict results to chunks whose symbol starts with this prefix"`
	HeadingPrefix string `json:"heading_prefix,omitempty" jsonschema:"restrict results to chunks whose heading path starts with this prefix"`
}

// SearchToolOutput defines the output schema for the search tool.
type SearchToolOutput struct {
	Results      []search.Result `json:"results"`
	TruncatedIDs []string        `json:"truncated_ids,omitempty" jsonschema:"chunk ids that matched but were dropped to stay within max_tokens"`
	Partial      bool            `json:"partial,omitempty" jsonschema:"true if the soft query deadline was hit before ranking finished"`
}

// ExploreToolInput defines the input schema for the explore tool.
type ExploreToolInput struct {
	IndexID    string `json:"index_id" jsonschema:"identifier returned by a prior index call"`
	Mode       string `json:"mode" jsonschema:"one of files, outline, symbols"`
	PathFilter string `json:"path_filter,omitempty" jsonschema:"restrict to paths with this prefix"`
}

// ExploreToolOutput defines the output schema for the explore tool.
type ExploreToolOutput struct {
	Items []handlers.ExploreItem `json:"items"`
	Total int                    `json:"total"`
}

// GetChunkToolInput defines the input schema for the get_chunk tool.
type GetChunkToolInput struct {
	IndexID string `json:"index_id" jsonschema:"identifier returned by a prior index call"`
	Ref     string `json:"ref" jsonschema:"a chunk id, or an unambiguous prefix of at least 6 characters"`
}

// GetChunkToolOutput defines the output schema for the get_chunk tool.
type GetChunkToolOutput struct {
	Chunk chunk.Chunk `json:"chunk"`
}

// ManageToolInput defines the input schema for the manage tool.
type ManageToolInput struct {
	Action  string `json:"action" jsonschema:"one of list, delete, verify"`
	IndexID string `json:"index_id,omitempty" jsonschema:"required for delete and verify, ignored for list"`
}

// ManageToolOutput defines the output schema for the manage tool.
type ManageToolOutput struct {
	Success       bool                    `json:"success,omitempty"`
	Message       string                  `json:"message,omitempty"`
	Indexes       []handlers.IndexSummary `json:"indexes,omitempty"`
	Discrepancies []store.Discrepancy     `json:"discrepancies,omitempty"`
}
