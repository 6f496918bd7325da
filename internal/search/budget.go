package search

import "github.com/repoindex/core/internal/chunk"

// packBudget emits candidates in ranked order while the running
// token_estimate total stays at or under maxTokens, per spec.md §4.4's
// token-budgeted selector. It stops at the first candidate that would
// exceed the budget and reports every later-ranked, already-matched
// candidate in truncatedIDs (capped at MaxTruncatedIDs), then further caps
// the kept count at limit.
func packBudget(ranked []Result, chunks []chunk.Chunk, positions []int, maxTokens, limit int) (kept []Result, truncatedIDs []string) {
	var total int
	budgetExceeded := false

	for i, r := range ranked {
		tokens := chunk.EstimateTokens(chunks[positions[i]].Content)
		if !budgetExceeded {
			if total+tokens > maxTokens {
				budgetExceeded = true
			} else {
				total += tokens
				kept = append(kept, r)
				continue
			}
		}
		if len(truncatedIDs) < MaxTruncatedIDs {
			truncatedIDs = append(truncatedIDs, r.ChunkID)
		}
	}

	if len(kept) > limit {
		for _, r := range kept[limit:] {
			if len(truncatedIDs) < MaxTruncatedIDs {
				truncatedIDs = append(truncatedIDs, r.ChunkID)
			}
		}
		kept = kept[:limit]
	}

	return kept, truncatedIDs
}
