package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuse_CombinesRankedListsWithRRF(t *testing.T) {
	lex := []lexicalHit{{position: 1, score: 5.0}, {position: 2, score: 3.0}}
	vec := []vectorHit{{position: 2, score: 0.9}, {position: 3, score: 0.5}}

	results := fuse(lex, vec)

	assert.Len(t, results, 3)
	// position 2 appears in both lists at rank 2 (lexical) and rank 1 (vector):
	// 1/(60+2) + 1/(60+1) is the highest score among the three candidates.
	assert.Equal(t, 2, results[0].position)
}

func TestFuse_EmptyInputsReturnEmpty(t *testing.T) {
	results := fuse(nil, nil)
	assert.Empty(t, results)
}

func TestFuse_TieBrokenByRankSumThenPosition(t *testing.T) {
	// Two candidates present in only one list each, at the same rank, so
	// their RRF scores tie and so do their rank sums (1 plus the absent-list
	// sentinel each); the lower position then breaks the tie.
	lex := []lexicalHit{{position: 5, score: 1.0}}
	vec := []vectorHit{{position: 9, score: 1.0}}

	results := fuse(lex, vec)

	assert.Len(t, results, 2)
	assert.InDelta(t, results[0].fusedScore, results[1].fusedScore, 1e-9)
	assert.Equal(t, 5, results[0].position)
	assert.Equal(t, 9, results[1].position)
}

func TestFuse_LegacyLinearFusionCombinesNormalizedScores(t *testing.T) {
	LegacyLinearFusion = true
	defer func() { LegacyLinearFusion = false }()

	lex := []lexicalHit{{position: 1, score: 10.0}, {position: 2, score: 5.0}}
	vec := []vectorHit{{position: 2, score: 1.0}}

	results := fuse(lex, vec)

	assert.Len(t, results, 2)
	// position 2 has normalized BM25 0.5 and vector score 1.0, fused to
	// 0.5*0.5 + 0.5*1.0 = 0.75, so it outranks position 1 (normalized BM25
	// of 1.0 alone, no vector contribution: 0.5*1.0 = 0.5).
	assert.Equal(t, 2, results[0].position)
}

func TestRankSumOf_SubstitutesSentinelForAbsentList(t *testing.T) {
	onlyLexical := &candidate{bm25Rank: 1, vecRank: 0}
	onlyVector := &candidate{bm25Rank: 0, vecRank: 1}

	assert.Greater(t, rankSumOf(onlyLexical), 1)
	assert.Greater(t, rankSumOf(onlyVector), 1)
	assert.Equal(t, rankSumOf(onlyLexical), rankSumOf(onlyVector))
}
