package search

import "sort"

// RRFConstant is the RRF smoothing parameter k, fixed at 60 per spec.md §4.4.
const RRFConstant = 60

// LegacyLinearFusion switches the fuser from RRF to a linear combination of
// normalized BM25 and cosine scores. Retained for A/B comparison only; RRF
// is the default and MUST remain the default per spec.md §4.4.
var LegacyLinearFusion = false

// candidate holds one chunk's scores from the lexical and vector searches
// prior to fusion, keyed by chunk position (the index into IndexFile.Chunks).
type candidate struct {
	position   int
	bm25Score  float64
	bm25Rank   int // 1-indexed, 0 if absent
	vecScore   float64
	vecRank    int // 1-indexed, 0 if absent
	fusedScore float64
}

// fuse combines lexical and vector result lists into a single ranking.
//
// RRF: fused(c) = 1/(k+rank_L(c)) + 1/(k+rank_V(c)), descending, ties broken
// by lower combined rank sum then lower chunk_position, exactly as spec.md
// §4.4. When LegacyLinearFusion is set, falls back to
// 0.5*normalize(BM25) + 0.5*cos instead.
func fuse(lexical []lexicalHit, vector []vectorHit) []candidate {
	byPos := make(map[int]*candidate)

	get := func(pos int) *candidate {
		if c, ok := byPos[pos]; ok {
			return c
		}
		c := &candidate{position: pos}
		byPos[pos] = c
		return c
	}

	for rank, h := range lexical {
		c := get(h.position)
		c.bm25Score = h.score
		c.bm25Rank = rank + 1
	}
	for rank, h := range vector {
		c := get(h.position)
		c.vecScore = float64(h.score)
		c.vecRank = rank + 1
	}

	candidates := make([]*candidate, 0, len(byPos))
	for _, c := range byPos {
		candidates = append(candidates, c)
	}

	var fusedScore func(*candidate) float64
	if LegacyLinearFusion {
		maxBM25 := 0.0
		for _, c := range candidates {
			if c.bm25Score > maxBM25 {
				maxBM25 = c.bm25Score
			}
		}
		fusedScore = func(c *candidate) float64 {
			normBM25 := 0.0
			if maxBM25 > 0 {
				normBM25 = c.bm25Score / maxBM25
			}
			return 0.5*normBM25 + 0.5*c.vecScore
		}
	} else {
		fusedScore = func(c *candidate) float64 {
			var s float64
			if c.bm25Rank > 0 {
				s += 1.0 / float64(RRFConstant+c.bm25Rank)
			}
			if c.vecRank > 0 {
				s += 1.0 / float64(RRFConstant+c.vecRank)
			}
			return s
		}
	}

	rankSums := make(map[int]int, len(candidates))
	for _, c := range candidates {
		c.fusedScore = fusedScore(c)
		rankSums[c.position] = rankSumOf(c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.fusedScore != b.fusedScore {
			return a.fusedScore > b.fusedScore
		}
		if rankSums[a.position] != rankSums[b.position] {
			return rankSums[a.position] < rankSums[b.position]
		}
		return a.position < b.position
	})

	result := make([]candidate, len(candidates))
	for i, c := range candidates {
		result[i] = *c
	}
	return result
}

// rankSumOf returns the combined rank sum used as the first tie-break,
// substituting a large sentinel for an absent list.
func rankSumOf(c *candidate) int {
	const absent = 1 << 30
	l, v := c.bm25Rank, c.vecRank
	if l == 0 {
		l = absent
	}
	if v == 0 {
		v = absent
	}
	return l + v
}

// lexicalHit is one scored chunk from the lexical search, ordered by rank.
type lexicalHit struct {
	position int
	score    float64
}

// vectorHit is one scored chunk from the vector search, ordered by rank.
type vectorHit struct {
	position int
	score    float32
}
