package lexical

import (
	"math"
	"sort"
)

const (
	K1 = 1.2
	B  = 0.75
)

// Result is one scored chunk position from a lexical search.
type Result struct {
	ChunkPosition int
	Score         float64
}

// Search scores every chunk containing at least one query term using Okapi
// BM25 and returns them ranked descending by score, ties broken by lower
// chunk_position. Terms absent from the index contribute zero.
func Search(idx Index, query string) []Result {
	terms := Tokenize(query)
	if len(terms) == 0 || idx.N == 0 {
		return nil
	}

	scores := make(map[int]float64)
	for _, term := range terms {
		entry, ok := idx.Terms[term]
		if !ok {
			continue
		}
		idf := idfOf(idx.N, entry.DF)
		for _, p := range entry.Postings {
			docLen := idx.DocLengths[p.ChunkPosition]
			scores[p.ChunkPosition] += bm25Term(idf, p.TF, docLen, idx.AvgDocLength)
		}
	}

	results := make([]Result, 0, len(scores))
	for pos, score := range scores {
		results = append(results, Result{ChunkPosition: pos, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ChunkPosition < results[j].ChunkPosition
	})
	return results
}

func idfOf(n, df int) float64 {
	return math.Log((float64(n)-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

func bm25Term(idf float64, tf, docLen int, avgDocLength float64) float64 {
	if avgDocLength == 0 {
		avgDocLength = 1
	}
	num := float64(tf) * (K1 + 1)
	den := float64(tf) + K1*(1-B+B*float64(docLen)/avgDocLength)
	if den == 0 {
		return 0
	}
	return idf * (num / den)
}
