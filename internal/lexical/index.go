package lexical

// Posting is one occurrence of a term in a chunk: the chunk's position in
// the index's chunk array and how many times the term occurs there.
type Posting struct {
	ChunkPosition int `json:"chunk_position"`
	TF            int `json:"tf"`
}

// TermEntry is one row of the inverted index: a term's document frequency
// and its postings list.
type TermEntry struct {
	DF       int       `json:"df"`
	Postings []Posting `json:"postings"`
}

// Index is the inverted index over a set of chunk contents, term -> postings,
// plus the document-length statistics BM25 needs.
type Index struct {
	Terms        map[string]TermEntry `json:"terms"`
	DocLengths   []int                `json:"doc_lengths"` // indexed by chunk_position
	AvgDocLength float64              `json:"avg_doc_length"`
	N            int                  `json:"n"` // number of chunks (documents)
}

// Build tokenizes each content string (ordered by chunk position) and
// constructs the inverted index and length statistics in one pass.
func Build(contents []string) Index {
	terms := make(map[string]TermEntry)
	docLengths := make([]int, len(contents))

	type occurrence struct {
		position int
		tf       int
	}
	byTerm := make(map[string][]occurrence)

	var totalLength int
	for pos, content := range contents {
		tokens := Tokenize(content)
		docLengths[pos] = len(tokens)
		totalLength += len(tokens)

		counts := make(map[string]int)
		for _, tok := range tokens {
			counts[tok]++
		}
		for term, tf := range counts {
			byTerm[term] = append(byTerm[term], occurrence{position: pos, tf: tf})
		}
	}

	for term, occs := range byTerm {
		postings := make([]Posting, 0, len(occs))
		for _, o := range occs {
			postings = append(postings, Posting{ChunkPosition: o.position, TF: o.tf})
		}
		terms[term] = TermEntry{DF: len(postings), Postings: postings}
	}

	avgDocLength := 0.0
	if len(contents) > 0 {
		avgDocLength = float64(totalLength) / float64(len(contents))
	}

	return Index{
		Terms:        terms,
		DocLengths:   docLengths,
		AvgDocLength: avgDocLength,
		N:            len(contents),
	}
}
