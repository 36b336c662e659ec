package faq

import "unicode/utf8"

const (
	editWeight    = 0.6
	overlapWeight = 0.4
)

// Levenshtein returns the minimum number of single rune insertions, deletions
// and substitutions needed to turn a into b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Score blends normalized edit similarity with the share of query words found
// in the candidate. Both inputs are expected to be normalized already.
// The result is not symmetric: word overlap is relative to the query.
func Score(query, candidate string) float64 {
	score := editWeight*editSimilarity(query, candidate) + overlapWeight*wordOverlap(query, candidate)
	return clamp01(score)
}

// editSimilarity is 1 - distance/maxLen; two empty strings are identical.
func editSimilarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(maxLen)
}

// wordOverlap counts every query token occurrence that appears in the
// candidate. A query without tokens overlaps fully only with a candidate
// that has none either.
func wordOverlap(query, candidate string) float64 {
	queryTokens := tokenize(query)
	candidateTokens := tokenize(candidate)
	if len(queryTokens) == 0 {
		if len(candidateTokens) == 0 {
			return 1
		}
		return 0
	}

	present := make(map[string]struct{}, len(candidateTokens))
	for _, tok := range candidateTokens {
		present[tok] = struct{}{}
	}
	hits := 0
	for _, tok := range queryTokens {
		if _, ok := present[tok]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTokens))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
