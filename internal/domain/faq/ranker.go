package faq

import "sort"

// ScoreFunc rates how well a normalized candidate matches a normalized query.
type ScoreFunc func(query, candidate string) float64

// Ranker scores a RecordSet against a query and applies the acceptance and
// suggestion thresholds. It holds no state between calls.
type Ranker struct {
	cfg   Config
	score ScoreFunc
}

// NewRanker builds a ranker using the blended similarity score.
func NewRanker(cfg Config) *Ranker {
	return &Ranker{cfg: cfg.withDefaults(), score: Score}
}

var defaultRanker = NewRanker(DefaultConfig())

// AnswerQuery ranks query against records with the default thresholds.
func AnswerQuery(query string, records RecordSet) MatchResult {
	return defaultRanker.Rank(query, records)
}

// Rank returns the best answer for query plus up to ShortlistSize-1 follow-up
// questions. Ties keep source row order.
func (r *Ranker) Rank(query string, records RecordSet) MatchResult {
	q := Normalize(query)

	scored := make([]ScoredCandidate, len(records))
	for i, rec := range records {
		scored[i] = ScoredCandidate{
			Record: rec,
			Index:  i,
			Score:  r.score(q, Normalize(rec.Question)),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	shortlist := scored
	if len(shortlist) > r.cfg.ShortlistSize {
		shortlist = shortlist[:r.cfg.ShortlistSize]
	}

	if len(shortlist) == 0 || shortlist[0].Score < r.cfg.AcceptThreshold {
		result := MatchResult{
			Answer:      r.cfg.NoMatchAnswer,
			Suggestions: []string{},
			Shortlist:   shortlist,
		}
		if len(shortlist) > 0 {
			result.Score = shortlist[0].Score
		}
		return result
	}

	best := shortlist[0]
	suggestions := make([]string, 0, len(shortlist)-1)
	for _, candidate := range shortlist[1:] {
		if candidate.Score > r.cfg.SuggestThreshold {
			suggestions = append(suggestions, candidate.Record.Question)
		}
	}

	return MatchResult{
		Answer:          best.Record.Answer,
		Suggestions:     suggestions,
		Matched:         true,
		Score:           best.Score,
		MatchedQuestion: best.Record.Question,
		Shortlist:       shortlist,
	}
}
