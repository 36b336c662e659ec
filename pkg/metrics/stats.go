package metrics

// QueryStats captures how a single question was ranked.
type QueryStats struct {
	CandidatesScored int     `json:"candidatesScored"`
	Shortlisted      int     `json:"shortlisted"`
	TopScore         float64 `json:"topScore"`
}

// IsZero reports whether no candidates were scored.
func (s QueryStats) IsZero() bool {
	return s.CandidatesScored == 0 && s.Shortlisted == 0 && s.TopScore == 0
}
