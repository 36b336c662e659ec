package faq

import (
	"time"

	"github.com/yanqian/faq-assistant/pkg/metrics"
)

// Record is one question/answer row of the loaded table.
type Record struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RecordSet keeps records in source row order. It is never mutated after load.
type RecordSet []Record

// ScoredCandidate pairs a record with its similarity to the current query.
// Index is the record's position in the RecordSet and identifies the candidate.
type ScoredCandidate struct {
	Record Record  `json:"record"`
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
}

// MatchResult is the ranker output for a single query.
type MatchResult struct {
	Answer          string            `json:"answer"`
	Suggestions     []string          `json:"suggestions"`
	Matched         bool              `json:"matched"`
	Score           float64           `json:"score"`
	MatchedQuestion string            `json:"matchedQuestion,omitempty"`
	Shortlist       []ScoredCandidate `json:"-"`
}

// Request encapsulates a question sent by the chat widget.
type Request struct {
	Question string `json:"question"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Question        string              `json:"question"`
	Answer          string              `json:"answer"`
	Matched         bool                `json:"matched"`
	MatchedQuestion string              `json:"matchedQuestion,omitempty"`
	Score           float64             `json:"score"`
	Suggestions     []string            `json:"suggestions"`
	Recommendations []TrendingQuery     `json:"recommendations"`
	DurationMs      int64               `json:"durationMs"`
	Stats           *metrics.QueryStats `json:"stats,omitempty"`
}

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Status describes the knowledge base currently served.
type Status struct {
	Ready    bool      `json:"ready"`
	Records  int       `json:"records"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt,omitempty"`
	Notice   string    `json:"notice,omitempty"`
}
