package faq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRecords() RecordSet {
	return ParseRecords("Question,Answer\n" +
		"What is Devbay?,Devbay is a developer marketplace.\n" +
		"what is devbay,Exact answer.\n" +
		"How do I sell on Devbay?,Create a seller account.\n" +
		"What payment methods are accepted?,Cards and PayPal.\n")
}

func newStubRanker(scores map[string]float64) *Ranker {
	r := NewRanker(DefaultConfig())
	r.score = func(_, candidate string) float64 { return scores[candidate] }
	return r
}

func TestRankExactMatchFirst(t *testing.T) {
	result := AnswerQuery("what is devbay", sampleRecords())

	require.True(t, result.Matched)
	require.Equal(t, "Exact answer.", result.Answer)
	require.InDelta(t, 1.0, result.Score, 1e-12)
	require.Equal(t, "what is devbay", result.Shortlist[0].Record.Question)
	require.Equal(t, 1, result.Shortlist[0].Index)
}

func TestRankNormalizesQuery(t *testing.T) {
	result := AnswerQuery("   WHAT IS DEVBAY  ", sampleRecords())

	require.Equal(t, "Exact answer.", result.Answer)
}

func TestRankSuggestionsFollowTopMatch(t *testing.T) {
	result := AnswerQuery("what is devbay", sampleRecords())

	require.NotContains(t, result.Suggestions, "what is devbay")
	require.Contains(t, result.Suggestions, "what is devbay?")
	require.LessOrEqual(t, len(result.Suggestions), 2)
}

func TestRankEmptyRecords(t *testing.T) {
	for _, records := range []RecordSet{nil, {}} {
		result := AnswerQuery("anything", records)

		require.False(t, result.Matched)
		require.Equal(t, defaultNoMatchAnswer, result.Answer)
		require.NotNil(t, result.Suggestions)
		require.Empty(t, result.Suggestions)
	}
}

func TestRankAcceptThresholdBoundary(t *testing.T) {
	records := RecordSet{{Question: "a", Answer: "A"}, {Question: "b", Answer: "B"}}

	accepted := newStubRanker(map[string]float64{"a": 0.45, "b": 0.40}).Rank("q", records)
	require.True(t, accepted.Matched)
	require.Equal(t, "A", accepted.Answer)
	require.Equal(t, []string{"b"}, accepted.Suggestions)

	rejected := newStubRanker(map[string]float64{"a": 0.4499, "b": 0.44}).Rank("q", records)
	require.False(t, rejected.Matched)
	require.Equal(t, defaultNoMatchAnswer, rejected.Answer)
	require.Empty(t, rejected.Suggestions)
}

func TestRankSuggestThresholdIsExclusive(t *testing.T) {
	records := RecordSet{
		{Question: "top", Answer: "T"},
		{Question: "edge", Answer: "E"},
		{Question: "above", Answer: "A"},
	}

	result := newStubRanker(map[string]float64{"top": 0.9, "edge": 0.35, "above": 0.36}).Rank("q", records)

	require.Equal(t, []string{"above"}, result.Suggestions)
}

func TestRankShortlistLimitsSuggestions(t *testing.T) {
	records := RecordSet{
		{Question: "one", Answer: "1"},
		{Question: "two", Answer: "2"},
		{Question: "three", Answer: "3"},
		{Question: "four", Answer: "4"},
	}

	result := newStubRanker(map[string]float64{"one": 0.5, "two": 0.9, "three": 0.8, "four": 0.7}).Rank("q", records)

	require.Equal(t, "2", result.Answer)
	require.Equal(t, []string{"three", "four"}, result.Suggestions)
	require.Len(t, result.Shortlist, 3)
}

func TestRankDuplicateQuestionsBothEligible(t *testing.T) {
	records := RecordSet{
		{Question: "same", Answer: "first"},
		{Question: "same", Answer: "second"},
	}

	result := newStubRanker(map[string]float64{"same": 0.8}).Rank("q", records)

	require.Equal(t, "first", result.Answer)
	require.Equal(t, []string{"same"}, result.Suggestions)
	require.Equal(t, 0, result.Shortlist[0].Index)
	require.Equal(t, 1, result.Shortlist[1].Index)
}

func TestRankIsDeterministic(t *testing.T) {
	records := sampleRecords()

	first := AnswerQuery("how to sell devbay", records)
	second := AnswerQuery("how to sell devbay", records)

	require.Equal(t, first, second)
}

func TestRankDoesNotMutateRecords(t *testing.T) {
	records := sampleRecords()
	snapshot := append(RecordSet(nil), records...)

	AnswerQuery("payment", records)

	require.Equal(t, snapshot, records)
}
