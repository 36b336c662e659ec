package faq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
)

const devbayTable = "Question,Answer\n" +
	"What is Devbay?,Devbay is a marketplace for developer services.\n" +
	"How do I sell on Devbay?,Open a seller account from your dashboard.\n" +
	"How do I buy on Devbay?,Browse listings and check out.\n"

func TestServiceAnswerBeforeLoadYieldsNoMatch(t *testing.T) {
	svc := newServiceUnderTest(t, &stubSource{}, &stubStore{})

	resp, err := svc.Answer(context.Background(), Request{Question: "what is devbay"})
	require.NoError(t, err)
	require.False(t, resp.Matched)
	require.Equal(t, defaultNoMatchAnswer, resp.Answer)
	require.Empty(t, resp.Suggestions)
	require.False(t, svc.Status(context.Background()).Ready)
}

func TestServiceAnswerMatched(t *testing.T) {
	store := &stubStore{top: []TrendingQuery{{Query: "what is devbay?", Count: 4}}}
	svc := newServiceUnderTest(t, &stubSource{text: devbayTable}, store)
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	resp, err := svc.Answer(context.Background(), Request{Question: "  What is Devbay?  "})
	require.NoError(t, err)
	require.True(t, resp.Matched)
	require.Equal(t, "What is Devbay?", resp.Question)
	require.Equal(t, "Devbay is a marketplace for developer services.", resp.Answer)
	require.Equal(t, "what is devbay?", resp.MatchedQuestion)
	require.InDelta(t, 1.0, resp.Score, 1e-12)
	require.Equal(t, []string{"what is devbay?"}, store.incremented)
	require.Equal(t, store.top, resp.Recommendations)
	require.Equal(t, 3, resp.Stats.CandidatesScored)
}

func TestServiceAnswerNoMatchDoesNotCountTrending(t *testing.T) {
	store := &stubStore{}
	svc := newServiceUnderTest(t, &stubSource{text: devbayTable}, store)
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	resp, err := svc.Answer(context.Background(), Request{Question: "zzzz qqqq"})
	require.NoError(t, err)
	require.False(t, resp.Matched)
	require.Empty(t, store.incremented)
	require.NotNil(t, resp.Recommendations)
}

func TestServiceAnswerRejectsEmptyQuestion(t *testing.T) {
	svc := newServiceUnderTest(t, &stubSource{}, &stubStore{})

	_, err := svc.Answer(context.Background(), Request{Question: "   "})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestServiceAnswerSurvivesStoreFailure(t *testing.T) {
	store := &stubStore{incrementErr: errors.New("down"), topErr: errors.New("down")}
	svc := newServiceUnderTest(t, &stubSource{text: devbayTable}, store)
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	resp, err := svc.Answer(context.Background(), Request{Question: "how do i sell on devbay?"})
	require.NoError(t, err)
	require.True(t, resp.Matched)
	require.Empty(t, resp.Recommendations)
}

func TestServiceReloadFailureKeepsSnapshot(t *testing.T) {
	source := &stubSource{text: devbayTable}
	svc := newServiceUnderTest(t, source, &stubStore{})
	status, err := svc.Reload(context.Background())
	require.NoError(t, err)
	require.True(t, status.Ready)
	require.Equal(t, 3, status.Records)
	require.Empty(t, status.Notice)

	source.err = errors.New("csv not found")
	status, err = svc.Reload(context.Background())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLoadFailed))
	require.Equal(t, 3, status.Records)
	require.Equal(t, defaultLoadFailureNotice, status.Notice)

	resp, err := svc.Answer(context.Background(), Request{Question: "what is devbay?"})
	require.NoError(t, err)
	require.True(t, resp.Matched)

	source.err = nil
	status, err = svc.Reload(context.Background())
	require.NoError(t, err)
	require.Empty(t, status.Notice)
}

func TestServiceFirstLoadFailureServesEmptySet(t *testing.T) {
	svc := newServiceUnderTest(t, &stubSource{err: errors.New("unreachable")}, &stubStore{})

	status, err := svc.Reload(context.Background())
	require.Error(t, err)
	require.False(t, status.Ready)
	require.Zero(t, status.Records)
	require.Equal(t, defaultLoadFailureNotice, status.Notice)

	resp, err := svc.Answer(context.Background(), Request{Question: "anything"})
	require.NoError(t, err)
	require.False(t, resp.Matched)
}

func TestServiceGreeting(t *testing.T) {
	svc := newServiceUnderTest(t, &stubSource{}, &stubStore{})
	require.Equal(t, defaultGreeting, svc.Greeting())
}

func TestServiceTrendingWrapsStoreError(t *testing.T) {
	svc := newServiceUnderTest(t, &stubSource{}, &stubStore{topErr: errors.New("boom")})

	_, err := svc.Trending(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeFAQ))
}

func TestServiceTrendingDefaultsLimit(t *testing.T) {
	store := &stubStore{}
	cfg := DefaultConfig()
	cfg.TopRecommendations = 0
	svc := NewService(cfg, &stubSource{}, store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Equal(t, defaultRecommendations, store.lastLimit)
}

func newServiceUnderTest(t *testing.T, source Source, store Store) Service {
	t.Helper()
	svc := NewService(DefaultConfig(), source, store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	impl := svc.(*service)
	clock := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	impl.now = func() time.Time { return clock }
	return svc
}

type stubSource struct {
	text string
	err  error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(context.Context) (RecordSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return ParseRecords(s.text), nil
}

type stubStore struct {
	incremented  []string
	lastLimit    int
	top          []TrendingQuery
	incrementErr error
	topErr       error
}

func (s *stubStore) IncrementQuery(_ context.Context, canonical, _ string) error {
	if s.incrementErr != nil {
		return s.incrementErr
	}
	s.incremented = append(s.incremented, canonical)
	return nil
}

func (s *stubStore) TopQueries(_ context.Context, limit int) ([]TrendingQuery, error) {
	s.lastLimit = limit
	if s.topErr != nil {
		return nil, s.topErr
	}
	return s.top, nil
}
