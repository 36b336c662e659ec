package faq

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
	"github.com/yanqian/faq-assistant/pkg/metrics"
	"github.com/yanqian/faq-assistant/pkg/util"
)

// Service exposes the FAQ assistant capabilities.
type Service interface {
	Answer(ctx context.Context, req Request) (Response, error)
	Trending(ctx context.Context) ([]TrendingQuery, error)
	Reload(ctx context.Context) (Status, error)
	Status(ctx context.Context) Status
	Greeting() string
}

type service struct {
	cfg     Config
	kb      *KnowledgeBase
	source  Source
	store   Store
	ranker  *Ranker
	metrics *metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time

	reloadMu sync.Mutex
}

// NewService wires up the FAQ domain. The knowledge base starts empty until
// Reload succeeds.
func NewService(cfg Config, source Source, store Store, recorder *metrics.Recorder, logger *slog.Logger) Service {
	cfg = cfg.withDefaults()
	return &service{
		cfg:     cfg,
		kb:      NewKnowledgeBase(),
		source:  source,
		store:   store,
		ranker:  NewRanker(cfg),
		metrics: recorder,
		logger:  logger.With("component", "faq.service"),
		now:     util.NowUTC,
	}
}

func (s *service) Answer(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "question cannot be empty", nil)
	}

	start := s.now()
	snap := s.kb.Snapshot()
	result := s.ranker.Rank(question, snap.Records)
	end := s.now()
	elapsed := end.Sub(start)

	stats := metrics.QueryStats{
		CandidatesScored: len(snap.Records),
		Shortlisted:      len(result.Shortlist),
		TopScore:         result.Score,
	}
	s.metrics.ObserveQuery(outcomeOf(result, snap), stats, elapsed)

	if result.Matched {
		if err := s.store.IncrementQuery(ctx, result.MatchedQuestion, result.MatchedQuestion); err != nil {
			s.logger.Warn("faq trending increment failed", "error", err)
		}
	}

	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		s.logger.Warn("faq trending fetch failed", "error", err)
		recs = nil
	}
	if recs == nil {
		recs = []TrendingQuery{}
	}

	s.logger.Debug("faq question ranked",
		"matched", result.Matched,
		"score", result.Score,
		"candidates", stats.CandidatesScored,
		"suggestions", len(result.Suggestions),
	)

	return Response{
		Question:        question,
		Answer:          result.Answer,
		Matched:         result.Matched,
		MatchedQuestion: result.MatchedQuestion,
		Score:           result.Score,
		Suggestions:     result.Suggestions,
		Recommendations: recs,
		DurationMs:      util.ElapsedMs(start, end),
		Stats:           &stats,
	}, nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFAQ, "failed to load trending queries", err)
	}
	if recs == nil {
		recs = []TrendingQuery{}
	}
	return recs, nil
}

// Reload fetches the table once. A failed load keeps serving the previous
// records and surfaces the load failure notice through Status.
func (s *service) Reload(ctx context.Context) (Status, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	name := s.source.Name()
	records, err := s.source.Load(ctx)
	if err != nil {
		prev := s.kb.Snapshot()
		s.kb.Replace(Snapshot{
			Records:  prev.Records,
			Source:   name,
			LoadedAt: prev.LoadedAt,
			Notice:   s.cfg.LoadFailureNotice,
		})
		s.metrics.ObserveLoad(name, false, 0)
		s.logger.Error("faq knowledge base load failed", "source", name, "error", err)
		return s.kb.Snapshot().Status(), apperrors.Wrap(apperrors.CodeLoadFailed, s.cfg.LoadFailureNotice, err)
	}

	s.kb.Replace(Snapshot{
		Records:  records,
		Source:   name,
		LoadedAt: s.now(),
	})
	s.metrics.ObserveLoad(name, true, len(records))
	s.logger.Info("faq knowledge base loaded", "source", name, "records", len(records))
	return s.kb.Snapshot().Status(), nil
}

func (s *service) Status(_ context.Context) Status {
	return s.kb.Snapshot().Status()
}

func (s *service) Greeting() string {
	return s.cfg.Greeting
}

func outcomeOf(result MatchResult, snap *Snapshot) string {
	switch {
	case len(snap.Records) == 0:
		return metrics.OutcomeEmptyBase
	case result.Matched:
		return metrics.OutcomeMatched
	default:
		return metrics.OutcomeNoMatch
	}
}
