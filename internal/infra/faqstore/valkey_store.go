package faqstore

import (
	"context"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

// defaultTopLimit applies when TopQueries is called without a positive limit.
const defaultTopLimit = 10

// ValkeyStore keeps trending counters in a Valkey sorted set so every replica
// reports the same recommendations.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "faq"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// IncrementQuery bumps the score of canonical and remembers the first display
// string seen for it.
func (s *ValkeyStore) IncrementQuery(ctx context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	if display == "" {
		display = canonical
	}
	cmds := valkey.Commands{
		s.client.B().Zincrby().Key(s.trendingKey()).Increment(1).Member(canonical).Build(),
		s.client.B().Set().Key(s.displayKey(canonical)).Value(display).Nx().Build(),
	}
	results := s.client.DoMulti(ctx, cmds...)
	if err := results[0].Error(); err != nil {
		return err
	}
	// SET NX answers nil when the display already exists.
	if err := results[1].Error(); err != nil && !valkey.IsValkeyNil(err) {
		return err
	}
	return nil
}

// TopQueries returns the highest scored questions.
func (s *ValkeyStore) TopQueries(ctx context.Context, limit int) ([]faq.TrendingQuery, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	cmd := s.client.B().Zrevrange().Key(s.trendingKey()).Start(0).Stop(int64(limit - 1)).Withscores().Build()
	scores, err := s.client.Do(ctx, cmd).AsZScores()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return []faq.TrendingQuery{}, nil
		}
		return nil, err
	}
	if len(scores) == 0 {
		return []faq.TrendingQuery{}, nil
	}

	keys := make([]string, len(scores))
	for i, z := range scores {
		keys[i] = s.displayKey(z.Member)
	}
	displays, err := s.client.Do(ctx, s.client.B().Mget().Key(keys...).Build()).AsStrSlice()
	if err != nil && !valkey.IsValkeyNil(err) {
		return nil, err
	}

	out := make([]faq.TrendingQuery, 0, len(scores))
	for i, z := range scores {
		query := z.Member
		if i < len(displays) && displays[i] != "" {
			query = displays[i]
		}
		out = append(out, faq.TrendingQuery{Query: query, Count: int64(z.Score)})
	}
	return out, nil
}

func (s *ValkeyStore) trendingKey() string {
	return s.prefix + ":trending"
}

func (s *ValkeyStore) displayKey(canonical string) string {
	return s.prefix + ":display:" + canonical
}

var _ faq.Store = (*ValkeyStore)(nil)
