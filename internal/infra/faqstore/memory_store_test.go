package faqstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

func TestMemoryStoreTopQueries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.IncrementQuery(ctx, "what is devbay?", "What is Devbay?"))
	require.NoError(t, store.IncrementQuery(ctx, "how do i sell?", "how do i sell?"))
	require.NoError(t, store.IncrementQuery(ctx, "what is devbay?", "WHAT IS DEVBAY"))
	require.NoError(t, store.IncrementQuery(ctx, "refunds?", ""))
	require.NoError(t, store.IncrementQuery(ctx, "", "ignored"))

	top, err := store.TopQueries(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{
		{Query: "What is Devbay?", Count: 2},
		{Query: "how do i sell?", Count: 1},
		{Query: "refunds?", Count: 1},
	}, top)

	limited, err := store.TopQueries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestMemoryStoreEmpty(t *testing.T) {
	top, err := NewMemoryStore().TopQueries(context.Background(), 5)
	require.NoError(t, err)
	require.Empty(t, top)
}

func TestMemoryStoreNonPositiveLimitUsesDefault(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for i := 0; i < defaultTopLimit+2; i++ {
		q := fmt.Sprintf("question %02d", i)
		require.NoError(t, store.IncrementQuery(ctx, q, q))
	}

	for _, limit := range []int{0, -1} {
		top, err := store.TopQueries(ctx, limit)
		require.NoError(t, err)
		require.Len(t, top, defaultTopLimit)
		require.Equal(t, "question 00", top[0].Query)
	}
}
