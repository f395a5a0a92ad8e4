package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/roshambo/internal/game"
)

func newTestHistoryStore(t *testing.T, size int) (*HistoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewHistoryStore(client, size), mr
}

func record(round int, a, b game.Choice) game.RoundRecord {
	return game.RoundRecord{
		Round:    round,
		Choices:  [2]game.Choice{a, b},
		Result:   game.ResolveResult(a, b),
		PlayedAt: time.Now(),
	}
}

func TestHistoryStore_RecordAndQuery(t *testing.T) {
	store, _ := newTestHistoryStore(t, 10)
	ctx := context.Background()

	require.NoError(t, store.RecordRound(ctx, record(1, game.ChoiceRock, game.ChoiceScissors)))
	require.NoError(t, store.RecordRound(ctx, record(2, game.ChoicePaper, game.ChoicePaper)))

	records, err := store.RecentRounds(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first
	assert.Equal(t, 2, records[0].Round)
	assert.Equal(t, game.ResultTie, records[0].Result)
	assert.Equal(t, 1, records[1].Round)
	assert.Equal(t, game.ResultSeatAWin, records[1].Result)
	assert.Equal(t, game.ChoiceRock, records[1].Choices[0])
}

func TestHistoryStore_TrimsToSize(t *testing.T) {
	store, _ := newTestHistoryStore(t, 3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.RecordRound(ctx, record(i, game.ChoiceRock, game.ChoicePaper)))
	}

	records, err := store.RecentRounds(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 5, records[0].Round)
	assert.Equal(t, 3, records[2].Round)
}

func TestHistoryStore_LimitClamping(t *testing.T) {
	store, _ := newTestHistoryStore(t, 10)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		require.NoError(t, store.RecordRound(ctx, record(i, game.ChoiceScissors, game.ChoiceRock)))
	}

	records, err := store.RecentRounds(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// Zero and negative limits fall back to the store cap
	records, err = store.RecentRounds(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestHistoryStore_SkipsCorruptEntries(t *testing.T) {
	store, mr := newTestHistoryStore(t, 10)
	ctx := context.Background()

	require.NoError(t, store.RecordRound(ctx, record(1, game.ChoiceRock, game.ChoiceRock)))
	mr.Lpush(historyKey, "{broken json")

	records, err := store.RecentRounds(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Round)
}

func TestHistoryStore_EmptyHistory(t *testing.T) {
	store, _ := newTestHistoryStore(t, 10)

	records, err := store.RecentRounds(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, records)
}
