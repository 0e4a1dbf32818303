package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/flock/game"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func result(fed int, survived float32, ended time.Time) game.Result {
	return game.Result{
		Session:    uuid.New(),
		Seed:       42,
		Fed:        fed,
		Survived:   survived,
		SheepEaten: 5,
		PeakWolves: 3,
		Ticks:      int32(survived * 60),
		EndedAt:    ended,
	}
}

func TestBestEmpty(t *testing.T) {
	s := openStore(t)
	_, ok, err := s.Best(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordBestRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	low := result(1, 30, base)
	best := result(4, 50, base.Add(time.Minute))
	tied := result(4, 20, base.Add(2*time.Minute))
	for _, r := range []game.Result{low, best, tied} {
		require.NoError(t, s.Record(ctx, r))
	}

	got, ok, err := s.Best(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, best.Session, got.ID)
	assert.Equal(t, 4, got.Fed)
	assert.InDelta(t, 50, got.Survived, 1e-6)
	assert.True(t, got.EndedAt().Equal(best.EndedAt))

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, tied.Session, recent[0].ID)
	assert.Equal(t, best.Session, recent[1].ID)
}

func TestRecordDuplicateSession(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	r := result(2, 10, time.Now())
	require.NoError(t, s.Record(ctx, r))
	assert.Error(t, s.Record(ctx, r))
}

func TestSummary(t *testing.T) {
	e := Entry{Fed: 1, Survived: 90.4, EndedAtNs: time.Now().Add(-3 * time.Minute).UnixNano()}
	got := e.Summary()
	assert.True(t, strings.HasPrefix(got, "ate 1 cabbage, survived 1m30s, "), got)
	assert.Contains(t, got, "minutes ago")

	e.Fed = 3
	assert.Contains(t, e.Summary(), "ate 3 cabbages")
}
