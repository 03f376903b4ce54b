package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hiq/apps/go-server/internal/game"
	"github.com/robalobadob/hiq/apps/go-server/internal/sqlite"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	d := time.Date(2026, 3, 2, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-03-01", DateKey(d))
}

func TestConfigurationIsDeterministic(t *testing.T) {
	d := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)
	c := Configuration(d, "salt")
	assert.Equal(t, c, Configuration(later, "salt"))

	_, err := game.ParseConfiguration(string(c))
	assert.NoError(t, err)
}

func TestIndexRange(t *testing.T) {
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		idx := Index(d.AddDate(0, 0, i), "s", 8)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 8)
	}
	assert.Equal(t, 0, Index(d, "s", 0))
}

func TestStoreLeaderboard(t *testing.T) {
	db, err := sqlite.OpenMigrated(sqlite.Memory)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	st := NewStore(db)
	date := "2026-10-18"

	played, err := st.AlreadyPlayed(ctx, "a", date)
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, st.InsertResult(ctx, Result{UserID: "a", Date: date, Configuration: "Cross", PegsRemaining: 3, Moves: 3, ElapsedMs: 500}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "b", Date: date, Configuration: "Cross", PegsRemaining: 1, Moves: 5, ElapsedMs: 9000}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "c", Date: date, Configuration: "Cross", PegsRemaining: 1, Moves: 5, ElapsedMs: 4000}))
	// duplicate is ignored
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "a", Date: date, Configuration: "Cross", PegsRemaining: 1, Moves: 5, ElapsedMs: 1}))

	played, err = st.AlreadyPlayed(ctx, "a", date)
	require.NoError(t, err)
	assert.True(t, played)

	rows, err := st.Leaderboard(ctx, date, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "c", rows[0].UserID)
	assert.Equal(t, "b", rows[1].UserID)
	assert.Equal(t, "a", rows[2].UserID)
	assert.Equal(t, 3, rows[2].PegsRemaining)
}
