package db

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "movies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoadMovies(t *testing.T) {
	store := newTestDB(t)

	movies := []dataset.Movie{
		{ID: "tt0000002", Title: "Unrated Short", Year: 1892, Rating: math.NaN()},
		{ID: "tt0111161", Title: "The Big Feature", Year: 1994, Runtime: 142,
			Genres: []string{"Drama", "Crime"}, Rating: 9.3, Votes: 2500000},
		{ID: "tt9999999", Title: "No Year Known", Rating: 6.1, Votes: 1500},
	}
	require.NoError(t, store.SaveMovies(movies))

	n, err := store.CountMovies()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.LoadMovies()
	require.NoError(t, err)
	require.Len(t, got, 3)

	// LoadMovies orders by ID.
	assert.Equal(t, "tt0000002", got[0].ID)
	assert.True(t, math.IsNaN(got[0].Rating), "unrated movie must come back NaN")
	assert.Nil(t, got[0].Genres)

	feature := got[1]
	assert.Equal(t, "The Big Feature", feature.Title)
	assert.Equal(t, 1994, feature.Year)
	assert.Equal(t, 142, feature.Runtime)
	assert.Equal(t, []string{"Drama", "Crime"}, feature.Genres)
	assert.Equal(t, 9.3, feature.Rating)
	assert.Equal(t, 2500000, feature.Votes)

	assert.Equal(t, 0, got[2].Year, "unknown year must round-trip as 0")
}

func TestSaveMoviesReplaces(t *testing.T) {
	store := newTestDB(t)

	first := []dataset.Movie{
		{ID: "tt1", Title: "a", Rating: 7.0, Votes: 100},
		{ID: "tt2", Title: "b", Rating: 6.0, Votes: 200},
	}
	require.NoError(t, store.SaveMovies(first))

	second := []dataset.Movie{{ID: "tt3", Title: "c", Rating: 8.0, Votes: 300}}
	require.NoError(t, store.SaveMovies(second))

	got, err := store.LoadMovies()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tt3", got[0].ID)
}

func TestRecordAndListRuns(t *testing.T) {
	store := newTestDB(t)

	type params struct {
		MinVotes int `json:"min_votes"`
	}
	run1, err := store.RecordRun(params{MinVotes: 1000}, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, run1.RunID)
	assert.JSONEq(t, `{"min_votes":1000}`, run1.Params)

	run2, err := store.RecordRun(params{MinVotes: 500}, 99)
	require.NoError(t, err)
	assert.NotEqual(t, run1.RunID, run2.RunID)

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.Contains(t, []string{run1.RunID, run2.RunID}, r.RunID)
	}

	one, err := store.RecentRuns(1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestMigrations(t *testing.T) {
	store := newTestDB(t)

	require.NoError(t, store.MigrateUp("migrations"))
	version, dirty, err := store.MigrateVersion("migrations")
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	// Re-running is a no-op.
	require.NoError(t, store.MigrateUp("migrations"))

	require.NoError(t, store.MigrateDown("migrations"))
	version, _, err = store.MigrateVersion("migrations")
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	// Force resets the recorded version without running migrations.
	require.NoError(t, store.MigrateForce("migrations", 2))
	version, dirty, err = store.MigrateVersion("migrations")
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
}
