// Package db persists the merged ratings dataset and the registry of analysis
// runs in a local SQLite database, so repeated runs skip the multi-gigabyte
// TSV parse.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

type DB struct {
	*sql.DB
}

// New opens (or creates) the SQLite database at path and ensures the base
// schema exists. Later schema changes go through MigrateUp.
func New(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = sqlDB.Exec(`
		CREATE TABLE IF NOT EXISTS movies (
			imdb_id      TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			year         INTEGER,
			runtime      INTEGER,
			genres       TEXT,
			imdb_rating  DOUBLE,
			num_votes    BIGINT NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id       TEXT PRIMARY KEY,
			params       TEXT,
			movie_count  BIGINT,
			created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{sqlDB}, nil
}

// SaveMovies replaces the stored dataset with the given records inside one
// transaction.
func (db *DB) SaveMovies(movies []dataset.Movie) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear movies: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO movies (imdb_id, title, year, runtime, genres, imdb_rating, num_votes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range movies {
		var year, runtime, rating interface{}
		if m.HasYear() {
			year = m.Year
		}
		if m.Runtime > 0 {
			runtime = m.Runtime
		}
		if m.Rated() {
			rating = m.Rating
		}
		if _, err := stmt.Exec(m.ID, m.Title, year, runtime, strings.Join(m.Genres, ","), rating, m.Votes); err != nil {
			return fmt.Errorf("failed to insert movie %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movies: %w", err)
	}
	return nil
}

// LoadMovies reads the stored dataset back, ID-sorted so callers see a
// deterministic order regardless of insertion history.
func (db *DB) LoadMovies() ([]dataset.Movie, error) {
	rows, err := db.Query(`
		SELECT imdb_id, title, year, runtime, genres, imdb_rating, num_votes
		FROM movies
		ORDER BY imdb_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []dataset.Movie
	for rows.Next() {
		var m dataset.Movie
		var year, runtime sql.NullInt64
		var rating sql.NullFloat64
		var genres string
		if err := rows.Scan(&m.ID, &m.Title, &year, &runtime, &genres, &rating, &m.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		if year.Valid {
			m.Year = int(year.Int64)
		}
		if runtime.Valid {
			m.Runtime = int(runtime.Int64)
		}
		if rating.Valid {
			m.Rating = rating.Float64
		} else {
			m.Rating = math.NaN()
		}
		if genres != "" {
			m.Genres = strings.Split(genres, ",")
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movies: %w", err)
	}
	return movies, nil
}

// CountMovies returns the number of stored movies.
func (db *DB) CountMovies() (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return n, nil
}

// AnalysisRun is one recorded invocation of the analysis battery.
type AnalysisRun struct {
	RunID      string    `json:"run_id"`
	Params     string    `json:"params"` // JSON of the analysis parameters
	MovieCount int       `json:"movie_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordRun registers an analysis run with a fresh UUID and the serialized
// parameters it used.
func (db *DB) RecordRun(params interface{}, movieCount int) (*AnalysisRun, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run params: %w", err)
	}

	run := &AnalysisRun{
		RunID:      uuid.New().String(),
		Params:     string(encoded),
		MovieCount: movieCount,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = db.Exec(
		`INSERT INTO analysis_runs (run_id, params, movie_count, created_at) VALUES (?, ?, ?, ?)`,
		run.RunID, run.Params, run.MovieCount, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record analysis run: %w", err)
	}
	return run, nil
}

// RecentRuns returns the most recent analysis runs, newest first.
func (db *DB) RecentRuns(limit int) ([]AnalysisRun, error) {
	rows, err := db.Query(`
		SELECT run_id, params, movie_count, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(&run.RunID, &run.Params, &run.MovieCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
