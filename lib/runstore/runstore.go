// Package runstore archives pipeline runs in sqlite so repeated word
// trends can be compared across days and browser combos.
package runstore

import (
	"context"
	"database/sql"
	"time"

	"headlinewatch/lib/runstore/db"
)

const (
	ModeLocal = "local"
	ModeCloud = "cloud"
)

type Store struct {
	db *sql.DB
}

// NewStore wraps an opened database and applies the schema.
func NewStore(database *sql.DB) (Store, error) {
	if _, err := database.Exec(db.Schema); err != nil {
		return Store{}, err
	}
	return Store{db: database}, nil
}

type Run struct {
	Build      string
	Mode       string
	Browser    string
	Status     string
	Reason     string
	Articles   int
	Repeated   map[string]int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Record archives one run together with its repeated words.
func (s Store) Record(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (build, mode, browser, status, reason, article_count, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Build,
		run.Mode,
		run.Browser,
		run.Status,
		run.Reason,
		run.Articles,
		run.StartedAt.Unix(),
		run.FinishedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for word, count := range run.Repeated {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO repeated_words (run_id, word, count) VALUES (?, ?, ?)`,
			id, word, count,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

type RunSummary struct {
	ID            int64
	Build         string
	Mode          string
	Browser       string
	Status        string
	Reason        string
	Articles      int
	RepeatedWords int
	StartedAt     time.Time
	FinishedAt    time.Time
}

// History returns the most recent runs, newest first.
func (s Store) History(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT r.id, r.build, r.mode, r.browser, r.status, r.reason, r.article_count,
		        r.started_at, r.finished_at, COUNT(w.word)
		 FROM runs r
		 LEFT JOIN repeated_words w ON w.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var run RunSummary
		var started, finished int64
		err := rows.Scan(
			&run.ID,
			&run.Build,
			&run.Mode,
			&run.Browser,
			&run.Status,
			&run.Reason,
			&run.Articles,
			&started,
			&finished,
			&run.RepeatedWords,
		)
		if err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(started, 0)
		run.FinishedAt = time.Unix(finished, 0)
		out = append(out, run)
	}
	return out, rows.Err()
}

// Repeated returns the archived word counts for one run.
func (s Store) Repeated(ctx context.Context, runID int64) (map[string]int, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT word, count FROM repeated_words WHERE run_id = ?`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var word string
		var count int
		if err := rows.Scan(&word, &count); err != nil {
			return nil, err
		}
		out[word] = count
	}
	return out, rows.Err()
}
