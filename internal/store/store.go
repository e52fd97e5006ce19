package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"leetdeck/internal/problem"
)

// ErrNoSolution reports that a problem has no solution write-up. It is the
// expected outcome for most problems, not a failure.
var ErrNoSolution = errors.New("no solution")

// Store manages problem persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the problem database, creating the schema
// on first use.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Count returns the number of stored problems.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM problem").Scan(&n); err != nil {
		return 0, fmt.Errorf("count problems: %w", err)
	}
	return n, nil
}

// Problems returns every stored problem ordered by display ID ascending, with
// relations loaded.
func (s *Store) Problems(ctx context.Context) ([]problem.Problem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT display_id, title, slug, level, description FROM problem ORDER BY display_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	var problems []problem.Problem
	for rows.Next() {
		var (
			p     problem.Problem
			level string
		)
		if err := rows.Scan(&p.DisplayID, &p.Title, &p.Slug, &level, &p.Description); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		p.Level = problem.ParseDifficulty(level)
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate problems: %w", err)
	}
	_ = rows.Close()

	for i := range problems {
		if err := s.loadRelations(ctx, &problems[i]); err != nil {
			return nil, err
		}
	}
	return problems, nil
}

// Solution returns the solution for a problem, or ErrNoSolution when none is
// recorded.
func (s *Store) Solution(ctx context.Context, displayID int) (problem.Solution, error) {
	var sol problem.Solution
	err := s.db.QueryRowContext(ctx, `SELECT content FROM solution WHERE problem_id = ?`, displayID).Scan(&sol.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return problem.Solution{}, ErrNoSolution
	}
	if err != nil {
		return problem.Solution{}, fmt.Errorf("get solution for problem %d: %w", displayID, err)
	}
	return sol, nil
}

func (s *Store) loadRelations(ctx context.Context, p *problem.Problem) error {
	var err error
	if p.Tags, err = s.tags(ctx,
		`SELECT pt.name, pt.tag_slug FROM problem_tag pt
         WHERE pt.problem_id = ? ORDER BY pt.position`, p.DisplayID); err != nil {
		return fmt.Errorf("load tags for problem %d: %w", p.DisplayID, err)
	}
	if p.CompanyTags, err = s.tags(ctx,
		`SELECT pc.name, pc.company_slug FROM problem_company pc
         WHERE pc.problem_id = ? ORDER BY pc.position`, p.DisplayID); err != nil {
		return fmt.Errorf("load company tags for problem %d: %w", p.DisplayID, err)
	}
	if p.Submissions, err = s.submissions(ctx, p.DisplayID); err != nil {
		return fmt.Errorf("load submissions for problem %d: %w", p.DisplayID, err)
	}

	sol, err := s.Solution(ctx, p.DisplayID)
	switch {
	case errors.Is(err, ErrNoSolution):
		p.Solution = nil
	case err != nil:
		return err
	default:
		p.Solution = &sol
	}
	return nil
}

func (s *Store) tags(ctx context.Context, query string, displayID int) ([]problem.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, displayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []problem.Tag{}
	for rows.Next() {
		var t problem.Tag
		if err := rows.Scan(&t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *Store) submissions(ctx context.Context, displayID int) ([]problem.Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, language FROM submission WHERE problem_id = ? ORDER BY position`, displayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []problem.Submission{}
	for rows.Next() {
		var sub problem.Submission
		if err := rows.Scan(&sub.Source, &sub.Language); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
