package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"leetdeck/internal/problem"
)

// Upsert inserts or replaces a problem together with its tags, company tags,
// solution, and submissions.
func (s *Store) Upsert(ctx context.Context, p problem.Problem) error {
	if p.DisplayID <= 0 {
		return fmt.Errorf("problem %q: display_id must be positive", p.Title)
	}
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("problem %d: slug is required", p.DisplayID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO problem (display_id, title, slug, level, description) VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(display_id) DO UPDATE SET
             title = excluded.title, slug = excluded.slug,
             level = excluded.level, description = excluded.description`,
		p.DisplayID, p.Title, p.Slug, string(p.Level), p.Description,
	); err != nil {
		return fmt.Errorf("upsert problem %d: %w", p.DisplayID, err)
	}

	for _, table := range []string{"problem_tag", "problem_company", "solution", "submission"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE problem_id = ?", p.DisplayID); err != nil {
			return fmt.Errorf("clear %s for problem %d: %w", table, p.DisplayID, err)
		}
	}

	for i, t := range p.Tags {
		if err := upsertLabel(ctx, tx, "tag", t); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO problem_tag (problem_id, position, tag_slug, name) VALUES (?, ?, ?, ?)`,
			p.DisplayID, i, t.Slug, t.Name,
		); err != nil {
			return fmt.Errorf("link tag %s to problem %d: %w", t.Slug, p.DisplayID, err)
		}
	}
	for i, t := range p.CompanyTags {
		if err := upsertLabel(ctx, tx, "company", t); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO problem_company (problem_id, position, company_slug, name) VALUES (?, ?, ?, ?)`,
			p.DisplayID, i, t.Slug, t.Name,
		); err != nil {
			return fmt.Errorf("link company %s to problem %d: %w", t.Slug, p.DisplayID, err)
		}
	}

	if p.Solution != nil {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO solution (problem_id, content) VALUES (?, ?)`,
			p.DisplayID, p.Solution.Content,
		); err != nil {
			return fmt.Errorf("insert solution for problem %d: %w", p.DisplayID, err)
		}
	}

	for i, sub := range p.Submissions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO submission (problem_id, position, source, language) VALUES (?, ?, ?, ?)`,
			p.DisplayID, i, sub.Source, sub.Language,
		); err != nil {
			return fmt.Errorf("insert submission for problem %d: %w", p.DisplayID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit problem %d: %w", p.DisplayID, err)
	}
	return nil
}

// upsertLabel registers a tag or company slug. The name kept here is only the
// most recently imported spelling; each problem link stores its own name.
func upsertLabel(ctx context.Context, tx *sql.Tx, table string, t problem.Tag) error {
	if strings.TrimSpace(t.Slug) == "" {
		return errors.New(table + " slug is required")
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+table+" (slug, name) VALUES (?, ?) ON CONFLICT(slug) DO UPDATE SET name = excluded.name",
		t.Slug, t.Name,
	); err != nil {
		return fmt.Errorf("upsert %s %s: %w", table, t.Slug, err)
	}
	return nil
}
