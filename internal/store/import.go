package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"leetdeck/internal/problem"
)

// ImportJSON reads a JSON array of problems and upserts each one. It returns
// the number of problems written before the first failure.
func (s *Store) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	var problems []problem.Problem
	if err := json.NewDecoder(r).Decode(&problems); err != nil {
		return 0, fmt.Errorf("decode problems: %w", err)
	}
	for i, p := range problems {
		p.Level = problem.ParseDifficulty(string(p.Level))
		if err := s.Upsert(ctx, p); err != nil {
			return i, err
		}
	}
	return len(problems), nil
}
