package testsupport

import (
	"context"
	"testing"

	"leetdeck/internal/problem"
	"leetdeck/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, path string) *store.Store {
	t.Helper()

	s, err := store.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// SeedProblems upserts the given problems into the store.
func SeedProblems(t testing.TB, s *store.Store, problems ...problem.Problem) {
	t.Helper()

	for _, p := range problems {
		if err := s.Upsert(context.Background(), p); err != nil {
			t.Fatalf("store.Upsert(%d): %v", p.DisplayID, err)
		}
	}
}

// TwoSum returns a problem with tags, a company tag, no solution, and one
// submission.
func TwoSum() problem.Problem {
	return problem.Problem{
		DisplayID:   1,
		Title:       "Two Sum",
		Slug:        "two-sum",
		Level:       problem.DifficultyEasy,
		Description: "<p>Given an array of integers <code>nums</code>...</p>",
		Tags: []problem.Tag{
			{Name: "Array", Slug: "array"},
			{Name: "Hash Table", Slug: "hash-table"},
		},
		CompanyTags: []problem.Tag{{Name: "Google", Slug: "google"}},
		Submissions: []problem.Submission{{Source: "print(1)", Language: "python"}},
	}
}

// ClimbingStairs returns a problem with a markdown solution containing math
// and two submissions whose sources carry escaped newlines.
func ClimbingStairs() problem.Problem {
	return problem.Problem{
		DisplayID:   70,
		Title:       "Climbing Stairs",
		Slug:        "climbing-stairs",
		Level:       problem.DifficultyEasy,
		Description: "<p>You are climbing a staircase.</p>",
		Tags:        []problem.Tag{{Name: "Dynamic Programming", Slug: "dynamic-programming"}},
		CompanyTags: []problem.Tag{},
		Solution:    &problem.Solution{Content: "## Approach\n\ncost is $$O(n)$$ time"},
		Submissions: []problem.Submission{
			{Source: `def climb(n):\n    return n`, Language: "python3"},
			{Source: `int climb(int n) {\n    return n;\n}`, Language: "cpp"},
		},
	}
}
