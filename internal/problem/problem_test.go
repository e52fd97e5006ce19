package problem_test

import (
	"testing"

	"leetdeck/internal/problem"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want problem.Difficulty
	}{
		{"easy", problem.DifficultyEasy},
		{"MEDIUM", problem.DifficultyMedium},
		{" Hard ", problem.DifficultyHard},
		{"", ""},
	}
	for _, tt := range tests {
		if got := problem.ParseDifficulty(tt.in); got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTagNamesAndSlugsPreserveOrder(t *testing.T) {
	tags := []problem.Tag{{Name: "Array", Slug: "array"}, {Name: "DP", Slug: "dynamic-programming"}, {Name: "Array", Slug: "array"}}
	names := problem.TagNames(tags)
	if len(names) != 3 || names[0] != "Array" || names[1] != "DP" || names[2] != "Array" {
		t.Fatalf("unexpected names: %v", names)
	}
	slugs := problem.TagSlugs(tags)
	if slugs[1] != "dynamic-programming" {
		t.Fatalf("unexpected slugs: %v", slugs)
	}
	if got := problem.TagNames(nil); len(got) != 0 {
		t.Fatalf("expected empty names, got %v", got)
	}
}
