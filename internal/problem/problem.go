// Package problem defines the coding-interview records that feed deck
// compilation.
package problem

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Difficulty is the problem level as stored upstream.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty title-cases a stored level ("easy", "HARD") into its
// canonical label. Unknown values are title-cased and kept.
func ParseDifficulty(value string) Difficulty {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return Difficulty(cases.Title(language.Und).String(strings.ToLower(value)))
}

// Tag is a topic or company label attached to a problem.
type Tag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Solution is the official write-up for a problem.
type Solution struct {
	Content string `json:"content"`
}

// Submission is one accepted code submission. Source is stored with
// backslash escapes still encoded.
type Submission struct {
	Source   string `json:"source"`
	Language string `json:"language"`
}

// Problem is a read-only record supplied by the store.
type Problem struct {
	DisplayID   int          `json:"display_id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Level       Difficulty   `json:"level"`
	Description string       `json:"description"`
	Tags        []Tag        `json:"tags"`
	CompanyTags []Tag        `json:"company_tags"`
	Solution    *Solution    `json:"solution,omitempty"`
	Submissions []Submission `json:"submissions"`
}

// HasSolution reports whether the problem carries a solution write-up.
func (p Problem) HasSolution() bool {
	return p.Solution != nil
}

// TagNames returns the tag names in record order.
func TagNames(tags []Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}

// TagSlugs returns the tag slugs in record order.
func TagSlugs(tags []Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Slug)
	}
	return out
}
