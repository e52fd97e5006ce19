package deck

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"leetdeck/internal/logging"
	"leetdeck/internal/problem"
)

// Renderer converts markdown to HTML. Implementations must be pure.
type Renderer interface {
	// Prose renders solution markdown, including math spans and tables.
	Prose(content string) (string, error)
	// Code renders source as a fenced block tagged with language.
	Code(source, language string) (string, error)
}

// Note is one compiled flashcard.
type Note struct {
	Fields  []string
	GUID    string
	SortKey string
	Tags    []string
}

// Compiler turns problems into notes.
type Compiler struct {
	renderer Renderer
	logger   *slog.Logger
}

// NewCompiler returns a compiler rendering through r.
func NewCompiler(r Renderer, logger *slog.Logger) *Compiler {
	return &Compiler{renderer: r, logger: logging.NewComponentLogger(logger, "compiler")}
}

// Compile builds the note for p. Missing company tags, solution, or
// submissions yield empty fields; only rendering failures return an error.
func (c *Compiler) Compile(p problem.Problem) (Note, error) {
	id := strconv.Itoa(p.DisplayID)
	c.logger.Debug("producing note",
		logging.Int(logging.FieldProblemID, p.DisplayID),
		logging.String("title", p.Title),
	)

	solution := ""
	if p.Solution != nil {
		html, err := c.renderer.Prose(p.Solution.Content)
		if err != nil {
			return Note{}, fmt.Errorf("render solution: %w", err)
		}
		solution = html
	}

	submissions, err := c.renderSubmissions(p.Submissions)
	if err != nil {
		return Note{}, err
	}

	fields := make([]string, FieldCount)
	fields[FieldID] = id
	fields[FieldTitle] = p.Title
	fields[FieldTitleSlug] = p.Slug
	fields[FieldDifficulty] = string(p.Level)
	fields[FieldDescription] = p.Description
	fields[FieldTags] = strings.Join(problem.TagNames(p.Tags), ";")
	fields[FieldTagSlugs] = strings.Join(problem.TagSlugs(p.Tags), ";")
	fields[FieldCompanyTags] = strings.Join(problem.TagNames(p.CompanyTags), ";")
	fields[FieldCompanyTagSlugs] = strings.Join(problem.TagSlugs(p.CompanyTags), ";")
	fields[FieldSolution] = solution
	fields[FieldSubmission] = submissions

	tags := make([]string, 0, len(p.Tags)+len(p.CompanyTags))
	tags = append(tags, problem.TagSlugs(p.Tags)...)
	tags = append(tags, problem.TagSlugs(p.CompanyTags)...)

	return Note{
		Fields:  fields,
		GUID:    id,
		SortKey: id,
		Tags:    tags,
	}, nil
}

func (c *Compiler) renderSubmissions(subs []problem.Submission) (string, error) {
	rendered := make([]string, 0, len(subs))
	for i, sub := range subs {
		html, err := c.renderer.Code(DecodeEscapes(sub.Source), sub.Language)
		if err != nil {
			return "", fmt.Errorf("render submission %d (%s): %w", i+1, sub.Language, err)
		}
		rendered = append(rendered, html)
	}
	return strings.Join(rendered, "\n"), nil
}
