package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML. A Renderer is safe for concurrent use.
type Renderer struct {
	prose goldmark.Markdown
	code  goldmark.Markdown
}

// New builds a Renderer with both extension sets configured.
func New() *Renderer {
	return &Renderer{
		prose: goldmark.New(
			goldmark.WithExtensions(MathJax, extension.Table),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		code: goldmark.New(),
	}
}

// Prose normalizes $$ math delimiters and renders content with math, heading
// ID, fenced code, and table support. Raw HTML passes through.
func (r *Renderer) Prose(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.prose.Convert([]byte(NormalizeMath(content)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Code renders source as a fenced code block annotated with language.
func (r *Renderer) Code(source, language string) (string, error) {
	var buf bytes.Buffer
	if err := r.code.Convert([]byte(FenceCode(source, language)), &buf); err != nil {
		return "", fmt.Errorf("render code block: %w", err)
	}
	return buf.String(), nil
}

// FenceCode wraps source in a backtick fence tagged with language. The fence
// is one backtick longer than the longest backtick run in source so embedded
// fences cannot close the block early.
func FenceCode(source, language string) string {
	fence := strings.Repeat("`", max(3, longestRun(source, '`')+1))
	return fence + strings.TrimSpace(language) + "\n" + source + "\n" + fence
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return longest
}
