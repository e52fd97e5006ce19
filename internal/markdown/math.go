package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	doubleDollar          = regexp.MustCompile(`\$\$(.*?)\$\$`)
	multilineDoubleDollar = regexp.MustCompile(`(?s)\$\$(.*?)\$\$`)
)

// NormalizeMath rewrites every $$x$$ span on a single line to \(x\). Spans
// that still straddle a line break afterwards become display \[x\] blocks,
// unless they cross a blank line and so could not sit in one paragraph.
func NormalizeMath(content string) string {
	content = doubleDollar.ReplaceAllString(content, `\(${1}\)`)
	return multilineDoubleDollar.ReplaceAllStringFunc(content, func(span string) string {
		inner := span[2 : len(span)-2]
		if strings.Contains(inner, "\n\n") {
			return span
		}
		return `\[` + inner + `\]`
	})
}

// KindMath is the node kind of an inline \(...\) or display \[...\] span.
var KindMath = ast.NewNodeKind("Math")

// Math is a TeX span kept verbatim for client-side typesetting.
type Math struct {
	ast.BaseInline
	Display bool
	Literal []byte
}

// Kind implements ast.Node.
func (n *Math) Kind() ast.NodeKind { return KindMath }

// Dump implements ast.Node.
func (n *Math) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Literal": string(n.Literal)}, nil)
}

type mathParser struct{}

func (mathParser) Trigger() []byte { return []byte{'\\'} }

// Parse consumes a span whose closer may sit on a later line of the same
// paragraph. An unclosed opener is left as literal text.
func (mathParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[0] != '\\' {
		return nil
	}
	var closer []byte
	display := false
	switch line[1] {
	case '(':
		closer = []byte(`\)`)
	case '[':
		closer = []byte(`\]`)
		display = true
	default:
		return nil
	}

	startLine, startPos := block.Position()
	block.Advance(2)
	var literal []byte
	for {
		line, _ := block.PeekLine()
		if line == nil {
			block.SetPosition(startLine, startPos)
			return nil
		}
		if end := bytes.Index(line, closer); end >= 0 {
			literal = append(literal, line[:end]...)
			block.Advance(end + len(closer))
			break
		}
		literal = append(literal, line...)
		block.AdvanceLine()
	}
	return &Math{Display: display, Literal: literal}
}

type mathRenderer struct{}

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMath, r.renderMath)
}

func (r *mathRenderer) renderMath(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Math)
	if n.Display {
		_, _ = w.WriteString(`<span class="math display">\[`)
	} else {
		_, _ = w.WriteString(`<span class="math inline">\(`)
	}
	_, _ = w.Write(util.EscapeHTML(n.Literal))
	if n.Display {
		_, _ = w.WriteString(`\]</span>`)
	} else {
		_, _ = w.WriteString(`\)</span>`)
	}
	return ast.WalkSkipChildren, nil
}

type mathExtension struct{}

// MathJax is a goldmark extension that recognises \(...\) and \[...\] spans.
var MathJax goldmark.Extender = mathExtension{}

func (mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(mathParser{}, 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathRenderer{}, 500),
	))
}
