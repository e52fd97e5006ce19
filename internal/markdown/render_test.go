package markdown_test

import (
	"strings"
	"testing"

	"leetdeck/internal/markdown"
)

func TestNormalizeMath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single", "cost is $$O(n^2)$$ time", `cost is \(O(n^2)\) time`},
		{"multiple non-greedy", "$$a$$ and $$b$$", `\(a\) and \(b\)`},
		{"unterminated", "price $$5", "price $$5"},
		{"no math", "plain", "plain"},
		{"multiline display", "$$\na\nb\n$$", "\\[\na\nb\n\\]"},
		{"single line first", "$$a$$ then $$\nb\n$$", `\(a\) then \[` + "\nb\n" + `\]`},
		{"blank line not joined", "$$a\n\nb$$", "$$a\n\nb$$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markdown.NormalizeMath(tt.in); got != tt.want {
				t.Fatalf("NormalizeMath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProseRendersInlineMathSpan(t *testing.T) {
	r := markdown.New()
	out, err := r.Prose("cost is $$O(n^2)$$ time")
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	if !strings.Contains(out, `<span class="math inline">\(O(n^2)\)</span>`) {
		t.Fatalf("expected inline math span, got %q", out)
	}
	if strings.Contains(out, "$$") {
		t.Fatalf("expected dollar delimiters to be converted, got %q", out)
	}
}

func TestProseMathIsNotEmphasised(t *testing.T) {
	r := markdown.New()
	out, err := r.Prose(`$$a_1 * b_2 * c$$`)
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	if strings.Contains(out, "<em>") {
		t.Fatalf("math content must not be parsed as markdown, got %q", out)
	}
	if !strings.Contains(out, `\(a_1 * b_2 * c\)`) {
		t.Fatalf("expected literal math content, got %q", out)
	}
}

func TestProseDisplayMath(t *testing.T) {
	r := markdown.New()
	out, err := r.Prose(`see \[x < y\] here`)
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	if !strings.Contains(out, `<span class="math display">\[x &lt; y\]</span>`) {
		t.Fatalf("expected escaped display math, got %q", out)
	}
}

func TestProseMultilineDollarMathIsDisplay(t *testing.T) {
	r := markdown.New()
	out, err := r.Prose("The recurrence is\n$$\ndp_i = dp_{i-1} * a_i * b_i\n$$\nso we are done.")
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	if !strings.Contains(out, `<span class="math display">\[`) {
		t.Fatalf("expected display math span, got %q", out)
	}
	if !strings.Contains(out, "dp_i = dp_{i-1} * a_i * b_i") {
		t.Fatalf("expected literal math content, got %q", out)
	}
	if strings.Contains(out, "$$") || strings.Contains(out, "<em>") {
		t.Fatalf("math must not leak delimiters or emphasis, got %q", out)
	}
}

func TestProseDisplayMathSpansLines(t *testing.T) {
	r := markdown.New()
	out, err := r.Prose("see \\[\nx_1 * y_2 * z\n\\] here")
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	want := `<span class="math display">\[` + "\nx_1 * y_2 * z\n" + `\]</span>`
	if !strings.Contains(out, want) {
		t.Fatalf("expected %q in output %q", want, out)
	}
	if strings.Contains(out, "<em>") {
		t.Fatalf("math content must not be parsed as markdown, got %q", out)
	}
}

func TestProseUnclosedMathAcrossLinesStaysText(t *testing.T) {
	r := markdown.New()
	out, err := r.Prose("open \\(\nnever closed")
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	if strings.Contains(out, "math") || !strings.Contains(out, "never closed") {
		t.Fatalf("expected plain text for unclosed math, got %q", out)
	}
}

func TestProseEscapedParenIsNotMath(t *testing.T) {
	r := markdown.New()
	out, err := r.Prose(`literal \( without closer`)
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	if strings.Contains(out, "math") {
		t.Fatalf("unexpected math span, got %q", out)
	}
}

func TestProseTablesHeadingsAndFences(t *testing.T) {
	r := markdown.New()
	src := "## Approach 1\n\n| n | cost |\n|---|------|\n| 1 | 2 |\n\n```go\nfmt.Println(1)\n```\n"
	out, err := r.Prose(src)
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	for _, want := range []string{
		`<h2 id="approach-1">Approach 1</h2>`,
		"<table>",
		"<td>2</td>",
		`<code class="language-go">fmt.Println(1)`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}

func TestProsePassesRawHTML(t *testing.T) {
	r := markdown.New()
	out, err := r.Prose(`<img src="a.png">`)
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	if !strings.Contains(out, `<img src="a.png">`) {
		t.Fatalf("expected raw html passthrough, got %q", out)
	}
}

func TestCodeRendersFencedBlock(t *testing.T) {
	r := markdown.New()
	out, err := r.Code("print(1)", "python")
	if err != nil {
		t.Fatalf("Code failed: %v", err)
	}
	if !strings.Contains(out, `<pre><code class="language-python">print(1)`) {
		t.Fatalf("expected fenced python block, got %q", out)
	}
}

func TestCodeDoesNotTypesetMath(t *testing.T) {
	r := markdown.New()
	out, err := r.Code(`s = "$$x$$"`, "python")
	if err != nil {
		t.Fatalf("Code failed: %v", err)
	}
	if !strings.Contains(out, "$$x$$") {
		t.Fatalf("code mode must not normalize math, got %q", out)
	}
}

func TestCodeEscapesHTML(t *testing.T) {
	r := markdown.New()
	out, err := r.Code("if a < b && c > d {}", "go")
	if err != nil {
		t.Fatalf("Code failed: %v", err)
	}
	if !strings.Contains(out, "a &lt; b &amp;&amp; c &gt; d") {
		t.Fatalf("expected escaped source, got %q", out)
	}
}

func TestFenceCodeOutgrowsEmbeddedFences(t *testing.T) {
	got := markdown.FenceCode("x = '```'", "python")
	if !strings.HasPrefix(got, "````python\n") || !strings.HasSuffix(got, "\n````") {
		t.Fatalf("expected four-backtick fence, got %q", got)
	}
	if got := markdown.FenceCode("print(1)", "python"); got != "```python\nprint(1)\n```" {
		t.Fatalf("unexpected fence %q", got)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := markdown.New()
	src := "# Title\n\n$$x$$ and a table\n\n|a|\n|-|\n|1|\n"
	first, err := r.Prose(src)
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	second, err := r.Prose(src)
	if err != nil {
		t.Fatalf("Prose failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical output, got %q and %q", first, second)
	}
}
