// Package markdown renders problem solutions and code submissions to HTML
// with goldmark.
//
// Prose rendering first rewrites $$...$$ spans to \(...\) so the math
// extension can lift them out of markdown processing; the spans are emitted
// with their delimiters intact for MathJax in the flashcard viewer. Code
// rendering wraps a submission in a fenced block tagged with its language.
// Both modes are pure functions of their input.
package markdown
