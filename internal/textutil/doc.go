// Package textutil provides small text helpers shared by the deck writer and
// the CLI: filename sanitization and markup stripping.
package textutil
