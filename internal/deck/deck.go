package deck

import (
	"context"
	"math/rand/v2"
	"path/filepath"

	"leetdeck/internal/textutil"
)

// Deck IDs are drawn from [2^30, 2^31).
const (
	deckIDMin int64 = 1 << 30
	deckIDMax int64 = 1 << 31
)

// IDSource produces a deck identifier.
type IDSource func() int64

// RandomDeckID returns a uniformly random deck identifier. Deck identity is
// per run; durable identity lives in note GUIDs.
func RandomDeckID() int64 {
	return deckIDMin + rand.Int64N(deckIDMax-deckIDMin)
}

// Deck is a named container of notes.
type Deck struct {
	ID    int64
	Name  string
	Notes []Note
}

// NewDeck creates an empty deck named name with an ID from newID.
func NewDeck(name string, newID IDSource) *Deck {
	if newID == nil {
		newID = RandomDeckID
	}
	return &Deck{ID: newID(), Name: name}
}

// Add appends a note, keeping insertion order.
func (d *Deck) Add(notes ...Note) {
	d.Notes = append(d.Notes, notes...)
}

// PackageWriter serializes a model and deck to a package file at path.
type PackageWriter interface {
	Write(ctx context.Context, path string, model Model, d *Deck) error
}

// PackagePath returns the package location for a deck named name inside
// outputDir.
func PackagePath(outputDir, name string) string {
	file := textutil.SanitizeFileName(name)
	if file == "" {
		file = "deck"
	}
	return filepath.Join(outputDir, file+".apkg")
}
