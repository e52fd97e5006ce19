package apkg_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"leetdeck/internal/apkg"
	"leetdeck/internal/deck"
	"leetdeck/internal/logging"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func sampleModel() deck.Model {
	return deck.BuildModel("Leetcode", deck.TemplateText{
		Front: "{{ID}}. {{Title}}{{#CompanyTags}}{{CompanyTags}}{{/CompanyTags}}",
		Back:  "{{FrontSide}}<hr>{{Solution}}",
		CSS:   ".card { color: black; }",
	})
}

func sampleNote(id, title string, tags ...string) deck.Note {
	fields := make([]string, deck.FieldCount)
	fields[deck.FieldID] = id
	fields[deck.FieldTitle] = title
	return deck.Note{Fields: fields, GUID: id, SortKey: id, Tags: tags}
}

func writePackage(t *testing.T, d *deck.Deck) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out", d.Name+".apkg")
	w := apkg.NewWriter(logging.NewNop(), apkg.WithClock(fixedClock))
	if err := w.Write(context.Background(), path, sampleModel(), d); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return path
}

func TestWriteRoundTrip(t *testing.T) {
	d := deck.NewDeck("Leetcode", func() int64 { return 1<<30 + 7 })
	d.Add(sampleNote("1", "Two Sum", "array", "hash-table", "google"), sampleNote("70", "Climbing Stairs"))

	path := writePackage(t, d)
	contents, err := apkg.Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	if contents.Media != "{}" {
		t.Fatalf("expected empty media manifest, got %q", contents.Media)
	}
	wantDecks := []apkg.DeckInfo{{ID: 1, Name: "Default"}, {ID: 1<<30 + 7, Name: "Leetcode"}}
	if !reflect.DeepEqual(contents.Decks, wantDecks) {
		t.Fatalf("unexpected decks %+v", contents.Decks)
	}
	if len(contents.Models) != 1 {
		t.Fatalf("expected one model, got %d", len(contents.Models))
	}
	model := contents.Models[0]
	if model.ID != deck.ModelID || model.Name != "Leetcode" {
		t.Fatalf("unexpected model %d/%q", model.ID, model.Name)
	}
	if !reflect.DeepEqual(model.Fields, deck.FieldNames[:]) {
		t.Fatalf("unexpected model fields %v", model.Fields)
	}
	if model.CSS != ".card { color: black; }" || !strings.Contains(model.Back, "{{FrontSide}}") {
		t.Fatalf("templates not carried into model: %+v", model)
	}

	if len(contents.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(contents.Notes))
	}
	first := contents.Notes[0]
	if first.GUID != "1" || first.ModelID != deck.ModelID || first.DeckID != d.ID {
		t.Fatalf("unexpected first note %+v", first)
	}
	if first.Fields[deck.FieldTitle] != "Two Sum" || len(first.Fields) != deck.FieldCount {
		t.Fatalf("unexpected fields %q", first.Fields)
	}
	if !reflect.DeepEqual(first.Tags, []string{"array", "hash-table", "google"}) {
		t.Fatalf("unexpected tags %v", first.Tags)
	}
	// sha1("1") = 356a192b...
	if first.Checksum != 0x356a192b {
		t.Fatalf("unexpected checksum %x", first.Checksum)
	}
	if contents.Notes[1].GUID != "70" || len(contents.Notes[1].Tags) != 0 {
		t.Fatalf("unexpected second note %+v", contents.Notes[1])
	}
}

func TestWriteEmptyDeck(t *testing.T) {
	d := deck.NewDeck("Empty", func() int64 { return 1 << 30 })
	contents, err := apkg.Inspect(context.Background(), writePackage(t, d))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(contents.Notes) != 0 || len(contents.Decks) != 2 {
		t.Fatalf("unexpected contents %+v", contents)
	}
}

func TestWriteReplacesExistingPackage(t *testing.T) {
	d := deck.NewDeck("Leetcode", func() int64 { return 1 << 30 })
	d.Add(sampleNote("1", "Two Sum"))
	path := writePackage(t, d)

	d2 := deck.NewDeck("Leetcode", func() int64 { return 1<<30 + 1 })
	d2.Add(sampleNote("2", "Add Two Numbers"), sampleNote("3", "Longest Substring"))
	w := apkg.NewWriter(logging.NewNop())
	if err := w.Write(context.Background(), path, sampleModel(), d2); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	contents, err := apkg.Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(contents.Notes) != 2 || contents.Notes[0].GUID != "2" {
		t.Fatalf("expected replaced contents, got %+v", contents.Notes)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != filepath.Base(path) && entry.Name() != filepath.Base(path)+".lock" {
			t.Fatalf("unexpected leftover file %s", entry.Name())
		}
	}
}

func TestWriteRejectsFieldCountMismatch(t *testing.T) {
	d := deck.NewDeck("Broken", nil)
	d.Add(deck.Note{Fields: []string{"only one"}, GUID: "5", SortKey: "5"})
	path := filepath.Join(t.TempDir(), "Broken.apkg")
	err := apkg.NewWriter(logging.NewNop()).Write(context.Background(), path, sampleModel(), d)
	if err == nil || !strings.Contains(err.Error(), "expects 11") {
		t.Fatalf("expected field count error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("failed write must not leave a package behind: %v", statErr)
	}
}

func TestWriteFailsWhenLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Leetcode.apkg")
	held := flock.New(path + ".lock")
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	d := deck.NewDeck("Leetcode", nil)
	err = apkg.NewWriter(logging.NewNop()).Write(context.Background(), path, sampleModel(), d)
	if !errors.Is(err, apkg.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestWriteKeepsLockFileBetweenRuns(t *testing.T) {
	d := deck.NewDeck("Leetcode", func() int64 { return 1 << 30 })
	d.Add(sampleNote("1", "Two Sum"))
	path := writePackage(t, d)

	before, err := os.Stat(path + ".lock")
	if err != nil {
		t.Fatalf("lock file must survive a write: %v", err)
	}
	w := apkg.NewWriter(logging.NewNop())
	if err := w.Write(context.Background(), path, sampleModel(), d); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	after, err := os.Stat(path + ".lock")
	if err != nil {
		t.Fatalf("lock file missing after second write: %v", err)
	}
	if !os.SameFile(before, after) {
		t.Fatal("writers must contend on the same lock file, but it was recreated")
	}

	held := flock.New(path + ".lock")
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()
	if err := w.Write(context.Background(), path, sampleModel(), d); !errors.Is(err, apkg.ErrLocked) {
		t.Fatalf("expected ErrLocked on the surviving lock file, got %v", err)
	}
}
