package apkg

import (
	"context"
	"crypto/sha1"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/klauspost/compress/zip"
	_ "modernc.org/sqlite"

	"leetdeck/internal/deck"
	"leetdeck/internal/fileutil"
	"leetdeck/internal/logging"
	"leetdeck/internal/textutil"
)

//go:embed schema.sql
var schemaSQL string

const (
	collectionEntry = "collection.anki2"
	mediaEntry      = "media"
)

// ErrLocked indicates another build holds the package lock.
var ErrLocked = errors.New("package is being written by another process")

// Option customizes a Writer.
type Option func(*Writer)

// WithClock overrides the timestamp source used for ids and mod times.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// Writer produces .apkg files.
type Writer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewWriter constructs a package writer.
func NewWriter(logger *slog.Logger, opts ...Option) *Writer {
	w := &Writer{
		logger: logging.NewComponentLogger(logger, "apkg"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write serializes model and d to path, replacing any existing file.
func (w *Writer) Write(ctx context.Context, path string, model deck.Model, d *deck.Deck) error {
	if d == nil {
		return errors.New("write package: nil deck")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// The lock file is never removed so every writer contends on one inode.
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire package lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(w.logger, "failed to release package lock", "lock_release_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "stale lock file may block the next build"),
			)
		}
	}()

	workDir, err := os.MkdirTemp("", "leetdeck-apkg-")
	if err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	collectionPath := filepath.Join(workDir, collectionEntry)
	if err := w.writeCollection(ctx, collectionPath, model, d); err != nil {
		return err
	}

	if err := fileutil.WriteAtomic(path, 0o644, func(dst io.Writer) error {
		return writeArchive(dst, collectionPath)
	}); err != nil {
		return fmt.Errorf("write package: %w", err)
	}

	w.logger.Debug("package written",
		logging.String("path", path),
		logging.Int64(logging.FieldDeckID, d.ID),
		logging.Int("notes", len(d.Notes)),
	)
	return nil
}

func (w *Writer) writeCollection(ctx context.Context, path string, model deck.Model, d *deck.Deck) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open collection: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create collection schema: %w", err)
	}

	now := w.now()
	modMillis := now.UnixMilli()
	modSeconds := now.Unix()
	col, err := buildCollection(model, d, modSeconds)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin collection tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, ?, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		dayStart(now), modMillis, modMillis, schemaVersion,
		col.Conf, col.Models, col.Decks, col.Dconf,
	); err != nil {
		return fmt.Errorf("insert collection row: %w", err)
	}

	noteStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		 VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`)
	if err != nil {
		return fmt.Errorf("prepare note insert: %w", err)
	}
	defer noteStmt.Close()
	cardStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
		 VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return fmt.Errorf("prepare card insert: %w", err)
	}
	defer cardStmt.Close()

	for i, note := range d.Notes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(note.Fields) != len(model.Fields) {
			return fmt.Errorf("note %s has %d fields, model %q expects %d", note.GUID, len(note.Fields), model.Name, len(model.Fields))
		}
		id := modMillis + int64(i)
		if _, err := noteStmt.ExecContext(ctx,
			id, note.GUID, model.ID, modSeconds,
			formatTags(note.Tags),
			strings.Join(note.Fields, fieldSeparator),
			note.SortKey,
			checksum(note.SortKey),
		); err != nil {
			return fmt.Errorf("insert note %s: %w", note.GUID, err)
		}
		if _, err := cardStmt.ExecContext(ctx, id, id, d.ID, modSeconds, i); err != nil {
			return fmt.Errorf("insert card for note %s: %w", note.GUID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit collection: %w", err)
	}
	return nil
}

func writeArchive(dst io.Writer, collectionPath string) error {
	zw := zip.NewWriter(dst)

	src, err := os.Open(collectionPath)
	if err != nil {
		return fmt.Errorf("open collection: %w", err)
	}
	defer src.Close()

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: collectionEntry, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("add %s: %w", collectionEntry, err)
	}
	if _, err := io.Copy(entry, src); err != nil {
		return fmt.Errorf("compress %s: %w", collectionEntry, err)
	}

	media, err := zw.Create(mediaEntry)
	if err != nil {
		return fmt.Errorf("add %s: %w", mediaEntry, err)
	}
	if _, err := io.WriteString(media, "{}"); err != nil {
		return fmt.Errorf("write %s: %w", mediaEntry, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

// checksum is the first 32 bits of the SHA-1 of the markup-free sort field.
func checksum(sortField string) int64 {
	sum := sha1.Sum([]byte(textutil.StripHTML(sortField)))
	value, _ := strconv.ParseInt(hex.EncodeToString(sum[:4]), 16, 64)
	return value
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

func dayStart(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Unix()
}
