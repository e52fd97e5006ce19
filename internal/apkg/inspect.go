package apkg

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"

	"leetdeck/internal/fileutil"
)

// DeckInfo describes a deck entry in a package.
type DeckInfo struct {
	ID   int64
	Name string
}

// ModelInfo describes a note model in a package.
type ModelInfo struct {
	ID     int64
	Name   string
	Fields []string
	CSS    string
	Front  string
	Back   string
}

// NoteInfo is a note as stored in a package.
type NoteInfo struct {
	GUID     string
	ModelID  int64
	DeckID   int64
	Fields   []string
	Tags     []string
	Checksum int64
}

// Contents summarizes a package's collection.
type Contents struct {
	Decks  []DeckInfo
	Models []ModelInfo
	Notes  []NoteInfo
	Media  string
}

// Inspect reads back a package written by Writer. Decks are sorted by id;
// notes keep their card due order.
func Inspect(ctx context.Context, path string) (Contents, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Contents{}, fmt.Errorf("open package: %w", err)
	}
	defer zr.Close()

	workDir, err := os.MkdirTemp("", "leetdeck-inspect-")
	if err != nil {
		return Contents{}, fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	var contents Contents
	collectionPath := ""
	for _, file := range zr.File {
		switch file.Name {
		case collectionEntry:
			collectionPath = filepath.Join(workDir, collectionEntry)
			if err := extract(file, collectionPath); err != nil {
				return Contents{}, err
			}
		case mediaEntry:
			data, err := readEntry(file)
			if err != nil {
				return Contents{}, err
			}
			contents.Media = string(data)
		}
	}
	if collectionPath == "" {
		return Contents{}, errors.New("package missing " + collectionEntry)
	}

	db, err := sql.Open("sqlite", collectionPath)
	if err != nil {
		return Contents{}, fmt.Errorf("open collection: %w", err)
	}
	defer db.Close()

	var modelsJSON, decksJSON string
	if err := db.QueryRowContext(ctx, `SELECT models, decks FROM col`).Scan(&modelsJSON, &decksJSON); err != nil {
		return Contents{}, fmt.Errorf("read collection row: %w", err)
	}
	if contents.Models, err = decodeModels(modelsJSON); err != nil {
		return Contents{}, err
	}
	if contents.Decks, err = decodeDecks(decksJSON); err != nil {
		return Contents{}, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT n.guid, n.mid, c.did, n.flds, n.tags, n.csum
		FROM notes n JOIN cards c ON c.nid = n.id
		ORDER BY c.due, n.id`)
	if err != nil {
		return Contents{}, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			note       NoteInfo
			flds, tags string
		)
		if err := rows.Scan(&note.GUID, &note.ModelID, &note.DeckID, &flds, &tags, &note.Checksum); err != nil {
			return Contents{}, fmt.Errorf("scan note: %w", err)
		}
		note.Fields = strings.Split(flds, fieldSeparator)
		note.Tags = strings.Fields(tags)
		contents.Notes = append(contents.Notes, note)
	}
	if err := rows.Err(); err != nil {
		return Contents{}, fmt.Errorf("iterate notes: %w", err)
	}
	return contents, nil
}

func decodeModels(raw string) ([]ModelInfo, error) {
	var models map[string]modelJSON
	if err := json.Unmarshal([]byte(raw), &models); err != nil {
		return nil, fmt.Errorf("decode models: %w", err)
	}
	out := make([]ModelInfo, 0, len(models))
	for _, m := range models {
		id, err := strconv.ParseInt(m.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode model id %q: %w", m.ID, err)
		}
		info := ModelInfo{ID: id, Name: m.Name, CSS: m.CSS}
		for _, f := range m.Flds {
			info.Fields = append(info.Fields, f.Name)
		}
		if len(m.Tmpls) > 0 {
			info.Front = m.Tmpls[0].Qfmt
			info.Back = m.Tmpls[0].Afmt
		}
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b ModelInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func decodeDecks(raw string) ([]DeckInfo, error) {
	var decks map[string]deckJSON
	if err := json.Unmarshal([]byte(raw), &decks); err != nil {
		return nil, fmt.Errorf("decode decks: %w", err)
	}
	out := make([]DeckInfo, 0, len(decks))
	for _, d := range decks {
		out = append(out, DeckInfo{ID: d.ID, Name: d.Name})
	}
	slices.SortFunc(out, func(a, b DeckInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func extract(file *zip.File, dst string) error {
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer rc.Close()
	if err := fileutil.CopyTo(dst, rc); err != nil {
		return fmt.Errorf("extract %s: %w", file.Name, err)
	}
	return nil
}

func readEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}
	return data, nil
}
