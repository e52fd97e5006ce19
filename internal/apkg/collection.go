package apkg

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"leetdeck/internal/deck"
)

const (
	defaultDeckID   = 1
	defaultConfID   = 1
	schemaVersion   = 11
	fieldSeparator  = "\x1f"
	defaultFont     = "Liberation Sans"
	defaultFontSize = 20
	latexPre        = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"
	latexPost       = "\\end{document}"
)

type modelField struct {
	Font   string   `json:"font"`
	Media  []string `json:"media"`
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	RTL    bool     `json:"rtl"`
	Size   int      `json:"size"`
	Sticky bool     `json:"sticky"`
}

type modelTemplate struct {
	Afmt  string `json:"afmt"`
	Bafmt string `json:"bafmt"`
	Bqfmt string `json:"bqfmt"`
	Did   *int64 `json:"did"`
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
}

type modelJSON struct {
	CSS       string          `json:"css"`
	Did       int64           `json:"did"`
	Flds      []modelField    `json:"flds"`
	ID        string          `json:"id"`
	LatexPost string          `json:"latexPost"`
	LatexPre  string          `json:"latexPre"`
	Mod       int64           `json:"mod"`
	Name      string          `json:"name"`
	Req       [][]any         `json:"req"`
	Sortf     int             `json:"sortf"`
	Tags      []string        `json:"tags"`
	Tmpls     []modelTemplate `json:"tmpls"`
	Type      int             `json:"type"`
	Usn       int             `json:"usn"`
	Vers      []any           `json:"vers"`
}

type deckJSON struct {
	Collapsed bool   `json:"collapsed"`
	Conf      int    `json:"conf"`
	Desc      string `json:"desc"`
	Dyn       int    `json:"dyn"`
	ExtendNew []int  `json:"extendNew"`
	ExtendRev []int  `json:"extendRev"`
	ID        int64  `json:"id"`
	LrnToday  []int  `json:"lrnToday"`
	Mod       int64  `json:"mod"`
	Name      string `json:"name"`
	NewToday  []int  `json:"newToday"`
	RevToday  []int  `json:"revToday"`
	TimeToday []int  `json:"timeToday"`
	Usn       int    `json:"usn"`
}

type collectionJSON struct {
	Conf   string
	Models string
	Decks  string
	Dconf  string
}

// fieldRef matches a {{...}} reference in a card template.
var fieldRef = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// requiredFields lists the field ordinals referenced by a front template. A
// card is generated when any of them is non-empty.
func requiredFields(front string, fields []string) []int {
	index := make(map[string]int, len(fields))
	for i, name := range fields {
		index[name] = i
	}
	var ords []int
	for _, match := range fieldRef.FindAllStringSubmatch(front, -1) {
		name := strings.TrimSpace(strings.TrimLeft(match[1], "#^/"))
		if i := strings.LastIndex(name, ":"); i >= 0 {
			name = name[i+1:]
		}
		if ord, ok := index[name]; ok && !slices.Contains(ords, ord) {
			ords = append(ords, ord)
		}
	}
	if len(ords) == 0 {
		ords = []int{0}
	}
	slices.Sort(ords)
	return ords
}

func buildModelJSON(model deck.Model, deckID, mod int64) modelJSON {
	flds := make([]modelField, len(model.Fields))
	for i, name := range model.Fields {
		flds[i] = modelField{
			Font:  defaultFont,
			Media: []string{},
			Name:  name,
			Ord:   i,
			Size:  defaultFontSize,
		}
	}
	tmpls := make([]modelTemplate, len(model.Templates))
	req := make([][]any, len(model.Templates))
	for i, tmpl := range model.Templates {
		tmpls[i] = modelTemplate{
			Afmt: tmpl.Back,
			Name: tmpl.Name,
			Ord:  i,
			Qfmt: tmpl.Front,
		}
		req[i] = []any{i, "any", requiredFields(tmpl.Front, model.Fields)}
	}
	return modelJSON{
		CSS:       model.CSS,
		Did:       deckID,
		Flds:      flds,
		ID:        strconv.FormatInt(model.ID, 10),
		LatexPost: latexPost,
		LatexPre:  latexPre,
		Mod:       mod,
		Name:      model.Name,
		Req:       req,
		Sortf:     0,
		Tags:      []string{},
		Tmpls:     tmpls,
		Type:      0,
		Usn:       -1,
		Vers:      []any{},
	}
}

func newDeckJSON(id int64, name string, mod int64) deckJSON {
	return deckJSON{
		Conf:      defaultConfID,
		ExtendNew: []int{0, 0},
		ExtendRev: []int{50, 0},
		ID:        id,
		LrnToday:  []int{0, 0},
		Mod:       mod,
		Name:      name,
		NewToday:  []int{0, 0},
		RevToday:  []int{0, 0},
		TimeToday: []int{0, 0},
		Usn:       -1,
	}
}

func defaultDeckConf() map[string]any {
	return map[string]any{
		"autoplay": true,
		"dyn":      false,
		"id":       defaultConfID,
		"lapse": map[string]any{
			"delays":      []float64{10},
			"leechAction": 0,
			"leechFails":  8,
			"minInt":      1,
			"mult":        0,
		},
		"maxTaken": 60,
		"mod":      0,
		"name":     "Default",
		"new": map[string]any{
			"bury":          true,
			"delays":        []float64{1, 10},
			"initialFactor": 2500,
			"ints":          []int{1, 4, 7},
			"order":         1,
			"perDay":        20,
			"separate":      true,
		},
		"replayq": true,
		"rev": map[string]any{
			"bury":     true,
			"ease4":    1.3,
			"fuzz":     0.05,
			"ivlFct":   1,
			"maxIvl":   36500,
			"minSpace": 1,
			"perDay":   100,
		},
		"timer": 0,
		"usn":   0,
	}
}

// buildCollection renders the JSON columns of the single col row.
func buildCollection(model deck.Model, d *deck.Deck, mod int64) (collectionJSON, error) {
	conf := map[string]any{
		"activeDecks":   []int64{defaultDeckID},
		"addToCur":      true,
		"collapseTime":  1200,
		"curDeck":       defaultDeckID,
		"curModel":      strconv.FormatInt(model.ID, 10),
		"dueCounts":     true,
		"estTimes":      true,
		"newBury":       true,
		"newSpread":     0,
		"nextPos":       len(d.Notes) + 1,
		"sortBackwards": false,
		"sortType":      "noteFld",
		"timeLim":       0,
	}
	models := map[string]modelJSON{
		strconv.FormatInt(model.ID, 10): buildModelJSON(model, d.ID, mod),
	}
	decks := map[string]deckJSON{
		strconv.Itoa(defaultDeckID): newDeckJSON(defaultDeckID, "Default", 0),
		strconv.FormatInt(d.ID, 10):  newDeckJSON(d.ID, d.Name, mod),
	}
	dconf := map[string]any{
		strconv.Itoa(defaultConfID): defaultDeckConf(),
	}

	var out collectionJSON
	for _, entry := range []struct {
		label string
		value any
		dst   *string
	}{
		{"conf", conf, &out.Conf},
		{"models", models, &out.Models},
		{"decks", decks, &out.Decks},
		{"dconf", dconf, &out.Dconf},
	} {
		data, err := json.Marshal(entry.value)
		if err != nil {
			return collectionJSON{}, fmt.Errorf("encode %s: %w", entry.label, err)
		}
		*entry.dst = string(data)
	}
	return out, nil
}
