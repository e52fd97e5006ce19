package deck

import (
	"fmt"
	"os"
)

// ModelID identifies the note schema across every run of the tool.
const ModelID int64 = 1048217874

// Field positions within a note's field vector.
const (
	FieldID = iota
	FieldTitle
	FieldTitleSlug
	FieldDifficulty
	FieldDescription
	FieldTags
	FieldTagSlugs
	FieldCompanyTags
	FieldCompanyTagSlugs
	FieldSolution
	FieldSubmission

	FieldCount
)

// FieldNames lists the model's fields in note order.
var FieldNames = [FieldCount]string{
	FieldID:              "ID",
	FieldTitle:           "Title",
	FieldTitleSlug:       "TitleSlug",
	FieldDifficulty:      "Difficulty",
	FieldDescription:     "Description",
	FieldTags:            "Tags",
	FieldTagSlugs:        "TagSlugs",
	FieldCompanyTags:     "CompanyTags",
	FieldCompanyTagSlugs: "CompanyTagSlugs",
	FieldSolution:        "Solution",
	FieldSubmission:      "Submission",
}

// Template is one card type: front and back markup.
type Template struct {
	Name  string
	Front string
	Back  string
}

// Model is the note schema shared by all notes in a deck.
type Model struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []Template
	CSS       string
}

// TemplateFiles locates the card template sources on disk.
type TemplateFiles struct {
	Front string
	Back  string
	CSS   string
}

// TemplateText holds the loaded template sources.
type TemplateText struct {
	Front string
	Back  string
	CSS   string
}

// LoadTemplates reads the front, back, and CSS files. Any unreadable file is
// an error; a deck cannot be built without its schema.
func LoadTemplates(files TemplateFiles) (TemplateText, error) {
	var text TemplateText
	for _, entry := range []struct {
		label string
		path  string
		dst   *string
	}{
		{"front template", files.Front, &text.Front},
		{"back template", files.Back, &text.Back},
		{"css", files.CSS, &text.CSS},
	} {
		data, err := os.ReadFile(entry.path)
		if err != nil {
			return TemplateText{}, fmt.Errorf("read %s: %w", entry.label, err)
		}
		*entry.dst = string(data)
	}
	return text, nil
}

// BuildModel assembles the note schema under the run's display name.
func BuildModel(name string, text TemplateText) Model {
	fields := make([]string, FieldCount)
	copy(fields, FieldNames[:])
	return Model{
		ID:     ModelID,
		Name:   name,
		Fields: fields,
		Templates: []Template{{
			Name:  name,
			Front: text.Front,
			Back:  text.Back,
		}},
		CSS: text.CSS,
	}
}
