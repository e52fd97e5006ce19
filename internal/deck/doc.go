// Package deck compiles problem records into a flashcard deck.
//
// The pipeline has three stages. The model builder reads the card templates
// and produces the note schema shared by every deck this tool emits; its ID
// is fixed so re-imports update one schema instead of creating duplicates.
// The note compiler turns each problem into an eleven-field note whose GUID
// is the problem's display ID, so re-imports update notes in place. The
// assembler gathers the notes, in display-ID order, under a deck whose ID is
// drawn fresh for every run, and hands the result to a PackageWriter.
//
// Markdown rendering and package serialization are injected so the pipeline
// can be exercised without either backend.
package deck
