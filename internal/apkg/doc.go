// Package apkg serializes a deck and its note model into an Anki package:
// a zip archive holding a schema-11 SQLite collection (collection.anki2) and
// an empty media manifest.
//
// Writes are atomic. The archive is assembled in a temporary file beside the
// destination and renamed into place, and an advisory lock on
// <path>.lock keeps concurrent builds from interleaving.
package apkg
