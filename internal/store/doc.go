// Package store reads and writes problem records in the SQLite database that
// feeds deck compilation.
//
// Problems are always returned ordered by display ID with their tags,
// company tags, and submissions in the order they were recorded. A missing
// solution is reported as ErrNoSolution and surfaces as a nil
// Problem.Solution; every other lookup failure is returned to the caller.
package store
