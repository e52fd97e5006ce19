// Package preflight provides readiness checks for the filesystem paths a
// build depends on: the package output directory, the problem database
// location, and the card template files.
//
// The build command calls RunAll before opening the store. Any failed check
// stops the build before work starts; the config validate command prints
// every result.
package preflight
