// Package main hosts the leetdeck CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, opens the problem
// store, and hands off to the deck pipeline. Subcommands cover building a
// package, importing and listing problems, inspecting a written package, and
// configuration scaffolding.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
