// Package main hosts the parrot CLI entrypoint and command graph.
//
// The Cobra-based command tree covers card generation, voice catalog
// listing, run history, and configuration scaffolding. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience; the pipeline itself lives in the internal
// packages.
package main
