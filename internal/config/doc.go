// Package config loads and validates parrot's TOML configuration.
//
// Configuration lives at ~/.config/parrot/config.toml (or a parrot.toml in
// the working directory) and supplies the defaults the CLI flags fall back
// to: audio output directory, voice and engine selection, delimiter mode,
// and logging/ledger settings. Load expands ~ in all path fields and rejects
// unusable values up front so the pipeline never sees a half-valid config.
package config
