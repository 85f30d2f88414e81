// Package cards models flashcard rows on their way through the generation
// pipeline: reading and writing delimited files, deriving per-row work items
// with content fingerprints, and building the deduplicated work bundle that
// the synthesis dispatcher consumes.
package cards
