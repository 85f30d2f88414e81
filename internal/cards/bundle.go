package cards

import (
	"os"
	"path/filepath"
	"sort"
)

// Bundle aggregates the surviving work items of one run plus the unique
// sentences that still need synthesis. It is built once, before any
// concurrent dispatch, and never mutated afterwards.
type Bundle struct {
	// Items holds accepted rows in ascending Seq order.
	Items []Item
	// NeedsSynthesis maps a sentence fingerprint to the representative
	// sentence text. The first accepted row for a fingerprint wins the
	// entry; later rows with the same sentence ride on its result.
	NeedsSynthesis map[uint64]string
}

// BuildOptions controls which rows a bundle accepts.
type BuildOptions struct {
	AudioDir string
	AudioExt string
	// SkipExisting drops rows whose derived audio file is already present
	// in AudioDir. Dropped rows produce no output row at all.
	SkipExisting bool
	// fileExists allows tests to stub the on-disk check.
	fileExists func(path string) bool
}

// WithFileExists overrides the on-disk existence check. Test hook.
func (o BuildOptions) WithFileExists(fn func(path string) bool) BuildOptions {
	o.fileExists = fn
	return o
}

// BuildBundle scans parsed rows in source order and keeps each row unless
// its exact row identity was seen before, or skip-existing is set and the
// row's audio file is already on disk. Rejected rows are dropped silently;
// an exact duplicate or a pre-synthesized sentence is nothing to do.
func BuildBundle(rows [][]string, opts BuildOptions) *Bundle {
	exists := opts.fileExists
	if exists == nil {
		exists = func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		}
	}

	bundle := &Bundle{NeedsSynthesis: make(map[uint64]string)}
	seen := make(map[uint64]struct{}, len(rows))
	for seq, fields := range rows {
		item := NewItem(seq, fields, opts.AudioExt)
		if _, dup := seen[item.RowHash]; dup {
			continue
		}
		if opts.SkipExisting && exists(filepath.Join(opts.AudioDir, item.AudioFile)) {
			continue
		}
		seen[item.RowHash] = struct{}{}
		if _, ok := bundle.NeedsSynthesis[item.SentenceHash]; !ok {
			bundle.NeedsSynthesis[item.SentenceHash] = item.Sentence()
		}
		bundle.Items = append(bundle.Items, item)
	}
	return bundle
}

// SentenceKeys returns the fingerprints needing synthesis in ascending
// order, so dispatch and logging are reproducible for a given input.
func (b *Bundle) SentenceKeys() []uint64 {
	keys := make([]uint64, 0, len(b.NeedsSynthesis))
	for key := range b.NeedsSynthesis {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
