package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"parrot/internal/cards"
)

// ErrMissingResult reports a surviving work item whose sentence fingerprint
// has no synthesis result. The bundle builder guarantees one queued entry
// per needed fingerprint, so hitting this means the dedup bookkeeping broke.
var ErrMissingResult = errors.New("missing synthesis result")

// emit walks the surviving items in source order, writes each unique audio
// payload once, and serializes one output row per item with the sound
// reference appended. Returns the number of audio files written.
func emit(bundle *cards.Bundle, results map[uint64][]byte, opts Options) (int, error) {
	target, err := os.Create(opts.Target)
	if err != nil {
		return 0, fmt.Errorf("create target: %w", err)
	}
	defer target.Close()

	written := make(map[uint64]struct{}, len(results))
	outputRows := make([][]string, 0, len(bundle.Items))
	for _, item := range bundle.Items {
		audio, ok := results[item.SentenceHash]
		if !ok {
			return len(written), fmt.Errorf("%w for fingerprint %d", ErrMissingResult, item.SentenceHash)
		}
		if _, done := written[item.SentenceHash]; !done {
			path := filepath.Join(opts.AudioDir, item.AudioFile)
			if err := os.WriteFile(path, audio, 0o644); err != nil {
				return len(written), fmt.Errorf("write audio %s: %w", path, err)
			}
			written[item.SentenceHash] = struct{}{}
		}
		outputRows = append(outputRows, item.OutputRow())
	}

	if err := cards.WriteRows(target, opts.Delimiter, outputRows); err != nil {
		return len(written), fmt.Errorf("write target %s: %w", opts.Target, err)
	}
	if err := target.Close(); err != nil {
		return len(written), fmt.Errorf("close target: %w", err)
	}
	return len(written), nil
}
