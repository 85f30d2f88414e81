package generate

import (
	"errors"
	"path/filepath"
	"testing"

	"parrot/internal/cards"
)

func TestEmitMissingResultIsFatal(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Target:    filepath.Join(dir, "out.csv"),
		AudioDir:  dir,
		AudioExt:  "mp3",
		Delimiter: cards.Comma,
	}

	bundle := cards.BuildBundle([][]string{{"Hello world"}, {"Goodbye"}}, cards.BuildOptions{
		AudioDir: opts.AudioDir,
		AudioExt: "mp3",
	})

	// Drop one result to simulate broken dedup bookkeeping.
	results := map[uint64][]byte{
		bundle.Items[0].SentenceHash: []byte("audio"),
	}

	_, err := emit(bundle, results, opts)
	if !errors.Is(err, ErrMissingResult) {
		t.Fatalf("expected ErrMissingResult, got %v", err)
	}
}

func TestEmitWritesEachFingerprintOnce(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Target:    filepath.Join(dir, "out.csv"),
		AudioDir:  dir,
		AudioExt:  "mp3",
		Delimiter: cards.Comma,
	}

	bundle := cards.BuildBundle([][]string{
		{"Hello world", "tag1"},
		{"Hello world", "tag2"},
	}, cards.BuildOptions{AudioDir: dir, AudioExt: "mp3"})

	results := map[uint64][]byte{
		bundle.Items[0].SentenceHash: []byte("audio"),
	}

	written, err := emit(bundle, results, opts)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if written != 1 {
		t.Fatalf("wrote %d audio files, want 1", written)
	}
}
