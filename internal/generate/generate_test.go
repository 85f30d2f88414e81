package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"parrot/internal/cards"
	"parrot/internal/fingerprint"
	"parrot/internal/ledger"
	"parrot/internal/logging"
	"parrot/internal/tts"
)

var testVoices = []tts.Voice{
	{ID: "Joanna", Gender: "Female", Language: "US English", Code: "en-US", Neural: true},
	{ID: "Lucia", Gender: "Female", Language: "Castilian Spanish", Code: "es-ES", Neural: false},
}

func testOptions(t *testing.T, source string) Options {
	t.Helper()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "cards.csv")
	if err := os.WriteFile(sourcePath, []byte(source), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return Options{
		Source:    sourcePath,
		Target:    filepath.Join(dir, "cards_out.csv"),
		AudioDir:  filepath.Join(dir, "audio"),
		Voice:     "Joanna",
		Neural:    true,
		Format:    "mp3",
		AudioExt:  "mp3",
		Delimiter: cards.Comma,
	}
}

func readTarget(t *testing.T, opts Options) [][]string {
	t.Helper()
	file, err := os.Open(opts.Target)
	if err != nil {
		t.Fatalf("open target: %v", err)
	}
	defer file.Close()
	rows, err := cards.ReadRows(file, opts.Delimiter)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	return rows
}

func TestRunDeduplicatesAndEmitsInOrder(t *testing.T) {
	opts := testOptions(t, strings.Join([]string{
		"Hello world,tag1",
		"Hello world,tag2",
		"Goodbye,tag1",
		"Hello world,tag1",
	}, "\n")+"\n")

	svc := &tts.MockService{Voices: testVoices}
	runner := NewRunner(svc, nil, logging.NewNop())

	summary, err := runner.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RowsRead != 4 || summary.RowsEmitted != 3 {
		t.Fatalf("summary rows = %d/%d, want 4/3", summary.RowsRead, summary.RowsEmitted)
	}
	if summary.UniqueSentences != 2 || summary.AudioWritten != 2 {
		t.Fatalf("summary synthesis = %d/%d, want 2/2", summary.UniqueSentences, summary.AudioWritten)
	}
	if calls := svc.Calls(); len(calls) != 2 {
		t.Fatalf("issued %d synthesis calls, want 2: %v", len(calls), calls)
	}

	rows := readTarget(t, opts)
	if len(rows) != 3 {
		t.Fatalf("target has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Hello world" || rows[1][0] != "Hello world" || rows[2][0] != "Goodbye" {
		t.Fatalf("output order broken: %v", rows)
	}
	for i, row := range rows {
		last := row[len(row)-1]
		if !strings.HasPrefix(last, "[sound:parrot_") || !strings.HasSuffix(last, ".mp3]") {
			t.Fatalf("row %d missing sound reference: %v", i, row)
		}
	}
	if rows[0][len(rows[0])-1] != rows[1][len(rows[1])-1] {
		t.Fatalf("rows sharing a sentence must share the audio reference")
	}
	if rows[0][len(rows[0])-1] == rows[2][len(rows[2])-1] {
		t.Fatalf("distinct sentences must not share audio references")
	}

	entries, err := os.ReadDir(opts.AudioDir)
	if err != nil {
		t.Fatalf("read audio dir: %v", err)
	}
	audioFiles := 0
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "parrot_") {
			audioFiles++
		}
	}
	if audioFiles != 2 {
		t.Fatalf("wrote %d audio files, want 2", audioFiles)
	}
}

func TestRunOrderIndependentOfCompletionOrder(t *testing.T) {
	opts := testOptions(t, "zzz last sentence\naaa first sentence\n")

	svc := &tts.MockService{
		Voices: testVoices,
		SynthesizeFunc: func(_ context.Context, text, _ string, _ tts.Engine, _ string) ([]byte, error) {
			// Make the first source row finish last.
			if strings.HasPrefix(text, "zzz") {
				time.Sleep(30 * time.Millisecond)
			}
			return []byte("audio:" + text), nil
		},
	}
	runner := NewRunner(svc, nil, logging.NewNop())
	if _, err := runner.Run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	rows := readTarget(t, opts)
	if rows[0][0] != "zzz last sentence" || rows[1][0] != "aaa first sentence" {
		t.Fatalf("emission must follow source order, got %v", rows)
	}
}

func TestRunSkipExisting(t *testing.T) {
	opts := testOptions(t, "Hello world\nGoodbye\n")
	opts.SkipExisting = true

	if err := os.MkdirAll(opts.AudioDir, 0o755); err != nil {
		t.Fatalf("mk audio dir: %v", err)
	}
	existing := cards.AudioFilename(fingerprint.Sentence([]string{"Hello world"}), "mp3")
	if err := os.WriteFile(filepath.Join(opts.AudioDir, existing), []byte("old"), 0o644); err != nil {
		t.Fatalf("write existing audio: %v", err)
	}

	svc := &tts.MockService{Voices: testVoices}
	runner := NewRunner(svc, nil, logging.NewNop())
	summary, err := runner.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RowsEmitted != 1 {
		t.Fatalf("emitted %d rows, want 1", summary.RowsEmitted)
	}
	if calls := svc.Calls(); len(calls) != 1 || calls[0] != "Goodbye" {
		t.Fatalf("unexpected synthesis calls: %v", calls)
	}
	rows := readTarget(t, opts)
	if len(rows) != 1 || rows[0][0] != "Goodbye" {
		t.Fatalf("skipped row leaked into output: %v", rows)
	}
	// The pre-existing artifact must be untouched.
	data, err := os.ReadFile(filepath.Join(opts.AudioDir, existing))
	if err != nil || string(data) != "old" {
		t.Fatalf("existing audio rewritten: %q %v", data, err)
	}
}

func TestRunAllOrNothing(t *testing.T) {
	opts := testOptions(t, "Hello world\nGoodbye\n")

	boom := errors.New("polly unavailable")
	svc := &tts.MockService{
		Voices: testVoices,
		SynthesizeFunc: func(_ context.Context, text, _ string, _ tts.Engine, _ string) ([]byte, error) {
			if text == "Goodbye" {
				return nil, boom
			}
			return []byte("ok"), nil
		},
	}
	runner := NewRunner(svc, nil, logging.NewNop())
	if _, err := runner.Run(context.Background(), opts); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}

	if _, err := os.Stat(opts.Target); !os.IsNotExist(err) {
		t.Fatalf("target file must not exist after a failed batch")
	}
	entries, _ := os.ReadDir(opts.AudioDir)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "parrot_") {
			t.Fatalf("audio written despite failed batch: %s", entry.Name())
		}
	}
}

func TestRunVoiceNotFound(t *testing.T) {
	opts := testOptions(t, "Hello world\n")
	opts.Voice = "Lucia"
	opts.Neural = true // Lucia is standard-only

	svc := &tts.MockService{Voices: testVoices}
	runner := NewRunner(svc, nil, logging.NewNop())
	if _, err := runner.Run(context.Background(), opts); !errors.Is(err, tts.ErrVoiceNotFound) {
		t.Fatalf("expected ErrVoiceNotFound, got %v", err)
	}
	if len(svc.Calls()) != 0 {
		t.Fatalf("no synthesis may happen before voice selection succeeds")
	}
}

func TestRunRecordsLedger(t *testing.T) {
	opts := testOptions(t, "Hello world\n")
	store, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer store.Close()

	svc := &tts.MockService{Voices: testVoices}
	runner := NewRunner(svc, store, logging.NewNop())
	summary, err := runner.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	runs, err := store.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d ledger entries, want 1", len(runs))
	}
	if runs[0].RunID != summary.RunID || runs[0].Status != ledger.StatusCompleted {
		t.Fatalf("ledger entry mismatch: %+v vs summary %+v", runs[0], summary)
	}
}

func TestRunValidatesOptions(t *testing.T) {
	runner := NewRunner(&tts.MockService{Voices: testVoices}, nil, logging.NewNop())
	opts := testOptions(t, "Hello\n")
	opts.Voice = ""
	if _, err := runner.Run(context.Background(), opts); err == nil {
		t.Fatalf("expected error for missing voice")
	}
}
