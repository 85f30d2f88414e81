package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"parrot/internal/cards"
	"parrot/internal/ledger"
	"parrot/internal/logging"
	"parrot/internal/tts"
)

// lockFile guards the audio directory against concurrent generate runs,
// which would interleave writes to the same fingerprint-named files.
const lockFile = ".parrot.lock"

// Options describes one generate run.
type Options struct {
	Source   string
	Target   string
	AudioDir string
	Voice    string
	Neural   bool
	// Format is the audio output format (mp3, ogg_vorbis, pcm); it also
	// determines the artifact file extension.
	Format    string
	AudioExt  string
	Delimiter cards.Delimiter
	// SkipExisting drops rows whose audio artifact already exists on disk.
	SkipExisting bool
}

// Summary reports what a completed run did.
type Summary struct {
	RunID           string
	RowsRead        int
	RowsEmitted     int
	UniqueSentences int
	AudioWritten    int
	Voice           tts.Voice
	Duration        time.Duration
}

// Runner owns the collaborators a generate run needs. The ledger is
// optional; a nil store disables run-history recording.
type Runner struct {
	svc    tts.Service
	store  *ledger.Store
	logger *slog.Logger
}

// NewRunner wires a runner from its collaborators.
func NewRunner(svc tts.Service, store *ledger.Store, logger *slog.Logger) *Runner {
	return &Runner{
		svc:    svc,
		store:  store,
		logger: logging.NewComponentLogger(logger, "generate"),
	}
}

// Run executes the full pipeline and records the outcome in the ledger.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))
	started := time.Now()

	summary, err := r.run(ctx, opts, logger)
	duration := time.Since(started)
	if summary != nil {
		summary.RunID = runID
	}

	r.record(ctx, opts, runID, started, duration, summary, err)
	if err != nil {
		return nil, err
	}
	summary.Duration = duration
	return summary, nil
}

func (r *Runner) run(ctx context.Context, opts Options, logger *slog.Logger) (*Summary, error) {
	if err := os.MkdirAll(opts.AudioDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio directory: %w", err)
	}

	lock := flock.New(filepath.Join(opts.AudioDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire audio directory lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("audio directory %s is in use by another parrot run", opts.AudioDir)
	}
	defer func() { _ = lock.Unlock() }()

	source, err := os.Open(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	rows, err := cards.ReadRows(source, opts.Delimiter)
	source.Close()
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", opts.Source, err)
	}

	bundle := cards.BuildBundle(rows, cards.BuildOptions{
		AudioDir:     opts.AudioDir,
		AudioExt:     opts.AudioExt,
		SkipExisting: opts.SkipExisting,
	})
	logger.Info("bundle built",
		logging.Int("rows_read", len(rows)),
		logging.Int("rows_accepted", len(bundle.Items)),
		logging.Int("unique_sentences", len(bundle.NeedsSynthesis)),
	)

	voices, err := r.svc.ListVoices(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	voice, err := tts.ChooseVoice(voices, opts.Voice, opts.Neural)
	if err != nil {
		return nil, err
	}
	engine := tts.EngineFor(opts.Neural)
	logger.Info("voice selected",
		logging.String(logging.FieldVoice, voice.ID),
		logging.String("language", voice.Code),
		logging.String("engine", string(engine)),
	)

	results, err := tts.SynthesizeBatch(ctx, r.svc, tts.BatchRequest{
		Sentences: bundle.NeedsSynthesis,
		Voice:     voice,
		Engine:    engine,
		Format:    opts.Format,
	}, logger)
	if err != nil {
		return nil, err
	}

	written, err := emit(bundle, results, opts)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RowsRead:        len(rows),
		RowsEmitted:     len(bundle.Items),
		UniqueSentences: len(bundle.NeedsSynthesis),
		AudioWritten:    written,
		Voice:           voice,
	}
	logger.Info("run complete",
		logging.Int("rows_emitted", summary.RowsEmitted),
		logging.Int("audio_written", summary.AudioWritten),
	)
	return summary, nil
}

func (r *Runner) record(ctx context.Context, opts Options, runID string, started time.Time, duration time.Duration, summary *Summary, runErr error) {
	if r.store == nil {
		return
	}
	run := ledger.Run{
		RunID:     runID,
		StartedAt: started,
		Duration:  duration,
		Source:    opts.Source,
		Target:    opts.Target,
		Voice:     opts.Voice,
		Engine:    string(tts.EngineFor(opts.Neural)),
		Status:    ledger.StatusCompleted,
	}
	if summary != nil {
		run.RowsRead = summary.RowsRead
		run.RowsEmitted = summary.RowsEmitted
		run.UniqueSentences = summary.UniqueSentences
	}
	if runErr != nil {
		run.Status = ledger.StatusFailed
		run.Error = runErr.Error()
	}
	if err := r.store.Record(ctx, run); err != nil {
		r.logger.Warn("failed to record run in ledger", logging.Error(err))
	}
}

func validateOptions(opts Options) error {
	if strings.TrimSpace(opts.Source) == "" {
		return errors.New("source file is required")
	}
	if strings.TrimSpace(opts.Target) == "" {
		return errors.New("target file is required")
	}
	if strings.TrimSpace(opts.AudioDir) == "" {
		return errors.New("audio directory is required")
	}
	if strings.TrimSpace(opts.Voice) == "" {
		return errors.New("a voice must be specified (flag --voice or config audio.voice)")
	}
	return nil
}
