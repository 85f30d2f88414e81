package tts

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"parrot/internal/logging"
)

// BatchRequest carries everything SynthesizeBatch needs for one run.
type BatchRequest struct {
	// Sentences maps a sentence fingerprint to its text. The fingerprint is
	// the correlation key between request and result.
	Sentences map[uint64]string
	Voice     Voice
	Engine    Engine
	Format    string
}

// SynthesizeBatch issues one synthesis call per unique sentence, all started
// concurrently, and waits for every call to settle. The result maps each
// fingerprint to its audio bytes.
//
// Failure is all-or-nothing: the first error cancels the shared context so
// in-flight calls abort, the remaining goroutines bail out before calling
// the backend, and no partial result is returned.
func SynthesizeBatch(ctx context.Context, svc Service, req BatchRequest, logger *slog.Logger) (map[uint64][]byte, error) {
	logger = logging.NewComponentLogger(logger, "tts")
	if len(req.Sentences) == 0 {
		return map[uint64][]byte{}, nil
	}

	keys := make([]uint64, 0, len(req.Sentences))
	for key := range req.Sentences {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	results := make(map[uint64][]byte, len(keys))

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	logger.Debug("dispatching synthesis batch",
		logging.Int("unique_sentences", len(keys)),
		logging.String(logging.FieldVoice, req.Voice.ID),
		logging.String("engine", string(req.Engine)),
	)

	for _, key := range keys {
		wg.Add(1)
		go func(key uint64, sentence string) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			audio, err := svc.Synthesize(ctx, sentence, req.Voice.ID, req.Engine, req.Format)
			if err != nil {
				fail(fmt.Errorf("synthesize %d: %w", key, err))
				return
			}
			if len(audio) == 0 {
				fail(fmt.Errorf("synthesize %d: backend returned no audio", key))
				return
			}
			mu.Lock()
			results[key] = audio
			mu.Unlock()
			logger.Debug("sentence synthesized",
				logging.Uint64(logging.FieldFingerprint, key),
				logging.Int("audio_bytes", len(audio)),
			)
		}(key, req.Sentences[key])
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	logger.Debug("synthesis batch complete", logging.Int("results", len(results)))
	return results, nil
}
