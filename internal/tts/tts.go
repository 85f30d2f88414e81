package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Engine selects the Polly synthesis engine.
type Engine string

const (
	EngineStandard Engine = "standard"
	EngineNeural   Engine = "neural"
)

// Voice is one selectable synthesis voice from the backend catalog.
type Voice struct {
	ID       string
	Gender   string
	Language string
	Code     string
	Neural   bool
}

// Service is the remote speech backend as the pipeline sees it.
type Service interface {
	// ListVoices returns the voice catalog, optionally restricted to a
	// language code (e.g. "es-ES"). An empty catalog is an error.
	ListVoices(ctx context.Context, languageCode string) ([]Voice, error)
	// Synthesize renders text with the given voice and engine and returns
	// the raw audio payload. An empty payload is an error.
	Synthesize(ctx context.Context, text, voiceID string, engine Engine, format string) ([]byte, error)
}

// ErrVoiceNotFound reports that no catalog voice satisfied the requested ID
// and capability.
var ErrVoiceNotFound = errors.New("voice not found")

// ChooseVoice picks the catalog voice whose ID matches the requested one,
// compared case-insensitively. When neural is set, the matched voice must
// support the neural engine.
func ChooseVoice(voices []Voice, id string, neural bool) (Voice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Voice{}, fmt.Errorf("%w: no voice requested", ErrVoiceNotFound)
	}
	for _, voice := range voices {
		if !strings.EqualFold(voice.ID, id) {
			continue
		}
		if neural && !voice.Neural {
			continue
		}
		return voice, nil
	}
	if neural {
		return Voice{}, fmt.Errorf("%w: %s (with neural engine support)", ErrVoiceNotFound, id)
	}
	return Voice{}, fmt.Errorf("%w: %s", ErrVoiceNotFound, id)
}

// EngineFor returns the engine matching the neural flag.
func EngineFor(neural bool) Engine {
	if neural {
		return EngineNeural
	}
	return EngineStandard
}
