package tts

import (
	"context"
	"errors"
	"sync"
)

// MockService is a scripted in-memory Service used by tests and offline
// plumbing. Synthesis calls are recorded so tests can assert on dedup.
type MockService struct {
	Voices []Voice
	// SynthesizeFunc overrides the default canned synthesis when set.
	SynthesizeFunc func(ctx context.Context, text, voiceID string, engine Engine, format string) ([]byte, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockService) ListVoices(_ context.Context, languageCode string) ([]Voice, error) {
	if len(m.Voices) == 0 {
		return nil, errors.New("mock: no voices configured")
	}
	if languageCode == "" {
		return m.Voices, nil
	}
	var filtered []Voice
	for _, voice := range m.Voices {
		if voice.Code == languageCode {
			filtered = append(filtered, voice)
		}
	}
	if len(filtered) == 0 {
		return nil, errors.New("mock: no voices for language " + languageCode)
	}
	return filtered, nil
}

func (m *MockService) Synthesize(ctx context.Context, text, voiceID string, engine Engine, format string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, voiceID, engine, format)
	}
	return []byte("audio:" + text), nil
}

// Calls returns the sentences synthesis was attempted for, in call order.
func (m *MockService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
