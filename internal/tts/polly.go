package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// PollyService implements Service against Amazon Polly using the default AWS
// credential chain and region resolution.
type PollyService struct {
	client *polly.Client
}

// NewPollyService builds a Polly-backed service from ambient AWS settings
// (environment, shared config, instance role).
func NewPollyService(ctx context.Context) (*PollyService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &PollyService{client: polly.NewFromConfig(cfg)}, nil
}

// ListVoices fetches the full voice catalog, following pagination.
func (s *PollyService) ListVoices(ctx context.Context, languageCode string) ([]Voice, error) {
	input := &polly.DescribeVoicesInput{
		IncludeAdditionalLanguageCodes: false,
	}
	if code := strings.TrimSpace(languageCode); code != "" {
		input.LanguageCode = pollytypes.LanguageCode(code)
	}

	var voices []Voice
	for {
		out, err := s.client.DescribeVoices(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("describe voices: %w", err)
		}
		for _, v := range out.Voices {
			voices = append(voices, voiceFromPolly(v))
		}
		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	if len(voices) == 0 {
		return nil, errors.New("describe voices: backend returned no voices")
	}
	return voices, nil
}

// Synthesize renders a single sentence and drains the audio stream.
func (s *PollyService) Synthesize(ctx context.Context, text, voiceID string, engine Engine, format string) ([]byte, error) {
	out, err := s.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Engine:       pollytypes.Engine(engine),
		OutputFormat: pollytypes.OutputFormat(format),
		Text:         aws.String(text),
		VoiceId:      pollytypes.VoiceId(voiceID),
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	if out.AudioStream == nil {
		return nil, errors.New("synthesize speech: no audio stream in response")
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}
	return audio, nil
}

func voiceFromPolly(v pollytypes.Voice) Voice {
	neural := false
	for _, engine := range v.SupportedEngines {
		if strings.EqualFold(string(engine), string(EngineNeural)) {
			neural = true
			break
		}
	}
	return Voice{
		ID:       string(v.Id),
		Gender:   string(v.Gender),
		Language: aws.ToString(v.LanguageName),
		Code:     string(v.LanguageCode),
		Neural:   neural,
	}
}
