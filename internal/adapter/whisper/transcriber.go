package whisper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/couchcryptid/akom-triage-service/internal/observability"
)

// ErrEmptyAudio is returned when there is no audio to transcribe.
var ErrEmptyAudio = errors.New("audio is empty")

// DefaultModel is the OpenAI speech-to-text model.
const DefaultModel = openai.Whisper1

// domainPrompt primes the model with the vocabulary of Istanbul disaster
// reports.
const domainPrompt = "Bu bir afet ihbarıdır. İstanbul'dan acil durum bildirimi. " +
	"Deprem, sel baskını, yangın, trafik kazası, gaz kaçağı, heyelan. " +
	"Avcılar, Kadıköy, Beşiktaş, Esenyurt, Sarıyer, Bakırköy gibi ilçeler. " +
	"Mahalle, cadde, sokak isimleri içerebilir."

// Config holds the transcriber settings.
type Config struct {
	APIKey  string
	BaseURL string // optional, for OpenAI-compatible servers
	Model   string
	Timeout time.Duration
}

// Transcriber implements domain.Transcriber with the OpenAI audio API.
type Transcriber struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewTranscriber creates a Whisper transcriber.
func NewTranscriber(cfg Config, metrics *observability.Metrics, logger *slog.Logger) (*Transcriber, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Transcriber{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: cfg.Timeout,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Transcribe converts Turkish speech to text. An empty string with a nil
// error means no speech was recognized.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}
	if filename == "" {
		filename = "report.wav"
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       t.model,
		FilePath:    filepath.Base(filename),
		Reader:      bytes.NewReader(audio),
		Prompt:      domainPrompt,
		Temperature: 0,
		Language:    "tr",
	})
	t.metrics.TranscribeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		t.metrics.TranscribeRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("transcribe %s: %w", filename, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		t.metrics.TranscribeRequests.WithLabelValues("empty").Inc()
		return "", nil
	}
	t.metrics.TranscribeRequests.WithLabelValues("success").Inc()
	t.logger.Debug("transcribed audio", "file", filename, "bytes", len(audio), "chars", len(text))
	return text, nil
}
