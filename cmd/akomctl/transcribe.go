package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/akom-triage-service/internal/adapter/whisper"
	"github.com/couchcryptid/akom-triage-service/internal/config"
	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
)

type transcribeOutput struct {
	Transcript string                `json:"transcript"`
	Analysis   domain.AnalysisResult `json:"analysis"`
}

func newTranscribeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a recorded call with Whisper and analyze it",
		Long: `Transcribe sends the audio file to the OpenAI transcription API
(OPENAI_API_KEY, WHISPER_MODEL) and prints the transcript with its
analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.TranscriptionEnabled() {
				return errors.New("OPENAI_API_KEY is not set")
			}

			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read audio: %w", err)
			}

			t, err := whisper.NewTranscriber(whisper.Config{
				APIKey:  cfg.OpenAIAPIKey,
				Model:   cfg.WhisperModel,
				Timeout: cfg.TranscribeTimeout,
			}, observability.NewMetricsWith(prometheus.NewRegistry()), root.logger(cmd))
			if err != nil {
				return err
			}

			text, err := t.Transcribe(cmd.Context(), audio, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			if text == "" {
				return errors.New("no speech recognized in audio")
			}
			return writeJSON(cmd.OutOrStdout(), transcribeOutput{
				Transcript: text,
				Analysis:   domain.NewAnalyzer().Analyze(text),
			})
		},
	}
}
