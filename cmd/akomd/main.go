package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	httpadapter "github.com/couchcryptid/akom-triage-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/akom-triage-service/internal/adapter/kafka"
	"github.com/couchcryptid/akom-triage-service/internal/adapter/nominatim"
	"github.com/couchcryptid/akom-triage-service/internal/adapter/overpass"
	"github.com/couchcryptid/akom-triage-service/internal/adapter/whisper"
	"github.com/couchcryptid/akom-triage-service/internal/config"
	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
	"github.com/couchcryptid/akom-triage-service/internal/pipeline"
	"github.com/couchcryptid/akom-triage-service/internal/store/csvstore"
	"github.com/couchcryptid/akom-triage-service/internal/store/sqlstore"
	"github.com/couchcryptid/akom-triage-service/internal/triage"
)

// alwaysReady serves readiness when the Kafka pipeline is disabled.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Geocoder and facility lookup are feature-flagged; without them reports
	// fall back to district centroids.
	var geocoder domain.Geocoder
	if cfg.GeocoderEnabled {
		client := nominatim.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.NominatimTimeout, cfg.NominatimRateLimit, metrics, logger)
		geocoder = nominatim.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("nominatim geocoding enabled", "url", cfg.NominatimURL, "cache_size", cfg.GeocodeCacheSize)
	} else {
		logger.Info("nominatim geocoding disabled")
	}

	var locator domain.FacilityLocator
	if cfg.FacilityEnabled {
		client := overpass.NewClient(cfg.OverpassURL, cfg.OverpassTimeout, cfg.FacilityRadiusMeters, metrics, logger)
		locator = overpass.NewCachedLocator(client, cfg.FacilityCacheTTL, metrics)
		logger.Info("facility lookup enabled", "url", cfg.OverpassURL, "radius_m", cfg.FacilityRadiusMeters)
	}

	var transcriber domain.Transcriber
	if cfg.TranscriptionEnabled() {
		t, err := whisper.NewTranscriber(whisper.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.WhisperModel,
			Timeout: cfg.TranscribeTimeout,
		}, metrics, logger)
		if err != nil {
			logger.Error("failed to create transcriber", "error", err)
			os.Exit(1)
		}
		transcriber = t
		logger.Info("audio transcription enabled", "model", cfg.WhisperModel)
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Error("failed to open report store", "driver", cfg.StoreDriver, "path", cfg.StorePath, "error", err)
		os.Exit(1)
	}
	defer st.closer.Close() //nolint:errcheck // best effort on exit
	store := st.reports

	transformer := pipeline.NewTransformer(domain.NewAnalyzer(), geocoder, locator, metrics, logger)
	var opts []triage.Option
	if st.feedback != nil {
		opts = append(opts, triage.WithFeedbackStore(st.feedback))
	}
	service := triage.New(transformer, transcriber, store, metrics, logger, opts...)

	var ready sharedobs.ReadinessChecker = alwaysReady{}
	var closers []io.Closer
	var p *pipeline.Pipeline
	if cfg.PipelineEnabled {
		reader := kafkaadapter.NewReader(cfg, logger)
		writer := kafkaadapter.NewWriter(cfg, logger)
		closers = append(closers, reader, writer)

		var loader pipeline.BatchLoader = writer
		if store != nil {
			loader = pipeline.MultiLoader{writer, pipeline.NewStoreLoader(store, metrics, logger)}
		}
		p = pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)
		ready = p
	} else {
		logger.Info("kafka pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, service, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	if p != nil {
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type stores struct {
	reports  domain.ReportStore
	feedback domain.FeedbackStore
	closer   io.Closer
}

// openStores leaves both stores nil with a no-op closer when STORE_DRIVER
// is none. SQLite keeps feedback in the report database; CSV writes it to
// its own file.
func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreCSV:
		reports, err := csvstore.New(cfg.StorePath)
		if err != nil {
			return stores{}, err
		}
		feedback, err := csvstore.NewFeedbackStore(cfg.FeedbackPath)
		if err != nil {
			return stores{}, err
		}
		return stores{reports: reports, feedback: feedback, closer: nopCloser{}}, nil
	case config.StoreSQLite:
		s, err := sqlstore.Open(ctx, cfg.StorePath)
		if err != nil {
			return stores{}, err
		}
		return stores{reports: s, feedback: s, closer: s}, nil
	default:
		return stores{closer: nopCloser{}}, nil
	}
}
