package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreNone   = "none"
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	PipelineEnabled  bool
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Nominatim geocoding.
	GeocoderEnabled    bool
	NominatimURL       string
	NominatimUserAgent string
	NominatimTimeout   time.Duration
	NominatimRateLimit float64
	GeocodeCacheSize   int

	// Overpass nearest-facility lookup.
	FacilityEnabled      bool
	OverpassURL          string
	OverpassTimeout      time.Duration
	FacilityRadiusMeters int
	FacilityCacheTTL     time.Duration

	StoreDriver string
	StorePath   string

	// FeedbackPath is the CSV feedback file. SQLite keeps feedback in the
	// report database.
	FeedbackPath string

	OpenAIAPIKey      string
	WhisperModel      string
	TranscribeTimeout time.Duration
}

// TranscriptionEnabled reports whether an OpenAI key is configured.
func (c *Config) TranscriptionEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	nominatimTimeout, err := parseDuration("NOMINATIM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	overpassTimeout, err := parseDuration("OVERPASS_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	facilityTTL, err := parseDuration("FACILITY_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	transcribeTimeout, err := parseDuration("TRANSCRIBE_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	rateLimit, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("NOMINATIM_RATE_LIMIT", "1"), 64)
	if err != nil || rateLimit < 0 {
		return nil, errors.New("invalid NOMINATIM_RATE_LIMIT")
	}

	radius, err := strconv.Atoi(sharedcfg.EnvOrDefault("FACILITY_RADIUS_METERS", "10000"))
	if err != nil || radius <= 0 {
		return nil, errors.New("invalid FACILITY_RADIUS_METERS")
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-emergency-reports"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "triaged-emergency-reports"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "akom-triage"),
		PipelineEnabled:    parseBool("PIPELINE_ENABLED", true),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		GeocoderEnabled:    parseBool("GEOCODER_ENABLED", false),
		NominatimURL:       sharedcfg.EnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "akom-triage-service/1.0"),
		NominatimTimeout:   nominatimTimeout,
		NominatimRateLimit: rateLimit,
		GeocodeCacheSize:   parsePositiveInt("GEOCODE_CACHE_SIZE", 1000),

		FacilityEnabled:      parseBool("FACILITY_ENABLED", false),
		OverpassURL:          sharedcfg.EnvOrDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OverpassTimeout:      overpassTimeout,
		FacilityRadiusMeters: radius,
		FacilityCacheTTL:     facilityTTL,

		StoreDriver:  sharedcfg.EnvOrDefault("STORE_DRIVER", StoreNone),
		StorePath:    os.Getenv("STORE_PATH"),
		FeedbackPath: os.Getenv("FEEDBACK_PATH"),

		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		WhisperModel:      sharedcfg.EnvOrDefault("WHISPER_MODEL", "whisper-1"),
		TranscribeTimeout: transcribeTimeout,
	}

	if cfg.PipelineEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required")
		}
	}

	switch cfg.StoreDriver {
	case StoreNone:
	case StoreCSV, StoreSQLite:
		if cfg.StorePath == "" {
			cfg.StorePath = defaultStorePath(cfg.StoreDriver)
		}
		if cfg.StoreDriver == StoreCSV && cfg.FeedbackPath == "" {
			cfg.FeedbackPath = filepath.Join(filepath.Dir(cfg.StorePath), "feedback.csv")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func defaultStorePath(driver string) string {
	if driver == StoreSQLite {
		return "reports.db"
	}
	return "reports.csv"
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
