// README: Config loader; env vars with defaults, optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgretry "sweetspot/internal/pkg/retry"
)

const (
	ModeStructured = "structured"
	ModeGrounded   = "grounded"
)

type HTTPConfig struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"90s"`
	// PublicURL prefixes share links; empty means relative links.
	PublicURL      string        `env:"PUBLIC_URL"`
}

type GeminiConfig struct {
	APIKey      string  `env:"API_KEY,required,notEmpty"`
	Model       string  `env:"MODEL" envDefault:"gemini-2.5-flash"`
	ImageModel  string  `env:"IMAGE_MODEL" envDefault:"imagen-3.0-generate-002"`
	Mode        string  `env:"MODE" envDefault:"grounded"`
	Temperature float32 `env:"TEMPERATURE" envDefault:"0.7"`
}

type ItineraryConfig struct {
	Count            int    `env:"COUNT" envDefault:"3"`
	Strict           bool   `env:"STRICT" envDefault:"true"`
	ImagesEnabled    bool   `env:"IMAGES_ENABLED" envDefault:"true"`
	ImageConcurrency int    `env:"IMAGE_CONCURRENCY" envDefault:"3"`
	DefaultDays      int    `env:"DEFAULT_DAYS" envDefault:"3"`
	DefaultCurrency  string `env:"DEFAULT_CURRENCY" envDefault:"USD"`
}

type MapsConfig struct {
	APIKey      string        `env:"API_KEY"`
	Region      string        `env:"REGION"`
	WalkingLegs bool          `env:"WALKING_LEGS" envDefault:"true"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"24h"`
}

type RedisConfig struct {
	// Addr enables the shared location cache; empty keeps it in memory.
	Addr string `env:"ADDR"`
}

type Config struct {
	HTTP      HTTPConfig           `envPrefix:"HTTP_"`
	Gemini    GeminiConfig         `envPrefix:"GEMINI_"`
	Itinerary ItineraryConfig      `envPrefix:"ITINERARY_"`
	Maps      MapsConfig           `envPrefix:"MAPS_"`
	Retry     pkgretry.RetryConfig `envPrefix:"RETRY_"`
	Redis     RedisConfig          `envPrefix:"REDIS_"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
	EnableMocks bool   `env:"ENABLE_MOCKS" envDefault:"false"`
}

// Load reads .env (if present) then the environment. A missing GEMINI_API_KEY
// fails here so the process never starts without a credential.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Gemini.Mode != ModeStructured && c.Gemini.Mode != ModeGrounded {
		errs = append(errs, fmt.Errorf("GEMINI_MODE must be %q or %q, got %q", ModeStructured, ModeGrounded, c.Gemini.Mode))
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		errs = append(errs, fmt.Errorf("GEMINI_TEMPERATURE must be between 0 and 2, got %v", c.Gemini.Temperature))
	}
	if c.Itinerary.Count < 1 || c.Itinerary.Count > 10 {
		errs = append(errs, fmt.Errorf("ITINERARY_COUNT must be between 1 and 10, got %d", c.Itinerary.Count))
	}
	if c.Itinerary.ImageConcurrency < 1 {
		errs = append(errs, fmt.Errorf("ITINERARY_IMAGE_CONCURRENCY must be positive, got %d", c.Itinerary.ImageConcurrency))
	}
	if c.Itinerary.DefaultDays < 1 {
		errs = append(errs, fmt.Errorf("ITINERARY_DEFAULT_DAYS must be at least 1, got %d", c.Itinerary.DefaultDays))
	}
	if c.Retry.Attempts < 1 {
		errs = append(errs, fmt.Errorf("RETRY_ATTEMPTS must be at least 1, got %d", c.Retry.Attempts))
	}
	return errors.Join(errs...)
}
