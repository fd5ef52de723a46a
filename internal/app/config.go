package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/restaurant-admin/internal/receipt"
)

type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	LogMode       string        `env:"LOG_MODE" envDefault:"development"`
	Env           string        `env:"APP_ENV" envDefault:"development"`
	Version       string        `env:"APP_VERSION" envDefault:"dev"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`

	BackendBaseURL string        `env:"BACKEND_BASE_URL" envDefault:"http://localhost:4000/api"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"admin_session"`
	CookieDomain  string        `env:"SESSION_COOKIE_DOMAIN"`
	CookieSecure  bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_SESSION_PREFIX" envDefault:"admin:session:"`

	DBDriver          string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN             string        `env:"DB_DSN"`
	SnapshotRetention time.Duration `env:"SNAPSHOT_RETENTION" envDefault:"720h"`

	UploadProvider         string        `env:"UPLOAD_PROVIDER" envDefault:"cloudinary"`
	UploadMaxBytes         int64         `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
	CloudinaryCloudName    string        `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryUploadPreset string        `env:"CLOUDINARY_UPLOAD_PRESET"`
	CloudinaryFolder       string        `env:"CLOUDINARY_FOLDER"`
	CloudinaryBaseURL      string        `env:"CLOUDINARY_BASE_URL"`
	UploadTimeout          time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"30s"`
	GCSBucket              string        `env:"UPLOAD_GCS_BUCKET"`
	GCSPrefix              string        `env:"UPLOAD_GCS_PREFIX"`
	GCSPublicBaseURL       string        `env:"UPLOAD_GCS_PUBLIC_BASE_URL"`
	GCSCredentialsJSON     string        `env:"UPLOAD_GCS_CREDENTIALS_JSON"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	MetricsEnabled bool     `env:"METRICS_ENABLED" envDefault:"true"`

	OtelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OtelServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"restaurant-admin"`
	OtelEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelHeaders     string  `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelInsecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	OtelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`

	ConfigFile string `env:"ADMIN_CONFIG_FILE"`

	// File holds what ConfigFile supplied.
	File FileConfig `env:"-"`
}

// FileConfig is the optional YAML admin config.
//
//	receipt:
//	  currency_symbol: "$"
//	  header: "Thank you for dining with us"
//	modules:
//	  menu: "Menu Items"
type FileConfig struct {
	Receipt receipt.Branding  `yaml:"receipt"`
	Modules map[string]string `yaml:"modules"`
}

// LoadConfig reads the environment and then the YAML file it names.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.ConfigFile) != "" {
		fc, err := LoadFileConfig(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		cfg.File = fc
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFileConfig(path string) (FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("read admin config: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("parse admin config %s: %w", path, err)
	}
	return fc, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.BackendBaseURL) == "" {
		return errors.New("BACKEND_BASE_URL is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if strings.TrimSpace(c.SessionCookie) == "" {
		return errors.New("SESSION_COOKIE must not be empty")
	}
	return nil
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
