// Package config loads the layered YAML + environment configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

// Storage backends selectable at startup. Handlers never branch on these;
// the persistence provider picks one adapter set and everything downstream
// sees only repository interfaces.
const (
	StorageBackendPostgres  = "postgres"
	StorageBackendFirestore = "firestore"
	StorageBackendMemory    = "memory"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		RateLimit RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
	} `json:"http" yaml:"http"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	SMTP *SMTPConfig `json:"smtp" yaml:"smtp"`

	Twilio *TwilioConfig `json:"twilio" yaml:"twilio"`

	// PubSub configuration for booking event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Images configuration for salon image uploads
	Images *ImagesConfig `json:"images" yaml:"images"`

	// Report configuration for the daily owner report
	Report *ReportConfig `json:"report" yaml:"report"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RateLimitConfig is the fixed-window per-IP limit applied to all routes.
type RateLimitConfig struct {
	Enabled  bool          `json:"enabled" yaml:"enabled"`
	Requests int           `json:"requests" yaml:"requests"`
	Window   time.Duration `json:"window" yaml:"window"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Backend is one of postgres | firestore | memory.
	Backend   string           `json:"backend" yaml:"backend"`
	Postgres  *PostgresConfig  `json:"postgres" yaml:"postgres"`
	Firestore *FirestoreConfig `json:"firestore" yaml:"firestore"`
}

// PostgresConfig configures the relational adapter.
type PostgresConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	DBName   string `json:"dbName" yaml:"dbName"`
	SSLMode  string `json:"sslMode" yaml:"sslMode"`
	MaxOpen  int    `json:"maxOpen" yaml:"maxOpen"`
	MaxIdle  int    `json:"maxIdle" yaml:"maxIdle"`
}

// FirestoreConfig configures the document-store adapter.
type FirestoreConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	// UseEmulator redirects the SDK to a local emulator
	// (FIRESTORE_EMULATOR_HOST).
	UseEmulator  bool   `json:"useEmulator" yaml:"useEmulator"`
	EmulatorHost string `json:"emulatorHost" yaml:"emulatorHost"`
}

// SMTPConfig configures the transactional mailer.
type SMTPConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"`
}

// TwilioConfig configures SMS/WhatsApp sending.
type TwilioConfig struct {
	AccountSID     string `json:"accountSid" yaml:"accountSid"`
	AuthToken      string `json:"authToken" yaml:"authToken"`
	FromNumber     string `json:"fromNumber" yaml:"fromNumber"`
	WhatsAppNumber string `json:"whatsappNumber" yaml:"whatsappNumber"`
}

// PubSubConfig defines event publishing configuration.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP, "google" for Google Pub/Sub.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// VerifyPushAuth enables push-request token verification on the worker.
	VerifyPushAuth bool `json:"verifyPushAuth" yaml:"verifyPushAuth"`
}

// ImagesConfig configures the blob bucket for uploaded images.
type ImagesConfig struct {
	// BucketURL is a gocloud.dev bucket URL, e.g. "file:///var/lamsa/images"
	// or "gs://lamsa-images".
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicBaseURL prefixes stored keys to form the served URL.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
}

// ReportConfig configures the cron daily owner report.
type ReportConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// CronSpec in robfig/cron format; defaults to 08:00 daily.
	CronSpec string `json:"cronSpec" yaml:"cronSpec"`
}

// LoadWithEnv loads .yaml files through koanf, then overlays environment
// variables whose names are aligned with the existing YAML key paths.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a path and align each segment with
			// existing YAML keys. Example: STORAGE_POSTGRES_SSLMODE ->
			// storage.postgres.sslMode (not storage.postgres.sslmode).
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the service configuration and applies defaults.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = StorageBackendPostgres
	}
	if cfg.HTTP.RateLimit.Requests == 0 {
		cfg.HTTP.RateLimit.Requests = 100
	}
	if cfg.HTTP.RateLimit.Window == 0 {
		cfg.HTTP.RateLimit.Window = 15 * time.Minute
	}
	if cfg.Report != nil && cfg.Report.CronSpec == "" {
		cfg.Report.CronSpec = "0 8 * * *"
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
