// Package config loads the layered YAML + environment configuration for the
// pipeline stages and the dashboard.
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

const (
	defaultPath = "."
	dateLayout  = "2006-01-02"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// Pipeline holds the shared storage layout the stages coordinate through.
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline"`

	// Generator parameterizes the synthetic data stage.
	Generator GeneratorConfig `json:"generator" yaml:"generator"`

	// Training parameterizes the forecast trainer.
	Training TrainingConfig `json:"training" yaml:"training"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Insight configures the client for the external forecasting/pricing API.
	Insight InsightConfig `json:"insight" yaml:"insight"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PipelineConfig defines where each stage reads and writes its artifacts.
// The relative structure (raw -> processed -> models) is the inter-stage
// contract; the absolute locations are deployment detail.
type PipelineConfig struct {
	RawPath       string `json:"rawPath" yaml:"rawPath"`
	ProcessedPath string `json:"processedPath" yaml:"processedPath"`
	ModelsPath    string `json:"modelsPath" yaml:"modelsPath"`
}

// GeneratorConfig defines counts, window and seed for synthetic data.
type GeneratorConfig struct {
	Customers    int       `json:"customers" yaml:"customers"`
	Products     int       `json:"products" yaml:"products"`
	Transactions int       `json:"transactions" yaml:"transactions"`
	StartDate    time.Time `json:"startDate" yaml:"startDate"`
	EndDate      time.Time `json:"endDate" yaml:"endDate"`
	Seed         int64     `json:"seed" yaml:"seed"`
}

// TrainingConfig defines the forecast horizon and the minimum amount of
// history the trainer accepts before fitting.
type TrainingConfig struct {
	HorizonDays     int `json:"horizonDays" yaml:"horizonDays"`
	MinObservations int `json:"minObservations" yaml:"minObservations"`
}

// InsightConfig defines the external forecasting/pricing API boundary.
type InsightConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Bounds accepted for dashboard forecast requests.
	MinForecastDays int `json:"minForecastDays" yaml:"minForecastDays"`
	MaxForecastDays int `json:"maxForecastDays" yaml:"maxForecastDays"`
}

// LoadWithEnv loads .yaml files through koanf, then overlays environment
// variables whose underscore-separated names align with existing YAML keys.
func LoadWithEnv[T any](name string, configPath ...string) (*T, error) {
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
		candidate := filepath.Join(path, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", name)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", name)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a path aligned with existing YAML keys.
			// Example: INSIGHT_BASEURL -> insight.baseUrl (not insight.baseurl)
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
				mapstructure.StringToTimeHookFunc(dateLayout),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Training.HorizonDays == 0 {
		cfg.Training.HorizonDays = 60
	}
	if cfg.Training.MinObservations == 0 {
		cfg.Training.MinObservations = 14
	}
	if cfg.Insight.MinForecastDays == 0 {
		cfg.Insight.MinForecastDays = 7
	}
	if cfg.Insight.MaxForecastDays == 0 {
		cfg.Insight.MaxForecastDays = 90
	}
	if cfg.Insight.Timeout == 0 {
		cfg.Insight.Timeout = 15 * time.Second
	}
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
