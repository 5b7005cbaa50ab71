package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = ".chatcomp"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
	// ConfigPathEnv overrides the configuration file location.
	ConfigPathEnv = "CHATCOMP_CONFIG"
	// DotEnvFileName is read from the configuration directory on load.
	DotEnvFileName = ".env"
)

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader handles configuration loading and saving.
type Loader struct {
	configDir  string
	configPath string
}

// NewLoader creates a new configuration loader. CHATCOMP_CONFIG, when
// set, replaces the default ~/.chatcomp/config.yaml.
func NewLoader() (*Loader, error) {
	if path := GetEnvOrDefault(ConfigPathEnv, ""); path != "" {
		return NewLoaderWithPath(path), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ConfigDirName)
	configPath := filepath.Join(configDir, ConfigFileName)

	return &Loader{
		configDir:  configDir,
		configPath: configPath,
	}, nil
}

// NewLoaderWithPath creates a loader with a custom config path.
func NewLoaderWithPath(configPath string) *Loader {
	return &Loader{
		configDir:  filepath.Dir(configPath),
		configPath: configPath,
	}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load reads the configuration file, expands ${VAR} references, applies
// CHATCOMP_* environment overrides and validates the result. Variables
// from a .env file next to the configuration file are visible to both
// steps; the process environment wins over them.
func (l *Loader) Load() (*Config, error) {
	data, err := l.read()
	if err != nil {
		return nil, err
	}

	vars, err := l.environ()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if data != nil {
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data), vars)), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadRaw reads the configuration without expanding environment variables
// or applying overrides.
func (l *Loader) LoadRaw() (*Config, error) {
	data, err := l.read()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if data == nil {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// read returns nil data when the file does not exist.
func (l *Loader) read() ([]byte, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// DotEnvPath returns the path of the optional .env file.
func (l *Loader) DotEnvPath() string {
	return filepath.Join(l.configDir, DotEnvFileName)
}

// environ merges the .env file, if any, under the process environment.
func (l *Loader) environ() (map[string]string, error) {
	vars, err := godotenv.Read(l.DotEnvPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", l.DotEnvPath(), err)
		}
		vars = make(map[string]string)
	}
	for k, v := range env.ToMap(os.Environ()) {
		vars[k] = v
	}
	return vars, nil
}

// Save validates the configuration and writes it to the file.
func (l *Loader) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if the configuration file exists.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// Init creates a default configuration file.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file already exists: %s", l.configPath)
	}
	return l.Save(DefaultConfig())
}

// expandEnvVars replaces ${VAR_NAME} with values from vars.
func expandEnvVars(s string, vars map[string]string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		// Unset variables expand to the empty string
		return vars[varName]
	})
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
