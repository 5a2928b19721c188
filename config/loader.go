package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderConfig holds optional file overrides for LoadConfig.
type LoaderConfig struct {
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct .env file path (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads configuration for a service into the provided cfg struct.
// It searches for config.yml and .env files in standard locations, binds
// environment variables, and unmarshals the result into cfg.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	configFile := lc.ConfigFile
	if configFile == "" {
		configFile = findFirst(
			fmt.Sprintf("./cmd/%s/config.yml", serviceName),
			fmt.Sprintf("../cmd/%s/config.yml", serviceName),
			"./config/config.yml",
			"./config.yml",
		)
	}
	envFile := lc.EnvFile
	if envFile == "" {
		envFile = findFirst(
			fmt.Sprintf(".env.%s", serviceName),
			".env",
		)
	}

	v := viper.New()

	// 1. Load YAML config first (base configuration)
	if configFile != "" && exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}

	// 2. Load .env so subsequent env lookups see it
	if envFile != "" && exists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load .env file %s: %w", envFile, err)
		}
	}

	// 3. Bind environment variables (ROLLUP_BATCH_SIZE -> rollup.batch_size)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	// 4. Unmarshal into config struct. Weak typing lets env-provided
	// strings fill numeric and boolean fields.
	weaklyTyped := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(cfg, weaklyTyped); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}

	return nil
}

func findFirst(paths ...string) string {
	for _, path := range paths {
		if exists(path) {
			return path
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// bindEnvVars maps UPPER_SNAKE environment variables onto nested viper keys
// so FOO_BAR_BAZ can satisfy foo.bar_baz or foo.bar.baz.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}
