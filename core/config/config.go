package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"manatan-gateway/core/backend"
	"manatan-gateway/core/logger"
	"manatan-gateway/core/server"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable (MANATAN_PORT,
// MANATAN_BACKEND_HOST, ...).
const envPrefix = "manatan"

// Config holds all configuration for the gateway.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds the public router settings. Squashed so the historical
	// flat variable names (MANATAN_HOST, MANATAN_PORT) keep working.
	Server server.Config `mapstructure:",squash"`
	// Backend holds the loopback backend address and launch mode.
	Backend backend.Config `mapstructure:"backend"`
	// Runtime holds the options passed through to the backend process,
	// also squashed for the flat MANATAN_DB_PATH style names.
	Runtime backend.RuntimeConfig `mapstructure:",squash"`
	// Aidoku holds the backend Aidoku source options.
	Aidoku backend.AidokuConfig `mapstructure:"aidoku"`
	// Tracker holds the backend tracker search options.
	Tracker backend.TrackerConfig `mapstructure:"tracker"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// BackendOptions bundles the backend launch options out of the config.
func (c *Config) BackendOptions() backend.Options {
	return backend.Options{
		Backend: c.Backend,
		Runtime: c.Runtime,
		Aidoku:  c.Aidoku,
		Tracker: c.Tracker,
	}
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists (ignored in production where it doesn't).
	envPath := filepath.Join(path, ".env")
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MANATAN_BACKEND_PORT -> backend.port)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.resolve()
	return &config, nil
}

// resolve fills in the derived defaults that cannot be expressed as static
// struct tags.
func (c *Config) resolve() {
	// Backend port defaults to the public port + 1.
	if c.Backend.Port == 0 {
		c.Backend.Port = c.Server.Port + 1
	}

	// Library directories default to siblings of the database file.
	dbDir := filepath.Dir(c.Runtime.DBPath)
	if c.Runtime.DownloadsPath == "" {
		c.Runtime.DownloadsPath = filepath.Join(dbDir, "downloads")
	}
	if c.Runtime.LocalMangaPath == "" {
		c.Runtime.LocalMangaPath = filepath.Join(dbDir, "local-manga")
	}
	if c.Runtime.LocalAnimePath == "" {
		c.Runtime.LocalAnimePath = filepath.Join(dbDir, "local-anime")
	}
	if c.Aidoku.Cache == "" {
		c.Aidoku.Cache = filepath.Join(dbDir, "aidoku")
	}
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Squashed structs keep their parent's prefix
		if tag == ",squash" {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), prefix)
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
