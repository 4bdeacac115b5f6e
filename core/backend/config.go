package backend

import "fmt"

// Config holds configuration for reaching (and optionally launching) the
// embedded backend.
type Config struct {
	// Host is the loopback address the backend listens on.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the backend port. Zero means "public port + 1", resolved by
	// the config loader.
	Port int `mapstructure:"port" default:"0"`
	// Managed controls whether the gateway launches the backend artifact
	// itself. When false the gateway only proxies to Host:Port.
	Managed bool `mapstructure:"managed" default:"true"`
	// LibDir overrides the directory containing the lib/<platform> tree.
	// Empty means "next to the gateway executable".
	LibDir string `mapstructure:"lib_dir" default:""`
}

// URL returns the backend base URL for proxying.
func (c Config) URL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// RuntimeConfig holds the options handed to the backend process at startup.
// Field semantics belong to the backend; the gateway only transports them.
type RuntimeConfig struct {
	// JavaURL is the URL of the Java runtime service used by the backend.
	JavaURL string `mapstructure:"java_url" default:"http://127.0.0.1:4566"`
	// WebviewEnabled toggles the backend webview integration.
	WebviewEnabled bool `mapstructure:"webview_enabled" default:"false"`
	// DBPath is the backend SQLite database file.
	DBPath string `mapstructure:"db_path" default:"manatan.sqlite"`
	// MigratePath is an optional legacy database to migrate from.
	MigratePath string `mapstructure:"migrate_path" default:""`
	// DownloadsPath is the downloads directory. Derived from the database
	// directory when empty.
	DownloadsPath string `mapstructure:"downloads_path" default:""`
	// LocalMangaPath is the local manga library directory. Derived when empty.
	LocalMangaPath string `mapstructure:"local_manga_path" default:""`
	// LocalAnimePath is the local anime library directory. Derived when empty.
	LocalAnimePath string `mapstructure:"local_anime_path" default:""`
}

// AidokuConfig holds the backend Aidoku source options.
type AidokuConfig struct {
	// Index is the URL of the Aidoku source index.
	Index string `mapstructure:"index" default:""`
	// Enabled toggles Aidoku source support.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Cache is the Aidoku cache directory. Derived from the database
	// directory when empty.
	Cache string `mapstructure:"cache" default:""`
}

// TrackerConfig holds the backend tracker search options.
type TrackerConfig struct {
	// RemoteSearch toggles remote tracker search.
	RemoteSearch bool `mapstructure:"remote_search" default:"true"`
	// SearchTTLSeconds is the tracker search cache TTL.
	SearchTTLSeconds int64 `mapstructure:"search_ttl_seconds" default:"3600"`
}

// Options bundles everything the backend process needs at launch.
type Options struct {
	Backend Config
	Runtime RuntimeConfig
	Aidoku  AidokuConfig
	Tracker TrackerConfig
}
