package driven

// ConfigStore provides access to application configuration.
// Keys are dot-separated paths into the TOML document, e.g. "resolver.min_gap".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns the string at key, or "" when absent or not a string.
	GetString(key string) string

	// GetInt returns the integer at key, or 0 when absent or not numeric.
	GetInt(key string) int

	// GetFloat returns the number at key, or 0 when absent or not numeric.
	GetFloat(key string) float64

	// GetBool returns the boolean at key, or false when absent.
	GetBool(key string) bool

	// GetStringSlice returns the list at key, or nil when absent.
	GetStringSlice(key string) []string

	// Set stores a value and persists the file.
	Set(key string, value any) error

	// Keys lists every key currently set, sorted.
	Keys() []string

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
