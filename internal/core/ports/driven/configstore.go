package driven

// ConfigStore holds flat, dotted configuration keys such as "ingest.profile".
// Typed getters return the zero value for a missing key or a value of the
// wrong type, so callers apply their own defaults.
type ConfigStore interface {
	GetString(key string) string
	GetInt(key string) int
	GetStringSlice(key string) []string

	// Set stores a value. Persistent stores write it through immediately.
	Set(key string, value any) error

	// Save flushes the whole configuration.
	Save() error

	// Path names where the configuration lives, for display.
	Path() string
}
