package similarity

import "github.com/custodia-labs/relay-cli/internal/core/ports/driven"

// Strategy names.
const (
	StrategyExact = "exact"
	StrategyFold  = "fold"
	StrategyEdit  = "edit"
)

// RegisterDefaults registers all built-in strategies with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(StrategyExact, func(map[string]any) (driven.NameMatcher, error) { return Exact{}, nil })
	r.Register(StrategyFold, func(map[string]any) (driven.NameMatcher, error) { return NewFold(), nil })
	r.Register(StrategyEdit, buildEdit)
}

// DefaultRegistry returns a registry holding the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// buildEdit creates an edit-distance matcher from generic config.
// Supported config keys:
//   - threshold (int): Maximum edit distance (default: 2)
func buildEdit(cfg map[string]any) (driven.NameMatcher, error) {
	threshold := getIntFromConfig(cfg, "threshold")
	if threshold <= 0 {
		threshold = DefaultEditThreshold
	}
	return NewEdit(threshold), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
