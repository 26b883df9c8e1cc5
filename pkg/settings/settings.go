// Package settings loads the linter's TOML configuration: accepted template
// tags, the watched namespace, the diagnostic cap, the metadata cache
// location and rule suppression. Suppression is applied by the CLI after
// validation; the pipeline itself never consults it.
package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the config file looked for in the working directory.
const DefaultFile = ".gqlint.toml"

// DefaultMaxDiagnostics bounds one document's output when the config does
// not say otherwise.
const DefaultMaxDiagnostics = 100

// Suppress lists rules the user has muted. All short-circuits everything.
type Suppress struct {
	All   bool     `toml:"all"`
	Rules []string `toml:"rules"`
}

// Settings is the merged configuration for one run.
type Settings struct {
	Tags           []string `toml:"tags"`
	Namespace      string   `toml:"namespace"`
	MaxDiagnostics int      `toml:"max-diagnostics"`
	CacheDir       string   `toml:"cache-dir"`
	Suppress       Suppress `toml:"suppress"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		Tags:           []string{"gql", "graphql"},
		Namespace:      "uiapi",
		MaxDiagnostics: DefaultMaxDiagnostics,
	}
}

// Load reads TOML settings from path. A missing file yields Defaults();
// any other read or parse failure is an error. Fields absent from the file
// keep their default values.
func Load(path string) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if s.MaxDiagnostics <= 0 {
		s.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return s, nil
}

// Suppressed reports whether diagnostics from the given rule are muted.
func (s Settings) Suppressed(ruleID string) bool {
	if s.Suppress.All {
		return true
	}
	for _, id := range s.Suppress.Rules {
		if id == ruleID {
			return true
		}
	}
	return false
}
