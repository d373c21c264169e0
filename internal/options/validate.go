// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/ramltools/ramlerrors"
)

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources maps each input option name (e.g. "WithFilePath") to whether it was set.
// order lists the option names so the error message is deterministic.
// Returns a *ramlerrors.ConfigError if zero or more than one source is set.
func ValidateSingleInputSource(order []string, sources map[string]bool) error {
	var set []string
	for _, name := range order {
		if sources[name] {
			set = append(set, name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &ramlerrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (one of " + strings.Join(order, ", ") + ")",
		}
	default:
		return &ramlerrors.ConfigError{
			Option:  "input",
			Message: "must specify exactly one input source, got " + strings.Join(set, ", "),
		}
	}
}
