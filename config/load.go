package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/erraggy/ramltools/ramlerrors"
	"go.yaml.in/yaml/v4"
)

// fileConfig mirrors the YAML whitelist file. Pointers distinguish an
// omitted category from an explicitly empty one.
type fileConfig struct {
	InheritDefaults bool      `yaml:"inherit_defaults"`
	Protocols       *[]string `yaml:"protocols"`
	MediaTypes      *[]string `yaml:"media_types"`
	PrimTypes       *[]string `yaml:"prim_types"`
	RespCodes       *[]int    `yaml:"resp_codes"`
}

// Load reads a YAML whitelist file from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return nil, &ramlerrors.ConfigError{
			Option:  "config file",
			Value:   path,
			Message: "failed to read configuration file",
			Cause:   err,
		}
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML whitelist document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ramlerrors.ConfigError{
			Option:  "config file",
			Message: "failed to parse whitelist YAML",
			Cause:   err,
		}
	}

	values := make(map[Category][]string)
	if fc.InheritDefaults {
		values = defaultValues()
	}

	merge := func(category Category, vals *[]string) {
		if vals == nil {
			return
		}
		values[category] = append(values[category], *vals...)
	}
	merge(CategoryProtocols, fc.Protocols)
	merge(CategoryMediaTypes, fc.MediaTypes)
	merge(CategoryPrimTypes, fc.PrimTypes)

	if fc.RespCodes != nil {
		codes := make([]string, 0, len(*fc.RespCodes))
		for _, code := range *fc.RespCodes {
			if code < 100 || code > 599 {
				return nil, &ramlerrors.ConfigError{
					Option:  string(CategoryRespCodes),
					Value:   code,
					Message: "response codes must be between 100 and 599",
				}
			}
			codes = append(codes, strconv.Itoa(code))
		}
		values[CategoryRespCodes] = append(values[CategoryRespCodes], codes...)
	}

	return New(values), nil
}
