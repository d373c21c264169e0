package config

import (
	"maps"
	"slices"
	"strconv"

	"github.com/erraggy/ramltools/ramlerrors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category names one whitelist.
type Category string

// Whitelist categories consumed by the validator.
const (
	CategoryProtocols  Category = "protocols"
	CategoryMediaTypes Category = "media_types"
	CategoryPrimTypes  Category = "prim_types"
	CategoryRespCodes  Category = "resp_codes"
)

// RequiredCategories lists every category a validation session reads.
var RequiredCategories = []Category{
	CategoryProtocols,
	CategoryMediaTypes,
	CategoryPrimTypes,
	CategoryRespCodes,
}

// Provider exposes whitelists by category.
// Get returns a *ramlerrors.ConfigError when the category is not configured.
type Provider interface {
	Get(category Category) (Set, error)
}

// Set is an immutable set of allowed values.
type Set struct {
	members map[string]struct{}
}

// NewSet builds a Set from values.
func NewSet(values ...string) Set {
	members := make(map[string]struct{}, len(values))
	for _, v := range values {
		members[v] = struct{}{}
	}
	return Set{members: members}
}

// Contains reports whether v is in the set.
func (s Set) Contains(v string) bool {
	_, ok := s.members[v]
	return ok
}

// ContainsInt reports whether the decimal form of v is in the set.
func (s Set) ContainsInt(v int) bool {
	return s.Contains(strconv.Itoa(v))
}

// Len returns the number of values in the set.
func (s Set) Len() int {
	return len(s.members)
}

// Values returns the members in sorted order.
func (s Set) Values() []string {
	return slices.Sorted(maps.Keys(s.members))
}

// Config is an immutable whitelist configuration.
type Config struct {
	sets map[Category]Set
}

// New builds a Config from category values. Protocols are stored upper-cased
// so lookups through NormalizeProtocol are case-insensitive.
// The input map is copied; later changes to it do not affect the Config.
func New(values map[Category][]string) *Config {
	sets := make(map[Category]Set, len(values))
	for category, vals := range values {
		if category == CategoryProtocols {
			normalized := make([]string, len(vals))
			for i, v := range vals {
				normalized[i] = NormalizeProtocol(v)
			}
			vals = normalized
		}
		sets[category] = NewSet(vals...)
	}
	return &Config{sets: sets}
}

// Get implements Provider.
func (c *Config) Get(category Category) (Set, error) {
	if c != nil {
		if set, ok := c.sets[category]; ok {
			return set, nil
		}
	}
	return Set{}, &ramlerrors.ConfigError{
		Option:  string(category),
		Message: "whitelist category is not configured",
	}
}

// Categories returns the configured categories in sorted order.
func (c *Config) Categories() []Category {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.sets))
}

// Values returns a copy of all configured values, keyed by category.
func (c *Config) Values() map[Category][]string {
	if c == nil {
		return nil
	}
	out := make(map[Category][]string, len(c.sets))
	for category, set := range c.sets {
		out[category] = set.Values()
	}
	return out
}

// Require checks that p provides every listed category.
// It returns the error for the first missing category.
func Require(p Provider, categories ...Category) error {
	for _, category := range categories {
		if _, err := p.Get(category); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeProtocol returns the canonical (upper-case) spelling of a protocol.
func NormalizeProtocol(protocol string) string {
	return cases.Upper(language.Und).String(protocol)
}
