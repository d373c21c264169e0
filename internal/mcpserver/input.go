package mcpserver

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/erraggy/ramltools/parser"
)

// specInput represents the two ways a RAML document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a RAML file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline RAML document content"`
}

// docKey identifies a document by its source name and bytes.
type docKey [sha256.Size]byte

func keyOf(source string, data []byte) docKey {
	h := sha256.New()
	_, _ = io.WriteString(h, source)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(data)
	var k docKey
	h.Sum(k[:0])
	return k
}

// docCache holds parse results by content hash. A file edited on disk hashes
// differently, so entries never go stale and need no expiry. Once full, the
// earliest stored entry is dropped; lookups do not reorder.
//
// Cached results are shared between tool calls and must not be modified.
type docCache struct {
	mu      sync.Mutex
	limit   int
	results map[docKey]*parser.ParseResult
	order   []docKey
}

func newDocCache(limit int) *docCache {
	return &docCache{limit: limit, results: make(map[docKey]*parser.ParseResult)}
}

var parsed = newDocCache(cfg.CacheMaxSize)

func (c *docCache) lookup(k docKey) (*parser.ParseResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[k]
	return r, ok
}

func (c *docCache) store(k docKey, r *parser.ParseResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.results[k]; ok {
		return
	}
	for len(c.order) > 0 && len(c.order) >= c.limit {
		delete(c.results, c.order[0])
		c.order = c.order[1:]
	}
	c.results[k] = r
	c.order = append(c.order, k)
}

func (c *docCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[docKey]*parser.ParseResult)
	c.order = nil
}

func (c *docCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// load returns the document bytes and the name reported as its source.
func (s specInput) load() (string, []byte, error) {
	if (s.File == "") == (s.Content == "") {
		return "", nil, fmt.Errorf("exactly one of file or content must be provided")
	}
	if s.Content != "" {
		if int64(len(s.Content)) > cfg.MaxInlineSize {
			return "", nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RAMLTOOLS_MAX_INLINE_SIZE to increase",
				len(s.Content), cfg.MaxInlineSize)
		}
		return "inline.raml", []byte(s.Content), nil
	}

	f, err := os.Open(s.File) //nolint:gosec // reading the user-supplied document is the point
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(io.LimitReader(f, parser.DefaultMaxFileSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", s.File, err)
	}
	if int64(len(data)) > parser.DefaultMaxFileSize {
		return "", nil, fmt.Errorf("%s exceeds limit of %d bytes", s.File, parser.DefaultMaxFileSize)
	}
	return s.File, data, nil
}

// resolve parses the document from whichever input was provided. Identical
// documents are parsed once while caching is enabled.
func (s specInput) resolve() (*parser.ParseResult, error) {
	source, data, err := s.load()
	if err != nil {
		return nil, err
	}

	var k docKey
	if cfg.CacheEnabled {
		k = keyOf(source, data)
		if r, ok := parsed.lookup(k); ok {
			return r, nil
		}
	}

	r, err := parser.ParseWithOptions(parser.WithBytes(data), parser.WithSourceName(source))
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		parsed.store(k, r)
	}
	return r, nil
}
