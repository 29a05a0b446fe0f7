package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	expirable "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/erraggy/apiverify/contract"
	"github.com/erraggy/apiverify/internal/options"
	"github.com/erraggy/apiverify/internal/treeio"
)

// treeInput represents the two ways an API tree can be provided to a tool.
// Exactly one of File or Content must be set.
type treeInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a tree document or OpenAPI 3.x document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline tree document or OpenAPI 3.x document (JSON or YAML)"`
}

// treeCacheStore caches decoded trees for the lifetime of the server. File
// inputs are keyed by (absolutePath, modTime) and content inputs by a SHA-256
// hash. Cached trees are shared between calls and must not be mutated.
type treeCacheStore struct {
	lru *expirable.LRU[string, *contract.API]
}

func newTreeCache(maxSize int, ttl time.Duration) *treeCacheStore {
	if maxSize <= 0 {
		maxSize = 16
	}
	return &treeCacheStore{lru: expirable.NewLRU[string, *contract.API](maxSize, nil, ttl)}
}

var treeCache = newTreeCache(cfg.CacheMaxSize, cfg.CacheTTL)

// get returns a cached tree or nil.
func (c *treeCacheStore) get(key string) *contract.API {
	api, ok := c.lru.Get(key)
	if !ok {
		return nil
	}
	return api
}

// put stores a tree, evicting the least recently used entry when full.
func (c *treeCacheStore) put(key string, api *contract.API) {
	c.lru.Add(key, api)
}

// reset clears all cached entries. Used in tests.
func (c *treeCacheStore) reset() {
	c.lru.Purge()
}

func (c *treeCacheStore) size() int {
	return c.lru.Len()
}

// cacheKey returns the cache key for the input, or "" when it cannot be cached.
func (t treeInput) cacheKey() string {
	switch {
	case t.File != "":
		abs, err := filepath.Abs(t.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(abs)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano())
	case t.Content != "":
		h := sha256.Sum256([]byte(t.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve decodes the tree from whichever input was provided, detecting
// OpenAPI documents, and consults the cache.
func (t treeInput) resolve() (*contract.API, error) {
	const sourceMsg = "exactly one of file or content must be provided"
	if err := options.ValidateSingleInputSource(sourceMsg, sourceMsg, t.File != "", t.Content != ""); err != nil {
		return nil, err
	}
	if int64(len(t.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set APIVERIFY_MAX_INLINE_SIZE to increase",
			len(t.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = t.cacheKey()
	}
	if key != "" {
		if api := treeCache.get(key); api != nil {
			return api, nil
		}
	}

	var api *contract.API
	var err error
	if t.File != "" {
		api, err = treeio.Load(t.File)
	} else {
		api, err = treeio.Decode([]byte(t.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		treeCache.put(key, api)
	}
	return api, nil
}
