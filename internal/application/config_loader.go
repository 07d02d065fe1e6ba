package application

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// ConfigLoader parses, validates, and caches pipeline configurations.
// Identical YAML content is only parsed and validated once; the cache is
// keyed by a SHA-256 hash of the raw bytes.
// WARNING: cached configs are shared. Callers must not mutate the
// returned value; copy it first when a variant is needed.
type ConfigLoader struct {
	// validator performs struct tag validation on loaded configs.
	validator *validator.Validate
	// cache stores validated configs indexed by content hash.
	cache map[string]*PipelineConfig
	// cacheMu guards cache against concurrent loads.
	cacheMu sync.RWMutex
	// sf collapses concurrent loads of identical content into one parse.
	sf singleflight.Group
}

// NewConfigLoader creates a ConfigLoader with an empty cache.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{
		validator: validator.New(),
		cache:     make(map[string]*PipelineConfig),
	}
}

// LoadFromFile loads a pipeline configuration from a YAML file.
func (cl *ConfigLoader) LoadFromFile(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cl.load(data)
}

// LoadFromReader loads a pipeline configuration from YAML content.
func (cl *ConfigLoader) LoadFromReader(r io.Reader) (*PipelineConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cl.load(data)
}

// load parses, defaults, and validates the config, deduplicating work for
// identical content via singleflight and the hash cache.
func (cl *ConfigLoader) load(data []byte) (*PipelineConfig, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if cfg, ok := cl.getCached(hash); ok {
		return cfg, nil
	}

	v, err, _ := cl.sf.Do(hash, func() (any, error) {
		// Re-check inside singleflight to handle the race between the
		// cache read and group execution.
		if cfg, ok := cl.getCached(hash); ok {
			return cfg, nil
		}

		var cfg PipelineConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		cfg.applyDefaults()
		if err := cl.validator.Struct(&cfg); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}

		cl.cacheMu.Lock()
		cl.cache[hash] = &cfg
		cl.cacheMu.Unlock()
		return &cfg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PipelineConfig), nil
}

// getCached returns the cached config for a content hash, if present.
func (cl *ConfigLoader) getCached(hash string) (*PipelineConfig, bool) {
	cl.cacheMu.RLock()
	defer cl.cacheMu.RUnlock()
	cfg, ok := cl.cache[hash]
	return cfg, ok
}
