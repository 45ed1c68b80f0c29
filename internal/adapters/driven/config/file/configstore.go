package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the retriva config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.retriva/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".retriva")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Delete removes a configuration value and persists immediately.
func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	// Flatten nested maps into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"pipeline": {"chunk_size": 500}} becomes {"pipeline.chunk_size": 500}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Settings builds pipeline settings from the stored configuration,
// falling back to the documented defaults for absent keys.
func (s *ConfigStore) Settings() domain.Settings {
	settings := domain.DefaultSettings()

	if v := s.GetString("pipeline.embedding_model"); v != "" {
		settings.EmbeddingModel = v
	}
	if v := s.GetString("pipeline.chat_model"); v != "" {
		settings.ChatModel = v
	}
	if v := s.GetInt("pipeline.dimension"); v > 0 {
		settings.Dimension = v
	}
	if v := s.GetString("pipeline.namespace"); v != "" {
		settings.Namespace = v
	}
	if v := s.GetInt("pipeline.top_k"); v > 0 {
		settings.TopK = v
	}
	if v := s.GetInt("pipeline.chunk_size"); v > 0 {
		settings.ChunkSize = v
	}
	if v, ok := s.Get("pipeline.chunk_overlap"); ok {
		switch n := v.(type) {
		case int64:
			if n >= 0 {
				settings.ChunkOverlap = int(n)
			}
		case int:
			if n >= 0 {
				settings.ChunkOverlap = n
			}
		}
	}
	if v := s.GetInt("pipeline.history_turns"); v > 0 {
		settings.HistoryTurns = v
	}
	if v := s.GetInt("pipeline.provider_timeout_seconds"); v > 0 {
		settings.ProviderTimeout = time.Duration(v) * time.Second
	}
	if v := s.GetInt("pipeline.store_timeout_seconds"); v > 0 {
		settings.StoreTimeout = time.Duration(v) * time.Second
	}
	if v := s.GetInt("pipeline.fetch_timeout_seconds"); v > 0 {
		settings.FetchTimeout = time.Duration(v) * time.Second
	}

	return settings
}
