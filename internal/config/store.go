package config

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/spf13/viper"
)

// Store is the layered DeployR CLI configuration: environment overrides,
// then the persisted .diconf file, then built-in defaults. Only the file
// layer is ever written back to disk.
type Store struct {
	path     string
	file     *viper.Viper
	env      *viper.Viper
	defaults *viper.Viper
}

func newFileLayer() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	return v
}

func newEnvLayer() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func newDefaultsLayer() *viper.Viper {
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
	return v
}

// New returns an empty store bound to path. Nothing is read from disk.
func New(path string) *Store {
	return &Store{
		path:     path,
		file:     newFileLayer(),
		env:      newEnvLayer(),
		defaults: newDefaultsLayer(),
	}
}

// Load reads the config file at path. A missing or empty file yields an
// empty file layer; a malformed one yields a *errors.ConfigLoadError.
func Load(path string) (*Store, error) {
	s := New(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, &errors.ConfigLoadError{Path: path, Cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	if err := s.file.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, &errors.ConfigLoadError{Path: path, Cause: err}
	}
	return s, nil
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the effective value for key, or nil when unset in every layer.
func (s *Store) Get(key string) interface{} {
	key = strings.ToLower(key)
	if s.env.IsSet(key) {
		return s.env.Get(key)
	}
	if s.file.IsSet(key) {
		return s.file.Get(key)
	}
	return s.defaults.Get(key)
}

// GetString returns the effective value for key as a string.
func (s *Store) GetString(key string) string {
	v := s.Get(key)
	if v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// IsSet reports whether key has a value in any layer.
func (s *Store) IsSet(key string) bool {
	return s.Get(key) != nil
}

// Set stores value in the file layer. Call Save to persist it.
func (s *Store) Set(key string, value interface{}) {
	s.file.Set(strings.ToLower(key), value)
}

// Clear removes key from the file layer. Call Save to persist it.
func (s *Store) Clear(key string) {
	settings := s.file.AllSettings()
	if !deleteNested(settings, splitKey(key)) {
		return
	}

	// viper has no unset, so the file layer is rebuilt without the key.
	file := newFileLayer()
	if err := file.MergeConfigMap(settings); err == nil {
		s.file = file
	}
}

func splitKey(key string) []string {
	return strings.Split(strings.ToLower(key), ".")
}

func deleteNested(m map[string]interface{}, path []string) bool {
	if len(path) == 1 {
		if _, ok := m[path[0]]; !ok {
			return false
		}
		delete(m, path[0])
		return true
	}
	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		return false
	}
	if !deleteNested(child, path[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(m, path[0])
	}
	return true
}

// Settings returns a copy of the file layer, the part that is persisted.
func (s *Store) Settings() map[string]interface{} {
	return s.file.AllSettings()
}

// Keys returns the persisted keys in sorted order.
func (s *Store) Keys() []string {
	keys := s.file.AllKeys()
	sort.Strings(keys)
	return keys
}

// Save writes the file layer to disk atomically with owner-only permissions.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.file.AllSettings(), "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't encode the configuration", "")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory "+dir,
			"Check directory permissions")
	}

	tmp, err := os.CreateTemp(dir, FileName+".*.tmp")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write "+s.path,
			"Check directory permissions")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot write "+s.path, "")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot write "+s.path, "")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot write "+s.path, "")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot replace "+s.path,
			"Check file permissions")
	}
	return nil
}

// IsRestricted reports whether key falls within a restricted key group.
func IsRestricted(key string) bool {
	key = strings.ToLower(key)
	for _, r := range Restricted {
		if key == r || strings.HasPrefix(key, r+".") {
			return true
		}
	}
	return false
}

// Coerce converts a command line value into the type it most likely denotes.
func Coerce(value string) interface{} {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	// NaN and the infinities have no JSON form; they stay text.
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return value
}
