package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/logging"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// FileStore is a Source backed by a YAML or TOML file, chosen by extension.
type FileStore struct {
	path string
	log  *logrus.Entry

	mu      sync.RWMutex
	current *Settings
}

// NewFileStore creates a store for path, or for DefaultPath when path is
// empty. It holds defaults until Load is called.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{
		path:    path,
		log:     logging.NewLogger("settings"),
		current: Default(),
	}
}

// Path returns the settings file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the settings file. A missing file leaves the defaults in place
// and is not an error. A malformed file also leaves defaults in place and
// returns the parse error so the caller can warn about it.
func (f *FileStore) Load() error {
	s, err := f.read()
	if err != nil {
		f.mu.Lock()
		f.current = Default()
		f.mu.Unlock()
		if overlayerrors.Is(err, overlayerrors.ErrCodeSettingsNotFound) {
			f.log.WithField("path", f.path).Debug("No settings file, using defaults")
			return nil
		}
		return err
	}
	f.mu.Lock()
	f.current = s
	f.mu.Unlock()
	f.log.WithField("path", f.path).Debug("Settings loaded")
	return nil
}

// Reload re-reads the settings file. Unlike Load, a malformed file keeps the
// last good settings, so a half-saved edit does not reset the user's config.
func (f *FileStore) Reload() (*Settings, error) {
	s, err := f.read()
	if err != nil {
		if overlayerrors.Is(err, overlayerrors.ErrCodeSettingsNotFound) {
			s = Default()
		} else {
			return nil, err
		}
	}
	f.mu.Lock()
	f.current = s
	f.mu.Unlock()
	return s.Clone(), nil
}

func (f *FileStore) read() (*Settings, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, overlayerrors.SettingsNotFound(f.path)
		}
		return nil, overlayerrors.Wrap(err, overlayerrors.ErrCodeSettingsInvalid, "failed to read settings").
			WithDetail("path", f.path)
	}
	s, err := Decode(f.path, data)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Decode parses settings data in the format implied by the file extension,
// expanding ${VAR} and ${VAR:-default} references first.
func Decode(path string, data []byte) (*Settings, error) {
	expanded := []byte(expandEnvVars(string(data)))
	s := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(expanded, s)
	case ".yml", ".yaml", "":
		err = yaml.Unmarshal(expanded, s)
	default:
		return nil, overlayerrors.SettingsInvalid(fmt.Sprintf("unsupported settings format %q", filepath.Ext(path))).
			WithDetail("path", path)
	}
	if err != nil {
		return nil, overlayerrors.Wrap(err, overlayerrors.ErrCodeSettingsInvalid, "failed to parse settings").
			WithDetail("path", path)
	}

	s.SetDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode serializes settings in the format implied by the file extension.
func Encode(path string, s *Settings) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Marshal(s)
	default:
		return yaml.Marshal(s)
	}
}

func (f *FileStore) Get(ctx context.Context) (*Settings, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current.Clone(), nil
}

// Save validates s and writes it atomically: a temp file in the same
// directory renamed over the target.
func (f *FileStore) Save(ctx context.Context, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := Encode(f.path, s)
	if err != nil {
		return overlayerrors.Wrap(err, overlayerrors.ErrCodeInternal, "failed to encode settings")
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	f.mu.Lock()
	f.current = s.Clone()
	f.mu.Unlock()
	f.log.WithField("path", f.path).Debug("Settings saved")
	return nil
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		varName, defaultValue, _ := strings.Cut(varName, ":-")

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}
