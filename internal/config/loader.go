package config

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

//go:embed defaults/encounters.yaml
var defaultEncountersYAML []byte

// Load reads the flight tuning. Files are decoded over the embedded defaults,
// so a partial file only overrides the keys it names. logger may be nil.
// Search order: customPath -> ~/.pierre/tuning.yaml -> ./configs/tuning.yaml -> embedded default
func Load(customPath string, logger *log.Logger) (Tuning, error) {
	cfg, err := loadDocument(customPath, "tuning.yaml", defaultTuningYAML, Default(), logger)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadEncounters reads the encounter layouts. logger may be nil.
// Search order: customPath -> ~/.pierre/encounters.yaml -> ./configs/encounters.yaml -> embedded default
func LoadEncounters(customPath string, logger *log.Logger) ([]EncounterTemplate, error) {
	f, err := loadDocument(customPath, "encounters.yaml", defaultEncountersYAML, EncounterFile{}, logger)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f.Encounters, nil
}

// Default returns the embedded tuning. It panics only if the embedded file is
// broken, which is a build defect.
func Default() Tuning {
	var cfg Tuning
	if err := yaml.Unmarshal(defaultTuningYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded tuning: %v", err))
	}
	return cfg
}

// DefaultEncounters returns the embedded encounter layouts.
func DefaultEncounters() []EncounterTemplate {
	var f EncounterFile
	if err := yaml.Unmarshal(defaultEncountersYAML, &f); err != nil {
		panic(fmt.Sprintf("config: embedded encounters: %v", err))
	}
	return f.Encounters
}

// loadDocument decodes the first document found along the search order over
// base. A custom path that cannot be read or parsed is an error. The other
// locations are optional: a missing file is skipped quietly, a malformed one
// is skipped with a warning and never partially applied.
func loadDocument[T any](customPath, filename string, embedded []byte, base T, logger *log.Logger) (T, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		out := base
		if err := yaml.Unmarshal(data, &out); err != nil {
			return base, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		logger.Debug("config loaded", "file", filename, "path", customPath)
		return out, nil
	}

	for _, p := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		out := base
		if err := yaml.Unmarshal(data, &out); err != nil {
			logger.Warn("ignoring malformed config file", "path", p, "err", err)
			continue
		}
		logger.Debug("config loaded", "file", filename, "path", p)
		return out, nil
	}

	out := base
	if err := yaml.Unmarshal(embedded, &out); err != nil {
		return base, fmt.Errorf("config: parse embedded %s: %w", filename, err)
	}
	logger.Debug("config loaded", "file", filename, "path", "embedded")
	return out, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pierre", filename)
}
