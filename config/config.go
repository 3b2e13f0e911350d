package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go-sm808/preset"
	"go-sm808/sequencer"
	"go-sm808/theme"
)

// MIDIConfig selects the drum machine the sequencer triggers
type MIDIConfig struct {
	Port     string `yaml:"port,omitempty"`
	Channel  int    `yaml:"channel"`
	Velocity int    `yaml:"velocity"`
}

// Config is the main configuration structure
type Config struct {
	Tempo         int        `yaml:"tempo"`
	RepeatCount   int        `yaml:"repeatCount"`
	Kit           string     `yaml:"kit"`
	MIDI          MIDIConfig `yaml:"midi"`
	Theme         string     `yaml:"theme"`
	Debug         bool       `yaml:"debug,omitempty"`
	DefaultPreset string     `yaml:"defaultPreset"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tempo:       sequencer.DefaultTempo,
		RepeatCount: sequencer.DefaultRepeatCount,
		Kit:         sequencer.DefaultKit,
		MIDI: MIDIConfig{
			Channel:  10,
			Velocity: 100,
		},
		Theme:         theme.DefaultPalette,
		DefaultPreset: preset.Default,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-sm808"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Missing keys keep their defaults and a
// missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Save writes the config to ConfigPath
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Validate reports the first out of range setting
func (c *Config) Validate() error {
	switch {
	case c.Tempo < sequencer.MinTempo || c.Tempo > sequencer.MaxTempo:
		return errors.Errorf("tempo %d outside %d..%d", c.Tempo, sequencer.MinTempo, sequencer.MaxTempo)
	case c.RepeatCount < 0:
		return errors.Errorf("repeatCount %d is negative", c.RepeatCount)
	case c.MIDI.Channel < 1 || c.MIDI.Channel > 16:
		return errors.Errorf("midi channel %d outside 1..16", c.MIDI.Channel)
	case c.MIDI.Velocity < 1 || c.MIDI.Velocity > 127:
		return errors.Errorf("midi velocity %d outside 1..127", c.MIDI.Velocity)
	}

	if _, ok := sequencer.Kits[c.Kit]; !ok {
		return errors.Errorf("unknown kit %q (have %v)", c.Kit, sequencer.KitNames())
	}
	if !strings.HasSuffix(c.Theme, ".gpl") {
		if _, err := theme.Builtin(c.Theme); err != nil {
			return errors.Wrap(err, "theme")
		}
	}
	if _, err := preset.Load(c.DefaultPreset); err != nil {
		return errors.Wrap(err, "defaultPreset")
	}
	return nil
}
