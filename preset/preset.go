// Package preset holds the built-in songs.
package preset

import (
	_ "embed"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go-sm808/sequencer"
)

// Default is played by a bare "preset" command
const Default = "animal-rights"

var ErrUnknownPreset = errors.New("unknown preset")

//go:embed presets.yaml
var presetsYAML []byte

// VoiceSpec is a voice as written in a preset file
type VoiceSpec struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Audio   string `yaml:"audio,omitempty"`
}

// Preset is a named, ready-to-play song
type Preset struct {
	Name   string      `yaml:"name"`
	Title  string      `yaml:"title"`
	Tempo  int         `yaml:"tempo"`
	Voices []VoiceSpec `yaml:"voices"`
}

// Song builds a fresh song from the preset
func (p Preset) Song() (*sequencer.Song, error) {
	song := sequencer.NewSong(p.Title)
	for _, vs := range p.Voices {
		var opts []sequencer.VoiceOption
		if vs.Audio != "" {
			opts = append(opts, sequencer.WithAudio(vs.Audio))
		}
		v, err := sequencer.ParseVoice(vs.Name, vs.Pattern, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "preset %s: voice %s", p.Name, vs.Name)
		}
		song.Add(v)
	}
	return song, nil
}

var (
	loadOnce sync.Once
	presets  []Preset
	loadErr  error
)

func all() ([]Preset, error) {
	loadOnce.Do(func() {
		presets, loadErr = Parse(presetsYAML)
	})
	return presets, loadErr
}

// Parse decodes a YAML list of presets and checks every song builds
func Parse(data []byte) ([]Preset, error) {
	var list []Preset
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(err, "decode presets")
	}
	seen := make(map[string]bool, len(list))
	for _, p := range list {
		if p.Name == "" {
			return nil, errors.Errorf("preset %q has no name", p.Title)
		}
		if seen[p.Name] {
			return nil, errors.Errorf("duplicate preset %s", p.Name)
		}
		seen[p.Name] = true
		if _, err := p.Song(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Names returns the built-in preset names in file order
func Names() []string {
	list, err := all()
	if err != nil {
		return nil
	}
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return names
}

// Load returns the built-in preset called name ("" means Default)
func Load(name string) (Preset, error) {
	if name == "" {
		name = Default
	}
	list, err := all()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range list {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, errors.Wrapf(ErrUnknownPreset, "%s (have %v)", name, Names())
}
