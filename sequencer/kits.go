package sequencer

import "sort"

// DrumKit maps voice names to MIDI notes on a drum machine or sampler
type DrumKit struct {
	Name  string
	Notes map[string]uint8
}

// Voice names understood by every kit
var VoiceNames = []string{
	"kick",
	"snare",
	"hihat",
	"openhat",
	"clap",
	"rimshot",
	"lowtom",
	"midtom",
	"hitom",
	"crash",
	"ride",
	"cowbell",
}

// Kits contains all available drum kit mappings
var Kits = map[string]DrumKit{
	"gm": {
		Name: "General MIDI",
		Notes: map[string]uint8{
			"kick":    36,
			"snare":   38,
			"hihat":   42,
			"openhat": 46,
			"clap":    39,
			"rimshot": 37,
			"lowtom":  41,
			"midtom":  43,
			"hitom":   45,
			"crash":   49,
			"ride":    51,
			"cowbell": 56,
		},
	},
	"rd8": {
		Name: "Behringer RD-8",
		Notes: map[string]uint8{
			"kick":    36,
			"snare":   40, // RD-8 uses 40, not 38!
			"hihat":   42,
			"openhat": 46,
			"clap":    39,
			"rimshot": 37,
			"lowtom":  45,
			"midtom":  48,
			"hitom":   50,
			"crash":   49,
			"ride":    51,
			"cowbell": 56,
		},
	},
	"tr8s": {
		Name: "Roland TR-8S",
		Notes: map[string]uint8{
			"kick":    36,
			"snare":   38,
			"hihat":   42,
			"openhat": 46,
			"clap":    39,
			"rimshot": 37,
			"lowtom":  41,
			"midtom":  43,
			"hitom":   45,
			"crash":   49,
			"ride":    51,
			"cowbell": 56,
		},
	},
	"er1": {
		Name: "Korg ER-1",
		Notes: map[string]uint8{
			"kick":    36, // Perc Synth 1
			"snare":   38, // Perc Synth 2
			"hihat":   42,
			"openhat": 46,
			"clap":    39,
			"lowtom":  40, // Perc Synth 3
			"cowbell": 41, // Perc Synth 4
			"crash":   49,
		},
	},
}

// KitNames returns the list of available kit names
func KitNames() []string {
	names := make([]string, 0, len(Kits))
	for name := range Kits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetKit returns a kit by name, defaulting to GM if not found
func GetKit(name string) DrumKit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}

// Note returns the MIDI note for a voice name
func (k DrumKit) Note(voice string) (uint8, bool) {
	n, ok := k.Notes[voice]
	return n, ok
}

// IsVoiceName reports whether name is one of VoiceNames
func IsVoiceName(name string) bool {
	for _, n := range VoiceNames {
		if n == name {
			return true
		}
	}
	return false
}

// DefaultKit is the default kit name
const DefaultKit = "gm"
