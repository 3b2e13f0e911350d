package widgets

import (
	"fmt"
	"strings"
)

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-18s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key (or command) and its description
type KeyBinding struct {
	Key  string
	Desc string
}

// CommandHelp describes the command language accepted by the REPL and the TUI
func CommandHelp() []KeySection {
	return []KeySection{
		{Title: "Voices", Keys: []KeyBinding{
			{Key: "<voice> <pattern>", Desc: `set a 4, 8, 16 or 32 step pattern, "x" plays and "." mutes (kick x...x...)`},
			{Key: "remove <voice>", Desc: "remove a voice from the song"},
			{Key: "clear", Desc: "remove every voice"},
			{Key: "show", Desc: "print the song"},
		}},
		{Title: "Playback", Keys: []KeyBinding{
			{Key: "play", Desc: "play the song"},
			{Key: "preset [name]", Desc: "load and play a built-in song"},
			{Key: "presets", Desc: "list built-in songs"},
			{Key: "bpm <n>", Desc: "set the tempo (20-300)"},
			{Key: "repeat <n>", Desc: "set how many bars play runs"},
		}},
		{Keys: []KeyBinding{
			{Key: "help", Desc: "show this help"},
			{Key: "quit", Desc: "exit"},
		}},
	}
}
