package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-sm808/sequencer"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is a note message for one firing voice
type Event struct {
	Type     uint8 // NoteOn, NoteOff
	Channel  uint8 // 0-15 on the wire
	Note     uint8
	Velocity uint8
	Voice    string
}

// Message converts the event to a wire message
func (e Event) Message() gomidi.Message {
	if e.Type == NoteOff {
		return gomidi.NoteOff(e.Channel, e.Note)
	}
	return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
}

// TickEvents returns a NoteOn/NoteOff pair per firing voice that the kit
// knows, in song order. Unknown voices are returned in skipped.
func TickEvents(tk sequencer.Tick, kit sequencer.DrumKit, channel, velocity uint8) (events []Event, skipped []string) {
	for _, v := range tk.Voices {
		note, ok := kit.Note(v.Name())
		if !ok {
			skipped = append(skipped, v.Name())
			continue
		}
		events = append(events,
			Event{Type: NoteOn, Channel: channel, Note: note, Velocity: velocity, Voice: v.Name()},
			Event{Type: NoteOff, Channel: channel, Note: note, Voice: v.Name()},
		)
	}
	return events, skipped
}
