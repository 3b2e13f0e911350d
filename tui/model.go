package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-sm808/command"
	"go-sm808/debug"
	"go-sm808/preset"
	"go-sm808/sequencer"
	"go-sm808/theme"
	"go-sm808/widgets"
)

// TickMsg carries one tick from the playing machine
type TickMsg sequencer.Tick

// StoppedMsg is sent once a run has returned
type StoppedMsg struct {
	Err error
}

type Option func(*Model)

// WithListener adds listeners that receive ticks next to the UI
func WithListener(l ...sequencer.Listener) Option {
	return func(m *Model) { m.listeners = append(m.listeners, l...) }
}

func WithDefaultPreset(name string) Option {
	return func(m *Model) { m.defaultPreset = name }
}

type Model struct {
	Machine *sequencer.Machine
	Theme   *theme.Theme

	input         textinput.Model
	listeners     []sequencer.Listener
	defaultPreset string

	// current run
	playing  bool
	cancel   context.CancelFunc
	ticks    chan sequencer.Tick
	done     chan error
	playhead int
	loop     int
	runSong  *sequencer.Song // song as it was when the run started
	pending  bool            // song edited since the run started

	status   string
	isError  bool
	showHelp bool
	quitting bool
}

func NewModel(machine *sequencer.Machine, th *theme.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "kick x...x...  play  help"
	ti.CharLimit = 64
	ti.Focus()

	m := Model{
		Machine:       machine,
		Theme:         th,
		input:         ti,
		defaultPreset: preset.Default,
		playhead:      -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Playing reports whether a run started by the model is still going
func (m Model) Playing() bool { return m.playing }

// Status returns the last message shown under the command line
func (m Model) Status() string { return m.status }

func listenForTicks(ticks <-chan sequencer.Tick, done <-chan error) tea.Cmd {
	return func() tea.Msg {
		if tk, ok := <-ticks; ok {
			return TickMsg(tk)
		}
		return StoppedMsg{Err: <-done}
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.quit()

		case "esc":
			if m.input.Focused() {
				m.input.Blur()
			} else {
				m.input.Focus()
			}
			return m, nil

		case "enter":
			if !m.input.Focused() {
				break
			}
			line := m.input.Value()
			m.input.Reset()
			return m.exec(line)
		}

		if !m.input.Focused() {
			return m.handleKey(msg.String())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case TickMsg:
		m.playhead = msg.Index
		m.loop = msg.Loop
		return m, listenForTicks(m.ticks, m.done)

	case StoppedMsg:
		m.playing = false
		m.playhead = -1
		m.cancel = nil
		m.runSong, m.pending = nil, false
		switch {
		case msg.Err == nil:
			m.setStatus("done")
		case errors.Is(msg.Err, context.Canceled), errors.Is(msg.Err, sequencer.ErrStopped):
			m.setStatus("stopped")
		default:
			m.setError(msg.Err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey runs single-key shortcuts while the command line is blurred
func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m.quit()
	case "p", " ":
		if m.playing {
			m.stop()
			return m, nil
		}
		return m.play()
	case "+", "=":
		m.Machine.SetTempo(m.Machine.Tempo() + 5)
	case "-", "_":
		m.Machine.SetTempo(m.Machine.Tempo() - 5)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.stop()
	return m, tea.Quit
}

func (m Model) exec(line string) (tea.Model, tea.Cmd) {
	cmd, err := command.Parse(line)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if cmd.Kind != command.Noop {
		debug.Log("tui", "%s %s", cmd.Kind, strings.TrimSpace(line))
	}

	switch cmd.Kind {
	case command.Noop:
	case command.Voice:
		m.edit(func(s *sequencer.Song) { s.ReplaceVoice(cmd.Voice) })
		m.setStatus(m.editStatus("set " + cmd.Name))
	case command.Play:
		return m.play()
	case command.Stop:
		if !m.playing {
			m.setError(sequencer.ErrNotPlaying)
			break
		}
		m.stop()
	case command.Preset:
		return m.loadPreset(cmd.Name)
	case command.Presets:
		m.setStatus("presets: " + strings.Join(preset.Names(), ", "))
	case command.Remove:
		removed := 0
		if m.Machine.Song() != nil {
			m.edit(func(s *sequencer.Song) { removed = s.RemoveVoice(cmd.Name) })
		}
		if removed == 0 {
			m.setError(fmt.Errorf("remove: no voice named %s", cmd.Name))
			break
		}
		m.setStatus(m.editStatus("removed " + cmd.Name))
	case command.Clear:
		m.edit(func(s *sequencer.Song) {
			for _, v := range s.Voices() {
				s.RemoveVoice(v.Name())
			}
		})
		m.setStatus(m.editStatus("cleared"))
	case command.Show:
		m.showHelp = false
	case command.Tempo:
		m.Machine.SetTempo(cmd.Value)
		m.setStatus(m.editStatus(fmt.Sprintf("bpm %d", m.Machine.Tempo())))
	case command.Repeat:
		m.Machine.SetRepeatCount(cmd.Value)
		m.setStatus(m.editStatus(fmt.Sprintf("repeat %d", m.Machine.RepeatCount())))
	case command.Help:
		m.showHelp = !m.showHelp
	case command.Quit:
		return m.quit()
	}
	return m, nil
}

// editStatus notes that a change made while playing is heard on the next play
func (m Model) editStatus(s string) string {
	if m.playing {
		return s + " (next play)"
	}
	return s
}

func (m Model) play() (tea.Model, tea.Cmd) {
	if m.playing {
		m.setError(sequencer.ErrAlreadyPlaying)
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan sequencer.Tick, 64)
	done := make(chan error, 1)

	forward := sequencer.ListenerFunc(func(tk sequencer.Tick) {
		select {
		case ticks <- tk:
		case <-ctx.Done():
		}
	})
	listener := sequencer.Multi(append([]sequencer.Listener{forward}, m.listeners...)...)

	machine := m.Machine
	go func() {
		err := machine.Play(ctx, listener)
		done <- err
		close(ticks)
	}()

	m.playing = true
	m.runSong, m.pending = m.Machine.Song(), false
	m.cancel = cancel
	m.ticks = ticks
	m.done = done
	m.playhead, m.loop = -1, 0
	m.setStatus("playing")
	return m, listenForTicks(ticks, done)
}

func (m Model) stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) loadPreset(name string) (tea.Model, tea.Cmd) {
	if name == "" {
		name = m.defaultPreset
	}
	if m.playing {
		m.setError(sequencer.ErrAlreadyPlaying)
		return m, nil
	}
	p, err := preset.Load(name)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	song, err := p.Song()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.Machine.SetSong(song)
	if p.Tempo > 0 {
		m.Machine.SetTempo(p.Tempo)
	}
	return m.play()
}

// edit changes a copy of the song and attaches the copy. The attached song is
// never modified in place: a run starting on another goroutine may be cloning
// it, and the grid keeps drawing it until the run ends.
func (m *Model) edit(f func(s *sequencer.Song)) {
	song := sequencer.NewSong("Untitled")
	if cur := m.Machine.Song(); cur != nil {
		song = cur.Clone()
	}
	f(song)
	m.Machine.SetSong(song)
	m.pending = m.playing
}

// gridSong is the song the grid draws: the one being played while a run is
// going, so the playhead lines up with its columns.
func (m Model) gridSong() *sequencer.Song {
	if m.playing && m.runSong != nil {
		return m.runSong
	}
	return m.Machine.Song()
}

func (m *Model) setStatus(s string) {
	m.status, m.isError = s, false
}

func (m *Model) setError(err error) {
	m.status, m.isError = err.Error(), true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())
	if m.isError {
		statusStyle = lipgloss.NewStyle().Foreground(m.Theme.Warning())
	}

	playState := "STOP"
	if m.playing {
		playState = "PLAY"
	}
	step := max(m.playhead, 0)
	header := headerStyle.Render(fmt.Sprintf("go-sm808  %s  %3dbpm  step:%02d  loop:%d/%d",
		playState, m.Machine.Tempo(), step, m.loop+1, m.Machine.RepeatCount()))

	var body string
	song := m.gridSong()
	switch {
	case m.showHelp:
		body = widgets.RenderKeyHelp(widgets.CommandHelp())
	case song == nil:
		body = dimStyle.Render("(no song)  type a pattern like: kick x...x...")
	default:
		title := headerStyle.Render(song.Title)
		body = title + "\n\n" + widgets.RenderGrid(song, m.playhead, widgets.ThemedGrid(m.Theme, song.Len()))
		if m.pending {
			body += "\n" + dimStyle.Render("(edited, applies on next play)")
		}
	}

	help := dimStyle.Render("enter:run  esc:keys (p:play/stop  +/-:tempo  ?:help  q:quit)  ctrl+c:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")
	out.WriteString(m.input.View())
	out.WriteString("\n")
	if m.status != "" {
		out.WriteString(statusStyle.Render(m.status))
	}
	out.WriteString("\n\n")
	out.WriteString(help)
	return out.String()
}
