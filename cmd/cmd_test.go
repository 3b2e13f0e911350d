package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestPlayVoices(t *testing.T) {
	out, _, err := execute(t, "", "play", "--instant", "-v", "kick=x...", "--repeat", "2")
	require.NoError(t, err)
	assert.Equal(t, "|kick|_|_|_|\n|kick|_|_|_|\n", out)
}

func TestPlayPreset(t *testing.T) {
	out, _, err := execute(t, "", "play", "--instant", "--preset", "animal-rights", "-r", "1", "-v", "snare=x.......")
	require.NoError(t, err)
	assert.Equal(t, "|kick+snare|_|hihat|_|kick|_|hihat|_|\n", out)
}

func TestPlayDefaultPreset(t *testing.T) {
	out, _, err := execute(t, "", "play", "--instant")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "|kick|_|hihat|_|kick+snare|_|hihat|_|\n"))
}

func TestPlayErrors(t *testing.T) {
	_, _, err := execute(t, "", "play", "--instant", "-v", "kick")
	assert.ErrorContains(t, err, "want name=pattern")

	_, _, err = execute(t, "", "play", "--instant", "-v", "kick=x..")
	assert.ErrorContains(t, err, "must be 4, 8, 16 or 32")

	_, _, err = execute(t, "", "play", "--instant", "--preset", "nope")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestPresetsCommand(t *testing.T) {
	out, _, err := execute(t, "", "presets", "--show")
	require.NoError(t, err)
	assert.Contains(t, out, "animal-rights")
	assert.Contains(t, out, "Animal Rights (128 bpm)")
	assert.Contains(t, out, "kick  x...x...")
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tempo: 1000\n"), 0644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"presets", "--config", path})
	assert.Error(t, root.Execute())
}

func TestShellSession(t *testing.T) {
	if testing.Short() {
		t.Skip("plays on the wall clock")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tempo: 300\nrepeatCount: 1\n"), 0644))

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader("kick x...\nplay\nquit\n"))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--config", path})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Welcome to SM808")
	assert.Contains(t, out.String(), "|kick|_|_|_|\n")
	assert.Empty(t, errOut.String())
}
