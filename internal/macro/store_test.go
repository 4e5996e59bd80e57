package macro

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `
macros:
  tv_on: samsung:0xE0E040BF:0
  movie_mode:
    - nec:0x20DF10EF:0:500
    - " nec:0x20DFC03F:2 "
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleFile))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"tv_on":      "samsung:0xE0E040BF:0",
		"movie_mode": "nec:0x20DF10EF:0:500,nec:0x20DFC03F:2",
	}, m)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "macros: [unclosed"},
		{"mapping body", "macros:\n  x:\n    a: b\n"},
		{"empty body", "macros:\n  x: \"\"\n"},
		{"name with space", "macros:\n  \"tv on\": nec:1:0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "macros.yml"), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Names())
	_, ok := s.Lookup("tv_on")
	assert.False(t, ok)
}

func TestOpen_LookupAndNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))

	s, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"movie_mode", "tv_on"}, s.Names())

	seq, ok := s.Lookup("tv_on")
	require.True(t, ok)
	assert.Equal(t, "samsung:0xE0E040BF:0", seq)
}

func TestReload_KeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))
	s, err := Open(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("macros: [broken"), 0o644))
	assert.Error(t, s.Reload())
	assert.Len(t, s.Names(), 2)
}

func TestOpen_BadFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.yml")
	require.NoError(t, os.WriteFile(path, []byte("macros: [broken"), 0o644))
	_, err := Open(path, nil)
	assert.Error(t, err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "macros.yml")
	s, err := Open(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// give the watcher a moment to register the directory
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))

	assert.Eventually(t, func() bool {
		_, ok := s.Lookup("movie_mode")
		return ok
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}
