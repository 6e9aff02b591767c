package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", []byte("API_KEY=secret\n# comment\nMODE=\"debug\"\n"))

	env, err := LoadEnv(path)
	require.NoError(t, err)
	if diff := cmp.Diff(map[string]string{"API_KEY": "secret", "MODE": "debug"}, env); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvUTF16(t *testing.T) {
	dir := t.TempDir()
	// UTF-16LE with BOM: "A=1\n"
	data := []byte{0xFF, 0xFE, 'A', 0, '=', 0, '1', 0, '\n', 0}
	path := writeFile(t, dir, ".env", data)

	env, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "1", env["A"])
}

func TestLoadEnvMissing(t *testing.T) {
	_, err := LoadEnv(filepath.Join(t.TempDir(), ".env"))
	assert.Error(t, err)
}

func TestFinder(t *testing.T) {
	dir := t.TempDir()
	finder := NewFinder(dir)

	_, err := finder.FindEnv()
	assert.Error(t, err)

	want := writeFile(t, dir, ".env", []byte("A=1\n"))
	got, err := finder.FindEnv()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	writeFile(t, dir, "fxsema.toml", []byte(""))
	got, err = finder.FindConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fxsema.toml"), got)

	_, err = NewFinder("").FindEnv()
	assert.Error(t, err)
}

func TestLoadConfigConstantsYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fxsema.yaml", []byte(`
CONFIG::DEBUG: true
CONFIG:
  VERSION: 3
  NAME: "'fx'"
`))

	constants, err := LoadConfigConstants(path)
	require.NoError(t, err)
	want := map[string]string{
		"CONFIG::DEBUG":   "true",
		"CONFIG::VERSION": "3",
		"CONFIG::NAME":    "'fx'",
	}
	if diff := cmp.Diff(want, constants); diff != "" {
		t.Errorf("constants mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigConstantsTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fxsema.toml", []byte(`
"CONFIG::RATIO" = 1.5

[CONFIG]
DEBUG = false
`))

	constants, err := LoadConfigConstants(path)
	require.NoError(t, err)
	assert.Equal(t, "1.5", constants["CONFIG::RATIO"])
	assert.Equal(t, "false", constants["CONFIG::DEBUG"])
}

func TestLoadConfigConstantsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfigConstants(writeFile(t, dir, "c.json", []byte("{}")))
	assert.Error(t, err)

	_, err = LoadConfigConstants(writeFile(t, dir, "c.yaml", []byte("DEBUG: true\n")))
	assert.ErrorContains(t, err, "not namespace-qualified")

	_, err = LoadConfigConstants(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bom.as", []byte("\xEF\xBB\xBFvar a = 1;"))

	text, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;", text)

	_, err = ReadSource(filepath.Join(dir, "missing.as"))
	assert.Error(t, err)
}
