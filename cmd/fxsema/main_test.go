package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxrazen/fxsema/compile"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckExpressions(t *testing.T) {
	out, err := execute(t, "check", "1 + 2", "'a'.length")
	require.NoError(t, err)
	want := "<arg1>:1:1: 1 + 2: Number\n<arg2>:1:1: 'a'.length: int\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckReportsDiagnostics(t *testing.T) {
	out, err := execute(t, "check", "nope")
	require.Error(t, err)
	assert.Contains(t, out, "<arg1>:1:1: error:")
	assert.Contains(t, out, "1 error(s)")
}

func TestCheckNothing(t *testing.T) {
	_, err := execute(t, "check")
	assert.EqualError(t, err, "nothing to check")
}

func TestCheckConfigConstants(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fxsema.yaml"), []byte("CONFIG:\n  LEVEL: 3\n"), 0o644))

	out, err := execute(t, "check", "--project", dir, "CONFIG::LEVEL")
	require.NoError(t, err)
	assert.Equal(t, "<arg1>:1:1: CONFIG::LEVEL: Number\n", out)
}

func TestOptionsFromEnvironment(t *testing.T) {
	t.Setenv("FXSEMA_MAX_PASSES", "3")
	t.Setenv("FXSEMA_VERBOSE", "true")

	o := &options{}
	bindOptions(newViper("fxsema"), &cobra.Command{Use: "test"}, o.opts())
	assert.Equal(t, 3, o.MaxPasses)
	assert.True(t, o.Verbose)
	assert.Equal(t, "", o.Project)
}

func TestSuite(t *testing.T) {
	o := &options{MaxPasses: compile.DefaultMaxPasses}
	failures, err := runSuite(filepath.Join("testdata", "suite"), func() (*compile.Unit, error) {
		return o.newUnit(zaptest.NewLogger(t))
	})
	require.NoError(t, err)
	assert.Empty(t, failures)
}

func TestSuiteFailures(t *testing.T) {
	dir := t.TempDir()
	for name, text := range map[string]string{
		"pass_undefined.as": "nope",
		"fail_clean.as":     "1 + 1",
		"notes.txt":         "1",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}

	o := &options{MaxPasses: compile.DefaultMaxPasses}
	failures, err := runSuite(dir, func() (*compile.Unit, error) {
		return o.newUnit(zaptest.NewLogger(t))
	})
	require.NoError(t, err)

	var names []string
	for _, f := range failures {
		names = append(names, f.Name)
	}
	// directory order
	assert.Equal(t, []string{"fail_clean.as", "notes.txt", "pass_undefined.as"}, names)
	assert.Equal(t, "expected an error", failures[0].Reason)
}
