package semantics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fxrazen/fxsema/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("API=on\n"), 0o644))

	h := NewHost(Options{ProjectPath: dir, Logger: zaptest.NewLogger(t)})
	assert.Equal(t, map[string]string{"API": "on"}, h.Env())

	// memoized
	require.NoError(t, os.Remove(filepath.Join(dir, ".env")))
	assert.Equal(t, "on", h.Env()["API"])
}

func TestEnvMissing(t *testing.T) {
	h := NewHost(Options{})
	assert.Empty(t, h.Env())

	h = NewHost(Options{ProjectPath: filepath.Join(t.TempDir(), "nope")})
	assert.NotNil(t, h.Env())
	assert.Empty(t, h.Env())
}

func TestConfigConstants(t *testing.T) {
	h := NewHost(Options{ConfigConstants: map[string]string{"CONFIG::DEBUG": "true"}})

	src, ok := h.ConfigConstant("CONFIG", "DEBUG")
	assert.True(t, ok)
	assert.Equal(t, "true", src)

	_, ok = h.ConfigConstant("CONFIG", "RELEASE")
	assert.False(t, ok)

	assert.True(t, h.HasConfigNamespace("CONFIG"))
	assert.False(t, h.HasConfigNamespace("CONF"))

	_, ok = h.InlineConstant("CONFIG::DEBUG")
	assert.False(t, ok)
	lit := &tree.BooleanLiteral{Value: true}
	h.SetInlineConstant("CONFIG::DEBUG", lit)
	expr, ok := h.InlineConstant("CONFIG::DEBUG")
	assert.True(t, ok)
	assert.Same(t, lit, expr)
}

func TestSentinels(t *testing.T) {
	h := NewHost(Options{})
	assert.Same(t, h.UnresolvedThingy(), h.UnresolvedThingy())
	assert.NotEqual(t, Thingy(h.UnresolvedThingy()), Thingy(h.InvalidationThingy()))
	assert.True(t, IsUnresolved(h.Factory().CreateNullableType(h.UnresolvedThingy())))
}
