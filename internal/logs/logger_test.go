package logs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeWritesDebugLog(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	dir := t.TempDir()
	require.NoError(t, Initialize(dir, "debug"))
	Logger.Infow("hello", "key", "value")
	require.NoError(t, Close())

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestInitializeEmptyDirKeepsLogger(t *testing.T) {
	prev := Logger
	Logger = zap.NewNop().Sugar()
	t.Cleanup(func() { Logger = prev })

	before := Logger
	require.NoError(t, Initialize("", "info"))
	assert.Same(t, before, Logger)
}
