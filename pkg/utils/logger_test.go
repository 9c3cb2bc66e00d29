package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesRotatedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger(AppConfig{Name: "store-rating", LogPath: dir})
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	raw, err := os.ReadFile(filepath.Join(dir, "store-rating.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"hello"`)
	assert.Contains(t, string(raw), `"app":"store-rating"`)
}
