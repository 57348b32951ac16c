package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithRotationWritesToConfiguredDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom-logs")

	log, err := InitWithRotation(dir, Rotation{MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	require.NoError(t, err)

	log.Info("logger directory check")
	log.Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries, "log files must land in the configured directory")

	found := false
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), "-info.log") {
			found = true
		}
	}
	assert.True(t, found, "info-level file core should have written its file")
}

func TestInitUsesProjectRootLogsDir(t *testing.T) {
	root := t.TempDir()

	log, err := Init(root)
	require.NoError(t, err)

	log.Info("bootstrap logger check")
	log.Sync()

	entries, err := os.ReadDir(filepath.Join(root, "logs"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
