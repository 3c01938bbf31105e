package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rabidaudio/cdaudio/imagedrive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "cdaudio.yaml", `
fps: 30
drives:
  - name: /dev/sr0
    path: /discs/quake
  - path: /discs/hipnotic
cvars:
  bgmvolume: 0.5
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, []imagedrive.DriveConfig{
		{Name: "/dev/sr0", Path: "/discs/quake"},
		{Name: "/discs/hipnotic", Path: "/discs/hipnotic"},
	}, cfg.Drives)
	assert.Equal(t, map[string]float64{"bgmvolume": 0.5}, cfg.Cvars)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultFPS, cfg.FPS)
	assert.Empty(t, cfg.Drives)

	cfg, err = loadConfig(writeFile(t, "empty.yaml", "fps: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, defaultFPS, cfg.FPS)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = loadConfig(writeFile(t, "bad.yaml", "drives: {"))
	assert.ErrorContains(t, err, "parse config")

	_, err = loadConfig(writeFile(t, "nopath.yaml", "drives:\n  - name: x\n"))
	assert.ErrorContains(t, err, "missing path")
}

func TestCheckFPS(t *testing.T) {
	assert.NoError(t, checkFPS(1))
	assert.NoError(t, checkFPS(defaultFPS))
	assert.ErrorContains(t, checkFPS(0), "fps must be positive")
	assert.ErrorContains(t, checkFPS(-1), "fps must be positive")
}
