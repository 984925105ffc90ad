package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFilePath(t *testing.T) {
	t.Setenv("ENV_FILE", "")

	path, explicit := envFilePath([]string{"serve", "--env-file", "prod.env"})
	assert.Equal(t, "prod.env", path)
	assert.True(t, explicit)

	path, explicit = envFilePath([]string{"--env-file=dev.env", "sweep"})
	assert.Equal(t, "dev.env", path)
	assert.True(t, explicit)

	path, explicit = envFilePath([]string{"serve"})
	assert.Empty(t, path)
	assert.False(t, explicit)

	t.Setenv("ENV_FILE", "from-env.env")
	path, explicit = envFilePath(nil)
	assert.Equal(t, "from-env.env", path)
	assert.True(t, explicit)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("ENV_FILE", "")
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("KAMISHIBAI_TEST_SWEEP=30s\nKAMISHIBAI_TEST_KEEP=file\n"), 0o600))

	t.Setenv("KAMISHIBAI_TEST_KEEP", "process")
	t.Cleanup(func() { os.Unsetenv("KAMISHIBAI_TEST_SWEEP") })

	require.NoError(t, loadEnvFile([]string{"--env-file", file}))
	assert.Equal(t, "30s", os.Getenv("KAMISHIBAI_TEST_SWEEP"))
	assert.Equal(t, "process", os.Getenv("KAMISHIBAI_TEST_KEEP"), "existing variables win")

	assert.Error(t, loadEnvFile([]string{"--env-file", filepath.Join(dir, "missing.env")}))
}
