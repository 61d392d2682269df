package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("PR_TEST_STRING", "value")
	t.Setenv("PR_TEST_INT", "42")
	t.Setenv("PR_TEST_BOOL", "false")
	t.Setenv("PR_TEST_DURATION", "90m")

	assert.Equal(t, "value", GetString("PR_TEST_STRING", "default"))
	assert.Equal(t, "default", GetString("PR_TEST_MISSING", "default"))
	assert.Equal(t, 42, GetInt("PR_TEST_INT", 1))
	assert.Equal(t, 1, GetInt("PR_TEST_MISSING", 1))
	assert.False(t, GetBool("PR_TEST_BOOL", true))
	assert.Equal(t, 90*time.Minute, GetDuration("PR_TEST_DURATION", time.Hour))
}

func TestGetInt_PanicsOnGarbage(t *testing.T) {
	t.Setenv("PR_TEST_INT", "forty-two")
	assert.Panics(t, func() { GetInt("PR_TEST_INT", 0) })
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PR_TEST_FROM_FILE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PR_TEST_FROM_FILE") })

	require.NoError(t, Load(path))
	assert.Equal(t, "loaded", GetString("PR_TEST_FROM_FILE", ""))
}
