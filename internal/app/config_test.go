package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "penalty", config.Scoring.Ruleset)
	assert.Equal(t, int64(20), config.Scoring.PenaltyMinutes)
	assert.Equal(t, int64(15), config.Scoring.CorrectStatusID)
	assert.Equal(t, ":memory:", config.Database.DSN)
	assert.Equal(t, "2006-01-02 15:04:05", config.Display.TimestampFormat)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
[scoring]
ruleset = "best_score"
penalty_minutes = 5
correct_status_id = 4

[server]
port = ":9099"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "best_score", config.Scoring.Ruleset)
	assert.Equal(t, int64(5), config.Scoring.PenaltyMinutes)
	assert.Equal(t, int64(4), config.Scoring.CorrectStatusID)
	assert.Equal(t, ":9099", config.Server.Port)
}

func TestLoadConfigRejectsUnknownRuleset(t *testing.T) {
	path := writeConfig(t, `
[scoring]
ruleset = "golf"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
