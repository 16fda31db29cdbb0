package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.CardCacheTTL)
	assert.Equal(t, "ledger", cfg.NATSSubjectPrefix)
	assert.Equal(t, 10, cfg.IssueMaxAttempts)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", ":memory:")
	t.Setenv("CARD_CACHE_TTL", "30s")
	t.Setenv("RESET_DB", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Second, cfg.CardCacheTTL)
	assert.True(t, cfg.ResetDB)
}

func TestLoad_RejectsNonPositiveAttempts(t *testing.T) {
	t.Setenv("ISSUE_MAX_ATTEMPTS", "0")

	_, err := Load()
	assert.Error(t, err)
}
