package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("MUTATION_MAX_ATTEMPTS", "")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 3, cfg.MutationMaxAttempts)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("MUTATION_MAX_ATTEMPTS", "7")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
	assert.Equal(t, 7, cfg.MutationMaxAttempts)
}

func TestLoad_InvalidAttemptsFallsBack(t *testing.T) {
	t.Setenv("MUTATION_MAX_ATTEMPTS", "zero")
	assert.Equal(t, 3, Load().MutationMaxAttempts)

	t.Setenv("MUTATION_MAX_ATTEMPTS", "-2")
	assert.Equal(t, 3, Load().MutationMaxAttempts)
}
