package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddr())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 100, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, 10, cfg.Postgres.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, 30*time.Second, cfg.Planning.RLTimeout)
	assert.Contains(t, cfg.Postgres.DSN(), "dbname=planix")
	assert.Contains(t, cfg.Postgres.DSN(), "sslmode=disable")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB_NAME", "sprints")
	t.Setenv("AUTH_TOKEN_TTL", "1h")
	t.Setenv("PLANNING_RL_COMMAND", "python3")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, "sprints", cfg.Postgres.DBName)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "python3", cfg.Planning.RLCommand)
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUTH_JWT_SECRET=fromfile\nPLANNING_RL_SCRIPT=planner.py\n"), 0o600))
	t.Setenv("AUTH_JWT_SECRET", "fromenv")
	t.Cleanup(func() { _ = os.Unsetenv("PLANNING_RL_SCRIPT") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Auth.JWTSecret)
	assert.Equal(t, "planner.py", cfg.Planning.RLScript)
}

func TestLoadRejectsUnreadableEnvFile(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	dir := t.TempDir()

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load(missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Port: 8080},
		Postgres: PostgresConfig{Host: "h", User: "u", Password: "p", DBName: "d"},
		Auth:     AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
	}
	require.NoError(t, valid.Validate())

	noPort := valid
	noPort.Server.Port = 0
	require.Error(t, noPort.Validate())

	noDB := valid
	noDB.Postgres.DBName = ""
	require.Error(t, noDB.Validate())

	noTTL := valid
	noTTL.Auth.TokenTTL = 0
	require.Error(t, noTTL.Validate())
}
