package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "GIN_MODE", "DATABASE_PATH", "LOG_LEVEL", "ALLOW_SEED_ENDPOINT", "CORS_ORIGIN"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "carz_auctions.db", cfg.DatabasePath)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.AllowSeedEndpoint)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_PATH", "/tmp/auctions.db")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ALLOW_SEED_ENDPOINT", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":3000", cfg.Addr())
	require.Equal(t, "/tmp/auctions.db", cfg.DatabasePath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.AllowSeedEndpoint)
}

func TestLoad_CORSOrigins(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    []string
		wantErr bool
	}{
		{name: "single", value: "http://localhost:3000", want: []string{"http://localhost:3000"}},
		{name: "list_trimmed", value: " http://localhost:3000/ , https://cars.example.com", want: []string{"http://localhost:3000", "https://cars.example.com"}},
		{name: "only_separators", value: " , ,", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CORS_ORIGIN", tc.value)

			cfg, err := Load("")
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, cfg.CORSOrigins)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad_port", key: "PORT", value: "eighty"},
		{name: "bad_bool", key: "ALLOW_SEED_ENDPOINT", value: "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load("")
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("DATABASE_PATH"))
	require.NoError(t, os.Unsetenv("PORT"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_PATH=from-file.db\nPORT=9090\n"), 0o600))

	t.Cleanup(func() {
		_ = os.Unsetenv("DATABASE_PATH")
		_ = os.Unsetenv("PORT")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	require.Equal(t, "from-file.db", cfg.DatabasePath)
	require.Equal(t, "9090", cfg.Port)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
}
