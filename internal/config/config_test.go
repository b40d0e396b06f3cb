package config

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

const validConfig = `
[server]
http_port = 8083
read_timeout = 10
write_timeout = 10
idle_timeout = 60
shutdown_timeout = 15

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "postgres"
dbname = "booking"
sslmode = "disable"
migrations_path = "migrations"

[logs]
file = ""
level = "info"

[metrics]
enabled = true
service_name = "booking"
path = "/metrics"

[identity]
enabled = false
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "booking", cfg.Database.DBName)
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Identity.Enabled)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"missing port",
			`[database]
host = "localhost"
dbname = "booking"`,
		},
		{
			"missing database host",
			`[server]
http_port = 8083
[database]
dbname = "booking"`,
		},
		{
			"metrics enabled without path",
			`[server]
http_port = 8083
[database]
host = "localhost"
dbname = "booking"
[metrics]
enabled = true`,
		},
		{
			"identity enabled without url",
			`[server]
http_port = 8083
[database]
host = "localhost"
dbname = "booking"
[identity]
enabled = true`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "booking",
		Password: "secret",
		DBName:   "booking",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5432 user=booking password=secret dbname=booking sslmode=require",
		d.DSN())
}
