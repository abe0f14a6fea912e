package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars or file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 1048576, cfg.Server.MaxHeaderBytes)
				assert.True(t, cfg.Security.EnableCORS)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, 750.0, cfg.Plant.CapacityPerDay)
				assert.Equal(t, SourceEmbedded, cfg.Plant.SourceKind)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.True(t, cfg.Telemetry.MetricsEnabled)
			},
		},
		{
			name: "environment variables",
			env: map[string]string{
				"STP_SERVER_PORT":              "9090",
				"STP_SERVER_READ_TIMEOUT":      "30s",
				"STP_SECURITY_ALLOWED_ORIGINS": "http://example.com,https://example.com",
				"STP_LOGGING_LEVEL":            "debug",
				"STP_LOGGING_FORMAT":           "text",
				"STP_PLANT_CAPACITY_PER_DAY":   "900",
				"STP_PLANT_SOURCE_KIND":        "File",
				"STP_PLANT_SOURCE_PATH":        "/data/stp.tsv",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"http://example.com", "https://example.com"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format, "format is forced to json")
				assert.Equal(t, 900.0, cfg.Plant.CapacityPerDay)
				assert.Equal(t, SourceFile, cfg.Plant.SourceKind)
				assert.Equal(t, "/data/stp.tsv", cfg.Plant.SourcePath)
			},
		},
		{
			name: "yaml file overlays defaults",
			file: `
server:
  port: 7070
  write_timeout: 45s
plant:
  capacity_per_day: 1000
  source_kind: excel
  source_path: readings.xlsx
  sheet_name: Log
telemetry:
  trace_exporter: stdout
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "untouched keys keep defaults")
				assert.Equal(t, 1000.0, cfg.Plant.CapacityPerDay)
				assert.Equal(t, SourceExcel, cfg.Plant.SourceKind)
				assert.Equal(t, "Log", cfg.Plant.SheetName)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "env wins over file",
			env:  map[string]string{"STP_SERVER_PORT": "6060"},
			file: "server:\n  port: 7070\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 6060, cfg.Server.Port)
			},
		},
		{
			name:    "invalid port number",
			env:     map[string]string{"STP_SERVER_PORT": "99999"},
			wantErr: "invalid server port",
		},
		{
			name:    "negative timeout",
			env:     map[string]string{"STP_SERVER_READ_TIMEOUT": "-5s"},
			wantErr: "read timeout",
		},
		{
			name:    "unparsable env value",
			env:     map[string]string{"STP_SERVER_PORT": "eighty"},
			wantErr: "failed to load config from env",
		},
		{
			name:    "zero capacity",
			env:     map[string]string{"STP_PLANT_CAPACITY_PER_DAY": "0"},
			wantErr: "plant.CapacityPerDay failed gt",
		},
		{
			name:    "unknown source kind",
			env:     map[string]string{"STP_PLANT_SOURCE_KIND": "ftp"},
			wantErr: "plant.SourceKind failed oneof",
		},
		{
			name:    "file source without path",
			env:     map[string]string{"STP_PLANT_SOURCE_KIND": "file"},
			wantErr: "plant.SourcePath failed required_if",
		},
		{
			name:    "sheets source without spreadsheet id",
			env:     map[string]string{"STP_PLANT_SOURCE_KIND": "sheets"},
			wantErr: "plant.SpreadsheetID failed required_if",
		},
		{
			name:    "unknown trace exporter",
			env:     map[string]string{"STP_TELEMETRY_TRACE_EXPORTER": "jaeger"},
			wantErr: "unsupported trace exporter",
		},
		{
			name:    "malformed yaml",
			file:    "server: [",
			wantErr: "failed to load config from file",
		},
		{
			name:    "rate limit without burst",
			env:     map[string]string{"STP_SECURITY_RATE_LIMIT_BURST": "0"},
			wantErr: "rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFrom(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_ReadsDotEnvAndConfigFileEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STP_LOGGING_LEVEL=warn\n"), 0o644))
	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 8181\n"), 0o644))
	t.Setenv("STP_CONFIG_FILE", cfgPath)
	t.Cleanup(func() { os.Unsetenv("STP_LOGGING_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 8181, cfg.Server.Port)
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	require.NoError(t, cfg.Plant.Validate())
}

func TestPlantConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		plant   PlantConfig
		wantErr bool
	}{
		{"embedded", PlantConfig{CapacityPerDay: 750, SourceKind: SourceEmbedded}, false},
		{"excel with path", PlantConfig{CapacityPerDay: 750, SourceKind: SourceExcel, SourcePath: "r.xlsx"}, false},
		{"excel without path", PlantConfig{CapacityPerDay: 750, SourceKind: SourceExcel}, true},
		{"sheets with id", PlantConfig{CapacityPerDay: 750, SourceKind: SourceSheets, SpreadsheetID: "abc"}, false},
		{"negative capacity", PlantConfig{CapacityPerDay: -1, SourceKind: SourceEmbedded}, true},
		{"empty kind", PlantConfig{CapacityPerDay: 750}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plant.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
