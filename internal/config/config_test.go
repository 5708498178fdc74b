package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "./test.db",
		Timezone:     "UTC",
		TopN:         5,
		RecentLimit:  6,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid memory backend without database path",
			modify:  func(c *Config) { c.DataBackend = "memory"; c.SQLiteDBPath = "" },
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			modify:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite]",
		},
		{
			name:        "sqlite backend missing database path",
			modify:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "unknown timezone",
			modify:      func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr:     true,
			errorString: "invalid timezone 'Mars/Olympus'",
		},
		{
			name:    "local timezone",
			modify:  func(c *Config) { c.Timezone = "Local" },
			wantErr: false,
		},
		{
			name:        "top n too small",
			modify:      func(c *Config) { c.TopN = 0 },
			wantErr:     true,
			errorString: "invalid top n 0: must be between 1 and 100",
		},
		{
			name:        "recent limit too large",
			modify:      func(c *Config) { c.RecentLimit = 500 },
			wantErr:     true,
			errorString: "invalid recent limit 500: must be between 1 and 100",
		},
		{
			name:        "invalid log level",
			modify:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "invalid log format",
			modify:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.DataBackend = "nope"
	cfg.TopN = -1
	cfg.Timezone = "Nowhere/Land"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Config.Validate() error = nil, want aggregated error")
	}
	for _, want := range []string{"invalid data backend", "invalid top n", "invalid timezone"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Config.Validate() error = %v, want error containing %v", err, want)
		}
	}
}

func TestConfig_ValidateCreatesDatabaseDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := validConfig()
	cfg.SQLiteDBPath = filepath.Join(dir, "myexpense.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected directory %s to exist: %v", dir, err)
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Asia/Tokyo"
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone()
	if offset != 9*3600 {
		t.Errorf("Location() offset = %d, want %d", offset, 9*3600)
	}

	cfg.Timezone = ""
	loc, err = cfg.Location()
	if err != nil || loc != time.Local {
		t.Errorf("Location() = %v, %v; want time.Local", loc, err)
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"MYEXPENSE_BACKEND",
		"MYEXPENSE_DB_PATH",
		"MYEXPENSE_TIMEZONE",
		"MYEXPENSE_TOP_N",
		"MYEXPENSE_RECENT_LIMIT",
		"MYEXPENSE_LOG_LEVEL",
		"MYEXPENSE_LOG_FORMAT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/myexpense.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/myexpense.db", cfg.SQLiteDBPath)
		}
		if cfg.Timezone != "Local" {
			t.Errorf("Load() Timezone = %v, want Local", cfg.Timezone)
		}
		if cfg.TopN != 5 {
			t.Errorf("Load() TopN = %v, want 5", cfg.TopN)
		}
		if cfg.RecentLimit != 6 {
			t.Errorf("Load() RecentLimit = %v, want 6", cfg.RecentLimit)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("MYEXPENSE_BACKEND", "memory")
		t.Setenv("MYEXPENSE_DB_PATH", "/tmp/test.db")
		t.Setenv("MYEXPENSE_TIMEZONE", "Europe/Rome")
		t.Setenv("MYEXPENSE_TOP_N", "3")
		t.Setenv("MYEXPENSE_RECENT_LIMIT", "10")
		t.Setenv("MYEXPENSE_LOG_LEVEL", "debug")

		cfg := Load()

		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.Timezone != "Europe/Rome" {
			t.Errorf("Load() Timezone = %v, want Europe/Rome", cfg.Timezone)
		}
		if cfg.TopN != 3 {
			t.Errorf("Load() TopN = %v, want 3", cfg.TopN)
		}
		if cfg.RecentLimit != 10 {
			t.Errorf("Load() RecentLimit = %v, want 10", cfg.RecentLimit)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("MYEXPENSE_TOP_N", "invalid")
		t.Setenv("MYEXPENSE_RECENT_LIMIT", "many")

		cfg := Load()

		if cfg.TopN != 5 {
			t.Errorf("Load() TopN = %v, want 5 (default for invalid input)", cfg.TopN)
		}
		if cfg.RecentLimit != 6 {
			t.Errorf("Load() RecentLimit = %v, want 6 (default for invalid input)", cfg.RecentLimit)
		}
	})
}
