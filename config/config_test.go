package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Food database lookups require a key; disable the integration so the
	// defaults validate on their own.
	t.Setenv("PANTRY_FOODDB_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Type != "sqlite" {
		t.Errorf("Store.Type = %q, want sqlite", cfg.Store.Type)
	}
	if cfg.Store.SQLitePath == "" {
		t.Error("Store.SQLitePath is empty")
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
	}
	if cfg.Cache.MaxEntries != 10000 {
		t.Errorf("Cache.MaxEntries = %d, want 10000", cfg.Cache.MaxEntries)
	}
	if cfg.Matching.SimilarityThreshold != 75.0 {
		t.Errorf("Matching.SimilarityThreshold = %v, want 75", cfg.Matching.SimilarityThreshold)
	}
	if !cfg.Matching.EnableFuzzyMatching {
		t.Error("Matching.EnableFuzzyMatching = false, want true")
	}
	if cfg.Matching.FuzzyEditDistance != 1 {
		t.Errorf("Matching.FuzzyEditDistance = %d, want 1", cfg.Matching.FuzzyEditDistance)
	}
	if cfg.Ledger.DeductionTimeout != 5*time.Second {
		t.Errorf("Ledger.DeductionTimeout = %v, want 5s", cfg.Ledger.DeductionTimeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.RateLimit.PerIP != 100 {
		t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PANTRY_FOODDB_ENABLED", "false")
	t.Setenv("PANTRY_SERVER_PORT", "9090")
	t.Setenv("PANTRY_STORE_TYPE", "memory")
	t.Setenv("PANTRY_MATCHING_SIMILARITY_THRESHOLD", "80")
	t.Setenv("PANTRY_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Store.Type != "memory" {
		t.Errorf("Store.Type = %q, want memory", cfg.Store.Type)
	}
	if cfg.Matching.SimilarityThreshold != 80 {
		t.Errorf("Matching.SimilarityThreshold = %v, want 80", cfg.Matching.SimilarityThreshold)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			"unknown store type",
			map[string]string{"PANTRY_FOODDB_ENABLED": "false", "PANTRY_STORE_TYPE": "postgres"},
		},
		{
			"unknown cache type",
			map[string]string{"PANTRY_FOODDB_ENABLED": "false", "PANTRY_CACHE_TYPE": "memcached"},
		},
		{
			"redis cache without url",
			map[string]string{"PANTRY_FOODDB_ENABLED": "false", "PANTRY_CACHE_TYPE": "redis"},
		},
		{
			"fooddb enabled without key",
			map[string]string{"PANTRY_FOODDB_ENABLED": "true"},
		},
		{
			"threshold out of range",
			map[string]string{"PANTRY_FOODDB_ENABLED": "false", "PANTRY_MATCHING_SIMILARITY_THRESHOLD": "150"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load succeeded, want validation error")
			}
		})
	}
}

func TestLoad_FoodDBWithKey(t *testing.T) {
	t.Setenv("PANTRY_FOODDB_ENABLED", "true")
	t.Setenv("PANTRY_FOODDB_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.FoodDB.Enabled || cfg.FoodDB.APIKey != "test-key" {
		t.Errorf("FoodDB = %+v, want enabled with key", cfg.FoodDB)
	}
}
