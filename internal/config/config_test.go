package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.TimeCPURatio != DefaultTimeCPURatio {
		t.Errorf("expected default time_cpu_ratio %v, got %v", DefaultTimeCPURatio, cfg.TimeCPURatio)
	}
	if cfg.SnapRange != DefaultSnapRange {
		t.Errorf("expected default snap_range %q, got %q", DefaultSnapRange, cfg.SnapRange)
	}
	if cfg.MAD.WindowSize != DefaultMADWindowSize {
		t.Errorf("expected default mad_window_size %d, got %d", DefaultMADWindowSize, cfg.MAD.WindowSize)
	}
	if cfg.Gradient.ElasticNetAlpha != DefaultElasticNetAlpha {
		t.Errorf("expected default elastic_net_alpha %v, got %v", DefaultElasticNetAlpha, cfg.Gradient.ElasticNetAlpha)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	content := `
time_cpu_ratio: 0.5
parallel: 8
mad:
  mad_threshold: 5.0
  mad_window_size: 50
gradient:
  ridge_lambda: 2.0
`
	if err := os.WriteFile(configFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write test config file: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TimeCPURatio != 0.5 {
		t.Errorf("expected time_cpu_ratio 0.5, got %v", cfg.TimeCPURatio)
	}
	if cfg.Parallel != 8 {
		t.Errorf("expected parallel 8, got %d", cfg.Parallel)
	}
	if cfg.MAD.Threshold != 5.0 || cfg.MAD.WindowSize != 50 {
		t.Errorf("expected overridden mad config, got %+v", cfg.MAD)
	}
	if cfg.Gradient.RidgeLambda != 2.0 {
		t.Errorf("expected overridden ridge_lambda 2.0, got %v", cfg.Gradient.RidgeLambda)
	}
	// Fields not present in the file should retain their defaults.
	if cfg.Gradient.ElasticNetAlpha != DefaultElasticNetAlpha {
		t.Errorf("expected untouched elastic_net_alpha to stay at default, got %v", cfg.Gradient.ElasticNetAlpha)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("expected error for nonexistent config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "time_cpu_ratio above 1", mutate: func(c *Config) { c.TimeCPURatio = 1.5 }, wantErr: true},
		{name: "negative filter_db_time", mutate: func(c *Config) { c.FilterDBTime = -1 }, wantErr: true},
		{name: "empty snap_range", mutate: func(c *Config) { c.SnapRange = "" }, wantErr: true},
		{name: "zero parallel", mutate: func(c *Config) { c.Parallel = 0 }, wantErr: true},
		{name: "zero mad_threshold", mutate: func(c *Config) { c.MAD.Threshold = 0 }, wantErr: true},
		{name: "mad_window_size too large", mutate: func(c *Config) { c.MAD.WindowSize = 101 }, wantErr: true},
		{name: "elastic_net_alpha out of range", mutate: func(c *Config) { c.Gradient.ElasticNetAlpha = 1.2 }, wantErr: true},
		{name: "zero elastic_net_max_iter", mutate: func(c *Config) { c.Gradient.ElasticNetMaxIter = 0 }, wantErr: true},
		{name: "invalid logger level", mutate: func(c *Config) { c.Logger.Level = "verbose" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := NewDefault()
	ratio := 0.8
	parallel := 16

	err := ApplyOverrides(cfg, CLIOverrides{
		TimeCPURatio: &ratio,
		Parallel:     &parallel,
	})
	if err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if cfg.TimeCPURatio != 0.8 {
		t.Errorf("expected overridden time_cpu_ratio 0.8, got %v", cfg.TimeCPURatio)
	}
	if cfg.Parallel != 16 {
		t.Errorf("expected overridden parallel 16, got %d", cfg.Parallel)
	}
	// Unset fields must stay at their prior values.
	if cfg.MAD.Threshold != DefaultMADThreshold {
		t.Errorf("expected untouched mad_threshold to stay at default, got %v", cfg.MAD.Threshold)
	}
}

func TestApplyOverridesRejectsInvalidValue(t *testing.T) {
	cfg := NewDefault()
	badRatio := 5.0

	if err := ApplyOverrides(cfg, CLIOverrides{TimeCPURatio: &badRatio}); err == nil {
		t.Error("expected ApplyOverrides to re-validate and reject an out-of-range override")
	}
}
