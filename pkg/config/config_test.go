package config

import (
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		return Config{
			App: AppConfig{Name: "test-service"},
			Log: LogConfig{Level: "info"},
			Solver: SolverConfig{
				MaxUpperBound: 1000,
				Tolerance:     0.0001,
				MaxIterations: 1000,
			},
			Summarizer: SummarizerConfig{
				StartTime:  0,
				EndTime:    86400,
				Iterations: 1000,
			},
			Accessor: AccessorConfig{Format: "csv"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing app name", func(c *Config) { c.App.Name = "" }, true},
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, true},
		{"valid debug level", func(c *Config) { c.Log.Level = "debug" }, false},
		{"negative max upper bound", func(c *Config) { c.Solver.MaxUpperBound = -1 }, true},
		{"zero tolerance", func(c *Config) { c.Solver.Tolerance = 0 }, true},
		{"zero max iterations", func(c *Config) { c.Solver.MaxIterations = 0 }, true},
		{"zero summarizer iterations", func(c *Config) { c.Summarizer.Iterations = 0 }, true},
		{"end time before start time", func(c *Config) { c.Summarizer.EndTime = -1 }, true},
		{"negative workers", func(c *Config) { c.Summarizer.Workers = -1 }, true},
		{"invalid accessor format", func(c *Config) { c.Accessor.Format = "json" }, true},
		{"xlsx accessor format", func(c *Config) { c.Accessor.Format = "xlsx" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"dev", true},
		{"production", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"prod", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}
