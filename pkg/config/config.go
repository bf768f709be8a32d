// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config - главная структура конфигурации
type Config struct {
	App        AppConfig        `koanf:"app"`
	Log        LogConfig        `koanf:"log"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Tracing    TracingConfig    `koanf:"tracing"`
	Solver     SolverConfig     `koanf:"solver"`
	Summarizer SummarizerConfig `koanf:"summarizer"`
	Accessor   AccessorConfig   `koanf:"accessor"`
}

// AppConfig - общие настройки приложения
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // путь к файлу логов
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // количество бэкапов
	MaxAge     int    `koanf:"max_age"`     // дней
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig - настройки Prometheus метрик
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// TracingConfig - настройки OpenTelemetry
type TracingConfig struct {
	Enabled     bool    `koanf:"enabled"`
	ServiceName string  `koanf:"service_name"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// SolverConfig - настройки решателя кратчайшего по времени маршрута
// (интегральное уравнение и выбор вершины на каждом шаге релаксации)
type SolverConfig struct {
	MaxUpperBound float64 `koanf:"max_upper_bound"` // верхняя граница поиска корня интеграла
	Tolerance     float64 `koanf:"tolerance"`        // допустимая погрешность бисекции
	MaxIterations int     `koanf:"max_iterations"`   // предел итераций бисекции
	UseHeap       bool    `koanf:"use_heap"`         // выбор вершины через кучу вместо плотного перебора
}

// SummarizerConfig - настройки выборки по времени для сводного графа
type SummarizerConfig struct {
	StartTime  float64 `koanf:"start_time"`
	EndTime    float64 `koanf:"end_time"`
	Iterations int     `koanf:"iterations"`
	Workers    int     `koanf:"workers"` // степень параллелизма внешнего цикла по выборкам
}

// AccessorConfig - настройки чтения исходных данных (CSV/XLSX)
type AccessorConfig struct {
	DistancesPath  string `koanf:"distances_path"`
	VisibilityPath string `koanf:"visibility_path"`
	Format         string `koanf:"format"` // csv, xlsx
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Solver.MaxUpperBound <= 0 {
		errs = append(errs, "solver.max_upper_bound must be positive")
	}
	if c.Solver.Tolerance <= 0 {
		errs = append(errs, "solver.tolerance must be positive")
	}
	if c.Solver.MaxIterations <= 0 {
		errs = append(errs, "solver.max_iterations must be positive")
	}

	if c.Summarizer.Iterations <= 0 {
		errs = append(errs, "summarizer.iterations must be positive")
	}
	if c.Summarizer.EndTime <= c.Summarizer.StartTime {
		errs = append(errs, "summarizer.end_time must be greater than summarizer.start_time")
	}
	if c.Summarizer.Workers < 0 {
		errs = append(errs, "summarizer.workers must be non-negative")
	}

	validFormats := map[string]bool{"csv": true, "xlsx": true, "": true}
	if !validFormats[strings.ToLower(c.Accessor.Format)] {
		errs = append(errs, fmt.Sprintf("accessor.format must be one of: csv, xlsx, got %s", c.Accessor.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment проверяет режим разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction проверяет продакшн режим
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
