// Package types provides configuration types for the pairs scanner.
package types

import (
	"fmt"
	"time"
)

// Config is the full application configuration tree.
type Config struct {
	Server ServerConfig `json:"server" mapstructure:"server"`
	Data   DataConfig   `json:"data" mapstructure:"data"`
	Scan   ScanConfig   `json:"scan" mapstructure:"scan"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Host           string        `json:"host" mapstructure:"host"`
	Port           int           `json:"port" mapstructure:"port"`
	WebSocketPath  string        `json:"websocketPath" mapstructure:"websocket_path"`
	ReadTimeout    time.Duration `json:"readTimeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `json:"writeTimeout" mapstructure:"write_timeout"`
	MaxConnections int           `json:"maxConnections" mapstructure:"max_connections"`
	EnableMetrics  bool          `json:"enableMetrics" mapstructure:"enable_metrics"`
	MetricsPort    int           `json:"metricsPort" mapstructure:"metrics_port"`
}

// DataConfig represents price data provider configuration.
type DataConfig struct {
	DataDir    string `json:"dataDir" mapstructure:"data_dir"`
	UseSample  bool   `json:"useSample" mapstructure:"use_sample"`
	SampleBars int    `json:"sampleBars" mapstructure:"sample_bars"`
	SampleSeed int64  `json:"sampleSeed" mapstructure:"sample_seed"`
}

// ScanConfig holds every tunable of the screening and simulation pipeline.
// It is built once and never mutated while a scan is running.
type ScanConfig struct {
	// Ensemble Monte Carlo
	EnsembleSize   int     `json:"ensembleSize" mapstructure:"ensemble_size"`
	SimsPerDraw    int     `json:"simsPerDraw" mapstructure:"sims_per_draw"`
	UseBootstrap   bool    `json:"useBootstrap" mapstructure:"use_bootstrap"`
	BlockLenFactor float64 `json:"blockLenFactor" mapstructure:"block_len_factor"`
	Seed           uint64  `json:"seed" mapstructure:"seed"`
	MaxTotalSims   int     `json:"maxTotalSims" mapstructure:"max_total_sims"`

	// Screening filters
	ZScoreLimit     float64 `json:"zScoreLimit" mapstructure:"z_score_limit"`
	ADFPValue       float64 `json:"adfPValue" mapstructure:"adf_p_value"`
	HurstLimit      float64 `json:"hurstLimit" mapstructure:"hurst_limit"`
	MinObservations int     `json:"minObservations" mapstructure:"min_observations"`

	// Orchestration
	TopN    int `json:"topN" mapstructure:"top_n"`
	Workers int `json:"workers" mapstructure:"workers"`
}

// DefaultScanConfig returns the reference scan parameters.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		EnsembleSize:    80,
		SimsPerDraw:     2000,
		UseBootstrap:    true,
		BlockLenFactor:  0.25,
		Seed:            42,
		MaxTotalSims:    400_000,
		ZScoreLimit:     2.0,
		ADFPValue:       0.1,
		HurstLimit:      0.45,
		MinObservations: 50,
		TopN:            50,
		Workers:         1,
	}
}

// DefaultConfig returns the full default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:           "localhost",
			Port:           8080,
			WebSocketPath:  "/ws",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxConnections: 100,
			EnableMetrics:  true,
			MetricsPort:    9090,
		},
		Data: DataConfig{
			DataDir:    "./data",
			UseSample:  true,
			SampleBars: 756, // ~3y of daily bars
			SampleSeed: 7,
		},
		Scan: DefaultScanConfig(),
	}
}

// Validate checks the scan configuration for values the pipeline cannot run with.
func (c ScanConfig) Validate() error {
	if c.EnsembleSize < 1 {
		return fmt.Errorf("ensemble_size must be >= 1, got %d", c.EnsembleSize)
	}
	if c.SimsPerDraw < 1 {
		return fmt.Errorf("sims_per_draw must be >= 1, got %d", c.SimsPerDraw)
	}
	if c.MaxTotalSims < c.EnsembleSize {
		return fmt.Errorf("max_total_sims %d below ensemble_size %d", c.MaxTotalSims, c.EnsembleSize)
	}
	if c.BlockLenFactor <= 0 {
		return fmt.Errorf("block_len_factor must be positive, got %f", c.BlockLenFactor)
	}
	if c.MinObservations < 3 {
		return fmt.Errorf("min_observations must be >= 3, got %d", c.MinObservations)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be >= 1, got %d", c.TopN)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	return nil
}
