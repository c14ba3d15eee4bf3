// Package config loads the application configuration from an optional YAML
// file plus OMNISPREAD_-prefixed environment overrides layered on the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/somewisecrack/omnispread/pkg/types"
)

// Load reads the configuration. path may be empty, in which case only a
// config file found on the default search paths is used; a missing file is
// not an error, but an unreadable or invalid one is.
func Load(path string) (*types.Config, error) {
	v := viper.New()
	setDefaults(v, types.DefaultConfig())

	v.SetEnvPrefix("OMNISPREAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("omnispread")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Scan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, def types.Config) {
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.websocket_path", def.Server.WebSocketPath)
	v.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", def.Server.WriteTimeout)
	v.SetDefault("server.max_connections", def.Server.MaxConnections)
	v.SetDefault("server.enable_metrics", def.Server.EnableMetrics)
	v.SetDefault("server.metrics_port", def.Server.MetricsPort)

	v.SetDefault("data.data_dir", def.Data.DataDir)
	v.SetDefault("data.use_sample", def.Data.UseSample)
	v.SetDefault("data.sample_bars", def.Data.SampleBars)
	v.SetDefault("data.sample_seed", def.Data.SampleSeed)

	v.SetDefault("scan.ensemble_size", def.Scan.EnsembleSize)
	v.SetDefault("scan.sims_per_draw", def.Scan.SimsPerDraw)
	v.SetDefault("scan.use_bootstrap", def.Scan.UseBootstrap)
	v.SetDefault("scan.block_len_factor", def.Scan.BlockLenFactor)
	v.SetDefault("scan.seed", def.Scan.Seed)
	v.SetDefault("scan.max_total_sims", def.Scan.MaxTotalSims)
	v.SetDefault("scan.z_score_limit", def.Scan.ZScoreLimit)
	v.SetDefault("scan.adf_p_value", def.Scan.ADFPValue)
	v.SetDefault("scan.hurst_limit", def.Scan.HurstLimit)
	v.SetDefault("scan.min_observations", def.Scan.MinObservations)
	v.SetDefault("scan.top_n", def.Scan.TopN)
	v.SetDefault("scan.workers", def.Scan.Workers)
}
