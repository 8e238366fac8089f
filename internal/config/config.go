// Package config loads the salesreg cli configuration from file, environment and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	salesreg "github.com/aouyang1/go-salesreg"
	"github.com/aouyang1/go-salesreg/stats"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix = "SALESREG"
	dirName   = ".salesreg"
)

// Global configuration structure
type Global struct {
	Reference     string   `mapstructure:"reference" yaml:"reference"`
	Alpha         float64  `mapstructure:"alpha" yaml:"alpha"`
	RankTolerance float64  `mapstructure:"rank_tolerance" yaml:"rank_tolerance"`
	VIFPredictors []string `mapstructure:"vif_predictors" yaml:"vif_predictors"`
	VIFIntercept  bool     `mapstructure:"vif_intercept" yaml:"vif_intercept"`

	// residual outlier fences
	OutlierLower  float64 `mapstructure:"outlier_lower" yaml:"outlier_lower"`
	OutlierUpper  float64 `mapstructure:"outlier_upper" yaml:"outlier_upper"`
	TukeyFactor   float64 `mapstructure:"tukey_factor" yaml:"tukey_factor"`
	OutlierPasses int     `mapstructure:"outlier_passes" yaml:"outlier_passes"`

	// simulate command
	SimulateObservations int     `mapstructure:"simulate_observations" yaml:"simulate_observations"`
	SimulateNoise        float64 `mapstructure:"simulate_noise" yaml:"simulate_noise"`
	SimulateSeed         uint64  `mapstructure:"simulate_seed" yaml:"simulate_seed"`
}

// Default returns the configuration of the reference marketing analysis
func Default() *Global {
	opt := salesreg.NewDefaultOptions()
	return &Global{
		Reference:            opt.Reference,
		Alpha:                opt.Alpha,
		RankTolerance:        opt.RankTolerance,
		VIFPredictors:        opt.VIFPredictors,
		VIFIntercept:         opt.VIFIntercept,
		OutlierLower:         opt.OutlierOptions.LowerPercentile,
		OutlierUpper:         opt.OutlierOptions.UpperPercentile,
		TukeyFactor:          opt.OutlierOptions.TukeyFactor,
		OutlierPasses:        opt.OutlierPasses,
		SimulateObservations: 4572,
		SimulateNoise:        8.0,
		SimulateSeed:         1,
	}
}

// Options converts the configuration into analysis options
func (g *Global) Options() *salesreg.Options {
	return &salesreg.Options{
		Reference:     g.Reference,
		Alpha:         g.Alpha,
		RankTolerance: g.RankTolerance,
		VIFPredictors: g.VIFPredictors,
		VIFIntercept:  g.VIFIntercept,
		OutlierOptions: &stats.OutlierOptions{
			LowerPercentile: g.OutlierLower,
			UpperPercentile: g.OutlierUpper,
			TukeyFactor:     g.TukeyFactor,
		},
		OutlierPasses: g.OutlierPasses,
	}
}

// Path resolves the config file path. If cfgFile is empty ~/.salesreg/config.yaml is used.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path creating the directory if necessary
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A missing config file is not an error.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("reference", def.Reference)
	v.SetDefault("alpha", def.Alpha)
	v.SetDefault("rank_tolerance", def.RankTolerance)
	v.SetDefault("vif_predictors", def.VIFPredictors)
	v.SetDefault("vif_intercept", def.VIFIntercept)
	v.SetDefault("outlier_lower", def.OutlierLower)
	v.SetDefault("outlier_upper", def.OutlierUpper)
	v.SetDefault("tukey_factor", def.TukeyFactor)
	v.SetDefault("outlier_passes", def.OutlierPasses)
	v.SetDefault("simulate_observations", def.SimulateObservations)
	v.SetDefault("simulate_noise", def.SimulateNoise)
	v.SetDefault("simulate_seed", def.SimulateSeed)

	path, err := Path(cfgFile)
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
