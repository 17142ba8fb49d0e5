// Package config loads and validates the analyzer's run configuration:
// robust-statistics thresholds, the gradient-attribution hyperparameters,
// and the snapshot range/parallelism knobs named in SPEC_FULL.md §6.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// MADConfig holds the sliding/full-window anomaly detector's thresholds.
type MADConfig struct {
	Threshold  float64 `mapstructure:"mad_threshold" validate:"gt=0"`
	WindowSize int     `mapstructure:"mad_window_size" validate:"min=1,max=100"`
}

// GradientConfig holds the four-model gradient-attribution hyperparameters.
type GradientConfig struct {
	RidgeLambda       float64 `mapstructure:"ridge_lambda" validate:"min=0"`
	ElasticNetLambda  float64 `mapstructure:"elastic_net_lambda" validate:"min=0"`
	ElasticNetAlpha   float64 `mapstructure:"elastic_net_alpha" validate:"min=0,max=1"`
	ElasticNetMaxIter int     `mapstructure:"elastic_net_max_iter" validate:"min=1"`
	ElasticNetTol     float64 `mapstructure:"elastic_net_tol" validate:"gt=0"`
}

// Config is the complete analyzer run configuration.
type Config struct {
	TimeCPURatio float64 `mapstructure:"time_cpu_ratio" validate:"min=0,max=1"`
	FilterDBTime float64 `mapstructure:"filter_db_time" validate:"min=0"`
	SnapRange    string  `mapstructure:"snap_range" validate:"required"`
	Parallel     int     `mapstructure:"parallel" validate:"min=1,max=256"`

	MAD      MADConfig      `mapstructure:"mad"`
	Gradient GradientConfig `mapstructure:"gradient"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// LoggerConfig controls the zap logger's level/encoding, mirroring the
// teacher's logger configuration shape.
type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Defaults, per SPEC_FULL.md §6's configuration surface.
const (
	DefaultTimeCPURatio      = 0.666
	DefaultFilterDBTime      = 0.0
	DefaultSnapRange         = "0-666666666"
	DefaultParallel          = 4
	DefaultMADThreshold      = 7.0
	DefaultMADWindowSize     = 100
	DefaultRidgeLambda       = 1.0
	DefaultElasticNetLambda  = 0.1
	DefaultElasticNetAlpha   = 0.5
	DefaultElasticNetMaxIter = 1000
	DefaultElasticNetTol     = 1e-6
)

// NewDefault returns a Config populated with every default named in
// SPEC_FULL.md §6.
func NewDefault() *Config {
	return &Config{
		TimeCPURatio: DefaultTimeCPURatio,
		FilterDBTime: DefaultFilterDBTime,
		SnapRange:    DefaultSnapRange,
		Parallel:     DefaultParallel,
		MAD: MADConfig{
			Threshold:  DefaultMADThreshold,
			WindowSize: DefaultMADWindowSize,
		},
		Gradient: GradientConfig{
			RidgeLambda:       DefaultRidgeLambda,
			ElasticNetLambda:  DefaultElasticNetLambda,
			ElasticNetAlpha:   DefaultElasticNetAlpha,
			ElasticNetMaxIter: DefaultElasticNetMaxIter,
			ElasticNetTol:     DefaultElasticNetTol,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configFile (if non-empty) over a default configuration via
// viper, unmarshals into a Config, and validates it. An empty configFile
// loads pure defaults.
func Load(configFile string) (*Config, error) {
	cfg := NewDefault()

	v := viper.New()
	v.SetConfigType("yaml")
	setViperDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %q", configFile)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal configuration")
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func setViperDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("time_cpu_ratio", cfg.TimeCPURatio)
	v.SetDefault("filter_db_time", cfg.FilterDBTime)
	v.SetDefault("snap_range", cfg.SnapRange)
	v.SetDefault("parallel", cfg.Parallel)
	v.SetDefault("mad.mad_threshold", cfg.MAD.Threshold)
	v.SetDefault("mad.mad_window_size", cfg.MAD.WindowSize)
	v.SetDefault("gradient.ridge_lambda", cfg.Gradient.RidgeLambda)
	v.SetDefault("gradient.elastic_net_lambda", cfg.Gradient.ElasticNetLambda)
	v.SetDefault("gradient.elastic_net_alpha", cfg.Gradient.ElasticNetAlpha)
	v.SetDefault("gradient.elastic_net_max_iter", cfg.Gradient.ElasticNetMaxIter)
	v.SetDefault("gradient.elastic_net_tol", cfg.Gradient.ElasticNetTol)
	v.SetDefault("logger.level", cfg.Logger.Level)
	v.SetDefault("logger.format", cfg.Logger.Format)
}

// Validate runs the go-playground/validator struct-tag checks; there are no
// hand-written cross-field rules. snap_range is only required to be
// non-empty here: its BEGIN-END shape and BEGIN<=END are checked by
// loader.ParseRange at load time, since parsing it is the loader's concern,
// not config's.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, fmt.Sprintf("field %q failed validation %q (value: %v)", e.Namespace(), e.Tag(), e.Value()))
	}
	return errors.Errorf("%v", messages)
}

// ApplyOverrides applies every non-nil CLI override (an explicit 0
// included) on top of cfg, then
// re-validates, mirroring the teacher's CLI-override-then-revalidate flow.
func ApplyOverrides(cfg *Config, o CLIOverrides) error {
	if o.TimeCPURatio != nil {
		cfg.TimeCPURatio = *o.TimeCPURatio
	}
	if o.FilterDBTime != nil {
		cfg.FilterDBTime = *o.FilterDBTime
	}
	if o.SnapRange != nil {
		cfg.SnapRange = *o.SnapRange
	}
	if o.Parallel != nil {
		cfg.Parallel = *o.Parallel
	}
	if o.MADThreshold != nil {
		cfg.MAD.Threshold = *o.MADThreshold
	}
	if o.MADWindowSize != nil {
		cfg.MAD.WindowSize = *o.MADWindowSize
	}
	if o.RidgeLambda != nil {
		cfg.Gradient.RidgeLambda = *o.RidgeLambda
	}
	if o.ElasticNetLambda != nil {
		cfg.Gradient.ElasticNetLambda = *o.ElasticNetLambda
	}
	if o.ElasticNetAlpha != nil {
		cfg.Gradient.ElasticNetAlpha = *o.ElasticNetAlpha
	}
	if o.ElasticNetMaxIter != nil {
		cfg.Gradient.ElasticNetMaxIter = *o.ElasticNetMaxIter
	}
	if o.ElasticNetTol != nil {
		cfg.Gradient.ElasticNetTol = *o.ElasticNetTol
	}

	return Validate(cfg)
}

// CLIOverrides carries optional flag values from cmd/jasmin-awr; a nil
// field means "flag not set, keep the loaded/default value".
type CLIOverrides struct {
	TimeCPURatio      *float64
	FilterDBTime      *float64
	SnapRange         *string
	Parallel          *int
	MADThreshold      *float64
	MADWindowSize     *int
	RidgeLambda       *float64
	ElasticNetLambda  *float64
	ElasticNetAlpha   *float64
	ElasticNetMaxIter *int
	ElasticNetTol     *float64
}
