package locgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override configuration,
// e.g. LOCGEN_INPUT or LOCGEN_FIRST_STRING_ID.
const EnvPrefix = "LOCGEN"

// ConfigName is the base name of the config file searched for in the
// working directory when no explicit path is given.
const ConfigName = "locgen"

// LoadConfig reads configuration from a YAML file, LOCGEN_* environment
// variables and flags, in increasing order of precedence. A missing config
// file is not an error unless configPath names it explicitly.
//
// Territories are given as a list so that route names keep their case:
//
//	territories:
//	  - name: Mojave Sub
//	    code: 100
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Logger = zerolog.Nop()
	return &cfg, nil
}

func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("input", def.InputDir)
	v.SetDefault("table-out", def.TableOutput)
	v.SetDefault("rc-out", def.ResourceOutput)
	v.SetDefault("format", string(def.Format))
	v.SetDefault("package", def.Package)
	v.SetDefault("language", def.Language)
	v.SetDefault("first-string-id", def.FirstStringID)
	v.SetDefault("ignore", def.IgnorePatterns)
	v.SetDefault("dry-run", def.DryRun)

	territories := make([]map[string]any, len(def.Territories))
	for i, t := range def.Territories {
		territories[i] = map[string]any{"name": t.Name, "code": t.Code}
	}
	v.SetDefault("territories", territories)
}
