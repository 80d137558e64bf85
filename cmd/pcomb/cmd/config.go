package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/msto63/pcomb/foundation/combinator"
	mdwconfig "github.com/msto63/pcomb/foundation/core/config"
	"github.com/msto63/pcomb/pkg/core/logging"
)

const (
	envPrefix         = "PCOMB"
	defaultConfigPath = "./configs/pcomb.toml"

	keyHistoryEnabled = "history.enabled"
	keyHistoryPath    = "history.path"
	keyOutputFormat   = "output.format"
)

var configDefaults = map[string]interface{}{
	combinator.KeyMaxInputLength:  combinator.DefaultMaxInputLength,
	combinator.KeyMaxDepth:        combinator.DefaultMaxDepth,
	combinator.KeyMaxSteps:        0,
	combinator.KeyRequireComplete: false,
	combinator.KeyTraceRules:      false,
	logging.KeyLevel:              "warn",
	logging.KeyFormat:             "console",
	keyHistoryEnabled:             false,
	keyHistoryPath:                "./data/history.db",
	keyOutputFormat:               "text",
}

// loadConfig loads path, or the default file when it exists, or only the
// defaults. Environment variables with the PCOMB_ prefix override all three.
func loadConfig(path string, watch bool) (*mdwconfig.Config, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return mdwconfig.New(envPrefix, configDefaults), nil
		}
		path = defaultConfigPath
	}
	return mdwconfig.LoadWithOptions(path, mdwconfig.LoadOptions{
		Format:    mdwconfig.FormatAuto,
		EnvPrefix: envPrefix,
		Defaults:  configDefaults,
		Watch:     watch,
	})
}

// effectiveConfig is the configuration after defaults and overrides
type effectiveConfig struct {
	Engine struct {
		MaxInputLength  int  `toml:"max_input_length"`
		MaxDepth        int  `toml:"max_depth"`
		MaxSteps        int  `toml:"max_steps"`
		RequireComplete bool `toml:"require_complete"`
		TraceRules      bool `toml:"trace_rules"`
	} `toml:"engine"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
		File   string `toml:"file,omitempty"`
	} `toml:"log"`
	History struct {
		Enabled bool   `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"history"`
	Output struct {
		Format string `toml:"format"`
	} `toml:"output"`
}

func resolveConfig(cfg *mdwconfig.Config) effectiveConfig {
	var out effectiveConfig

	engine := combinator.OptionsFromConfig(cfg)
	out.Engine.MaxInputLength = engine.MaxInputLength
	out.Engine.MaxDepth = engine.MaxDepth
	out.Engine.MaxSteps = engine.MaxSteps
	out.Engine.RequireComplete = engine.RequireComplete
	out.Engine.TraceRules = engine.TraceRules

	logCfg := logging.FromConfig("pcomb", cfg)
	out.Log.Level = logCfg.Level
	out.Log.Format = logCfg.Format
	out.Log.File = logCfg.File

	out.History.Enabled = cfg.GetBool(keyHistoryEnabled)
	out.History.Path = cfg.GetString(keyHistoryPath)
	out.Output.Format = cfg.GetString(keyOutputFormat)
	return out
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Zeigt die effektive Konfiguration an",
	Long: `Gibt die Konfiguration aus, mit der pcomb arbeitet: Datei-Werte,
Defaults und PCOMB_* Umgebungsvariablen zusammengeführt, im TOML-Format.

Beispiele:
  pcomb config
  PCOMB_ENGINE_MAX_STEPS=5000 pcomb config
  pcomb config > configs/pcomb.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if path := appConfig.FilePath(); path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# Quelle: %s\n", path)
		}
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(resolveConfig(appConfig))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
