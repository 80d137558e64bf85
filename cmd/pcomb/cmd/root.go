package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwconfig "github.com/msto63/pcomb/foundation/core/config"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
	"github.com/msto63/pcomb/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *mdwconfig.Config
	logger    *mdwlog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "pcomb",
	Short: "pcomb - Parser-Combinator Engine",
	Long: `pcomb parst Quelltext der eingebauten Toy-Sprache mit einer
Grammatik aus Parser-Kombinatoren und zeigt den entstehenden AST.

Befehle:
  parse    - Quelltext parsen und Ergebnis ausgeben
  watch    - Datei beobachten und bei Änderungen neu parsen
  explore  - AST interaktiv im Terminal durchsuchen
  history  - Gespeicherte Parse-Läufe anzeigen
  grammar  - Grammatik-Regeln ausgeben
  config   - Effektive Konfiguration anzeigen`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fehler: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/pcomb.toml, falls vorhanden)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// setup loads the configuration and creates the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile, false)
	if err != nil {
		return fmt.Errorf("Konfiguration konnte nicht geladen werden: %w", err)
	}
	appConfig = cfg

	logCfg := logging.FromConfig("pcomb", cfg)
	if verbose {
		logCfg.Level = "debug"
	}
	logger, logCloser, err = logging.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("Logger konnte nicht erstellt werden: %w", err)
	}
	logger.Debug("configuration loaded", mdwlog.Fields{"file": cfg.FilePath(), "command": cmd.Name()})
	return nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
