package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/pcomb/foundation/combinator"
	mdwconfig "github.com/msto63/pcomb/foundation/core/config"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
	"github.com/msto63/pcomb/internal/watcher"
	"github.com/msto63/pcomb/pkg/core/cache"
)

var (
	watchFormat   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <datei>",
	Short: "Datei beobachten und bei Änderungen neu parsen",
	Long: `Parst eine Datei und danach nach jeder Änderung erneut.

Ist eine Config-Datei geladen, wird auch sie beobachtet: geänderte
[engine]-Werte gelten ab dem nächsten Parse-Lauf.

Beispiele:
  pcomb watch programm.toy
  pcomb watch --format text programm.toy
  pcomb --config configs/pcomb.toml watch programm.toy`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", formatTree, "Ausgabeformat (text, tree, json, yaml)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Wartezeit nach einer Änderung")
}

// parseRun is one cached parse of a file content
type parseRun struct {
	outcome *combinator.Outcome
	err     error
}

// liveEngine is rebuilt when the configuration file changes. Outcomes are
// cached by content so saving an unchanged file does not parse again.
type liveEngine struct {
	mu     sync.RWMutex
	engine *combinator.Engine
	runs   *cache.Cache[parseRun]
}

func newLiveEngine(e *combinator.Engine) *liveEngine {
	return &liveEngine{engine: e, runs: cache.New[parseRun](cache.DefaultConfig())}
}

func (l *liveEngine) set(e *combinator.Engine) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.engine = e
	l.runs.Clear()
}

// parse returns the outcome for content; cached is true when it was reused
func (l *liveEngine) parse(content string) (run parseRun, cached bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	key := cache.Key(content)
	if run, ok := l.runs.Get(key); ok {
		return run, true
	}
	run.outcome, run.err = l.engine.Parse(content)
	l.runs.Set(key, run)
	return run, false
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := appConfig
	if path := appConfig.FilePath(); path != "" {
		watched, err := loadConfig(path, true)
		if err != nil {
			return fmt.Errorf("Konfiguration konnte nicht beobachtet werden: %w", err)
		}
		defer watched.StopWatching()
		cfg = watched
	}

	engine, err := newEngine(cfg, nil)
	if err != nil {
		return fmt.Errorf("Engine konnte nicht erstellt werden: %w", err)
	}
	live := newLiveEngine(engine)

	cfg.OnChange(func(c *mdwconfig.Config) {
		next, err := newEngine(c, nil)
		if err != nil {
			logger.WarnWithErr("engine reload failed, keeping previous settings", err)
			return
		}
		live.set(next)
		logger.Info("engine reloaded", mdwlog.Fields{"file": c.FilePath()})
	})

	out := cmd.OutOrStdout()
	handle := func(path, content string) {
		run, cached := live.parse(content)
		note := ""
		if cached {
			note = "  (unverändert)"
		}
		fmt.Fprintf(out, "%s\n%s  %s%s\n", strings.Repeat("─", 60), time.Now().Format("15:04:05"), path, note)

		outcome, err := run.outcome, run.err
		if outcome == nil {
			printError("Parsen abgebrochen", err)
			return
		}
		if werr := writeOutcome(out, watchFormat, path, outcome); werr != nil {
			printError("Ausgabe fehlgeschlagen", werr)
		}
		if err != nil {
			printError("Parsen fehlgeschlagen", err)
		}
	}

	fmt.Fprintf(out, "Beobachte %s (Strg+C zum Beenden)\n", args[0])
	err = watcher.Watch(ctx, args[0], watcher.Options{Debounce: watchDebounce, Logger: logger}, handle)
	if err != nil {
		return fmt.Errorf("Beobachten fehlgeschlagen: %w", err)
	}
	return nil
}
