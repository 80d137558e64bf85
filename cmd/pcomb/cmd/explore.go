package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
	"github.com/msto63/pcomb/internal/toylang"
	"github.com/msto63/pcomb/internal/tui"
)

var exploreRun string

var exploreCmd = &cobra.Command{
	Use:   "explore [datei]",
	Short: "AST interaktiv durchsuchen",
	Long: `Parst Quelltext und öffnet den AST in einem interaktiven
Baum-Browser. Mit --run wird ein gespeicherter Lauf aus der Historie
geöffnet.

Tasten:
  ↑/↓ j/k   bewegen
  enter     Knoten auf-/zuklappen
  ←/→       schließen bzw. zum Elternknoten / öffnen
  e / c     alle öffnen / alle schließen
  q         beenden

Beispiele:
  pcomb explore
  pcomb explore programm.toy
  pcomb explore --run 3f2a9c`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().StringVar(&exploreRun, "run", "", "ID (oder Präfix) eines gespeicherten Laufs")
}

func runExplore(cmd *cobra.Command, args []string) error {
	var (
		title     string
		fragments []mdwast.Fragment
	)

	if exploreRun != "" {
		store, err := openHistory()
		if err != nil {
			return fmt.Errorf("Historie konnte nicht geöffnet werden: %w", err)
		}
		defer store.Close()

		run, err := store.Get(cmd.Context(), exploreRun)
		if err != nil {
			return fmt.Errorf("Lauf nicht gefunden: %w", err)
		}
		warnIncompatible(run.GrammarVersion)
		title = fmt.Sprintf("%s  (Lauf %s, %s)", run.Source, shortID(run.ID), run.Timestamp.Local().Format("2006-01-02 15:04"))
		fragments = run.Fragments
	} else {
		source, input, err := readSource(args)
		if err != nil {
			return fmt.Errorf("Eingabe konnte nicht gelesen werden: %w", err)
		}
		engine, err := newEngine(appConfig, nil)
		if err != nil {
			return fmt.Errorf("Engine konnte nicht erstellt werden: %w", err)
		}
		outcome, err := engine.Parse(input)
		if err != nil {
			return fmt.Errorf("Parsen fehlgeschlagen: %w", err)
		}
		if err := outcome.Result.Err(); err != nil {
			return fmt.Errorf("Parsen fehlgeschlagen: %w", err)
		}
		title = source
		fragments = outcome.Result.Results
	}

	s := toylang.Summarize(fragments)
	info := fmt.Sprintf("%d Konstanten, %d Strukturen, %d Funktionen, %d Fragmente, Tiefe %d",
		s.Consts, s.Structs, s.Functions, s.Fragments, s.TreeDepth)

	return tui.RunExplorer(tui.ExplorerConfig{
		Title:     title,
		Info:      info,
		Fragments: fragments,
		Styles:    tui.DefaultStyles(),
	})
}
