package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/pcomb/foundation/combinator/parser"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	"github.com/msto63/pcomb/internal/history"
	"github.com/msto63/pcomb/internal/tui"
	"github.com/msto63/pcomb/pkg/core/version"
)

var (
	historySource    string
	historyStatus    string
	historyLimit     int
	historySince     time.Duration
	historyOlderThan time.Duration
	historyFormat    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Gespeicherte Parse-Läufe",
	Long: `Verwaltet die Parse-Historie (SQLite, Pfad aus history.path).

Läufe werden mit pcomb parse --record oder history.enabled = true
gespeichert.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Läufe auflisten",
	Long: `Listet gespeicherte Läufe, neueste zuerst.

Beispiele:
  pcomb history list
  pcomb history list --status Failure --limit 5
  pcomb history list --since 24h`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Einen Lauf anzeigen",
	Long: `Zeigt einen gespeicherten Lauf mit seinem AST. Ein eindeutiges
Präfix der ID genügt.

Beispiele:
  pcomb history show 3f2a9c
  pcomb history show --format json 3f2a9c`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Alte Läufe löschen",
	Long: `Löscht Läufe, die älter als --older-than sind.

Beispiele:
  pcomb history prune --older-than 720h`,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyListCmd.Flags().StringVar(&historySource, "source", "", "Nur Läufe dieser Quelle")
	historyListCmd.Flags().StringVar(&historyStatus, "status", "", "Nur Success oder Failure")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Max. Anzahl")
	historyListCmd.Flags().DurationVar(&historySince, "since", 0, "Nur Läufe der letzten Zeitspanne")

	historyShowCmd.Flags().StringVarP(&historyFormat, "format", "f", formatTree, "Ausgabeformat (text, tree, json, yaml)")

	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 30*24*time.Hour, "Mindestalter")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("Historie konnte nicht geöffnet werden: %w", err)
	}
	defer store.Close()

	filter := history.Filter{Source: historySource, Status: historyStatus, Limit: historyLimit}
	if historySince > 0 {
		filter.Since = time.Now().Add(-historySince)
	}

	runs, err := store.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("Läufe konnten nicht geladen werden: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Keine Läufe gespeichert.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tZEIT\tSTATUS\tBYTES\tREST\tDAUER\tQUELLE")
	for _, run := range runs {
		status := run.Status
		if run.ErrorCode != "" {
			status += " (" + run.ErrorCode + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d\t%.2fms\t%s\n",
			shortID(run.ID), run.Timestamp.Local().Format("2006-01-02 15:04:05"), status,
			run.MatchedLength, run.InputLength, run.RestLength, run.DurationMs, run.Source)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("Historie konnte nicht geöffnet werden: %w", err)
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("Lauf nicht gefunden: %w", err)
	}
	warnIncompatible(run.GrammarVersion)

	out := cmd.OutOrStdout()
	switch historyFormat {
	case formatJSON, formatYAML:
		return encodeDocument(out, historyFormat, run)
	case formatText:
		fmt.Fprintf(out, "Lauf %s  %s  %s\n", run.ID, run.Timestamp.Local().Format(time.RFC3339), run.Source)
		return runResult(run).WriteReport(out)
	case formatTree:
		fmt.Fprintf(out, "Lauf %s  %s  %s\n\n", run.ID, run.Timestamp.Local().Format(time.RFC3339), run.Source)
		if run.Status != parser.Success.String() {
			fmt.Fprintf(out, "Failure: %s\n", run.Error)
			return nil
		}
		_, err := fmt.Fprint(out, tui.RenderTree(run.Fragments, tui.DefaultStyles()))
		return err
	default:
		return fmt.Errorf("unbekanntes Format %q", historyFormat)
	}
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("Historie konnte nicht geöffnet werden: %w", err)
	}
	defer store.Close()

	removed, err := store.Prune(cmd.Context(), historyOlderThan)
	if err != nil {
		return fmt.Errorf("Löschen fehlgeschlagen: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d Läufe gelöscht.\n", removed)
	return nil
}

// runResult rebuilds the report view of a stored run. The matched text is
// not stored, so the report shows lengths instead.
func runResult(run *history.Run) parser.Result {
	if run.Status != parser.Success.String() {
		return parser.Fail(mdwerror.Code(run.ErrorCode), run.Error)
	}
	r := parser.Succeed(fmt.Sprintf("<%d Bytes>", run.MatchedLength), fmt.Sprintf("<%d Bytes>", run.RestLength))
	r.Results = run.Fragments
	return r
}

func warnIncompatible(recorded string) {
	ok, err := version.Compatible(recorded)
	if err != nil || !ok {
		printError("Warnung", fmt.Errorf("Lauf wurde mit Grammatik %s aufgezeichnet, aktuell ist %s (%s)",
			recorded, version.Grammar, version.GrammarConstraint()))
	}
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
