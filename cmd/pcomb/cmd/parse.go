package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/pcomb/foundation/combinator"
	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
	mdwconfig "github.com/msto63/pcomb/foundation/core/config"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
	"github.com/msto63/pcomb/internal/history"
	"github.com/msto63/pcomb/internal/toylang"
	"github.com/msto63/pcomb/internal/tui"
	"github.com/msto63/pcomb/pkg/core/version"
)

// Output formats
const (
	formatText = "text"
	formatTree = "tree"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	parseFormat          string
	parseRequireComplete bool
	parseMaxSteps        int
	parseMaxDepth        int
	parseRecord          bool
	parseTrace           bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [datei]",
	Short: "Quelltext parsen",
	Long: `Parst Quelltext der Toy-Sprache und gibt Ergebnis und AST aus.

Ohne Datei wird von stdin gelesen; ist stdin ein Terminal, wird das
eingebaute Demo-Programm geparst.

Formate:
  text  - Ergebnis-Report mit eingerücktem AST
  tree  - AST als Baum
  json  - Ergebnis und AST als JSON
  yaml  - Ergebnis und AST als YAML

Beispiele:
  pcomb parse
  pcomb parse programm.toy
  pcomb parse --format json programm.toy
  cat programm.toy | pcomb parse --require-complete
  pcomb parse --record programm.toy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Ausgabeformat (text, tree, json, yaml)")
	parseCmd.Flags().BoolVar(&parseRequireComplete, "require-complete", false, "Fehler, wenn Eingabe übrig bleibt")
	parseCmd.Flags().IntVar(&parseMaxSteps, "max-steps", -1, "Max. Parser-Aufrufe (0 = unbegrenzt)")
	parseCmd.Flags().IntVar(&parseMaxDepth, "max-depth", -1, "Max. Verschachtelungstiefe (0 = unbegrenzt)")
	parseCmd.Flags().BoolVar(&parseRecord, "record", false, "Lauf in der Historie speichern")
	parseCmd.Flags().BoolVar(&parseTrace, "trace", false, "Jede Regel auf Trace-Level loggen")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, input, err := readSource(args)
	if err != nil {
		return fmt.Errorf("Eingabe konnte nicht gelesen werden: %w", err)
	}

	engine, err := newEngine(appConfig, cmd)
	if err != nil {
		return fmt.Errorf("Engine konnte nicht erstellt werden: %w", err)
	}

	outcome, parseErr := engine.Parse(input)
	if outcome == nil {
		return fmt.Errorf("Parsen abgebrochen: %w", parseErr)
	}

	if parseRecord || appConfig.GetBool(keyHistoryEnabled) {
		if err := recordRun(cmd.Context(), source, outcome); err != nil {
			printError("Lauf konnte nicht gespeichert werden", err)
		}
	}

	format := parseFormat
	if format == "" {
		format = appConfig.GetString(keyOutputFormat, formatText)
	}
	if err := writeOutcome(cmd.OutOrStdout(), format, source, outcome); err != nil {
		return fmt.Errorf("Ausgabe fehlgeschlagen: %w", err)
	}

	if parseErr != nil {
		return fmt.Errorf("Parsen fehlgeschlagen: %w", parseErr)
	}
	if err := outcome.Result.Err(); err != nil {
		return fmt.Errorf("Parsen fehlgeschlagen: %w", err)
	}
	return nil
}

// readSource returns a display name and the text to parse
func readSource(args []string) (string, string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return args[0], string(data), nil
	}

	stat, _ := os.Stdin.Stat()
	if len(args) > 0 || (stat != nil && (stat.Mode()&os.ModeCharDevice) == 0) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return "stdin", string(data), nil
	}

	return "demo", toylang.DemoSource, nil
}

// newEngine builds the toy grammar and wraps it in an engine configured
// from cfg and the parse flags
func newEngine(cfg *mdwconfig.Config, cmd *cobra.Command) (*combinator.Engine, error) {
	g, err := toylang.NewGrammar(logger)
	if err != nil {
		return nil, err
	}

	opts := combinator.OptionsFromConfig(cfg)
	opts.Logger = logger
	if cmd != nil {
		flags := cmd.Flags()
		if flags.Changed("require-complete") {
			opts.RequireComplete = parseRequireComplete
		}
		if flags.Changed("max-steps") {
			opts.MaxSteps = parseMaxSteps
		}
		if flags.Changed("max-depth") {
			opts.MaxDepth = parseMaxDepth
		}
		if flags.Changed("trace") {
			opts.TraceRules = parseTrace
		}
	}
	return combinator.NewFromGrammar(g, opts)
}

func openHistory() (*history.Store, error) {
	return history.Open(history.Config{Path: appConfig.GetString(keyHistoryPath)})
}

func recordRun(ctx context.Context, source string, outcome *combinator.Outcome) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	name := source
	if abs, err := filepath.Abs(source); err == nil && source != "demo" && source != "stdin" {
		name = abs
	}

	run := history.NewRun(name, toylang.GrammarName, version.Grammar, outcome.InputLength, outcome.Result)
	run.Steps = outcome.Stats.Steps
	run.DurationMs = float64(outcome.Duration.Microseconds()) / 1000
	if err := store.Save(ctx, run); err != nil {
		return err
	}
	logger.Info("run recorded", mdwlog.Fields{"run_id": run.ID, "source": name})
	return nil
}

// outcomeDocument is the json/yaml shape of a parse
type outcomeDocument struct {
	Source     string            `json:"source" yaml:"source"`
	Status     string            `json:"status" yaml:"status"`
	Complete   bool              `json:"complete" yaml:"complete"`
	Matched    int               `json:"matched_length" yaml:"matched_length"`
	Rest       string            `json:"rest,omitempty" yaml:"rest,omitempty"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode  string            `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Steps      int               `json:"steps" yaml:"steps"`
	MaxDepth   int               `json:"max_depth" yaml:"max_depth"`
	DurationMs float64           `json:"duration_ms" yaml:"duration_ms"`
	Summary    *toylang.Summary  `json:"summary,omitempty" yaml:"summary,omitempty"`
	AST        []mdwast.Fragment `json:"ast" yaml:"ast"`
}

func newOutcomeDocument(source string, outcome *combinator.Outcome) outcomeDocument {
	r := outcome.Result
	doc := outcomeDocument{
		Source:     source,
		Status:     r.Status.String(),
		Complete:   outcome.Complete(),
		Steps:      outcome.Stats.Steps,
		MaxDepth:   outcome.Stats.MaxDepth,
		DurationMs: float64(outcome.Duration.Microseconds()) / 1000,
		AST:        r.Results,
	}
	if r.IsSuccess() {
		doc.Matched = len(r.Matched)
		doc.Rest = r.Rest
		summary := toylang.Summarize(r.Results)
		doc.Summary = &summary
	} else {
		doc.Error = r.Error
		doc.ErrorCode = string(r.Code)
	}
	if doc.AST == nil {
		doc.AST = []mdwast.Fragment{}
	}
	return doc
}

// writeOutcome renders a parse in one of the output formats
func writeOutcome(w io.Writer, format, source string, outcome *combinator.Outcome) error {
	switch format {
	case formatText:
		if err := outcome.Result.WriteReport(w); err != nil {
			return err
		}
		if outcome.Result.IsSuccess() {
			_, err := fmt.Fprintf(w, "\n%s\n", summaryLine(outcome))
			return err
		}
		return nil

	case formatTree:
		if outcome.Result.IsFailure() {
			_, err := fmt.Fprintf(w, "Failure: %s\n", outcome.Result.Error)
			return err
		}
		if _, err := io.WriteString(w, tui.RenderTree(outcome.Result.Results, tui.DefaultStyles())); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%s\n", summaryLine(outcome))
		return err

	case formatJSON, formatYAML:
		return encodeDocument(w, format, newOutcomeDocument(source, outcome))

	default:
		return mdwerror.Newf("unknown output format %q", format).
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("formats", []string{formatText, formatTree, formatJSON, formatYAML})
	}
}

// encodeDocument writes v as indented JSON or YAML
func encodeDocument(w io.Writer, format string, v interface{}) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func summaryLine(outcome *combinator.Outcome) string {
	s := toylang.Summarize(outcome.Result.Results)
	return fmt.Sprintf("%d Konstanten, %d Strukturen, %d Funktionen, %d Fragmente | %d/%d Bytes, %d Schritte, %s",
		s.Consts, s.Structs, s.Functions, s.Fragments,
		len(outcome.Result.Matched), outcome.InputLength, outcome.Stats.Steps, outcome.Duration)
}
