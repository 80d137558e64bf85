package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/pcomb/internal/toylang"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar [regel...]",
	Short: "Grammatik-Regeln ausgeben",
	Long: `Gibt die Regeln der Toy-Sprache aus, in Definitionsreihenfolge.
Die Startregel ist mit * markiert; &name ist eine Referenz auf eine
später definierte Regel.

Beispiele:
  pcomb grammar
  pcomb grammar expression value`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := toylang.NewGrammar(logger)
		if err != nil {
			return fmt.Errorf("Grammatik konnte nicht erstellt werden: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintf(out, "# %s (%d Regeln)\n", g.Name(), len(g.Rules()))
			_, err := fmt.Fprint(out, g)
			return err
		}

		for _, name := range args {
			def, ok := g.Describe(name)
			if !ok {
				return fmt.Errorf("unbekannte Regel %q", name)
			}
			fmt.Fprintf(out, "%s = %s\n", name, def)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grammarCmd)
}
