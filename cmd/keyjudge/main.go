// keyjudge is the multi-subcommand CLI around the scoring engine:
// "watch" drives a live terminal view of a replay being judged,
// "bench" batch-scores a replay and prints a summary, and
// "migrate-pb" upgrades a database's legacy personal-bests rows.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

var (
	flagDBPath      string
	flagRulesetPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keyjudge",
	Short: "Keyed rhythm-game scoring and judgement engine",
	Long: `keyjudge scores replays against charts using a pluggable ruleset.

Available commands:
  watch       - Watch a replay being judged in a live terminal view
  bench       - Batch-score a replay and print a summary
  history     - Browse a chart's personal-bests frontier
  migrate-pb  - Upgrade a database's legacy personal-bests rows

Examples:
  keyjudge bench chart.json --replay replay.json
  keyjudge watch chart.json --replay replay.json
  keyjudge history chart.json
  keyjudge migrate-pb --db keyjudge.db chart.json`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "./keyjudge.db", "Path to the attempt/personal-best database")
	rootCmd.PersistentFlags().StringVar(&flagRulesetPath, "ruleset", "", "Ruleset YAML file (default: built-in standard ruleset)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(migratePBCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadRuleset() (*ruleset.Ruleset, error) {
	if flagRulesetPath == "" {
		return ruleset.Default(), nil
	}
	return ruleset.LoadYAML(flagRulesetPath)
}
