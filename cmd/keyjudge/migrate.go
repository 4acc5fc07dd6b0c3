package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"git.lost.host/meutraa/keyjudge/internal/chartio"
	"git.lost.host/meutraa/keyjudge/internal/store"
)

var migratePBCmd = &cobra.Command{
	Use:   "migrate-pb <chart>",
	Short: "Upgrade a database's legacy personal-bests rows",
	Long: `Upgrade a chart's legacy best/fastest personal-bests rows into the
two-axis personal-bests frontier, if any legacy rows exist.

Examples:
  keyjudge migrate-pb --db keyjudge.db chart.json`,
	Args: cobra.ExactArgs(1),
	RunE: runMigratePB,
}

func runMigratePB(cmd *cobra.Command, args []string) error {
	c, err := chartio.LoadChart(args[0])
	if err != nil {
		return err
	}
	st, err := store.Open(flagDBPath, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.MigrateLegacyBests(c); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "migration complete")
	return nil
}
