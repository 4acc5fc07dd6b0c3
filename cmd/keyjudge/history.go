package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"git.lost.host/meutraa/keyjudge/internal/chartio"
	"git.lost.host/meutraa/keyjudge/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history <chart>",
	Short: "Browse a chart's personal-bests frontier in a live table",
	Long: `Show the personal-bests Pareto frontier for a chart as a scrollable
table: one row per rate the frontier still considers un-dominated.

Examples:
  keyjudge history chart.json`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	c, err := chartio.LoadChart(args[0])
	if err != nil {
		return err
	}
	st, err := store.Open(flagDBPath, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	frontier, err := st.LoadFrontier(c)
	if err != nil {
		return err
	}

	columns := []table.Column{
		{Title: "Rate", Width: 8},
		{Title: "Accuracy", Width: 12},
	}
	rows := make([]table.Row, len(frontier))
	for i, e := range frontier {
		acc := 1.0
		if e.Value.MaxPointsScored != 0 {
			acc = e.Value.PointsScored / e.Value.MaxPointsScored
		}
		rows[i] = table.Row{fmt.Sprintf("%.2fx", e.Rate), fmt.Sprintf("%.2f%%", acc*100)}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)

	_, err = tea.NewProgram(historyModel{table: t}).Run()
	return err
}

var quitKey = key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"))

type historyModel struct {
	table table.Model
}

func (m historyModel) Init() tea.Cmd { return nil }

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, quitKey) {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m historyModel) View() string {
	return m.table.View() + "\n(q to quit)\n"
}
