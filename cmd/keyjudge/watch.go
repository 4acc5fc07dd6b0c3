package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"git.lost.host/meutraa/keyjudge/internal/chartio"
	"git.lost.host/meutraa/keyjudge/internal/gradelamp"
	"git.lost.host/meutraa/keyjudge/internal/judge"
	"git.lost.host/meutraa/keyjudge/internal/replay"
	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

var (
	flagWatchReplay string
	flagWatchRate   float64
	flagWatchTick   int
)

var watchCmd = &cobra.Command{
	Use:   "watch <chart>",
	Short: "Watch a replay being judged in a live terminal view",
	Long: `Step a recorded replay through the judgement engine at wall-clock
speed, rendering live accuracy, combo, and judgement counts.

Examples:
  keyjudge watch chart.json --replay replay.json
  keyjudge watch chart.json --replay replay.json --tick 120`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchReplay, "replay", "", "Recorded replay JSON file (required)")
	watchCmd.Flags().Float64Var(&flagWatchRate, "rate", 1.0, "Playback rate")
	watchCmd.Flags().IntVar(&flagWatchTick, "tick", 60, "UI tick rate (frames per second)")
	watchCmd.MarkFlagRequired("replay")
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := chartio.LoadChart(args[0])
	if err != nil {
		return err
	}
	frames, err := chartio.LoadReplay(flagWatchReplay)
	if err != nil {
		return err
	}
	rs, err := loadRuleset()
	if err != nil {
		return err
	}

	engine, err := judge.NewEngine(c, rs, replay.NewSliceSource(frames), flagWatchRate, gradelamp.LampName)
	if err != nil {
		return err
	}

	m := watchModel{engine: engine, rs: rs, tickRate: flagWatchTick, start: time.Time{}}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(watchModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

type watchTickMsg time.Time

func watchTickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

type watchModel struct {
	engine   *judge.Engine
	rs       *ruleset.Ruleset
	tickRate int
	start    time.Time
	elapsed  time.Duration
	quitting bool
	err      error
}

func (m watchModel) Init() tea.Cmd {
	return watchTickCmd(m.tickRate)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case watchTickMsg:
		if m.start.IsZero() {
			m.start = time.Time(msg)
		}
		m.elapsed = time.Time(msg).Sub(m.start)
		if err := m.engine.Update(m.elapsed); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		if m.engine.Finished() {
			m.engine.Finish()
			m.quitting = true
			return m, tea.Quit
		}
		return m, watchTickCmd(m.tickRate)
	}
	return m, nil
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	comboStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

func (m watchModel) View() string {
	state := m.engine.State()
	lines := fmt.Sprintf(
		"%s %s\n%s %s\n%s %s\n%s %s\n",
		labelStyle.Render("accuracy:"), valueStyle.Render(fmt.Sprintf("%.2f%%", state.Accuracy()*100)),
		labelStyle.Render("combo:"), comboStyle.Render(fmt.Sprintf("%d", state.CurrentCombo)),
		labelStyle.Render("grade:"), valueStyle.Render(gradelamp.Grade(state, m.rs)),
		labelStyle.Render("lamp:"), valueStyle.Render(gradelamp.LampName(state, m.rs)),
	)
	switch {
	case m.err != nil:
		lines += fmt.Sprintf("\n(error: %v)\n", m.err)
	case m.quitting:
		lines += "\n(finished)\n"
	default:
		lines += "\n(q to quit)\n"
	}
	return lines
}
