package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"git.lost.host/meutraa/keyjudge/internal/chartio"
	"git.lost.host/meutraa/keyjudge/internal/gradelamp"
	"git.lost.host/meutraa/keyjudge/internal/judge"
	"git.lost.host/meutraa/keyjudge/internal/replay"
	"git.lost.host/meutraa/keyjudge/internal/store"
)

var (
	flagBenchReplay string
	flagBenchRate   float64
)

var benchCmd = &cobra.Command{
	Use:   "bench <chart>",
	Short: "Batch-score a replay and print a summary",
	Long: `Score a recorded replay against a chart and print the resulting
judgement counts, accuracy, grade, and lamp.

Examples:
  keyjudge bench chart.json --replay replay.json
  keyjudge bench chart.json --replay replay.json --rate 1.2`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&flagBenchReplay, "replay", "", "Recorded replay JSON file (required)")
	benchCmd.Flags().Float64Var(&flagBenchRate, "rate", 1.0, "Playback rate")
	benchCmd.MarkFlagRequired("replay")
}

func runBench(cmd *cobra.Command, args []string) error {
	c, err := chartio.LoadChart(args[0])
	if err != nil {
		return err
	}
	frames, err := chartio.LoadReplay(flagBenchReplay)
	if err != nil {
		return err
	}
	rs, err := loadRuleset()
	if err != nil {
		return err
	}

	engine, err := judge.NewEngine(c, rs, replay.NewSliceSource(frames), flagBenchRate, gradelamp.LampName)
	if err != nil {
		return err
	}
	engine.Finish()
	state := engine.State()

	fmt.Fprintf(os.Stdout, "Accuracy:   %.4f%%\n", state.Accuracy()*100)
	fmt.Fprintf(os.Stdout, "Grade:      %s\n", gradelamp.Grade(state, rs))
	fmt.Fprintf(os.Stdout, "Lamp:       %s\n", gradelamp.LampName(state, rs))
	fmt.Fprintf(os.Stdout, "Best combo: %d / %d\n", state.BestCombo, state.MaxPossibleCombo)
	fmt.Fprintf(os.Stdout, "Failed:     %v\n", engine.Failed())
	for i, def := range rs.Judgements {
		fmt.Fprintf(os.Stdout, "  %-12s %d\n", def.Name, state.JudgementCounts[i])
	}

	st, err := store.Open(flagDBPath, nil)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.SaveAttempt(c, frames, flagBenchRate, time.Now()); err != nil {
		return err
	}
	improvement, err := st.RecordAttempt(c, state.PointsScored, state.MaxPointsScored, float32(flagBenchRate))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Personal best: %v\n", improvement)
	return nil
}
