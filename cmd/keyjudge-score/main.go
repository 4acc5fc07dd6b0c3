// keyjudge-score scores one replay against one chart, either in batch
// (reading a recorded replay file) or live (reading the keyboard and,
// optionally, playing the song's audio in sync), mirroring the
// teacher's single-binary, kingpin-flag-driven command shape.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"golang.org/x/term"
	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/keyjudge/internal/chart"
	"git.lost.host/meutraa/keyjudge/internal/chartio"
	"git.lost.host/meutraa/keyjudge/internal/gradelamp"
	"git.lost.host/meutraa/keyjudge/internal/judge"
	"git.lost.host/meutraa/keyjudge/internal/replay"
	"git.lost.host/meutraa/keyjudge/internal/ruleset"
	"git.lost.host/meutraa/keyjudge/internal/store"
)

var (
	chartPath   = kingpin.Arg("chart", "Chart JSON file").Required().ExistingFile()
	replayPath  = kingpin.Flag("replay", "Recorded replay JSON file (batch mode)").ExistingFile()
	rulesetPath = kingpin.Flag("ruleset", "Ruleset YAML file").String()
	rate        = kingpin.Flag("rate", "Playback rate").Default("1.0").Short('r').Float64()
	dbPath      = kingpin.Flag("db", "Attempt/personal-best database path").Default("./keyjudge.db").String()
	live        = kingpin.Flag("live", "Read the keyboard live instead of a recorded replay").Bool()
	audio       = kingpin.Flag("audio", "Audio file to play in sync (live mode only)").ExistingFile()
	keys        = kingpin.Flag("keys", "Key bindings, one rune per lane, in lane order").Default("dfjk").String()
)

func main() {
	kingpin.Version("0.1.0")
	kingpin.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	if err := run(logger); err != nil {
		logger.Fatal("run failed", "err", err)
	}
}

func run(logger *log.Logger) error {
	c, err := chartio.LoadChart(*chartPath)
	if err != nil {
		return err
	}

	rs := ruleset.Default()
	if *rulesetPath != "" {
		rs, err = ruleset.LoadYAML(*rulesetPath)
		if err != nil {
			return fmt.Errorf("loading ruleset: %w", err)
		}
	}

	st, err := store.Open(*dbPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	var src replay.Source
	var frames []replay.Frame
	if *live {
		frames, err = captureLive(logger, c.Keys, []rune(*keys))
		if err != nil {
			return err
		}
		src = replay.NewSliceSource(frames)
	} else {
		if *replayPath == "" {
			return fmt.Errorf("either --replay or --live is required")
		}
		frames, err = chartio.LoadReplay(*replayPath)
		if err != nil {
			return err
		}
		src = replay.NewSliceSource(frames)
	}

	engine, err := judge.NewEngine(c, rs, src, *rate, gradelamp.LampName)
	if err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}

	engine.OnHit(func(e judge.HitEvent) {
		logger.Debug("resolved", "t", e.Time, "column", e.Column, "hit", e.Hit != nil, "release", e.Release != nil)
	})

	engine.Finish()

	state := engine.State()
	logger.Info("run complete",
		"accuracy", state.Accuracy(),
		"grade", gradelamp.Grade(state, rs),
		"lamp", gradelamp.LampName(state, rs),
		"best_combo", state.BestCombo,
		"failed", engine.Failed(),
	)

	if err := st.SaveAttempt(c, frames, *rate, time.Now()); err != nil {
		logger.Warn("could not save attempt", "err", err)
	}
	improvement, err := st.RecordAttempt(c, state.PointsScored, state.MaxPointsScored, float32(*rate))
	if err != nil {
		logger.Warn("could not record personal best", "err", err)
	} else {
		logger.Info("personal best classification", "improvement", improvement)
	}

	return nil
}

// captureLive reads raw keyboard events until the user hits Esc or Ctrl-C,
// translating key runes into lane bitmask frames, optionally playing
// audio in sync — grounded on the teacher's eiannone/keyboard +
// golang.org/x/term + faiface/beep live-play loop.
func captureLive(logger *log.Logger, keyCount int, lanes []rune) ([]replay.Frame, error) {
	if _, _, err := term.GetSize(int(os.Stdout.Fd())); err != nil {
		return nil, fmt.Errorf("unable to get terminal size: %w", err)
	}

	keysCh, err := keyboard.GetKeys(128)
	if err != nil {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer keyboard.Close()

	if *audio != "" {
		if err := startAudio(*audio); err != nil {
			logger.Warn("audio sync unavailable", "err", err)
		}
	}

	start := time.Now()
	var bits chart.KeyMask
	var frames []replay.Frame

	for event := range keysCh {
		if event.Key == keyboard.KeyEsc || event.Key == keyboard.KeyCtrlC {
			break
		}
		lane := -1
		for i, r := range lanes {
			if i >= keyCount {
				break
			}
			if r == event.Rune {
				lane = i
				break
			}
		}
		if lane == -1 {
			continue
		}
		bits ^= 1 << uint(lane)
		frames = append(frames, replay.Frame{Time: time.Since(start), Bits: bits})
	}
	return frames, nil
}

func startAudio(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening audio: %w", err)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch {
	case hasSuffix(path, ".mp3"):
		streamer, format, err = mp3.Decode(f)
	case hasSuffix(path, ".ogg"):
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported audio format: %s", path)
	}
	if err != nil {
		return fmt.Errorf("decoding audio: %w", err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(streamer)
	return nil
}

func hasSuffix(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	return s[len(s)-len(suffix):] == suffix
}
