package ruleset

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a Timegate, parsing its time field as a Go
// duration string ("50ms") rather than yaml.v3's default numeric
// decoding, since time.Duration has no native YAML string support.
func (t *Timegate) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Time      string      `yaml:"time"`
		Judgement JudgementID `yaml:"judgement"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	d, err := time.ParseDuration(raw.Time)
	if err != nil {
		return fmt.Errorf("ruleset: timegate time %q: %w", raw.Time, err)
	}
	t.Time = d
	t.Judgement = raw.Judgement
	return nil
}

// UnmarshalYAML decodes a Ruleset, parsing its two duration-string
// fields explicitly for the same reason as Timegate.UnmarshalYAML.
// Nested Timegate values decode through their own UnmarshalYAML.
func (r *Ruleset) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name             string         `yaml:"name"`
		MissWindow       string         `yaml:"miss_window"`
		CbrushWindow     string         `yaml:"cbrush_window"`
		Timegates        []Timegate     `yaml:"timegates"`
		DefaultJudgement JudgementID    `yaml:"default_judgement"`
		Points           PointsSpec     `yaml:"points"`
		Hold             HoldBehaviour  `yaml:"hold_behaviour"`
		Health           HealthConfig   `yaml:"health"`
		Judgements       []JudgementDef `yaml:"judgements"`
		Grades           []GradeDef     `yaml:"grades"`
		Lamps            []LampDef      `yaml:"lamps"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	missWindow, err := time.ParseDuration(raw.MissWindow)
	if err != nil {
		return fmt.Errorf("ruleset: miss_window %q: %w", raw.MissWindow, err)
	}
	cbrushWindow, err := time.ParseDuration(raw.CbrushWindow)
	if err != nil {
		return fmt.Errorf("ruleset: cbrush_window %q: %w", raw.CbrushWindow, err)
	}
	*r = Ruleset{
		Name:             raw.Name,
		MissWindow:       missWindow,
		CbrushWindow:     cbrushWindow,
		Timegates:        raw.Timegates,
		DefaultJudgement: raw.DefaultJudgement,
		Points:           raw.Points,
		Hold:             raw.Hold,
		Health:           raw.Health,
		Judgements:       raw.Judgements,
		Grades:           raw.Grades,
		Lamps:            raw.Lamps,
	}
	return nil
}
