package ruleset

import (
	"path/filepath"
	"os"
	"testing"
)

const testYAML = `
name: test
miss_window: 180ms
cbrush_window: 90ms
default_judgement: 1
timegates:
  - time: 50ms
    judgement: 0
points:
  kind: 0
  max_weight: 100
  weights: [100, 0]
hold_behaviour:
  kind: 0
health:
  start: 1.0
  clear_threshold: 0.0
  deltas: [0.01, -0.05]
judgements:
  - name: Good
    breaks_combo: false
  - name: Miss
    breaks_combo: true
grades:
  - name: A
    accuracy_threshold: 0.8
lamps: []
`

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ruleset.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	r, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML() failed: %v", err)
	}
	if r.Name != "test" {
		t.Errorf("Name = %q, want %q", r.Name, "test")
	}
	if len(r.Judgements) != 2 {
		t.Fatalf("len(Judgements) = %d, want 2", len(r.Judgements))
	}
}

func TestLoadYAMLRejectsInvalidFile(t *testing.T) {
	if _, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadYAML() error = nil, want error for missing file")
	}
}
