package personalbest

import "testing"

func higherIsBetter(a, b float64) bool { return a > b }

func TestUpdateNewEntry(t *testing.T) {
	var f Frontier[float64]
	f, imp := Update(f, 0.95, 1.0, higherIsBetter)
	if imp != ImprovementNew {
		t.Fatalf("Update() improvement = %v, want ImprovementNew", imp)
	}
	if len(f) != 1 {
		t.Fatalf("len(frontier) = %d, want 1", len(f))
	}
}

func TestUpdateDominatedIsNone(t *testing.T) {
	f, _ := Update(nil, 0.95, 1.0, higherIsBetter)
	f, imp := Update(f, 0.90, 1.0, higherIsBetter)
	if imp != ImprovementNone {
		t.Fatalf("Update() improvement = %v, want ImprovementNone", imp)
	}
	if len(f) != 1 || f[0].Value != 0.95 {
		t.Fatalf("frontier = %+v, want unchanged single entry at 0.95", f)
	}
}

func TestUpdateBetterAtSameRate(t *testing.T) {
	f, _ := Update(nil, 0.90, 1.0, higherIsBetter)
	f, imp := Update(f, 0.95, 1.0, higherIsBetter)
	if imp != ImprovementBetter {
		t.Fatalf("Update() improvement = %v, want ImprovementBetter", imp)
	}
	if len(f) != 1 || f[0].Value != 0.95 {
		t.Fatalf("frontier = %+v, want single entry at 0.95", f)
	}
}

func TestUpdateFasterAtLowerValue(t *testing.T) {
	f, _ := Update(nil, 0.95, 1.0, higherIsBetter)
	f, imp := Update(f, 0.80, 1.2, higherIsBetter)
	if imp != ImprovementFaster {
		t.Fatalf("Update() improvement = %v, want ImprovementFaster", imp)
	}
	if len(f) != 2 {
		t.Fatalf("len(frontier) = %d, want 2 (both non-dominated)", len(f))
	}
}

func TestUpdateFasterAndBetterPrunesDominated(t *testing.T) {
	f, _ := Update(nil, 0.80, 1.0, higherIsBetter)
	f, imp := Update(f, 0.95, 1.2, higherIsBetter)
	if imp != ImprovementFasterBetter {
		t.Fatalf("Update() improvement = %v, want ImprovementFasterBetter", imp)
	}
	if len(f) != 1 {
		t.Fatalf("len(frontier) = %d, want 1 (old entry dominated)", len(f))
	}
}

func TestBestAtOrAbove(t *testing.T) {
	f, _ := Update(nil, 0.80, 1.0, higherIsBetter)
	f, _ = Update(f, 0.95, 1.2, higherIsBetter)

	e, ok := f.BestAtOrAbove(1.1)
	if !ok || e.Rate != 1.2 {
		t.Fatalf("BestAtOrAbove(1.1) = %+v, %v, want rate 1.2", e, ok)
	}

	_, ok = f.BestAtOrAbove(2.0)
	if ok {
		t.Fatal("BestAtOrAbove(2.0) = true, want false (no entry that fast)")
	}
}

func TestMigrateV1(t *testing.T) {
	legacy := LegacyBest[float64]{Best: 0.95, Fastest: 1.5}
	f := MigrateV1(legacy, 0.80, higherIsBetter)
	if len(f) == 0 {
		t.Fatal("MigrateV1() produced an empty frontier")
	}
	if _, ok := f.BestAtOrAbove(1.5); !ok {
		t.Error("MigrateV1() frontier has no entry at the legacy fastest rate")
	}
}
