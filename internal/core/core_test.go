package core

import "testing"

func TestRNGSeedDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 16; i++ {
		x, y := a.Seed(100000), b.Seed(100000)
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x < 0 || x >= 100000 {
			t.Fatalf("seed %d out of range", x)
		}
	}
	if got := a.Seed(0); got != 0 {
		t.Fatalf("expected 0 for empty range, got %d", got)
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Brush", Params: []Parameter{{Key: "brush", Value: "50", Type: ParamTypeInt}}},
	}}
	p, ok := snap.Lookup("brush")
	if !ok || p.Value != "50" {
		t.Fatalf("expected brush=50, got %+v ok=%v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("lookup of unknown key should fail")
	}
}
