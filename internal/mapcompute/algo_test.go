package mapcompute

import (
	"math"
	"testing"
)

func TestEdoIsLog2(t *testing.T) {
	got := Edo.Eval(440)
	want := math.Log2(440)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Edo.Eval(440) = %v, want %v", got, want)
	}
}

func TestErbMatchesKnownFormula(t *testing.T) {
	hz := 1000.0
	want := 11.17268 * math.Log(1+(hz*46.06538)/(hz+14678.49))
	got := Erb.Eval(hz)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Erb.Eval(1000) = %v, want %v", got, want)
	}
}

func TestOverlapCurvesAtZeroDistance(t *testing.T) {
	cases := []struct {
		name string
		c    OverlapCurve
		want float64
	}{
		{"ExpDiss", ExpDiss, 0},
		{"TrapDiss", TrapDiss, 0},
		{"TriCons", TriCons, 1},
		{"TrapCons", TrapCons, 1},
	}
	for _, tc := range cases {
		got := tc.c.Eval(5.0, 5.0)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("%s.Eval(x,x) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOverlapIsSymmetric(t *testing.T) {
	for _, c := range []OverlapCurve{ExpDiss, TrapDiss, TriCons, TrapCons} {
		a := c.Eval(1.0, 2.5)
		b := c.Eval(2.5, 1.0)
		if a != b {
			t.Fatalf("%v: Eval(1,2.5)=%v != Eval(2.5,1)=%v", c, a, b)
		}
	}
}

func TestExpDissPositiveAwayFromZero(t *testing.T) {
	if v := ExpDiss.Eval(0, 0.3); v <= 0 {
		t.Fatalf("ExpDiss.Eval(0,0.3) = %v, want > 0", v)
	}
}
