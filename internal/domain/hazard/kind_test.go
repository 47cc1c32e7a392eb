package hazard

import (
	"math/rand"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"sunny", Sunny, true},
		{"Sunny", Sunny, true},
		{" SNOWY ", Snowy, true},
		{"Super Storm", SuperStorm, true},
		{"super_storm", SuperStorm, true},
		{"chaos", "", false},
		{"drizzle", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseKind(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseKind(%q) = (%q,%v), want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestKindLabel(t *testing.T) {
	if got := SuperStorm.Label(); got != "Super Storm" {
		t.Fatalf("SuperStorm label = %q", got)
	}
	if got := Sunny.Label(); got != "Sunny" {
		t.Fatalf("Sunny label = %q", got)
	}
}

func TestWeightedIndex_Distribution(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	counts := make([]int, 3)
	for i := 0; i < 10000; i++ {
		counts[WeightedIndex(r, []float64{1, 0, 3})]++
	}
	if counts[1] != 0 {
		t.Fatalf("zero-weight index drawn %d times", counts[1])
	}
	if counts[2] <= counts[0] {
		t.Fatalf("weight 3 drawn %d times, weight 1 drawn %d times", counts[2], counts[0])
	}
}

func TestDrawKind_NeverChaos(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 5000; i++ {
		k := DrawKind(r)
		if k == Chaos {
			t.Fatalf("DrawKind returned Chaos")
		}
		if !k.Valid() {
			t.Fatalf("DrawKind returned invalid kind %q", k)
		}
	}
}

func TestProfileFor(t *testing.T) {
	p, ok := ProfileFor(Snowy, false)
	if !ok || p.BlizzardLootThreshold != 200 || p.CalmSuccessChance != 0.78 {
		t.Fatalf("regular snowy profile = %+v, ok=%v", p, ok)
	}
	p, ok = ProfileFor(SuperStorm, true)
	if !ok || p.LootThreshold != 8000 || p.StormDamage != 90 || p.CampDegradation != 200 {
		t.Fatalf("chaos super storm profile = %+v, ok=%v", p, ok)
	}
	if _, ok := ProfileFor(Chaos, false); ok {
		t.Fatalf("ProfileFor(Chaos) should not resolve directly")
	}
}
