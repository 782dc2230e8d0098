package main

import (
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestWeightedTableChoice(t *testing.T) {
	rng := testRand()
	table := NewWeightedTable(
		WeightedEntry[string]{"common", 10},
		WeightedEntry[string]{"never", 0},
		WeightedEntry[string]{"rare", 0.1},
	)

	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		counts[table.Choice(rng)]++
	}

	if counts["never"] != 0 {
		t.Errorf("zero-weight outcome drawn %d times", counts["never"])
	}
	if counts["common"] == 0 || counts["rare"] == 0 {
		t.Errorf("positive-weight outcomes starved: %v", counts)
	}
	if counts["common"] < counts["rare"] {
		t.Errorf("heavier outcome drawn less often: %v", counts)
	}
}

func TestWeightedTableChoiceSingleEntry(t *testing.T) {
	rng := testRand()
	table := NewWeightedTable(WeightedEntry[int]{42, 1})
	for i := 0; i < 100; i++ {
		if got := table.Choice(rng); got != 42 {
			t.Fatalf("Choice() = %d, want 42", got)
		}
	}
}

func TestWeightedTableChoiceNoDrawableEntries(t *testing.T) {
	rng := testRand()
	empty := NewWeightedTable[string]()
	if got := empty.Choice(rng); got != "" {
		t.Errorf("empty table Choice() = %q, want zero value", got)
	}
	zeroed := NewWeightedTable(WeightedEntry[string]{"a", 0})
	if got := zeroed.Choice(rng); got != "" {
		t.Errorf("zero-total table Choice() = %q, want zero value", got)
	}
}

func TestWeightedTableTotalWeight(t *testing.T) {
	table := NewWeightedTable(
		WeightedEntry[int]{1, 2},
		WeightedEntry[int]{2, 0.5},
	)
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	if table.TotalWeight() != 2.5 {
		t.Errorf("TotalWeight() = %v, want 2.5", table.TotalWeight())
	}
}

func TestWeightedTableSampleN(t *testing.T) {
	rng := testRand()
	table := NewWeightedTable(
		WeightedEntry[int]{0, 1},
		WeightedEntry[int]{1, 1},
		WeightedEntry[int]{2, 0},
		WeightedEntry[int]{3, 1},
	)

	for trial := 0; trial < 100; trial++ {
		got := table.SampleN(rng, 2)
		if len(got) != 2 {
			t.Fatalf("SampleN(2) returned %d outcomes", len(got))
		}
		if got[0] == got[1] {
			t.Fatalf("SampleN(2) repeated outcome %d", got[0])
		}
		for _, v := range got {
			if v == 2 {
				t.Fatal("SampleN drew a zero-weight outcome")
			}
		}
	}
}

func TestWeightedTableSampleNExhausted(t *testing.T) {
	rng := testRand()
	table := NewWeightedTable(
		WeightedEntry[int]{0, 1},
		WeightedEntry[int]{1, 0},
		WeightedEntry[int]{2, 1},
	)

	got := table.SampleN(rng, 10)
	if len(got) != 2 {
		t.Fatalf("SampleN(10) over 2 drawable entries returned %d outcomes", len(got))
	}
	if got[0] == got[1] {
		t.Errorf("SampleN repeated outcome %d after exhaustion", got[0])
	}
}
