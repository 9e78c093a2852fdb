package optimise

import (
	"testing"

	"github.com/retrotrk/nitrocc/internal/song"
)

func cellsOf(notes ...uint8) []AnnotatedCell[song.Cell] {
	cells := make([]AnnotatedCell[song.Cell], len(notes))
	for i, n := range notes {
		cells[i] = AnnotatedCell[song.Cell]{Cell: song.Cell{Note: n}, Reachable: true}
	}
	return cells
}

// Scenario 5 (§8): pattern A's last k rows equal pattern B's first k rows;
// the search should place B directly after A with the full overlap.
func TestFindOverlapInGroupOverlappingSuffix(t *testing.T) {
	a := Main(song.KindDuty, 0)
	b := Main(song.KindDuty, 1)

	patterns := map[PatternId]*OptimisedPattern[song.Cell]{
		a: {ID: a, Cells: cellsOf(1, 2, 3, 4, 5)},
		b: {ID: b, Cells: cellsOf(4, 5, 6)},
	}

	ordering, score := findOverlapInGroup(patterns, []PatternId{a, b})

	if score != 2 {
		t.Fatalf("score = %d, want 2 (rows 4,5 shared)", score)
	}
	if len(ordering) != 2 {
		t.Fatalf("len(ordering) = %d, want 2", len(ordering))
	}
	var bStart int
	for _, e := range ordering {
		if e.ID == b {
			bStart = e.Start
		}
	}
	if bStart != 3 {
		t.Errorf("B.Start = %d, want 3 (right after A's first 3 unique rows)", bStart)
	}
}

func TestFindOverlapInGroupNoOverlap(t *testing.T) {
	a := Main(song.KindDuty, 0)
	b := Main(song.KindDuty, 1)

	patterns := map[PatternId]*OptimisedPattern[song.Cell]{
		a: {ID: a, Cells: cellsOf(1, 2)},
		b: {ID: b, Cells: cellsOf(9, 9)},
	}

	ordering, score := findOverlapInGroup(patterns, []PatternId{a, b})
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if poolLength(ordering, patterns) != 4 {
		t.Errorf("pool length = %d, want 4 (no overlap, fully concatenated)", poolLength(ordering, patterns))
	}
}

// An ordering produced by the search must never repeat a PatternId and must
// be sorted ascending by start offset (§8 "entries are sorted strictly
// nondecreasing... no PatternId appears twice").
func TestFindOverlapInGroupOrderingInvariants(t *testing.T) {
	ids := []PatternId{
		Main(song.KindDuty, 0),
		Main(song.KindDuty, 1),
		Main(song.KindDuty, 2),
	}
	patterns := map[PatternId]*OptimisedPattern[song.Cell]{
		ids[0]: {ID: ids[0], Cells: cellsOf(1, 2, 3)},
		ids[1]: {ID: ids[1], Cells: cellsOf(3, 4)},
		ids[2]: {ID: ids[2], Cells: cellsOf(9)},
	}

	ordering, _ := findOverlapInGroup(patterns, ids)

	seen := map[PatternId]bool{}
	lastStart := -1
	for _, e := range ordering {
		if seen[e.ID] {
			t.Errorf("PatternId %v appears twice in ordering", e.ID)
		}
		seen[e.ID] = true
		if e.Start < lastStart {
			t.Errorf("ordering not sorted ascending: %d before %d", e.Start, lastStart)
		}
		lastStart = e.Start
	}
	if len(seen) != len(ids) {
		t.Errorf("ordering covers %d patterns, want %d", len(seen), len(ids))
	}
}
