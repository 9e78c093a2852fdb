package optimise

import (
	"testing"

	"github.com/retrotrk/nitrocc/internal/song"
)

func TestSubpatternReachabilityFollowsChain(t *testing.T) {
	id := Sub(song.KindWave, 0)
	cells := make([]AnnotatedCell[song.SubCell], song.SubpatternRows)
	// row 0 -> row 2 -> row 0, an unconditional 2-cycle; row 1 never visited.
	cells[0] = AnnotatedCell[song.SubCell]{Cell: song.SubCell{NextRow: 2}}
	cells[1] = AnnotatedCell[song.SubCell]{Cell: song.SubCell{NextRow: 0}}
	cells[2] = AnnotatedCell[song.SubCell]{Cell: song.SubCell{Effect: song.EffectChangeTimbre, Param: 7, NextRow: 0}}

	st := &Store{Sub: map[PatternId]*OptimisedPattern[song.SubCell]{
		id: {ID: id, Cells: cells},
	}}

	var usage UsageMasks
	if err := SubpatternReachability(st, &usage); err != nil {
		t.Fatalf("SubpatternReachability: %v", err)
	}

	if !st.Sub[id].Cells[0].Reachable || !st.Sub[id].Cells[2].Reachable {
		t.Error("rows 0 and 2 form the reachable cycle and must both be marked reachable")
	}
	if st.Sub[id].Cells[1].Reachable {
		t.Error("row 1 is never reached by the chain and must stay unreachable")
	}
	if usage.Waves&(1<<7) == 0 {
		t.Error("ChangeTimbre(7) on a wave subpattern must mark wave 7 used")
	}
}

func TestSubpatternReachabilityRejectsOutOfRangeWave(t *testing.T) {
	id := Sub(song.KindWave, 0)
	cells := make([]AnnotatedCell[song.SubCell], song.SubpatternRows)
	cells[0] = AnnotatedCell[song.SubCell]{Cell: song.SubCell{Effect: song.EffectChangeTimbre, Param: 16, NextRow: 0}}

	st := &Store{Sub: map[PatternId]*OptimisedPattern[song.SubCell]{
		id: {ID: id, Cells: cells},
	}}

	var usage UsageMasks
	if err := SubpatternReachability(st, &usage); err == nil {
		t.Fatal("expected an error for a wave index >= NumWaves")
	}
}
