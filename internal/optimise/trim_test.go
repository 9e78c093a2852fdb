package optimise

import (
	"testing"

	"github.com/retrotrk/nitrocc/internal/song"
)

func TestTrimGroupTruncatesTrailingUnreachable(t *testing.T) {
	id := Main(song.KindDuty, 0)
	cells := make([]AnnotatedCell[song.Cell], song.PatternRows)
	cells[0] = AnnotatedCell[song.Cell]{Reachable: true}
	cells[5] = AnnotatedCell[song.Cell]{Reachable: true}
	m := map[PatternId]*OptimisedPattern[song.Cell]{id: {ID: id, Cells: cells}}

	var stats TrimStats
	trimGroup(m, []PatternId{id}, &stats)

	if len(m[id].Cells) != 6 {
		t.Fatalf("len(Cells) = %d, want 6 (last reachable row is index 5)", len(m[id].Cells))
	}
	if !m[id].Cells[len(m[id].Cells)-1].Reachable {
		t.Error("last cell of a surviving pattern must be reachable")
	}
	if stats.TrimmedRows != song.PatternRows-6 {
		t.Errorf("TrimmedRows = %d, want %d", stats.TrimmedRows, song.PatternRows-6)
	}
}

func TestTrimGroupPrunesEntirelyUnreachable(t *testing.T) {
	id := Main(song.KindDuty, 0)
	cells := make([]AnnotatedCell[song.Cell], song.PatternRows)
	m := map[PatternId]*OptimisedPattern[song.Cell]{id: {ID: id, Cells: cells}}

	var stats TrimStats
	trimGroup(m, []PatternId{id}, &stats)

	if _, ok := m[id]; ok {
		t.Error("an entirely-unreachable pattern must be removed from the store")
	}
	if stats.PrunedPatterns != 1 {
		t.Errorf("PrunedPatterns = %d, want 1", stats.PrunedPatterns)
	}
	if stats.PrunedRows != song.PatternRows {
		t.Errorf("PrunedRows = %d, want %d", stats.PrunedRows, song.PatternRows)
	}
}
