package optimise

import (
	"testing"

	"github.com/retrotrk/nitrocc/internal/song"
)

func TestCollectMainDeduplicatesSharedReferences(t *testing.T) {
	s := &song.Song{Patterns: make([]song.Pattern, 2)}
	s.OrderMatrix = []song.OrderRow{
		{0, 0, 1, 1}, // duty,duty -> pattern 0 (same index, shared across the family); wave,noise -> pattern 1
		{0, 0, 1, 1}, // repeat: must not create duplicate store entries
	}

	st := CollectMain(s)

	if len(st.Main) != 3 {
		t.Fatalf("len(Main) = %d, want 3 (duty#0, wave#1, noise#1)", len(st.Main))
	}
	if _, ok := st.Main[Main(song.KindDuty, 0)]; !ok {
		t.Error("missing duty#0")
	}
	if _, ok := st.Main[Main(song.KindWave, 1)]; !ok {
		t.Error("missing wave#1")
	}
	if _, ok := st.Main[Main(song.KindNoise, 1)]; !ok {
		t.Error("missing noise#1")
	}
}

func TestCollectMainClonesIndependently(t *testing.T) {
	s := &song.Song{Patterns: make([]song.Pattern, 1)}
	s.OrderMatrix = []song.OrderRow{{0, 0, 0, 0}}

	st := CollectMain(s)

	st.Main[Main(song.KindDuty, 0)].Cells[0].Cell.Note = 42
	if st.Main[Main(song.KindWave, 0)].Cells[0].Cell.Note == 42 {
		t.Error("mutating one family's copy of pattern 0 must not affect another family's copy")
	}
}

func TestCollectSubpatternsOnlyForUsedInstruments(t *testing.T) {
	s := &song.Song{}
	s.Instruments.Duty[0] = song.Instrument{Kind: song.KindDuty, HasSubpattern: true}
	s.Instruments.Duty[1] = song.Instrument{Kind: song.KindDuty, HasSubpattern: true}

	st := newStore()
	var used [song.NumKinds]uint16
	used[song.KindDuty] = 1 << 0 // only slot 0 used

	CollectSubpatterns(st, s, used)

	if _, ok := st.Sub[Sub(song.KindDuty, 0)]; !ok {
		t.Error("slot 0 is used and has a subpattern; it must be collected")
	}
	if _, ok := st.Sub[Sub(song.KindDuty, 1)]; ok {
		t.Error("slot 1 is unused; it must not be collected even though it has a subpattern")
	}
}
