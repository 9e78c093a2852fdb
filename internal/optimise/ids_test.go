package optimise

import (
	"sort"
	"testing"

	"github.com/retrotrk/nitrocc/internal/song"
)

func TestPatternIdLessTotalOrder(t *testing.T) {
	ids := []PatternId{
		Sub(song.KindNoise, 1),
		Main(song.KindWave, 0),
		Main(song.KindDuty, 2),
		Main(song.KindDuty, 1),
		Sub(song.KindDuty, 0),
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	for i := 1; i < len(ids); i++ {
		if ids[i].Less(ids[i-1]) {
			t.Fatalf("sort produced a non-monotonic order at index %d: %v", i, ids)
		}
	}
	// All Main entries must sort before all Sub entries.
	sawSub := false
	for _, id := range ids {
		if id.Sub {
			sawSub = true
		} else if sawSub {
			t.Fatalf("a Main id sorted after a Sub id: %v", ids)
		}
	}
}
