// Package optimise implements the size-minimizing compiler core: pattern
// collection, reachability analysis, trim/prune, ID compaction, remapping,
// overlap search, row-pool emission planning and cell encoding (spec §4).
package optimise

import (
	"strconv"

	"github.com/retrotrk/nitrocc/internal/song"
)

// PatternId tags a pattern or subpattern by the (instrument) family it
// belongs to and its numeric index within that family. The kind
// discriminator means instrument-ID renumbering within one family never
// needs copy-on-write sharing with another family that happens to reference
// the same underlying source pattern (§3 "PatternId").
type PatternId struct {
	Sub   bool
	Kind  song.Kind
	Index int
}

func Main(k song.Kind, idx int) PatternId { return PatternId{Sub: false, Kind: k, Index: idx} }
func Sub(k song.Kind, idx int) PatternId  { return PatternId{Sub: true, Kind: k, Index: idx} }

// Less gives PatternId a fixed total order, used everywhere the spec
// requires deterministic iteration over the pattern store (§5).
func (id PatternId) Less(other PatternId) bool {
	if id.Sub != other.Sub {
		return !id.Sub // Main before Sub, arbitrarily but consistently
	}
	if id.Kind != other.Kind {
		return id.Kind < other.Kind
	}
	return id.Index < other.Index
}

func (id PatternId) String() string {
	tag := "pattern"
	if id.Sub {
		tag = "subpattern"
	}
	return id.Kind.String() + " " + tag + "#" + strconv.Itoa(id.Index)
}
