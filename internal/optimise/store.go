package optimise

import (
	"sort"

	clone "github.com/huandu/go-clone/generic"

	"github.com/retrotrk/nitrocc/internal/song"
)

// AnnotatedCell pairs a semantic cell with the reachability flag mutated by
// the reachability pass (§3 "AnnotatedCell").
type AnnotatedCell[T comparable] struct {
	Cell      T
	Reachable bool
}

// canOverlap implements §4.6's overlap-compatibility rule: an unreachable
// row is a don't-care, provided a reachable row exists elsewhere in the
// overlap set to supply real bytes.
func canOverlap[T comparable](a, b AnnotatedCell[T]) bool {
	return !a.Reachable || !b.Reachable || a.Cell == b.Cell
}

// OptimisedPattern is the mutable working copy of one pattern or subpattern.
// Its lifecycle spans collection, reachability annotation, trim/prune and
// remapping; overlap search and row-pool emission only read it.
type OptimisedPattern[T comparable] struct {
	ID    PatternId
	Cells []AnnotatedCell[T]
}

// Store holds the two independent pattern groups (main patterns keyed by
// family, subpatterns keyed by family+instrument index) that every pass
// from collection through row-pool emission operates on.
type Store struct {
	Main map[PatternId]*OptimisedPattern[song.Cell]
	Sub  map[PatternId]*OptimisedPattern[song.SubCell]
}

func newStore() *Store {
	return &Store{
		Main: make(map[PatternId]*OptimisedPattern[song.Cell]),
		Sub:  make(map[PatternId]*OptimisedPattern[song.SubCell]),
	}
}

// SortedMainIDs and SortedSubIDs give every order-sensitive pass a
// deterministic iteration order over the store (§5).
func SortedMainIDs(m map[PatternId]*OptimisedPattern[song.Cell]) []PatternId {
	ids := make([]PatternId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

func SortedSubIDs(m map[PatternId]*OptimisedPattern[song.SubCell]) []PatternId {
	ids := make([]PatternId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// CollectMain walks the order matrix (§4.1) and materializes one
// OptimisedPattern per (family, pattern index) actually referenced. The
// source pattern is cloned with github.com/huandu/go-clone so that two
// channel families referencing the same underlying pattern index each own
// an independent copy to remap later.
func CollectMain(s *song.Song) *Store {
	st := newStore()
	for _, row := range s.OrderMatrix {
		for ch := 0; ch < 4; ch++ {
			kind := song.FamilyOf(ch)
			idx := int(row[ch])
			id := Main(kind, idx)
			if _, ok := st.Main[id]; ok {
				continue
			}
			st.Main[id] = &OptimisedPattern[song.Cell]{ID: id, Cells: cloneMainCells(s.Patterns[idx])}
		}
	}
	return st
}

func cloneMainCells(p song.Pattern) []AnnotatedCell[song.Cell] {
	cloned := clone.Clone(p).(song.Pattern)
	cells := make([]AnnotatedCell[song.Cell], len(cloned))
	for i, c := range cloned {
		cells[i] = AnnotatedCell[song.Cell]{Cell: c}
	}
	return cells
}

// CollectSubpatterns is deferred until after the main reachability pass
// (§4.1): a subpattern is only materialized for an instrument that reachable
// main-pattern code actually selects.
func CollectSubpatterns(st *Store, s *song.Song, usedInstruments [song.NumKinds]uint16) {
	for kind := song.KindDuty; kind < song.NumKinds; kind++ {
		bank := s.Instruments.Bank(kind)
		mask := usedInstruments[kind]
		for i := 0; i < song.NumInstrumentSlots; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			instr := bank[i]
			if !instr.HasSubpattern {
				continue
			}
			id := Sub(kind, i)
			cloned := clone.Clone(instr.Subpattern).(song.Subpattern)
			cells := make([]AnnotatedCell[song.SubCell], len(cloned))
			for j, c := range cloned {
				cells[j] = AnnotatedCell[song.SubCell]{Cell: c}
			}
			st.Sub[id] = &OptimisedPattern[song.SubCell]{ID: id, Cells: cells}
		}
	}
}
