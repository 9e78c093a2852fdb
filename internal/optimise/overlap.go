package optimise

// OrderEntry is one (pattern, pool offset) pair in a finalized ordering.
type OrderEntry struct {
	ID    PatternId
	Start int
}

// poolLength returns the length, in rows, of the pool implied by an
// ordering: the furthest a pattern's end reaches.
func poolLength[T comparable](ordering []OrderEntry, patterns map[PatternId]*OptimisedPattern[T]) int {
	length := 0
	for _, e := range ordering {
		if end := e.Start + len(patterns[e.ID].Cells); end > length {
			length = end
		}
	}
	return length
}

// effectiveRowAt returns the row the pool presents at absolute position pos:
// the nominal pattern's own row if reachable, otherwise the first
// reachable row from a later-starting pattern that is also active at pos
// (§4.7 step 1, shared with §4.6 scoring). ok is false when no active
// pattern has a reachable row there.
func effectiveRowAt[T comparable](ordering []OrderEntry, patterns map[PatternId]*OptimisedPattern[T], pos int) (cell AnnotatedCell[T], ok bool) {
	nominal := -1
	for i, e := range ordering {
		if e.Start+len(patterns[e.ID].Cells) > pos {
			nominal = i
			break
		}
	}
	if nominal == -1 {
		return cell, false
	}
	nominalCell := patterns[ordering[nominal].ID].Cells[pos-ordering[nominal].Start]
	if nominalCell.Reachable {
		return nominalCell, true
	}
	for _, e := range ordering[nominal:] {
		if e.Start > pos {
			break // ordering sorted ascending by Start; nothing later can cover pos either
		}
		ofs := pos - e.Start
		pat := patterns[e.ID]
		if ofs >= len(pat.Cells) {
			continue
		}
		if c := pat.Cells[ofs]; c.Reachable {
			return c, true
		}
	}
	return nominalCell, false
}

// builder is the DP state of one candidate ordering under construction
// (the spec's "slot"): which patterns it contains, where each starts, and
// the running score (total overlapped rows).
type builder[T comparable] struct {
	patterns map[PatternId]*OptimisedPattern[T]
	ordering []OrderEntry
	score    int
}

func newBuilder[T comparable](patterns map[PatternId]*OptimisedPattern[T], id PatternId) *builder[T] {
	return &builder[T]{
		patterns: patterns,
		ordering: []OrderEntry{{ID: id, Start: 0}},
	}
}

func (b *builder[T]) clone() *builder[T] {
	ordering := make([]OrderEntry, len(b.ordering))
	copy(ordering, b.ordering)
	return &builder[T]{patterns: b.patterns, ordering: ordering, score: b.score}
}

func (b *builder[T]) contains(id PatternId) bool {
	for _, e := range b.ordering {
		if e.ID == id {
			return true
		}
	}
	return false
}

// scoreWith finds, in ascending order, the first start offset at which the
// candidate pattern's every row can overlap with whatever is active there,
// and returns the resulting total score plus that offset (§4.6
// "score_with"). The smallest feasible offset is also the one with maximum
// overlap, so the first success is the best one.
func (b *builder[T]) scoreWith(candidate []AnnotatedCell[T]) (newScore, startRowIdx int) {
	poolLen := poolLength(b.ordering, b.patterns)
	for start := 0; start <= poolLen; start++ {
		matched := 0
		ok := true
		for k := range candidate {
			pos := start + k
			if pos >= poolLen {
				break // past existing data: always compatible, nothing left to match
			}
			existing, _ := effectiveRowAt(b.ordering, b.patterns, pos)
			if !canOverlap(existing, candidate[k]) {
				ok = false
				break
			}
			matched++
		}
		if ok {
			return b.score + matched, start
		}
	}
	return b.score, poolLen
}

// add inserts id at startRowIdx, keeping the ordering sorted ascending by
// start offset, and records the new total score.
func (b *builder[T]) add(id PatternId, startRowIdx, newScore int) {
	insertAt := len(b.ordering)
	for i, e := range b.ordering {
		if e.Start >= startRowIdx {
			insertAt = i
			break
		}
	}
	b.ordering = append(b.ordering, OrderEntry{})
	copy(b.ordering[insertAt+1:], b.ordering[insertAt:])
	b.ordering[insertAt] = OrderEntry{ID: id, Start: startRowIdx}
	b.score = newScore
}

// findOverlapInGroup runs the dynamic-programming search of §4.6 over one
// group (all main patterns, or all subpatterns). ids must already be in
// the fixed sorted order that makes the search deterministic.
func findOverlapInGroup[T comparable](patterns map[PatternId]*OptimisedPattern[T], ids []PatternId) ([]OrderEntry, int) {
	n := len(ids)
	if n == 0 {
		return nil, 0
	}

	row := make([]*builder[T], n)
	for i, id := range ids {
		row[i] = newBuilder(patterns, id)
	}

	for iter := 1; iter < n; iter++ {
		prev := row
		next := make([]*builder[T], n)
		for i, id := range ids {
			var best *builder[T]
			bestScore, bestStart := -1, 0
			for _, cand := range prev {
				if cand == nil || cand.contains(id) {
					continue
				}
				s, start := cand.scoreWith(patterns[id].Cells)
				if s > bestScore {
					best, bestScore, bestStart = cand, s, start
				}
			}
			if best == nil {
				next[i] = nil
				continue
			}
			nb := best.clone()
			nb.add(id, bestStart, bestScore)
			next[i] = nb
		}
		row = next
	}

	var winner *builder[T]
	for _, b := range row {
		if b != nil && (winner == nil || b.score > winner.score) {
			winner = b
		}
	}
	return winner.ordering, winner.score
}

// FindOverlap runs the search independently over the main-pattern subset
// and the subpattern subset (§4.6).
func FindOverlap(st *Store) (mainOrdering []OrderEntry, subOrdering []OrderEntry, totalScore int) {
	mainIDs := SortedMainIDs(st.Main)
	subIDs := SortedSubIDs(st.Sub)
	mainOrdering, mainScore := findOverlapInGroup(st.Main, mainIDs)
	subOrdering, subScore := findOverlapInGroup(st.Sub, subIDs)
	return mainOrdering, subOrdering, mainScore + subScore
}
