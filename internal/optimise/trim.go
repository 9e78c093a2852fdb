package optimise

// TrimStats counts the patterns and rows removed by the trim & prune pass,
// reported to the operator per §6 "optimization statistics".
type TrimStats struct {
	PrunedPatterns int
	PrunedRows     int
	TrimmedRows    int
}

// trimGroup drops trailing-unreachable rows from every pattern and removes
// patterns with no reachable row at all (§4.3). It mutates the map in
// place, counting pruned/trimmed rows into stats.
func trimGroup[T comparable](m map[PatternId]*OptimisedPattern[T], ids []PatternId, stats *TrimStats) {
	for _, id := range ids {
		pat := m[id]
		last := -1
		for i, c := range pat.Cells {
			if c.Reachable {
				last = i
			}
		}
		if last == -1 {
			stats.PrunedPatterns++
			stats.PrunedRows += len(pat.Cells)
			delete(m, id)
			continue
		}
		stats.TrimmedRows += len(pat.Cells) - (last + 1)
		pat.Cells = pat.Cells[:last+1]
	}
}

// TrimAndPrune runs the pass over both the main-pattern and subpattern
// groups of the store.
func TrimAndPrune(st *Store) TrimStats {
	var stats TrimStats
	trimGroup(st.Main, SortedMainIDs(st.Main), &stats)
	trimGroup(st.Sub, SortedSubIDs(st.Sub), &stats)
	return stats
}
