package optimise

import (
	"fmt"

	"github.com/retrotrk/nitrocc/internal/song"
)

// UsageMasks carries the per-family used-instrument masks (bit i set means
// instrument slot i, i.e. 1-based instrument id i+1, is used — instrument id
// 0 means "no instrument" and never appears) and the used-wave mask
// accumulated by reachability analysis (§4.2).
type UsageMasks struct {
	Instruments [song.NumKinds]uint16
	Waves       uint16
}

// MainReachability simulates the song's control flow the way a playback
// routine would step through it — an abstract-interpretation twin of the
// channel sequencer loop a player runs, minus any audio side effects. Each
// visited cell is marked reachable in place; the walk halts the first time
// it revisits an already-visited (order, row) pair.
func MainReachability(st *Store, s *song.Song) (UsageMasks, error) {
	var usage UsageMasks
	l := len(s.OrderMatrix)
	if l == 0 {
		return usage, nil
	}

	visited := make([][song.PatternRows]bool, l)

	order, row := 0, 0
	for {
		if visited[order][row] {
			break
		}
		visited[order][row] = true

		var nextOrder, nextRow int
		haveNextOrder, haveNextRow := false, false

		for ch := 0; ch < 4; ch++ {
			kind := song.FamilyOf(ch)
			patIdx := int(s.OrderMatrix[order][ch])
			pat := st.Main[Main(kind, patIdx)]
			cell := &pat.Cells[row]
			cell.Reachable = true

			if cell.Cell.Instrument != 0 {
				usage.Instruments[kind] |= 1 << uint(cell.Cell.Instrument-1)
			}

			switch cell.Cell.Effect {
			case song.EffectPatternBreak:
				p := int(cell.Cell.Param)
				nextRow, haveNextRow = p-1, true
				if !haveNextOrder {
					nextOrder, haveNextOrder = (order+1)%l, true
				}
			case song.EffectPositionJump:
				p := int(cell.Cell.Param)
				nextOrder, haveNextOrder = p-1, true
			case song.EffectChangeTimbre:
				if kind == song.KindWave {
					w := cell.Cell.Param
					if w >= song.NumWaves {
						return usage, fmt.Errorf("wave effect parameter out of range (%d) at order %d row %d", w, order, row)
					}
					usage.Waves |= 1 << uint(w)
				}
			}
		}

		if haveNextOrder {
			order = nextOrder
			if haveNextRow {
				row = nextRow
			} else {
				row = 0
			}
		} else {
			row++
			if row == song.PatternRows {
				row = 0
				order = (order + 1) % l
			}
		}
	}

	return usage, nil
}

// SubpatternReachability walks every collected subpattern starting at row 0
// and following its unconditional successor chain until a row is revisited
// (§4.2 "Subpatterns"). It folds additional used-wave bits into usage.Waves
// for any ChangeTimbre effect on a wave-family subpattern.
func SubpatternReachability(st *Store, usage *UsageMasks) error {
	for _, id := range SortedSubIDs(st.Sub) {
		pat := st.Sub[id]
		var visited [song.SubpatternRows]bool
		row := 0
		for {
			if visited[row] {
				break
			}
			visited[row] = true
			cell := &pat.Cells[row]
			cell.Reachable = true

			if id.Kind == song.KindWave && cell.Cell.Effect == song.EffectChangeTimbre {
				w := cell.Cell.Param
				if w >= song.NumWaves {
					return fmt.Errorf("wave effect parameter out of range (%d) in %s row %d", w, id, row)
				}
				usage.Waves |= 1 << uint(w)
			}

			row = int(cell.Cell.NextRow)
		}
	}
	return nil
}
