package optimise

import "github.com/retrotrk/nitrocc/internal/song"

// Remap rewrites every surviving pattern and subpattern in place per §4.5:
// instrument references inside main patterns are renumbered through the
// per-family instrument mapping, and ChangeTimbre parameters on wave-family
// cells are renumbered through the wave mapping. Only reachable cells are
// touched — unreachable rows carry stale references but are never observed.
func Remap(st *Store, instrMappings [song.NumKinds]*CompactedMapping, waveMapping *CompactedMapping) {
	for id, pat := range st.Main {
		mapping := instrMappings[id.Kind]
		for i := range pat.Cells {
			c := &pat.Cells[i]
			if !c.Reachable {
				continue
			}
			if c.Cell.Instrument != 0 {
				c.Cell.Instrument = uint8(mapping.Map(int(c.Cell.Instrument)-1)) + 1
			}
			if id.Kind == song.KindWave && c.Cell.Effect == song.EffectChangeTimbre {
				c.Cell.Param = uint8(waveMapping.Map(int(c.Cell.Param)))
			}
		}
	}
	for id, pat := range st.Sub {
		if id.Kind != song.KindWave {
			continue
		}
		for i := range pat.Cells {
			c := &pat.Cells[i]
			if !c.Reachable {
				continue
			}
			if c.Cell.Effect == song.EffectChangeTimbre {
				c.Cell.Param = uint8(waveMapping.Map(int(c.Cell.Param)))
			}
		}
	}
}
