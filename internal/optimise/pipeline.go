package optimise

import "github.com/retrotrk/nitrocc/internal/song"

// Plan is the finished output of the optimizer pipeline: everything the
// emission collaborator needs to print an assembly source file, and nothing
// it would need to recompute (§2, stages 1-8).
type Plan struct {
	Song *song.Song

	InstrumentMappings [song.NumKinds]*CompactedMapping
	WaveMapping        *CompactedMapping

	MainOrdering []OrderEntry
	SubOrdering  []OrderEntry
	OverlapScore int

	MainPool *RowPoolResult[song.Cell]
	SubPool  *RowPoolResult[song.SubCell]

	Stats TrimStats
}

// Run drives the full pipeline end to end (§2): collection, reachability,
// trim & prune, ID compaction, remapping, overlap search and row-pool
// emission planning, in that order. Cell encoding (§4.8) is left to the
// emission collaborator, which calls EncodeMainCell/EncodeSubCell directly
// against the catalogs this returns.
func Run(s *song.Song) (*Plan, error) {
	st := CollectMain(s)

	usage, err := MainReachability(st, s)
	if err != nil {
		return nil, err
	}

	CollectSubpatterns(st, s, usage.Instruments)

	if err := SubpatternReachability(st, &usage); err != nil {
		return nil, err
	}

	stats := TrimAndPrune(st)

	var instrMappings [song.NumKinds]*CompactedMapping
	for kind := song.KindDuty; kind < song.NumKinds; kind++ {
		instrMappings[kind] = BuildCompactedMapping(uint32(usage.Instruments[kind]), song.NumInstrumentSlots)
	}

	waveMask := uint32(usage.Waves) | waveInstrumentMask(s, usage.Instruments[song.KindWave])
	waveMapping := BuildCompactedMapping(waveMask, song.NumWaves)

	Remap(st, instrMappings, waveMapping)

	mainOrdering, subOrdering, score := FindOverlap(st)

	mainPool, err := EmitRowPool(mainOrdering, st.Main, "main pattern")
	if err != nil {
		return nil, err
	}
	subPool, err := EmitRowPool(subOrdering, st.Sub, "subpattern")
	if err != nil {
		return nil, err
	}

	return &Plan{
		Song:               s,
		InstrumentMappings: instrMappings,
		WaveMapping:        waveMapping,
		MainOrdering:       mainOrdering,
		SubOrdering:        subOrdering,
		OverlapScore:       score,
		MainPool:           mainPool,
		SubPool:            subPool,
		Stats:              stats,
	}, nil
}

// waveInstrumentMask ORs in the wave index referenced by every used
// wave-family instrument, per §4.4's "wave-bank mask combines both...".
func waveInstrumentMask(s *song.Song, usedWaveInstruments uint16) uint32 {
	var mask uint32
	for i := 0; i < song.NumInstrumentSlots; i++ {
		if usedWaveInstruments&(1<<uint(i)) == 0 {
			continue
		}
		mask |= 1 << uint(s.Instruments.Wave[i].Wave.WaveIndex)
	}
	return mask
}
