package emit

import (
	"fmt"
	"io"

	"github.com/retrotrk/nitrocc/internal/optimise"
	"github.com/retrotrk/nitrocc/internal/song"
)

var familyName = [song.NumKinds]string{song.KindDuty: "duty", song.KindWave: "wave", song.KindNoise: "noise"}

// writeInstrumentBank emits one family's compacted bank: only the live
// slots (0..Watermark) are stored, each packed into a fixed-size record
// plus a subpattern pointer (0 if the instrument carries none) (§4.4,
// §4.5 "Instrument references... remapped later, during emission").
func writeInstrumentBank(w io.Writer, kind song.Kind, bank *song.InstrumentBank, mapping *optimise.CompactedMapping, waveMapping *optimise.CompactedMapping) {
	fmt.Fprintf(w, "%s:\n", instrumentBankLabel(familyName[kind]))
	for j := 0; j < mapping.Watermark; j++ {
		oldIndex := mapping.Map(j)
		instr := bank[oldIndex]
		b0, b1, b2 := encodeInstrument(kind, instr, waveMapping)
		fmt.Fprintf(w, "\tdb $%02x, $%02x, $%02x ; %s\n", b0, b1, b2, instr.Name)
		if instr.HasSubpattern {
			fmt.Fprintf(w, "\tdw %s\n", patternLabel(optimise.Sub(kind, oldIndex)))
		} else {
			fmt.Fprintln(w, "\tdw 0")
		}
	}
	fmt.Fprintln(w)
}

// encodeInstrument packs one instrument's per-family parameters into three
// bytes. A wave instrument's wave-id field is rewritten through the wave
// compaction here, at emission time, rather than during the optimizer's
// own remap pass (§4.5).
func encodeInstrument(kind song.Kind, instr song.Instrument, waveMapping *optimise.CompactedMapping) (b0, b1, b2 byte) {
	switch kind {
	case song.KindDuty:
		p := instr.Square
		b0 = p.InitialVolume<<4 | uint8(p.EnvelopeDir)<<3 | p.EnvelopePace
		b1 = p.SweepTime<<4 | uint8(p.SweepDir)<<3 | p.SweepShift
		b2 = uint8(p.Duty) << 6
	case song.KindWave:
		p := instr.Wave
		b0 = uint8(p.OutputLevel)<<6 | uint8(waveMapping.Map(int(p.WaveIndex)))
	case song.KindNoise:
		p := instr.Noise
		b0 = p.InitialVolume<<4 | uint8(p.EnvelopeDir)<<3 | p.EnvelopePace
		b1 = uint8(p.LfsrWidth) << 7
	}
	return
}

// writeWaveBank emits the compacted wave bank: only waves actually
// reachable, directly or via an instrument reference, survive (§4.4).
func writeWaveBank(w io.Writer, waves *song.WaveBank, mapping *optimise.CompactedMapping) {
	fmt.Fprintf(w, "%s:\n", waveBankLabel())
	for j := 0; j < mapping.Watermark; j++ {
		oldIndex := mapping.Map(j)
		wave := waves[oldIndex]
		fmt.Fprint(w, "\tdb ")
		for i, b := range wave {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprintf(w, "$%02x", b)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
