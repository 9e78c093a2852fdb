// Package song holds the in-memory representation of a tracker project: the
// idealized model that the optimizer consumes and that the binary parser
// (parse.go) produces from a project file.
package song

// Effect identifies one of the 16 named cell effects. Only three carry
// control-flow weight (PositionJump, PatternBreak, ChangeTimbre); the rest
// are opaque payload as far as the optimizer is concerned.
type Effect byte

const (
	EffectArpeggio Effect = iota
	EffectPortaUp
	EffectPortaDown
	EffectTonePorta
	EffectVibrato
	EffectSetPanning
	EffectCallRoutine
	EffectNoteDelay
	EffectSetDutyCycle
	EffectChangeTimbre
	EffectSetVol
	EffectPositionJump
	EffectPatternBreak
	EffectNoteCut
	EffectSetMasterVol
	EffectVolumeSlide

	NumEffects = 16
)

func (e Effect) String() string {
	names := [NumEffects]string{
		"arpeggio", "porta_up", "porta_down", "tone_porta", "vibrato",
		"set_panning", "call_routine", "note_delay", "set_duty",
		"change_timbre", "set_vol", "position_jump", "pattern_break",
		"note_cut", "set_master_vol", "volume_slide",
	}
	if int(e) < len(names) {
		return names[e]
	}
	return "effect?"
}

// LastNote is the highest valid pitched note value; 72 pitched notes occupy
// 0..=LastNote.
const LastNote = 71

// NoNote is the note value meaning "no note in this cell" for a main-pattern
// cell. Values LastNote+1..=89 and 91..=255 are invalid.
const NoNote = 90

// NoSubNoteOffset is the note-offset value meaning "no note" for a
// subpattern cell (the other 90 values bias around a center note).
const NoSubNoteOffset = 90

// NoJump is the jump-target value that stands for "no explicit jump". Parse
// rewrites every subpattern row to an explicit successor (see SubCell), so
// nothing in this module treats NextRow == NoJump as a fall-through.
const NoJump = 32

// Cell is one row of one channel in a main pattern.
type Cell struct {
	Note       uint8 // 0..=71 pitched, NoNote for none
	Instrument uint8 // 0 = none, 1..=15
	Effect     Effect
	Param      uint8
}

// SubCell is one row of a subpattern. Every row unconditionally jumps; the
// parser has already rewritten the raw on-disk jump value into NextRow per
// §6 of the spec (0 -> (i+1)%32, n>0 -> n-1).
type SubCell struct {
	NoteOffset uint8 // 0..=90, NoSubNoteOffset for none
	NextRow    uint8 // 0..31
	Effect     Effect
	Param      uint8
}

const (
	PatternRows    = 64
	SubpatternRows = 32

	NumInstrumentSlots = 15 // per family
	NumWaves           = 16
	WaveBytes          = 16 // packed samples, 2 nibbles per byte
	NumRoutines        = 16
)

// Pattern is a fixed-length sequence of main cells.
type Pattern [PatternRows]Cell

// Subpattern is a fixed-length sequence of subpattern cells.
type Subpattern [SubpatternRows]SubCell

// EnvelopeDirection is the direction an instrument's volume envelope moves.
type EnvelopeDirection uint8

const (
	EnvelopeDown EnvelopeDirection = iota
	EnvelopeUp
)

// SweepDirection is the direction a square channel's frequency sweep moves.
type SweepDirection uint8

const (
	SweepDown SweepDirection = iota
	SweepUp
)

// Duty is one of the four square-wave duty cycles.
type Duty uint8

const (
	Duty12_5 Duty = iota
	Duty25
	Duty50
	Duty75
)

// WaveOutputLevel is the wave channel's DAC output attenuation.
type WaveOutputLevel uint8

const (
	WaveOutputMute WaveOutputLevel = iota
	WaveOutputFull
	WaveOutputHalf
	WaveOutputQuarter
)

// LfsrWidth selects the noise channel's pseudo-random sequence width.
type LfsrWidth uint8

const (
	Lfsr15Bit LfsrWidth = iota
	Lfsr7Bit
)

// Kind identifies which of the three instrument families a pattern, a
// subpattern or an instrument belongs to.
type Kind uint8

const (
	KindDuty Kind = iota
	KindWave
	KindNoise

	NumKinds = 3
)

func (k Kind) String() string {
	switch k {
	case KindDuty:
		return "duty"
	case KindWave:
		return "wave"
	case KindNoise:
		return "noise"
	default:
		return "kind?"
	}
}

// FamilyOf maps a channel index (0..3) to its instrument family, per §4.1:
// channels 0 and 1 share the duty family, channel 2 is wave, channel 3 is
// noise.
func FamilyOf(channel int) Kind {
	switch channel {
	case 0, 1:
		return KindDuty
	case 2:
		return KindWave
	default:
		return KindNoise
	}
}

// SquareParams holds the fields specific to a duty-channel instrument.
type SquareParams struct {
	InitialVolume uint8
	EnvelopeDir   EnvelopeDirection
	EnvelopePace  uint8
	SweepTime     uint8
	SweepDir      SweepDirection
	SweepShift    uint8
	Duty          Duty
}

// WaveParams holds the fields specific to a wave-channel instrument.
type WaveParams struct {
	OutputLevel WaveOutputLevel
	WaveIndex   uint8 // 0..=15, index into Song.Waves
}

// NoiseParams holds the fields specific to a noise-channel instrument.
type NoiseParams struct {
	InitialVolume uint8
	EnvelopeDir   EnvelopeDirection
	EnvelopePace  uint8
	LfsrWidth     LfsrWidth
}

// Instrument is the tagged union of the three per-kind parameter sets, plus
// an optional attached subpattern.
type Instrument struct {
	Name   string
	Kind   Kind
	Square SquareParams // valid iff Kind == KindDuty
	Wave   WaveParams   // valid iff Kind == KindWave
	Noise  NoiseParams  // valid iff Kind == KindNoise

	HasSubpattern bool
	Subpattern    Subpattern
}

// InstrumentBank is one family's 15 instrument slots, 1-indexed in the file
// format (slot 0 means "no instrument" and is never stored here).
type InstrumentBank [NumInstrumentSlots]Instrument

// InstrumentCollection groups the three instrument banks.
type InstrumentCollection struct {
	Duty  InstrumentBank
	Wave  InstrumentBank
	Noise InstrumentBank
}

func (ic *InstrumentCollection) Bank(k Kind) *InstrumentBank {
	switch k {
	case KindDuty:
		return &ic.Duty
	case KindWave:
		return &ic.Wave
	default:
		return &ic.Noise
	}
}

// Wave is one 16-byte (32-sample, 4-bit each) waveform.
type Wave [WaveBytes]byte

// WaveBank is the fixed 16-wave bank.
type WaveBank [NumWaves]Wave

// OrderRow is one row of the order matrix: one pattern index per channel.
type OrderRow [4]uint16

// Song is the read-only parsed project. It is borrowed for the lifetime of
// the optimizer pipeline; no pass mutates it.
type Song struct {
	Name    string
	Artist  string
	Comment string

	Instruments InstrumentCollection
	Waves       WaveBank

	TicksPerRow  uint8
	TimerDivider uint8 // meaningful only when UseTimer is set
	UseTimer     bool  // false means the song is driven by vblank

	Patterns    []Pattern
	OrderMatrix []OrderRow
	Routines    [NumRoutines]string
}
