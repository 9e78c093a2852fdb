package song

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// ParseError wraps a structural-parse failure with the breadcrumb trail of
// parser contexts visited and the byte offset (from the start of the file)
// at which the failure was detected, per §7 "Bad structural field".
type ParseError struct {
	Trail  []string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	s := ""
	for _, t := range e.Trail {
		s += t + " > "
	}
	return fmt.Sprintf("%s%s (at byte offset 0x%x)", s, e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotRecognizedError is returned when the input is too short to contain a
// version number, or carries a version this parser cannot read.
type NotRecognizedError struct {
	msg string
}

func (e *NotRecognizedError) Error() string { return e.msg }

const supportedVersion = 6

// reader tracks the breadcrumb trail and offset used to build ParseErrors,
// the way uge.rs's nom "context" combinator accumulates a trail of named
// parsers on failure.
type reader struct {
	r     *bytes.Reader
	total int64
	trail []string
}

func (rd *reader) offset() int64 {
	return rd.total - int64(rd.r.Len())
}

func (rd *reader) fail(err error) error {
	trail := make([]string, len(rd.trail))
	copy(trail, rd.trail)
	return &ParseError{Trail: trail, Offset: rd.offset(), Err: err}
}

func (rd *reader) context(name string, fn func() error) error {
	rd.trail = append(rd.trail, name)
	err := fn()
	rd.trail = rd.trail[:len(rd.trail)-1]
	return err
}

func (rd *reader) u8() (byte, error) {
	b, err := rd.r.ReadByte()
	if err != nil {
		return 0, rd.fail(fmt.Errorf("unexpected end of file"))
	}
	return b, nil
}

func (rd *reader) u32() (uint32, error) {
	var v uint32
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		return 0, rd.fail(fmt.Errorf("unexpected end of file"))
	}
	return v, nil
}

func (rd *reader) take(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		return nil, rd.fail(fmt.Errorf("unexpected end of file"))
	}
	return buf, nil
}

func (rd *reader) boolean() (bool, error) {
	var b byte
	var err error
	err = rd.context("parsing Boolean from here", func() error {
		b, err = rd.u8()
		return err
	})
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, rd.fail(fmt.Errorf("boolean out of range (0x%02x)", b))
	}
}

func (rd *reader) shortString() (string, error) {
	var s string
	err := rd.context("parsing ShortString from here", func() error {
		n, err := rd.u8()
		if err != nil {
			return err
		}
		buf, err := rd.take(255)
		if err != nil {
			return err
		}
		s = string(buf[:n])
		return nil
	})
	return s, err
}

func (rd *reader) ansiString() (string, error) {
	var s string
	err := rd.context("parsing AnsiString from here", func() error {
		n, err := rd.u32()
		if err != nil {
			return err
		}
		buf, err := rd.take(int(n))
		if err != nil {
			return err
		}
		s = string(buf)
		return nil
	})
	return s, err
}

// Parse reads a complete project file and returns its Song model, or a
// NotRecognizedError / *ParseError per §7.
func Parse(data []byte) (*Song, error) {
	if len(data) < 4 {
		return nil, &NotRecognizedError{"this is too short to be a recognized project file"}
	}

	rd := &reader{r: bytes.NewReader(data), total: int64(len(data))}
	version, err := rd.u32()
	if err != nil {
		return nil, &NotRecognizedError{"this is too short to be a recognized project file"}
	}
	switch {
	case version <= 5:
		return nil, &NotRecognizedError{fmt.Sprintf("project version %d needs upgrading in the tracker before it can be compiled", version)}
	case version >= 7:
		return nil, &NotRecognizedError{fmt.Sprintf("project version %d is newer than this tool supports", version)}
	}

	var s Song
	err = rd.context("parsing v6 song from here", func() error {
		var err error
		if s.Name, err = rd.shortString(); err != nil {
			return err
		}
		if s.Artist, err = rd.shortString(); err != nil {
			return err
		}
		if s.Comment, err = rd.shortString(); err != nil {
			return err
		}
		if err = rd.parseInstrumentCollection(&s.Instruments); err != nil {
			return err
		}
		if err = rd.parseWaveBank(&s.Waves); err != nil {
			return err
		}
		tpr, err := rd.u32()
		if err != nil {
			return err
		}
		s.TicksPerRow = uint8(tpr)
		enabled, err := rd.boolean()
		if err != nil {
			return err
		}
		divider, err := rd.u32()
		if err != nil {
			return err
		}
		if divider > 255 {
			return rd.fail(fmt.Errorf("timer divider out of range (0x%08x)", divider))
		}
		s.UseTimer = enabled
		s.TimerDivider = uint8(divider)
		if s.Patterns, err = rd.parsePatternMap(); err != nil {
			return err
		}
		if s.OrderMatrix, err = rd.parseOrderMatrix(); err != nil {
			return err
		}
		return rd.parseRoutineBank(&s.Routines)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (rd *reader) parseInstrumentCollection(ic *InstrumentCollection) error {
	return rd.context("parsing v3 instr collection from here", func() error {
		if err := rd.parseInstrumentBank(&ic.Duty, KindDuty); err != nil {
			return err
		}
		if err := rd.parseInstrumentBank(&ic.Wave, KindWave); err != nil {
			return err
		}
		return rd.parseInstrumentBank(&ic.Noise, KindNoise)
	})
}

func (rd *reader) parseInstrumentBank(bank *InstrumentBank, kind Kind) error {
	return rd.context("parsing v3 instrument bank from here", func() error {
		for i := range bank {
			instr, err := rd.parseInstrument(kind)
			if err != nil {
				return err
			}
			bank[i] = *instr
		}
		return nil
	})
}

func (rd *reader) parseInstrument(kind Kind) (*Instrument, error) {
	var instr Instrument
	instr.Kind = kind
	err := rd.context("parsing v3 instrument from here", func() error {
		kindVal, err := rd.u32()
		if err != nil {
			return err
		}
		if instr.Name, err = rd.shortString(); err != nil {
			return err
		}
		if _, err = rd.u32(); err != nil { // length
			return err
		}
		if _, err = rd.boolean(); err != nil { // length enabled
			return err
		}
		initVol, err := rd.u8()
		if err != nil {
			return err
		}
		envDir, err := rd.u32()
		if err != nil {
			return err
		}
		if envDir > 1 {
			return rd.fail(fmt.Errorf("envelope direction out of range (0x%08x)", envDir))
		}
		envPace, err := rd.u8()
		if err != nil {
			return err
		}
		sweepTime, err := rd.u32()
		if err != nil {
			return err
		}
		sweepDir, err := rd.u32()
		if err != nil {
			return err
		}
		if sweepDir > 1 {
			return rd.fail(fmt.Errorf("sweep direction out of range (0x%08x)", sweepDir))
		}
		sweepShift, err := rd.u32()
		if err != nil {
			return err
		}
		duty, err := rd.u8()
		if err != nil {
			return err
		}
		if duty > 3 {
			return rd.fail(fmt.Errorf("duty type out of range (0x%02x)", duty))
		}
		outputLevel, err := rd.u32()
		if err != nil {
			return err
		}
		if outputLevel > 3 {
			return rd.fail(fmt.Errorf("wave output level out of range (0x%08x)", outputLevel))
		}
		waveform, err := rd.u32()
		if err != nil {
			return err
		}
		lfsrWidth, err := rd.u32()
		if err != nil {
			return err
		}
		if lfsrWidth > 1 {
			return rd.fail(fmt.Errorf("LFSR width out of range (0x%08x)", lfsrWidth))
		}
		subEnabled, err := rd.boolean()
		if err != nil {
			return err
		}
		sub, err := rd.parseSubpattern()
		if err != nil {
			return err
		}

		switch kindVal {
		case 0:
			instr.Square = SquareParams{
				InitialVolume: initVol,
				EnvelopeDir:   EnvelopeDirection(envDir),
				EnvelopePace:  envPace,
				SweepTime:     uint8(sweepTime),
				SweepDir:      SweepDirection(sweepDir),
				SweepShift:    uint8(sweepShift),
				Duty:          Duty(duty),
			}
		case 1:
			instr.Wave = WaveParams{
				OutputLevel: WaveOutputLevel(outputLevel),
				WaveIndex:   uint8(waveform),
			}
		case 2:
			instr.Noise = NoiseParams{
				InitialVolume: initVol,
				EnvelopeDir:   EnvelopeDirection(envDir),
				EnvelopePace:  envPace,
				LfsrWidth:     LfsrWidth(lfsrWidth),
			}
		default:
			return rd.fail(fmt.Errorf("instrument type out of range (0x%08x)", kindVal))
		}
		instr.HasSubpattern = subEnabled
		instr.Subpattern = *sub
		return nil
	})
	return &instr, err
}

func (rd *reader) parseWaveBank(wb *WaveBank) error {
	return rd.context("parsing v2 wave bank from here", func() error {
		for i := range wb {
			w, err := rd.parseWave()
			if err != nil {
				return err
			}
			wb[i] = *w
		}
		return nil
	})
}

func (rd *reader) parseWave() (*Wave, error) {
	var w Wave
	err := rd.context("parsing v2 wave from here", func() error {
		raw, err := rd.take(32)
		if err != nil {
			return err
		}
		for i := 0; i < WaveBytes; i++ {
			hi, lo := raw[i*2], raw[i*2+1]
			if hi&0xF0 != 0 {
				return rd.fail(fmt.Errorf("wave sample out of range (0x%02x)", hi))
			}
			if lo&0xF0 != 0 {
				return rd.fail(fmt.Errorf("wave sample out of range (0x%02x)", lo))
			}
			w[i] = hi<<4 | lo
		}
		return nil
	})
	return &w, err
}

func (rd *reader) parsePatternMap() ([]Pattern, error) {
	var patterns []Pattern
	err := rd.context("parsing v2 pattern map from here", func() error {
		n, err := rd.u32()
		if err != nil {
			return err
		}
		for i := uint32(0); i < n; i++ {
			id, err := rd.u32()
			if err != nil {
				return err
			}
			pat, err := rd.parsePattern()
			if err != nil {
				return err
			}
			for len(patterns) <= int(id) {
				patterns = append(patterns, Pattern{})
			}
			patterns[id] = *pat
		}
		return nil
	})
	return patterns, err
}

func (rd *reader) parsePattern() (*Pattern, error) {
	var pat Pattern
	err := rd.context("parsing v2 pattern from here", func() error {
		for i := range pat {
			c, err := rd.parseRawCell()
			if err != nil {
				return err
			}
			if c.note > LastNote && c.note != NoNote {
				return rd.fail(fmt.Errorf("note out of range (0x%08x)", c.note))
			}
			pat[i] = Cell{Note: uint8(c.note), Instrument: c.instrument, Effect: c.effect, Param: c.param}
		}
		return nil
	})
	return &pat, err
}

func (rd *reader) parseSubpattern() (*Subpattern, error) {
	var sub Subpattern
	err := rd.context("parsing v2 (sub)pattern from here", func() error {
		for i := range sub {
			c, err := rd.parseRawCell()
			if err != nil {
				return err
			}
			if c.note > NoSubNoteOffset {
				return rd.fail(fmt.Errorf("note offset out of range (0x%08x)", c.note))
			}
			sub[i] = SubCell{NoteOffset: uint8(c.note), NextRow: c.jumpIndex, Effect: c.effect, Param: c.param}
		}
		// The remainder of the on-disk pattern is present but unused.
		for i := SubpatternRows; i < PatternRows; i++ {
			if _, err := rd.parseRawCell(); err != nil {
				return err
			}
		}
		// hUGETracker encodes jump targets as "0 for no jump, else 1-indexed
		// target", but only has 5 bits to store it: 32 ("no jump") silently
		// truncates to 0 on export. We fix this by making every row jump
		// unconditionally; 32 row indices fit exactly in 5 bits.
		for i := range sub {
			switch n := sub[i].NextRow; n {
			case 0:
				sub[i].NextRow = uint8((i + 1) % SubpatternRows)
			default:
				sub[i].NextRow = n - 1
			}
		}
		return nil
	})
	return &sub, err
}

type rawCell struct {
	note       uint32
	instrument uint8
	jumpIndex  uint8
	effect     Effect
	param      uint8
}

func (rd *reader) parseRawCell() (*rawCell, error) {
	var c rawCell
	err := rd.context("parsing v2 cell from here", func() error {
		note, err := rd.u32()
		if err != nil {
			return err
		}
		instr, err := rd.u32()
		if err != nil {
			return err
		}
		if instr >= 16 {
			return rd.fail(fmt.Errorf("instrument out of range (0x%02x)", instr))
		}
		jump, err := rd.u32()
		if err != nil {
			return err
		}
		fx, err := rd.u32()
		if err != nil {
			return err
		}
		if fx >= NumEffects {
			return rd.fail(fmt.Errorf("effect ID out of range (0x%08x)", fx))
		}
		param, err := rd.u8()
		if err != nil {
			return err
		}
		c = rawCell{note: note, instrument: uint8(instr), jumpIndex: uint8(jump), effect: Effect(fx), param: param}
		return nil
	})
	return &c, err
}

func (rd *reader) parseOrderMatrix() ([]OrderRow, error) {
	var rows []OrderRow
	err := rd.context("parsing order matrix from here", func() error {
		var columns [4][]uint32
		for ch := 0; ch < 4; ch++ {
			col, err := rd.parseOrderColumn()
			if err != nil {
				return err
			}
			columns[ch] = col
		}
		l0, l1, l2, l3 := len(columns[0]), len(columns[1]), len(columns[2]), len(columns[3])
		if l0 != l1 || l1 != l2 || l2 != l3 {
			return rd.fail(fmt.Errorf("length of order \"columns\" don't match! (%d, %d, %d, %d)", l0, l1, l2, l3))
		}
		if l0 == 0 {
			return nil
		}
		// hUGETracker stores one extra trailing sentinel entry per column.
		rows = make([]OrderRow, l0-1)
		for i := 0; i < l0-1; i++ {
			rows[i] = OrderRow{uint16(columns[0][i]), uint16(columns[1][i]), uint16(columns[2][i]), uint16(columns[3][i])}
		}
		return nil
	})
	return rows, err
}

func (rd *reader) parseOrderColumn() ([]uint32, error) {
	var col []uint32
	err := rd.context("parsing order \"column\" from here", func() error {
		n, err := rd.u32()
		if err != nil {
			return err
		}
		col = make([]uint32, n)
		for i := uint32(0); i < n; i++ {
			v, err := rd.u32()
			if err != nil {
				return err
			}
			col[i] = v
		}
		return nil
	})
	return col, err
}

func (rd *reader) parseRoutineBank(routines *[NumRoutines]string) error {
	return rd.context("parsing routine bank from here", func() error {
		for i := range routines {
			var r string
			err := rd.context("parsing routine from here", func() error {
				var err error
				r, err = rd.ansiString()
				return err
			})
			if err != nil {
				return err
			}
			routines[i] = r
		}
		return nil
	})
}
