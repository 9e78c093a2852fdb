package optimise

import (
	"testing"

	"github.com/retrotrk/nitrocc/internal/song"
)

func TestEncodeMainCellPosJump(t *testing.T) {
	cases := []struct {
		param uint8
		want  uint8
	}{
		{2, 0},
		{1, 254},
	}
	for _, c := range cases {
		got := EncodeMainCell(song.Cell{Effect: song.EffectPositionJump, Param: c.param})
		if got[0] != c.want {
			t.Errorf("PosJump(%d): byte0 = %d, want %d", c.param, got[0], c.want)
		}
	}
}

func TestEncodeMainCellPatternBreak(t *testing.T) {
	got := EncodeMainCell(song.Cell{Effect: song.EffectPatternBreak, Param: 1})
	if got[0] != 0xC0 {
		t.Errorf("PatternBreak(1): byte0 = 0x%02x, want 0xC0", got[0])
	}
}

func TestEncodeMainCellSetVol(t *testing.T) {
	cases := []struct {
		param uint8
		want  uint8
	}{
		{0x30, 0x08}, // env=3, vol=0, bit 3 of env clear -> mute
		{0x24, 0x42}, // env=2, vol=4 -> nibble-swapped
	}
	for _, c := range cases {
		got := EncodeMainCell(song.Cell{Effect: song.EffectSetVol, Param: c.param})
		if got[0] != c.want {
			t.Errorf("SetVol(0x%02x): byte0 = 0x%02x, want 0x%02x", c.param, got[0], c.want)
		}
	}
}

func TestEncodeMainCellPassthrough(t *testing.T) {
	got := EncodeMainCell(song.Cell{Effect: song.EffectVibrato, Param: 0x57})
	if got[0] != 0x57 {
		t.Errorf("passthrough effect: byte0 = 0x%02x, want 0x57", got[0])
	}
}

func TestEncodeMainCellByte2And3(t *testing.T) {
	c := song.Cell{Note: 40, Instrument: 7, Effect: song.EffectArpeggio, Param: 0}
	got := EncodeMainCell(c)
	if got[1] != 0x70 {
		t.Errorf("byte1 = 0x%02x, want 0x70 (instrument<<4 | effect)", got[1])
	}
	if got[2] != 40 {
		t.Errorf("byte2 = %d, want 40 (note passthrough)", got[2])
	}
}

func TestEncodeSubCellPacksJumpIndex(t *testing.T) {
	// NextRow = 0b10101 = 21: low nibble 0x5 rides in byte1's upper nibble,
	// bit 4 rides in byte2's low bit.
	c := song.SubCell{NoteOffset: 10, NextRow: 21, Effect: song.EffectArpeggio}
	got := EncodeSubCell(c)
	if hi := got[1] >> 4; hi != 0x5 {
		t.Errorf("byte1 high nibble = 0x%x, want 0x5", hi)
	}
	if lo := got[2] & 1; lo != 1 {
		t.Errorf("byte2 low bit = %d, want 1 (bit 4 of NextRow)", lo)
	}
	if note := got[2] >> 1; note != 10 {
		t.Errorf("byte2 note offset = %d, want 10", note)
	}
}

func TestEncodeMainCellNoNote(t *testing.T) {
	c := song.Cell{Note: song.NoNote, Instrument: 0, Effect: song.EffectArpeggio, Param: 0}
	got := EncodeMainCell(c)
	if got[2] != 90 {
		t.Errorf("byte2 = %d, want 90 (song.NoNote passthrough)", got[2])
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	c := song.Cell{Note: 5, Instrument: 3, Effect: song.EffectSetDutyCycle, Param: 2}
	a, b := EncodeMainCell(c), EncodeMainCell(c)
	if a != b {
		t.Errorf("EncodeMainCell not deterministic: %v != %v", a, b)
	}
}
