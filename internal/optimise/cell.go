package optimise

import "github.com/retrotrk/nitrocc/internal/song"

// patternLength is the fixed main-pattern row count used by the
// PatternBreak encoding (§4.8).
const patternLength = song.PatternRows

// encodeByte1 transforms a cell's effect parameter into its on-disk form
// (§4.8 "Byte 1"). PositionJump, SetVol and PatternBreak get hardware-shaped
// rewrites; every other effect passes its parameter through unchanged.
func encodeByte1(effect song.Effect, param uint8) uint8 {
	switch effect {
	case song.EffectPositionJump:
		return uint8((int(param)-1-1)*2) & 0xFF
	case song.EffectSetVol:
		env := param >> 4
		vol := param & 0x0F
		if env >= 1 && vol == 0 && env&0x08 == 0 {
			return 0x08
		}
		return vol<<4 | env
	case song.EffectPatternBreak:
		return (param - 1) | uint8(256-patternLength)
	default:
		return param
	}
}

// EncodeMainCell packs a main-pattern cell into its three on-disk bytes
// (§4.8).
func EncodeMainCell(c song.Cell) [3]byte {
	var out [3]byte
	out[0] = encodeByte1(c.Effect, c.Param)
	out[1] = c.Instrument<<4 | uint8(c.Effect)&0x0F
	out[2] = c.Note
	return out
}

// EncodeSubCell packs a subpattern cell into its three on-disk bytes
// (§4.8). The jump index is split across bytes 2 and 3: its low nibble
// rides in byte 2's upper nibble alongside the effect id, and its single
// remaining high bit rides in byte 3's low bit alongside the note offset.
func EncodeSubCell(c song.SubCell) [3]byte {
	var out [3]byte
	out[0] = encodeByte1(c.Effect, c.Param)
	out[1] = (c.NextRow&0x0F)<<4 | uint8(c.Effect)&0x0F
	out[2] = c.NoteOffset<<1 | (c.NextRow&0x10)>>4
	return out
}
