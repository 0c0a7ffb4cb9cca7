// Package model holds the QR code data-model types shared by the encoder,
// decoder, and segment packages: modes, versions, error-correction levels,
// and the eight data mask functions.
package model

import "github.com/ldnrds/goqr/qrerr"

// Mode represents a QR code data segment encoding mode.
type Mode int

const (
	// ModeAuto is a sentinel meaning "pick the narrowest mode for the
	// content," never a real 4-bit wire value.
	ModeAuto         Mode = -1
	ModeTerminator   Mode = 0x0
	ModeNumeric      Mode = 0x1
	ModeAlphanumeric Mode = 0x2
	ModeByte         Mode = 0x4
	ModeECI          Mode = 0x7
	ModeKanji        Mode = 0x8
	ModeHanzi        Mode = 0xD
)

// characterCountBits holds, per mode, the character-count field width for
// version ranges [1-9, 10-26, 27-40].
var characterCountBits = map[Mode][3]int{
	ModeTerminator:   {0, 0, 0},
	ModeNumeric:      {10, 12, 14},
	ModeAlphanumeric: {9, 11, 13},
	ModeByte:         {8, 16, 16},
	ModeECI:          {0, 0, 0},
	ModeKanji:        {8, 10, 12},
	ModeHanzi:        {8, 10, 12},
}

// ModeForBits returns the Mode for the given 4-bit indicator value.
func ModeForBits(bits int) (Mode, error) {
	switch bits {
	case 0x0:
		return ModeTerminator, nil
	case 0x1:
		return ModeNumeric, nil
	case 0x2:
		return ModeAlphanumeric, nil
	case 0x4:
		return ModeByte, nil
	case 0x7:
		return ModeECI, nil
	case 0x8:
		return ModeKanji, nil
	case 0xD:
		return ModeHanzi, nil
	}
	return 0, qrerr.UnknownMode
}

// CharacterCountBits returns the number of bits used to encode the character
// count for this mode in the given version.
func (m Mode) CharacterCountBits(version *Version) int {
	number := version.Number
	var offset int
	if number <= 9 {
		offset = 0
	} else if number <= 26 {
		offset = 1
	} else {
		offset = 2
	}
	return characterCountBits[m][offset]
}

// Bits returns the 4-bit encoding of this mode.
func (m Mode) Bits() int {
	return int(m)
}

// String names the mode, for diagnostics and logging-free error messages.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "Auto"
	case ModeTerminator:
		return "Terminator"
	case ModeNumeric:
		return "Numeric"
	case ModeAlphanumeric:
		return "Alphanumeric"
	case ModeByte:
		return "Byte"
	case ModeECI:
		return "ECI"
	case ModeKanji:
		return "Kanji"
	case ModeHanzi:
		return "Hanzi"
	}
	return "Unknown"
}
