// Package segment implements the QR code segment types: validation,
// bit-level serialization for encoding, and deserialization for decoding.
// Segments share the same wire shape: a 4-bit mode indicator, an N-bit
// character count, then the mode-specific payload encoding. Hanzi adds a
// 4-bit subset indicator before its count; ECI writes its designator in
// place of a count, followed by its Byte segment.
package segment

import (
	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/charset"
	"github.com/ldnrds/goqr/qrcode/model"
	"github.com/ldnrds/goqr/qrerr"
)

// Segment is a single payload chunk ready to be written into a symbol's
// bitstream, in the order the caller wants it to appear.
type Segment interface {
	Mode() model.Mode
	Validate() error
	LengthInBits(version *model.Version) int
	Write(buf *bitutil.BitBuffer, version *model.Version) error
}

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

var alphanumericTable [128]int

func init() {
	for i := range alphanumericTable {
		alphanumericTable[i] = -1
	}
	for i := 0; i < len(alphanumericChars); i++ {
		alphanumericTable[alphanumericChars[i]] = i
	}
}

// AlphanumericCode returns the 45-character alphabet code for c, or -1 if c
// is outside the alphabet.
func AlphanumericCode(c byte) int {
	if c >= 128 {
		return -1
	}
	return alphanumericTable[c]
}

// ChooseMode picks the narrowest mode capable of carrying content verbatim,
// numeric first, then alphanumeric, falling back to byte mode.
func ChooseMode(content string) model.Mode {
	hasNumeric, hasAlphanumeric := false, false
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c >= '0' && c <= '9':
			hasNumeric = true
		case AlphanumericCode(c) != -1:
			hasAlphanumeric = true
		default:
			return model.ModeByte
		}
	}
	if hasAlphanumeric {
		return model.ModeAlphanumeric
	}
	if hasNumeric {
		return model.ModeNumeric
	}
	return model.ModeByte
}

func writeHeader(buf *bitutil.BitBuffer, m model.Mode, version *model.Version, count int) {
	buf.Put(uint32(m.Bits()), 4)
	buf.Put(uint32(count), m.CharacterCountBits(version))
}

// Numeric is a run of decimal digits, packed three-to-ten-bits.
type Numeric struct{ Value string }

func (s Numeric) Mode() model.Mode { return model.ModeNumeric }

func (s Numeric) Validate() error {
	for i := 0; i < len(s.Value); i++ {
		if s.Value[i] < '0' || s.Value[i] > '9' {
			return qrerr.IllegalCharacter
		}
	}
	return nil
}

func (s Numeric) LengthInBits(version *model.Version) int {
	n := len(s.Value)
	bits := (n / 3) * 10
	switch n % 3 {
	case 1:
		bits += 4
	case 2:
		bits += 7
	}
	return 4 + s.Mode().CharacterCountBits(version) + bits
}

func (s Numeric) Write(buf *bitutil.BitBuffer, version *model.Version) error {
	if err := s.Validate(); err != nil {
		return err
	}
	writeHeader(buf, s.Mode(), version, len(s.Value))
	i, n := 0, len(s.Value)
	for i < n {
		d1 := int(s.Value[i] - '0')
		switch {
		case i+2 < n:
			d2, d3 := int(s.Value[i+1]-'0'), int(s.Value[i+2]-'0')
			buf.Put(uint32(d1*100+d2*10+d3), 10)
			i += 3
		case i+1 < n:
			d2 := int(s.Value[i+1] - '0')
			buf.Put(uint32(d1*10+d2), 7)
			i += 2
		default:
			buf.Put(uint32(d1), 4)
			i++
		}
	}
	return nil
}

// Alphanumeric is a run of characters from the 45-character QR alphabet,
// packed two-to-eleven-bits.
type Alphanumeric struct{ Value string }

func (s Alphanumeric) Mode() model.Mode { return model.ModeAlphanumeric }

func (s Alphanumeric) Validate() error {
	for i := 0; i < len(s.Value); i++ {
		if AlphanumericCode(s.Value[i]) == -1 {
			return qrerr.IllegalCharacter
		}
	}
	return nil
}

func (s Alphanumeric) LengthInBits(version *model.Version) int {
	n := len(s.Value)
	bits := (n / 2) * 11
	if n%2 == 1 {
		bits += 6
	}
	return 4 + s.Mode().CharacterCountBits(version) + bits
}

func (s Alphanumeric) Write(buf *bitutil.BitBuffer, version *model.Version) error {
	if err := s.Validate(); err != nil {
		return err
	}
	writeHeader(buf, s.Mode(), version, len(s.Value))
	i, n := 0, len(s.Value)
	for i < n {
		c1 := AlphanumericCode(s.Value[i])
		if i+1 < n {
			c2 := AlphanumericCode(s.Value[i+1])
			buf.Put(uint32(c1*45+c2), 11)
			i += 2
		} else {
			buf.Put(uint32(c1), 6)
			i++
		}
	}
	return nil
}

// Byte is a run of raw bytes, packed eight bits each. It carries no
// encoding name; the bytes are written as given, so the caller converts
// text with charset.EncodeBytes beforehand when an ECI segment should
// precede this one.
type Byte struct{ Value []byte }

func (s Byte) Mode() model.Mode { return model.ModeByte }

func (s Byte) Validate() error { return nil }

func (s Byte) LengthInBits(version *model.Version) int {
	return 4 + s.Mode().CharacterCountBits(version) + len(s.Value)*8
}

func (s Byte) Write(buf *bitutil.BitBuffer, version *model.Version) error {
	writeHeader(buf, s.Mode(), version, len(s.Value))
	for _, b := range s.Value {
		buf.Put(uint32(b), 8)
	}
	return nil
}

// Kanji is a run of Shift_JIS double-byte characters, packed into 13 bits
// each. Value must already be Shift_JIS-encoded, e.g. via
// charset.EncodeBytes(s, "Shift_JIS").
type Kanji struct{ Value []byte }

func (s Kanji) Mode() model.Mode { return model.ModeKanji }

func (s Kanji) Validate() error {
	if len(s.Value)%2 != 0 {
		return qrerr.IllegalCharacter
	}
	return nil
}

func (s Kanji) count() int { return len(s.Value) / 2 }

func (s Kanji) LengthInBits(version *model.Version) int {
	return 4 + s.Mode().CharacterCountBits(version) + s.count()*13
}

func (s Kanji) Write(buf *bitutil.BitBuffer, version *model.Version) error {
	if err := s.Validate(); err != nil {
		return err
	}
	writeHeader(buf, s.Mode(), version, s.count())
	for i := 0; i < len(s.Value); i += 2 {
		code := int(s.Value[i])<<8 | int(s.Value[i+1])
		var packed int
		if code >= 0x8140 && code <= 0x9FFC {
			packed = code - 0x8140
		} else if code >= 0xE040 && code <= 0xEBBF {
			packed = code - 0xC140
		} else {
			return qrerr.IllegalCharacter
		}
		buf.Put(uint32((packed>>8)*0xC0+(packed&0xFF)), 13)
	}
	return nil
}

const gb2312Subset = 1

// Hanzi is a run of GB18030 double-byte characters, prefixed by a 4-bit
// subset indicator (only GB2312, value 1, is supported), packed into 13
// bits each. Value must already be GB18030-encoded.
type Hanzi struct{ Value []byte }

func (s Hanzi) Mode() model.Mode { return model.ModeHanzi }

func (s Hanzi) Validate() error {
	if len(s.Value)%2 != 0 {
		return qrerr.IllegalCharacter
	}
	return nil
}

func (s Hanzi) count() int { return len(s.Value) / 2 }

func (s Hanzi) LengthInBits(version *model.Version) int {
	return 4 + 4 + s.Mode().CharacterCountBits(version) + s.count()*13
}

func (s Hanzi) Write(buf *bitutil.BitBuffer, version *model.Version) error {
	if err := s.Validate(); err != nil {
		return err
	}
	buf.Put(uint32(s.Mode().Bits()), 4)
	buf.Put(uint32(gb2312Subset), 4)
	buf.Put(uint32(s.count()), s.Mode().CharacterCountBits(version))
	for i := 0; i < len(s.Value); i += 2 {
		code := int(s.Value[i])<<8 | int(s.Value[i+1])
		a := code - 0xA1A1
		if a < 0 || a >= 0x0A00 {
			a = code - 0xA6A1
			if a < 0x0A00 {
				return qrerr.IllegalCharacter
			}
		}
		hi, lo := a>>8, a&0xFF
		buf.Put(uint32(hi*0x60+lo), 13)
	}
	return nil
}

// ECI carries a character-set designator and must be immediately followed,
// on the wire, by the Byte segment it governs.
type ECI struct {
	Value int
	Next  Byte
}

func (s ECI) Mode() model.Mode { return model.ModeECI }

func (s ECI) Validate() error {
	if _, err := charset.GetECIByValue(s.Value); err != nil {
		return err
	}
	return nil
}

func (s ECI) LengthInBits(version *model.Version) int {
	return 4 + len(charset.EncodeECIDesignator(s.Value))*8 + s.Next.LengthInBits(version)
}

func (s ECI) Write(buf *bitutil.BitBuffer, version *model.Version) error {
	if err := s.Validate(); err != nil {
		return err
	}
	buf.Put(uint32(s.Mode().Bits()), 4)
	for _, b := range charset.EncodeECIDesignator(s.Value) {
		buf.Put(uint32(b), 8)
	}
	return s.Next.Write(buf, version)
}

// TotalLengthInBits sums the wire length of every segment in order.
func TotalLengthInBits(segments []Segment, version *model.Version) int {
	total := 0
	for _, s := range segments {
		total += s.LengthInBits(version)
	}
	return total
}

// WriteAll validates and writes every segment in order.
func WriteAll(buf *bitutil.BitBuffer, segments []Segment, version *model.Version) error {
	for _, s := range segments {
		if err := s.Write(buf, version); err != nil {
			return err
		}
	}
	return nil
}
