package segment

import (
	"fmt"
	"strings"

	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/charset"
	"github.com/ldnrds/goqr/qrerr"
)

func toAlphaNumericChar(value int) (byte, error) {
	if value < 0 || value >= len(alphanumericChars) {
		return 0, qrerr.IllegalCharacter
	}
	return alphanumericChars[value], nil
}

// DecodeAlphanumeric consumes count characters from buf, two per 11 bits
// with an optional trailing 6-bit singleton, and writes them to result.
func DecodeAlphanumeric(buf *bitutil.BitBuffer, result *strings.Builder, count int) error {
	for count > 1 {
		if buf.Available() < 11 {
			return qrerr.NotEnoughBits
		}
		nextTwo, _ := buf.Read(11)
		c1, err := toAlphaNumericChar(nextTwo / 45)
		if err != nil {
			return err
		}
		c2, err := toAlphaNumericChar(nextTwo % 45)
		if err != nil {
			return err
		}
		result.WriteByte(c1)
		result.WriteByte(c2)
		count -= 2
	}
	if count == 1 {
		if buf.Available() < 6 {
			return qrerr.NotEnoughBits
		}
		val, _ := buf.Read(6)
		c, err := toAlphaNumericChar(val)
		if err != nil {
			return err
		}
		result.WriteByte(c)
	}
	return nil
}

// DecodeNumeric consumes count digits from buf, three per 10 bits, with a
// two- or one-digit remainder, and writes them to result.
func DecodeNumeric(buf *bitutil.BitBuffer, result *strings.Builder, count int) error {
	for count >= 3 {
		if buf.Available() < 10 {
			return qrerr.NotEnoughBits
		}
		threeDigits, _ := buf.Read(10)
		if threeDigits >= 1000 {
			return qrerr.IllegalCharacter
		}
		fmt.Fprintf(result, "%03d", threeDigits)
		count -= 3
	}
	if count == 2 {
		if buf.Available() < 7 {
			return qrerr.NotEnoughBits
		}
		twoDigits, _ := buf.Read(7)
		if twoDigits >= 100 {
			return qrerr.IllegalCharacter
		}
		fmt.Fprintf(result, "%02d", twoDigits)
	} else if count == 1 {
		if buf.Available() < 4 {
			return qrerr.NotEnoughBits
		}
		digit, _ := buf.Read(4)
		if digit >= 10 {
			return qrerr.IllegalCharacter
		}
		fmt.Fprintf(result, "%d", digit)
	}
	return nil
}

// DecodeByte consumes count raw bytes from buf. If eci is non-nil its Go
// encoding name governs the text conversion; otherwise characterSet (or a
// best-effort guess) is used. Returns the raw bytes (for ByteSegments
// reporting) and writes the decoded text to result.
func DecodeByte(buf *bitutil.BitBuffer, result *strings.Builder, count int,
	eci *charset.ECI, characterSet string) ([]byte, error) {
	if 8*count > buf.Available() {
		return nil, qrerr.NotEnoughBits
	}
	readBytes := make([]byte, count)
	for i := 0; i < count; i++ {
		val, _ := buf.Read(8)
		readBytes[i] = byte(val)
	}

	var encoding string
	if eci != nil {
		encoding = eci.GoName
	} else {
		encoding = charset.GuessEncoding(readBytes, characterSet)
	}
	result.WriteString(charset.DecodeBytes(readBytes, encoding))
	return readBytes, nil
}

// DecodeKanji consumes count Shift_JIS double-byte characters from buf,
//13 bits each, and writes the decoded text to result.
func DecodeKanji(buf *bitutil.BitBuffer, result *strings.Builder, count int) error {
	if count*13 > buf.Available() {
		return qrerr.NotEnoughBits
	}
	raw := make([]byte, 2*count)
	for i := 0; i < count; i++ {
		twoBytes, _ := buf.Read(13)
		assembled := ((twoBytes / 0xC0) << 8) | (twoBytes % 0xC0)
		if assembled < 0x1F00 {
			assembled += 0x8140
		} else {
			assembled += 0xC140
		}
		raw[2*i] = byte(assembled >> 8)
		raw[2*i+1] = byte(assembled)
	}
	result.WriteString(charset.DecodeBytes(raw, "Shift_JIS"))
	return nil
}

// DecodeHanzi consumes count GB18030 double-byte characters from buf, 13
// bits each, and writes the decoded text to result.
func DecodeHanzi(buf *bitutil.BitBuffer, result *strings.Builder, count int) error {
	if count*13 > buf.Available() {
		return qrerr.NotEnoughBits
	}
	raw := make([]byte, 2*count)
	for i := 0; i < count; i++ {
		twoBytes, _ := buf.Read(13)
		assembled := ((twoBytes / 0x60) << 8) | (twoBytes % 0x60)
		if assembled < 0x0A00 {
			assembled += 0xA1A1
		} else {
			assembled += 0xA6A1
		}
		raw[2*i] = byte(assembled >> 8)
		raw[2*i+1] = byte(assembled)
	}
	result.WriteString(charset.DecodeBytes(raw, "GB18030"))
	return nil
}

// ParseECIValue reads a 1, 2, or 3 byte ECI designator from buf per its
// leading-bits length tag.
func ParseECIValue(buf *bitutil.BitBuffer) (int, error) {
	firstByte, err := buf.Read(8)
	if err != nil {
		return 0, qrerr.NotEnoughBits
	}
	if firstByte&0x80 == 0 {
		return firstByte & 0x7F, nil
	}
	if firstByte&0xC0 == 0x80 {
		secondByte, err := buf.Read(8)
		if err != nil {
			return 0, qrerr.NotEnoughBits
		}
		return (firstByte&0x3F)<<8 | secondByte, nil
	}
	if firstByte&0xE0 == 0xC0 {
		secondThird, err := buf.Read(16)
		if err != nil {
			return 0, qrerr.NotEnoughBits
		}
		return (firstByte&0x1F)<<16 | secondThird, nil
	}
	return 0, qrerr.NotEnoughBits
}
