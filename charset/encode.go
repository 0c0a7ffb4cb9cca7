package charset

import (
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// EncodeBytes converts UTF-8 text to the given encoding's byte sequence.
// Only Shift_JIS and GB18030 (with its GB2312/GBK/EUC_CN aliases) are
// transcoded; for any other encoding name, or if conversion fails, the
// UTF-8 bytes are returned unchanged.
func EncodeBytes(s, encoding string) []byte {
	switch encoding {
	case "Shift_JIS", "SJIS":
		encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
		if err == nil {
			return encoded
		}
	case "GB18030", "GB2312", "GBK", "EUC_CN":
		encoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewEncoder(), []byte(s))
		if err == nil {
			return encoded
		}
	}
	return []byte(s)
}

// EncodeECIDesignator packs an ECI value into its 1, 2, or 3 byte wire
// form, the inverse of segment.ParseECIValue.
func EncodeECIDesignator(value int) []byte {
	switch {
	case value < 0:
		return nil
	case value < 1<<7:
		return []byte{byte(value)}
	case value < 1<<14:
		return []byte{byte(0x80 | (value >> 8)), byte(value)}
	case value < 1<<21:
		return []byte{byte(0xC0 | (value >> 16)), byte(value >> 8), byte(value)}
	default:
		return nil
	}
}
