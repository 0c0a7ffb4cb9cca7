package decoder

import (
	"strings"

	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/charset"
	"github.com/ldnrds/goqr/internal"
	"github.com/ldnrds/goqr/qrcode/model"
	"github.com/ldnrds/goqr/qrerr"
	"github.com/ldnrds/goqr/segment"
)

const gb2312Subset = 1

// DecodeBitStream decodes data bytes into a DecoderResult.
func DecodeBitStream(bytes []byte, version *model.Version, ecLevel model.ErrorCorrectionLevel, characterSet string) (*internal.DecoderResult, error) {
	buf := bitutil.NewBitBufferFromBytes(bytes)
	buf.Rewind()
	var result strings.Builder
	result.Grow(50)
	var byteSegments [][]byte

	var currentCharacterSetECI *charset.ECI

	for {
		var mode model.Mode
		if buf.Available() < 4 {
			mode = model.ModeTerminator
		} else {
			modeBits, err := buf.Read(4)
			if err != nil {
				return nil, qrerr.NotEnoughBits
			}
			mode, err = model.ModeForBits(modeBits)
			if err != nil {
				return nil, err
			}
		}

		switch mode {
		case model.ModeTerminator:
			// done
		case model.ModeECI:
			value, err := segment.ParseECIValue(buf)
			if err != nil {
				return nil, err
			}
			eci, err := charset.GetECIByValue(value)
			if err != nil {
				return nil, err
			}
			currentCharacterSetECI = eci

			if buf.Available() < 4 {
				return nil, qrerr.ECIFollowedByInvalidMode
			}
			nextModeBits, err := buf.Read(4)
			if err != nil {
				return nil, qrerr.NotEnoughBits
			}
			if model.Mode(nextModeBits) != model.ModeByte {
				return nil, qrerr.ECIFollowedByInvalidMode
			}
			count, err := buf.Read(model.ModeByte.CharacterCountBits(version))
			if err != nil {
				return nil, qrerr.NotEnoughBits
			}
			seg, err := segment.DecodeByte(buf, &result, count, currentCharacterSetECI, characterSet)
			if err != nil {
				return nil, err
			}
			byteSegments = append(byteSegments, seg)
		case model.ModeHanzi:
			subsetBits, err := buf.Read(4)
			if err != nil {
				return nil, qrerr.NotEnoughBits
			}
			if subsetBits != gb2312Subset {
				return nil, qrerr.InvalidSubset
			}
			countBits := mode.CharacterCountBits(version)
			count, err := buf.Read(countBits)
			if err != nil {
				return nil, qrerr.NotEnoughBits
			}
			if err := segment.DecodeHanzi(buf, &result, count); err != nil {
				return nil, err
			}
		default:
			countBits := mode.CharacterCountBits(version)
			count, err := buf.Read(countBits)
			if err != nil {
				return nil, qrerr.NotEnoughBits
			}
			switch mode {
			case model.ModeNumeric:
				if err := segment.DecodeNumeric(buf, &result, count); err != nil {
					return nil, err
				}
			case model.ModeAlphanumeric:
				if err := segment.DecodeAlphanumeric(buf, &result, count); err != nil {
					return nil, err
				}
			case model.ModeByte:
				seg, err := segment.DecodeByte(buf, &result, count, currentCharacterSetECI, characterSet)
				if err != nil {
					return nil, err
				}
				byteSegments = append(byteSegments, seg)
			case model.ModeKanji:
				if err := segment.DecodeKanji(buf, &result, count); err != nil {
					return nil, err
				}
			default:
				return nil, qrerr.UnknownMode
			}
		}

		if mode == model.ModeTerminator {
			break
		}
	}

	return internal.NewDecoderResult(bytes, result.String(), byteSegments, ecLevel.String()), nil
}
