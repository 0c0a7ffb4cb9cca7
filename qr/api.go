package qr

import (
	"math"

	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/luminance"
	"github.com/ldnrds/goqr/qrcode/decoder"
	"github.com/ldnrds/goqr/qrcode/encoder"
	"github.com/ldnrds/goqr/qrerr"
	"github.com/ldnrds/goqr/segment"
	"github.com/spf13/afero"
)

// Encode picks the narrowest mode for content, unless opts forces one with
// WithMode, and encodes it as a single segment. A nil opts uses
// NewOptions()'s defaults.
func Encode(content string, opts *Options) (*encoder.Symbol, error) {
	if opts == nil {
		opts = NewOptions()
	}
	return encoder.Encode(content, opts.toConfig())
}

// EncodeSegments encodes a caller-assembled, ordered list of heterogeneous
// segments into a single symbol, letting mixed-mode content (e.g. a numeric
// run followed by a Kanji run) pack tighter than forcing everything through
// byte mode. A nil opts uses NewOptions()'s defaults.
func EncodeSegments(segments []segment.Segment, opts *Options) (*encoder.Symbol, error) {
	if opts == nil {
		opts = NewOptions()
	}
	return encoder.EncodeSegments(segments, opts.toConfig())
}

// Decode binarizes src with a global-histogram threshold and decodes it as
// a "pure" QR code image: one containing only the unrotated, unskewed
// symbol plus a white border, with no perspective or rotation correction
// attempted.
func Decode(src luminance.Source, characterSet string) (*Result, error) {
	blackMatrix, err := luminance.NewHistogramBinarizer(src).BlackMatrix()
	if err != nil {
		return nil, err
	}
	bits, err := extractPureBits(blackMatrix)
	if err != nil {
		return nil, err
	}
	dr, err := decoder.NewDecoder().Decode(bits, characterSet)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:                 dr.Text,
		ByteSegments:         dr.ByteSegments,
		ErrorCorrectionLevel: dr.ECLevel,
		ErrorsCorrected:      dr.ErrorsCorrected,
	}, nil
}

// DecodeBlob decodes a QR code out of an in-memory raster image (PNG, JPEG,
// BMP, TIFF, or WebP).
func DecodeBlob(data []byte, characterSet string) (*Result, error) {
	src, err := luminance.NewBlobSource(data)
	if err != nil {
		return nil, err
	}
	return Decode(src, characterSet)
}

// DecodeFile decodes a QR code out of a raster image read through fs.
func DecodeFile(fs afero.Fs, path, characterSet string) (*Result, error) {
	src, err := luminance.NewFileSource(fs, path)
	if err != nil {
		return nil, err
	}
	return Decode(src, characterSet)
}

// extractPureBits samples the module grid out of a binarized image that
// contains nothing but an axis-aligned QR symbol and its quiet zone — no
// detector, no perspective correction, just measuring the first finder
// pattern's module size and walking the grid from there.
func extractPureBits(image *bitutil.BitMatrix) (*bitutil.BitMatrix, error) {
	leftTopBlack := image.TopLeftOnBit()
	rightBottomBlack := image.BottomRightOnBit()
	if leftTopBlack == nil || rightBottomBlack == nil {
		return nil, qrerr.InvalidMatrix
	}

	moduleSize, err := moduleSizePure(leftTopBlack, image)
	if err != nil {
		return nil, err
	}

	top := leftTopBlack[1]
	bottom := rightBottomBlack[1]
	left := leftTopBlack[0]
	right := rightBottomBlack[0]

	if left >= right || top >= bottom {
		return nil, qrerr.InvalidMatrix
	}

	if bottom-top != right-left {
		right = left + (bottom - top)
		if right >= image.Width() {
			return nil, qrerr.InvalidMatrix
		}
	}

	matrixWidth := int(math.Round(float64(right-left+1) / moduleSize))
	matrixHeight := int(math.Round(float64(bottom-top+1) / moduleSize))
	if matrixWidth <= 0 || matrixHeight <= 0 {
		return nil, qrerr.InvalidMatrix
	}
	if matrixHeight != matrixWidth {
		return nil, qrerr.InvalidMatrix
	}

	nudge := int(moduleSize / 2.0)
	top += nudge
	left += nudge

	nudgedTooFarRight := left + int(float64(matrixWidth-1)*moduleSize) - right
	if nudgedTooFarRight > 0 {
		if nudgedTooFarRight > nudge {
			return nil, qrerr.InvalidMatrix
		}
		left -= nudgedTooFarRight
	}
	nudgedTooFarDown := top + int(float64(matrixHeight-1)*moduleSize) - bottom
	if nudgedTooFarDown > 0 {
		if nudgedTooFarDown > nudge {
			return nil, qrerr.InvalidMatrix
		}
		top -= nudgedTooFarDown
	}

	bits := bitutil.NewBitMatrix(matrixWidth)
	for y := 0; y < matrixHeight; y++ {
		iOffset := top + int(float64(y)*moduleSize)
		for x := 0; x < matrixWidth; x++ {
			if image.Get(left+int(float64(x)*moduleSize), iOffset) {
				bits.Set(x, y)
			}
		}
	}
	return bits, nil
}

func moduleSizePure(leftTopBlack []int, image *bitutil.BitMatrix) (float64, error) {
	height := image.Height()
	width := image.Width()
	x := leftTopBlack[0]
	y := leftTopBlack[1]
	inBlack := true
	transitions := 0
	for x < width && y < height {
		if inBlack != image.Get(x, y) {
			transitions++
			if transitions == 5 {
				break
			}
			inBlack = !inBlack
		}
		x++
		y++
	}
	if x == width || y == height {
		return 0, qrerr.InvalidMatrix
	}
	return float64(x-leftTopBlack[0]) / 7.0, nil
}
