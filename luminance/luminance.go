// Package luminance provides greyscale sampling of raster images, the raw
// input an external QR detector would binarize into a module matrix.
package luminance

import "github.com/ldnrds/goqr/bitutil"

// Source provides access to greyscale luminance values for an image.
type Source interface {
	// Row returns a row of luminance data. If row is non-nil and large enough,
	// it should be reused.
	Row(y int, row []byte) []byte

	// Matrix returns the entire luminance matrix.
	Matrix() []byte

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}

// Binarizer converts luminance data to 1-bit black/white data.
type Binarizer interface {
	// BlackRow returns a row of black/white values.
	BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error)

	// BlackMatrix returns the 2D matrix of black/white values.
	BlackMatrix() (*bitutil.BitMatrix, error)

	// LuminanceSource returns the underlying Source.
	LuminanceSource() Source

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}
