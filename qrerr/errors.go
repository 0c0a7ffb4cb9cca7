// Package qrerr defines the sentinel errors shared by every package in this
// module. Callers distinguish failure modes with errors.Is; no package
// outside qrerr defines its own exported error values for these conditions.
package qrerr

import "errors"

var (
	// DataOverflow is returned when a payload exceeds the v40 capacity at
	// the requested error-correction level.
	DataOverflow = errors.New("goqr: data too large for any version at this error correction level")

	// InvalidVersion is returned when a version argument is outside 1..40.
	InvalidVersion = errors.New("goqr: invalid version")

	// InvalidEccLevel is returned when an error-correction level is not one
	// of L, M, Q, H.
	InvalidEccLevel = errors.New("goqr: invalid error correction level")

	// InvalidMaskPattern is returned when a mask pattern is outside 0..7.
	InvalidMaskPattern = errors.New("goqr: invalid mask pattern")

	// IllegalCharacter is returned when a character falls outside a mode's
	// alphabet during encode or decode.
	IllegalCharacter = errors.New("goqr: illegal character for mode")

	// InvalidSubset is returned when a Hanzi segment names an unsupported
	// subset indicator.
	InvalidSubset = errors.New("goqr: unsupported hanzi subset")

	// NotEnoughBits is returned when the decoder runs out of bits mid-segment.
	NotEnoughBits = errors.New("goqr: not enough bits remaining")

	// UnknownMode is returned when the decoder reads an unrecognized 4-bit
	// mode indicator.
	UnknownMode = errors.New("goqr: unknown mode indicator")

	// ECIFollowedByInvalidMode is returned when an ECI segment is not
	// immediately followed by a Byte segment.
	ECIFollowedByInvalidMode = errors.New("goqr: ECI segment must be followed by a byte segment")

	// ReedSolomonFailure is returned when a codeword block cannot be
	// corrected by Reed-Solomon decoding.
	ReedSolomonFailure = errors.New("goqr: reed-solomon decoding failed")

	// MatrixInvariantViolation indicates data placement tried to overwrite
	// a function module; this signals an encoder bug and is fatal.
	MatrixInvariantViolation = errors.New("goqr: data placement would overwrite a function module")

	// InvalidMatrix is returned when a module matrix cannot be parsed: its
	// dimension is out of range, or its format/version info is undecodable.
	InvalidMatrix = errors.New("goqr: invalid or unreadable module matrix")

	// InvalidECI is returned when an ECI designator value has no known
	// character set mapping.
	InvalidECI = errors.New("goqr: invalid or unsupported ECI value")

	// CannotWriteFile is returned by backend file-writing helpers when the
	// destination cannot be written.
	CannotWriteFile = errors.New("goqr: cannot write file")

	// CannotReadFile is returned when a source image cannot be opened or
	// read from its filesystem.
	CannotReadFile = errors.New("goqr: cannot read file")

	// InvalidImage is returned when source image bytes cannot be decoded
	// into a raster image.
	InvalidImage = errors.New("goqr: cannot decode image")

	// InvalidOption is returned by QROptions setters for any other
	// out-of-range or unrecognized configuration value.
	InvalidOption = errors.New("goqr: invalid option")
)
