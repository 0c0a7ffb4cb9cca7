package qr

// Result is the text and metadata recovered from decoding a QR code.
type Result struct {
	// Text is the decoded content. Byte-mode segments whose ECI-declared,
	// caller-supplied or guessed character set is Shift_JIS or GB18030 are
	// converted to UTF-8; other byte-mode segments are passed through
	// unchanged.
	Text string

	// ByteSegments holds the raw bytes of each byte-mode segment, before
	// character-set conversion, in wire order.
	ByteSegments [][]byte

	// ErrorCorrectionLevel is the symbol's EC level ("L", "M", "Q", "H").
	ErrorCorrectionLevel string

	// ErrorsCorrected is the number of codeword errors Reed-Solomon
	// correction fixed while decoding.
	ErrorsCorrected int
}
