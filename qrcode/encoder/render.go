package encoder

import (
	"strings"

	"github.com/ldnrds/goqr/bitutil"
)

// Render scales the symbol's module matrix up to fill the requested pixel
// dimensions (never shrinking below the module count plus quiet zone),
// keeping modules square and centering any leftover padding.
func Render(s *Symbol, width, height, quietZone int) *bitutil.BitMatrix {
	input := s.Matrix.AddQuietZone(quietZone).ToBitMatrix()
	inputWidth := input.Width()
	inputHeight := input.Height()
	outputWidth := width
	if outputWidth < inputWidth {
		outputWidth = inputWidth
	}
	outputHeight := height
	if outputHeight < inputHeight {
		outputHeight = inputHeight
	}

	multiple := outputWidth / inputWidth
	if h := outputHeight / inputHeight; h < multiple {
		multiple = h
	}

	leftPadding := (outputWidth - inputWidth*multiple) / 2
	topPadding := (outputHeight - inputHeight*multiple) / 2

	output := bitutil.NewBitMatrixWithSize(outputWidth, outputHeight)
	for y := 0; y < inputHeight; y++ {
		outputY := topPadding + y*multiple
		for x := 0; x < inputWidth; x++ {
			if input.Get(x, y) {
				outputX := leftPadding + x*multiple
				output.SetRegion(outputX, outputY, multiple, multiple)
			}
		}
	}
	return output
}

// String renders the symbol as a text grid ("##" dark, two spaces light),
// two characters per
// module so it reads roughly square in a monospace terminal.
func (s *Symbol) String() string {
	bm := s.Matrix.ToBitMatrix()
	var sb strings.Builder
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			if bm.Get(x, y) {
				sb.WriteString("##")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
