package qr

import (
	"errors"
	"testing"

	"github.com/ldnrds/goqr/luminance"
	"github.com/ldnrds/goqr/qrcode/encoder"
	"github.com/ldnrds/goqr/qrcode/matrix"
	"github.com/ldnrds/goqr/qrcode/model"
	"github.com/ldnrds/goqr/qrerr"
	"github.com/spf13/afero"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	opts, err := NewOptions().WithErrorCorrection("H")
	if err != nil {
		t.Fatalf("WithErrorCorrection failed: %v", err)
	}
	symbol, err := Encode("HELLO WORLD", opts)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	bits := encoder.Render(symbol, 0, 0, 4)
	src := &bitMatrixSource{bits: bits}

	result, err := Decode(src, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != "HELLO WORLD" {
		t.Errorf("got %q, want %q", result.Text, "HELLO WORLD")
	}
}

func TestWriteToFile(t *testing.T) {
	symbol, err := Encode("Test", nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	fs := afero.NewMemMapFs()
	if err := WriteToFile(fs, "/out/code.png", symbol, 200, 200, nil); err != nil {
		t.Fatalf("WriteToFile failed: %v", err)
	}
	exists, err := afero.Exists(fs, "/out/code.png")
	if err != nil || !exists {
		t.Fatalf("expected file to exist, err=%v", err)
	}
}

func TestWithErrorCorrectionRejectsBadName(t *testing.T) {
	if _, err := NewOptions().WithErrorCorrection("Z"); err == nil {
		t.Fatal("expected an error for an unrecognized EC level name")
	}
}

func TestWithVersionRejectsOutOfRange(t *testing.T) {
	if _, err := NewOptions().WithVersion(41); !errors.Is(err, qrerr.InvalidVersion) {
		t.Fatalf("got err %v, want qrerr.InvalidVersion", err)
	}
	if _, err := NewOptions().WithVersion(0); err != nil {
		t.Fatalf("WithVersion(0) (Auto) should not error, got %v", err)
	}
}

func TestWithMaskPatternRejectsOutOfRange(t *testing.T) {
	if _, err := NewOptions().WithMaskPattern(42); !errors.Is(err, qrerr.InvalidMaskPattern) {
		t.Fatalf("got err %v, want qrerr.InvalidMaskPattern", err)
	}
	if _, err := NewOptions().WithMaskPattern(-1); err != nil {
		t.Fatalf("WithMaskPattern(-1) (Auto) should not error, got %v", err)
	}
}

func TestWithModeRejectsUnsupportedMode(t *testing.T) {
	if _, err := NewOptions().WithMode(model.ModeECI); !errors.Is(err, qrerr.InvalidOption) {
		t.Fatalf("got err %v, want qrerr.InvalidOption", err)
	}
}

func TestWithMinVersionHonoredByEncode(t *testing.T) {
	opts, err := NewOptions().WithMinVersion(5)
	if err != nil {
		t.Fatalf("WithMinVersion failed: %v", err)
	}
	symbol, err := Encode("1", opts)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if symbol.Version.Number < 5 {
		t.Fatalf("got version %d, want at least 5", symbol.Version.Number)
	}
}

func TestWithInvertMatrixFlipsDarkModule(t *testing.T) {
	plain, err := Encode("HELLO WORLD", NewOptions())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	inverted, err := Encode("HELLO WORLD", NewOptions().WithInvertMatrix(true))
	if err != nil {
		t.Fatalf("Encode (invert) failed: %v", err)
	}
	_, plainDark, _ := plain.Matrix.Get(8, plain.Matrix.Dimension()-8)
	_, invertedDark, _ := inverted.Matrix.Get(8, inverted.Matrix.Dimension()-8)
	if plainDark == invertedDark {
		t.Fatal("expected WithInvertMatrix to flip the dark module's bit")
	}
}

func TestOptionsCollectModulesConnectPaths(t *testing.T) {
	opts := NewOptions().WithConnectPaths(true).WithExcludeFromConnect(matrix.TagFinder)
	symbol, err := Encode("HELLO WORLD", opts)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	byTag := opts.CollectModules(symbol.Matrix, func(x, y int, tag, layerTag matrix.Tag) any {
		return [2]int{x, y}
	})
	if len(byTag[matrix.TagFinder]) == 0 {
		t.Error("expected finder modules to keep their own layer under exclude-from-connect")
	}
	if _, ok := byTag[matrix.TagTiming]; ok {
		t.Error("expected timing modules to collapse into data layers, not keep their own tag")
	}
}

func TestModuleValuesRoundTrip(t *testing.T) {
	values := map[matrix.Tag]any{matrix.TagFinder: "black"}
	opts := NewOptions().WithModuleValues(values)
	if got := opts.ModuleValues()[matrix.TagFinder]; got != "black" {
		t.Fatalf("got %v, want %q", got, "black")
	}
}

// bitMatrixSource adapts a rendered module bitmap (already pure black and
// white, no grey) into a luminance.Source for Decode's binarization step.
type bitMatrixSource struct {
	bits interface {
		Width() int
		Height() int
		Get(x, y int) bool
	}
}

func (s *bitMatrixSource) Width() int  { return s.bits.Width() }
func (s *bitMatrixSource) Height() int { return s.bits.Height() }

func (s *bitMatrixSource) Row(y int, row []byte) []byte {
	w := s.bits.Width()
	if row == nil || len(row) < w {
		row = make([]byte, w)
	}
	for x := 0; x < w; x++ {
		if s.bits.Get(x, y) {
			row[x] = 0
		} else {
			row[x] = 0xFF
		}
	}
	return row
}

func (s *bitMatrixSource) Matrix() []byte {
	w, h := s.bits.Width(), s.bits.Height()
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(out[y*w:(y+1)*w], s.Row(y, nil))
	}
	return out
}

var _ luminance.Source = (*bitMatrixSource)(nil)
