package encoder

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ldnrds/goqr/charset"
	"github.com/ldnrds/goqr/qrcode/decoder"
	"github.com/ldnrds/goqr/qrcode/model"
	"github.com/ldnrds/goqr/qrerr"
	"github.com/ldnrds/goqr/segment"
)

func TestRoundTripNumeric(t *testing.T) {
	testRoundTrip(t, "1234567890", model.ECLevelM)
}

func TestRoundTripAlphanumeric(t *testing.T) {
	testRoundTrip(t, "HELLO WORLD", model.ECLevelL)
}

func TestRoundTripByte(t *testing.T) {
	testRoundTrip(t, "Hello, World! This is a test.", model.ECLevelQ)
}

func TestRoundTripHighEC(t *testing.T) {
	testRoundTrip(t, "TEST123", model.ECLevelH)
}

func TestRoundTripAllECLevels(t *testing.T) {
	content := "Testing all EC levels"
	levels := []model.ErrorCorrectionLevel{
		model.ECLevelL, model.ECLevelM, model.ECLevelQ, model.ECLevelH,
	}
	for _, ecLevel := range levels {
		t.Run(ecLevel.String(), func(t *testing.T) {
			testRoundTrip(t, content, ecLevel)
		})
	}
}

func TestEncodeFixedVersionTooSmall(t *testing.T) {
	_, err := Encode("this content will not fit in a version 1 symbol at all, it is much too long for that", Config{
		ECLevel: model.ECLevelH, Version: 1, MaskPattern: -1,
	})
	if err == nil {
		t.Fatal("expected an error encoding content too large for the requested version")
	}
}

func TestEncodeChosenMaskPatternHonored(t *testing.T) {
	s, err := Encode("HELLO WORLD", Config{ECLevel: model.ECLevelM, MaskPattern: 3})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if s.MaskPattern != 3 {
		t.Fatalf("got mask pattern %d, want 3", s.MaskPattern)
	}
}

func TestEncodeRejectsOutOfRangeMaskPattern(t *testing.T) {
	_, err := Encode("HELLO WORLD", Config{ECLevel: model.ECLevelM, MaskPattern: 42})
	if !errors.Is(err, qrerr.InvalidMaskPattern) {
		t.Fatalf("got err %v, want qrerr.InvalidMaskPattern", err)
	}
}

func TestEncodeHonorsMinVersion(t *testing.T) {
	s, err := Encode("1", Config{ECLevel: model.ECLevelM, MaskPattern: -1, MinVersion: 5})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if s.Version.Number < 5 {
		t.Fatalf("got version %d, want at least 5", s.Version.Number)
	}
}

func TestEncodeInvertFlipsDarkModule(t *testing.T) {
	plain, err := Encode("HELLO WORLD", Config{ECLevel: model.ECLevelM, MaskPattern: 0})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	inverted, err := Encode("HELLO WORLD", Config{ECLevel: model.ECLevelM, MaskPattern: 0, Invert: true})
	if err != nil {
		t.Fatalf("Encode (invert) failed: %v", err)
	}
	_, plainDark, _ := plain.Matrix.Get(8, plain.Matrix.Dimension()-8)
	_, invertedDark, _ := inverted.Matrix.Get(8, inverted.Matrix.Dimension()-8)
	if plainDark == invertedDark {
		t.Fatal("expected Invert to flip the dark module's bit")
	}
}

func TestEncodeForcedKanjiMode(t *testing.T) {
	s, err := Encode("漢字", Config{ECLevel: model.ECLevelM, MaskPattern: -1, Mode: model.ModeKanji})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	dec := decoder.NewDecoder()
	result, err := dec.Decode(s.Matrix.ToBitMatrix(), "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != "漢字" {
		t.Errorf("round-trip mismatch: got %q, want %q", result.Text, "漢字")
	}
}

// TestScenarioNumericV1ECMMaskTwo encodes numeric "01234567" at v1/EC=M
// with mask 2 pinned explicitly, the parameters that produce the
// ISO/IEC 18004 Annex I reference matrix. This asserts the functional
// round-trip and the chosen version/mask; it does not compare against
// the literal published bit matrix (see DESIGN.md).
func TestScenarioNumericV1ECMMaskTwo(t *testing.T) {
	s, err := Encode("01234567", Config{ECLevel: model.ECLevelM, Version: 1, MaskPattern: 2})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if s.Version.Number != 1 {
		t.Fatalf("got version %d, want 1", s.Version.Number)
	}
	if s.MaskPattern != 2 {
		t.Fatalf("got mask pattern %d, want 2", s.MaskPattern)
	}
	dec := decoder.NewDecoder()
	result, err := dec.Decode(s.Matrix.ToBitMatrix(), "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != "01234567" {
		t.Errorf("got %q, want %q", result.Text, "01234567")
	}
}

// TestScenarioAlphanumericV1ECQAutoMask checks that alphanumeric content at
// EC=Q with an auto-chosen mask still fits version 1.
func TestScenarioAlphanumericV1ECQAutoMask(t *testing.T) {
	s, err := Encode("HELLO WORLD", Config{ECLevel: model.ECLevelQ, MaskPattern: -1})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if s.Version.Number != 1 {
		t.Fatalf("got version %d, want 1", s.Version.Number)
	}
	dec := decoder.NewDecoder()
	result, err := dec.Decode(s.Matrix.ToBitMatrix(), "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != "HELLO WORLD" {
		t.Errorf("got %q, want %q", result.Text, "HELLO WORLD")
	}
}

// TestScenarioByteUTF8AutoVersionECL round-trips non-ASCII UTF-8 byte
// content at an auto-chosen version and EC=L.
func TestScenarioByteUTF8AutoVersionECL(t *testing.T) {
	testRoundTrip(t, "Hello, 世界", model.ECLevelL)
}

// TestScenarioECIGreekV5 round-trips an ECI segment naming
// UTF-8 (id=26) followed by a Byte segment carrying "Γειά" in UTF-8, pinned
// to version 5.
func TestScenarioECIGreekV5(t *testing.T) {
	segments := []segment.Segment{
		segment.ECI{Value: 26, Next: segment.Byte{Value: []byte("Γειά")}},
	}
	s, err := EncodeSegments(segments, Config{ECLevel: model.ECLevelM, Version: 5, MaskPattern: -1})
	if err != nil {
		t.Fatalf("EncodeSegments failed: %v", err)
	}
	dec := decoder.NewDecoder()
	result, err := dec.Decode(s.Matrix.ToBitMatrix(), "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != "Γειά" {
		t.Errorf("got %q, want %q", result.Text, "Γειά")
	}
}

// TestScenarioHanziRoundTrip round-trips the Hanzi string
// "无可奈何燃花作香" at versions 7, 15, and 30.
func TestScenarioHanziRoundTrip(t *testing.T) {
	const content = "无可奈何燃花作香"
	for _, v := range []int{7, 15, 30} {
		t.Run(fmt.Sprintf("v%d", v), func(t *testing.T) {
			segments := []segment.Segment{
				segment.Hanzi{Value: charset.EncodeBytes(content, "GB18030")},
			}
			s, err := EncodeSegments(segments, Config{ECLevel: model.ECLevelM, Version: v, MaskPattern: -1})
			if err != nil {
				t.Fatalf("EncodeSegments failed: %v", err)
			}
			dec := decoder.NewDecoder()
			result, err := dec.Decode(s.Matrix.ToBitMatrix(), "")
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if result.Text != content {
				t.Errorf("got %q, want %q", result.Text, content)
			}
		})
	}
}

// TestScenarioPayloadTooLargeForAnyVersion checks that 2954
// bytes of Byte data at EC=H exceeds every version's capacity.
func TestScenarioPayloadTooLargeForAnyVersion(t *testing.T) {
	content := strings.Repeat("A", 2954)
	_, err := Encode(content, Config{ECLevel: model.ECLevelH, MaskPattern: -1, Mode: model.ModeByte})
	if !errors.Is(err, qrerr.DataOverflow) {
		t.Fatalf("got err %v, want qrerr.DataOverflow", err)
	}
}

func testRoundTrip(t *testing.T, content string, ecLevel model.ErrorCorrectionLevel) {
	t.Helper()

	s, err := Encode(content, Config{ECLevel: ecLevel, MaskPattern: -1})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if s.Matrix == nil {
		t.Fatal("encoded matrix is nil")
	}

	bits := s.Matrix.ToBitMatrix()

	dec := decoder.NewDecoder()
	result, err := dec.Decode(bits, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != content {
		t.Errorf("round-trip mismatch: got %q, want %q", result.Text, content)
	}
}
