package segment

import (
	"strings"
	"testing"

	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/charset"
	"github.com/ldnrds/goqr/qrcode/model"
)

func version(t *testing.T, number int) *model.Version {
	t.Helper()
	v, err := model.GetVersionForNumber(number)
	if err != nil {
		t.Fatalf("GetVersionForNumber(%d) failed: %v", number, err)
	}
	return v
}

func TestChooseMode(t *testing.T) {
	cases := map[string]model.Mode{
		"1234567890":  model.ModeNumeric,
		"HELLO WORLD": model.ModeAlphanumeric,
		"hello":       model.ModeByte,
		"12A":         model.ModeAlphanumeric,
	}
	for content, want := range cases {
		if got := ChooseMode(content); got != want {
			t.Errorf("ChooseMode(%q) = %v, want %v", content, got, want)
		}
	}
}

func TestNumericRoundTrip(t *testing.T) {
	v := version(t, 5)
	buf := bitutil.NewBitBuffer()
	seg := Numeric{Value: "0123456789"}
	if err := seg.Write(buf, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.GetLength() != seg.LengthInBits(v) {
		t.Fatalf("wrote %d bits, LengthInBits said %d", buf.GetLength(), seg.LengthInBits(v))
	}

	buf.Rewind()
	if _, err := model.ModeForBits(mustRead(t, buf, 4)); err != nil {
		t.Fatalf("reading mode: %v", err)
	}
	count := mustRead(t, buf, model.ModeNumeric.CharacterCountBits(v))
	if count != len(seg.Value) {
		t.Fatalf("count = %d, want %d", count, len(seg.Value))
	}
	var result strings.Builder
	if err := DecodeNumeric(buf, &result, count); err != nil {
		t.Fatalf("DecodeNumeric failed: %v", err)
	}
	if result.String() != seg.Value {
		t.Errorf("got %q, want %q", result.String(), seg.Value)
	}
}

func TestAlphanumericRoundTrip(t *testing.T) {
	v := version(t, 5)
	buf := bitutil.NewBitBuffer()
	seg := Alphanumeric{Value: "HELLO WORLD 123"}
	if err := seg.Write(buf, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	buf.Rewind()
	mustRead(t, buf, 4)
	count := mustRead(t, buf, model.ModeAlphanumeric.CharacterCountBits(v))
	var result strings.Builder
	if err := DecodeAlphanumeric(buf, &result, count); err != nil {
		t.Fatalf("DecodeAlphanumeric failed: %v", err)
	}
	if result.String() != seg.Value {
		t.Errorf("got %q, want %q", result.String(), seg.Value)
	}
}

func TestAlphanumericRejectsLowercase(t *testing.T) {
	seg := Alphanumeric{Value: "hello"}
	if err := seg.Validate(); err == nil {
		t.Fatal("expected an error for lowercase input to alphanumeric mode")
	}
}

func TestByteRoundTrip(t *testing.T) {
	v := version(t, 5)
	buf := bitutil.NewBitBuffer()
	seg := Byte{Value: []byte("Hello, \xe4\xb8\xad")}
	if err := seg.Write(buf, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	buf.Rewind()
	mustRead(t, buf, 4)
	count := mustRead(t, buf, model.ModeByte.CharacterCountBits(v))
	var result strings.Builder
	got, err := DecodeByte(buf, &result, count, nil, "")
	if err != nil {
		t.Fatalf("DecodeByte failed: %v", err)
	}
	if string(got) != string(seg.Value) {
		t.Errorf("got %q, want %q", got, seg.Value)
	}
}

func TestKanjiRejectsOddLength(t *testing.T) {
	seg := Kanji{Value: []byte{0x81}}
	if err := seg.Validate(); err == nil {
		t.Fatal("expected an error for an odd-length Kanji value")
	}
}

func TestKanjiWriteRejectsOutOfRangeCode(t *testing.T) {
	v := version(t, 5)
	buf := bitutil.NewBitBuffer()
	seg := Kanji{Value: []byte{0x00, 0x01}}
	if err := seg.Write(buf, v); err == nil {
		t.Fatal("expected an error for a code outside the Shift_JIS kanji ranges")
	}
}

func TestKanjiRoundTrip(t *testing.T) {
	v := version(t, 5)
	buf := bitutil.NewBitBuffer()
	// 0x8140 and 0xE040 sit at the low edge of each Shift_JIS kanji range.
	seg := Kanji{Value: []byte{0x81, 0x40, 0xE0, 0x40}}
	if err := seg.Write(buf, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	buf.Rewind()
	mustRead(t, buf, 4)
	count := mustRead(t, buf, model.ModeKanji.CharacterCountBits(v))
	var result strings.Builder
	if err := DecodeKanji(buf, &result, count); err != nil {
		t.Fatalf("DecodeKanji failed: %v", err)
	}
	if want := charset.DecodeBytes(seg.Value, "Shift_JIS"); result.String() != want {
		t.Errorf("got %q, want %q", result.String(), want)
	}
}

func TestHanziRoundTrip(t *testing.T) {
	v := version(t, 5)
	buf := bitutil.NewBitBuffer()
	// 0xA1A1 and 0xB0A1 sit at the low edge of each GB2312 offset range.
	seg := Hanzi{Value: []byte{0xA1, 0xA1, 0xB0, 0xA1}}
	if err := seg.Write(buf, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	buf.Rewind()
	mustRead(t, buf, 4)
	subset := mustRead(t, buf, 4)
	if subset != gb2312Subset {
		t.Fatalf("subset = %d, want %d", subset, gb2312Subset)
	}
	count := mustRead(t, buf, model.ModeHanzi.CharacterCountBits(v))
	var result strings.Builder
	if err := DecodeHanzi(buf, &result, count); err != nil {
		t.Fatalf("DecodeHanzi failed: %v", err)
	}
	if want := charset.DecodeBytes(seg.Value, "GB18030"); result.String() != want {
		t.Errorf("got %q, want %q", result.String(), want)
	}
}

func TestHanziWriteRejectsOutOfRangeCode(t *testing.T) {
	v := version(t, 5)
	buf := bitutil.NewBitBuffer()
	seg := Hanzi{Value: []byte{0x00, 0x01}}
	if err := seg.Write(buf, v); err == nil {
		t.Fatal("expected an error for a code outside the GB2312 offset ranges")
	}
}

func TestECIMustPrecedeByte(t *testing.T) {
	v := version(t, 5)
	buf := bitutil.NewBitBuffer()
	seg := ECI{Value: 26, Next: Byte{Value: []byte("utf8 text")}}
	if err := seg.Write(buf, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.GetLength() != seg.LengthInBits(v) {
		t.Fatalf("wrote %d bits, LengthInBits said %d", buf.GetLength(), seg.LengthInBits(v))
	}
	buf.Rewind()
	mustRead(t, buf, 4) // ECI mode indicator
	mustRead(t, buf, 8) // one-byte designator for value 26
	if next := mustRead(t, buf, 4); next != model.ModeByte.Bits() {
		t.Fatalf("mode after ECI designator = %d, want Byte (%d)", next, model.ModeByte.Bits())
	}
}

func TestParseECIValueRoundTripsEncodedDesignator(t *testing.T) {
	for _, value := range []int{0, 127, 128, 16383, 16384, 999999} {
		encoded := charset.EncodeECIDesignator(value)
		buf := bitutil.NewBitBufferFromBytes(encoded)
		got, err := ParseECIValue(buf)
		if err != nil {
			t.Fatalf("ParseECIValue(%d) failed: %v", value, err)
		}
		if got != value {
			t.Errorf("ParseECIValue(EncodeECIDesignator(%d)) = %d, want %d", value, got, value)
		}
	}
}

func mustRead(t *testing.T, buf *bitutil.BitBuffer, n int) int {
	t.Helper()
	v, err := buf.Read(n)
	if err != nil {
		t.Fatalf("Read(%d) failed: %v", n, err)
	}
	return v
}
