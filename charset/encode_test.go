package charset

import "testing"

func TestEncodeDecodeRoundTripShiftJIS(t *testing.T) {
	encoded := EncodeBytes("あ", "Shift_JIS")
	if got := DecodeBytes(encoded, "Shift_JIS"); got != "あ" {
		t.Errorf("round trip = %q, want %q", got, "あ")
	}
}

func TestEncodeDecodeRoundTripGB18030(t *testing.T) {
	encoded := EncodeBytes("中", "GB18030")
	if got := DecodeBytes(encoded, "GB18030"); got != "中" {
		t.Errorf("round trip = %q, want %q", got, "中")
	}
}

func TestEncodeECIDesignator(t *testing.T) {
	cases := []struct {
		value int
		want  []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x80}},
		{999, []byte{0x83, 0xE7}},
		{16383, []byte{0xBF, 0xFF}},
		{16384, []byte{0xC0, 0x40, 0x00}},
		{999999, []byte{0xCF, 0x42, 0x3F}},
	}
	for _, c := range cases {
		got := EncodeECIDesignator(c.value)
		if string(got) != string(c.want) {
			t.Errorf("EncodeECIDesignator(%d) = %v, want %v", c.value, got, c.want)
		}
	}
}
