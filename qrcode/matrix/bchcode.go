package matrix

import "github.com/ldnrds/goqr/qrcode/model"

const (
	typeInfoPoly        = 0x537
	typeInfoMaskPattern = 0x5412
	versionInfoPoly     = 0x1f25
)

// SetFormatInfo embeds the 15-bit BCH-protected format info (EC level and
// mask pattern) twice: once around the top-left finder, and once split
// between the area below the top-right finder and the area beside the
// bottom-left finder.
func (m *QRMatrix) SetFormatInfo(ecLevel model.ErrorCorrectionLevel, maskPattern int) {
	typeInfo := (ecLevel.Bits() << 3) | maskPattern
	bchCode := calculateBCHCode(typeInfo, typeInfoPoly)
	bits := (typeInfo << 10) | bchCode
	bits ^= typeInfoMaskPattern

	coords := [][2]int{
		{8, 0}, {8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 7}, {8, 8},
		{7, 8}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8}, {0, 8},
	}
	for i := 0; i < 15; i++ {
		dark := (bits>>uint(i))&1 == 1
		m.set(coords[i][0], coords[i][1], TagFormat, dark)
		if i < 8 {
			m.set(m.dimension-1-i, 8, TagFormat, dark)
		} else {
			m.set(8, m.dimension-7+(i-8), TagFormat, dark)
		}
	}
}

// SetVersionInfo embeds the 18-bit BCH-protected version number near the
// bottom-left and top-right finders. A no-op below version 7, which carries
// no version info.
func (m *QRMatrix) SetVersionInfo() {
	if m.version.Number < 7 {
		return
	}
	bchCode := calculateBCHCode(m.version.Number, versionInfoPoly)
	bits := (m.version.Number << 12) | bchCode

	bitIndex := 0
	for i := 0; i < 6; i++ {
		for j := 0; j < 3; j++ {
			dark := (bits>>uint(bitIndex))&1 == 1
			bitIndex++
			m.set(i, m.dimension-11+j, TagVersion, dark)
			m.set(m.dimension-11+j, i, TagVersion, dark)
		}
	}
}

func calculateBCHCode(value, poly int) int {
	msbSetInPoly := findMSBSet(poly)
	value <<= uint(msbSetInPoly - 1)
	for findMSBSet(value) >= msbSetInPoly {
		value ^= poly << uint(findMSBSet(value)-msbSetInPoly)
	}
	return value
}

func findMSBSet(value int) int {
	count := 0
	for value != 0 {
		value >>= 1
		count++
	}
	return count
}
