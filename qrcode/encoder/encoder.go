// Package encoder implements QR code symbol encoding: segment assembly,
// version selection, Reed-Solomon error correction, and mask selection.
package encoder

import (
	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/charset"
	"github.com/ldnrds/goqr/qrcode/matrix"
	"github.com/ldnrds/goqr/qrcode/model"
	"github.com/ldnrds/goqr/qrerr"
	"github.com/ldnrds/goqr/reedsolomon"
	"github.com/ldnrds/goqr/segment"
)

// Symbol holds a fully-placed QR code: the chosen version, EC level, mask
// pattern, and the tagged module matrix ready for rendering.
type Symbol struct {
	ECLevel     model.ErrorCorrectionLevel
	Version     *model.Version
	MaskPattern int
	Matrix      *matrix.QRMatrix
}

// Config controls a single Encode/EncodeSegments call. Version of 0 lets
// the encoder pick the smallest version (at least MinVersion) that fits.
// MaskPattern of -1 lets it pick the lowest-penalty mask; any other
// out-of-0..7 value is an error, not a second Auto spelling. Mode of
// model.ModeAuto, or the zero value model.ModeTerminator (Encode only),
// lets the encoder choose the narrowest mode for the content; any other
// mode forces content into that single segment.
type Config struct {
	ECLevel     model.ErrorCorrectionLevel
	MinVersion  int
	Version     int
	MaskPattern int
	Mode        model.Mode
	Invert      bool
}

// Encode assembles a single segment from content and encodes it. cfg.Mode
// of model.ModeAuto (or left at its zero value) picks the narrowest mode
// that carries content verbatim; any other mode forces content into that
// mode's segment, transcoding to Shift_JIS/GB18030 first for Kanji/Hanzi.
func Encode(content string, cfg Config) (*Symbol, error) {
	mode := cfg.Mode
	if mode == model.ModeAuto || mode == model.ModeTerminator {
		mode = segment.ChooseMode(content)
	}

	var seg segment.Segment
	switch mode {
	case model.ModeNumeric:
		seg = segment.Numeric{Value: content}
	case model.ModeAlphanumeric:
		seg = segment.Alphanumeric{Value: content}
	case model.ModeByte:
		seg = segment.Byte{Value: []byte(content)}
	case model.ModeKanji:
		seg = segment.Kanji{Value: charset.EncodeBytes(content, "Shift_JIS")}
	case model.ModeHanzi:
		seg = segment.Hanzi{Value: charset.EncodeBytes(content, "GB18030")}
	default:
		return nil, qrerr.InvalidOption
	}
	return EncodeSegments([]segment.Segment{seg}, cfg)
}

// EncodeSegments encodes a caller-assembled, ordered list of heterogeneous
// segments (numeric, alphanumeric, byte, kanji, hanzi, ECI-prefixed byte)
// into a single symbol. cfg.Mode is ignored; the segments' own modes apply.
func EncodeSegments(segments []segment.Segment, cfg Config) (*Symbol, error) {
	if len(segments) == 0 {
		return nil, qrerr.DataOverflow
	}
	for _, s := range segments {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	minVersion := cfg.MinVersion
	if minVersion < 1 {
		minVersion = 1
	}

	var version *model.Version
	var err error
	if cfg.Version > 0 {
		version, err = model.GetVersionForNumber(cfg.Version)
		if err != nil {
			return nil, err
		}
		if version.Number < minVersion {
			return nil, qrerr.DataOverflow
		}
	} else {
		version, err = chooseVersion(segments, cfg.ECLevel, minVersion)
		if err != nil {
			return nil, err
		}
	}

	dataBits := bitutil.NewBitBuffer()
	if err := segment.WriteAll(dataBits, segments, version); err != nil {
		return nil, err
	}

	ecBlocks := version.ECBlocksForLevel(cfg.ECLevel)
	totalBytes := version.TotalCodewords
	numDataBytes := totalBytes - ecBlocks.TotalECCodewords()

	if err := terminateBits(numDataBytes, dataBits); err != nil {
		return nil, err
	}

	numRSBlocks := ecBlocks.NumBlocks()
	finalBits, err := interleaveWithECBytes(dataBits, totalBytes, numDataBytes, numRSBlocks)
	if err != nil {
		return nil, err
	}

	chosenMask := cfg.MaskPattern
	switch {
	case chosenMask == -1:
		chosenMask, err = chooseMaskPattern(finalBits, cfg.ECLevel, version)
		if err != nil {
			return nil, err
		}
	case chosenMask < 0 || chosenMask >= numMaskPatterns:
		return nil, qrerr.InvalidMaskPattern
	}

	built, err := matrix.Build(version, cfg.ECLevel, chosenMask, finalBits)
	if err != nil {
		return nil, err
	}
	if cfg.Invert {
		built.Invert()
	}

	return &Symbol{
		ECLevel:     cfg.ECLevel,
		Version:     version,
		MaskPattern: chosenMask,
		Matrix:      built,
	}, nil
}

func chooseVersion(segments []segment.Segment, ecLevel model.ErrorCorrectionLevel, minVersion int) (*model.Version, error) {
	for versionNum := minVersion; versionNum <= 40; versionNum++ {
		version, _ := model.GetVersionForNumber(versionNum)
		totalBits := segment.TotalLengthInBits(segments, version)
		ecBlocks := version.ECBlocksForLevel(ecLevel)
		numDataBytes := version.TotalCodewords - ecBlocks.TotalECCodewords()
		if totalBits <= numDataBytes*8 {
			return version, nil
		}
	}
	return nil, qrerr.DataOverflow
}

func terminateBits(numDataBytes int, bits *bitutil.BitBuffer) error {
	capacity := numDataBytes * 8
	if bits.GetLength() > capacity {
		return qrerr.DataOverflow
	}

	for i := 0; i < 4 && bits.GetLength() < capacity; i++ {
		bits.PutBit(false)
	}

	numBitsInLastByte := bits.GetLength() & 0x07
	if numBitsInLastByte > 0 {
		for i := numBitsInLastByte; i < 8; i++ {
			bits.PutBit(false)
		}
	}

	numPaddingBytes := numDataBytes - bits.SizeInBytes()
	for i := 0; i < numPaddingBytes; i++ {
		if i%2 == 0 {
			bits.Put(0xEC, 8)
		} else {
			bits.Put(0x11, 8)
		}
	}
	return nil
}

type blockPair struct {
	dataBytes []byte
	ecBytes   []byte
}

func interleaveWithECBytes(bits *bitutil.BitBuffer, numTotalBytes, numDataBytes, numRSBlocks int) (*bitutil.BitBuffer, error) {
	if bits.SizeInBytes() != numDataBytes {
		return nil, qrerr.DataOverflow
	}

	data := bits.GetBuffer()
	dataBytesOffset := 0
	maxNumDataBytes := 0
	maxNumEcBytes := 0
	blocks := make([]blockPair, numRSBlocks)

	for i := 0; i < numRSBlocks; i++ {
		numDataBytesInBlock, numEcBytesInBlock := getNumDataBytesAndNumECBytesForBlockID(
			numTotalBytes, numDataBytes, numRSBlocks, i)

		dataBytes := make([]byte, numDataBytesInBlock)
		copy(dataBytes, data[dataBytesOffset:dataBytesOffset+numDataBytesInBlock])
		ecBytes := generateECBytes(dataBytes, numEcBytesInBlock)
		blocks[i] = blockPair{dataBytes: dataBytes, ecBytes: ecBytes}

		if numDataBytesInBlock > maxNumDataBytes {
			maxNumDataBytes = numDataBytesInBlock
		}
		if numEcBytesInBlock > maxNumEcBytes {
			maxNumEcBytes = numEcBytesInBlock
		}
		dataBytesOffset += numDataBytesInBlock
	}

	result := bitutil.NewBitBuffer()
	for i := 0; i < maxNumDataBytes; i++ {
		for _, block := range blocks {
			if i < len(block.dataBytes) {
				result.Put(uint32(block.dataBytes[i]), 8)
			}
		}
	}
	for i := 0; i < maxNumEcBytes; i++ {
		for _, block := range blocks {
			if i < len(block.ecBytes) {
				result.Put(uint32(block.ecBytes[i]), 8)
			}
		}
	}

	if result.SizeInBytes() != numTotalBytes {
		return nil, qrerr.DataOverflow
	}
	return result, nil
}

func getNumDataBytesAndNumECBytesForBlockID(numTotalBytes, numDataBytes, numRSBlocks, blockID int) (int, int) {
	if blockID >= numRSBlocks {
		return 0, 0
	}
	numRsBlocksInGroup2 := numTotalBytes % numRSBlocks
	numRsBlocksInGroup1 := numRSBlocks - numRsBlocksInGroup2
	numTotalBytesInGroup1 := numTotalBytes / numRSBlocks
	numTotalBytesInGroup2 := numTotalBytesInGroup1 + 1
	numDataBytesInGroup1 := numDataBytes / numRSBlocks
	numDataBytesInGroup2 := numDataBytesInGroup1 + 1
	numEcBytesInGroup1 := numTotalBytesInGroup1 - numDataBytesInGroup1
	numEcBytesInGroup2 := numTotalBytesInGroup2 - numDataBytesInGroup2

	if blockID < numRsBlocksInGroup1 {
		return numDataBytesInGroup1, numEcBytesInGroup1
	}
	return numDataBytesInGroup2, numEcBytesInGroup2
}

func generateECBytes(dataBytes []byte, numEcBytesInBlock int) []byte {
	numDataBytes := len(dataBytes)
	toEncode := make([]int, numDataBytes+numEcBytesInBlock)
	for i, b := range dataBytes {
		toEncode[i] = int(b) & 0xFF
	}
	enc := reedsolomon.NewEncoder(reedsolomon.QRCodeField256)
	enc.Encode(toEncode, numEcBytesInBlock)
	ecBytes := make([]byte, numEcBytesInBlock)
	for i := 0; i < numEcBytesInBlock; i++ {
		ecBytes[i] = byte(toEncode[numDataBytes+i])
	}
	return ecBytes
}
