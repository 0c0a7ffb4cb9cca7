// Package matrix builds the placement-tagged QR code module grid: finder,
// separator, timing, and alignment patterns; format and version info;
// masked data placement. Every written cell remembers why it was written,
// so the data-placement pass can never clobber a function module.
package matrix

import (
	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/qrcode/model"
	"github.com/ldnrds/goqr/qrerr"
)

// Tag identifies why a module was placed. LOGO exists for callers that want
// to carve out a blank region for a center logo before writing data; this
// package never sets it itself. DATA_DARK is never stored on a cell — it
// only ever appears as a layer tag CollectModules hands back when
// connectPaths collapses a dark data module.
type Tag int8

const (
	TagEmpty Tag = iota - 1
	TagData
	TagFinder
	TagSeparator
	TagTiming
	TagAlignment
	TagFormat
	TagVersion
	TagDarkModule
	TagQuietZone
	TagLogo
	TagDataDark
)

type cell struct {
	tag  Tag
	dark bool
}

var emptyCell = cell{tag: TagEmpty}

// QRMatrix is a square grid of tagged modules.
type QRMatrix struct {
	cells     [][]cell
	dimension int
	version   *model.Version
}

// New returns an all-empty QRMatrix sized for version.
func New(version *model.Version) *QRMatrix {
	dim := version.DimensionForVersion()
	cells := make([][]cell, dim)
	for i := range cells {
		row := make([]cell, dim)
		for j := range row {
			row[j] = emptyCell
		}
		cells[i] = row
	}
	return &QRMatrix{cells: cells, dimension: dim, version: version}
}

// Dimension returns the module count per side. For a matrix returned by
// AddQuietZone the count includes the added border.
func (m *QRMatrix) Dimension() int { return m.dimension }

// Get reports the tag and dark/light state of (x, y). ok is false if the
// cell was never written.
func (m *QRMatrix) Get(x, y int) (tag Tag, dark bool, ok bool) {
	c := m.cells[y][x]
	return c.tag, c.dark, c.tag != TagEmpty
}

func (m *QRMatrix) set(x, y int, tag Tag, dark bool) {
	m.cells[y][x] = cell{tag: tag, dark: dark}
}

func (m *QRMatrix) setIfEmpty(x, y int, tag Tag, dark bool) {
	if m.cells[y][x].tag == TagEmpty {
		m.set(x, y, tag, dark)
	}
}

var finderPattern = [7][7]bool{
	{true, true, true, true, true, true, true},
	{true, false, false, false, false, false, true},
	{true, false, true, true, true, false, true},
	{true, false, true, true, true, false, true},
	{true, false, true, true, true, false, true},
	{true, false, false, false, false, false, true},
	{true, true, true, true, true, true, true},
}

var alignmentPattern = [5][5]bool{
	{true, true, true, true, true},
	{true, false, false, false, true},
	{true, false, true, false, true},
	{true, false, false, false, true},
	{true, true, true, true, true},
}

// SetFinderPattern places the three 7x7 finder patterns at the corners.
func (m *QRMatrix) SetFinderPattern() {
	m.placeFinder(0, 0)
	m.placeFinder(m.dimension-7, 0)
	m.placeFinder(0, m.dimension-7)
}

func (m *QRMatrix) placeFinder(xStart, yStart int) {
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			m.set(xStart+x, yStart+y, TagFinder, finderPattern[y][x])
		}
	}
}

// SetSeparators places the one-module light border around each finder.
func (m *QRMatrix) SetSeparators() {
	m.horizontalSeparator(0, 7)
	m.horizontalSeparator(m.dimension-8, 7)
	m.horizontalSeparator(0, m.dimension-8)
	m.verticalSeparator(7, 0)
	m.verticalSeparator(m.dimension-8, 0)
	m.verticalSeparator(7, m.dimension-7)
}

func (m *QRMatrix) horizontalSeparator(xStart, y int) {
	for x := 0; x < 8; x++ {
		if xStart+x < m.dimension {
			m.set(xStart+x, y, TagSeparator, false)
		}
	}
}

func (m *QRMatrix) verticalSeparator(x, yStart int) {
	for y := 0; y < 7; y++ {
		if yStart+y < m.dimension {
			m.set(x, yStart+y, TagSeparator, false)
		}
	}
}

// SetAlignmentPatterns places 5x5 alignment patterns at the version's
// tabulated centers, skipping any that overlap a finder pattern.
func (m *QRMatrix) SetAlignmentPatterns() {
	centers := m.version.AlignmentPatternCenters
	for _, cy := range centers {
		for _, cx := range centers {
			if _, _, ok := m.Get(cx, cy); ok {
				continue
			}
			for y := 0; y < 5; y++ {
				for x := 0; x < 5; x++ {
					m.set(cx-2+x, cy-2+y, TagAlignment, alignmentPattern[y][x])
				}
			}
		}
	}
}

// SetTimingPattern places the alternating row at y=6 and column at x=6.
func (m *QRMatrix) SetTimingPattern() {
	for i := 8; i < m.dimension-8; i++ {
		dark := i%2 == 0
		m.setIfEmpty(i, 6, TagTiming, dark)
		m.setIfEmpty(6, i, TagTiming, dark)
	}
}

// SetDarkModule places the always-dark module at (8, 4*version+9).
func (m *QRMatrix) SetDarkModule() {
	m.set(8, m.dimension-8, TagDarkModule, true)
}

// WriteCodewords places codeword bits in the two-column zig-zag starting
// bottom-right, skipping any already-tagged (function) module, XOR-masking
// each DATA bit against the chosen mask pattern as it is placed.
func (m *QRMatrix) WriteCodewords(buf *bitutil.BitBuffer, maskPattern int) error {
	maskFn := model.DataMasks[maskPattern]
	bitIndex := 0
	totalBits := buf.Available()

	for j := m.dimension - 1; j > 0; j -= 2 {
		if j == 6 {
			j--
		}
		for count := 0; count < m.dimension; count++ {
			upward := ((m.dimension-1-j)/2)&1 == 0
			i := count
			if upward {
				i = m.dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := j - col
				if _, _, ok := m.Get(x, i); ok {
					continue
				}
				var bit bool
				if bitIndex < totalBits {
					v, err := buf.Read(1)
					if err != nil {
						return qrerr.MatrixInvariantViolation
					}
					bit = v == 1
					bitIndex++
				}
				if maskFn(i, x) {
					bit = !bit
				}
				m.set(x, i, TagData, bit)
			}
		}
	}
	return nil
}

// AddQuietZone returns a new QRMatrix padded by size modules of light
// border on every side, tagged TagQuietZone. The receiver is left
// unmodified so Render can be called more than once against the same
// Symbol.
func (m *QRMatrix) AddQuietZone(size int) *QRMatrix {
	if size <= 0 {
		return m
	}
	newDim := m.dimension + size*2
	cells := make([][]cell, newDim)
	for i := range cells {
		row := make([]cell, newDim)
		for j := range row {
			row[j] = cell{tag: TagQuietZone}
		}
		cells[i] = row
	}
	for y := 0; y < m.dimension; y++ {
		copy(cells[y+size][size:size+m.dimension], m.cells[y])
	}
	return &QRMatrix{cells: cells, dimension: newDim, version: m.version}
}

// Invert flips the dark bit of every written module in place, leaving each
// module's tag untouched.
func (m *QRMatrix) Invert() {
	for y := 0; y < m.dimension; y++ {
		for x := 0; x < m.dimension; x++ {
			c := &m.cells[y][x]
			if c.tag == TagEmpty {
				continue
			}
			c.dark = !c.dark
		}
	}
}

// ToBitMatrix renders the dark/light state of every cell (treating unwritten
// cells as light) into a plain BitMatrix for the decoder or a renderer.
func (m *QRMatrix) ToBitMatrix() *bitutil.BitMatrix {
	bm := bitutil.NewBitMatrixWithSize(m.dimension, m.dimension)
	for y := 0; y < m.dimension; y++ {
		for x := 0; x < m.dimension; x++ {
			if m.cells[y][x].dark {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

// Build assembles a complete symbol: function patterns, format and version
// info, then the masked data codewords.
func Build(version *model.Version, ecLevel model.ErrorCorrectionLevel, maskPattern int, buf *bitutil.BitBuffer) (*QRMatrix, error) {
	m := New(version)
	m.SetFinderPattern()
	m.SetSeparators()
	if version.Number >= 2 {
		m.SetAlignmentPatterns()
	}
	m.SetTimingPattern()
	m.SetDarkModule()
	m.SetFormatInfo(ecLevel, maskPattern)
	m.SetVersionInfo()
	buf.Rewind()
	if err := m.WriteCodewords(buf, maskPattern); err != nil {
		return nil, err
	}
	return m, nil
}

// Transform maps one written module's position and tags to a caller-chosen
// value, e.g. an SVG path fragment or pixel rectangle for an output
// backend.
type Transform func(x, y int, tag, layerTag Tag) any

// CollectModules walks every written module in raster order, invokes
// transform on each, and groups the results by layer tag. The layer tag
// equals the module's own tag, unless connectPaths is set and the tag is
// not listed in excludeFromConnect, in which case it collapses to
// TagData (light) or TagDataDark (dark) — letting a backend draw every
// connected run of data modules as one shape instead of one per module.
// excludeFromConnect may be nil.
func (m *QRMatrix) CollectModules(connectPaths bool, excludeFromConnect map[Tag]bool, transform Transform) map[Tag][]any {
	out := make(map[Tag][]any)
	for y := 0; y < m.dimension; y++ {
		for x := 0; x < m.dimension; x++ {
			c := m.cells[y][x]
			if c.tag == TagEmpty {
				continue
			}
			layerTag := c.tag
			if connectPaths && !excludeFromConnect[c.tag] {
				if c.dark {
					layerTag = TagDataDark
				} else {
					layerTag = TagData
				}
			}
			out[layerTag] = append(out[layerTag], transform(x, y, c.tag, layerTag))
		}
	}
	return out
}
