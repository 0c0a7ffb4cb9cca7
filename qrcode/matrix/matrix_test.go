package matrix

import (
	"testing"

	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/qrcode/model"
)

func TestBuildPlacesFinderPatterns(t *testing.T) {
	v, _ := model.GetVersionForNumber(1)
	m := New(v)
	m.SetFinderPattern()

	if tag, dark, ok := m.Get(0, 0); !ok || tag != TagFinder || !dark {
		t.Errorf("top-left finder corner = (tag=%v dark=%v ok=%v), want (Finder true true)", tag, dark, ok)
	}
	if tag, dark, ok := m.Get(1, 1); !ok || tag != TagFinder || dark {
		t.Errorf("finder interior ring = (tag=%v dark=%v ok=%v), want (Finder false true)", tag, dark, ok)
	}
}

func TestWriteCodewordsNeverOverwritesFunctionModules(t *testing.T) {
	v, _ := model.GetVersionForNumber(2)
	m := New(v)
	m.SetFinderPattern()
	m.SetSeparators()
	m.SetAlignmentPatterns()
	m.SetTimingPattern()
	m.SetDarkModule()
	m.SetFormatInfo(model.ECLevelM, 0)

	ecBlocks := v.ECBlocksForLevel(model.ECLevelM)
	numDataBytes := v.TotalCodewords - ecBlocks.TotalECCodewords()
	buf := bitutil.NewBitBuffer()
	for i := 0; i < numDataBytes; i++ {
		buf.Put(0xAA, 8)
	}
	if err := m.WriteCodewords(buf, 0); err != nil {
		t.Fatalf("WriteCodewords failed: %v", err)
	}

	byTag := m.CollectModules(false, nil, func(x, y int, tag, layerTag Tag) any { return [2]int{x, y} })
	if len(byTag[TagFinder]) == 0 {
		t.Fatal("expected finder modules to remain tagged after data placement")
	}
	if len(byTag[TagData]) == 0 {
		t.Fatal("expected some modules to be tagged as data after placement")
	}
}

func TestCollectModulesConnectPathsCollapsesDataLayers(t *testing.T) {
	v, _ := model.GetVersionForNumber(2)
	m := New(v)
	m.SetFinderPattern()
	m.SetSeparators()
	m.SetAlignmentPatterns()
	m.SetTimingPattern()
	m.SetDarkModule()
	m.SetFormatInfo(model.ECLevelM, 0)

	ecBlocks := v.ECBlocksForLevel(model.ECLevelM)
	numDataBytes := v.TotalCodewords - ecBlocks.TotalECCodewords()
	buf := bitutil.NewBitBuffer()
	for i := 0; i < numDataBytes; i++ {
		buf.Put(0xAA, 8)
	}
	if err := m.WriteCodewords(buf, 0); err != nil {
		t.Fatalf("WriteCodewords failed: %v", err)
	}

	exclude := map[Tag]bool{TagFinder: true}
	byTag := m.CollectModules(true, exclude, func(x, y int, tag, layerTag Tag) any { return layerTag })
	if _, ok := byTag[TagData]; !ok {
		t.Error("expected light data modules collapsed under TagData")
	}
	if _, ok := byTag[TagDataDark]; !ok {
		t.Error("expected dark data modules collapsed under TagDataDark")
	}
	if len(byTag[TagFinder]) == 0 {
		t.Error("expected excluded tag TagFinder to keep its own layer")
	}
	if _, ok := byTag[TagTiming]; ok {
		t.Error("expected non-excluded function tag TagTiming to collapse into TagData/TagDataDark, not survive under its own tag")
	}
}

func TestAddQuietZoneTagsNewBorder(t *testing.T) {
	v, _ := model.GetVersionForNumber(1)
	m := New(v)
	m.SetFinderPattern()

	padded := m.AddQuietZone(4)
	if got, want := padded.Dimension(), m.Dimension()+8; got != want {
		t.Fatalf("padded dimension = %d, want %d", got, want)
	}
	if tag, dark, ok := padded.Get(0, 0); !ok || tag != TagQuietZone || dark {
		t.Errorf("quiet zone corner = (tag=%v dark=%v ok=%v), want (QuietZone false true)", tag, dark, ok)
	}
	if tag, _, ok := padded.Get(4, 4); !ok || tag != TagFinder {
		t.Errorf("shifted finder corner = (tag=%v ok=%v), want (Finder true)", tag, ok)
	}
	if _, _, ok := m.Get(0, 0); !ok {
		t.Error("AddQuietZone mutated the receiver")
	}
}

func TestInvertFlipsDarkBitPreservingTag(t *testing.T) {
	v, _ := model.GetVersionForNumber(1)
	m := New(v)
	m.SetFinderPattern()

	m.Invert()

	if tag, dark, ok := m.Get(0, 0); !ok || tag != TagFinder || dark {
		t.Errorf("inverted finder corner = (tag=%v dark=%v ok=%v), want (Finder false true)", tag, dark, ok)
	}
	if tag, dark, ok := m.Get(1, 1); !ok || tag != TagFinder || !dark {
		t.Errorf("inverted finder interior = (tag=%v dark=%v ok=%v), want (Finder true true)", tag, dark, ok)
	}
}

func TestBuildFullSymbolEmbedsVersionInfoAboveV7(t *testing.T) {
	v, _ := model.GetVersionForNumber(7)
	buf := bitutil.NewBitBuffer()
	ecBlocks := v.ECBlocksForLevel(model.ECLevelL)
	numDataBytes := v.TotalCodewords - ecBlocks.TotalECCodewords()
	for i := 0; i < numDataBytes; i++ {
		buf.Put(0, 8)
	}
	m, err := Build(v, model.ECLevelL, 0, buf)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	byTag := m.CollectModules(false, nil, func(x, y int, tag, layerTag Tag) any { return [2]int{x, y} })
	if len(byTag[TagVersion]) == 0 {
		t.Fatal("expected version info modules for a version 7 symbol")
	}
}

func TestBuildBelowV7HasNoVersionInfo(t *testing.T) {
	v, _ := model.GetVersionForNumber(6)
	buf := bitutil.NewBitBuffer()
	ecBlocks := v.ECBlocksForLevel(model.ECLevelL)
	numDataBytes := v.TotalCodewords - ecBlocks.TotalECCodewords()
	for i := 0; i < numDataBytes; i++ {
		buf.Put(0, 8)
	}
	m, err := Build(v, model.ECLevelL, 0, buf)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	byTag := m.CollectModules(false, nil, func(x, y int, tag, layerTag Tag) any { return [2]int{x, y} })
	if len(byTag[TagVersion]) != 0 {
		t.Fatalf("expected no version info modules below version 7, got %d", len(byTag[TagVersion]))
	}
}
