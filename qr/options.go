// Package qr is the top-level QR code codec: Encode/Decode entry points
// plus the option types callers configure them with.
package qr

import (
	"github.com/ldnrds/goqr/qrcode/encoder"
	"github.com/ldnrds/goqr/qrcode/matrix"
	"github.com/ldnrds/goqr/qrcode/model"
	"github.com/ldnrds/goqr/qrerr"
)

// Options configures Encode and the module-level output backends. The
// zero value is not directly usable — construct one with NewOptions,
// which picks a sensible default: medium error correction, auto-selected
// mode, auto-selected version (minimum 1), auto-selected mask, four
// modules of quiet zone, and no connect-paths collapsing or inversion.
type Options struct {
	ecLevel            model.ErrorCorrectionLevel
	minVersion         int
	version            int
	maskPattern        int
	mode               model.Mode
	quietZone          int
	connectPaths       bool
	excludeFromConnect map[matrix.Tag]bool
	invertMatrix       bool
	moduleValues       map[matrix.Tag]any
}

// NewOptions returns the default option set.
func NewOptions() *Options {
	return &Options{
		ecLevel:     model.ECLevelM,
		minVersion:  1,
		version:     0,
		maskPattern: -1,
		mode:        model.ModeAuto,
		quietZone:   4,
	}
}

// WithErrorCorrection sets the EC level by its single-letter name
// ("L", "M", "Q", "H"). Returns an error for any other value.
func (o *Options) WithErrorCorrection(level string) (*Options, error) {
	l, err := model.ECLevelForName(level)
	if err != nil {
		return o, err
	}
	o.ecLevel = l
	return o, nil
}

// WithVersion pins the symbol to a specific version (1-40). A value of 0
// lets the encoder choose the smallest version that fits; any other
// out-of-range value is rejected with qrerr.InvalidVersion.
func (o *Options) WithVersion(version int) (*Options, error) {
	if version != 0 && (version < 1 || version > 40) {
		return o, qrerr.InvalidVersion
	}
	o.version = version
	return o, nil
}

// WithMinVersion sets the smallest version the encoder is allowed to
// choose when auto-selecting (WithVersion's argument left at 0). Must be
// in 1-40.
func (o *Options) WithMinVersion(version int) (*Options, error) {
	if version < 1 || version > 40 {
		return o, qrerr.InvalidVersion
	}
	o.minVersion = version
	return o, nil
}

// WithMaskPattern pins the symbol to a specific mask pattern (0-7). A
// value of -1 (the default) lets the encoder choose the lowest-penalty
// mask; any other out-of-range value is rejected with
// qrerr.InvalidMaskPattern.
func (o *Options) WithMaskPattern(pattern int) (*Options, error) {
	if pattern != -1 && (pattern < 0 || pattern > 7) {
		return o, qrerr.InvalidMaskPattern
	}
	o.maskPattern = pattern
	return o, nil
}

// WithMode forces Encode's single segment into the given mode instead of
// auto-choosing the narrowest one. Numeric, Alphanumeric, Byte, Kanji,
// and Hanzi are valid, as is model.ModeAuto (the default), which restores
// auto-choosing; anything else, including ECI and Terminator, is rejected
// with qrerr.InvalidOption. Has no effect on
// EncodeSegments, whose segments already carry their own modes.
func (o *Options) WithMode(mode model.Mode) (*Options, error) {
	switch mode {
	case model.ModeAuto, model.ModeNumeric, model.ModeAlphanumeric, model.ModeByte, model.ModeKanji, model.ModeHanzi:
		o.mode = mode
		return o, nil
	default:
		return o, qrerr.InvalidOption
	}
}

// WithQuietZone sets the light border width, in modules, added around the
// symbol when rendering. Must be in 0..75.
func (o *Options) WithQuietZone(modules int) (*Options, error) {
	if modules < 0 || modules > 75 {
		return o, qrerr.InvalidOption
	}
	o.quietZone = modules
	return o, nil
}

// WithConnectPaths makes CollectModules collapse every tag not listed in
// WithExcludeFromConnect into TagData/TagDataDark layers, so an output
// backend can draw connected runs of modules as one shape.
func (o *Options) WithConnectPaths(connect bool) *Options {
	o.connectPaths = connect
	return o
}

// WithExcludeFromConnect lists the tags that keep their own layer under
// connect-paths collapsing (e.g. finder patterns, which a backend may
// want to style distinctly even with connect-paths on).
func (o *Options) WithExcludeFromConnect(tags ...matrix.Tag) *Options {
	exclude := make(map[matrix.Tag]bool, len(tags))
	for _, t := range tags {
		exclude[t] = true
	}
	o.excludeFromConnect = exclude
	return o
}

// WithInvertMatrix flips every module's dark bit before the symbol is
// returned from Encode/EncodeSegments, e.g. for backends that render dark
// modules as the background color.
func (o *Options) WithInvertMatrix(invert bool) *Options {
	o.invertMatrix = invert
	return o
}

// WithModuleValues attaches caller-chosen values (colors, path styles,
// ...) per tag, retrievable afterwards with ModuleValues for a
// CollectModules transform to consult.
func (o *Options) WithModuleValues(values map[matrix.Tag]any) *Options {
	o.moduleValues = values
	return o
}

// ModuleValues returns the map set by WithModuleValues, or nil if unset.
func (o *Options) ModuleValues() map[matrix.Tag]any {
	return o.moduleValues
}

// CollectModules walks m with o's connect-paths/exclude-from-connect
// configuration, invoking transform on each written module.
func (o *Options) CollectModules(m *matrix.QRMatrix, transform matrix.Transform) map[matrix.Tag][]any {
	return m.CollectModules(o.connectPaths, o.excludeFromConnect, transform)
}

func (o *Options) toConfig() encoder.Config {
	return encoder.Config{
		ECLevel:     o.ecLevel,
		MinVersion:  o.minVersion,
		Version:     o.version,
		MaskPattern: o.maskPattern,
		Mode:        o.mode,
		Invert:      o.invertMatrix,
	}
}
