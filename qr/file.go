package qr

import (
	"image/png"

	"github.com/ldnrds/goqr/luminance"
	"github.com/ldnrds/goqr/qrcode/encoder"
	"github.com/ldnrds/goqr/qrerr"
	"github.com/spf13/afero"
)

// WriteToFile renders symbol to a PNG of the given pixel dimensions and
// writes it to path through fs, honoring opts' quiet zone (opts may be nil
// for the default). Tests exercise this against afero.NewMemMapFs()
// instead of the real filesystem.
func WriteToFile(fs afero.Fs, path string, symbol *encoder.Symbol, width, height int, opts *Options) error {
	if opts == nil {
		opts = NewOptions()
	}
	bits := encoder.Render(symbol, width, height, opts.quietZone)
	img := luminance.MatrixToImage(bits)

	f, err := fs.Create(path)
	if err != nil {
		return qrerr.CannotWriteFile
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return qrerr.CannotWriteFile
	}
	return nil
}
