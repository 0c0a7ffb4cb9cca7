package encoder

import (
	"github.com/ldnrds/goqr/bitutil"
	"github.com/ldnrds/goqr/qrcode/matrix"
	"github.com/ldnrds/goqr/qrcode/model"
	"golang.org/x/sync/errgroup"
)

const numMaskPatterns = 8

// chooseMaskPattern builds the symbol under each of the 8 standard masks in
// parallel and returns the one with the lowest penalty score.
func chooseMaskPattern(bits *bitutil.BitBuffer, ecLevel model.ErrorCorrectionLevel, version *model.Version) (int, error) {
	penalties := make([]int, numMaskPatterns)
	errs := make([]error, numMaskPatterns)

	var g errgroup.Group
	for i := 0; i < numMaskPatterns; i++ {
		i := i
		g.Go(func() error {
			trial := bitutil.NewBitBuffer()
			trial.AppendBitBuffer(bits)
			built, err := matrix.Build(version, ecLevel, i, trial)
			if err != nil {
				errs[i] = err
				return nil
			}
			penalties[i] = matrix.Penalty(built.ToBitMatrix())
			return nil
		})
	}
	_ = g.Wait()

	bestPattern := 0
	bestPenalty := -1
	for i := 0; i < numMaskPatterns; i++ {
		if errs[i] != nil {
			continue
		}
		if bestPenalty == -1 || penalties[i] < bestPenalty {
			bestPenalty = penalties[i]
			bestPattern = i
		}
	}
	if bestPenalty == -1 {
		return 0, errs[0]
	}
	return bestPattern, nil
}
