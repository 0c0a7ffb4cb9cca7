package matrix

import "github.com/ldnrds/goqr/bitutil"

// Penalty scores bm against the four ISO 18004 mask-evaluation rules: runs
// of five or more same-color modules, 2x2 same-color blocks, finder-like
// false-positive patterns, and deviation from an even dark/light split.
// Lower is better; the encoder picks the mask pattern with the lowest score.
func Penalty(bm *bitutil.BitMatrix) int {
	return penaltyRule1(bm) + penaltyRule2(bm) + penaltyRule3(bm) + penaltyRule4(bm)
}

func penaltyRule1(bm *bitutil.BitMatrix) int {
	return penaltyRule1Axis(bm, true) + penaltyRule1Axis(bm, false)
}

func penaltyRule1Axis(bm *bitutil.BitMatrix, horizontal bool) int {
	penalty := 0
	iLimit, jLimit := bm.Height(), bm.Width()
	if !horizontal {
		iLimit, jLimit = bm.Width(), bm.Height()
	}
	for i := 0; i < iLimit; i++ {
		run := 0
		prev := -1
		for j := 0; j < jLimit; j++ {
			var bit bool
			if horizontal {
				bit = bm.Get(j, i)
			} else {
				bit = bm.Get(i, j)
			}
			v := 0
			if bit {
				v = 1
			}
			if v == prev {
				run++
			} else {
				if run >= 5 {
					penalty += 3 + (run - 5)
				}
				run = 1
				prev = v
			}
		}
		if run >= 5 {
			penalty += 3 + (run - 5)
		}
	}
	return penalty
}

func penaltyRule2(bm *bitutil.BitMatrix) int {
	penalty := 0
	w, h := bm.Width(), bm.Height()
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			v := bm.Get(x, y)
			if v == bm.Get(x+1, y) && v == bm.Get(x, y+1) && v == bm.Get(x+1, y+1) {
				penalty += 3
			}
		}
	}
	return penalty
}

func penaltyRule3(bm *bitutil.BitMatrix) int {
	penalty := 0
	w, h := bm.Width(), bm.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+6 < w {
				if bm.Get(x, y) && !bm.Get(x+1, y) && bm.Get(x+2, y) && bm.Get(x+3, y) &&
					bm.Get(x+4, y) && !bm.Get(x+5, y) && bm.Get(x+6, y) {
					leading := x+10 < w && !bm.Get(x+7, y) && !bm.Get(x+8, y) && !bm.Get(x+9, y) && !bm.Get(x+10, y)
					trailing := x >= 4 && !bm.Get(x-1, y) && !bm.Get(x-2, y) && !bm.Get(x-3, y) && !bm.Get(x-4, y)
					if leading || trailing {
						penalty += 40
					}
				}
			}
			if y+6 < h {
				if bm.Get(x, y) && !bm.Get(x, y+1) && bm.Get(x, y+2) && bm.Get(x, y+3) &&
					bm.Get(x, y+4) && !bm.Get(x, y+5) && bm.Get(x, y+6) {
					leading := y+10 < h && !bm.Get(x, y+7) && !bm.Get(x, y+8) && !bm.Get(x, y+9) && !bm.Get(x, y+10)
					trailing := y >= 4 && !bm.Get(x, y-1) && !bm.Get(x, y-2) && !bm.Get(x, y-3) && !bm.Get(x, y-4)
					if leading || trailing {
						penalty += 40
					}
				}
			}
		}
	}
	return penalty
}

func penaltyRule4(bm *bitutil.BitMatrix) int {
	w, h := bm.Width(), bm.Height()
	dark := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if bm.Get(x, y) {
				dark++
			}
		}
	}
	total := w * h
	variance := abs(dark*2-total) * 10 / total
	return variance * 10
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
