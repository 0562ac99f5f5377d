package qr

import (
	"fmt"

	rscqr "rsc.io/qr"
)

const quietZone = 4

// RSC encodes with rsc.io/qr. The library emits no quiet zone, so a
// 4-module one is added to match Skip2.
type RSC struct {
	Colors Colors
}

func (e *RSC) Name() string { return "rsc" }

func (e *RSC) Encode(text string, level Level, canvas float64) (*Symbol, error) {
	code, err := rscqr.Encode(text, rscLevel(level))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	n := code.Size
	if n == 0 {
		return nil, fmt.Errorf("%w: empty qr", ErrEncoding)
	}
	side := n + 2*quietZone
	bitmap := make([][]bool, side)
	for y := range bitmap {
		bitmap[y] = make([]bool, side)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			bitmap[y+quietZone][x+quietZone] = code.Black(x, y)
		}
	}
	return newSymbol(bitmap, canvas, e.Colors), nil
}

func rscLevel(l Level) rscqr.Level {
	switch l {
	case Low:
		return rscqr.L
	case Quartile:
		return rscqr.Q
	case High:
		return rscqr.H
	}
	return rscqr.M
}
