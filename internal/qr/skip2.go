package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Skip2 encodes with github.com/skip2/go-qrcode. Bitmaps include the
// library's 4-module quiet zone.
type Skip2 struct {
	Colors Colors
}

func (e *Skip2) Name() string { return "skip2" }

func (e *Skip2) Encode(text string, level Level, canvas float64) (*Symbol, error) {
	code, err := qrcode.New(text, skip2Level(level))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	bitmap := code.Bitmap()
	if len(bitmap) == 0 {
		return nil, fmt.Errorf("%w: empty qr", ErrEncoding)
	}
	return newSymbol(bitmap, canvas, e.Colors), nil
}

// skip2 names its tiers Low/Medium/High/Highest (7/15/25/30%).
func skip2Level(l Level) qrcode.RecoveryLevel {
	switch l {
	case Low:
		return qrcode.Low
	case Quartile:
		return qrcode.High
	case High:
		return qrcode.Highest
	}
	return qrcode.Medium
}
