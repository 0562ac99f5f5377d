// Package qr turns text into an ordered list of vector path fragments.
//
// A Symbol is laid out on a square canvas whose side is chosen by the caller.
// Every run of adjacent dark modules in a row becomes one Fragment, emitted
// row by row, left to right, so fragment order only depends on the text, the
// error-correction level and the encoder backend.
package qr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEncoding = errors.New("qr encoding failed")
	ErrLevel    = errors.New("unknown error-correction level")
	ErrEncoder  = errors.New("unknown qr encoder")
)

type Level int

const (
	Low Level = iota
	Medium
	Quartile
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	}
	return "?"
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "LOW":
		return Low, nil
	case "M", "MEDIUM":
		return Medium, nil
	case "Q", "QUARTILE":
		return Quartile, nil
	case "H", "HIGH":
		return High, nil
	}
	return Medium, fmt.Errorf("%w: %q", ErrLevel, s)
}

// Fragment is one path command string with its fill colour.
type Fragment struct {
	Path string
	Fill string
}

type Symbol struct {
	Modules   int     // side length in modules, quiet zone included
	Canvas    float64 // side length in canvas units
	Dark      string
	Light     string
	Bitmap    [][]bool
	Fragments []Fragment
}

// Unit is the size of one module in canvas units.
func (s *Symbol) Unit() float64 {
	if s.Modules == 0 {
		return 0
	}
	return s.Canvas / float64(s.Modules)
}

type Encoder interface {
	Encode(text string, level Level, canvas float64) (*Symbol, error)
	Name() string
}

type Colors struct {
	Dark  string
	Light string
}

var DefaultColors = Colors{Dark: "#FF0000", Light: "#FFFFFF"}

func NewEncoder(name string, c Colors) (Encoder, error) {
	if c.Dark == "" {
		c.Dark = DefaultColors.Dark
	}
	if c.Light == "" {
		c.Light = DefaultColors.Light
	}
	switch strings.ToLower(name) {
	case "", "skip2":
		return &Skip2{Colors: c}, nil
	case "rsc":
		return &RSC{Colors: c}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrEncoder, name)
}

func newSymbol(bitmap [][]bool, canvas float64, c Colors) *Symbol {
	s := &Symbol{
		Modules: len(bitmap),
		Canvas:  canvas,
		Dark:    c.Dark,
		Light:   c.Light,
		Bitmap:  bitmap,
	}
	s.Fragments = runs(bitmap, s.Unit(), c.Dark)
	return s
}

func runs(bitmap [][]bool, unit float64, fill string) []Fragment {
	var out []Fragment
	for y, row := range bitmap {
		x := 0
		for x < len(row) {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			w := Num(float64(x-start) * unit)
			path := "M" + Num(float64(start)*unit) + "," + Num(float64(y)*unit) +
				"h" + w + "v" + Num(unit) + "h-" + w + "z"
			out = append(out, Fragment{Path: path, Fill: fill})
		}
	}
	return out
}

// Num formats a coordinate with at most three decimals and no trailing zeros.
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
