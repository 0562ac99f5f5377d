package qr

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mdp/qrterminal/v3"
)

// PlainSVG renders the symbol as a flat, scannable SVG with one rect per dark module.
func PlainSVG(s *Symbol, pixelsPerModule int) ([]byte, error) {
	n := s.Modules
	if n == 0 {
		return nil, fmt.Errorf("%w: empty qr", ErrEncoding)
	}
	if pixelsPerModule <= 0 {
		pixelsPerModule = 1
	}
	w := n * pixelsPerModule
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, w, w, w))
	buf.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`, s.Light))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if s.Bitmap[y][x] {
				buf.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`, x*pixelsPerModule, y*pixelsPerModule, pixelsPerModule, pixelsPerModule, s.Dark))
			}
		}
	}
	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// Terminal prints text as a half-block QR code for a quick scan from the console.
func Terminal(w io.Writer, text string, level Level) {
	qrterminal.GenerateHalfBlock(text, rscLevel(level), w)
}
