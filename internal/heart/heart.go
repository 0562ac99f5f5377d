// Package heart lays QR path fragments out as a heart-shaped SVG.
//
// The heart itself is decoration: rotated, clipped and sliced copies of the
// symbol are not machine readable. Every document therefore also carries one
// full, untransformed copy of the symbol translated off the visible canvas,
// which is what a scanner decodes.
package heart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/yuzeguitarist/loveqr/internal/qr"
)

var ErrParameter = errors.New("invalid parameter")

const FormatSVG = "svg"

// Image is a complete SVG document.
type Image string

func (i Image) Bytes() []byte { return []byte(i) }

type Request struct {
	Text   string
	Size   int
	Format string
	Level  qr.Level
}

type Compositor struct {
	Layout  Layout
	MaxSize int // 0 means unbounded
}

func New(l Layout, maxSize int) *Compositor {
	return &Compositor{Layout: l, MaxSize: maxSize}
}

func (c *Compositor) Validate(req Request) error {
	if req.Size <= 0 {
		return fmt.Errorf("%w: size must be a positive integer, got %d", ErrParameter, req.Size)
	}
	if c.MaxSize > 0 && req.Size > c.MaxSize {
		return fmt.Errorf("%w: size %d exceeds maximum %d", ErrParameter, req.Size, c.MaxSize)
	}
	if f := strings.ToLower(req.Format); f != "" && f != FormatSVG {
		return fmt.Errorf("%w: unsupported format %q, only svg is available", ErrParameter, req.Format)
	}
	return nil
}

// Render encodes req.Text with enc and composes the heart image.
func (c *Compositor) Render(enc qr.Encoder, req Request) (Image, error) {
	if err := c.Validate(req); err != nil {
		return "", err
	}
	sym, err := enc.Encode(req.Text, req.Level, CanvasSide(req.Size))
	if err != nil {
		return "", err
	}
	return c.Compose(sym, req.Size, req.Text)
}

// Compose builds the document. A nil or empty symbol is not an error: the
// background, outline and ornaments are still drawn around empty groups.
func (c *Compositor) Compose(sym *qr.Symbol, size int, text string) (Image, error) {
	if size <= 0 {
		return "", fmt.Errorf("%w: size must be a positive integer, got %d", ErrParameter, size)
	}
	if sym == nil {
		sym = &qr.Symbol{}
	}
	l := c.Layout
	s := float64(size)
	n := qr.Num
	at := func(f float64) string { return n(f * s) }
	heart := heartPath(s)
	half := n(sym.Canvas / 2)
	light := sym.Light
	if light == "" {
		light = l.Background
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, size, size, size, size)
	buf.WriteString(`<title>`)
	_ = xml.EscapeText(&buf, []byte(text))
	buf.WriteString(`</title>`)
	fmt.Fprintf(&buf, `<defs><clipPath id="heart-clip"><path d="%s"/></clipPath></defs>`, heart)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="%s"/>`, size, size, l.Background)

	buf.WriteString(`<g clip-path="url(#heart-clip)">`)

	fmt.Fprintf(&buf, `<g class="diamond" transform="translate(%s %s) rotate(45) scale(%s) translate(-%s -%s)">`,
		at(diamondX), at(diamondY), n(diamondScale), half, half)
	writeFragments(&buf, sym.Fragments)
	buf.WriteString(`</g>`)

	for _, lobe := range []struct {
		class string
		x     float64
		r     Range
	}{
		{"lobe-left", lobeLeftX, l.Slices.LeftLobe},
		{"lobe-right", lobeRightX, l.Slices.RightLobe},
	} {
		fmt.Fprintf(&buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`, at(lobe.x), at(lobeY), at(lobeRadius), l.Disc)
		fmt.Fprintf(&buf, `<g class="%s" transform="translate(%s %s) scale(%s) translate(-%s -%s)" opacity="%s">`,
			lobe.class, at(lobe.x), at(lobeY), n(lobeScale), half, half, n(lobeOpacity))
		writeFragments(&buf, slice(sym.Fragments, lobe.r))
		buf.WriteString(`</g>`)
	}

	for _, cl := range []struct {
		class   string
		x       float64
		flip    string
		opacity float64
		r       Range
	}{
		{"cluster-left", clusterLeftX, "", leftClusterOpacity, l.Slices.LeftCluster},
		{"cluster-right", clusterRightX, "-", rightClusterOpacity, l.Slices.RightCluster},
	} {
		fmt.Fprintf(&buf, `<g class="%s" transform="translate(%s %s) scale(%s%s %s) translate(-%s -%s)" opacity="%s">`,
			cl.class, at(cl.x), at(clusterY), cl.flip, n(clusterScale), n(clusterScale), half, half, n(cl.opacity))
		for i, f := range slice(sym.Fragments, cl.r) {
			fmt.Fprintf(&buf, `<g transform="translate(%s 0)">`, n(float64(i)*sym.Unit()))
			writeFragment(&buf, f)
			buf.WriteString(`</g>`)
		}
		buf.WriteString(`</g>`)
	}

	for _, sw := range swatches {
		fmt.Fprintf(&buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" opacity="%s"/>`,
			at(sw.x), at(sw.y), at(sw.side), at(sw.side), l.Accent, n(swatchOpacity))
	}

	fmt.Fprintf(&buf, `<path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`, heart, l.Accent, n(l.StrokeWidth))
	buf.WriteString(`</g>`)

	off := n(l.EscapeOffset)
	fmt.Fprintf(&buf, `<g class="scan" transform="translate(%s %s)">`, off, off)
	fmt.Fprintf(&buf, `<rect width="%s" height="%s" fill="%s"/>`, n(sym.Canvas), n(sym.Canvas), light)
	writeFragments(&buf, sym.Fragments)
	buf.WriteString(`</g>`)

	buf.WriteString(`</svg>`)
	return Image(buf.String()), nil
}

// heartPath is a closed cubic Bézier contour with its apex at (0.5s, 0.85s).
func heartPath(s float64) string {
	p := func(x, y float64) string { return qr.Num(x*s) + "," + qr.Num(y*s) }
	return "M" + p(0.5, 0.85) +
		" C" + p(0.5, 0.85) + " " + p(0.08, 0.58) + " " + p(0.08, 0.3) +
		" C" + p(0.08, 0.05) + " " + p(0.42, 0.05) + " " + p(0.5, 0.25) +
		" C" + p(0.58, 0.05) + " " + p(0.92, 0.05) + " " + p(0.92, 0.3) +
		" C" + p(0.92, 0.58) + " " + p(0.5, 0.85) + " " + p(0.5, 0.85) + " Z"
}

func slice(frags []qr.Fragment, r Range) []qr.Fragment {
	start, end := r.clamp(len(frags))
	return frags[start:end]
}

func writeFragments(buf *bytes.Buffer, frags []qr.Fragment) {
	for _, f := range frags {
		writeFragment(buf, f)
	}
}

func writeFragment(buf *bytes.Buffer, f qr.Fragment) {
	fmt.Fprintf(buf, `<path d="%s" fill="%s"/>`, f.Path, f.Fill)
}
