package qr

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"l": Low, "M": Medium, "quartile": Quartile, " H ": High, "high": High}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("X"); !errors.Is(err, ErrLevel) {
		t.Fatalf("expected ErrLevel, got %v", err)
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"", "skip2", "RSC"} {
		if _, err := NewEncoder(name, Colors{}); err != nil {
			t.Fatalf("NewEncoder(%q): %v", name, err)
		}
	}
	if _, err := NewEncoder("zxing", Colors{}); !errors.Is(err, ErrEncoder) {
		t.Fatalf("expected ErrEncoder, got %v", err)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	for _, name := range []string{"skip2", "rsc"} {
		enc, _ := NewEncoder(name, DefaultColors)
		a, err := enc.Encode("hello", Medium, 180)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		b, _ := enc.Encode("hello", Medium, 180)
		if len(a.Fragments) == 0 || len(a.Fragments) != len(b.Fragments) {
			t.Fatalf("%s: fragment count %d vs %d", name, len(a.Fragments), len(b.Fragments))
		}
		for i := range a.Fragments {
			if a.Fragments[i] != b.Fragments[i] {
				t.Fatalf("%s: fragment %d differs", name, i)
			}
		}
	}
}

func TestEncodeGeometry(t *testing.T) {
	enc, _ := NewEncoder("skip2", DefaultColors)
	s, err := enc.Encode("hello", Low, 180)
	if err != nil {
		t.Fatal(err)
	}
	// version 1 is 21 modules plus a quiet zone of 4 on each side
	if s.Modules != 29 {
		t.Fatalf("modules = %d, want 29", s.Modules)
	}
	if s.Canvas != 180 {
		t.Fatalf("canvas = %v", s.Canvas)
	}
	dark := 0
	for _, row := range s.Bitmap {
		for _, v := range row {
			if v {
				dark++
			}
		}
	}
	if len(s.Fragments) > dark {
		t.Fatalf("%d fragments for %d dark modules", len(s.Fragments), dark)
	}
	for _, f := range s.Fragments {
		if !strings.HasPrefix(f.Path, "M") || !strings.HasSuffix(f.Path, "z") {
			t.Fatalf("malformed path %q", f.Path)
		}
		if f.Fill != "#FF0000" {
			t.Fatalf("fill = %q", f.Fill)
		}
	}
}

func TestRSCQuietZone(t *testing.T) {
	enc, _ := NewEncoder("rsc", DefaultColors)
	s, err := enc.Encode("hello", Medium, 100)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < quietZone; i++ {
		for x := 0; x < s.Modules; x++ {
			if s.Bitmap[i][x] || s.Bitmap[s.Modules-1-i][x] {
				t.Fatalf("dark module in quiet zone row %d", i)
			}
		}
	}
}

func TestEncodeTooLong(t *testing.T) {
	text := strings.Repeat("love letters ", 400)
	for _, name := range []string{"skip2", "rsc"} {
		enc, _ := NewEncoder(name, DefaultColors)
		if _, err := enc.Encode(text, High, 180); !errors.Is(err, ErrEncoding) {
			t.Fatalf("%s: expected ErrEncoding, got %v", name, err)
		}
	}
}

func TestNum(t *testing.T) {
	cases := map[float64]string{0: "0", 1.5: "1.5", 0.1 * 3: "0.3", 180: "180", -0.0001: "0", 6.20689655: "6.207"}
	for in, want := range cases {
		if got := Num(in); got != want {
			t.Fatalf("Num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPlainSVG(t *testing.T) {
	enc, _ := NewEncoder("skip2", DefaultColors)
	s, err := enc.Encode("hello", Medium, 100)
	if err != nil {
		t.Fatal(err)
	}
	b, err := PlainSVG(s, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("<svg")) {
		t.Fatal("not svg")
	}
	if _, err := PlainSVG(&Symbol{}, 4); !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding for empty symbol, got %v", err)
	}
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	Terminal(&buf, "hello", Low)
	if buf.Len() == 0 {
		t.Fatal("no terminal output")
	}
}
