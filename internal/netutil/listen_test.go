package netutil

import (
	"net"
	"testing"
)

func TestCheckListen(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	if err := CheckListen(ln.Addr().String()); err == nil {
		t.Fatalf("expected %s to be busy", ln.Addr())
	}
	if err := CheckListen("127.0.0.1:0"); err != nil {
		t.Fatalf("ephemeral port: %v", err)
	}
}

func TestBrowseURL(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1:8787": "http://127.0.0.1:8787/",
		"0.0.0.0:80":     "http://127.0.0.1:80/",
		":9000":          "http://127.0.0.1:9000/",
		"[::1]:8080":     "http://[::1]:8080/",
		"nonsense":       "",
	}
	for in, want := range cases {
		if got := BrowseURL(in); got != want {
			t.Fatalf("BrowseURL(%q) = %q, want %q", in, got, want)
		}
	}
}
