package app

import "os"

const (
	Red    = "1;31"
	Green  = "1;32"
	Yellow = "1;33"
	Blue   = "1;34"
	Pink   = "1;35"
)

// Color wraps text with an ANSI code when stdout is a terminal and NO_COLOR is not set.
func Color(text, code string) string {
	return ColorFor(os.Stdout, text, code)
}

func ColorFor(f *os.File, text, code string) string {
	if code == "" || !colorEnabled(f) {
		return text
	}
	return "\x1b[" + code + "m" + text + "\x1b[0m"
}

func colorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
