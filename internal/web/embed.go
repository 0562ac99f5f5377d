package web

import "embed"

//go:embed templates/*.html
var FS embed.FS
