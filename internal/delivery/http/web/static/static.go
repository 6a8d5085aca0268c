package static

import "embed"

// FS holds the console's stylesheet and script.
//
//go:embed *.css *.js
var FS embed.FS
