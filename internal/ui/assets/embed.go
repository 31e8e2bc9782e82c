package assets

import "embed"

//go:embed static
var staticFS embed.FS

// StaticFS holds the files served under /static.
func StaticFS() embed.FS {
	return staticFS
}
