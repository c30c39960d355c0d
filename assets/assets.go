// Package assets embeds static files shipped with the API binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed uploads/*.svg
var files embed.FS

// Uploads holds the item icons referenced by the seeded catalog, rooted so
// that names match the items.image column.
var Uploads fs.FS = mustSub(files, "uploads")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
