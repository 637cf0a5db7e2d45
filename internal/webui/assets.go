package webui

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed static
var embeddedAssets embed.FS

var (
	staticFS     fs.FS
	staticFSInit sync.Once
	staticFSErr  error
)

func ensureStaticFS() (fs.FS, error) {
	staticFSInit.Do(func() {
		staticFS, staticFSErr = fs.Sub(embeddedAssets, "static")
	})
	return staticFS, staticFSErr
}
