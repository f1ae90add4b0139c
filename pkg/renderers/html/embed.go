package html

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the file name of the bundled stylesheet.
const StylesheetName = "formflow.css"

// TemplatesFS exposes the embedded template bundle for consumers that want
// the built-in form rendering out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded asset bundle (CSS) so callers can serve it
// over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

var (
	defaultCSSOnce sync.Once
	defaultCSS     string
)

// defaultStylesheet returns the bundled stylesheet contents for inlining.
func defaultStylesheet() string {
	defaultCSSOnce.Do(func() {
		data, err := fs.ReadFile(AssetsFS(), StylesheetName)
		if err == nil {
			defaultCSS = string(data)
		}
	})
	return defaultCSS
}
