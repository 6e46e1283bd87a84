// Package embedded holds the files compiled into the stationmap binary: the
// default organization registry and the page templates used by the renderer.
package embedded

import (
	"embed"
)

// RegistryFile is the path of the default organization registry inside FS.
const RegistryFile = "organizations.yaml"

// TemplatesGlob matches every page template inside FS.
const TemplatesGlob = "templates/*.html"

// FS embeds the registry and the HTML templates at build time.
//
//go:embed organizations.yaml templates/*.html
var FS embed.FS
