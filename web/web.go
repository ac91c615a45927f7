// Package web holds the HTML pages served by the application.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
