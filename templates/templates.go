// Package templates embeds the HTML views so rendering works regardless of
// the process working directory.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
