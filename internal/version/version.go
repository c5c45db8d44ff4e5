// Package version exposes the release version embedded at build time.
package version

import (
	"bytes"
	_ "embed"
)

//go:embed version.txt
var versionBytes []byte

// Version returns the version of this tool.
func Version() string {
	return string(bytes.TrimSpace(versionBytes))
}
