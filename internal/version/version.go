// Package version carries build information set via -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Overridden at build time, e.g.
//
//	go build -ldflags "-X ir_gateway/internal/version.Version=v1.2.0 -X ir_gateway/internal/version.Revision=$(git rev-parse HEAD)"
var (
	Project  = "ir_gateway"
	Version  = "dev"
	Revision = "unknown"
)

// Banner is the multi-line version text shown by the console and status page.
func Banner() string {
	return fmt.Sprintf("%s %s\nRevision: %s\nGo:       %s %s/%s\n",
		Project, Version, Revision, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
