// Package version carries the build version, set at link time:
//
//	go build -ldflags "-X exoparam/internal/version.Version=v1.2.3" ./cmd/exoparam
package version

// Version is the release version of the binary.
var Version = "dev"
