// Package version provides build version information embedding.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/rollup/version.Version=1.0.0"
package version
