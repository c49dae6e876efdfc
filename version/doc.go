// Package version reports build information for the registry binaries.
//
// Version, commit, branch and build time are set at compile time via -ldflags
// and fall back to the VCS settings the Go toolchain stamps into the binary:
//
//	go build -ldflags "-X github.com/kbukum/svcregistry/version.Version=1.0.0" ./cmd/registry-demo
package version
