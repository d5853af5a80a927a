// Package buildinfo exposes build-time version metadata.
//
// Values are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/keymesh-go/internal/infra/buildinfo.Version=v1.0.0"
//
// keymesh-server prints these values for -version and logs them at
// startup; the admin health endpoint reports Version. keymesh-cli keeps
// its own version variables and does not read this package.
package buildinfo
