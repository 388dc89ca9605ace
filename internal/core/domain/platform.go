package domain

import "runtime"

// Platform is an (OS, architecture) pair in GOOS/GOARCH vocabulary.
type Platform struct {
	OS   string
	Arch string
}

// CurrentPlatform returns the host platform.
func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// String returns "os/arch".
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}
