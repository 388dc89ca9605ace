package domain

import "time"

// BuildInfo records the outcome of a successful build.
type BuildInfo struct {
	Crate         string            `json:"crate,omitzero"`
	Profile       string            `json:"profile,omitzero"`
	BundleDigest  string            `json:"bundle_digest,omitzero"`
	ModuleDigests map[string]string `json:"module_digests,omitzero"`
	Toolchain     Toolchain         `json:"toolchain,omitzero"`
	Timestamp     time.Time         `json:"timestamp,omitzero"`
}

// Key identifies a build record by crate and profile.
func (b BuildInfo) Key() string {
	return b.Crate + "@" + b.Profile
}
