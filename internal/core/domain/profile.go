package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ProfileKind is the family of a build profile.
type ProfileKind int

const (
	// ProfileRelease is an optimized build.
	ProfileRelease ProfileKind = iota
	// ProfileDev is an unoptimized build with debug glue.
	ProfileDev
	// ProfileProfiling is an optimized build that keeps names for profilers.
	ProfileProfiling
	// ProfileCustom is a user defined cargo profile.
	ProfileCustom
)

// Profile selects glue generation flags and the artifact directory.
type Profile struct {
	Kind ProfileKind
	// Name is only meaningful for ProfileCustom.
	Name string
}

// ParseProfile maps a profile name to a Profile. The empty string is release.
func ParseProfile(name string) (Profile, error) {
	switch name {
	case "", "release":
		return Profile{Kind: ProfileRelease}, nil
	case "dev", "debug":
		return Profile{Kind: ProfileDev}, nil
	case "profiling":
		return Profile{Kind: ProfileProfiling}, nil
	}
	if strings.ContainsAny(name, `/\ `) || strings.HasPrefix(name, "-") {
		return Profile{}, zerr.With(ErrInvalidProfile, "profile", name)
	}
	return Profile{Kind: ProfileCustom, Name: name}, nil
}

// String returns the profile name as accepted by ParseProfile.
func (p Profile) String() string {
	switch p.Kind {
	case ProfileDev:
		return "dev"
	case ProfileProfiling:
		return "profiling"
	case ProfileCustom:
		return p.Name
	default:
		return "release"
	}
}

// Dir is the directory below target/<triple> holding this profile's artifacts.
func (p Profile) Dir() string {
	switch p.Kind {
	case ProfileDev:
		return "debug"
	case ProfileCustom:
		return p.Name
	default:
		return "release"
	}
}

// CargoArgs are the cargo build flags selecting this profile.
func (p Profile) CargoArgs() []string {
	switch p.Kind {
	case ProfileDev:
		return nil
	case ProfileCustom:
		return []string{"--profile", p.Name}
	default:
		return []string{"--release"}
	}
}

// Settings returns the default glue and optimizer settings of the profile.
func (p Profile) Settings() ProfileSettings {
	s := ProfileSettings{Demangle: true}
	if p.Kind == ProfileDev {
		s.DebugJSGlue = true
		return s
	}
	s.WasmOptArgs = []string{"-O"}
	return s
}

// ProfileSettings are the flags derived from a profile.
type ProfileSettings struct {
	DebugJSGlue           bool
	Demangle              bool
	DWARF                 bool
	OmitDefaultModulePath bool
	SplitLinkedModules    bool
	// WasmOptArgs is empty when wasm-opt should not run.
	WasmOptArgs []string
}

// ProfileOverrides are optional per-profile settings from project config.
type ProfileOverrides struct {
	DebugJSGlue           *bool
	Demangle              *bool
	DWARF                 *bool
	OmitDefaultModulePath *bool
	SplitLinkedModules    *bool
	WasmOptArgs           []string
}

// Apply returns a copy of s with the set overrides applied.
func (s ProfileSettings) Apply(o ProfileOverrides) ProfileSettings {
	out := s
	out.WasmOptArgs = slices.Clone(s.WasmOptArgs)
	setBool(&out.DebugJSGlue, o.DebugJSGlue)
	setBool(&out.Demangle, o.Demangle)
	setBool(&out.DWARF, o.DWARF)
	setBool(&out.OmitDefaultModulePath, o.OmitDefaultModulePath)
	setBool(&out.SplitLinkedModules, o.SplitLinkedModules)
	if o.WasmOptArgs != nil {
		out.WasmOptArgs = slices.Clone(o.WasmOptArgs)
	}
	return out
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// OptimizerArgs returns the wasm-opt arguments, including the feature and
// debug info flags the glue relies on. It is nil when optimization is off.
func (s ProfileSettings) OptimizerArgs() []string {
	if len(s.WasmOptArgs) == 0 {
		return nil
	}
	args := slices.Clone(s.WasmOptArgs)
	if !slices.Contains(args, "--all-features") {
		args = append(args, "--all-features")
	}
	if s.DWARF && !slices.Contains(args, "--debuginfo") && !slices.Contains(args, "-g") {
		args = append(args, "--debuginfo")
	}
	return args
}

// BindgenOptions is everything needed to run the binding generator once.
type BindgenOptions struct {
	Profile  Profile
	Settings ProfileSettings
	// Crate is the library artifact name (hyphens already replaced).
	Crate string
	// TargetDir is the cargo target directory, overridden by --target-dir
	// in CargoArgs.
	TargetDir    string
	OutDir       string
	OutName      string
	Target       string
	DisableTypes bool
	// CargoArgs are the options the compiler was invoked with.
	CargoArgs []string
	// ExtraArgs are appended verbatim to the wasm-bindgen invocation.
	ExtraArgs []string
}
