package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// Requirement pins a locked library to a caret range built from Min.
// Current is only used for remediation text.
type Requirement struct {
	Name    string
	Min     string
	Current string
}

// LockedPackage is a single [[package]] entry of Cargo.lock.
type LockedPackage struct {
	Name         string
	Version      string
	Dependencies []string
}

// Lockfile is the parsed dependency snapshot of a workspace.
type Lockfile struct {
	Packages []LockedPackage
	// RootPackageName is the crate being built, empty when unknown.
	RootPackageName string
}

// PackageVersion resolves the locked version of a package.
//
// Several versions of one package may coexist. The version pinned by a
// direct dependency edge of the root package wins, otherwise the first
// package with a matching name is used.
func (l *Lockfile) PackageVersion(name string) (string, bool) {
	if l.RootPackageName != "" {
		if root, ok := l.find(l.RootPackageName); ok {
			for _, dep := range root.Dependencies {
				if len(dep) <= len(name) || !strings.HasPrefix(dep, name) || dep[len(name)] != ' ' {
					continue
				}
				// Edges look like "name version" or "name version (source)".
				fields := strings.Fields(dep[len(name)+1:])
				if len(fields) > 0 {
					return fields[0], true
				}
			}
		}
	}

	if pkg, ok := l.find(name); ok {
		return pkg.Version, true
	}
	return "", false
}

func (l *Lockfile) find(name string) (LockedPackage, bool) {
	for _, pkg := range l.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return LockedPackage{}, false
}

// Require checks that the locked version of name satisfies ^minVersion.
func (l *Lockfile) Require(name, minVersion, current string) error {
	version, ok := l.PackageVersion(name)
	if !ok {
		msg := "Ensure that you have dependency " + dependencyHint(name, current)
		return zerr.With(zerr.Wrap(ErrDependencyVersion, msg), "package", name)
	}

	matches, err := SatisfiesCaret(version, minVersion)
	if err != nil {
		return zerr.With(err, "package", name)
	}
	if !matches {
		msg := fmt.Sprintf("Unsupported version %s@%s, expected at least %s", name, version, dependencyHint(name, current))
		versionErr := zerr.Wrap(ErrDependencyVersion, msg)
		versionErr = zerr.With(versionErr, "package", name)
		return zerr.With(versionErr, "found", version)
	}
	return nil
}

// Check runs every requirement and returns the first failure.
func (l *Lockfile) Check(reqs ...Requirement) error {
	for _, req := range reqs {
		if err := l.Require(req.Name, req.Min, req.Current); err != nil {
			return err
		}
	}
	return nil
}

func dependencyHint(name, current string) string {
	return fmt.Sprintf("%s@%s in the Cargo.toml file:\n\n[dependencies]\n%s = \"%s\"", name, current, name, current)
}

// SatisfiesCaret reports whether version lies in the caret range ^minVersion.
// ^1.2.3 is >=1.2.3 <2.0.0, ^0.2.3 is >=0.2.3 <0.3.0 and ^0.0.3 is =0.0.3.
func SatisfiesCaret(version, minVersion string) (bool, error) {
	v, err := canonical(version)
	if err != nil {
		return false, err
	}
	m, err := canonical(minVersion)
	if err != nil {
		return false, err
	}

	if semver.Compare(v, m) < 0 {
		return false, nil
	}

	switch {
	case semver.Major(m) != "v0":
		return semver.Major(v) == semver.Major(m), nil
	case semver.MajorMinor(m) != "v0.0":
		return semver.MajorMinor(v) == semver.MajorMinor(m), nil
	default:
		return semver.Compare(v, m) == 0, nil
	}
}

// AtLeast reports whether version >= minVersion under semver ordering.
func AtLeast(version, minVersion string) (bool, error) {
	v, err := canonical(version)
	if err != nil {
		return false, err
	}
	m, err := canonical(minVersion)
	if err != nil {
		return false, err
	}
	return semver.Compare(v, m) >= 0, nil
}

func canonical(version string) (string, error) {
	v := "v" + strings.TrimPrefix(strings.TrimSpace(version), "v")
	if !semver.IsValid(v) {
		return "", zerr.With(ErrInvalidVersion, "version", version)
	}
	return v, nil
}
