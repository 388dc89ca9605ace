package domain

import "strings"

// Crate identifies the package being built.
type Crate struct {
	Name string
	// LibName is the [lib] name override, empty when not set.
	LibName string
}

// ArtifactName is the file stem of the compiled library module.
func (c Crate) ArtifactName() string {
	name := c.LibName
	if name == "" {
		name = c.Name
	}
	return strings.ReplaceAll(name, "-", "_")
}
