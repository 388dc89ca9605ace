// Package shim renders the worker entry module and the Durable Object export shim
// that is spliced into it.
package shim

import (
	_ "embed"
	"strconv"
	"strings"
)

// InjectionPoint is the placeholder in the entry template that receives the shim.
// Substitution is textual, so the token must not appear anywhere else in the template.
const InjectionPoint = "$DURABLE_OBJECTS_INJECTION_POINT"

const (
	outNamePlaceholder = "$OUT_NAME"
	namesIdent         = "__WORKER_BUILD_DO_NAMES__"
	wrappedPrefix      = "__DO_WRAPPED_"
	emptyShim          = "const successfullyWrappedDONames = [];"
)

//go:embed js/durable_objects_shim.js
var durableObjectsTemplate string

//go:embed js/entry.js
var entryTemplate string

// Declaration binds the class names to the identifier the shim template reads.
func Declaration(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = strconv.Quote(name)
	}
	return "const " + namesIdent + " = [" + strings.Join(quoted, ", ") + "];"
}

// Exports re-exports every wrapped class under its original name.
func Exports(names []string) string {
	var b strings.Builder
	for _, name := range names {
		b.WriteString("\nexport const ")
		b.WriteString(name)
		b.WriteString(" = globalThis.")
		b.WriteString(wrappedPrefix)
		b.WriteString(name)
		b.WriteString(";")
	}
	return b.String()
}

// Shim composes the declaration, the wrapping template and the exports.
// Without class names only the empty wrapped list is declared.
func Shim(names []string) string {
	if len(names) == 0 {
		return emptyShim
	}
	return Declaration(names) + durableObjectsTemplate + Exports(names)
}

// Inject replaces every InjectionPoint in glue with shim.
func Inject(glue, shim string) string {
	return strings.ReplaceAll(glue, InjectionPoint, shim)
}

// Entry renders the worker entry module for the glue named outName.
func Entry(outName string, names []string) string {
	glue := strings.ReplaceAll(entryTemplate, outNamePlaceholder, outName)
	return Inject(glue, Shim(names))
}
