package domain

// DefaultExternals are the specifiers left to the host loader: the compiled
// module and the modules the worker runtime provides.
func DefaultExternals(outName string) []string {
	return []string{
		WasmGlueImport(outName),
		"cloudflare:workers",
		"cloudflare:sockets",
	}
}

// BundleOptions configures a single bundle operation.
type BundleOptions struct {
	// Entry is the fully spliced entry module source.
	Entry string
	// Sourcefile names the synthetic entry in diagnostics.
	Sourcefile string
	// ResolveDir is the fixed directory relative imports resolve against.
	ResolveDir string
	// Externals are specifiers kept verbatim in the output.
	Externals []string
}

// ModuleSummary describes a decoded WebAssembly module.
type ModuleSummary struct {
	Path     string
	Size     int64
	Exports  int
	Imports  int
	Memories int
}
