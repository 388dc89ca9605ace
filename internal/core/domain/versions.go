package domain

import "strings"

// Toolchain is the fixed set of tool and library versions a build is
// verified against. It is built once at startup and passed to every stage.
type Toolchain struct {
	// WasmBindgen is the wasm-bindgen CLI version installed for builds.
	WasmBindgen string `json:"wasm_bindgen"`
	// WasmOpt is the binaryen release number providing wasm-opt.
	WasmOpt string `json:"wasm_opt"`
	// CargoGenerate is the scaffolder version used by `wbuild new`.
	CargoGenerate string `json:"cargo_generate"`
	// MinWasmBindgenLib is the lowest wasm-bindgen schema the crate may lock.
	MinWasmBindgenLib string `json:"min_wasm_bindgen_lib"`
	// MinRustc is the lowest compiler version able to build the glue.
	MinRustc string `json:"min_rustc"`
	// Worker is the current worker library release.
	Worker string `json:"worker"`
}

// DefaultToolchain returns the versions this release of wbuild is pinned to.
func DefaultToolchain() Toolchain {
	return Toolchain{
		WasmBindgen:       "0.2.106",
		WasmOpt:           "125",
		CargoGenerate:     "0.23.5",
		MinWasmBindgenLib: "0.2.106",
		MinRustc:          "1.71.0",
		Worker:            "0.7.1",
	}
}

// MinWorker returns "major.minor.0" of the current worker release.
func (t Toolchain) MinWorker() string {
	parts := strings.Split(t.Worker, ".")
	if len(parts) < 2 {
		return t.Worker
	}
	return parts[0] + "." + parts[1] + ".0"
}

// Requirements lists the library checks run against the lockfile.
// workerLib is the crate name of the worker library.
func (t Toolchain) Requirements(workerLib string) []Requirement {
	return []Requirement{
		{Name: workerLib, Min: t.MinWorker(), Current: t.Worker},
		{Name: "wasm-bindgen", Min: t.MinWasmBindgenLib, Current: t.WasmBindgen},
	}
}

// Tools returns the descriptors of every tool this toolchain can install.
func (t Toolchain) Tools() []Tool {
	return []Tool{
		BindingGeneratorTool(t.WasmBindgen),
		OptimizerTool(t.WasmOpt),
		ScaffolderTool(t.CargoGenerate),
	}
}
