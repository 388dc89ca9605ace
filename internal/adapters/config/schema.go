package config

// Wbuildfile represents the structure of the wbuild.yaml configuration file.
// Pointer fields distinguish an absent key from a zero value.
type Wbuildfile struct {
	OutDir      *string               `yaml:"out_dir"`
	OutName     *string               `yaml:"out_name"`
	BundleName  *string               `yaml:"bundle_name"`
	Target      *string               `yaml:"target"`
	Typescript  *bool                 `yaml:"typescript"`
	WorkerLib   *string               `yaml:"worker_lib"`
	WasmOpt     *bool                 `yaml:"wasm_opt"`
	Install     *string               `yaml:"install"`
	Externals   []string              `yaml:"externals"`
	CargoArgs   []string              `yaml:"cargo_args"`
	BindgenArgs []string              `yaml:"bindgen_args"`
	Template    *string               `yaml:"template"`
	Profiles    map[string]ProfileDTO `yaml:"profiles"`
}

// ProfileDTO represents per-profile overrides in the configuration.
type ProfileDTO struct {
	DebugJSGlue           *bool    `yaml:"debug_js_glue"`
	Demangle              *bool    `yaml:"demangle"`
	DWARF                 *bool    `yaml:"dwarf"`
	OmitDefaultModulePath *bool    `yaml:"omit_default_module_path"`
	SplitLinkedModules    *bool    `yaml:"split_linked_modules"`
	WasmOptArgs           []string `yaml:"wasm_opt_args"`
}
