package domain

// Config is the project configuration read from wbuild.yaml.
type Config struct {
	OutDir      string
	OutName     string
	BundleName  string
	Target      string
	Typescript  bool
	WorkerLib   string
	WasmOpt     bool
	Install     InstallMode
	Externals   []string
	CargoArgs   []string
	BindgenArgs []string
	Template    string
	Profiles    map[string]ProfileOverrides
}

// DefaultConfig returns the configuration used when wbuild.yaml is absent.
func DefaultConfig() Config {
	return Config{
		OutDir:     DefaultOutDir,
		OutName:    DefaultOutName,
		BundleName: DefaultBundleName,
		Target:     DefaultBindgenTarget,
		WorkerLib:  "worker",
		WasmOpt:    true,
		Install:    InstallNormal,
		Externals:  DefaultExternals(DefaultOutName),
		Template:   "https://github.com/cloudflare/workers-rs",
		Profiles:   map[string]ProfileOverrides{},
	}
}

// SettingsFor resolves the effective settings of a profile.
func (c Config) SettingsFor(p Profile) ProfileSettings {
	s := p.Settings()
	if o, ok := c.Profiles[p.String()]; ok {
		s = s.Apply(o)
	}
	if !c.WasmOpt {
		s.WasmOptArgs = nil
	}
	return s
}
