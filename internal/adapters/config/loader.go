// Package config provides the loader for the optional wbuild.yaml project file.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads <root>/wbuild.yaml. A missing file yields domain.DefaultConfig.
func (l *Loader) Load(root string) (domain.Config, error) {
	path := filepath.Join(root, domain.ConfigFileName)

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the workspace root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Wbuildfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	cfg, err := l.toDomain(&file)
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) toDomain(file *Wbuildfile) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	setString(&cfg.OutDir, file.OutDir)
	setString(&cfg.OutName, file.OutName)
	setString(&cfg.BundleName, file.BundleName)
	setString(&cfg.Target, file.Target)
	setString(&cfg.WorkerLib, file.WorkerLib)
	setString(&cfg.Template, file.Template)
	if file.Typescript != nil {
		cfg.Typescript = *file.Typescript
	}
	if file.WasmOpt != nil {
		cfg.WasmOpt = *file.WasmOpt
	}

	if file.Install != nil {
		mode, err := domain.ParseInstallMode(*file.Install)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Install = mode
	}

	cfg.Externals = domain.DefaultExternals(cfg.OutName)
	if file.Externals != nil {
		cfg.Externals = slices.Clone(file.Externals)
		// Inlining the compiled module can never work, so keep it external.
		if glue := domain.WasmGlueImport(cfg.OutName); !slices.Contains(cfg.Externals, glue) {
			l.Logger.Warn("externals does not list " + glue + ", adding it")
			cfg.Externals = append(cfg.Externals, glue)
		}
	}

	cfg.CargoArgs = file.CargoArgs
	cfg.BindgenArgs = file.BindgenArgs

	// Aliases such as "debug" are stored under the canonical name SettingsFor looks up.
	for name, dto := range file.Profiles {
		profile, err := domain.ParseProfile(name)
		if err != nil {
			return domain.Config{}, err
		}
		key := profile.String()
		if _, ok := cfg.Profiles[key]; ok {
			dupErr := zerr.Wrap(domain.ErrInvalidProfile, "profile configured twice")
			return domain.Config{}, zerr.With(dupErr, "profile", key)
		}
		cfg.Profiles[key] = domain.ProfileOverrides{
			DebugJSGlue:           dto.DebugJSGlue,
			Demangle:              dto.Demangle,
			DWARF:                 dto.DWARF,
			OmitDefaultModulePath: dto.OmitDefaultModulePath,
			SplitLinkedModules:    dto.SplitLinkedModules,
			WasmOptArgs:           dto.WasmOptArgs,
		}
	}

	return cfg, nil
}

func setString(dst, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}
