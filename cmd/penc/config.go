package main

import (
	"os"
	"path/filepath"

	"github.com/lucid-lang/lucidc/internal/config"
	"github.com/lucid-lang/lucidc/internal/iface"
)

// loadPackageConfig reads "package.yaml" from dir.
func loadPackageConfig(dir string) (*config.PackageConfiguration, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.yaml"))
	if err != nil {
		return nil, err
	}
	return config.LoadPackageConfiguration(data)
}

// loadCompileConfig reads the prelude-name map from path.
func loadCompileConfig(path string) (*config.CompileConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.LoadCompileConfiguration(data)
}

// loadPreludeInterfaces reads every "*.json" file in dir as a compiled
// interface. The driver takes this directory explicitly rather than
// inferring it from package.yaml's dependencies: a package's prelude
// is a build-time choice of the invoking command, not a fact
// recoverable from the package's own manifest (see DESIGN.md).
func loadPreludeInterfaces(dir string) ([]*iface.Interface, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []*iface.Interface
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		ifc, err := iface.Unmarshal(data)
		if err != nil {
			return nil, err
		}
		out = append(out, ifc)
	}
	return out, nil
}
