package config

import (
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/lucid-lang/lucidc/internal/diag"
)

// LoadCompileConfiguration parses a YAML (or JSON, which is a YAML
// subset) document into a CompileConfiguration and rejects it unless
// every required field is present and non-empty.
func LoadCompileConfiguration(data []byte) (*CompileConfiguration, error) {
	var cfg CompileConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if field := firstEmptyStringField(reflect.ValueOf(cfg), ""); field != "" {
		return nil, &diag.CompileConfigurationNotProvidedError{Field: field}
	}
	return &cfg, nil
}

// firstEmptyStringField walks v's exported string fields (recursing
// into nested structs) and returns the dotted path of the first one
// still holding its zero value, or "" if none.
func firstEmptyStringField(v reflect.Value, prefix string) string {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		name := f.Name
		if prefix != "" {
			name = prefix + "." + name
		}
		switch fv.Kind() {
		case reflect.String:
			if fv.String() == "" {
				return name
			}
		case reflect.Struct:
			if found := firstEmptyStringField(fv, name); found != "" {
				return found
			}
		}
	}
	return ""
}

// LoadPackageConfiguration parses a package manifest document. Unlike
// CompileConfiguration, Dependencies may legitimately be empty (a leaf
// package with no dependencies), so only Type and SchemaVersion are
// required.
func LoadPackageConfiguration(data []byte) (*PackageConfiguration, error) {
	var cfg PackageConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.SchemaVersion == "" {
		return nil, &diag.CompileConfigurationNotProvidedError{Field: "SchemaVersion"}
	}
	if cfg.Type == "" {
		return nil, &diag.CompileConfigurationNotProvidedError{Field: "Type"}
	}
	return &cfg, nil
}
