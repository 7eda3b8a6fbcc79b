// Package config loads the two configuration documents the pipeline
// is parameterized by: the prelude-name map every compilation needs
// (CompileConfiguration, the error-type and prelude-function bindings)
// and the per-package manifest (PackageConfiguration, a package's type
// and its declared dependencies). Both use YAML/JSON tags and require
// their fields explicitly rather than defaulting silently.
package config

// ErrorTypeConfiguration names the record type the compiler treats as
// the platform Error type, and the debug-printing function prelude
// entries are checked against.
type ErrorTypeConfiguration struct {
	TypeName          string `yaml:"type_name" json:"type_name"`
	DebugFunctionName string `yaml:"debug_function_name" json:"debug_function_name"`
}

// CompileConfiguration is the required prelude-name map: every field
// must be present in the source document. A loader that finds one
// absent returns CompileConfigurationNotProvided rather than silently
// defaulting, since a missing prelude binding would otherwise fail
// deep inside lowering with no useful position.
type CompileConfiguration struct {
	ListEmptyFunction       string `yaml:"list_empty_function" json:"list_empty_function"`
	ListPrependFunction     string `yaml:"list_prepend_function" json:"list_prepend_function"`
	ListFirstFunction       string `yaml:"list_first_function" json:"list_first_function"`
	ListRestFunction        string `yaml:"list_rest_function" json:"list_rest_function"`
	ListDeconstructFunction string `yaml:"list_deconstruct_function" json:"list_deconstruct_function"`
	ListConcatenateFunction string `yaml:"list_concatenate_function" json:"list_concatenate_function"`
	ListEqualFunction       string `yaml:"list_equal_function" json:"list_equal_function"`
	ListSizeFunction        string `yaml:"list_size_function" json:"list_size_function"`
	ListMapFunction         string `yaml:"list_map_function" json:"list_map_function"`
	ListTypeIteration       string `yaml:"list_type_iteration" json:"list_type_iteration"`

	MapEmptyFunction   string `yaml:"map_empty_function" json:"map_empty_function"`
	MapInsertFunction  string `yaml:"map_insert_function" json:"map_insert_function"`
	MapGetFunction     string `yaml:"map_get_function" json:"map_get_function"`
	MapEqualFunction   string `yaml:"map_equal_function" json:"map_equal_function"`
	MapSizeFunction    string `yaml:"map_size_function" json:"map_size_function"`
	MapIterateFunction string `yaml:"map_iterate_function" json:"map_iterate_function"`
	MapKeysFunction    string `yaml:"map_keys_function" json:"map_keys_function"`
	MapValuesFunction  string `yaml:"map_values_function" json:"map_values_function"`
	MapDeleteFunction  string `yaml:"map_delete_function" json:"map_delete_function"`
	MapMergeFunction   string `yaml:"map_merge_function" json:"map_merge_function"`
	MapTypeIteration   string `yaml:"map_type_iteration" json:"map_type_iteration"`

	StringEqualFunction string `yaml:"string_equal_function" json:"string_equal_function"`

	ErrorType ErrorTypeConfiguration `yaml:"error_type" json:"error_type"`

	ContextTypeAlias string `yaml:"context_type_alias" json:"context_type_alias"`
	MainFunctionName string `yaml:"main_function_name" json:"main_function_name"`
}

// PackageType enumerates a package manifest's `type` field.
type PackageType string

const (
	Application PackageType = "application"
	Library     PackageType = "library"
	System      PackageType = "system"
)

// PackageConfiguration mirrors a package's manifest document: the
// package's own type and its declared dependencies, local name to
// URL.
type PackageConfiguration struct {
	SchemaVersion string            `yaml:"schema_version" json:"schema_version"`
	Type          PackageType       `yaml:"type" json:"type"`
	Dependencies  map[string]string `yaml:"dependencies" json:"dependencies"`
}
