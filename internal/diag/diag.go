// Package diag carries the error-code taxonomy shared by every pass
// of the pipeline and the diagnostic rendering used by the log_error
// surface outside the core.
package diag

import (
	"fmt"

	"github.com/lucid-lang/lucidc/internal/position"
)

// Diagnostic is the common shape every pass error implements: a
// stable mnemonic code plus the human-readable message.
type Diagnostic interface {
	error
	Code() string
}

// ParseError is a lexing/parsing failure.
type ParseError struct {
	Pos      position.Pos
	Message  string
	Expected []string
}

func (e *ParseError) Code() string { return "AST001" }
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (expected %v)", e.Code(), e.Message, e.Expected)
}

// ParseIntegerError reports a malformed integer literal.
type ParseIntegerError struct{ Pos position.Pos }

func (e *ParseIntegerError) Code() string  { return "AST002" }
func (e *ParseIntegerError) Error() string { return fmt.Sprintf("%s: malformed integer literal", e.Code()) }

// ParseFloatError reports a malformed float literal.
type ParseFloatError struct{ Pos position.Pos }

func (e *ParseFloatError) Code() string  { return "AST003" }
func (e *ParseFloatError) Error() string { return fmt.Sprintf("%s: malformed float literal", e.Code()) }

// DuplicateFunctionNamesError reports a function-name collision within
// one module.
type DuplicateFunctionNamesError struct {
	Name       string
	First, Second position.Pos
}

func (e *DuplicateFunctionNamesError) Code() string { return "HIR001" }
func (e *DuplicateFunctionNamesError) Error() string {
	return fmt.Sprintf("%s: duplicate function name %q", e.Code(), e.Name)
}

// DuplicateTypeNamesError reports a type/alias-name collision.
type DuplicateTypeNamesError struct {
	Name          string
	First, Second position.Pos
}

func (e *DuplicateTypeNamesError) Code() string { return "HIR002" }
func (e *DuplicateTypeNamesError) Error() string {
	return fmt.Sprintf("%s: duplicate type name %q", e.Code(), e.Name)
}

// NameNotFoundError reports an unqualified import name missing from
// the imported interface.
type NameNotFoundError struct {
	Name string
	Pos  position.Pos
}

func (e *NameNotFoundError) Code() string  { return "HIR003" }
func (e *NameNotFoundError) Error() string { return fmt.Sprintf("%s: name not found: %s", e.Code(), e.Name) }

// TypeNotFoundError reports a dangling type reference.
type TypeNotFoundError struct {
	Name string
	Pos  position.Pos
}

func (e *TypeNotFoundError) Code() string  { return "HIR004" }
func (e *TypeNotFoundError) Error() string { return fmt.Sprintf("%s: type not found: %s", e.Code(), e.Name) }

// RecordNotFoundError reports a dangling record reference.
type RecordNotFoundError struct {
	Name string
	Pos  position.Pos
}

func (e *RecordNotFoundError) Code() string  { return "HIR005" }
func (e *RecordNotFoundError) Error() string { return fmt.Sprintf("%s: record not found: %s", e.Code(), e.Name) }

// TypesNotMatchedError reports a subsumption failure during checking.
type TypesNotMatchedError struct {
	LHSPos, RHSPos position.Pos
	LHS, RHS       fmt.Stringer
}

func (e *TypesNotMatchedError) Code() string { return "TYP001" }
func (e *TypesNotMatchedError) Error() string {
	return fmt.Sprintf("%s: type mismatch: %s is not a subtype of %s", e.Code(), e.LHS, e.RHS)
}

// TypeNotInferredError reports a type slot left empty after inference.
type TypeNotInferredError struct{ Pos position.Pos }

func (e *TypeNotInferredError) Code() string  { return "TYP002" }
func (e *TypeNotInferredError) Error() string { return fmt.Sprintf("%s: type not inferred", e.Code()) }

// FunctionExpectedError reports a non-function used in call position.
type FunctionExpectedError struct{ Pos position.Pos }

func (e *FunctionExpectedError) Code() string  { return "TYP003" }
func (e *FunctionExpectedError) Error() string { return fmt.Sprintf("%s: function expected", e.Code()) }

// RecordExpectedError reports a non-record used in record position.
type RecordExpectedError struct{ Pos position.Pos }

func (e *RecordExpectedError) Code() string  { return "TYP004" }
func (e *RecordExpectedError) Error() string { return fmt.Sprintf("%s: record expected", e.Code()) }

// ImpossibleRecordError reports a provably uninhabited record.
type ImpossibleRecordError struct {
	Name string
	Pos  position.Pos
}

func (e *ImpossibleRecordError) Code() string  { return "TYP005" }
func (e *ImpossibleRecordError) Error() string { return fmt.Sprintf("%s: impossible record: %s", e.Code(), e.Name) }

// MainFunctionNotFoundError and ContextTypeUndefinedError report the
// program-shape requirements of the synthetic main wrapper.
type MainFunctionNotFoundError struct{ Pos position.Pos }

func (e *MainFunctionNotFoundError) Code() string  { return "MIR001" }
func (e *MainFunctionNotFoundError) Error() string { return fmt.Sprintf("%s: main function not found", e.Code()) }

type ContextTypeUndefinedError struct{ Pos position.Pos }

func (e *ContextTypeUndefinedError) Code() string  { return "MIR002" }
func (e *ContextTypeUndefinedError) Error() string { return fmt.Sprintf("%s: context type alias undefined", e.Code()) }

// PackageNotFoundError, ModuleNotFoundError, PackageDependencyCycleError
// are resolver errors (internal/resolver).
type PackageNotFoundError struct{ Name string }

func (e *PackageNotFoundError) Code() string  { return "RES001" }
func (e *PackageNotFoundError) Error() string { return fmt.Sprintf("%s: package not found: %s", e.Code(), e.Name) }

type ModuleNotFoundError struct{ Path string }

func (e *ModuleNotFoundError) Code() string  { return "RES002" }
func (e *ModuleNotFoundError) Error() string { return fmt.Sprintf("%s: module not found: %s", e.Code(), e.Path) }

type PackageDependencyCycleError struct{ Cycle []string }

func (e *PackageDependencyCycleError) Code() string { return "RES003" }
func (e *PackageDependencyCycleError) Error() string {
	return fmt.Sprintf("%s: package dependency cycle: %v", e.Code(), e.Cycle)
}

// InvalidReferenceCountError reports an RC-insertion internal
// invariant failure. This always indicates a compiler bug, never a
// user error, and should be surfaced as fatal.
type InvalidReferenceCountError struct{ Names []string }

func (e *InvalidReferenceCountError) Code() string { return "RCI001" }
func (e *InvalidReferenceCountError) Error() string {
	return fmt.Sprintf("%s: invalid reference count for %v (compiler bug)", e.Code(), e.Names)
}

// CompileConfigurationNotProvidedError reports that the pipeline was
// invoked without a complete CompileConfiguration.
type CompileConfigurationNotProvidedError struct{ Field string }

func (e *CompileConfigurationNotProvidedError) Code() string { return "CFG001" }
func (e *CompileConfigurationNotProvidedError) Error() string {
	return fmt.Sprintf("%s: compile configuration field not provided: %s", e.Code(), e.Field)
}
