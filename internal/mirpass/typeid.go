// Package mirpass implements the MIR-level analyses run between
// lowering and reference-count insertion: free-variable analysis
// (environment inference) and variant-type collection.
package mirpass

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/lucid-lang/lucidc/internal/mir"
)

// TypeID renders a deterministic canonical textual form for an MIR
// type. Two equal types always render identically; this is the input
// to Hash below, not itself the specialization name.
func TypeID(t mir.Type) string {
	switch v := t.(type) {
	case mir.BooleanType:
		return "Boolean"
	case mir.ByteStringType:
		return "ByteString"
	case mir.NumberType:
		return "Number"
	case mir.NoneType:
		return "None"
	case mir.RecordType:
		return fmt.Sprintf("Record(%s)", v.Name)
	case mir.FunctionType:
		args := make([]string, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = TypeID(a)
		}
		return fmt.Sprintf("Function(%s;%s)", strings.Join(args, ","), TypeID(v.Result))
	case mir.VariantType:
		return "Variant"
	default:
		return fmt.Sprintf("<unknown %T>", t)
	}
}

// Hash reduces a TypeID string to a short, deterministic,
// non-cryptographic digest. It is never keyed, so identical input
// always produces identical output across builds and machines.
func Hash(id string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return fmt.Sprintf("%x", h.Sum64())
}

// ConcreteListName names the specialized list record carrying elements
// of the given element type id.
func ConcreteListName(elementTypeID string) string {
	return "_list_" + Hash(elementTypeID)
}

// ConcreteMapName names the specialized map record carrying the given
// key/value type ids.
func ConcreteMapName(keyTypeID, valueTypeID string) string {
	return "_map_" + Hash(keyTypeID) + "_" + Hash(valueTypeID)
}

// ConcreteFunctionName names the specialized closure record for a
// function type id.
func ConcreteFunctionName(functionTypeID string) string {
	return "_function_" + Hash(functionTypeID)
}

// DedupeTypeIDs returns ids with duplicates removed, sorted for
// deterministic iteration order downstream.
func DedupeTypeIDs(ids []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
