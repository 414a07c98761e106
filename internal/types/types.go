// Package types defines the canonical type system for schemagen.
// C++ field types are mapped to a closed set of canonical kinds, and each kind
// carries one column type per supported database backend.
//
// The type table is:
//   - Closed: an unlisted source type is an error, never a fallback
//   - Exhaustive: every kind has a column type for every backend
//   - Spelling-based: lookup is by the declared type text, whitespace-normalized
package types

import (
	"regexp"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Kind - Canonical types
// -----------------------------------------------------------------------------

// Kind identifies a canonical column type.
type Kind int

const (
	Bool Kind = iota
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	String
	Blob
	Date
	Time
	Datetime
	Timestamp

	numKinds
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return table[k].Name
}

// -----------------------------------------------------------------------------
// TypeDef - Type definition
// -----------------------------------------------------------------------------

// TypeDef describes one canonical type.
type TypeDef struct {
	Kind      Kind       // Canonical kind
	Name      string     // Canonical name (e.g., "int32", "datetime")
	Spellings []string   // Accepted C++ spellings; the first is the preferred one
	SQLTypes  SQLTypeMap // Backend-specific column types
}

// SQLTypeMap holds backend-specific column type strings.
type SQLTypeMap struct {
	MySQL  string // MySQL-class type (e.g., "varchar(255)", "bigint")
	SQLite string // SQLite-class type (e.g., "text", "integer")
}

// CppType returns the preferred C++ spelling.
func (t *TypeDef) CppType() string {
	return t.Spellings[0]
}

// -----------------------------------------------------------------------------
// Type Table
// -----------------------------------------------------------------------------

// table is indexed by Kind. Backend strings are emitted verbatim, so changes
// here change generated schemas.
var table = [numKinds]*TypeDef{
	Bool: {
		Name:      "bool",
		Spellings: []string{"bool"},
		SQLTypes:  SQLTypeMap{MySQL: "boolean", SQLite: "integer"},
	},
	Int8: {
		Name:      "int8",
		Spellings: []string{"char", "int8_t", "std::int8_t"},
		SQLTypes:  SQLTypeMap{MySQL: "tinyint", SQLite: "text"},
	},
	Int16: {
		Name:      "int16",
		Spellings: []string{"short", "short int", "int16_t", "std::int16_t"},
		SQLTypes:  SQLTypeMap{MySQL: "smallint", SQLite: "integer"},
	},
	Int32: {
		Name:      "int32",
		Spellings: []string{"int", "int32_t", "std::int32_t"},
		SQLTypes:  SQLTypeMap{MySQL: "int", SQLite: "integer"},
	},
	Int64: {
		Name:      "int64",
		Spellings: []string{"long long", "long long int", "int64_t", "std::int64_t"},
		SQLTypes:  SQLTypeMap{MySQL: "bigint", SQLite: "integer"},
	},
	Float32: {
		Name:      "float32",
		Spellings: []string{"float"},
		SQLTypes:  SQLTypeMap{MySQL: "float", SQLite: "real"},
	},
	Float64: {
		Name:      "float64",
		Spellings: []string{"double"},
		SQLTypes:  SQLTypeMap{MySQL: "double", SQLite: "integer"},
	},
	String: {
		Name:      "string",
		Spellings: []string{"std::string"},
		SQLTypes:  SQLTypeMap{MySQL: "varchar(255)", SQLite: "text"},
	},
	Blob: {
		Name:      "blob",
		Spellings: []string{"sqlinq::Blob"},
		SQLTypes:  SQLTypeMap{MySQL: "blob", SQLite: "blob"},
	},
	Date: {
		Name:      "date",
		Spellings: []string{"sqlinq::Date"},
		SQLTypes:  SQLTypeMap{MySQL: "date", SQLite: "text"},
	},
	Time: {
		Name:      "time",
		Spellings: []string{"sqlinq::Time"},
		SQLTypes:  SQLTypeMap{MySQL: "time", SQLite: "text"},
	},
	Datetime: {
		Name:      "datetime",
		Spellings: []string{"sqlinq::Datetime"},
		SQLTypes:  SQLTypeMap{MySQL: "datetime", SQLite: "text"},
	},
	Timestamp: {
		Name:      "timestamp",
		Spellings: []string{"sqlinq::Timestamp"},
		SQLTypes:  SQLTypeMap{MySQL: "timestamp", SQLite: "integer"},
	},
}

// bySpelling indexes the table by every accepted spelling.
var bySpelling = make(map[string]*TypeDef)

func init() {
	for k := Kind(0); k < numKinds; k++ {
		t := table[k]
		if t == nil {
			panic("types: missing table entry for kind " + strconv.Itoa(int(k)))
		}
		t.Kind = k
		if t.Name == "" || len(t.Spellings) == 0 {
			panic("types: incomplete table entry for kind " + strconv.Itoa(int(k)))
		}
		if t.SQLTypes.MySQL == "" || t.SQLTypes.SQLite == "" {
			panic("types: missing backend type for " + t.Name)
		}
		for _, s := range t.Spellings {
			if _, exists := bySpelling[s]; exists {
				panic("types: spelling registered twice: " + s)
			}
			bySpelling[s] = t
		}
	}
}

// -----------------------------------------------------------------------------
// Lookup
// -----------------------------------------------------------------------------

var (
	spaceRun        = regexp.MustCompile(`\s+`)
	optionalPattern = regexp.MustCompile(`^std\s*::\s*optional\s*<\s*(.+?)\s*>$`)
)

// Normalize collapses runs of whitespace to a single space and trims the ends.
func Normalize(declared string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(declared), " ")
}

// Lookup returns the type definition for a declared C++ type.
// Returns nil if the spelling is not in the table.
func Lookup(declared string) *TypeDef {
	return bySpelling[Normalize(declared)]
}

// get returns the type definition for a kind, or nil if out of range.
func get(k Kind) *TypeDef {
	if k < 0 || k >= numKinds {
		return nil
	}
	return table[k]
}

// All returns every type definition in Kind order.
func All() []*TypeDef {
	out := make([]*TypeDef, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, get(k))
	}
	return out
}

// Spellings returns every accepted spelling in Kind order.
func Spellings() []string {
	var out []string
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, table[k].Spellings...)
	}
	return out
}

// Unwrap strips a std::optional<T> wrapper.
// It returns the inner type and true, or the normalized input and false.
func Unwrap(declared string) (string, bool) {
	n := Normalize(declared)
	if m := optionalPattern.FindStringSubmatch(n); m != nil {
		return m[1], true
	}
	return n, false
}
