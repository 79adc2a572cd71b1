// Package api holds the symbol table that the extractor builds from annotated
// source and the declaration encoders render.
package api

import "strings"

// PrivatePrefix marks backing fields, private methods and private types.
const PrivatePrefix = "_"

// OptionsBagName is the parameter name given to an options bag.
const OptionsBagName = "args"

type Kind string

const (
	KindMethod      Kind = "method"
	KindProperty    Kind = "property"
	KindSymbol      Kind = "symbol"
	KindFunction    Kind = "function"
	KindConstant    Kind = "constant"
	KindConstructor Kind = "constructor"
	// KindOpaque is a documented declaration whose shape was not recognised.
	// It is kept for outlines and never emitted as a declaration.
	KindOpaque Kind = "opaque"
)

// Nullability is the modifier attached to an annotated type.
type Nullability int

const (
	NotNull Nullability = iota
	Nullable
	// NullResettable accepts null on write but never yields it on read.
	NullResettable
)

// Optional reports whether a parameter with this modifier may be omitted.
func (n Nullability) Optional() bool {
	return n != NotNull
}

// Nullable reports whether a value with this modifier may be undefined.
func (n Nullability) Nullable() bool {
	return n == Nullable
}

func (n Nullability) String() string {
	switch n {
	case Nullable:
		return "nullable"
	case NullResettable:
		return "nullResettable"
	default:
		return ""
	}
}

// Access is the outcome of resolving a property's getter/setter pair.
type Access int

const (
	ReadWrite Access = iota
	ReadOnly
	WriteOnly
	PrivateOnly
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "readonly"
	case WriteOnly:
		return "writeonly"
	case PrivateOnly:
		return "private"
	default:
		return "readwrite"
	}
}

type Param struct {
	Name        string
	Type        string
	Nullability Nullability
	Description string
}

// IsRest reports whether the parameter collects the remaining arguments.
func (p Param) IsRest() bool {
	return strings.HasPrefix(p.Name, "...")
}

type Return struct {
	Type        string
	Nullability Nullability
	Description string
}

type Member struct {
	Kind     Kind
	Name     string
	LinkID   string
	Line     int
	Category string

	IsPrivate bool
	IsStatic  bool
	IsAsync   bool
	IsConst   bool
	// Optional marks interface methods that implementations may omit.
	Optional bool

	// Type is the raw annotation type; the encoders translate it.
	Type        string
	Nullability Nullability

	Arguments           []Param
	ArgumentsObject     []Param
	// ArgumentsObjectName names the options bag parameter.
	ArgumentsObjectName string
	Return              *Return

	Doc string

	Read   bool
	Write  bool
	Access Access
}

// IsPrivateName reports whether name carries the private-marker prefix.
func IsPrivateName(name string) bool {
	return strings.HasPrefix(name, PrivatePrefix)
}
