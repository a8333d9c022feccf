package decl

import (
	"fmt"
	"strings"

	"shallow-debug/internal/common"
)

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

// String returns "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TypeDeclaration is the subject of one generator invocation.
type TypeDeclaration struct {
	Name     string           // Type identifier, e.g. "MyEnum" or "r#type"
	Generics []GenericParam   // Generic parameters in declaration order
	Where    []WherePredicate // Trailing where clause predicates in declaration order
	Shape    Shape            // Struct, enum or union
	Module   []string         // Enclosing inline modules, outermost first
	Cfg      []string         // #[cfg(..)] attributes of the item and its modules
	Pos      Pos              // Position of the item keyword
}

// Path returns the type path relative to the file's root module, e.g.
// "inner::State" for an item inside `mod inner { .. }`.
func (d *TypeDeclaration) Path() string {
	if common.IsEmpty(d.Module) {
		return d.Name
	}

	return strings.Join(d.Module, "::") + "::" + d.Name
}

// HasGenerics reports whether the declaration has any generic parameter.
func (d *TypeDeclaration) HasGenerics() bool {
	return !common.IsEmpty(d.Generics)
}

// GenericParam is one entry of a generic parameter list.
// Implementations are LifetimeParam, TypeParam and ConstParam.
type GenericParam interface {
	// Ident returns the bare identifier used as a generic argument.
	Ident() string
	isGenericParam()
}

// LifetimeParam is a lifetime parameter such as 'a or 'b: 'a.
type LifetimeParam struct {
	Name   string   // Including the leading quote, e.g. "'a"
	Bounds []string // Outlives bounds, e.g. ["'a"]
}

// TypeParam is a type parameter such as T, T: Clone or T = u8.
type TypeParam struct {
	Name    string
	Bounds  []string // Raw bound texts, e.g. ["Clone", "Send"]
	Default string   // Raw default type text, empty when absent
}

// ConstParam is a const generic parameter such as const N: usize.
type ConstParam struct {
	Name    string
	Type    string
	Default string // Raw default value text, empty when absent
}

func (p LifetimeParam) Ident() string { return p.Name }
func (p TypeParam) Ident() string     { return p.Name }
func (p ConstParam) Ident() string    { return p.Name }

func (LifetimeParam) isGenericParam() {}
func (TypeParam) isGenericParam()     {}
func (ConstParam) isGenericParam()    {}

// Declared returns the const parameter as written in a parameter list.
func (p ConstParam) Declared() string {
	s := "const " + p.Name + ": " + p.Type
	if p.Default != "" {
		s += " = " + p.Default
	}

	return s
}

// WherePredicate is one predicate of a trailing where clause, kept verbatim.
type WherePredicate string

// Shape is the structural category of a declaration.
// Implementations are StructShape, EnumShape and UnionShape.
type Shape interface {
	// Keyword returns the Rust item keyword for the shape.
	Keyword() string
	isShape()
}

// StructShape is a struct with a single field grouping.
type StructShape struct {
	Fields FieldKind
}

// EnumShape is an enum with its variants in declaration order.
type EnumShape struct {
	Variants []Variant
}

// UnionShape is an untagged union. Its fields are never introspected.
type UnionShape struct{}

func (StructShape) Keyword() string { return "struct" }
func (EnumShape) Keyword() string   { return "enum" }
func (UnionShape) Keyword() string  { return "union" }

func (StructShape) isShape() {}
func (EnumShape) isShape()   {}
func (UnionShape) isShape()  {}

// Variant is one alternative of an enum.
type Variant struct {
	Name   string
	Fields FieldKind
	Cfg    []string // #[cfg(..)] attributes, re-emitted on the match arm
}

// FieldKind is the arrangement of a field grouping.
type FieldKind int

const (
	FieldsUnit    FieldKind = iota // no fields: `struct S;`, `V`
	FieldsNamed                    // `struct S { a: u8 }`, `V { a: u8 }`
	FieldsUnnamed                  // `struct S(u8);`, `V(u8)`

	// FieldKindTotal is the number of field kinds.
	FieldKindTotal = int(iota)
)

// String returns a human-readable field kind name.
func (k FieldKind) String() string {
	switch k {
	case FieldsUnit:
		return "unit"
	case FieldsNamed:
		return "named"
	case FieldsUnnamed:
		return "unnamed"
	default:
		return common.UnknownStr
	}
}

// Summary returns a one-line description such as "enum Foo<'a, T> (3 variants)".
func (d *TypeDeclaration) Summary() string {
	var sb strings.Builder

	sb.WriteString(d.Shape.Keyword())
	sb.WriteString(" ")
	sb.WriteString(d.Path())

	if d.HasGenerics() {
		idents := common.Map(d.Generics, GenericParam.Ident)
		sb.WriteString("<" + strings.Join(idents, ", ") + ">")
	}

	switch s := d.Shape.(type) {
	case StructShape:
		fmt.Fprintf(&sb, " (%s fields)", s.Fields)
	case EnumShape:
		fmt.Fprintf(&sb, " (%d variants)", len(s.Variants))
	case UnionShape:
	}

	return sb.String()
}
