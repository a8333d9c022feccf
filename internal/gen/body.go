package gen

import (
	"fmt"

	"shallow-debug/internal/decl"
)

// bodyData is the fmt body of one impl.
type bodyData struct {
	// Literal is set for structs and unions: a single fixed write.
	Literal string
	// Arms is set for enums with at least one variant.
	Arms []armData
	// Uninhabited is set for enums without variants.
	Uninhabited bool
}

// armData is one match arm of an enum body.
type armData struct {
	Cfg     []string
	Pattern string
	Literal string
}

// buildBody synthesizes the fmt body for a declaration's shape.
func buildBody(d *decl.TypeDeclaration) bodyData {
	switch s := d.Shape.(type) {
	case decl.StructShape:
		return bodyData{Literal: quote(Literal(d.Name, "", s.Fields))}

	case decl.UnionShape:
		return bodyData{Literal: quote(d.Name)}

	case decl.EnumShape:
		if len(s.Variants) == 0 {
			return bodyData{Uninhabited: true}
		}

		arms := make([]armData, 0, len(s.Variants))
		for _, v := range s.Variants {
			arms = append(arms, armData{
				Cfg:     v.Cfg,
				Pattern: pattern(v),
				Literal: quote(Literal(d.Name, v.Name, v.Fields)),
			})
		}

		return bodyData{Arms: arms}

	default:
		panic(fmt.Sprintf("gen: unhandled shape %T", d.Shape))
	}
}

// Literal returns the text printed for a type, or for one of its variants
// when variant is non-empty.
//
//	Literal("S", "", FieldsNamed)   == "S{..}"
//	Literal("E", "V", FieldsUnnamed) == "E::V(..)"
func Literal(name, variant string, kind decl.FieldKind) string {
	s := name
	if variant != "" {
		s += "::" + variant
	}

	switch kind {
	case decl.FieldsNamed:
		return s + "{..}"
	case decl.FieldsUnnamed:
		return s + "(..)"
	case decl.FieldsUnit:
		return s
	default:
		panic(fmt.Sprintf("gen: unhandled field kind %d", kind))
	}
}

// pattern matches a variant without binding any of its fields. Variants are
// addressed through Self so the impl works from any module.
func pattern(v decl.Variant) string {
	path := "Self::" + v.Name

	switch v.Fields {
	case decl.FieldsNamed:
		return path + " { .. }"
	case decl.FieldsUnnamed:
		return path + "(..)"
	case decl.FieldsUnit:
		return path
	default:
		panic(fmt.Sprintf("gen: unhandled field kind %d", v.Fields))
	}
}

// quote renders s as a Rust string literal. Rust identifiers never contain
// quotes or backslashes, so no escaping is needed.
func quote(s string) string {
	return `"` + s + `"`
}
