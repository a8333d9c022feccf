package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shallow-debug/internal/decl"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		variant string
		kind    decl.FieldKind
		want    string
	}{
		{name: "struct named", typ: "S", kind: decl.FieldsNamed, want: "S{..}"},
		{name: "struct unnamed", typ: "S", kind: decl.FieldsUnnamed, want: "S(..)"},
		{name: "struct unit", typ: "S", kind: decl.FieldsUnit, want: "S"},
		{name: "variant named", typ: "E", variant: "V", kind: decl.FieldsNamed, want: "E::V{..}"},
		{name: "variant unnamed", typ: "E", variant: "V", kind: decl.FieldsUnnamed, want: "E::V(..)"},
		{name: "variant unit", typ: "E", variant: "V", kind: decl.FieldsUnit, want: "E::V"},
		{name: "raw identifier", typ: "r#type", variant: "r#match", kind: decl.FieldsUnit, want: "r#type::r#match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.typ, tt.variant, tt.kind))
		})
	}
}

func TestLiteral_PanicsOnUnknownKind(t *testing.T) {
	assert.Panics(t, func() {
		Literal("S", "", decl.FieldKind(decl.FieldKindTotal))
	})
}

func TestBuildBody_Struct(t *testing.T) {
	body := buildBody(&decl.TypeDeclaration{Name: "Point", Shape: decl.StructShape{Fields: decl.FieldsNamed}})

	assert.Equal(t, bodyData{Literal: `"Point{..}"`}, body)
}

func TestBuildBody_UnionIgnoresFields(t *testing.T) {
	body := buildBody(&decl.TypeDeclaration{Name: "Bits", Shape: decl.UnionShape{}})

	assert.Equal(t, bodyData{Literal: `"Bits"`}, body)
}

func TestBuildBody_EnumArmsInDeclarationOrder(t *testing.T) {
	d := &decl.TypeDeclaration{
		Name: "E",
		Shape: decl.EnumShape{Variants: []decl.Variant{
			{Name: "V1", Fields: decl.FieldsUnit},
			{Name: "V2", Fields: decl.FieldsNamed},
			{Name: "V3", Fields: decl.FieldsUnnamed},
		}},
	}

	body := buildBody(d)

	assert.Empty(t, body.Literal)
	assert.False(t, body.Uninhabited)
	assert.Equal(t, []armData{
		{Pattern: "Self::V1", Literal: `"E::V1"`},
		{Pattern: "Self::V2 { .. }", Literal: `"E::V2{..}"`},
		{Pattern: "Self::V3(..)", Literal: `"E::V3(..)"`},
	}, body.Arms)
}

func TestBuildBody_EnumWithManyVariants(t *testing.T) {
	var variants []decl.Variant
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		variants = append(variants, decl.Variant{Name: name, Fields: decl.FieldsUnnamed})
	}

	body := buildBody(&decl.TypeDeclaration{Name: "Many", Shape: decl.EnumShape{Variants: variants}})

	assert.Len(t, body.Arms, len(variants))

	for i, arm := range body.Arms {
		assert.Equal(t, "Self::"+variants[i].Name+"(..)", arm.Pattern)
		assert.NotContains(t, arm.Pattern, "_")
	}
}

func TestBuildBody_EmptyEnum(t *testing.T) {
	body := buildBody(&decl.TypeDeclaration{Name: "Never", Shape: decl.EnumShape{}})

	assert.Equal(t, bodyData{Uninhabited: true}, body)
}
