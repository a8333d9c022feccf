// Package decl describes the static shape of a Rust type declaration.
//
// The model is deliberately narrow: it records names, generic parameters and
// the kind of every field grouping, but never field names or field types.
//
// Key types:
//   - TypeDeclaration: name, generic parameters, where predicates and shape
//   - GenericParam: LifetimeParam, TypeParam or ConstParam
//   - Shape: StructShape, EnumShape or UnionShape
//   - FieldKind: named, unnamed (positional) or unit
package decl
