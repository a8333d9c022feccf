// Package parse turns Rust source text into decl.TypeDeclaration values.
//
// It uses tree-sitter with the Rust grammar as the declaration parser.
// Only the parts of a declaration the generator needs are extracted: the
// type name, the generic parameters with their bounds and defaults, the
// trailing where clause, and the kind of each field grouping.
//
// Entry points:
//   - Parser.Declaration: exactly one struct, enum or union item
//   - Parser.File: every item annotated with #[derive(ShallowDebug)]
//
// Any input that is not well formed yields a *MalformedDeclarationError.
package parse
