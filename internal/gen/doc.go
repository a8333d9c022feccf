// Package gen emits shallow Debug implementations for Rust type declarations.
//
// Generation approach uses text/template over a small precomputed model, so
// the output is deterministic and needs no formatter pass.
//
// Codegen patterns:
//   - Struct: one fixed write of "Name{..}", "Name(..)" or "Name"
//   - Union: one fixed write of "Name"
//   - Enum: an exhaustive match on the variant with `{ .. }` and `(..)`
//     patterns, one arm per variant in declaration order
//   - Generics: parameters re-declared on the impl, bounds relocated into
//     the where clause, no Debug bound ever added
//   - cfg: item and module #[cfg(..)] attributes repeated on the impl,
//     variant ones on their match arm
package gen
