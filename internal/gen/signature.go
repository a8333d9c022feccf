package gen

import (
	"fmt"
	"strings"

	"shallow-debug/internal/decl"
)

// signatureData is the generic signature of one impl.
type signatureData struct {
	// Params is the impl parameter list including angle brackets, or empty.
	Params string
	// Args is the target argument list including angle brackets, or empty.
	Args string
	// Predicates make up the where clause. Empty means no where clause.
	Predicates []string
}

// buildSignature reconstructs the generic signature of d. Each parameter
// contributes a declaration, a bare argument and at most one predicate;
// the declaration never carries bounds.
func buildSignature(d *decl.TypeDeclaration) signatureData {
	var (
		params []string
		args   []string
		preds  []string
	)

	for _, g := range d.Generics {
		args = append(args, g.Ident())

		switch p := g.(type) {
		case decl.LifetimeParam:
			params = append(params, p.Name)
			if len(p.Bounds) > 0 {
				preds = append(preds, predicate(p.Name, p.Bounds))
			}

		case decl.TypeParam:
			if p.Default != "" {
				params = append(params, p.Name+" = "+p.Default)
			} else {
				params = append(params, p.Name)
			}

			if len(p.Bounds) > 0 {
				preds = append(preds, predicate(p.Name, p.Bounds))
			}

		case decl.ConstParam:
			params = append(params, p.Declared())

		default:
			panic(fmt.Sprintf("gen: unhandled generic parameter %T", g))
		}
	}

	for _, w := range d.Where {
		preds = append(preds, string(w))
	}

	sig := signatureData{Predicates: preds}
	if len(params) > 0 {
		sig.Params = "<" + strings.Join(params, ", ") + ">"
		sig.Args = "<" + strings.Join(args, ", ") + ">"
	}

	return sig
}

func predicate(ident string, bounds []string) string {
	return ident + ": " + strings.Join(bounds, " + ")
}
