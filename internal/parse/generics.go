package parse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"shallow-debug/internal/common"
	"shallow-debug/internal/decl"
)

// Generic parameter node kinds. Older grammars use lifetime, type_identifier
// and constrained/optional_type_parameter directly inside type_parameters;
// newer ones wrap them in lifetime_parameter and type_parameter.
const (
	kindTypeParams        = "type_parameters"
	kindLifetime          = "lifetime"
	kindLifetimeParam     = "lifetime_parameter"
	kindTypeIdent         = "type_identifier"
	kindTypeParam         = "type_parameter"
	kindConstrainedParam  = "constrained_type_parameter"
	kindOptionalTypeParam = "optional_type_parameter"
	kindConstParam        = "const_parameter"
	kindMetavariable      = "metavariable"
)

func parseGenerics(params *sitter.Node, src []byte) ([]decl.GenericParam, error) {
	var out []decl.GenericParam

	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)

		switch child.Type() {
		case kindAttribute, kindLineComment, kindBlockComment:
			continue

		case kindLifetime:
			out = append(out, decl.LifetimeParam{Name: child.Content(src)})

		case kindTypeIdent, kindMetavariable:
			out = append(out, decl.TypeParam{Name: child.Content(src)})

		case kindLifetimeParam:
			out = append(out, decl.LifetimeParam{
				Name:   text(child.ChildByFieldName("name"), src),
				Bounds: bounds(child.ChildByFieldName("bounds"), src),
			})

		case kindTypeParam:
			out = append(out, decl.TypeParam{
				Name:    text(child.ChildByFieldName("name"), src),
				Bounds:  bounds(child.ChildByFieldName("bounds"), src),
				Default: text(child.ChildByFieldName("default_type"), src),
			})

		case kindConstrainedParam:
			out = append(out, constrained(child, src))

		case kindOptionalTypeParam:
			param := decl.TypeParam{Default: text(child.ChildByFieldName("default_type"), src)}

			name := child.ChildByFieldName("name")
			if name != nil && name.Type() == kindConstrainedParam {
				if tp, ok := constrained(name, src).(decl.TypeParam); ok {
					param.Name = tp.Name
					param.Bounds = tp.Bounds
				}
			} else {
				param.Name = text(name, src)
			}

			out = append(out, param)

		case kindConstParam:
			out = append(out, decl.ConstParam{
				Name: text(child.ChildByFieldName("name"), src),
				Type: text(child.ChildByFieldName("type"), src),
			})

		case kindError:
			// "= value" after a const parameter, see grammarGap.
			if last := len(out) - 1; last >= 0 {
				if c, ok := out[last].(decl.ConstParam); ok {
					c.Default = constDefault(child, src)
					out[last] = c
				}
			}

		default:
			return nil, malformed(position(child), "unsupported generic parameter %q", common.SquashSpace(child.Content(src)))
		}
	}

	return out, nil
}

// constrained handles `'b: 'a` and `T: Clone + Send`.
func constrained(n *sitter.Node, src []byte) decl.GenericParam {
	left := n.ChildByFieldName("left")
	b := bounds(n.ChildByFieldName("bounds"), src)

	if left != nil && left.Type() == kindLifetime {
		return decl.LifetimeParam{Name: left.Content(src), Bounds: b}
	}

	return decl.TypeParam{Name: text(left, src), Bounds: b}
}

// bounds returns each bound of a trait_bounds node as squashed source text.
func bounds(n *sitter.Node, src []byte) []string {
	if n == nil {
		return nil
	}

	var out []string

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if isTrivia(child) {
			continue
		}

		out = append(out, common.SquashSpace(child.Content(src)))
	}

	return out
}

func text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}

	return common.SquashSpace(n.Content(src))
}
