package parse

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"shallow-debug/internal/common"
	"shallow-debug/internal/decl"
)

// DefaultDeriveName is the derive attribute that marks a declaration for generation.
const DefaultDeriveName = "ShallowDebug"

// Tree-sitter node kinds used by the parser.
const (
	kindStruct        = "struct_item"
	kindEnum          = "enum_item"
	kindUnion         = "union_item"
	kindMod           = "mod_item"
	kindAttribute     = "attribute_item"
	kindInnerAttr     = "inner_attribute_item"
	kindLineComment   = "line_comment"
	kindBlockComment  = "block_comment"
	kindNamedFields   = "field_declaration_list"
	kindOrderedFields = "ordered_field_declaration_list"
	kindVariant       = "enum_variant"
	kindWhereClause   = "where_clause"
	kindWherePred     = "where_predicate"
	kindError         = "ERROR"
)

// Parser extracts type declarations from Rust source text.
// A Parser holds no parse state and is safe for concurrent use.
type Parser struct {
	deriveNames []string
}

// NewParser creates a Parser that recognises the given derive names in
// #[derive(...)] attributes. With no names, DefaultDeriveName is used.
func NewParser(deriveNames ...string) *Parser {
	if common.IsEmpty(deriveNames) {
		deriveNames = []string{DefaultDeriveName}
	}

	return &Parser{deriveNames: deriveNames}
}

// DeriveNames returns the derive names the parser recognises.
func (p *Parser) DeriveNames() []string {
	return append([]string(nil), p.deriveNames...)
}

// Declaration parses src as exactly one struct, enum or union item.
// Attributes, visibility and comments around the item are allowed.
func (p *Parser) Declaration(ctx context.Context, src []byte) (*decl.TypeDeclaration, error) {
	var out *decl.TypeDeclaration

	err := withTree(ctx, src, func(root *sitter.Node) error {
		var (
			items []*sitter.Node
			attrs []string
		)

		for i := 0; i < int(root.NamedChildCount()); i++ {
			child := root.NamedChild(i)
			if child.Type() == kindAttribute && common.IsEmpty(items) {
				attrs = append(attrs, child.Content(src))
			}

			if isTrivia(child) {
				continue
			}

			items = append(items, child)
		}

		item, ok := common.First(items)
		if !ok {
			return malformed(decl.Pos{}, "no type declaration found")
		}

		if common.IsMultiple(items) {
			return malformed(position(items[1]), "expected a single declaration, found %d items", len(items))
		}

		d, err := parseItem(item, src)
		if err != nil {
			return err
		}

		d.Cfg = cfgAttrs(attrs)
		out = d

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GatedItem is an item whose derive only applies under #[cfg_attr(..)].
// Such items are not generated.
type GatedItem struct {
	Path   string // Type path relative to the file's root module
	Derive string // The recognised derive name as written
	Pos    decl.Pos
}

// FileScan is the result of scanning one source file.
type FileScan struct {
	// Declarations are the annotated items in source order.
	Declarations []decl.TypeDeclaration
	// Gated are items skipped because their derive sits inside cfg_attr.
	Gated []GatedItem
}

// File parses a whole Rust source file and returns every struct, enum and
// union item carrying a recognised derive, in source order. Items inside
// inline modules are included.
func (p *Parser) File(ctx context.Context, src []byte) ([]decl.TypeDeclaration, error) {
	scan, err := p.Scan(ctx, src)
	if err != nil {
		return nil, err
	}

	return scan.Declarations, nil
}

// Scan is File that also reports items whose derive is conditional.
func (p *Parser) Scan(ctx context.Context, src []byte) (*FileScan, error) {
	out := &FileScan{}

	err := withTree(ctx, src, func(root *sitter.Node) error {
		return p.collect(root, src, nil, nil, out)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// collect walks the items of a source_file or declaration_list. module is
// the path of inline modules enclosing list, cfg the #[cfg(..)] attributes
// of those modules.
func (p *Parser) collect(list *sitter.Node, src []byte, module, cfg []string, out *FileScan) error {
	var attrs []string

	for i := 0; i < int(list.NamedChildCount()); i++ {
		child := list.NamedChild(i)

		switch child.Type() {
		case kindLineComment, kindBlockComment, kindInnerAttr:
			continue

		case kindAttribute:
			attrs = append(attrs, child.Content(src))
			continue

		case kindStruct, kindEnum, kindUnion:
			if hasDerive(attrs, p.deriveNames) {
				d, err := parseItem(child, src)
				if err != nil {
					return err
				}

				d.Module = module
				d.Cfg = append(slices.Clip(cfg), cfgAttrs(attrs)...)
				out.Declarations = append(out.Declarations, *d)
			} else if name, ok := conditionalDerive(attrs, p.deriveNames); ok {
				path := text(child.ChildByFieldName("name"), src)
				if !common.IsEmpty(module) {
					path = strings.Join(module, "::") + "::" + path
				}

				out.Gated = append(out.Gated, GatedItem{Path: path, Derive: name, Pos: position(child)})
			}

		case kindMod:
			name := child.ChildByFieldName("name")
			body := child.ChildByFieldName("body")

			if name != nil && body != nil {
				inner := append(slices.Clip(module), name.Content(src))
				innerCfg := append(slices.Clip(cfg), cfgAttrs(attrs)...)

				if err := p.collect(body, src, inner, innerCfg, out); err != nil {
					return err
				}
			}
		}

		attrs = attrs[:0]
	}

	return nil
}

// withTree parses src and hands the root node to fn. Syntax errors are
// reported before fn runs.
func withTree(ctx context.Context, src []byte, fn func(root *sitter.Node) error) error {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("parsing rust source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root, src); bad != nil {
			if bad.IsMissing() {
				return malformed(position(bad), "missing %s", bad.Type())
			}

			return malformed(position(bad), "unexpected %q", common.SquashSpace(bad.Content(src)))
		}
	}

	return fn(root)
}

// firstError returns the first ERROR or missing node in document order,
// skipping the error nodes accepted by grammarGap.
func firstError(n *sitter.Node, src []byte) *sitter.Node {
	if n.Type() == kindError || n.IsMissing() {
		return n
	}

	var prevNamed string

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		if (child.HasError() || child.IsMissing()) && !grammarGap(n, prevNamed, child, src) {
			if bad := firstError(child, src); bad != nil {
				return bad
			}
		}

		if child.IsNamed() {
			prevNamed = child.Type()
		}
	}

	return nil
}

// grammarGap reports whether the ERROR node n is valid Rust the bundled
// grammar does not know:
//
//	struct S<const N: usize = 3>;   // "= 3" follows the const_parameter
//	struct S<T> where T: Copy;      // where_clause of a unit struct
//
// prevNamed is the kind of the named sibling before n.
func grammarGap(parent *sitter.Node, prevNamed string, n *sitter.Node, src []byte) bool {
	if n.Type() != kindError {
		return false
	}

	switch parent.Type() {
	case kindTypeParams:
		return prevNamed == kindConstParam && constDefault(n, src) != ""

	case kindStruct:
		if parent.ChildByFieldName("body") != nil || n.NamedChildCount() != 1 {
			return false
		}

		where := n.NamedChild(0)

		return where.Type() == kindWhereClause && !where.HasError() &&
			strings.HasPrefix(strings.TrimSpace(n.Content(src)), "where")

	default:
		return false
	}
}

// constDefault returns the default value of an ERROR node reading "= value",
// or "" when n has another form.
func constDefault(n *sitter.Node, src []byte) string {
	rest, ok := strings.CutPrefix(strings.TrimSpace(n.Content(src)), "=")
	if !ok {
		return ""
	}

	return common.SquashSpace(rest)
}

func isTrivia(n *sitter.Node) bool {
	switch n.Type() {
	case kindAttribute, kindInnerAttr, kindLineComment, kindBlockComment:
		return true
	default:
		return false
	}
}

func position(n *sitter.Node) decl.Pos {
	pt := n.StartPoint()

	return decl.Pos{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
}

// parseItem converts a struct_item, enum_item or union_item node.
func parseItem(item *sitter.Node, src []byte) (*decl.TypeDeclaration, error) {
	nameNode := item.ChildByFieldName("name")
	if nameNode == nil {
		return nil, malformed(position(item), "%s has no name", item.Type())
	}

	d := &decl.TypeDeclaration{
		Name: nameNode.Content(src),
		Pos:  position(item),
	}

	if params := item.ChildByFieldName("type_parameters"); params != nil {
		generics, err := parseGenerics(params, src)
		if err != nil {
			return nil, err
		}

		d.Generics = generics
	}

	for i := 0; i < int(item.NamedChildCount()); i++ {
		child := item.NamedChild(i)

		switch child.Type() {
		case kindWhereClause:
			d.Where = append(d.Where, parseWhere(child, src)...)

		case kindError:
			// Unit struct where clause, accepted by grammarGap.
			if child.NamedChildCount() == 1 && child.NamedChild(0).Type() == kindWhereClause {
				d.Where = append(d.Where, parseWhere(child.NamedChild(0), src)...)
			}
		}
	}

	switch item.Type() {
	case kindStruct:
		d.Shape = decl.StructShape{Fields: fieldKind(item.ChildByFieldName("body"))}

	case kindUnion:
		d.Shape = decl.UnionShape{}

	case kindEnum:
		shape, err := parseEnum(item, src)
		if err != nil {
			return nil, err
		}

		d.Shape = shape

	default:
		return nil, malformed(position(item), "expected a struct, enum or union item, found %s", item.Type())
	}

	return d, nil
}

func parseEnum(item *sitter.Node, src []byte) (decl.EnumShape, error) {
	var shape decl.EnumShape

	body := item.ChildByFieldName("body")
	if body == nil {
		return shape, malformed(position(item), "enum %s has no variant list", item.ChildByFieldName("name").Content(src))
	}

	var attrs []string

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)

		if child.Type() == kindAttribute {
			attrs = append(attrs, child.Content(src))
			continue
		}

		if child.Type() != kindVariant {
			continue
		}

		name := child.ChildByFieldName("name")
		if name == nil {
			return shape, malformed(position(child), "enum variant has no name")
		}

		shape.Variants = append(shape.Variants, decl.Variant{
			Name:   name.Content(src),
			Fields: fieldKind(child.ChildByFieldName("body")),
			Cfg:    cfgAttrs(attrs),
		})

		attrs = attrs[:0]
	}

	return shape, nil
}

// fieldKind classifies a struct or variant body node. A nil body is a unit.
func fieldKind(body *sitter.Node) decl.FieldKind {
	if body == nil {
		return decl.FieldsUnit
	}

	switch body.Type() {
	case kindNamedFields:
		return decl.FieldsNamed
	case kindOrderedFields:
		return decl.FieldsUnnamed
	default:
		return decl.FieldsUnit
	}
}

func parseWhere(clause *sitter.Node, src []byte) []decl.WherePredicate {
	var preds []decl.WherePredicate

	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		if child.Type() != kindWherePred {
			continue
		}

		preds = append(preds, decl.WherePredicate(common.SquashSpace(child.Content(src))))
	}

	return preds
}
