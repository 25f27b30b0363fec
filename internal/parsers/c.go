package parsers

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// cParser finds C function definitions. Declarations without a body (headers,
// prototypes) are skipped; the extraction pipeline needs a brace-delimited
// body to resolve.
type cParser struct {
	language *sitter.Language
}

// NewCParser creates a new C parser.
func NewCParser() *cParser {
	return &cParser{
		language: sitter.NewLanguage(c.Language()),
	}
}

func (p *cParser) Language() string {
	return "c"
}

func (p *cParser) Extensions() []string {
	return []string{".c", ".h"}
}

// Parse returns the function definitions of a C source file.
func (p *cParser) Parse(ctx context.Context, source []byte) ([]MethodDecl, error) {
	tree := parseSource(p.language, source)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	var decls []MethodDecl
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Kind() == "function_definition" {
			if d, ok := p.declFromNode(n, source); ok {
				decls = append(decls, d)
			}
			return false
		}
		return true
	})
	return decls, nil
}

// declFromNode converts a function_definition node into a MethodDecl.
func (p *cParser) declFromNode(node *sitter.Node, source []byte) (MethodDecl, bool) {
	declarator := functionDeclarator(node.ChildByFieldName("declarator"))
	if declarator == nil {
		return MethodDecl{}, false
	}

	nameNode := declarator.ChildByFieldName("declarator")
	for nameNode != nil && nameNode.Kind() != "identifier" {
		// pointer_declarator wraps the identifier for pointer returns
		nameNode = nameNode.ChildByFieldName("declarator")
	}
	if nameNode == nil {
		return MethodDecl{}, false
	}

	d := MethodDecl{
		Name:      extractNodeText(nameNode, source),
		StartLine: int(node.StartPosition().Row) + 1,
	}

	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		d.ReturnType = extractNodeText(typeNode, source)
	}

	// C has no access modifiers; record storage classes (static, inline).
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == "storage_class_specifier" {
			d.Modifiers = append(d.Modifiers, extractNodeText(child, source))
		}
	}

	if paramsNode := declarator.ChildByFieldName("parameters"); paramsNode != nil {
		for i := 0; i < int(paramsNode.ChildCount()); i++ {
			child := paramsNode.Child(uint(i))
			if child.Kind() == "parameter_declaration" {
				if typeNode := child.ChildByFieldName("type"); typeNode != nil {
					d.ParamTypes = append(d.ParamTypes, extractNodeText(typeNode, source))
				}
			}
		}
	}

	return d, true
}

// functionDeclarator unwraps pointer declarators down to the
// function_declarator carrying the name and parameter list.
func functionDeclarator(node *sitter.Node) *sitter.Node {
	for node != nil {
		if node.Kind() == "function_declarator" {
			return node
		}
		node = node.ChildByFieldName("declarator")
	}
	return nil
}
