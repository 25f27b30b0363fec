package parsers

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// javaParser finds Java method declarations.
type javaParser struct {
	language *sitter.Language
}

// NewJavaParser creates a new Java parser.
func NewJavaParser() *javaParser {
	return &javaParser{
		language: sitter.NewLanguage(java.Language()),
	}
}

func (p *javaParser) Language() string {
	return "java"
}

func (p *javaParser) Extensions() []string {
	return []string{".java"}
}

// Parse returns the method declarations of a Java source file. Constructors
// and initializer blocks are not methods and are not reported.
func (p *javaParser) Parse(ctx context.Context, source []byte) ([]MethodDecl, error) {
	tree := parseSource(p.language, source)
	if tree == nil {
		return nil, nil // unparseable file contributes nothing
	}
	defer tree.Close()

	var decls []MethodDecl
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Kind() == "method_declaration" {
			if d, ok := p.declFromNode(n, source); ok {
				decls = append(decls, d)
			}
			return false
		}
		return true
	})
	return decls, nil
}

// declFromNode converts a method_declaration node into a MethodDecl.
func (p *javaParser) declFromNode(node *sitter.Node, source []byte) (MethodDecl, bool) {
	nameNode := node.ChildByFieldName("name")
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

	// The modifiers node holds keywords and annotations; keep the keywords.
	if modsNode := findChildByType(node, "modifiers"); modsNode != nil {
		for i := 0; i < int(modsNode.ChildCount()); i++ {
			child := modsNode.Child(uint(i))
			switch child.Kind() {
			case "marker_annotation", "annotation":
				continue
			}
			d.Modifiers = append(d.Modifiers, extractNodeText(child, source))
		}
	}

	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		for i := 0; i < int(paramsNode.ChildCount()); i++ {
			child := paramsNode.Child(uint(i))
			switch child.Kind() {
			case "formal_parameter", "spread_parameter":
				if typeNode := child.ChildByFieldName("type"); typeNode != nil {
					d.ParamTypes = append(d.ParamTypes, extractNodeText(typeNode, source))
				}
			}
		}
	}

	return d, true
}
