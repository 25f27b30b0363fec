package parsers

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// typeScriptParser finds TypeScript class methods and top-level functions.
type typeScriptParser struct {
	language *sitter.Language
}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() *typeScriptParser {
	return &typeScriptParser{
		language: sitter.NewLanguage(typescript.LanguageTypescript()),
	}
}

func (p *typeScriptParser) Language() string {
	return "typescript"
}

func (p *typeScriptParser) Extensions() []string {
	return []string{".ts"}
}

// Parse returns method and function declarations of a TypeScript source file.
func (p *typeScriptParser) Parse(ctx context.Context, source []byte) ([]MethodDecl, error) {
	tree := parseSource(p.language, source)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	var decls []MethodDecl
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "method_definition", "function_declaration":
			if d, ok := p.declFromNode(n, source); ok {
				decls = append(decls, d)
			}
			return false
		}
		return true
	})
	return decls, nil
}

// tsModifierKinds are the method_definition children recorded as modifiers.
var tsModifierKinds = map[string]bool{
	"accessibility_modifier": true,
	"static":                 true,
	"async":                  true,
	"readonly":               true,
	"override_modifier":      true,
}

// declFromNode converts a method_definition or function_declaration node into
// a MethodDecl.
func (p *typeScriptParser) declFromNode(node *sitter.Node, source []byte) (MethodDecl, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return MethodDecl{}, false
	}

	d := MethodDecl{
		Name:      extractNodeText(nameNode, source),
		StartLine: int(node.StartPosition().Row) + 1,
	}

	// return_type is a type_annotation node; drop its leading ": ".
	if typeNode := node.ChildByFieldName("return_type"); typeNode != nil {
		d.ReturnType = strings.TrimSpace(strings.TrimPrefix(extractNodeText(typeNode, source), ":"))
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if tsModifierKinds[child.Kind()] {
			d.Modifiers = append(d.Modifiers, extractNodeText(child, source))
		}
	}

	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		for i := 0; i < int(paramsNode.ChildCount()); i++ {
			child := paramsNode.Child(uint(i))
			switch child.Kind() {
			case "required_parameter", "optional_parameter":
				if typeNode := child.ChildByFieldName("type"); typeNode != nil {
					paramType := strings.TrimSpace(strings.TrimPrefix(extractNodeText(typeNode, source), ":"))
					d.ParamTypes = append(d.ParamTypes, paramType)
				}
			}
		}
	}

	return d, true
}
