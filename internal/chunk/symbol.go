package chunk

// declNode pairs a top-level declaration node with the symbol name
// extracted from it, if any.
type declNode struct {
	node *Node
	name string
}

// findDeclarations returns the root's direct children whose node type is one
// of the language's declaration types, with a name extracted for each.
// Declarations without an extractable name are kept with an empty name.
func findDeclarations(tree *Tree, config *LanguageConfig) []declNode {
	declTypes := make(map[string]bool)
	for _, t := range config.FunctionTypes {
		declTypes[t] = true
	}
	for _, t := range config.MethodTypes {
		declTypes[t] = true
	}
	for _, t := range config.ClassTypes {
		declTypes[t] = true
	}
	for _, t := range config.InterfaceTypes {
		declTypes[t] = true
	}
	for _, t := range config.TypeDefTypes {
		declTypes[t] = true
	}
	for _, t := range config.ConstantTypes {
		declTypes[t] = true
	}
	for _, t := range config.VariableTypes {
		declTypes[t] = true
	}

	var decls []declNode
	for _, top := range tree.Root.Children {
		if !declTypes[top.Type] {
			continue
		}
		name := extractName(top, tree.Source, tree.Language)
		decls = append(decls, declNode{node: top, name: name})
	}
	return decls
}

// extractName extracts the declared symbol's name using per-language rules
// for where the identifier sits in the declaration node.
func extractName(n *Node, source []byte, language string) string {
	switch language {
	case "go":
		return extractGoName(n, source)
	case "typescript", "tsx", "javascript", "jsx":
		return extractJSName(n, source)
	default:
		for _, child := range n.Children {
			if child.Type == "identifier" {
				return child.GetContent(source)
			}
		}
	}
	return ""
}

func extractGoName(n *Node, source []byte) string {
	switch n.Type {
	case "function_declaration":
		for _, child := range n.Children {
			if child.Type == "identifier" {
				return child.GetContent(source)
			}
		}
	case "method_declaration":
		for _, child := range n.Children {
			if child.Type == "field_identifier" {
				return child.GetContent(source)
			}
		}
	case "type_declaration":
		for _, child := range n.Children {
			if child.Type == "type_spec" {
				if id := child.FindChildByType("type_identifier"); id != nil {
					return id.GetContent(source)
				}
			}
		}
	case "const_declaration":
		for _, child := range n.Children {
			if child.Type == "const_spec" {
				if id := child.FindChildByType("identifier"); id != nil {
					return id.GetContent(source)
				}
			}
		}
	case "var_declaration":
		for _, child := range n.Children {
			if child.Type == "var_spec" {
				if id := child.FindChildByType("identifier"); id != nil {
					return id.GetContent(source)
				}
			}
		}
	}
	return ""
}

func extractJSName(n *Node, source []byte) string {
	if n.Type == "lexical_declaration" || n.Type == "variable_declaration" {
		for _, child := range n.Children {
			if child.Type == "variable_declarator" {
				if id := child.FindChildByType("identifier"); id != nil {
					return id.GetContent(source)
				}
			}
		}
		return ""
	}
	for _, child := range n.Children {
		if child.Type == "identifier" || child.Type == "type_identifier" {
			return child.GetContent(source)
		}
	}
	return ""
}
