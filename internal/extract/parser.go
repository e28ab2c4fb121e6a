package extract

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// parsedFile is a cached tree-sitter parse of one source file, shared by
// every extractor that touches it so a request only pays for one parse per
// file regardless of how many extractors are registered.
type parsedFile struct {
	path    string
	source  []byte
	tree    *sitter.Tree
	root    *sitter.Node
}

func parseJava(path string, source []byte) (*parsedFile, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, err
	}
	return &parsedFile{path: path, source: source, tree: tree, root: tree.RootNode()}, nil
}

func (f *parsedFile) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.source)
}

// childByType returns the first direct child of n whose Type() matches.
func childByType(n *sitter.Node, typ string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

// childrenByType returns every direct child of n whose Type() matches.
func childrenByType(n *sitter.Node, typ string) []*sitter.Node {
	var out []*sitter.Node
	if n == nil {
		return out
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == typ {
			out = append(out, c)
		}
	}
	return out
}

// walk visits every node in the subtree rooted at n, depth-first.
func walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

// findMethodDeclaration locates a method_declaration node by method name
// anywhere under root.
func findMethodDeclaration(f *parsedFile, name string) *sitter.Node {
	var found *sitter.Node
	walk(f.root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == "method_declaration" {
			if id := childByType(n, "identifier"); id != nil && f.text(id) == name {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// findClassDeclaration returns the first top-level class_declaration node.
func findClassDeclaration(f *parsedFile) *sitter.Node {
	var found *sitter.Node
	walk(f.root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == "class_declaration" {
			found = n
			return false
		}
		return true
	})
	return found
}
