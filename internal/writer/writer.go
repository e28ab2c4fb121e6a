// Package writer implements the Backup Store (transaction.go) and the
// Code Writer: method-level AST surgery on a target Java source file.
package writer

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Mode selects how WriteRequest.Body is applied to the target file.
type Mode string

const (
	Inject Mode = "INJECT" // replace body of an existing method with a placeholder/empty body
	Replace Mode = "REPLACE" // replace body of an existing method unconditionally
	Append  Mode = "APPEND"  // add a new method to the class
	Create  Mode = "CREATE"  // write a new file containing a class with the method
)

// WriteRequest names the target file/class/method and the new body text.
type WriteRequest struct {
	Path       string
	ClassName  string
	MethodName string
	ReturnType string
	Params     string
	Body       string
	Mode       Mode
}

// WriteResult is returned, never raised: a structured success/failure.
type WriteResult struct {
	Success bool
	Error   string
}

// Write performs the requested surgery on req.Path.
func Write(req WriteRequest) WriteResult {
	switch req.Mode {
	case Create:
		return writeCreate(req)
	default:
		return writeExisting(req)
	}
}

func writeCreate(req WriteRequest) WriteResult {
	if _, err := os.Stat(req.Path); err == nil {
		return WriteResult{Error: fmt.Sprintf("CREATE target already exists: %s", req.Path)}
	}
	src := fmt.Sprintf("public class %s {\n    public %s %s(%s) {\n%s\n    }\n}\n",
		req.ClassName, req.ReturnType, req.MethodName, req.Params, indent(req.Body))
	if err := os.WriteFile(req.Path, []byte(src), 0644); err != nil {
		return WriteResult{Error: err.Error()}
	}
	return WriteResult{Success: true}
}

func writeExisting(req WriteRequest) WriteResult {
	source, err := os.ReadFile(req.Path)
	if err != nil {
		return WriteResult{Error: fmt.Sprintf("target file unreadable: %v", err)}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return WriteResult{Error: fmt.Sprintf("target file unparseable: %v", err)}
	}
	root := tree.RootNode()

	method := findMethod(root, source, req.MethodName)

	switch req.Mode {
	case Inject:
		if method == nil {
			return WriteResult{Error: fmt.Sprintf("INJECT requires an existing method %q", req.MethodName)}
		}
		if !hasPlaceholderBody(method, source) {
			return WriteResult{Error: fmt.Sprintf("INJECT target %q does not have a placeholder/empty body", req.MethodName)}
		}
		return applyBodyReplacement(req, source, method)
	case Replace:
		if method == nil {
			return WriteResult{Error: fmt.Sprintf("REPLACE requires an existing method %q", req.MethodName)}
		}
		return applyBodyReplacement(req, source, method)
	case Append:
		if method != nil {
			return WriteResult{Error: fmt.Sprintf("APPEND target already has a method named %q", req.MethodName)}
		}
		return applyAppend(req, source, root)
	default:
		return WriteResult{Error: fmt.Sprintf("unknown write mode %q", req.Mode)}
	}
}

func findMethod(root *sitter.Node, source []byte, name string) *sitter.Node {
	var found *sitter.Node
	var walkFn func(n *sitter.Node)
	walkFn = func(n *sitter.Node) {
		if n == nil || found != nil {
			return
		}
		if n.Type() == "method_declaration" {
			for i := 0; i < int(n.ChildCount()); i++ {
				c := n.Child(i)
				if c.Type() == "identifier" && c.Content(source) == name {
					found = n
					return
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walkFn(n.Child(i))
			if found != nil {
				return
			}
		}
	}
	walkFn(root)
	return found
}

func methodBlock(method *sitter.Node) *sitter.Node {
	for i := 0; i < int(method.ChildCount()); i++ {
		if c := method.Child(i); c.Type() == "block" {
			return c
		}
	}
	return nil
}

// hasPlaceholderBody treats an empty block, or a block whose only
// statement is `return <zero-value-literal>;`/`throw new
// UnsupportedOperationException(...)`, as a placeholder INJECT target.
func hasPlaceholderBody(method *sitter.Node, source []byte) bool {
	block := methodBlock(method)
	if block == nil {
		return false
	}
	body := block.Content(source)
	trimmed := stripBraces(body)
	if trimmed == "" {
		return true
	}
	switch trimmed {
	case "return 0;", "return null;", "return false;", "return 0.0;":
		return true
	}
	return containsPlaceholderMarker(trimmed)
}

func containsPlaceholderMarker(body string) bool {
	markers := []string{"TODO", "UnsupportedOperationException", "not yet implemented", "not implemented"}
	for _, m := range markers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}

func applyBodyReplacement(req WriteRequest, source []byte, method *sitter.Node) WriteResult {
	block := methodBlock(method)
	if block == nil {
		return WriteResult{Error: fmt.Sprintf("method %q has no body to replace", req.MethodName)}
	}
	start, end := block.StartByte(), block.EndByte()
	newBlock := "{\n" + indent(req.Body) + "\n    }"
	out := make([]byte, 0, len(source))
	out = append(out, source[:start]...)
	out = append(out, []byte(newBlock)...)
	out = append(out, source[end:]...)

	if err := os.WriteFile(req.Path, out, 0644); err != nil {
		return WriteResult{Error: err.Error()}
	}
	return WriteResult{Success: true}
}

func applyAppend(req WriteRequest, source []byte, root *sitter.Node) WriteResult {
	class := findClass(root)
	if class == nil {
		return WriteResult{Error: "no class declaration found to append method to"}
	}
	body := childOfType(class, "class_body")
	if body == nil {
		return WriteResult{Error: "class body not found"}
	}
	// insert just before the closing brace of the class body
	insertAt := int(body.EndByte()) - 1
	newMethod := fmt.Sprintf("\n    public %s %s(%s) {\n%s\n    }\n", req.ReturnType, req.MethodName, req.Params, indent(req.Body))

	out := make([]byte, 0, len(source)+len(newMethod))
	out = append(out, source[:insertAt]...)
	out = append(out, []byte(newMethod)...)
	out = append(out, source[insertAt:]...)

	if err := os.WriteFile(req.Path, out, 0644); err != nil {
		return WriteResult{Error: err.Error()}
	}
	return WriteResult{Success: true}
}

func findClass(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	var walkFn func(n *sitter.Node)
	walkFn = func(n *sitter.Node) {
		if n == nil || found != nil {
			return
		}
		if n.Type() == "class_declaration" {
			found = n
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walkFn(n.Child(i))
			if found != nil {
				return
			}
		}
	}
	walkFn(root)
	return found
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func indent(body string) string {
	return "        " + body
}

func stripBraces(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
