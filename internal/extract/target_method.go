package extract

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"jwright/internal/model"
)

// TargetMethodExtractor (order 500) opens the impl file, resolves which
// method the test actually exercises, and records its signature and
// current body.
//
// Method resolution is heuristic-first (scan the test body for calls on an
// instance whose declared type matches the impl class, skipping a denylist
// of framework calls) and falls back to the request's explicit
// TargetMethod only when the heuristic finds nothing — per the resolved
// Open Question that the heuristic wins on disagreement.
type TargetMethodExtractor struct{}

func (TargetMethodExtractor) ID() string { return "target-method" }
func (TargetMethodExtractor) Order() int { return 500 }
func (TargetMethodExtractor) Supports(req *model.ExtractionRequest) bool {
	return req.ImplSourcePath != ""
}

var frameworkDenylist = map[string]bool{
	"when": true, "thenReturn": true, "verify": true, "mock": true, "spy": true,
}

func isFrameworkCall(name string) bool {
	if frameworkDenylist[name] {
		return true
	}
	return strings.HasPrefix(name, "assert")
}

func (TargetMethodExtractor) Extract(req *model.ExtractionRequest, b *Builder) error {
	implFile, err := b.implParsed(req.ImplSourcePath)
	if err != nil {
		return err
	}

	implClassName := strings.TrimSuffix(filepath.Base(req.ImplSourcePath), ".java")

	target := heuristicTargetMethod(b, implClassName)
	if target == "" {
		target = req.TargetMethod
	}
	if target == "" {
		return nil // nothing to resolve the target method from
	}

	method := findMethodDeclaration(implFile, target)
	if method == nil {
		return nil
	}

	sig := methodSignature(implFile, method)
	b.SetTargetSignature(sig)

	if body := childByType(method, "block"); body != nil {
		b.SetCurrentImpl(implFile.text(body))
	}
	return nil
}

// heuristicTargetMethod scans the cached test method node for an
// invocation on a local variable typed as implClassName, skipping
// framework calls, and returns the first such method name found.
func heuristicTargetMethod(b *Builder, implClassName string) string {
	method := b.TestMethodNode()
	if method == nil || implClassName == "" {
		return ""
	}
	f := b.TestFile()

	instanceVars := map[string]bool{}
	walk(method, func(n *sitter.Node) bool {
		if n.Type() != "local_variable_declaration" {
			return true
		}
		typeNode := firstNonModifierChild(n)
		if typeNode == nil || f.text(typeNode) != implClassName {
			return true
		}
		for _, d := range childrenByType(n, "variable_declarator") {
			if id := childByType(d, "identifier"); id != nil {
				instanceVars[f.text(id)] = true
			}
		}
		return true
	})
	if len(instanceVars) == 0 {
		return ""
	}

	found := ""
	walk(method, func(n *sitter.Node) bool {
		if found != "" {
			return false
		}
		if n.Type() != "method_invocation" {
			return true
		}
		name := invocationName(f, n)
		if isFrameworkCall(name) {
			return true
		}
		receiver, _ := splitReceiverCall(f, n)
		if instanceVars[receiver] {
			found = name
			return false
		}
		return true
	})
	return found
}

func firstNonModifierChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "identifier", "type_identifier", "scoped_type_identifier", "generic_type", "array_type",
			"integral_type", "floating_point_type", "boolean_type", "void_type":
			return c
		}
	}
	return nil
}

func methodSignature(f *parsedFile, method *sitter.Node) model.MethodSignature {
	sig := model.MethodSignature{}
	if id := childByType(method, "identifier"); id != nil {
		sig.Name = f.text(id)
	}
	if ret := firstNonModifierChild(method); ret != nil {
		sig.ReturnType = f.text(ret)
	} else {
		sig.ReturnType = "void"
	}
	params := childByType(method, "formal_parameters")
	for _, p := range childrenByType(params, "formal_parameter") {
		param := model.Parameter{}
		if t := firstNonModifierChild(p); t != nil {
			param.Type = f.text(t)
		}
		if id := childByType(p, "identifier"); id != nil {
			param.Name = f.text(id)
		}
		sig.Parameters = append(sig.Parameters, param)
	}
	return sig
}

var _ Extractor = TargetMethodExtractor{}
