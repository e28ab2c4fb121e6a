package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
	"jwright/internal/model"
)

// CollaboratorMethodExtractor (order 700) records the public method
// signatures of every variable whose declared type resolved to a sibling
// source file, keyed by that type name.
type CollaboratorMethodExtractor struct{}

func (CollaboratorMethodExtractor) ID() string { return "collaborator-method" }
func (CollaboratorMethodExtractor) Order() int { return 700 }
func (CollaboratorMethodExtractor) Supports(req *model.ExtractionRequest) bool {
	return req.SourceRoot != ""
}

func (CollaboratorMethodExtractor) Extract(req *model.ExtractionRequest, b *Builder) error {
	for typeName := range referencedTypes(b) {
		pf := resolveSiblingFile(req.SourceRoot, typeName)
		if pf == nil {
			continue
		}
		class := findClassDeclaration(pf)
		if class == nil {
			continue
		}
		body := childByType(class, "class_body")
		if body == nil {
			continue
		}
		var methods []model.MethodSignature
		for _, md := range childrenByType(body, "method_declaration") {
			if !isPublicMethod(pf, md) {
				continue
			}
			methods = append(methods, methodSignature(pf, md))
		}
		if len(methods) > 0 {
			b.AddAvailableMethods(typeName, methods)
		}
	}
	return nil
}

// isPublicMethod reports whether a method_declaration carries an explicit
// "public" modifier.
func isPublicMethod(f *parsedFile, method *sitter.Node) bool {
	modifiers := childByType(method, "modifiers")
	if modifiers == nil {
		return false
	}
	found := false
	walk(modifiers, func(n *sitter.Node) bool {
		if f.text(n) == "public" {
			found = true
		}
		return true
	})
	return found
}

var _ Extractor = CollaboratorMethodExtractor{}
