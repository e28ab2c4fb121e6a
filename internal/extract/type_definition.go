package extract

import (
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"jwright/internal/model"
)

var primitiveTypes = map[string]bool{
	"int": true, "long": true, "short": true, "byte": true, "char": true,
	"float": true, "double": true, "boolean": true, "void": true,
	"String": true, "Integer": true, "Long": true, "Double": true, "Boolean": true,
}

// referencedTypes scans the test method's local_variable_declaration nodes
// and returns the set of declared, non-primitive type names, mapped to the
// variable name(s) declared with that type.
func referencedTypes(b *Builder) map[string][]string {
	out := map[string][]string{}
	method := b.TestMethodNode()
	if method == nil {
		return out
	}
	f := b.TestFile()
	walk(method, func(n *sitter.Node) bool {
		if n.Type() != "local_variable_declaration" {
			return true
		}
		typeNode := firstNonModifierChild(n)
		if typeNode == nil {
			return true
		}
		typeName := f.text(typeNode)
		if primitiveTypes[typeName] {
			return true
		}
		for _, d := range childrenByType(n, "variable_declarator") {
			if id := childByType(d, "identifier"); id != nil {
				out[typeName] = append(out[typeName], f.text(id))
			}
		}
		return true
	})
	return out
}

// resolveSiblingFile finds <sourceRoot>/<typeName>.java, returning its
// parsed form or nil if it doesn't exist or fails to parse.
func resolveSiblingFile(sourceRoot, typeName string) *parsedFile {
	if sourceRoot == "" {
		return nil
	}
	path := filepath.Join(sourceRoot, typeName+".java")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	pf, err := parseJava(path, data)
	if err != nil {
		return nil
	}
	return pf
}

// TypeDefinitionExtractor (order 600) resolves referenced non-primitive
// types appearing in the test's variable declarations to sibling files in
// the source root; primitives and unresolved types are skipped silently.
type TypeDefinitionExtractor struct{}

func (TypeDefinitionExtractor) ID() string { return "type-definition" }
func (TypeDefinitionExtractor) Order() int { return 600 }
func (TypeDefinitionExtractor) Supports(req *model.ExtractionRequest) bool {
	return req.SourceRoot != ""
}

func (TypeDefinitionExtractor) Extract(req *model.ExtractionRequest, b *Builder) error {
	for typeName := range referencedTypes(b) {
		pf := resolveSiblingFile(req.SourceRoot, typeName)
		if pf == nil {
			continue // unresolved: skip silently
		}
		class := findClassDeclaration(pf)
		if class == nil {
			continue
		}
		b.AddTypeDefinition(classTypeDefinition(pf, class))
	}
	return nil
}

var _ Extractor = TypeDefinitionExtractor{}
