package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
	"jwright/internal/model"
)

// ImplClassExtractor (order 510) records the impl class itself as a
// TypeDefinition: all of its fields and every method signature.
type ImplClassExtractor struct{}

func (ImplClassExtractor) ID() string { return "impl-class" }
func (ImplClassExtractor) Order() int { return 510 }
func (ImplClassExtractor) Supports(req *model.ExtractionRequest) bool {
	return req.ImplSourcePath != ""
}

func (ImplClassExtractor) Extract(req *model.ExtractionRequest, b *Builder) error {
	f, err := b.implParsed(req.ImplSourcePath)
	if err != nil {
		return err
	}
	class := findClassDeclaration(f)
	if class == nil {
		return nil
	}
	b.AddTypeDefinition(classTypeDefinition(f, class))
	return nil
}

// classTypeDefinition walks a class_declaration's body for field and
// method declarations.
func classTypeDefinition(f *parsedFile, class *sitter.Node) model.TypeDefinition {
	td := model.TypeDefinition{}
	if id := childByType(class, "identifier"); id != nil {
		td.Name = f.text(id)
	}
	body := childByType(class, "class_body")
	if body == nil {
		return td
	}
	for _, fd := range childrenByType(body, "field_declaration") {
		typeNode := firstNonModifierChild(fd)
		fieldType := ""
		if typeNode != nil {
			fieldType = f.text(typeNode)
		}
		for _, d := range childrenByType(fd, "variable_declarator") {
			if id := childByType(d, "identifier"); id != nil {
				td.Fields = append(td.Fields, model.Field{Type: fieldType, Name: f.text(id)})
			}
		}
	}
	for _, md := range childrenByType(body, "method_declaration") {
		td.Methods = append(td.Methods, methodSignature(f, md))
	}
	return td
}

var _ Extractor = ImplClassExtractor{}
