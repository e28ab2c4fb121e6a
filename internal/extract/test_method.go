package extract

import (
	"fmt"

	"jwright/internal/model"
)

// TestMethodExtractor (order 100) parses the test file, locates the target
// test method by name, and copies the class name, method name, and
// verbatim body text.
type TestMethodExtractor struct{}

func (TestMethodExtractor) ID() string  { return "test-method" }
func (TestMethodExtractor) Order() int  { return 100 }
func (TestMethodExtractor) Supports(req *model.ExtractionRequest) bool {
	return req.TestSourcePath != "" && req.TestMethodName != ""
}

func (TestMethodExtractor) Extract(req *model.ExtractionRequest, b *Builder) error {
	f, err := b.testParsed(req.TestSourcePath)
	if err != nil {
		return err
	}

	class := findClassDeclaration(f)
	if class != nil {
		if id := childByType(class, "identifier"); id != nil {
			b.SetTestClassName(f.text(id))
		}
	}
	if req.TestClassName != "" {
		b.SetTestClassName(req.TestClassName)
	}

	method := findMethodDeclaration(f, req.TestMethodName)
	if method == nil {
		return fmt.Errorf("test method %q not found in %s", req.TestMethodName, req.TestSourcePath)
	}
	b.SetTestMethodName(req.TestMethodName)
	b.SetTestMethodNode(method)

	if body := childByType(method, "block"); body != nil {
		b.SetTestMethodBody(f.text(body))
	} else {
		b.SetTestMethodBody(f.text(method))
	}
	return nil
}

var _ Extractor = TestMethodExtractor{}
