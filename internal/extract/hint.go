package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"jwright/internal/model"
)

// HintExtractor (order 400) reads @Hint("...") annotations on the test
// method, in both single-value and value="..." forms, plus a repeating
// container annotation (@Hints({@Hint("a"), @Hint("b")})).
type HintExtractor struct{}

func (HintExtractor) ID() string { return "hint" }
func (HintExtractor) Order() int { return 400 }
func (HintExtractor) Supports(req *model.ExtractionRequest) bool {
	return req.TestSourcePath != "" && req.TestMethodName != ""
}

func (HintExtractor) Extract(req *model.ExtractionRequest, b *Builder) error {
	method := b.TestMethodNode()
	if method == nil {
		return nil
	}
	f := b.TestFile()

	modifiers := childByType(method, "modifiers")
	if modifiers == nil {
		return nil
	}
	walk(modifiers, func(n *sitter.Node) bool {
		switch n.Type() {
		case "annotation", "marker_annotation":
			collectHintAnnotation(f, n, b)
		}
		return true
	})
	return nil
}

func collectHintAnnotation(f *parsedFile, n *sitter.Node, b *Builder) {
	name := childByType(n, "identifier")
	if name == nil {
		return
	}
	switch f.text(name) {
	case "Hint":
		if v := hintValue(f, n); v != "" {
			b.AddHint(v)
		}
	case "Hints":
		// repeating container: @Hints({@Hint("a"), @Hint("b")})
		walk(n, func(c *sitter.Node) bool {
			if c != n && (c.Type() == "annotation" || c.Type() == "marker_annotation") {
				collectHintAnnotation(f, c, b)
			}
			return true
		})
	}
}

// hintValue extracts the string literal from @Hint("x") or @Hint(value="x").
func hintValue(f *parsedFile, n *sitter.Node) string {
	args := childByType(n, "annotation_argument_list")
	if args == nil {
		return ""
	}
	var lit string
	walk(args, func(c *sitter.Node) bool {
		if c.Type() == "string_literal" {
			lit = strings.Trim(f.text(c), "\"")
		}
		return true
	})
	return lit
}

var _ Extractor = HintExtractor{}
