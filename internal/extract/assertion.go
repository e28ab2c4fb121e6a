package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"jwright/internal/model"
)

// AssertionExtractor (order 200) walks the test method's call expressions
// and recognizes the closed set of JUnit-style assertions plus fluent
// assertThat chains.
type AssertionExtractor struct{}

func (AssertionExtractor) ID() string { return "assertion" }
func (AssertionExtractor) Order() int { return 200 }
func (AssertionExtractor) Supports(req *model.ExtractionRequest) bool {
	return req.TestSourcePath != "" && req.TestMethodName != ""
}

var junitKinds = map[string]model.AssertionKind{
	"assertEquals":      model.AssertEquals,
	"assertNotEquals":   model.AssertNotEquals,
	"assertTrue":        model.AssertTrue,
	"assertFalse":       model.AssertFalse,
	"assertNull":        model.AssertNull,
	"assertNotNull":     model.AssertNotNull,
	"assertSame":        model.AssertSame,
	"assertNotSame":     model.AssertNotSame,
	"assertArrayEquals": model.AssertArrayEq,
	"assertThrows":      model.AssertThrows,
}

func (AssertionExtractor) Extract(req *model.ExtractionRequest, b *Builder) error {
	method := b.TestMethodNode()
	if method == nil {
		return nil // test-method extractor didn't run or found nothing; nothing to walk
	}
	f := b.TestFile()

	walk(method, func(n *sitter.Node) bool {
		if n.Type() != "method_invocation" {
			return true
		}
		name := invocationName(f, n)
		args := childByType(n, "argument_list")

		if kind, ok := junitKinds[name]; ok {
			a := parseJUnitAssertion(f, kind, args)
			b.AddAssertion(a)
			return true
		}
		if name == "assertThat" {
			a := parseFluentAssertion(f, n, args)
			b.AddAssertion(a)
			return true
		}
		return true
	})
	return nil
}

// invocationName returns the bare method name of a method_invocation node,
// e.g. "assertEquals" for `assertEquals(5, r)` or "findById" for
// `repo.findById(1L)`.
func invocationName(f *parsedFile, n *sitter.Node) string {
	name := n.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return f.text(name)
}

// argList returns each top-level argument's verbatim text.
func argList(f *parsedFile, args *sitter.Node) []string {
	if args == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(args.ChildCount()); i++ {
		c := args.Child(i)
		t := c.Type()
		if t == "(" || t == ")" || t == "," {
			continue
		}
		out = append(out, f.text(c))
	}
	return out
}

func parseJUnitAssertion(f *parsedFile, kind model.AssertionKind, args *sitter.Node) model.Assertion {
	vals := argList(f, args)
	a := model.Assertion{Kind: kind}
	switch len(vals) {
	case 1:
		a.Actual = vals[0]
	case 2:
		a.Expected, a.Actual = vals[0], vals[1]
	case 3:
		a.Expected, a.Actual, a.Message = vals[0], vals[1], vals[2]
	}
	return a
}

// parseFluentAssertion records the assertThat(x) entry argument as Actual
// and the dotted chain of calls that follow it (with their argument lists)
// as Expected.
func parseFluentAssertion(f *parsedFile, entry *sitter.Node, args *sitter.Node) model.Assertion {
	vals := argList(f, args)
	a := model.Assertion{Kind: model.AssertFluent}
	if len(vals) > 0 {
		a.Actual = vals[0]
	}

	// The fluent chain is the parent method_invocation(s) whose receiver is
	// this entry call: assertThat(x).isEqualTo(y).
	var chain []string
	cur := entry
	for {
		parent := cur.Parent()
		if parent == nil || parent.Type() != "method_invocation" {
			break
		}
		receiver := childByType(parent, "method_invocation")
		if receiver == nil || receiver != cur {
			// the parent's receiver field isn't `cur`; stop walking up
			break
		}
		name := invocationName(f, parent)
		pargs := childByType(parent, "argument_list")
		chain = append(chain, name+"("+strings.Join(argList(f, pargs), ", ")+")")
		cur = parent
	}
	a.Expected = strings.Join(chain, ".")
	return a
}

var _ Extractor = AssertionExtractor{}
