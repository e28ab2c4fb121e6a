package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"jwright/internal/model"
)

// MockExtractor (order 300) recognizes Mockito-style
// when(mock.method(args)).thenReturn(value) stubs and
// verify(mock[, times])...method(args) assertions.
type MockExtractor struct{}

func (MockExtractor) ID() string { return "mock" }
func (MockExtractor) Order() int { return 300 }
func (MockExtractor) Supports(req *model.ExtractionRequest) bool {
	return req.TestSourcePath != "" && req.TestMethodName != ""
}

func (MockExtractor) Extract(req *model.ExtractionRequest, b *Builder) error {
	method := b.TestMethodNode()
	if method == nil {
		return nil
	}
	f := b.TestFile()

	walk(method, func(n *sitter.Node) bool {
		if n.Type() != "method_invocation" {
			return true
		}
		switch invocationName(f, n) {
		case "when":
			if ms, ok := parseWhenThenReturn(f, n); ok {
				b.AddMockSetup(ms)
			}
		case "verify":
			if v, ok := parseVerify(f, n); ok {
				b.AddVerify(v)
			}
		}
		return true
	})
	return nil
}

// parseWhenThenReturn expects when(...) to be the receiver of a parent
// .thenReturn(v) call.
func parseWhenThenReturn(f *parsedFile, whenCall *sitter.Node) (model.MockSetup, bool) {
	whenArgs := childByType(whenCall, "argument_list")
	inner := firstMethodInvocationArg(whenArgs)
	if inner == nil {
		return model.MockSetup{}, false
	}
	mockObj, methodCall := splitReceiverCall(f, inner)
	if mockObj == "" {
		return model.MockSetup{}, false
	}

	parent := whenCall.Parent()
	if parent == nil || parent.Type() != "method_invocation" || invocationName(f, parent) != "thenReturn" {
		return model.MockSetup{}, false
	}
	retArgs := argList(f, childByType(parent, "argument_list"))
	ret := ""
	if len(retArgs) > 0 {
		ret = retArgs[0]
	}
	return model.MockSetup{MockObject: mockObj, MethodCall: methodCall, ReturnValue: ret}, true
}

// parseVerify expects verify(mock[, times]) to be the receiver of a parent
// method_invocation that is the actually-verified call.
func parseVerify(f *parsedFile, verifyCall *sitter.Node) (model.VerifyStatement, bool) {
	verifyArgs := argList(f, childByType(verifyCall, "argument_list"))
	if len(verifyArgs) == 0 {
		return model.VerifyStatement{}, false
	}
	mockObj := verifyArgs[0]
	times := "1"
	if len(verifyArgs) > 1 {
		times = verifyArgs[1]
	}

	parent := verifyCall.Parent()
	if parent == nil || parent.Type() != "method_invocation" {
		return model.VerifyStatement{}, false
	}
	name := invocationName(f, parent)
	pargs := argList(f, childByType(parent, "argument_list"))
	call := name + "(" + strings.Join(pargs, ", ") + ")"
	return model.VerifyStatement{MockObject: mockObj, MethodCall: call, Times: times}, true
}

// firstMethodInvocationArg returns the first argument of an argument_list
// that is itself a method_invocation, e.g. the `repo.findById(1L)` inside
// `when(repo.findById(1L))`.
func firstMethodInvocationArg(args *sitter.Node) *sitter.Node {
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.ChildCount()); i++ {
		c := args.Child(i)
		if c.Type() == "method_invocation" {
			return c
		}
	}
	return nil
}

// splitReceiverCall splits `repo.findById(1L)` into ("repo", "findById(1L)").
func splitReceiverCall(f *parsedFile, call *sitter.Node) (receiver, call2 string) {
	// The method name comes from the invocation's name field; the receiver
	// is the text before the first dot.
	full := f.text(call)
	if name := invocationName(f, call); name != "" {
		args := argList(f, childByType(call, "argument_list"))
		idx := strings.Index(full, ".")
		if idx > 0 {
			return full[:idx], name + "(" + strings.Join(args, ", ") + ")"
		}
	}
	return "", ""
}

var _ Extractor = MockExtractor{}
