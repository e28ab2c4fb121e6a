package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
	"jwright/internal/model"
)

// Builder accumulates fragments contributed by extractors across the chain,
// then freezes into an immutable model.ExtractionContext. Extractors never
// see each other's internals; they only append through the methods below.
type Builder struct {
	ctx model.ExtractionContext

	testFile       *parsedFile
	implFile       *parsedFile
	testMethodNode *sitter.Node
}

// SetTestMethodNode records the located test method's AST node so later
// extractors (assertion, mock, hint) can walk it without re-searching.
func (b *Builder) SetTestMethodNode(n *sitter.Node) { b.testMethodNode = n }

// TestMethodNode returns the test method node recorded by the test-method
// extractor, or nil if it hasn't run (or found nothing) yet.
func (b *Builder) TestMethodNode() *sitter.Node { return b.testMethodNode }

// TestFile returns the cached parsed test file, or nil if none parsed yet.
func (b *Builder) TestFile() *parsedFile { return b.testFile }

// ImplFile returns the cached parsed impl file, or nil if none parsed yet.
func (b *Builder) ImplFile() *parsedFile { return b.implFile }

// NewBuilder starts an empty builder for one extraction request.
func NewBuilder() *Builder {
	return &Builder{ctx: model.ExtractionContext{
		AvailableMethods: make(map[string][]model.MethodSignature),
	}}
}

func (b *Builder) SetTestClassName(v string)  { b.ctx.TestClassName = v }
func (b *Builder) SetTestMethodName(v string) { b.ctx.TestMethodName = v }
func (b *Builder) SetTestMethodBody(v string) { b.ctx.TestMethodBody = v }
func (b *Builder) SetImplSourcePath(v string) { b.ctx.ImplSourcePath = v }

func (b *Builder) AddAssertion(a model.Assertion)         { b.ctx.Assertions = append(b.ctx.Assertions, a) }
func (b *Builder) AddMockSetup(m model.MockSetup)         { b.ctx.MockSetups = append(b.ctx.MockSetups, m) }
func (b *Builder) AddVerify(v model.VerifyStatement)      { b.ctx.VerifyStatements = append(b.ctx.VerifyStatements, v) }
func (b *Builder) AddHint(h string)                       { b.ctx.Hints = append(b.ctx.Hints, h) }
func (b *Builder) AddTypeDefinition(t model.TypeDefinition) {
	b.ctx.TypeDefinitions = append(b.ctx.TypeDefinitions, t)
}
func (b *Builder) AddAvailableMethods(typeName string, m []model.MethodSignature) {
	b.ctx.AvailableMethods[typeName] = append(b.ctx.AvailableMethods[typeName], m...)
}

func (b *Builder) SetTargetSignature(sig model.MethodSignature) { b.ctx.TargetSignature = &sig }
func (b *Builder) SetCurrentImpl(body string)                   { b.ctx.CurrentImpl = body }

// TestMethodBody exposes what's been recorded so far so later extractors
// (assertions, mocks, hints) can re-scan the same verbatim text without
// re-reading the file.
func (b *Builder) TestMethodBody() string { return b.ctx.TestMethodBody }

// TestClassName exposes the class name recorded by the test-method
// extractor, used by the target-method extractor's heuristic.
func (b *Builder) TestClassName() string { return b.ctx.TestClassName }

// Freeze returns the built, read-only context. Sequences are never mutated
// after this point; callers share the returned value across goroutines.
func (b *Builder) Freeze() *model.ExtractionContext {
	ctx := b.ctx
	return &ctx
}

// testParsed lazily parses and caches the test file so every extractor
// that needs it (test-method, assertion, mock, hint) shares one parse.
func (b *Builder) testParsed(path string) (*parsedFile, error) {
	if b.testFile != nil && b.testFile.path == path {
		return b.testFile, nil
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	pf, err := parseJava(path, data)
	if err != nil {
		return nil, err
	}
	b.testFile = pf
	return pf, nil
}

// implParsed lazily parses and caches the implementation file so every
// extractor that needs it (target-method, impl-class) shares one parse.
func (b *Builder) implParsed(path string) (*parsedFile, error) {
	if b.implFile != nil && b.implFile.path == path {
		return b.implFile, nil
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	pf, err := parseJava(path, data)
	if err != nil {
		return nil, err
	}
	b.implFile = pf
	return pf, nil
}
