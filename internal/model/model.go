// Package model holds the plain data types shared across the extraction,
// template, writer, and task packages: the immutable extraction context and
// the mutable per-run pipeline state, plus their constituent record types.
package model

import "time"

// ExtractionRequest is the immutable input to the extractor chain.
type ExtractionRequest struct {
	TestSourcePath string
	TestClassName  string
	TestMethodName string
	ImplSourcePath string
	TargetMethod   string
	SourceRoot     string
}

// AssertionKind is a closed tag for the recognized JUnit-style assertion
// calls; AssertFluent covers assertThat(...) entries whose dotted chain
// doesn't map onto one of the named calls.
type AssertionKind string

const (
	AssertEquals    AssertionKind = "assertEquals"
	AssertNotEquals AssertionKind = "assertNotEquals"
	AssertTrue      AssertionKind = "assertTrue"
	AssertFalse     AssertionKind = "assertFalse"
	AssertNull      AssertionKind = "assertNull"
	AssertNotNull   AssertionKind = "assertNotNull"
	AssertSame      AssertionKind = "assertSame"
	AssertNotSame   AssertionKind = "assertNotSame"
	AssertArrayEq   AssertionKind = "assertArrayEquals"
	AssertThrows    AssertionKind = "assertThrows"
	AssertFluent    AssertionKind = "fluent"
)

// Assertion is one recognized assertion call in a test method body.
type Assertion struct {
	Kind     AssertionKind
	Expected string
	Actual   string
	Message  string
}

// MockSetup is a recognized when(...).thenReturn(...) stub.
type MockSetup struct {
	MockObject string
	MethodCall string
	ReturnValue string
}

// VerifyStatement is a recognized verify(mock[, times])...call() assertion.
type VerifyStatement struct {
	MockObject string
	MethodCall string
	Times      string
}

// MethodSignature names a method without its body.
type MethodSignature struct {
	Name       string
	ReturnType string
	Parameters []Parameter
}

// Parameter is one formal parameter of a MethodSignature.
type Parameter struct {
	Type string
	Name string
}

// Signature renders "returnType name(type1 name1, type2 name2)" for
// template and diagnostic use.
func (m MethodSignature) Signature() string {
	s := m.ReturnType + " " + m.Name + "("
	for i, p := range m.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.Type + " " + p.Name
	}
	return s + ")"
}

// Field is one field of a TypeDefinition.
type Field struct {
	Type string
	Name string
}

// TypeDefinition records a class's shape as discovered by the impl-class and
// type-definition extractors.
type TypeDefinition struct {
	Name    string
	Fields  []Field
	Methods []MethodSignature
}

// ExtractionContext is the immutable, frozen aggregate produced by the
// extractor chain. Once built it is shared-read across goroutines without
// locking; nothing in the pipeline mutates it after Builder.Freeze.
type ExtractionContext struct {
	TestClassName      string
	TestMethodName     string
	TestMethodBody     string
	Assertions         []Assertion
	MockSetups         []MockSetup
	VerifyStatements   []VerifyStatement
	Hints              []string
	TargetSignature    *MethodSignature
	CurrentImpl        string
	TypeDefinitions    []TypeDefinition
	AvailableMethods   map[string][]MethodSignature
	ImplSourcePath     string
}

// FailedAttempt records one unsuccessful Implement attempt, preserved so
// later prompts can reference what was already tried.
type FailedAttempt struct {
	AttemptNumber    int
	GeneratedCode    string
	ErrorMessage     string
	CompilationError *CompilationError
	TestFailure      *TestFailure
}

// CompilationError is one structured compiler diagnostic.
type CompilationError struct {
	Path    string
	Line    int
	Message string
}

// TestFailure is one structured test-report failure or error.
type TestFailure struct {
	ClassName string
	TestName  string
	Message   string
	Trace     string
}

// Snapshot is a single LIFO backup-store record.
type Snapshot struct {
	Path      string
	Bytes     []byte
	Timestamp time.Time
}

// TaskStatus is the closed outcome set for a single task execution.
type TaskStatus string

const (
	TaskSuccess  TaskStatus = "SUCCESS"
	TaskFailed   TaskStatus = "FAILED"
	TaskSkipped  TaskStatus = "SKIPPED"
	TaskReverted TaskStatus = "REVERTED"
)

// TaskResult is the outcome of running one task to completion (including
// any retries).
type TaskResult struct {
	TaskID   string
	Status   TaskStatus
	Message  string
	Attempts int
}

// PipelineResult is the outcome of a full pipeline run.
type PipelineResult struct {
	Success        bool
	TaskResults    []TaskResult
	ModifiedFile   string
	FinalCode      string
	FailedAttempts []FailedAttempt
}

// HasWarnings reports whether any task result carries status REVERTED.
func (r PipelineResult) HasWarnings() bool {
	for _, tr := range r.TaskResults {
		if tr.Status == TaskReverted {
			return true
		}
	}
	return false
}

// PipelineState is the mutable, single-owner per-run state handed to each
// task in turn. The pipeline advances Attempt and records task status;
// tasks append failed attempts and set GeneratedCode on it directly.
type PipelineState struct {
	Attempt         int
	MaxRetries      int
	FailedAttempts  []FailedAttempt
	GeneratedCode   string
	CurrentTask     string
	LastTaskStatus  TaskStatus
	ProjectDir      string
	ImplFile        string
	DryRun          bool
}

// NewPipelineState starts a fresh state at attempt 1.
func NewPipelineState(projectDir, implFile string, maxRetries int, dryRun bool) *PipelineState {
	return &PipelineState{
		Attempt:    1,
		MaxRetries: maxRetries,
		ProjectDir: projectDir,
		ImplFile:   implFile,
		DryRun:     dryRun,
	}
}

// CanRetry reports whether another attempt is within the retry budget.
// The budget is maxRetries additional attempts beyond the first, so a task
// may run up to maxRetries+1 times; CanRetry is true while attempt<=maxRetries.
func (s *PipelineState) CanRetry() bool {
	return s.Attempt <= s.MaxRetries
}

// RecordFailure appends a failed attempt and advances the attempt counter.
func (s *PipelineState) RecordFailure(fa FailedAttempt) {
	s.FailedAttempts = append(s.FailedAttempts, fa)
	s.Attempt++
}
