package extract

// DefaultChain builds the standard registry of extractors in the order
// bands documented in SPEC_FULL.md §4.2: 100 test structure, 200
// assertions, 300 mocks, 400 hints, 500/510 implementation analysis, 600
// type definitions, 700 collaborator methods.
func DefaultChain() *Chain {
	return NewChain(
		TestMethodExtractor{},
		AssertionExtractor{},
		MockExtractor{},
		HintExtractor{},
		TargetMethodExtractor{},
		ImplClassExtractor{},
		TypeDefinitionExtractor{},
		CollaboratorMethodExtractor{},
	)
}
