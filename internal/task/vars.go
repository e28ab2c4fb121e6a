package task

import (
	"jwright/internal/model"
	"jwright/internal/template"
)

// buildVars converts the frozen extraction context plus accumulated
// pipeline state into the template payload described in SPEC_FULL.md §6.
func buildVars(ectx *model.ExtractionContext, state *model.PipelineState) template.Vars {
	v := template.Vars{
		TestClassName:  ectx.TestClassName,
		TestMethodName: ectx.TestMethodName,
		TestMethodBody: ectx.TestMethodBody,
	}

	if ectx.TargetSignature != nil {
		v.TargetMethodName = ectx.TargetSignature.Name
		v.TargetReturnType = ectx.TargetSignature.ReturnType
		v.TargetParameters = paramString(ectx.TargetSignature.Parameters)
	}

	if len(ectx.Assertions) > 0 {
		v.HasAssertions = true
		for _, a := range ectx.Assertions {
			v.Assertions = append(v.Assertions, template.AssertionVar{
				Kind: string(a.Kind), Expected: a.Expected, Actual: a.Actual, Message: a.Message,
			})
		}
	}

	if len(ectx.MockSetups) > 0 {
		v.HasMockSetups = true
		for _, m := range ectx.MockSetups {
			v.MockSetups = append(v.MockSetups, template.MockSetupVar{
				MockObject: m.MockObject, MethodCall: m.MethodCall, ReturnValue: m.ReturnValue,
			})
		}
	}

	if len(ectx.VerifyStatements) > 0 {
		v.HasVerifyStatements = true
		for _, vs := range ectx.VerifyStatements {
			v.VerifyStatements = append(v.VerifyStatements, template.VerifyVar{
				MockObject: vs.MockObject, MethodCall: vs.MethodCall, Times: vs.Times,
			})
		}
	}

	if len(ectx.Hints) > 0 {
		v.HasHints = true
		v.Hints = append(v.Hints, ectx.Hints...)
	}

	if ectx.CurrentImpl != "" {
		v.HasCurrentImplementation = true
		v.CurrentImplementation = ectx.CurrentImpl
	}

	if len(ectx.TypeDefinitions) > 0 {
		v.HasTypeDefinitions = true
		for _, td := range ectx.TypeDefinitions {
			tv := template.TypeDefinitionVar{Name: td.Name}
			for _, f := range td.Fields {
				tv.Fields = append(tv.Fields, template.FieldVar{Type: f.Type, Name: f.Name})
			}
			for _, m := range td.Methods {
				tv.Methods = append(tv.Methods, template.MethodVar{Signature: m.Signature()})
			}
			v.TypeDefinitions = append(v.TypeDefinitions, tv)
		}
	}

	if len(ectx.AvailableMethods) > 0 {
		v.HasAvailableMethods = true
		for typeName, methods := range ectx.AvailableMethods {
			am := template.AvailableMethodsVar{TypeName: typeName}
			for _, m := range methods {
				am.Methods = append(am.Methods, template.MethodVar{Signature: m.Signature()})
			}
			v.AvailableMethods = append(v.AvailableMethods, am)
		}
	}

	if len(state.FailedAttempts) > 0 {
		v.HasFailedAttempts = true
		for _, fa := range state.FailedAttempts {
			fav := template.FailedAttemptVar{
				AttemptNumber: fa.AttemptNumber,
				GeneratedCode: fa.GeneratedCode,
				ErrorMessage:  fa.ErrorMessage,
			}
			if fa.CompilationError != nil {
				fav.CompilationErrors = []string{formatCompilationError(*fa.CompilationError)}
			}
			if fa.TestFailure != nil {
				fav.TestFailures = []string{formatTestFailure(*fa.TestFailure)}
			}
			v.FailedAttempts = append(v.FailedAttempts, fav)
		}
	}

	return v
}

func paramString(params []model.Parameter) string {
	s := ""
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += p.Type + " " + p.Name
	}
	return s
}
