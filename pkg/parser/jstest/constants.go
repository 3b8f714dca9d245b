package jstest

import (
	"github.com/specvital/smellscan/pkg/domain"
)

const (
	FuncDescribe = "describe"
	FuncIt       = "it"
	FuncTest     = "test"

	// Mocha TDD interface functions
	FuncContext = "context"
	FuncSpecify = "specify"
	FuncSuite   = "suite"

	ModifierConcurrent = "concurrent"
	ModifierEach       = "each"
	ModifierOnly       = "only"
	ModifierSkip       = "skip"
	ModifierTodo       = "todo"

	// Playwright annotations and jest's expected-failure cases.
	ModifierFail    = "fail"
	ModifierFailing = "failing"
	ModifierFixme   = "fixme"
	ModifierSlow    = "slow"

	DynamicCasesSuffix     = " (dynamic cases)"
	DynamicNamePlaceholder = "(dynamic)"
)

var SkippedFunctionAliases = map[string]string{
	"xdescribe": FuncDescribe,
	"xit":       FuncIt,
	"xtest":     FuncTest,
	"xcontext":  FuncContext,
	"xspecify":  FuncSpecify,
}

var FocusedFunctionAliases = map[string]string{
	"fdescribe": FuncDescribe,
	"fit":       FuncIt,
	"fcontext":  FuncContext,
	"fspecify":  FuncSpecify,
}

// AssertionRoots are the identifiers an assertion chain starts from.
var AssertionRoots = map[string]bool{
	"assert":       true,
	"chai":         true,
	"expect":       true,
	"expectTypeOf": true,
}

// branchKinds are control-flow node types recorded as TestBody.Branches.
var branchKinds = map[string]bool{
	"do_statement":       true,
	"for_in_statement":   true,
	"for_statement":      true,
	"if_statement":       true,
	"switch_statement":   true,
	"ternary_expression": true,
	"while_statement":    true,
}

// handlerKinds are exception node types recorded as TestBody.Handlers.
var handlerKinds = map[string]bool{
	"throw_statement": true,
	"try_statement":   true,
}

// SupportedExtensions defines valid JavaScript/TypeScript file extensions.
var SupportedExtensions = map[string]bool{
	".cjs": true,
	".cts": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".mts": true,
	".ts":  true,
	".tsx": true,
}

func ParseModifierStatus(modifier string) domain.TestStatus {
	switch modifier {
	case ModifierSkip, ModifierFixme:
		return domain.TestStatusSkipped
	case ModifierTodo:
		return domain.TestStatusTodo
	case ModifierOnly:
		return domain.TestStatusFocused
	default:
		return domain.TestStatusActive
	}
}

func isSuiteFunc(name string) bool {
	switch name {
	case FuncDescribe, FuncContext, FuncSuite:
		return true
	}
	return false
}

func isCaseFunc(name string) bool {
	switch name {
	case FuncIt, FuncTest, FuncSpecify:
		return true
	}
	return false
}
