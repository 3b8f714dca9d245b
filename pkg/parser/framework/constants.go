// Package framework identifies which JavaScript test framework a test file targets.
package framework

// Priority constants determine the order in which frameworks are checked during detection.
// Higher priority frameworks are evaluated first.
//
// Use increments of 50 to allow for future insertions between priority levels.
const (
	// PriorityGeneric is for common, general-purpose test frameworks.
	// Examples: Jest, Mocha
	PriorityGeneric = 100

	// PriorityE2E is for end-to-end testing frameworks.
	// These share describe/it globals with generic frameworks, so they are checked first.
	// Examples: Playwright, Cypress
	PriorityE2E = 150

	// PrioritySpecialized is for frameworks whose imports would otherwise look generic.
	// Examples: Vitest, which re-exports expect and describe from its own package
	PrioritySpecialized = 200
)

// Framework labels as constants to ensure consistency.
const (
	FrameworkCypress    = "cypress"
	FrameworkJasmine    = "jasmine"
	FrameworkJest       = "jest"
	FrameworkMocha      = "mocha"
	FrameworkNodeTest   = "node-test"
	FrameworkPlaywright = "playwright"
	FrameworkVitest     = "vitest"
)

// FrameworkDefault is assumed when a file imports nothing that identifies a framework.
// Jest exposes describe/it as globals, so unmarked files are most often Jest files.
const FrameworkDefault = FrameworkJest
