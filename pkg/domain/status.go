package domain

// TestStatus represents the execution behavior of a test or suite as declared in source.
type TestStatus string

const (
	// TestStatusActive indicates a normal test that runs and expects success.
	TestStatusActive TestStatus = "active"
	// TestStatusSkipped indicates a test intentionally excluded from execution (xit, it.skip).
	TestStatusSkipped TestStatus = "skipped"
	// TestStatusTodo indicates a test not yet implemented (it.todo).
	TestStatusTodo TestStatus = "todo"
	// TestStatusFocused indicates a debugging-only test (.only, fit).
	TestStatusFocused TestStatus = "focused"
)
