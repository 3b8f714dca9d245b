package domain

// SourceFile is a discovered candidate test file.
type SourceFile struct {
	// Content is the raw file content.
	Content []byte
	// Path is slash-separated and relative to the snapshot root.
	Path string
}

// TestFile represents a parsed test file.
// It is the root of the suite tree: JS frameworks allow tests outside any suite,
// so top-level tests live here alongside top-level suites.
type TestFile struct {
	// Framework is the detected test framework (e.g., "jest", "vitest").
	Framework string `json:"framework"`
	// Language is the programming language of this file.
	Language Language `json:"language"`
	// Path is the file path.
	Path string `json:"path"`
	// Suites contains the test suites in this file.
	Suites []TestSuite `json:"suites,omitempty"`
	// Tests contains the top-level tests in this file (outside any suite).
	Tests []Test `json:"tests,omitempty"`
}

// CountTests returns the total number of tests in this file across all nesting depths.
func (f *TestFile) CountTests() int {
	if f == nil {
		return 0
	}
	count := len(f.Tests)
	for _, s := range f.Suites {
		count += s.CountTests()
	}
	return count
}

// CountSuites returns the total number of suites in this file across all nesting depths.
func (f *TestFile) CountSuites() int {
	if f == nil {
		return 0
	}
	count := len(f.Suites)
	for _, s := range f.Suites {
		count += s.CountSuites()
	}
	return count
}
