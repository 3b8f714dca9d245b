package domain

type Test struct {
	// Body is nil when the declaration has no callback (e.g. it.todo('name')).
	Body     *TestBody  `json:"body,omitempty"`
	Location Location   `json:"location"`
	Modifier string     `json:"modifier,omitempty"`
	Name     string     `json:"name"`
	Status   TestStatus `json:"status"`
}

type TestSuite struct {
	Location Location    `json:"location"`
	Modifier string      `json:"modifier,omitempty"`
	Name     string      `json:"name"`
	Status   TestStatus  `json:"status"`
	Suites   []TestSuite `json:"suites,omitempty"`
	Tests    []Test      `json:"tests,omitempty"`
}

// CountTests returns the number of tests in this suite and all nested suites.
func (s *TestSuite) CountTests() int {
	count := len(s.Tests)
	for _, sub := range s.Suites {
		count += sub.CountTests()
	}
	return count
}

// CountSuites returns the number of suites nested under this suite, excluding itself.
func (s *TestSuite) CountSuites() int {
	count := len(s.Suites)
	for _, sub := range s.Suites {
		count += sub.CountSuites()
	}
	return count
}

// TestBody holds the structural facts of a test callback body.
// Facts are collected once at parse time so detectors never touch the syntax tree.
type TestBody struct {
	Assertions []Assertion `json:"assertions,omitempty"`
	// Branches are control-flow constructs: if, switch, ternary and loops.
	Branches []Construct `json:"branches,omitempty"`
	// Calls lists every call expression in source order, nested ones included.
	Calls    []Call `json:"calls,omitempty"`
	Comments int    `json:"comments"`
	// Handlers are exception constructs: try and throw.
	Handlers []Construct `json:"handlers,omitempty"`
	// Statements counts the direct statements of the body block.
	// An expression-bodied arrow function counts as one statement.
	Statements int `json:"statements"`
}

// IsEmpty reports whether the body has no executable statements.
func (b *TestBody) IsEmpty() bool {
	return b.Statements == 0
}

// Assertion is one assertion statement, e.g. expect(a).toBe(b) or assert.equal(a, b).
type Assertion struct {
	// Expected is the source text of the expected-value argument, if any.
	Expected string   `json:"expected,omitempty"`
	Location Location `json:"location"`
	// Matcher is the final member of the assertion chain ("toBe", "equal").
	Matcher string `json:"matcher"`
	// Numbers holds numeric literals appearing anywhere in the statement.
	Numbers []string `json:"numbers,omitempty"`
	// Subject is the source text of the value under assertion.
	Subject string `json:"subject,omitempty"`
	// Text is the statement source with whitespace runs collapsed.
	Text string `json:"text"`
}

// Construct is a syntactic construct found inside a test body.
type Construct struct {
	// Kind is the tree-sitter node type, e.g. "if_statement".
	Kind     string   `json:"kind"`
	Location Location `json:"location"`
}

// Call is a call expression found inside a test body.
type Call struct {
	Callee   string   `json:"callee"`
	Location Location `json:"location"`
}
