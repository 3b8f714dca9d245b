package smells

import "github.com/specvital/smellscan/pkg/domain"

// eachTest visits top-level tests first, then every suite depth-first
// (its own tests before its child suites).
func eachTest(file *domain.TestFile, visit func(*domain.Test)) {
	for i := range file.Tests {
		visit(&file.Tests[i])
	}
	for i := range file.Suites {
		eachTestInSuite(&file.Suites[i], visit)
	}
}

func eachTestInSuite(suite *domain.TestSuite, visit func(*domain.Test)) {
	for i := range suite.Tests {
		visit(&suite.Tests[i])
	}
	for i := range suite.Suites {
		eachTestInSuite(&suite.Suites[i], visit)
	}
}

// eachSuite visits suites depth-first in declaration order.
func eachSuite(suites []domain.TestSuite, visit func(*domain.TestSuite)) {
	for i := range suites {
		visit(&suites[i])
		eachSuite(suites[i].Suites, visit)
	}
}

// eachBody visits tests that have a callback body.
func eachBody(file *domain.TestFile, visit func(*domain.Test, *domain.TestBody)) {
	eachTest(file, func(t *domain.Test) {
		if t.Body != nil {
			visit(t, t.Body)
		}
	})
}

func at(loc domain.Location) *domain.Location {
	return &loc
}
