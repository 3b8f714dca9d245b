package smells

import (
	"strings"

	"github.com/specvital/smellscan/pkg/domain"
)

// Smell types reported by the catalog.
const (
	TypeAnonymousTest        = "AnonymousTest"
	TypeCommentsOnlyTest     = "CommentsOnlyTest"
	TypeConditionalTestLogic = "ConditionalTestLogic"
	TypeDuplicateAssert      = "DuplicateAssert"
	TypeEmptyTest            = "EmptyTest"
	TypeExceptionHandling    = "ExceptionHandling"
	TypeIgnoredTest          = "IgnoredTest"
	TypeMagicNumberTest      = "MagicNumberTest"
	TypeRedundantAssertion   = "RedundantAssertion"
	TypeSensitiveEquality    = "SensitiveEquality"
	TypeSleepyTest           = "SleepyTest"
	TypeTranscriptingTest    = "TranscriptingTest"
	TypeUnknownTest          = "UnknownTest"
)

// Catalog returns a fresh list of every built-in detector in registry order.
func Catalog() []Detector {
	return []Detector{
		NewDetector("detect"+TypeAnonymousTest, detectAnonymousTest),
		NewDetector("detect"+TypeCommentsOnlyTest, detectCommentsOnlyTest),
		NewDetector("detect"+TypeConditionalTestLogic, detectConditionalTestLogic),
		NewDetector("detect"+TypeDuplicateAssert, detectDuplicateAssert),
		NewDetector("detect"+TypeEmptyTest, detectEmptyTest),
		NewDetector("detect"+TypeExceptionHandling, detectExceptionHandling),
		NewDetector("detect"+TypeIgnoredTest, detectIgnoredTest),
		NewDetector("detect"+TypeMagicNumberTest, detectMagicNumberTest),
		NewDetector("detect"+TypeRedundantAssertion, detectRedundantAssertion),
		NewDetector("detect"+TypeSensitiveEquality, detectSensitiveEquality),
		NewDetector("detect"+TypeSleepyTest, detectSleepyTest),
		NewDetector("detect"+TypeTranscriptingTest, detectTranscriptingTest),
		NewDetector("detect"+TypeUnknownTest, detectUnknownTest),
	}
}

func detectAnonymousTest(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachTest(file, func(t *domain.Test) {
		if strings.TrimSpace(t.Name) == "" {
			found = append(found, domain.Smell{Type: TypeAnonymousTest, Location: at(t.Location)})
		}
	})
	return found
}

// A todo declaration without a callback has no body and is not empty.
func detectEmptyTest(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		if b.IsEmpty() {
			found = append(found, domain.Smell{Type: TypeEmptyTest, Test: t.Name, Location: at(t.Location)})
		}
	})
	return found
}

func detectCommentsOnlyTest(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		if b.IsEmpty() && b.Comments > 0 {
			found = append(found, domain.Smell{Type: TypeCommentsOnlyTest, Test: t.Name, Location: at(t.Location)})
		}
	})
	return found
}

func detectConditionalTestLogic(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		if len(b.Branches) > 0 {
			found = append(found, domain.Smell{Type: TypeConditionalTestLogic, Test: t.Name, Location: at(b.Branches[0].Location)})
		}
	})
	return found
}

func detectExceptionHandling(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		if len(b.Handlers) > 0 {
			found = append(found, domain.Smell{Type: TypeExceptionHandling, Test: t.Name, Location: at(b.Handlers[0].Location)})
		}
	})
	return found
}

// detectDuplicateAssert reports each repeated assertion text once, at its second occurrence.
func detectDuplicateAssert(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		seen := make(map[string]int, len(b.Assertions))
		for _, a := range b.Assertions {
			seen[a.Text]++
			if seen[a.Text] == 2 {
				found = append(found, domain.Smell{Type: TypeDuplicateAssert, Test: t.Name, Location: at(a.Location)})
			}
		}
	})
	return found
}

// detectIgnoredTest reports skipped suites and skipped tests.
// Tests inside a skipped suite are not reported again unless skipped themselves.
func detectIgnoredTest(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	for i := range file.Tests {
		found = appendIgnoredTest(found, &file.Tests[i])
	}
	eachSuite(file.Suites, func(s *domain.TestSuite) {
		if s.Status == domain.TestStatusSkipped {
			found = append(found, domain.Smell{Type: TypeIgnoredTest, Test: s.Name, Location: at(s.Location)})
		}
		for i := range s.Tests {
			found = appendIgnoredTest(found, &s.Tests[i])
		}
	})
	return found
}

func appendIgnoredTest(found []domain.Smell, t *domain.Test) []domain.Smell {
	if t.Status != domain.TestStatusSkipped {
		return found
	}
	return append(found, domain.Smell{Type: TypeIgnoredTest, Test: t.Name, Location: at(t.Location)})
}

// neutralNumbers are literals that carry no hidden meaning in an assertion.
var neutralNumbers = map[string]bool{"0": true, "1": true}

func detectMagicNumberTest(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		for _, a := range b.Assertions {
			if hasMagicNumber(a.Numbers) {
				found = append(found, domain.Smell{Type: TypeMagicNumberTest, Test: t.Name, Location: at(a.Location)})
				return
			}
		}
	})
	return found
}

func hasMagicNumber(numbers []string) bool {
	for _, n := range numbers {
		if !neutralNumbers[n] {
			return true
		}
	}
	return false
}

func detectRedundantAssertion(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		for _, a := range b.Assertions {
			if a.Subject != "" && a.Subject == a.Expected {
				found = append(found, domain.Smell{Type: TypeRedundantAssertion, Test: t.Name, Location: at(a.Location)})
			}
		}
	})
	return found
}

func detectSensitiveEquality(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		for _, a := range b.Assertions {
			if strings.Contains(a.Text, ".toString()") {
				found = append(found, domain.Smell{Type: TypeSensitiveEquality, Test: t.Name, Location: at(a.Location)})
			}
		}
	})
	return found
}

// sleepCallees end a callee path that pauses for wall-clock time.
var sleepCallees = map[string]bool{
	"delay":          true,
	"setTimeout":     true,
	"sleep":          true,
	"waitForTimeout": true,
}

func isSleepCall(callee string) bool {
	if callee == "cy.wait" {
		return true
	}
	last := callee
	if i := strings.LastIndexByte(callee, '.'); i >= 0 {
		last = callee[i+1:]
	}
	return sleepCallees[last]
}

func detectSleepyTest(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		for _, c := range b.Calls {
			if isSleepCall(c.Callee) {
				found = append(found, domain.Smell{Type: TypeSleepyTest, Test: t.Name, Location: at(c.Location)})
			}
		}
	})
	return found
}

func detectTranscriptingTest(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		for _, c := range b.Calls {
			if strings.HasPrefix(c.Callee, "console.") {
				found = append(found, domain.Smell{Type: TypeTranscriptingTest, Test: t.Name, Location: at(c.Location)})
			}
		}
	})
	return found
}

// detectUnknownTest reports tests that run code but never assert anything.
func detectUnknownTest(file *domain.TestFile) []domain.Smell {
	var found []domain.Smell
	eachBody(file, func(t *domain.Test, b *domain.TestBody) {
		if !b.IsEmpty() && len(b.Assertions) == 0 {
			found = append(found, domain.Smell{Type: TypeUnknownTest, Test: t.Name, Location: at(t.Location)})
		}
	})
	return found
}
