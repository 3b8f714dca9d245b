package domain

// Smell is one occurrence of a test smell.
// Several smells of the same type may be reported for one file.
type Smell struct {
	Location *Location `json:"location,omitempty"`
	// Test is the name of the test or suite the smell belongs to.
	Test string `json:"test,omitempty"`
	// Type is the stable smell identifier, e.g. "EmptyTest".
	Type string `json:"type"`
}
