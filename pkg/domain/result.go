package domain

import "encoding/json"

// FileResult is the analysis outcome for one discovered test file.
type FileResult struct {
	DescribeCount int     `json:"describeCount"`
	File          string  `json:"file"`
	ItCount       int     `json:"itCount"`
	Smells        []Smell `json:"smells"`
	// Type is an opaque classification label assigned by the analysis classifier.
	Type string `json:"type"`
}

// HasSmells reports whether at least one smell was found.
func (r FileResult) HasSmells() bool {
	return len(r.Smells) > 0
}

// MarshalJSON keeps the wire field order stable and encodes a nil smell list as [].
func (r FileResult) MarshalJSON() ([]byte, error) {
	smells := r.Smells
	if smells == nil {
		smells = []Smell{}
	}
	return json.Marshal(struct {
		File          string  `json:"file"`
		Type          string  `json:"type"`
		Smells        []Smell `json:"smells"`
		ItCount       int     `json:"itCount"`
		DescribeCount int     `json:"describeCount"`
	}{
		File:          r.File,
		Type:          r.Type,
		Smells:        smells,
		ItCount:       r.ItCount,
		DescribeCount: r.DescribeCount,
	})
}
