package domain

import (
	"encoding/json"
	"testing"
)

func TestFileResult_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("should encode nil smells as empty array", func(t *testing.T) {
		t.Parallel()

		got, err := json.Marshal(FileResult{File: "a.test.js", Type: "jest"})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		want := `{"file":"a.test.js","type":"jest","smells":[],"itCount":0,"describeCount":0}`
		if string(got) != want {
			t.Errorf("Marshal() = %s, want %s", got, want)
		}
	})

	t.Run("should keep smell order", func(t *testing.T) {
		t.Parallel()

		result := FileResult{
			File:          "b.test.ts",
			Type:          "vitest",
			Smells:        []Smell{{Type: "EmptyTest", Test: "x"}, {Type: "UnknownTest"}},
			ItCount:       2,
			DescribeCount: 1,
		}

		got, err := json.Marshal(result)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		want := `{"file":"b.test.ts","type":"vitest","smells":[{"test":"x","type":"EmptyTest"},{"type":"UnknownTest"}],"itCount":2,"describeCount":1}`
		if string(got) != want {
			t.Errorf("Marshal() = %s, want %s", got, want)
		}
	})
}
