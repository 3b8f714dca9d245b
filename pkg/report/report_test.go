package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specvital/smellscan/pkg/domain"
)

func sampleResults() []domain.FileResult {
	return []domain.FileResult{
		{
			File: "a.test.js", Type: "jest", ItCount: 3, DescribeCount: 1,
			Smells: []domain.Smell{
				{Type: "EmptyTest", Test: "renders", Location: &domain.Location{StartLine: 2}},
				{Type: "SleepyTest", Test: "waits", Location: &domain.Location{StartLine: 7}},
				{Type: "AnonymousTest"},
			},
		},
		{File: "b.test.ts", Type: "vitest", ItCount: 2, Smells: []domain.Smell{}},
		{File: "broken.test.js", Type: "unknown"},
		{
			File: "c.spec.js", Type: "mocha", ItCount: 1, DescribeCount: 2,
			Smells: []domain.Smell{{Type: "EmptyTest", Test: "x, \"quoted\""}},
		},
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	results := sampleResults()

	rows := Flatten(results)

	total := 0
	for _, r := range results {
		total += len(r.Smells)
	}
	require.Len(t, rows, total)

	i := 0
	for _, r := range results {
		for _, s := range r.Smells {
			assert.Equal(t, r.File, rows[i].File)
			assert.Equal(t, r.Type, rows[i].Type)
			assert.Equal(t, r.ItCount, rows[i].ItCount)
			assert.Equal(t, r.DescribeCount, rows[i].DescribeCount)
			assert.Equal(t, s.Type, rows[i].Smell)
			i++
		}
	}
	assert.Equal(t, 7, rows[1].Line)
	assert.Zero(t, rows[2].Line)
	assert.Empty(t, Flatten(nil))
}

func TestWithSmells(t *testing.T) {
	t.Parallel()

	results := sampleResults()

	kept := WithSmells(results)

	for _, r := range kept {
		assert.NotEmpty(t, r.Smells)
	}
	var want []string
	for _, r := range results {
		if len(r.Smells) > 0 {
			want = append(want, r.File)
		}
	}
	var got []string
	for _, r := range kept {
		got = append(got, r.File)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"a.test.js", "c.spec.js"}, got)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]int{"EmptyTest": 2, "SleepyTest": 1, "AnonymousTest": 1}, Summary(sampleResults()))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: " CSV ", want: FormatCSV},
		{in: "yaml", want: FormatYAML},
		{in: "table", want: FormatTable},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sampleResults()))

	want := "file,type,smell,test,line,itCount,describeCount\n" +
		"a.test.js,jest,EmptyTest,renders,2,3,1\n" +
		"a.test.js,jest,SleepyTest,waits,7,3,1\n" +
		"a.test.js,jest,AnonymousTest,,,3,1\n" +
		"c.spec.js,mocha,EmptyTest,\"x, \"\"quoted\"\"\",,1,2\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("should encode empty set as array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, nil))
		assert.JSONEq(t, `[]`, buf.String())
	})

	t.Run("should keep wire keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, sampleResults()[1:3]))

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, []any{}, decoded[1]["smells"])
		assert.Equal(t, "broken.test.js", decoded[1]["file"])
		assert.EqualValues(t, 0, decoded[1]["itCount"])
		assert.EqualValues(t, 0, decoded[1]["describeCount"])
	})
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleResults()))

	var decoded []yamlResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, "a.test.js", decoded[0].File)
	assert.Equal(t, 3, decoded[0].ItCount)
	assert.Equal(t, yamlSmell{Type: "SleepyTest", Test: "waits", Line: 7}, decoded[0].Smells[1])
	assert.Contains(t, buf.String(), "describeCount: 2")
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "a.test.js")
	assert.Contains(t, out, "broken.test.js")
	assert.Contains(t, out, "SleepyTest")
	// go-pretty upper-cases footers by default.
	assert.Contains(t, strings.ToLower(out), "total: 4 files")
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, Format("xml"), nil)

	assert.ErrorIs(t, err, ErrUnknownFormat)
}
