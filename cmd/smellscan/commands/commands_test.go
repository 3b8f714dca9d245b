package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/smellscan/pkg/smells"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "smellscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc123"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "smellscan 1.2.3")
	assert.Contains(t, out, "commit abc123")
}

func TestVersionCommand_IgnoresBrokenConfig(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "scan: [unterminated\n")

	_, err := execute(t, "detectors", "--config", cfg)
	require.Error(t, err)

	out, err := execute(t, "version", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "smellscan 1.2.3")
}

func TestDetectorsCommand(t *testing.T) {
	t.Parallel()

	t.Run("lists the full catalog", func(t *testing.T) {
		t.Parallel()

		cfg := writeConfig(t, "logging:\n  level: warn\n")
		out, err := execute(t, "detectors", "--config", cfg)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Equal(t, smells.Default().Names(), lines)
	})

	t.Run("honours the configured subset", func(t *testing.T) {
		t.Parallel()

		cfg := writeConfig(t, "detectors:\n  - SleepyTest\n  - EmptyTest\n")
		out, err := execute(t, "detectors", "--config", cfg)
		require.NoError(t, err)

		assert.Equal(t, "EmptyTest\nSleepyTest\n", out)
	})

	t.Run("rejects unknown detectors", func(t *testing.T) {
		t.Parallel()

		cfg := writeConfig(t, "detectors:\n  - NoSuchSmell\n")
		_, err := execute(t, "detectors", "--config", cfg)

		require.ErrorIs(t, err, smells.ErrUnknownDetector)
	})
}

func TestAnalyzeCommand(t *testing.T) {
	t.Parallel()

	repo := writeRepo(t, map[string]string{
		"src/clean.test.js": `
describe('math', () => {
  it('adds', () => {
    expect(1 + 1).toBe(2);
  });
});
`,
		"src/empty.test.js": `
describe('todo', () => {
  it('does nothing', () => {});
});
`,
		"src/index.js": `export const x = 1;`,
	})

	type fileResult struct {
		DescribeCount int    `json:"describeCount"`
		File          string `json:"file"`
		ItCount       int    `json:"itCount"`
	}

	tests := []struct {
		name      string
		args      []string
		wantFiles []string
	}{
		{
			name:      "all test files",
			args:      []string{"--format", "json"},
			wantFiles: []string{"src/clean.test.js", "src/empty.test.js"},
		},
		{
			name:      "smelly only",
			args:      []string{"--format", "json", "--smelly-only", "--detectors", "EmptyTest"},
			wantFiles: []string{"src/empty.test.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := writeConfig(t, "logging:\n  level: error\n")
			args := append([]string{"analyze", "--local", "--config", cfg, repo}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)

			var results []fileResult
			require.NoError(t, json.Unmarshal([]byte(out), &results))

			files := make([]string, 0, len(results))
			for _, r := range results {
				files = append(files, filepath.ToSlash(r.File))
				assert.Equal(t, 1, r.DescribeCount)
				assert.Equal(t, 1, r.ItCount)
			}
			assert.Equal(t, tt.wantFiles, files)
		})
	}

	t.Run("rejects an unknown format", func(t *testing.T) {
		t.Parallel()

		cfg := writeConfig(t, "logging:\n  level: error\n")
		_, err := execute(t, "analyze", "--local", "--config", cfg, "--format", "xml", repo)

		require.Error(t, err)
	})

	t.Run("requires exactly one target", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "analyze")

		require.Error(t, err)
	})
}

func TestCountCommand(t *testing.T) {
	t.Parallel()

	repo := writeRepo(t, map[string]string{
		"a.test.ts":               `it('a', () => {});`,
		"b.spec.js":               `it('b', () => {});`,
		"node_modules/x.test.js":  `it('x', () => {});`,
		"src/__tests__/helper.js": `it('h', () => {});`,
		"src/main.ts":             `export {};`,
	})
	cfg := writeConfig(t, "logging:\n  level: error\n")

	out, err := execute(t, "count", "--local", "--config", cfg, repo)
	require.NoError(t, err)

	assert.Equal(t, "3\n", out)
}
