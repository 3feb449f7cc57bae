package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

// copyExample copies the annotated declarations of the example package into
// a fresh package directory inside the module, so that generating for it
// leaves example/ untouched.
func copyExample(t *testing.T) string {
	t.Helper()

	require.NoError(t, os.MkdirAll("testdata", 0o755))
	dir, err := os.MkdirTemp("testdata", "example-")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	src, err := os.ReadFile(filepath.Join("example", "pipeline.go"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pipeline.go"), src, 0o644))
	return dir
}

func TestExampleIsUpToDate(t *testing.T) {
	goldenFile := filepath.Join("example", "pipeline_gen.go")
	dir := copyExample(t)
	outputFile := filepath.Join(dir, "pipeline_gen.go")

	logs, err := run(t, "--output="+outputFile, dir)
	require.NoError(t, err, logs)
	assert.Contains(t, logs, "Generating pipeline methods for example.SingleFieldPipeline, Disabled, Timed, Box, Basket...")
	assert.Contains(t, logs, "unknown pipeline attribute key 'owner'")

	generated, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	if *update {
		require.NoError(t, os.WriteFile(goldenFile, generated, 0o644))
		t.Logf("Updated golden file: %s", goldenFile)
		return
	}

	golden, err := os.ReadFile(goldenFile)
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(generated), "Generated output differs from %s. Run 'go test -update' to update it.", goldenFile)
}

func TestDiagnosticFailsGeneration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/bad\n\ngo 1.21\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte(`package bad

//pipeline:derive
type Bad struct {
	A, B int
}
`), 0o644))

	outputFile := filepath.Join(dir, "pipeline_gen.go")
	_, err := run(t, "--output="+outputFile, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.go:4:6: expected a struct with exactly one named field")

	_, statErr := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr), "no file is written when generation fails")
}

func TestDump(t *testing.T) {
	dir := copyExample(t)
	outputFile := filepath.Join(dir, "pipeline_gen.go")

	logs, err := run(t, "--output="+outputFile, "--package=example", "--dump", dir, "Timed")
	require.NoError(t, err, logs)
	assert.Contains(t, logs, `Name: (string) (len=5) "Timed"`)
	assert.Contains(t, logs, `Set{skip: false, timeout: 500, others: [owner = \"payments\"]}`)

	out, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "package example")
	assert.Contains(t, string(out), "func (t *Timed) Process3")
	assert.NotContains(t, string(out), "Basket")
}

func TestOutputMustBelongToPackage(t *testing.T) {
	dir := copyExample(t)

	tests := []struct {
		name   string
		output string
		args   []string
		want   string
	}{
		{
			name:   "output outside the package directory",
			output: filepath.Join(t.TempDir(), "pipeline_gen.go"),
			want:   "must be in the directory of package example",
		},
		{
			name:   "package name mismatch",
			output: filepath.Join(dir, "pipeline_gen.go"),
			args:   []string{"--package=other"},
			want:   "--package other does not match package example being generated for",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--output=" + tt.output}, tt.args...)
			_, err := run(t, append(args, dir)...)
			assert.ErrorContains(t, err, tt.want)

			_, statErr := os.Stat(tt.output)
			assert.True(t, os.IsNotExist(statErr), "no file is written for another package")
		})
	}
}

func TestRequiresOutput(t *testing.T) {
	_, err := run(t, "example")
	assert.ErrorContains(t, err, `required flag(s) "output" not set`)
}
