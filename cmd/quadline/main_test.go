package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksaelezovic/quadline/pkg/rdfio"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.nt"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.nq"), "")
	writeFile(t, filepath.Join(dir, "sub", "deeper", "c.nq"), "")

	got, err := expandInputs([]string{filepath.Join(dir, "**", "*.nq"), filepath.Join(dir, "a.nt"), stdinInput})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "sub", "b.nq"),
		filepath.Join(dir, "sub", "deeper", "c.nq"),
		filepath.Join(dir, "a.nt"),
		stdinInput,
	}, got)

	got, err = expandInputs([]string{filepath.Join(dir, "*.nt"), filepath.Join(dir, "a.nt")})
	require.NoError(t, err)
	assert.Len(t, got, 1, "repeats are dropped")

	_, err = expandInputs([]string{filepath.Join(dir, "*.ttl")})
	assert.Error(t, err)
	_, err = expandInputs([]string{filepath.Join(dir, "missing.nt")})
	assert.Error(t, err)
	_, err = expandInputs([]string{dir})
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, rdfio.FormatNTriples, formatForPath("x/data.NT", rdfio.FormatNQuads))
	assert.Equal(t, rdfio.FormatNQuads, formatForPath("data.nq", rdfio.FormatNTriples))
	assert.Equal(t, rdfio.FormatNTriples, formatForPath("data.txt", rdfio.FormatNTriples))
	assert.Equal(t, rdfio.FormatNQuads, formatForPath(stdinInput, rdfio.FormatNQuads))
}

func TestLoadCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "people.nq"), `# people
<http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.org/bob> .
<http://example.org/bob> <http://xmlns.com/foaf/0.1/knows> <http://example.org/alice> <http://example.org/g> .
`)

	for _, strategy := range []string{"unindexed", "indexed", "full", "kv"} {
		t.Run(strategy, func(t *testing.T) {
			out, _, err := run(t, "", "load", "--strategy", strategy, "--log-level", "error", filepath.Join(dir, "*.nq"))
			require.NoError(t, err)
			assert.Contains(t, out, "3 lines, 2 statements, 0 duplicates, 0 skipped")
			assert.Contains(t, out, "default graph: 1 statements")
			assert.Contains(t, out, "<http://example.org/g>: 1 statements")
			assert.Contains(t, out, "total: 2 statements ("+strategy+" store)")
		})
	}
}

func TestLoadCommand_Policy(t *testing.T) {
	input := "<http://a> <http://b> \"c\" .\n_:x \"lit\" <http://b> .\n"

	_, _, err := run(t, input, "load", "--format", "ntriples", "--log-level", "error", "-")
	require.Error(t, err)
	assert.ErrorIs(t, err, rdfio.ErrPredicateNotIRI)

	out, _, err := run(t, input, "load", "--format", "ntriples", "--policy", "skip", "--log-level", "error", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "1 statements, 0 duplicates, 1 skipped")
	assert.Contains(t, out, "line 2, offset 4 (predicate position)")
}

func TestLoadCommand_DumpAndMetrics(t *testing.T) {
	input := "<http://a> <http://b> \"c\" <http://g> .\n<http://a> <http://b> \"c\" .\n"

	out, _, err := run(t, input, "load", "--dump", "--metrics", "--log-level", "error", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<http://a> <http://b> \"c\" .\n<http://a> <http://b> \"c\" <http://g> .\n"))
	assert.Contains(t, out, "quadline_lines_total 2")
	assert.Contains(t, out, `quadline_statements_total{graph="named"} 1`)
}

func TestLoadCommand_Config(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "quadline.yaml")
	writeFile(t, cfgPath, `
store:
  strategy: indexed
parser:
  format: ntriples
prefixes:
  ex: http://example.org/
log:
  level: error
`)

	out, _, err := run(t, "ex:a ex:b ex:c .\n", "load", "--config", cfgPath, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "(N-Triples)")
	assert.Contains(t, out, "(indexed store)")

	_, _, err = run(t, "", "load", "--config", cfgPath, "--strategy", "btree", "-")
	assert.Error(t, err)
}

func TestQueryCommand(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.nq")
	writeFile(t, data, `<http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.org/bob> .
<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
<http://example.org/alice> <http://example.org/self> <http://example.org/alice> <http://example.org/g> .
`)

	out, _, err := run(t, "", "query", "--log-level", "error",
		"--subject", "<http://example.org/alice>", data)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))

	out, _, err = run(t, "", "query", "--log-level", "error",
		"--predicate", "<http://xmlns.com/foaf/0.1/name>", data)
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n", out)

	out, _, err = run(t, "", "query", "--log-level", "error",
		"--subject", "?x", "--object", "?x", data)
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/alice> <http://example.org/self> <http://example.org/alice> <http://example.org/g> .\n", out)

	out, _, err = run(t, "", "query", "--log-level", "error",
		"--graph", "<http://example.org/g>", data)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	_, _, err = run(t, "", "query", "--graph", `"g"`, data)
	assert.Error(t, err)
	_, _, err = run(t, "", "query", "--subject", "?", data)
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.nq")
	right := filepath.Join(dir, "right.nq")
	other := filepath.Join(dir, "other.nq")
	writeFile(t, left, "_:a <http://p> _:b .\n_:b <http://p> \"x\" <http://g> .\n")
	writeFile(t, right, "_:n2 <http://p> \"x\" <http://g> .\n_:n1 <http://p> _:n2 .\n")
	writeFile(t, other, "_:a <http://p> _:b .\n_:a <http://p> \"x\" <http://g> .\n")

	out, _, err := run(t, "", "compare", "--log-level", "error", left, right)
	require.NoError(t, err)
	assert.Equal(t, "isomorphic: 2 statements\n", out)

	out, _, err = run(t, "", "compare", "--log-level", "error", left, other)
	assert.ErrorIs(t, err, errNotIsomorphic)
	assert.Contains(t, out, "different")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "quadline version "+Version+" (build: "+BuildTime+")\n", out)
}
