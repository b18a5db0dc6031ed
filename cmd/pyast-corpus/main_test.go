package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/pyast-json/pkg/corpus"
)

type fixture struct {
	dir    string
	bundle string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	return &fixture{dir: dir, bundle: filepath.Join(dir, "corpus.db")}
}

func (f *fixture) source(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func (f *fixture) run(args ...string) (string, string, int) {
	var stdout, stderr bytes.Buffer
	status := execute(append([]string{"--bundle", f.bundle}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), status
}

func TestRecordListShow(t *testing.T) {
	f := newFixture(t)
	a := f.source(t, "a.py", "x = 1\n")
	b := f.source(t, "b.py", "pass\n")

	out, errOut, status := f.run("record", b, a)
	require.Equal(t, 0, status, errOut)
	assert.Equal(t, "recorded "+b+"\nrecorded "+a+"\n", out)

	out, _, status = f.run("list")
	require.Equal(t, 0, status)
	assert.Equal(t, a+"\n"+b+"\n", out)

	out, _, status = f.run("show", a)
	require.Equal(t, 0, status)
	assert.True(t, strings.HasPrefix(out, "{\n  \"$type\": \"Module\",\n  \"body\": [\n"), out)

	out, _, status = f.run("show", "--source", a)
	require.Equal(t, 0, status)
	assert.Equal(t, "x = 1\n", out)
}

func TestCheckPasses(t *testing.T) {
	f := newFixture(t)
	a := f.source(t, "a.py", "def f(x):\n    return x\n")
	_, _, status := f.run("record", a)
	require.Equal(t, 0, status)

	out, errOut, status := f.run("check")
	assert.Equal(t, 0, status, errOut)
	assert.Equal(t, "ok "+a+"\n", out)
}

func TestCheckShowsDiff(t *testing.T) {
	f := newFixture(t)
	a := f.source(t, "a.py", "x = 1\n")
	_, _, status := f.run("record", a)
	require.Equal(t, 0, status)

	c, err := corpus.Open(f.bundle)
	require.NoError(t, err)
	snapshot, err := c.Lookup(a)
	require.NoError(t, err)
	require.NoError(t, c.Replace(a, strings.Replace(snapshot.Document, `"value": "1"`, `"value": "2"`, 1)))
	require.NoError(t, c.Close())

	out, errOut, status := f.run("check", "--no-color", a)
	assert.Equal(t, 1, status)
	assert.True(t, strings.HasPrefix(out, "changed "+a+"\n"), out)
	assert.Contains(t, out, "\n-        \"value\": \"2\",\n+        \"value\": \"1\",\n")
	assert.Equal(t, "Error: 1 of 1 snapshots differ\n", errOut)
}

func TestCheckNotesEditedSource(t *testing.T) {
	f := newFixture(t)
	a := f.source(t, "a.py", "x = 1\n")
	_, _, status := f.run("record", a)
	require.Equal(t, 0, status)
	f.source(t, "a.py", "x = 2\n")

	out, errOut, status := f.run("check")
	assert.Equal(t, 0, status)
	assert.Equal(t, "ok "+a+"\n", out)
	assert.Equal(t, "note: "+a+" has changed on disk since it was recorded\n", errOut)
}

func TestRecordFailures(t *testing.T) {
	f := newFixture(t)
	bad := f.source(t, "bad.py", "def f(:\n")

	_, errOut, status := f.run("record", bad)
	assert.Equal(t, 1, status)
	assert.True(t, strings.HasPrefix(errOut, "Error: failed to serialize "+bad+": "), errOut)

	_, errOut, status = f.run("record", "--mode", "single", bad)
	assert.Equal(t, 1, status)
	assert.Equal(t, "Error: unknown mode: single\n", errOut)

	_, _, status = f.run("record")
	assert.Equal(t, 1, status)
}

func TestShowMissing(t *testing.T) {
	f := newFixture(t)
	_, errOut, status := f.run("show", "nowhere.py")
	assert.Equal(t, 1, status)
	assert.Equal(t, "Error: no snapshot recorded: nowhere.py\n", errOut)
}

func TestExistingBundleNeedsMigrate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.bundle, nil, 0o644))

	_, errOut, status := f.run("list")
	assert.Equal(t, 1, status)
	assert.Equal(t, "Error: database schema is not up to date. Use --migrate to update\n", errOut)

	out, errOut, status := f.run("--migrate", "list")
	assert.Equal(t, 0, status)
	assert.Empty(t, out)
	assert.Equal(t, "Database migration completed successfully.\n", errOut)

	_, errOut, status = f.run("list")
	assert.Equal(t, 0, status)
	assert.Empty(t, errOut)
}

func TestVersion(t *testing.T) {
	f := newFixture(t)
	out, _, status := f.run("version")
	assert.Equal(t, 0, status)
	assert.Equal(t, "pyast-corpus dev\n", out)
}
