package corpus

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/pyast-json/pkg/parser"
	"github.com/spicery/pyast-json/pkg/serializer"
)

func openCorpus(t *testing.T, opts ...Option) *Corpus {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "corpus.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	require.NoError(t, c.Migrate())
	return c
}

func TestCheckMigration(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	defer c.Close()

	upToDate, err := c.CheckMigration()
	require.NoError(t, err)
	assert.False(t, upToDate, "fresh database should need migration")

	require.NoError(t, c.Migrate())
	upToDate, err = c.CheckMigration()
	require.NoError(t, err)
	assert.True(t, upToDate)
}

func TestRecordAndLookup(t *testing.T) {
	c := openCorpus(t)
	c.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	snapshot, err := c.RecordSource("a.py", "x = 1\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, "exec", snapshot.Mode)
	assert.True(t, strings.HasPrefix(snapshot.Document, "{\n  \"$type\": \"Module\",\n"))

	found, err := c.Lookup("a.py")
	require.NoError(t, err)
	assert.Equal(t, snapshot.Document, found.Document)
	assert.True(t, found.RecordedAt.Equal(c.now()))

	source, err := c.Source("a.py")
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", source.Contents)
	assert.Len(t, source.Digest, 64)
}

func TestRecordReplacesEarlierSnapshot(t *testing.T) {
	c := openCorpus(t)
	_, err := c.RecordSource("a.py", "x = 1\n", Options{})
	require.NoError(t, err)
	_, err = c.RecordSource("a.py", "y\n", Options{Serializer: serializer.Options{ExcludeAttributes: true}})
	require.NoError(t, err)

	found, err := c.Lookup("a.py")
	require.NoError(t, err)
	assert.True(t, found.ExcludeAttributes)
	assert.Contains(t, found.Document, `"id": "'y'"`)
	assert.NotContains(t, found.Document, "lineno")

	paths, err := c.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, paths)
}

func TestRecordRejectsSyntaxErrors(t *testing.T) {
	c := openCorpus(t)
	_, err := c.RecordSource("bad.py", "x = (\n", Options{})
	require.Error(t, err)
	_, err = c.Lookup("bad.py")
	assert.True(t, errors.Is(err, ErrNotRecorded))
}

func TestRecordEvalMode(t *testing.T) {
	c := openCorpus(t)
	snapshot, err := c.RecordSource("expr.py", "a + b", Options{Mode: parser.EvalMode})
	require.NoError(t, err)
	assert.Contains(t, snapshot.Document, `"$type": "Expression"`)

	result, err := c.Check("expr.py")
	require.NoError(t, err)
	assert.False(t, result.Changed())
}

func TestLookupMissing(t *testing.T) {
	c := openCorpus(t)
	_, err := c.Lookup("nowhere.py")
	assert.ErrorIs(t, err, ErrNotRecorded)
	assert.EqualError(t, err, "no snapshot recorded: nowhere.py")
}

func TestPathsAreSorted(t *testing.T) {
	c := openCorpus(t)
	for _, path := range []string{"c.py", "a.py", "b.py"} {
		_, err := c.RecordSource(path, "pass\n", Options{})
		require.NoError(t, err)
	}
	paths, err := c.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.py", "c.py"}, paths)
}

func TestCheckUnchanged(t *testing.T) {
	c := openCorpus(t)
	_, err := c.RecordSource("virtual.py", "def f(a, *, b=2):\n    return a\n", Options{})
	require.NoError(t, err)

	result, err := c.Check("virtual.py")
	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.False(t, result.SourceChanged)
	assert.Equal(t, "", result.Diff)
}

func TestCheckReportsDrift(t *testing.T) {
	c := openCorpus(t)
	snapshot, err := c.RecordSource("virtual.py", "x = 1\n", Options{})
	require.NoError(t, err)
	require.NoError(t, c.Replace("virtual.py", strings.Replace(snapshot.Document, `"'x'"`, `"'z'"`, 1)))

	result, err := c.Check("virtual.py")
	require.NoError(t, err)
	assert.True(t, result.Changed())
	assert.Contains(t, result.Diff, `-          "id": "'z'",`)
	assert.Contains(t, result.Diff, `+          "id": "'x'",`)

	assert.ErrorIs(t, c.Replace("other.py", "{}"), ErrNotRecorded)
}

func TestCheckNoticesEditedFile(t *testing.T) {
	c := openCorpus(t)
	path := filepath.Join(t.TempDir(), "module.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))
	_, err := c.Record(path, Options{})
	require.NoError(t, err)

	result, err := c.Check(path)
	require.NoError(t, err)
	assert.False(t, result.SourceChanged)

	require.NoError(t, os.WriteFile(path, []byte("x = 2\n"), 0o644))
	result, err = c.Check(path)
	require.NoError(t, err)
	assert.True(t, result.SourceChanged)
	assert.False(t, result.Changed(), "the recorded source is what gets checked")
}

func TestCheckAll(t *testing.T) {
	c := openCorpus(t)
	for _, path := range []string{"b.py", "a.py"} {
		_, err := c.RecordSource(path, "pass\n", Options{})
		require.NoError(t, err)
	}
	results, err := c.CheckAll()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.py", results[0].Path)
	assert.Equal(t, "b.py", results[1].Path)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := openCorpus(t, WithLogger(logger))
	_, err := c.RecordSource("a.py", "pass\n", Options{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=\"recorded snapshot\" path=a.py mode=exec")
}
