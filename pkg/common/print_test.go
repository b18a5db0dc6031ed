package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimValue(t *testing.T) {
	assert.Equal(t, "abcdef", TrimValue("abcdef", 0))
	assert.Equal(t, "abcdef", TrimValue("abcdef", 6))
	assert.Equal(t, "abc…", TrimValue("abcdef", 4))
	assert.Equal(t, "a", TrimValue("abcdef", 1))
}

func TestPickPrintFunc(t *testing.T) {
	for _, format := range []string{"", "json", "JSON", "indented", "yaml", "asciitree", "dot"} {
		if _, err := PickPrintFunc(format); err != nil {
			t.Errorf("Format %q: unexpected error %v", format, err)
		}
	}
	_, err := PickPrintFunc("xml")
	assert.EqualError(t, err, "unknown format: xml")
}

func TestPrintYAMLQuotesScalars(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintYAML(sampleDocument(), "  ", &buf, nil))
	expected := `$type: Module
body:
  - $type: Name
    id: '''x'''
    ctx:
      $type: Store
type_ignores: []
`
	assert.Equal(t, expected, buf.String())

	buf.Reset()
	obj := NewObject(2)
	obj.Set("lineno", String("1"))
	obj.Set("value", String("true"))
	require.NoError(t, PrintYAML(obj, "  ", &buf, nil))
	assert.Equal(t, "lineno: \"1\"\nvalue: \"true\"\n", buf.String())
}

func TestPrintAsciiTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintAsciiTree(sampleDocument(), "", &buf, nil))
	out := buf.String()
	for _, fragment := range []string{"Module", "body []", "[0]: Name", "id: 'x'", "ctx: Store"} {
		assert.Contains(t, out, fragment)
	}
}

func TestPrintDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintDOT(sampleDocument(), "", &buf, &PrintOptions{TrimTokenOnOutput: 10}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `"node_0" [label="Module", shape="box", fillcolor="lightpink"];`)
	assert.Contains(t, out, `"node_0" -> "node_1" [label="body"];`)
	assert.Contains(t, out, `id: 'x'`)
}

func TestPrintDOTCustomTypeKey(t *testing.T) {
	obj := NewObject(1)
	obj.Set("kind", String("Call"))
	var buf bytes.Buffer
	require.NoError(t, PrintDOT(obj, "", &buf, &PrintOptions{TypeKey: "kind"}))
	assert.Contains(t, buf.String(), `[label="Call", shape="box", fillcolor="lightgreen"]`)
}
