package common

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleDocument() *Object {
	name := NewObject(3)
	name.Set("$type", String("Name"))
	name.Set("id", String("'x'"))
	ctx := NewObject(1)
	ctx.Set("$type", String("Store"))
	name.Set("ctx", ctx)

	root := NewObject(3)
	root.Set("$type", String("Module"))
	root.Set("body", Array{name})
	root.Set("type_ignores", Array{})
	return root
}

func TestFormatJSONCompact(t *testing.T) {
	expected := `{"$type":"Module","body":[{"$type":"Name","id":"'x'","ctx":{"$type":"Store"}}],"type_ignores":[]}`
	if got := FormatJSON(sampleDocument(), CompactStyle); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestFormatJSONPythonSeparators(t *testing.T) {
	expected := `{"$type": "Module", "body": [{"$type": "Name", "id": "'x'", "ctx": {"$type": "Store"}}], "type_ignores": []}`
	if got := FormatJSON(sampleDocument(), PythonStyle); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestFormatIndentedJSON(t *testing.T) {
	expected := `{
  "$type": "Module",
  "body": [
    {
      "$type": "Name",
      "id": "'x'",
      "ctx": {
        "$type": "Store"
      }
    }
  ],
  "type_ignores": []
}`
	if got := FormatIndentedJSON(sampleDocument(), "  "); got != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestEscaping(t *testing.T) {
	tests := map[string]string{
		`plain`:          `"plain"`,
		`say "hi"`:       `"say \"hi\""`,
		`back\slash`:     `"back\\slash"`,
		"tab\tnew\nline": `"tab\tnew\nline"`,
		"\x00\x1f\x7f":   `"\u0000\u001f\u007f"`,
		"caf\u00e9":      `"caf\u00e9"`,
		"\U0001F600":     `"\ud83d\ude00"`,
		"\b\f\r":         `"\b\f\r"`,
	}
	for input, expected := range tests {
		if got := FormatJSON(String(input), CompactStyle); got != expected {
			t.Errorf("%q: expected %s, got %s", input, expected, got)
		}
	}
}

func TestOutputIsValidJSON(t *testing.T) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(FormatJSON(sampleDocument(), CompactStyle)), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["$type"] != "Module" {
		t.Errorf("Expected $type Module, got %v", decoded["$type"])
	}
}

func TestMarshalJSONKeepsOrder(t *testing.T) {
	data, err := json.Marshal(sampleDocument())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"$type":"Module","body":`) {
		t.Errorf("Expected members in insertion order, got %s", data)
	}
}

func TestObjectSetReplaces(t *testing.T) {
	obj := NewObject(2)
	obj.Set("a", String("1"))
	obj.Set("b", String("2"))
	obj.Set("a", String("3"))
	if strings.Join(obj.Keys(), ",") != "a,b" {
		t.Errorf("Expected keys a,b, got %v", obj.Keys())
	}
	if v, _ := obj.Get("a"); v != String("3") {
		t.Errorf("Expected a=3, got %v", v)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(Array{}, "", &buf, nil); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("Expected []\\n, got %q", buf.String())
	}

	buf.Reset()
	if err := PrintJSON(sampleDocument(), "", &buf, &PrintOptions{PythonSeparators: true}); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), `{"$type": "Module"`) {
		t.Errorf("Expected Python separators, got %s", buf.String())
	}
}
