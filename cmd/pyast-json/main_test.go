package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.py")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path
}

func TestSingleAssignment(t *testing.T) {
	var stdout, stderr bytes.Buffer
	status := run([]string{writeSource(t, "x = 1\n")}, &stdout, &stderr)
	if status != 0 {
		t.Fatalf("Expected exit 0, got %d (stderr %q)", status, stderr.String())
	}
	expected := `{"$type":"Module","body":[{"$type":"Assign","targets":[{"$type":"Name","id":"'x'","ctx":{"$type":"Store"},"lineno":"1","col_offset":"0","end_lineno":"1","end_col_offset":"1"}],"value":{"$type":"Constant","value":"1","lineno":"1","col_offset":"4","end_lineno":"1","end_col_offset":"5"},"lineno":"1","col_offset":"0","end_lineno":"1","end_col_offset":"5"}],"type_ignores":[]}` + "\n"
	if stdout.String() != expected {
		t.Errorf("Expected %s, got %s", expected, stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected no diagnostics, got %q", stderr.String())
	}
}

func TestOutputIsOneLine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	source := "def f(a: int) -> None:  # type: (int) -> None\n    '''doc'''\n    return\n"
	if status := run([]string{writeSource(t, source)}, &stdout, &stderr); status != 0 {
		t.Fatalf("Expected exit 0, got %d", status)
	}
	out := stdout.String()
	if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
		t.Errorf("Expected a single line, got %q", out)
	}
	if !strings.Contains(out, `"type_comment":"'(int) -> None'"`) {
		t.Errorf("Expected the type comment to be kept, got %s", out)
	}
}

func TestWrongArgumentCount(t *testing.T) {
	path := writeSource(t, "x = 1\n")
	for _, args := range [][]string{{}, {path, path}, {path, path, path}} {
		var stdout, stderr bytes.Buffer
		if status := run(args, &stdout, &stderr); status != 1 {
			t.Errorf("%v: expected exit 1, got %d", args, status)
		}
		if stdout.Len() != 0 || stderr.Len() != 0 {
			t.Errorf("%v: expected no output, got %q and %q", args, stdout.String(), stderr.String())
		}
	}
}

func TestUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := run([]string{"-bogus", "file.py"}, &stdout, &stderr); status != 1 {
		t.Errorf("Expected exit 1, got %d", status)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("Expected no output, got %q and %q", stdout.String(), stderr.String())
	}
}

func TestSyntaxError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := run([]string{writeSource(t, "x = 1 +\n")}, &stdout, &stderr); status != 1 {
		t.Errorf("Expected exit 1, got %d", status)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout.String())
	}
	if !strings.HasPrefix(stderr.String(), "Error: invalid syntax") {
		t.Errorf("Expected a syntax error diagnostic, got %q", stderr.String())
	}
}

func TestUndecodableSource(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := run([]string{writeSource(t, "x = \"\xff\"\n")}, &stdout, &stderr); status != 1 {
		t.Errorf("Expected exit 1, got %d", status)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout.String())
	}
	expected := "Error: 'utf-8' codec can't decode byte 0xff in position 5: invalid start byte"
	if !strings.HasPrefix(stderr.String(), expected) {
		t.Errorf("Expected %q, got %q", expected, stderr.String())
	}
}

func TestMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := run([]string{filepath.Join(t.TempDir(), "absent.py")}, &stdout, &stderr); status != 1 {
		t.Errorf("Expected exit 1, got %d", status)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout.String())
	}
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := run([]string{"-version"}, &stdout, &stderr); status != 0 {
		t.Errorf("Expected exit 0, got %d", status)
	}
	if stdout.String() != "pyast-json version dev\n" {
		t.Errorf("Expected version line, got %q", stdout.String())
	}
}
