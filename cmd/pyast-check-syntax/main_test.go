package main

import (
	"bytes"
	"strings"
	"testing"
)

func check(stdin string, args ...string) (string, string, int) {
	var stdout, stderr bytes.Buffer
	status := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), status
}

func TestValidSourceIsEchoed(t *testing.T) {
	out, errOut, status := check("def f():\n    return 1\n", "--no-attributes")
	if status != 0 {
		t.Fatalf("Expected exit 0, got %d (stderr %q)", status, errOut)
	}
	if !strings.HasPrefix(out, `{"$type":"Module","body":[{"$type":"FunctionDef","name":"'f'"`) {
		t.Errorf("Expected the serialized module, got %s", out)
	}
}

func TestIssuesAreReported(t *testing.T) {
	out, errOut, status := check("return\nbreak\n")
	if status != 1 {
		t.Errorf("Expected exit 1, got %d", status)
	}
	if out != "" {
		t.Errorf("Expected no output, got %q", out)
	}
	expected := "Errors found in the source code:\n" +
		"  [1]. 'return' outside function, at line 1, column 0\n" +
		"  [2]. 'break' outside loop, at line 2, column 0\n"
	if errOut != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, errOut)
	}
}

func TestDuplicateArgument(t *testing.T) {
	_, errOut, status := check("def f(a, a):\n    pass\n")
	if status != 1 {
		t.Errorf("Expected exit 1, got %d", status)
	}
	if !strings.Contains(errOut, "duplicate argument 'a' in function definition, at line 1, column 9") {
		t.Errorf("Expected a duplicate argument report, got %q", errOut)
	}
}

func TestSyntaxErrorStopsBeforeChecking(t *testing.T) {
	_, errOut, status := check("def f(:\n")
	if status != 1 {
		t.Errorf("Expected exit 1, got %d", status)
	}
	if !strings.HasPrefix(errOut, "Error parsing input: ") {
		t.Errorf("Expected a parse error, got %q", errOut)
	}
}

func TestEvalMode(t *testing.T) {
	out, _, status := check("await x", "-m", "eval")
	if status != 1 {
		t.Errorf("Expected exit 1 for await outside a function, got %d", status)
	}
	if out != "" {
		t.Errorf("Expected no output, got %q", out)
	}
}

func TestYAMLOutput(t *testing.T) {
	out, _, status := check("pass\n", "-f", "yaml", "--no-attributes")
	if status != 0 {
		t.Fatalf("Expected exit 0, got %d", status)
	}
	expected := "$type: Module\nbody:\n  - $type: Pass\ntype_ignores: []\n"
	if out != expected {
		t.Errorf("Expected %q, got %q", expected, out)
	}
}

func TestPositionalArgumentsRejected(t *testing.T) {
	_, errOut, status := check("", "file.py")
	if status != 1 {
		t.Errorf("Expected exit 1, got %d", status)
	}
	if !strings.HasPrefix(errOut, "Error: Unexpected positional arguments") {
		t.Errorf("Expected a usage error, got %q", errOut)
	}
}
