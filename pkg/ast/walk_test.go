package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleModule() *Module {
	return &Module{
		Body: []Stmt{
			&Assign{
				Targets: []Expr{&Name{Id: "x", Ctx: Store}},
				Value:   &BinOp{Left: &Constant{Value: Int(1)}, Op: Add, Right: &Name{Id: "y", Ctx: Load}},
			},
			&Pass{},
		},
	}
}

func kinds(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind()
	}
	return out
}

func TestChildren(t *testing.T) {
	module := sampleModule()
	if diff := cmp.Diff([]string{"Assign", "Pass"}, kinds(Children(module, Python))); diff != "" {
		t.Errorf("Module children mismatch (-want +got):\n%s", diff)
	}
	assign := module.Body[0].(*Assign)
	if diff := cmp.Diff([]string{"Name", "BinOp"}, kinds(Children(assign, Python))); diff != "" {
		t.Errorf("Assign children mismatch (-want +got):\n%s", diff)
	}
	if got := Children(module, Table{}); got != nil {
		t.Errorf("Expected no children without a schema, got %v", kinds(got))
	}
}

func TestWalkIsDepthFirstInSchemaOrder(t *testing.T) {
	var visited []Node
	Walk(sampleModule(), Python, func(n Node) bool {
		visited = append(visited, n)
		return true
	})
	expected := []string{"Module", "Assign", "Name", "Store", "BinOp", "Constant", "Add", "Name", "Load", "Pass"}
	if diff := cmp.Diff(expected, kinds(visited)); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	var visited []Node
	Walk(sampleModule(), Python, func(n Node) bool {
		visited = append(visited, n)
		return n.Kind() != "Assign"
	})
	if diff := cmp.Diff([]string{"Module", "Assign", "Pass"}, kinds(visited)); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
}
