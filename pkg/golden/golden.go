// Package golden compares serialized syntax trees against recorded
// expectations and renders the differences line by line.
package golden

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/spicery/pyast-json/pkg/common"
)

// Render is the form documents are compared in: indented JSON, one member
// per line, so that differences line up with tree structure.
func Render(doc common.Value) string {
	return common.FormatIndentedJSON(doc, "  ") + "\n"
}

// Diff computes a line-level diff from want to got.
func Diff(want, got string) []diffpatch.Diff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// Equal reports whether a diff contains no insertions or deletions.
func Equal(diffs []diffpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			return false
		}
	}
	return true
}

// Printer writes diffs in unified style: "-" for lines only in the
// expectation, "+" for lines only in the actual output.
type Printer struct {
	Context int // Unchanged lines shown around each change; negative shows all
	removed *color.Color
	added   *color.Color
}

// NewPrinter creates a Printer that colors its output when colored is set.
func NewPrinter(colored bool) *Printer {
	pr := &Printer{
		Context: 3,
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
	}
	if colored {
		pr.removed.EnableColor()
		pr.added.EnableColor()
	} else {
		pr.removed.DisableColor()
		pr.added.DisableColor()
	}
	return pr
}

// NewPrinterFor colors output only when f is a terminal.
func NewPrinterFor(f *os.File) *Printer {
	return NewPrinter(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

type line struct {
	op   diffpatch.Operation
	text string
}

func splitLines(diffs []diffpatch.Diff) []line {
	var lines []line
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			lines = append(lines, line{op: d.Type, text: l})
		}
	}
	return lines
}

// Print writes the diff to w.
func (pr *Printer) Print(w io.Writer, diffs []diffpatch.Diff) error {
	lines := splitLines(diffs)
	show := make([]bool, len(lines))
	for i, l := range lines {
		if l.op == diffpatch.DiffEqual {
			continue
		}
		if pr.Context < 0 {
			break
		}
		for j := max(0, i-pr.Context); j <= min(len(lines)-1, i+pr.Context); j++ {
			show[j] = true
		}
	}
	skipped := false
	for i, l := range lines {
		if pr.Context >= 0 && !show[i] {
			skipped = true
			continue
		}
		if skipped {
			if _, err := fmt.Fprintln(w, "..."); err != nil {
				return err
			}
			skipped = false
		}
		var err error
		switch l.op {
		case diffpatch.DiffDelete:
			_, err = pr.removed.Fprintln(w, "-"+l.text)
		case diffpatch.DiffInsert:
			_, err = pr.added.Fprintln(w, "+"+l.text)
		default:
			_, err = fmt.Fprintln(w, " "+l.text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Sprint renders the diff as a string without color.
func Sprint(diffs []diffpatch.Diff) string {
	var sb strings.Builder
	NewPrinter(false).Print(&sb, diffs)
	return sb.String()
}

// Compare renders both documents and returns the uncolored diff, or the
// empty string when they are identical.
func Compare(want, got common.Value) string {
	return CompareText(Render(want), Render(got))
}

// CompareText is Compare for documents that are already rendered.
func CompareText(want, got string) string {
	diffs := Diff(want, got)
	if Equal(diffs) {
		return ""
	}
	return Sprint(diffs)
}
