package initcmd

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffAdd = color.New(color.FgGreen)
	diffDel = color.New(color.FgRed)
)

// Diff renders a colored line diff between the old and new contents of
// a Result. An unchanged result renders as an empty string.
func (r *Result) Diff() string {
	if !r.Changed {
		return ""
	}

	dmp := diffmatchpatch.New()

	src, dst, lineArray := dmp.DiffLinesToChars(r.Old, r.New)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lineArray)

	b := &strings.Builder{}
	b.WriteString("--- " + r.Path + "\n")

	for _, d := range diffs {
		for _, line := range splitDiffLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				diffAdd.Fprintf(b, "+%s\n", line)
			case diffmatchpatch.DiffDelete:
				diffDel.Fprintf(b, "-%s\n", line)
			case diffmatchpatch.DiffEqual:
				b.WriteString(" " + line + "\n")
			}
		}
	}

	return b.String()
}

func splitDiffLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}
