package services

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"substitution-plan-notifier/dao"
	"substitution-plan-notifier/util"
)

// DigestRenderer draws the substitutions of several classes side by side,
// one column per class and one row per time block.
type DigestRenderer struct {
	style table.Style
}

func NewDigestRenderer() *DigestRenderer {
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Options.SeparateRows = true

	return &DigestRenderer{style: style}
}

// VisibleRange returns the smallest block range holding every present block.
// Classes without any present block widen the range to all blocks. ok is
// false for an empty input.
func VisibleRange(classSubstitutions map[string]dao.Substitutions) (first util.TimeBlock, last util.TimeBlock, ok bool) {
	if len(classSubstitutions) == 0 {
		return 0, 0, false
	}

	first, last = util.BlockCount-1, 0

	for _, substitutions := range classSubstitutions {
		f, present := substitutions.First()
		if !present {
			f = 0
		}

		l, present := substitutions.Last()
		if !present {
			l = util.BlockCount - 1
		}

		if f < first {
			first = f
		}

		if l > last {
			last = l
		}
	}

	return first, last, true
}

// Render returns the digest table. Columns are ordered by class name.
func (d *DigestRenderer) Render(classSubstitutions map[string]dao.Substitutions) string {
	classes := make([]string, 0, len(classSubstitutions))

	for class := range classSubstitutions {
		classes = append(classes, class)
	}

	sort.Strings(classes)

	writer := table.NewWriter()
	writer.SetStyle(d.style)

	header := table.Row{""}

	for _, class := range classes {
		header = append(header, class)
	}

	writer.AppendHeader(header)

	first, last, ok := VisibleRange(classSubstitutions)

	if ok {
		for block := first; block <= last; block++ {
			row := table.Row{block.Label()}

			for _, class := range classes {
				row = append(row, classSubstitutions[class][block].Text)
			}

			writer.AppendRow(row)
		}
	}

	return writer.Render()
}
