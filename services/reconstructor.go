package services

import (
	"fmt"
	"strings"
	"time"

	"substitution-plan-notifier/dao"
	"substitution-plan-notifier/exceptions"
	"substitution-plan-notifier/util"
)

// RowTerminator reports whether a row label closes the row group of the current block.
type RowTerminator func(label string) bool

const DefaultTerminatorPrefix = "-"

func PrefixTerminator(prefix string) RowTerminator {
	return func(label string) bool {
		return strings.HasPrefix(label, prefix)
	}
}

// TableReconstructor turns the page tables of one plan into a Schedule.
type TableReconstructor struct {
	isTerminator RowTerminator
	now          func() time.Time
}

func NewTableReconstructor(terminator RowTerminator) *TableReconstructor {
	if terminator == nil {
		terminator = PrefixTerminator(DefaultTerminatorPrefix)
	}

	return &TableReconstructor{isTerminator: terminator, now: time.Now}
}

// Reconstruct merges all pages into one schedule. A class found on more than
// one page keeps the entry of the last page.
func (r *TableReconstructor) Reconstruct(pages [][][]string, creationDate time.Time) (*dao.Schedule, error) {
	entries := map[string]dao.Substitutions{}

	for pageIdx, page := range pages {
		pageEntries, err := r.reconstructPage(pageIdx, page)

		if err != nil {
			return nil, err
		}

		for class, substitutions := range pageEntries {
			entries[class] = substitutions
		}
	}

	return dao.NewSchedule(creationDate, r.now(), entries), nil
}

func (r *TableReconstructor) reconstructPage(pageIdx int, page [][]string) (map[string]dao.Substitutions, error) {
	if len(page) == 0 || len(page[0]) <= 1 {
		return nil, nil
	}

	header := page[0]
	classes := header[1:]
	columns := make([]dao.Substitutions, len(classes))

	row := 1

	for block := util.TimeBlock(0); block < util.BlockCount; block++ {
		for {
			if row >= len(page) {
				return nil, &exceptions.MalformedTableError{
					Page:   pageIdx,
					Row:    row,
					Reason: fmt.Sprintf("table ends before block %d is terminated", block),
				}
			}

			cells := page[row]

			if len(cells) != len(header) {
				return nil, &exceptions.MalformedTableError{
					Page:   pageIdx,
					Row:    row,
					Reason: fmt.Sprintf("row has %d cells but the header has %d", len(cells), len(header)),
				}
			}

			for i, cell := range cells[1:] {
				if cell == "" {
					continue
				}

				columns[i][block] = appendLine(columns[i][block], cell)
			}

			row++

			if r.isTerminator(cells[0]) {
				break
			}
		}
	}

	entries := make(map[string]dao.Substitutions, len(classes))

	for i, class := range classes {
		// merged header cells come out empty
		if class == "" {
			continue
		}

		entries[class] = columns[i]
	}

	return entries, nil
}

func appendLine(block dao.Block, line string) dao.Block {
	if !block.Present {
		return dao.NewBlock(line)
	}

	return dao.NewBlock(block.Text + "\n" + line)
}
