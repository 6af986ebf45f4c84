package dao

import (
	"sort"
	"time"

	"github.com/goccy/go-json"

	"substitution-plan-notifier/util"
)

// Block is the announced text of one time block. A zero Block is absent,
// which is not the same as a present block holding an empty string.
type Block struct {
	Text    string
	Present bool
}

func NewBlock(text string) Block {
	return Block{Text: text, Present: true}
}

func (b Block) MarshalJSON() ([]byte, error) {
	if !b.Present {
		return []byte("null"), nil
	}

	return json.Marshal(b.Text)
}

func (b *Block) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Block{}
		return nil
	}

	var text string

	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}

	*b = NewBlock(text)

	return nil
}

// Substitutions holds one optional text per time block. Arrays of comparable
// structs compare with ==, which is what change detection relies on.
type Substitutions [util.BlockCount]Block

// First returns the index of the first present block, ok is false if none is.
func (s Substitutions) First() (util.TimeBlock, bool) {
	for i, block := range s {
		if block.Present {
			return util.TimeBlock(i), true
		}
	}

	return 0, false
}

// Last returns the index of the last present block, ok is false if none is.
func (s Substitutions) Last() (util.TimeBlock, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Present {
			return util.TimeBlock(i), true
		}
	}

	return 0, false
}

func (s Substitutions) IsEmpty() bool {
	_, ok := s.First()
	return !ok
}

type Schedule struct {
	CreationDate time.Time                `json:"creation-date"`
	GeneratedAt  time.Time                `json:"generated-at"`
	Entries      map[string]Substitutions `json:"entries"`
}

func NewSchedule(creationDate time.Time, generatedAt time.Time, entries map[string]Substitutions) *Schedule {
	if entries == nil {
		entries = map[string]Substitutions{}
	}

	return &Schedule{CreationDate: creationDate, GeneratedAt: generatedAt, Entries: entries}
}

func (s *Schedule) GetSubstitutions(class string) (Substitutions, bool) {
	if s == nil {
		return Substitutions{}, false
	}

	substitutions, ok := s.Entries[class]

	return substitutions, ok
}

// Classes returns the class names of the schedule in sorted order.
func (s *Schedule) Classes() []string {
	if s == nil {
		return nil
	}

	classes := make([]string, 0, len(s.Entries))

	for class := range s.Entries {
		classes = append(classes, class)
	}

	sort.Strings(classes)

	return classes
}

// IsStale reports whether the plan was printed for a day before the one containing now.
func (s *Schedule) IsStale(now time.Time) bool {
	return s.CreationDate.Before(util.GetMidnightTime(now))
}
