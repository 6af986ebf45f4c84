package util

import (
	"fmt"
	"time"
)

const BlockCount = 6

// TimeBlock is the index of one of the six daily lesson periods.
type TimeBlock int

type blockTimes struct {
	start time.Duration
	end   time.Duration
}

var timeBlocks = [BlockCount]blockTimes{
	{start: 7*time.Hour + 15*time.Minute, end: 8 * time.Hour},
	{start: 8 * time.Hour, end: 9*time.Hour + 30*time.Minute},
	{start: 9*time.Hour + 50*time.Minute, end: 11*time.Hour + 20*time.Minute},
	{start: 11*time.Hour + 40*time.Minute, end: 13*time.Hour + 10*time.Minute},
	{start: 13*time.Hour + 30*time.Minute, end: 15 * time.Hour},
	{start: 15*time.Hour + 15*time.Minute, end: 16*time.Hour + 45*time.Minute},
}

func (b TimeBlock) Valid() bool {
	return b >= 0 && b < BlockCount
}

// Start is the offset of the period from midnight, or zero for an invalid block.
func (b TimeBlock) Start() time.Duration {
	if !b.Valid() {
		return 0
	}

	return timeBlocks[b].start
}

func (b TimeBlock) End() time.Duration {
	if !b.Valid() {
		return 0
	}

	return timeBlocks[b].end
}

// Label renders the block as "1: 08:00\n - 09:30".
func (b TimeBlock) Label() string {
	return fmt.Sprintf("%d: %s\n - %s", int(b), clock(b.Start()), clock(b.End()))
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
