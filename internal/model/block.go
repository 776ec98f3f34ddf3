package model

import (
	"fmt"
	"strings"
)

type Block string

const (
	BlockMorning   Block = "morning"
	BlockAfternoon Block = "afternoon"
	BlockEvening   Block = "evening"
	BlockNight     Block = "night"
)

// Blocks returns the time blocks in display order.
func Blocks() []Block {
	return []Block{BlockMorning, BlockAfternoon, BlockEvening, BlockNight}
}

func (b Block) IsValid() bool {
	switch b {
	case BlockMorning, BlockAfternoon, BlockEvening, BlockNight:
		return true
	default:
		return false
	}
}

// Index is the display position of b, or -1.
func (b Block) Index() int {
	for i, candidate := range Blocks() {
		if candidate == b {
			return i
		}
	}
	return -1
}

func ParseBlock(raw string) (Block, error) {
	b := Block(strings.ToLower(strings.TrimSpace(raw)))
	if !b.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBlock, raw)
	}
	return b, nil
}

func DefaultLabels() map[Block]string {
	return map[Block]string{
		BlockMorning:   "10am - 2pm",
		BlockAfternoon: "2pm - 6pm",
		BlockEvening:   "6pm - 10pm",
		BlockNight:     "10pm - Sleep",
	}
}

// BlockForHour maps an hour of the day onto the fixed block ranges.
// The small hours before 04:00 still belong to the previous night.
func BlockForHour(hour int) Block {
	switch {
	case hour >= 4 && hour < 14:
		return BlockMorning
	case hour >= 14 && hour < 18:
		return BlockAfternoon
	case hour >= 18 && hour < 22:
		return BlockEvening
	default:
		return BlockNight
	}
}
