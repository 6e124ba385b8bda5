package engine

import "math"

// MemoryOp is one of the memory buttons.
type MemoryOp int

const (
	MemoryClear MemoryOp = iota + 1
	MemoryRecall
	MemoryStore
	MemoryAdd
	MemorySubtract
)

// Constant is a named value that can be inserted into the display.
type Constant int

const (
	ConstPi Constant = iota + 1
	ConstE
)

func (c Constant) value() (float64, bool) {
	switch c {
	case ConstPi:
		return math.Pi, true
	case ConstE:
		return math.E, true
	}
	return 0, false
}

// Memory applies op to the most recently stored slot. Store always adds a new
// slot in front; add and subtract update slot 0 in place.
func (e *Engine) Memory(op MemoryOp) {
	if op == MemoryClear {
		e.memory = nil
		return
	}
	if e.fault != nil {
		return
	}

	if op == MemoryRecall {
		if len(e.memory) > 0 {
			e.display = e.memory[0]
			e.awaiting = false
			e.fresh = false
		}
		return
	}

	value, ok := parseNumber(e.display)
	if !ok {
		return
	}

	switch op {
	case MemoryStore:
		e.memory = append([]string{formatNumber(value)}, e.memory...)
	case MemoryAdd, MemorySubtract:
		if op == MemorySubtract {
			value = -value
		}
		if len(e.memory) == 0 {
			e.memory = []string{formatNumber(value)}
			break
		}
		slot, _ := parseNumber(e.memory[0])
		sum := slot + value
		if !finite(sum) {
			return
		}
		e.memory[0] = formatNumber(sum)
	default:
		return
	}
	e.awaiting = true
}

// ClearHistory empties the history log.
func (e *Engine) ClearHistory() {
	e.history = nil
}

func (e *Engine) record(expression, result string) {
	entry := HistoryEntry{
		Expression: expression,
		Result:     result,
		Timestamp:  e.now(),
	}
	e.history = append([]HistoryEntry{entry}, e.history...)
}
