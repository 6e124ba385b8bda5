// Package engine implements the calculator evaluation state machine: operand
// entry, pending-operator accumulation, result computation, memory slots and
// the history log.
//
// An Engine is not safe for concurrent use. Hosts must serialise input events
// and read a Snapshot after every call.
package engine

import (
	"strings"
	"time"
)

// ErrorDisplay is shown while the engine is in the error state.
const ErrorDisplay = "Error"

// HistoryEntry records one completed calculation.
type HistoryEntry struct {
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Timestamp  time.Time `json:"timestamp"`
}

// State is a read-only projection of the engine for rendering.
type State struct {
	Display         string         `json:"display"`
	Expression      string         `json:"expression"`
	PendingOperator string         `json:"pending_operator,omitempty"`
	Error           bool           `json:"error"`
	Memory          []string       `json:"memory"`
	History         []HistoryEntry `json:"history"`
}

// Engine holds the state of one calculator session.
type Engine struct {
	display    string
	expression string

	acc     float64
	hasAcc  bool
	pending Operator

	awaiting bool
	// fresh is set by ApplyOperator and cleared by the next display change.
	fresh bool

	memory  []string
	history []HistoryEntry

	fault error
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to timestamp history entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New returns an engine showing "0".
func New(opts ...Option) *Engine {
	e := &Engine{
		display:  "0",
		awaiting: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Display returns the current display text.
func (e *Engine) Display() string { return e.display }

// Expression returns the trail of the operation in progress.
func (e *Engine) Expression() string { return e.expression }

// HistoryLen returns the number of history entries.
func (e *Engine) HistoryLen() int { return len(e.history) }

// LastEntry returns the most recent history entry.
func (e *Engine) LastEntry() (HistoryEntry, bool) {
	if len(e.history) == 0 {
		return HistoryEntry{}, false
	}
	return e.history[0], true
}

// Fault returns the domain error behind the error state, or nil.
func (e *Engine) Fault() error { return e.fault }

// Snapshot copies the state visible to the UI layer.
func (e *Engine) Snapshot() State {
	s := State{
		Display:    e.display,
		Expression: e.expression,
		Error:      e.fault != nil,
		Memory:     append([]string{}, e.memory...),
		History:    append([]HistoryEntry{}, e.history...),
	}
	if e.pending != OpNone {
		s.PendingOperator = e.pending.String()
	}
	return s
}

// EnterDigit appends d to the operand being typed, or starts a new one.
// Runes other than '0'..'9' are ignored.
func (e *Engine) EnterDigit(d rune) {
	if e.fault != nil || d < '0' || d > '9' {
		return
	}

	switch {
	case !e.extendable():
		e.display = string(d)
		e.awaiting = false
	case e.display == "0":
		e.display = string(d)
	default:
		e.display += string(d)
	}
	e.fresh = false
}

// EnterDecimalPoint adds a decimal point once per operand.
func (e *Engine) EnterDecimalPoint() {
	if e.fault != nil {
		return
	}

	if !e.extendable() {
		e.display = "0."
		e.awaiting = false
	} else if !strings.Contains(e.display, ".") {
		e.display += "."
	}
	e.fresh = false
}

// ApplyOperator records op as the pending operator, resolving any operation
// already pending against the current display.
func (e *Engine) ApplyOperator(op Operator) {
	if e.fault != nil || op == OpNone {
		return
	}
	value, ok := parseNumber(e.display)
	if !ok {
		return
	}

	suffix := " " + op.Symbol() + " "

	switch {
	case !e.hasAcc:
		e.acc = value
		e.hasAcc = true
		e.expression = e.display + suffix
	case e.pending != OpNone && e.fresh:
		// Operator pressed again before a new operand: swap it.
		e.expression = strings.TrimSuffix(e.expression, " "+e.pending.Symbol()+" ") + suffix
	case e.pending != OpNone:
		result, err := resolve(e.acc, value, e.pending)
		if err != nil {
			e.fail(err)
			return
		}
		e.acc = result
		e.expression += e.display + suffix
	default:
		e.expression = e.display + suffix
	}

	e.pending = op
	e.awaiting = true
	e.fresh = true
}

// Calculate resolves the pending operation and records it in history.
func (e *Engine) Calculate() {
	if e.fault != nil || e.pending == OpNone {
		return
	}
	value, ok := parseNumber(e.display)
	if !ok {
		return
	}

	result, err := resolve(e.acc, value, e.pending)
	if err != nil {
		e.fail(err)
		return
	}

	formatted := formatNumber(result)
	e.record(e.expression+e.display+"=", formatted)

	e.display = formatted
	e.acc = 0
	e.hasAcc = false
	e.pending = OpNone
	e.expression = ""
	e.awaiting = true
	e.fresh = false
}

// ApplyUnary replaces the display with u applied to it. Pending operator
// state is left alone.
func (e *Engine) ApplyUnary(u Unary) {
	if e.fault != nil {
		return
	}
	value, ok := parseNumber(e.display)
	if !ok {
		return
	}

	result, err := u.eval(value)
	if err != nil {
		e.fail(err)
		return
	}

	formatted := formatNumber(result)
	e.record(u.Symbol()+"("+e.display+")=", formatted)

	e.display = formatted
	e.awaiting = true
	e.fresh = false
}

// ToggleSign negates the display. Zero is left as is.
func (e *Engine) ToggleSign() {
	if e.fault != nil {
		return
	}
	value, ok := parseNumber(e.display)
	if !ok || value == 0 {
		return
	}
	e.display = formatNumber(-value)
	e.fresh = false
}

// Percent divides the display by 100.
func (e *Engine) Percent() {
	if e.fault != nil {
		return
	}
	value, ok := parseNumber(e.display)
	if !ok {
		return
	}
	e.display = formatNumber(value / 100)
	e.fresh = false
}

// ClearAll resets the display and any pending operation. Memory and history
// survive.
func (e *Engine) ClearAll() {
	e.display = "0"
	e.expression = ""
	e.acc = 0
	e.hasAcc = false
	e.pending = OpNone
	e.awaiting = true
	e.fresh = false
	e.fault = nil
}

// ClearEntry resets only the display, keeping the pending operation.
func (e *Engine) ClearEntry() {
	e.display = "0"
	e.awaiting = true
	e.fresh = false
	e.fault = nil
}

// Backspace removes the last typed character.
func (e *Engine) Backspace() {
	if e.fault != nil || e.awaiting || e.display == "0" {
		return
	}

	next := e.display[:len(e.display)-1]
	// Drop a dangling sign or exponent marker along with the digit.
	for next != "" {
		if _, ok := parseNumber(next); ok {
			break
		}
		next = next[:len(next)-1]
	}
	if next == "" {
		next = "0"
	}
	e.display = next
}

// InsertConstant shows the value of c as a complete operand.
func (e *Engine) InsertConstant(c Constant) {
	if e.fault != nil {
		return
	}
	value, ok := c.value()
	if !ok {
		return
	}
	e.display = formatNumber(value)
	e.awaiting = true
	e.fresh = false
}

// UseValue copies a history result or memory slot into the display so it can
// be extended or operated on. Text that does not parse is ignored.
func (e *Engine) UseValue(text string) {
	if e.fault != nil {
		return
	}
	if _, ok := parseNumber(text); !ok {
		return
	}
	e.display = text
	e.awaiting = false
	e.fresh = false
}

// extendable reports whether typing continues the displayed operand.
// Exponent-form values are complete and are replaced instead.
func (e *Engine) extendable() bool {
	return !e.awaiting && !strings.ContainsAny(e.display, "eE")
}

func (e *Engine) fail(err error) {
	e.display = ErrorDisplay
	e.expression = ""
	e.acc = 0
	e.hasAcc = false
	e.pending = OpNone
	e.awaiting = true
	e.fresh = false
	e.fault = err
}
