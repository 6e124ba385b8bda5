package engine

import (
	"maps"
	"slices"
)

// Press handles a keyboard key name and reports whether it was recognised.
func (e *Engine) Press(key string) bool {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		e.EnterDigit(rune(key[0]))
		return true
	}

	switch key {
	case ".":
		e.EnterDecimalPoint()
	case "+":
		e.ApplyOperator(OpAdd)
	case "-":
		e.ApplyOperator(OpSub)
	case "*":
		e.ApplyOperator(OpMul)
	case "/":
		e.ApplyOperator(OpDiv)
	case "^":
		e.ApplyOperator(OpPow)
	case "=", "Enter":
		e.Calculate()
	case "Backspace":
		e.Backspace()
	case "Escape":
		e.ClearAll()
	case "%":
		e.Percent()
	default:
		return false
	}
	return true
}

var actions = map[string]func(*Engine){
	"c":          (*Engine).ClearAll,
	"ce":         (*Engine).ClearEntry,
	"backspace":  (*Engine).Backspace,
	"percent":    (*Engine).Percent,
	"negate":     (*Engine).ToggleSign,
	"decimal":    (*Engine).EnterDecimalPoint,
	"equals":     (*Engine).Calculate,
	"add":        operator(OpAdd),
	"sub":        operator(OpSub),
	"mul":        operator(OpMul),
	"div":        operator(OpDiv),
	"pow":        operator(OpPow),
	"mod":        operator(OpMod),
	"sqrt":       unary(UnarySqrt),
	"square":     unary(UnarySquare),
	"reciprocal": unary(UnaryReciprocal),
	"sin":        unary(UnarySin),
	"cos":        unary(UnaryCos),
	"tan":        unary(UnaryTan),
	"log":        unary(UnaryLog10),
	"ln":         unary(UnaryLn),
	"abs":        unary(UnaryAbs),
	"exp":        unary(UnaryExp),
	"pow10":      unary(UnaryPow10),
	"factorial":  unary(UnaryFactorial),
	"pi":         constant(ConstPi),
	"e":          constant(ConstE),
	"mc":         memory(MemoryClear),
	"mr":         memory(MemoryRecall),
	"ms":         memory(MemoryStore),
	"m+":         memory(MemoryAdd),
	"m-":         memory(MemorySubtract),
}

// Apply runs the button action with the given name and reports whether it
// exists. Digits and "." are accepted as well.
func (e *Engine) Apply(action string) bool {
	if fn, ok := actions[action]; ok {
		fn(e)
		return true
	}
	if len(action) == 1 && (action == "." || action[0] >= '0' && action[0] <= '9') {
		return e.Press(action)
	}
	return false
}

// Actions lists the names accepted by Apply in sorted order, excluding digits.
func Actions() []string {
	return slices.Sorted(maps.Keys(actions))
}

func operator(op Operator) func(*Engine) {
	return func(e *Engine) { e.ApplyOperator(op) }
}

func unary(u Unary) func(*Engine) {
	return func(e *Engine) { e.ApplyUnary(u) }
}

func constant(c Constant) func(*Engine) {
	return func(e *Engine) { e.InsertConstant(c) }
}

func memory(op MemoryOp) func(*Engine) {
	return func(e *Engine) { e.Memory(op) }
}
