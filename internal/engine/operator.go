package engine

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors move the engine into the error state. They are never
// returned from engine operations; Engine.Fault exposes the cause.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("domain error")
)

// Operator is a binary operator awaiting its right operand.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpMod
)

// Symbol is the text used for the operator in the expression trail.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	case OpPow:
		return "^"
	case OpMod:
		return "mod"
	}
	return ""
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpPow:
		return "pow"
	case OpMod:
		return "mod"
	}
	return "none"
}

// resolve applies op to left and right. Non-finite results are domain errors.
func resolve(left, right float64, op Operator) (float64, error) {
	var result float64

	switch op {
	case OpAdd:
		result = left + right
	case OpSub:
		result = left - right
	case OpMul:
		result = left * right
	case OpDiv:
		if right == 0 {
			return 0, fmt.Errorf("%w: %s ÷ 0", ErrDivisionByZero, formatNumber(left))
		}
		result = left / right
	case OpPow:
		result = math.Pow(left, right)
	case OpMod:
		if right == 0 {
			return 0, fmt.Errorf("%w: %s mod 0", ErrDivisionByZero, formatNumber(left))
		}
		result = math.Mod(left, right)
	default:
		return 0, fmt.Errorf("%w: unknown operator %d", ErrDomain, int(op))
	}

	if !finite(result) {
		return 0, fmt.Errorf("%w: %s %s %s is not finite", ErrDomain, formatNumber(left), op.Symbol(), formatNumber(right))
	}
	return result, nil
}

// Unary is a single-operand function applied to the display value.
type Unary int

const (
	UnarySqrt Unary = iota + 1
	UnarySquare
	UnaryReciprocal
	UnarySin
	UnaryCos
	UnaryTan
	UnaryLog10
	UnaryLn
	UnaryAbs
	UnaryExp
	UnaryPow10
	UnaryFactorial
)

// maxFactorial is the largest n whose factorial fits in a float64.
const maxFactorial = 170

// Symbol is the function name recorded in history, as in "√(16)=".
func (u Unary) Symbol() string {
	switch u {
	case UnarySqrt:
		return "√"
	case UnarySquare:
		return "sqr"
	case UnaryReciprocal:
		return "1/"
	case UnarySin:
		return "sin"
	case UnaryCos:
		return "cos"
	case UnaryTan:
		return "tan"
	case UnaryLog10:
		return "log"
	case UnaryLn:
		return "ln"
	case UnaryAbs:
		return "abs"
	case UnaryExp:
		return "exp"
	case UnaryPow10:
		return "10^"
	case UnaryFactorial:
		return "fact"
	}
	return ""
}

func (u Unary) eval(x float64) (float64, error) {
	var result float64

	switch u {
	case UnarySqrt:
		if x < 0 {
			return 0, fmt.Errorf("%w: √ of negative %s", ErrDomain, formatNumber(x))
		}
		result = math.Sqrt(x)
	case UnarySquare:
		result = x * x
	case UnaryReciprocal:
		if x == 0 {
			return 0, fmt.Errorf("%w: reciprocal of 0", ErrDivisionByZero)
		}
		result = 1 / x
	case UnarySin:
		result = math.Sin(degrees(x))
	case UnaryCos:
		result = math.Cos(degrees(x))
	case UnaryTan:
		result = math.Tan(degrees(x))
	case UnaryLog10:
		if x <= 0 {
			return 0, fmt.Errorf("%w: log of %s", ErrDomain, formatNumber(x))
		}
		result = math.Log10(x)
	case UnaryLn:
		if x <= 0 {
			return 0, fmt.Errorf("%w: ln of %s", ErrDomain, formatNumber(x))
		}
		result = math.Log(x)
	case UnaryAbs:
		result = math.Abs(x)
	case UnaryExp:
		result = math.Exp(x)
	case UnaryPow10:
		result = math.Pow(10, x)
	case UnaryFactorial:
		n := math.Trunc(x)
		if n < 0 || n > maxFactorial {
			return 0, fmt.Errorf("%w: factorial of %s", ErrDomain, formatNumber(x))
		}
		result = 1
		for i := 2.0; i <= n; i++ {
			result *= i
		}
	default:
		return 0, fmt.Errorf("%w: unknown function %d", ErrDomain, int(u))
	}

	if !finite(result) {
		return 0, fmt.Errorf("%w: %s(%s) is not finite", ErrDomain, u.Symbol(), formatNumber(x))
	}
	return result, nil
}

func degrees(x float64) float64 {
	return x * math.Pi / 180
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
