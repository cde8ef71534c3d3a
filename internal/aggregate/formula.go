// Package aggregate holds the rules for metrics derived from other metrics:
// formula arity, definition validation, component selection and evaluation.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unlimited marks a formula that accepts any number of operands from MinUnlimitedOperands up.
const Unlimited = -1

// MinUnlimitedOperands is the smallest operand count an unlimited formula accepts.
const MinUnlimitedOperands = 2

// Code selects the evaluator behind a formula.
type Code string

const (
	CodeDivision Code = "DIVISION"
	CodeSum      Code = "SUM"
	CodeAverage  Code = "AVERAGE"
	CodeProduct  Code = "PRODUCT"
)

// Valid reports whether c names a known evaluator.
func (c Code) Valid() bool {
	switch c {
	case CodeDivision, CodeSum, CodeAverage, CodeProduct:
		return true
	}
	return false
}

// ParseCode normalises raw into a Code.
func ParseCode(raw string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown formula code %q", raw)
	}
	return c, nil
}

// Formula is the arity contract and evaluator of a named computation.
type Formula struct {
	ID           int64
	Code         Code
	MaxArguments int
}

// Unlimited reports whether the formula takes a variable operand count.
func (f Formula) Unlimited() bool {
	return f.MaxArguments == Unlimited
}

// MinOperands is the operand count a new definition starts with.
func (f Formula) MinOperands() int {
	if f.Unlimited() {
		return MinUnlimitedOperands
	}
	return f.MaxArguments
}

// Accepts reports whether n operands satisfy the arity contract.
func (f Formula) Accepts(n int) bool {
	if f.Unlimited() {
		return n >= MinUnlimitedOperands
	}
	return f.MaxArguments > 0 && n == f.MaxArguments
}

// Evaluate applies the formula to ordered operands. The result is rounded half
// away from zero to two decimals. It is nil when any operand is nil, the arity
// contract is not met, or a division has a zero denominator.
func Evaluate(f Formula, operands []*float64) *float64 {
	if !f.Accepts(len(operands)) {
		return nil
	}
	values := make([]decimal.Decimal, 0, len(operands))
	for _, op := range operands {
		if op == nil {
			return nil
		}
		values = append(values, decimal.NewFromFloat(*op))
	}

	var result decimal.Decimal
	switch f.Code {
	case CodeDivision:
		if values[1].IsZero() {
			return nil
		}
		result = values[0].Div(values[1])
	case CodeSum:
		result = decimal.Sum(values[0], values[1:]...)
	case CodeAverage:
		result = decimal.Avg(values[0], values[1:]...)
	case CodeProduct:
		result = values[0]
		for _, v := range values[1:] {
			result = result.Mul(v)
		}
	default:
		return nil
	}

	rounded, _ := result.Round(2).Float64()
	return &rounded
}
