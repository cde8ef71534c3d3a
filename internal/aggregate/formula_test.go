package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

var (
	division = Formula{ID: 1, Code: CodeDivision, MaxArguments: 2}
	sum      = Formula{ID: 2, Code: CodeSum, MaxArguments: Unlimited}
	average  = Formula{ID: 3, Code: CodeAverage, MaxArguments: Unlimited}
	product  = Formula{ID: 4, Code: CodeProduct, MaxArguments: Unlimited}
)

func TestFormulaAccepts(t *testing.T) {
	tests := []struct {
		name    string
		formula Formula
		n       int
		want    bool
	}{
		{"division exact", division, 2, true},
		{"division short", division, 1, false},
		{"division long", division, 3, false},
		{"unlimited minimum", sum, 2, true},
		{"unlimited many", sum, 7, true},
		{"unlimited single", sum, 1, false},
		{"zero arity never accepts", Formula{MaxArguments: 0}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.formula.Accepts(tt.n))
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		formula  Formula
		operands []*float64
		want     *float64
	}{
		{"division is ordered", division, []*float64{f64(10), f64(4)}, f64(2.5)},
		{"division reversed", division, []*float64{f64(4), f64(10)}, f64(0.4)},
		{"division rounds", division, []*float64{f64(10), f64(3)}, f64(3.33)},
		{"division rounds half away from zero", division, []*float64{f64(1), f64(8)}, f64(0.13)},
		{"division by zero", division, []*float64{f64(10), f64(0)}, nil},
		{"sum", sum, []*float64{f64(1.5), f64(2.25), f64(3)}, f64(6.75)},
		{"average", average, []*float64{f64(1), f64(2), f64(2)}, f64(1.67)},
		{"product", product, []*float64{f64(2), f64(3), f64(0.5)}, f64(3)},
		{"negative product", product, []*float64{f64(-2), f64(3)}, f64(-6)},
		{"missing operand", sum, []*float64{f64(1), nil}, nil},
		{"arity not met", division, []*float64{f64(1)}, nil},
		{"unknown code", Formula{Code: "MODULO", MaxArguments: 2}, []*float64{f64(1), f64(2)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.formula, tt.operands)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestParseCode(t *testing.T) {
	c, err := ParseCode(" division ")
	require.NoError(t, err)
	assert.Equal(t, CodeDivision, c)

	_, err = ParseCode("POWER")
	assert.Error(t, err)
}
