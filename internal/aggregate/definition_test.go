package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefinition(t *testing.T) {
	base := Definition{Name: "Goals", CoachID: 1, SportID: 2}
	tests := []struct {
		name    string
		def     Definition
		formula *Formula
		want    map[string]string
	}{
		{"valid base metric", base, nil, map[string]string{}},
		{
			"missing scoping fields",
			Definition{Name: "  "},
			nil,
			map[string]string{
				FieldName:  "Name is required",
				FieldCoach: "Coach is required",
				FieldSport: "Sport is required",
			},
		},
		{
			"base metric ignores formula",
			Definition{Name: "Goals", CoachID: 1, SportID: 2, FormulaID: 9, Components: []int64{1}},
			nil,
			map[string]string{},
		},
		{
			"aggregated without formula",
			Definition{Name: "Ratio", CoachID: 1, SportID: 2, Aggregated: true},
			nil,
			map[string]string{FieldFormula: "Formula is required for aggregated metrics"},
		},
		{
			"fixed arity short",
			Definition{Name: "Ratio", CoachID: 1, SportID: 2, Aggregated: true, FormulaID: 1, Components: []int64{5, 0}},
			&division,
			map[string]string{FieldComponents: "This formula requires exactly 2 metrics"},
		},
		{
			"fixed arity exact",
			Definition{Name: "Ratio", CoachID: 1, SportID: 2, Aggregated: true, FormulaID: 1, Components: []int64{5, 6}},
			&division,
			map[string]string{},
		},
		{
			"unlimited single",
			Definition{Name: "Total", CoachID: 1, SportID: 2, Aggregated: true, FormulaID: 2, Components: []int64{5}},
			&sum,
			map[string]string{FieldComponents: "This formula requires at least 2 metrics"},
		},
		{
			"unlimited many",
			Definition{Name: "Total", CoachID: 1, SportID: 2, Aggregated: true, FormulaID: 2, Components: []int64{5, 6, 7}},
			&sum,
			map[string]string{},
		},
		{
			"duplicate component",
			Definition{Name: "Total", CoachID: 1, SportID: 2, Aggregated: true, FormulaID: 2, Components: []int64{5, 5}},
			&sum,
			map[string]string{FieldComponents: "Each metric can only be used once per formula"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDefinition(tt.def, tt.formula)
			assert.Equal(t, tt.want, map[string]string(got))
		})
	}
}

func TestValidateComponents(t *testing.T) {
	known := map[int64]Metric{
		5: {ID: 5, Name: "Goals"},
		6: {ID: 6, Name: "Ratio", Aggregated: true},
	}

	assert.True(t, ValidateComponents(9, []int64{5, 0}, known).Empty())
	assert.Equal(t, "Aggregated metrics cannot be used as formula components", ValidateComponents(9, []int64{5, 6}, known)[FieldComponents])
	assert.Equal(t, "Metric 7 does not exist", ValidateComponents(9, []int64{7}, known)[FieldComponents])
	assert.Equal(t, "A metric cannot be a component of itself", ValidateComponents(5, []int64{5}, known)[FieldComponents])
}

func TestSelectableComponents(t *testing.T) {
	all := []Metric{
		{ID: 1, Name: "Goals"},
		{ID: 2, Name: "Games"},
		{ID: 3, Name: "Assists"},
		{ID: 4, Name: "Goals per game", Aggregated: true},
	}

	ids := func(ms []Metric) []int64 {
		out := make([]int64, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(SelectableComponents(all, nil, 0)))
	assert.Equal(t, []int64{1, 3}, ids(SelectableComponents(all, []int64{1, 2}, 1)))
	assert.Equal(t, []int64{3}, ids(SelectableComponents(all, []int64{1, 2}, 0)))
}
