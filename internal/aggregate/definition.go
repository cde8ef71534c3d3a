package aggregate

import (
	"fmt"
	"strings"

	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

// Field keys used in validation details.
const (
	FieldName       = "name"
	FieldCoach      = "id_coach"
	FieldSport      = "id_sport"
	FieldFormula    = "id_formula"
	FieldComponents = "ids_metrics"
)

// Metric is the part of a metric definition the rules care about.
type Metric struct {
	ID         int64
	Name       string
	Aggregated bool
	FormulaID  *int64
	Components []int64
}

// Definition is a metric create or update request. Zero ids mean "not selected".
type Definition struct {
	ID         int64
	Name       string
	CoachID    int64
	SportID    int64
	Aggregated bool
	FormulaID  int64
	Components []int64
}

// Selected returns the non-empty component ids in slot order.
func (d Definition) Selected() []int64 {
	out := make([]int64, 0, len(d.Components))
	for _, id := range d.Components {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// ValidateDefinition checks the structural rules of a metric definition.
// formula is the catalog entry for d.FormulaID and may be nil when unknown.
func ValidateDefinition(d Definition, formula *Formula) appErrors.FieldErrors {
	fields := appErrors.FieldErrors{}
	if strings.TrimSpace(d.Name) == "" {
		fields.Add(FieldName, "Name is required")
	}
	if d.CoachID == 0 {
		fields.Add(FieldCoach, "Coach is required")
	}
	if d.SportID == 0 {
		fields.Add(FieldSport, "Sport is required")
	}
	if !d.Aggregated {
		return fields
	}

	if d.FormulaID == 0 || formula == nil {
		fields.Add(FieldFormula, "Formula is required for aggregated metrics")
		return fields
	}

	selected := d.Selected()
	if !formula.Accepts(len(selected)) {
		if formula.Unlimited() {
			fields.Add(FieldComponents, fmt.Sprintf("This formula requires at least %d metrics", MinUnlimitedOperands))
		} else {
			fields.Add(FieldComponents, fmt.Sprintf("This formula requires exactly %d metrics", formula.MaxArguments))
		}
		return fields
	}

	seen := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		if _, dup := seen[id]; dup {
			fields.Add(FieldComponents, "Each metric can only be used once per formula")
			break
		}
		seen[id] = struct{}{}
	}
	return fields
}

// ValidateComponents checks that every component exists, is a base metric and
// is not the metric being defined. known maps metric id to its definition.
func ValidateComponents(selfID int64, components []int64, known map[int64]Metric) appErrors.FieldErrors {
	fields := appErrors.FieldErrors{}
	for _, id := range components {
		if id == 0 {
			continue
		}
		if selfID != 0 && id == selfID {
			fields.Add(FieldComponents, "A metric cannot be a component of itself")
			continue
		}
		m, ok := known[id]
		if !ok {
			fields.Add(FieldComponents, fmt.Sprintf("Metric %d does not exist", id))
			continue
		}
		if m.Aggregated {
			fields.Add(FieldComponents, "Aggregated metrics cannot be used as formula components")
		}
	}
	return fields
}

// SelectableComponents lists the metrics a slot may hold: base metrics that are
// not already chosen in another slot. current stays selectable for its own slot.
func SelectableComponents(all []Metric, chosen []int64, current int64) []Metric {
	taken := make(map[int64]struct{}, len(chosen))
	for _, id := range chosen {
		if id != 0 && id != current {
			taken[id] = struct{}{}
		}
	}
	out := make([]Metric, 0, len(all))
	for _, m := range all {
		if m.Aggregated {
			continue
		}
		if _, used := taken[m.ID]; used {
			continue
		}
		out = append(out, m)
	}
	return out
}
