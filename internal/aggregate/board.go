package aggregate

import (
	"fmt"
	"sort"
)

// Assignment is one value row of a metric for an athlete.
type Assignment struct {
	MetricID int64
	Value    *float64
}

// Entry is the resolved value of one metric on an athlete's board.
type Entry struct {
	MetricID   int64
	Aggregated bool
	Value      *float64
}

// Sums adds up assignment values per metric. A metric whose rows all lack a
// value maps to nil.
func Sums(assignments []Assignment) map[int64]*float64 {
	out := make(map[int64]*float64)
	for _, a := range assignments {
		current, seen := out[a.MetricID]
		if a.Value == nil {
			if !seen {
				out[a.MetricID] = nil
			}
			continue
		}
		total := *a.Value
		if current != nil {
			total += *current
		}
		out[a.MetricID] = &total
	}
	return out
}

// Board resolves the metrics assigned to an athlete. Base metrics show their
// summed value; aggregated metrics are evaluated over the sums of their
// components in order and stay nil when a component is missing from the board.
// Metrics unknown to metrics are skipped. Entries are ordered by metric id.
func Board(assignments []Assignment, metrics map[int64]Metric, formulas map[int64]Formula) []Entry {
	sums := Sums(assignments)
	ids := make([]int64, 0, len(sums))
	for id := range sums {
		if _, ok := metrics[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		m := metrics[id]
		if !m.Aggregated {
			entries = append(entries, Entry{MetricID: id, Value: sums[id]})
			continue
		}
		entries = append(entries, Entry{MetricID: id, Aggregated: true, Value: evaluateMetric(m, sums, formulas)})
	}
	return entries
}

func evaluateMetric(m Metric, sums map[int64]*float64, formulas map[int64]Formula) *float64 {
	if m.FormulaID == nil {
		return nil
	}
	f, ok := formulas[*m.FormulaID]
	if !ok {
		return nil
	}
	operands := make([]*float64, 0, len(m.Components))
	for _, id := range m.Components {
		v, onBoard := sums[id]
		if !onBoard || v == nil {
			return nil
		}
		operands = append(operands, v)
	}
	return Evaluate(f, operands)
}

// FormatValue renders a computed value with two decimals; nil stays nil.
func FormatValue(v *float64) *string {
	if v == nil {
		return nil
	}
	s := fmt.Sprintf("%.2f", *v)
	return &s
}
