package aggregate

import "errors"

var (
	// ErrFixedArity is returned when adding or removing a slot on a fixed-arity formula.
	ErrFixedArity = errors.New("slots can only be added or removed for unlimited formulas")
	// ErrMinimumSlots is returned when removal would leave fewer than MinUnlimitedOperands slots.
	ErrMinimumSlots = errors.New("an unlimited formula keeps at least 2 slots")
	// ErrSlotRange is returned for an out of range slot index.
	ErrSlotRange = errors.New("slot index out of range")
)

// Slots is the ordered operand list of an aggregated metric under construction.
// A zero value in a slot means nothing has been chosen yet.
type Slots struct {
	formula Formula
	values  []int64
}

// NewSlots sizes an empty operand list for f.
func NewSlots(f Formula) *Slots {
	return &Slots{formula: f, values: make([]int64, f.MinOperands())}
}

// SlotsFrom rebuilds slots from existing values. Short lists are padded with empty
// slots; fixed formulas reject lists longer than their arity.
func SlotsFrom(f Formula, values []int64) (*Slots, error) {
	s := NewSlots(f)
	if !f.Unlimited() && len(values) > len(s.values) {
		return nil, ErrFixedArity
	}
	if len(values) > len(s.values) {
		s.values = make([]int64, len(values))
	}
	copy(s.values, values)
	return s, nil
}

// Len returns the slot count.
func (s *Slots) Len() int {
	return len(s.values)
}

// Values returns a copy of the slot values in order.
func (s *Slots) Values() []int64 {
	out := make([]int64, len(s.values))
	copy(out, s.values)
	return out
}

// Set places metricID in slot i.
func (s *Slots) Set(i int, metricID int64) error {
	if i < 0 || i >= len(s.values) {
		return ErrSlotRange
	}
	s.values[i] = metricID
	return nil
}

// CanAdd reports whether AddSlot would succeed.
func (s *Slots) CanAdd() bool {
	return s.formula.Unlimited()
}

// CanRemove reports whether RemoveSlot would succeed.
func (s *Slots) CanRemove() bool {
	return s.formula.Unlimited() && len(s.values) > MinUnlimitedOperands
}

// AddSlot appends an empty slot.
func (s *Slots) AddSlot() error {
	if !s.CanAdd() {
		return ErrFixedArity
	}
	s.values = append(s.values, 0)
	return nil
}

// RemoveSlot drops slot i, shifting later slots left.
func (s *Slots) RemoveSlot(i int) error {
	if !s.formula.Unlimited() {
		return ErrFixedArity
	}
	if len(s.values) <= MinUnlimitedOperands {
		return ErrMinimumSlots
	}
	if i < 0 || i >= len(s.values) {
		return ErrSlotRange
	}
	s.values = append(s.values[:i], s.values[i+1:]...)
	return nil
}

// Options lists the metrics selectable for slot i.
func (s *Slots) Options(i int, all []Metric) ([]Metric, error) {
	if i < 0 || i >= len(s.values) {
		return nil, ErrSlotRange
	}
	return SelectableComponents(all, s.values, s.values[i]), nil
}
