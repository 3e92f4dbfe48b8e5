package booking

import "slotwise/models"

// GenerateSlots returns every step-spaced start time in [open, close]. close
// itself is included only when it lands on the grid. A non-positive step or a
// close before open yields an empty grid.
func GenerateSlots(open, close models.ClockTime, stepMinutes int) []models.ClockTime {
	if stepMinutes <= 0 || close < open {
		return []models.ClockTime{}
	}
	step := models.ClockTime(stepMinutes)
	slots := make([]models.ClockTime, 0, int((close-open)/step)+1)
	for t := open; t <= close; t += step {
		slots = append(slots, t)
	}
	return slots
}

// Slots returns the configured grid.
func (se *DefaultSchedulingEngine) Slots() []models.ClockTime {
	return GenerateSlots(se.Grid.Open, se.Grid.Close, se.Grid.StepMinutes)
}
