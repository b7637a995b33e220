package models

// TimeSlot is a computed booking window for one provider on one calendar date.
// It is never persisted; boundaries are recomputed from ProviderAvailability.
type TimeSlot struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`      // "YYYY-MM-DD"
	Index      int    `json:"index"`     // 0-based, stable within the day
	Start      int    `json:"start"`     // minutes from midnight
	End        int    `json:"end"`       // minutes from midnight, exclusive
	Label      string `json:"label"`     // e.g. "08:00 - 10:15"
	Available  bool   `json:"available"` // false when an active booking holds the slot
}

// Duration returns the slot length in minutes.
func (s TimeSlot) Duration() int {
	return s.End - s.Start
}

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date       string `json:"date"`
	InMonth    bool   `json:"inMonth"`
	WorkingDay bool   `json:"workingDay"`
	Past       bool   `json:"past"`
}
