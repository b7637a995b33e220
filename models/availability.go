package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// MinutesPerDay bounds every minute-of-day value: valid values are 0..MinutesPerDay-1.
	MinutesPerDay = 24 * 60
)

// WeekdayNames are the lowercase day names, Sunday first, matching time.Weekday.
var WeekdayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// WorkingDays is a Sunday-indexed set of seven flags.
type WorkingDays [7]bool

// On reports whether the provider works on the given weekday.
func (w WorkingDays) On(day time.Weekday) bool {
	if day < time.Sunday || day > time.Saturday {
		return false
	}
	return w[day]
}

// UnmarshalJSON accepts either a 7-element boolean array or an object keyed by day name,
// e.g. {"monday": true, "friday": true}. Missing days are off.
func (w *WorkingDays) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var arr []bool
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		if len(arr) != 7 {
			return fmt.Errorf("workingDays must have 7 entries, got %d", len(arr))
		}
		copy(w[:], arr)
		return nil
	}

	var byName map[string]bool
	if err := json.Unmarshal(data, &byName); err != nil {
		return fmt.Errorf("workingDays must be an array or an object of day names: %w", err)
	}
	var out WorkingDays
	for name, on := range byName {
		idx := -1
		for i, n := range WeekdayNames {
			if strings.EqualFold(n, name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown weekday %q", name)
		}
		out[idx] = on
	}
	*w = out
	return nil
}

// WorkHours is the daily working interval [Start, End) in minutes from midnight.
type WorkHours struct {
	Start int `bson:"start" json:"start"` // e.g. 540 for 09:00
	End   int `bson:"end" json:"end"`     // e.g. 1020 for 17:00
}

// Minutes returns the length of the interval; it is non-positive for a misconfigured interval.
func (h WorkHours) Minutes() int {
	return h.End - h.Start
}

// ProviderAvailability is the per-provider configuration every slot is derived from.
type ProviderAvailability struct {
	ProviderID  string      `bson:"providerId" json:"providerId"`
	WorkingDays WorkingDays `bson:"workingDays" json:"workingDays"`
	WorkHours   WorkHours   `bson:"workHours" json:"workHours"`
	SlotCount   int         `bson:"slotCount" json:"slotCount"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the configuration invariants accepted by UpdateConfig.
func (a ProviderAvailability) Validate() error {
	if a.ProviderID == "" {
		return NewInvalidConfigError("provider id is required")
	}
	h := a.WorkHours
	if h.Start < 0 || h.Start >= MinutesPerDay || h.End < 0 || h.End >= MinutesPerDay {
		return NewInvalidConfigError("work hours must be within 0..%d minutes, got [%d, %d]", MinutesPerDay-1, h.Start, h.End)
	}
	if h.End <= h.Start {
		return NewInvalidConfigError("work hours end (%d) must be after start (%d)", h.End, h.Start)
	}
	if a.SlotCount < 1 {
		return NewInvalidConfigError("slot count must be at least 1, got %d", a.SlotCount)
	}
	return nil
}

// DefaultAvailability mirrors the defaults a new provider starts with:
// Monday to Friday, 09:00 to 17:00, four slots a day.
func DefaultAvailability(providerID string) ProviderAvailability {
	return ProviderAvailability{
		ProviderID:  providerID,
		WorkingDays: WorkingDays{false, true, true, true, true, true, false},
		WorkHours:   WorkHours{Start: 9 * 60, End: 17 * 60},
		SlotCount:   4,
	}
}
