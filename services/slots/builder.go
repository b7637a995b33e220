package slots

import (
	"fmt"
	"strings"

	"slotbook/models"
	"slotbook/services/calendar"
)

// RemainderPolicy decides what happens to the minutes left over when the working
// interval does not divide evenly by the slot count.
type RemainderPolicy string

const (
	// RemainderDrop leaves the trailing minutes unbookable; the last slot ends early.
	RemainderDrop RemainderPolicy = "drop"
	// RemainderExtend stretches the last slot to end exactly at workHours.end.
	RemainderExtend RemainderPolicy = "extend"
)

func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch RemainderPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RemainderDrop:
		return RemainderDrop, nil
	case RemainderExtend:
		return RemainderExtend, nil
	default:
		return "", fmt.Errorf("unknown slot remainder policy %q (want drop or extend)", s)
	}
}

// SlotDuration is floor((end-start)/slotCount), or 0 when the config cannot yield a slot.
func SlotDuration(cfg models.ProviderAvailability) int {
	total := cfg.WorkHours.Minutes()
	if total <= 0 || cfg.SlotCount <= 0 {
		return 0
	}
	return total / cfg.SlotCount
}

// BuildSlots computes slot boundaries for one date. It touches no state: every slot is
// marked available and the result depends only on its arguments.
// Non-working days and configurations that cannot fit a single minute per slot yield nil.
func BuildSlots(cfg models.ProviderAvailability, date calendar.Date, policy RemainderPolicy) []models.TimeSlot {
	if !calendar.IsWorkingDay(cfg, date) {
		return nil
	}
	duration := SlotDuration(cfg)
	if duration <= 0 {
		return nil
	}

	day := date.String()
	out := make([]models.TimeSlot, cfg.SlotCount)
	for i := range out {
		start := cfg.WorkHours.Start + i*duration
		end := start + duration
		if policy == RemainderExtend && i == cfg.SlotCount-1 {
			end = cfg.WorkHours.End
		}
		out[i] = models.TimeSlot{
			ProviderID: cfg.ProviderID,
			Date:       day,
			Index:      i,
			Start:      start,
			End:        end,
			Label:      Label(start, end),
			Available:  true,
		}
	}
	return out
}

// Label renders a slot window as "HH:MM - HH:MM".
func Label(start, end int) string {
	return calendar.FormatMinutes(start) + " - " + calendar.FormatMinutes(end)
}
