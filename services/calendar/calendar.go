package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"slotbook/models"
)

// GridCells is the fixed size of a month grid: six weeks of seven days.
const GridCells = 42

// IsWorkingDay maps the weekday of d (Sunday = 0) onto the provider's working-days set.
func IsWorkingDay(cfg models.ProviderAvailability, d Date) bool {
	return cfg.WorkingDays.On(d.Weekday())
}

// MonthGrid returns the 42 dates of a Sunday-first month view. The first cell is the
// Sunday on or before the 1st; the grid always covers the last day of the month.
func MonthGrid(ym YearMonth) ([]Date, error) {
	if !ym.Valid() {
		return nil, models.NewInvalidDateError("invalid month %s", ym)
	}
	first := ym.First()
	start := first.AddDays(-int(first.Weekday()))

	grid := make([]Date, GridCells)
	for i := range grid {
		grid[i] = start.AddDays(i)
	}
	return grid, nil
}

// FormatMinutes renders a minute-of-day as "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseMinutes parses "HH:MM" into minutes from midnight.
func ParseMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, models.NewInvalidDateError("malformed time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, models.NewInvalidDateError("malformed hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, models.NewInvalidDateError("malformed minute in %q", s)
	}
	return h*60 + m, nil
}

// DescribeDuration renders a slot length the way provider settings present it,
// e.g. "Each time slot will be 2 hours and 15 minutes long."
func DescribeDuration(minutes int) string {
	if minutes <= 0 {
		return "No time slots fit within the working hours."
	}
	hours, mins := minutes/60, minutes%60

	var parts []string
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if mins > 0 {
		parts = append(parts, plural(mins, "minute"))
	}
	return fmt.Sprintf("Each time slot will be %s long.", strings.Join(parts, " and "))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
