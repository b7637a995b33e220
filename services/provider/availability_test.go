package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	availabilityRepo "slotbook/database/repository/availability"
	"slotbook/models"
	"slotbook/services/slots"
)

// Wednesday 2030-01-09, noon UTC.
var fixedNow = time.Date(2030, time.January, 9, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*DefaultProviderService, *availabilityRepo.MemoryRepo) {
	t.Helper()
	store := availabilityRepo.NewMemoryRepo()
	svc := NewProviderService(store, slots.NewGenerator(store, slots.RemainderDrop), func() time.Time { return fixedNow }, time.UTC)
	svc.Logger = zap.NewNop()

	_, err := svc.RegisterProvider(context.Background(), models.Provider{ID: "p1", Name: "Dr. Achieng", Category: "doctor", Active: true})
	require.NoError(t, err)
	_, err = svc.RegisterProvider(context.Background(), models.Provider{ID: "p2", Name: "Coach Baraka", Category: "fitness", Active: false})
	require.NoError(t, err)
	return svc, store
}

func TestRegisterProviderDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	cfg, err := svc.GetAvailability(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAvailability("p1").WorkHours, cfg.WorkHours)
	assert.Equal(t, 4, cfg.SlotCount)

	_, err = svc.RegisterProvider(context.Background(), models.Provider{Name: "No ID"})
	assert.True(t, errors.Is(err, models.ErrInvalidConfig))

	bad := models.Provider{ID: "p3", Availability: models.ProviderAvailability{WorkHours: models.WorkHours{Start: 600, End: 500}, SlotCount: 2}}
	_, err = svc.RegisterProvider(context.Background(), bad)
	assert.True(t, errors.Is(err, models.ErrInvalidConfig))
}

func TestListProviders(t *testing.T) {
	svc, _ := newTestService(t)

	all, err := svc.ListProviders(context.Background(), models.ProviderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Coach Baraka", all[0].Name)
	assert.Equal(t, 4, all[1].SlotCount)

	active, err := svc.ListProviders(context.Background(), models.ProviderFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "p1", active[0].ID)
}

func TestUpdateAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := models.Session{UserID: "p1", Role: models.RoleProvider}

	cfg := models.DefaultAvailability("p1")
	cfg.WorkHours = models.WorkHours{Start: 8 * 60, End: 17 * 60}
	cfg.WorkingDays[time.Saturday] = true

	_, err := svc.UpdateAvailability(ctx, models.Session{UserID: "p2", Role: models.RoleProvider}, cfg)
	assert.True(t, errors.Is(err, models.ErrForbidden))
	_, err = svc.UpdateAvailability(ctx, models.Session{UserID: "p1", Role: models.RoleClient}, cfg)
	assert.True(t, errors.Is(err, models.ErrForbidden))

	updated, err := svc.UpdateAvailability(ctx, owner, cfg)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, updated.UpdatedAt)

	got, err := svc.GetAvailability(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8*60, got.WorkHours.Start)
	assert.True(t, got.WorkingDays.On(time.Saturday))

	invalid := cfg
	invalid.SlotCount = 0
	_, err = svc.UpdateAvailability(ctx, owner, invalid)
	assert.True(t, errors.Is(err, models.ErrInvalidConfig))

	invalid = cfg
	invalid.WorkHours.End = 24 * 60
	_, err = svc.UpdateAvailability(ctx, owner, invalid)
	assert.True(t, errors.Is(err, models.ErrInvalidConfig))
}

func TestAvailableSlots(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := store.Reserve(ctx, models.Booking{ProviderID: "p1", ClientID: "c1", Date: "2030-01-10", SlotIndex: 2})
	require.NoError(t, err)

	got, err := svc.AvailableSlots(ctx, "p1", "2030-01-10")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "13:00 - 15:00", got[2].Label)
	assert.False(t, got[2].Available)
	assert.True(t, got[3].Available)

	past, err := svc.AvailableSlots(ctx, "p1", "2030-01-08")
	require.NoError(t, err)
	require.Len(t, past, 4)
	for _, s := range past {
		assert.False(t, s.Available)
	}

	weekend, err := svc.AvailableSlots(ctx, "p1", "2030-01-12")
	require.NoError(t, err)
	assert.Empty(t, weekend)

	_, err = svc.AvailableSlots(ctx, "p1", "2030-1-10")
	assert.True(t, errors.Is(err, models.ErrInvalidDate))
	_, err = svc.AvailableSlots(ctx, "ghost", "2030-01-10")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestMonthCalendar(t *testing.T) {
	svc, _ := newTestService(t)

	days, err := svc.MonthCalendar(context.Background(), "p1", "2030-01")
	require.NoError(t, err)
	require.Len(t, days, 42)

	// January 2030 starts on a Tuesday; the grid opens on Sunday 2029-12-30.
	assert.Equal(t, "2029-12-30", days[0].Date)
	assert.False(t, days[0].InMonth)
	assert.False(t, days[0].WorkingDay)
	assert.True(t, days[0].Past)

	assert.Equal(t, "2030-01-09", days[10].Date)
	assert.True(t, days[10].InMonth)
	assert.True(t, days[10].WorkingDay)
	assert.False(t, days[10].Past, "today is not past")
	assert.True(t, days[9].Past)

	assert.Equal(t, "2030-02-09", days[41].Date)
	assert.False(t, days[41].InMonth)

	_, err = svc.MonthCalendar(context.Background(), "p1", "January")
	assert.True(t, errors.Is(err, models.ErrInvalidDate))
}
