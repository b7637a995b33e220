package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"slotbook/models"
)

func newSQLiteRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection to ":memory:" would be a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := NewGormRepo(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

var backends = map[string]func(t *testing.T) AvailabilityRepository{
	"memory": func(t *testing.T) AvailabilityRepository { return NewMemoryRepo() },
	"sqlite": func(t *testing.T) AvailabilityRepository { return newSQLiteRepo(t) },
}

func seedProvider(t *testing.T, repo AvailabilityRepository, id, name, category string, active bool) {
	t.Helper()
	require.NoError(t, repo.UpsertProvider(context.Background(), models.Provider{
		ID:           id,
		Name:         name,
		Category:     category,
		Active:       active,
		Availability: models.DefaultAvailability(id),
	}))
}

func newBooking(providerID, clientID, date string, idx int) models.Booking {
	return models.Booking{
		ProviderID: providerID,
		ClientID:   clientID,
		Date:       date,
		SlotIndex:  idx,
		Start:      540 + idx*120,
		End:        660 + idx*120,
		Status:     models.BookingStatusConfirmed,
		CreatedAt:  time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProviderConfig(t *testing.T) {
	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			_, err := repo.GetConfig(ctx, "missing")
			assert.True(t, errors.Is(err, models.ErrNotFound))

			seedProvider(t, repo, "p1", "Dr. Achieng", "doctor", true)
			seedProvider(t, repo, "p2", "Coach Baraka", "fitness", true)
			seedProvider(t, repo, "p3", "Dr. Wanjiru", "Doctor", false)

			cfg, err := repo.GetConfig(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "p1", cfg.ProviderID)
			assert.Equal(t, models.WorkHours{Start: 540, End: 1020}, cfg.WorkHours)
			assert.Equal(t, 4, cfg.SlotCount)
			assert.True(t, cfg.WorkingDays.On(time.Monday))
			assert.False(t, cfg.WorkingDays.On(time.Sunday))

			updated := *cfg
			updated.WorkHours = models.WorkHours{Start: 480, End: 1020}
			updated.WorkingDays[time.Sunday] = true
			updated.SlotCount = 3
			updated.UpdatedAt = time.Now().UTC()
			require.NoError(t, repo.UpdateConfig(ctx, updated))

			cfg, err = repo.GetConfig(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, 480, cfg.WorkHours.Start)
			assert.Equal(t, 3, cfg.SlotCount)
			assert.True(t, cfg.WorkingDays.On(time.Sunday))

			missing := models.DefaultAvailability("ghost")
			assert.True(t, errors.Is(repo.UpdateConfig(ctx, missing), models.ErrNotFound))

			doctors, err := repo.ListProviders(ctx, models.ProviderFilter{Category: "doctor"})
			require.NoError(t, err)
			require.Len(t, doctors, 2)
			assert.Equal(t, "Dr. Achieng", doctors[0].Name)
			assert.Equal(t, "Dr. Wanjiru", doctors[1].Name)

			active, err := repo.ListProviders(ctx, models.ProviderFilter{Category: "doctor", ActiveOnly: true})
			require.NoError(t, err)
			require.Len(t, active, 1)
			assert.Equal(t, "p1", active[0].ID)

			all, err := repo.ListProviders(ctx, models.ProviderFilter{})
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}

func TestUpsertProviderKeepsActiveFlag(t *testing.T) {
	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			seedProvider(t, repo, "p1", "Dr. Achieng", "doctor", false)
			got, err := repo.GetProvider(ctx, "p1")
			require.NoError(t, err)
			assert.False(t, got.Active, "inserted inactive")

			seedProvider(t, repo, "p1", "Dr. Achieng", "doctor", true)
			got, err = repo.GetProvider(ctx, "p1")
			require.NoError(t, err)
			assert.True(t, got.Active)

			seedProvider(t, repo, "p1", "Dr. Achieng", "doctor", false)
			got, err = repo.GetProvider(ctx, "p1")
			require.NoError(t, err)
			assert.False(t, got.Active, "deactivated through upsert")

			active, err := repo.ListProviders(ctx, models.ProviderFilter{ActiveOnly: true})
			require.NoError(t, err)
			assert.Empty(t, active)
		})
	}
}

func TestReserveAndCancel(t *testing.T) {
	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			seedProvider(t, repo, "p1", "Dr. Achieng", "doctor", true)

			free, err := repo.IsSlotFree(ctx, "p1", "2030-01-07", 1)
			require.NoError(t, err)
			assert.True(t, free)

			first, err := repo.Reserve(ctx, newBooking("p1", "c1", "2030-01-07", 1))
			require.NoError(t, err)
			assert.NotEmpty(t, first.ID)
			assert.Equal(t, models.BookingStatusConfirmed, first.Status)

			_, err = repo.Reserve(ctx, newBooking("p1", "c2", "2030-01-07", 1))
			assert.True(t, errors.Is(err, models.ErrSlotTaken))

			// same index on another day or another slot is independent
			_, err = repo.Reserve(ctx, newBooking("p1", "c2", "2030-01-08", 1))
			require.NoError(t, err)
			_, err = repo.Reserve(ctx, newBooking("p1", "c2", "2030-01-07", 3))
			require.NoError(t, err)

			free, err = repo.IsSlotFree(ctx, "p1", "2030-01-07", 1)
			require.NoError(t, err)
			assert.False(t, free)

			occupied, err := repo.OccupiedSlots(ctx, "p1", "2030-01-07")
			require.NoError(t, err)
			assert.Equal(t, []int{1, 3}, occupied)

			at := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
			cancelled, err := repo.Cancel(ctx, first.ID, "c1", at)
			require.NoError(t, err)
			assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
			assert.Equal(t, "c1", cancelled.CancelledBy)
			require.NotNil(t, cancelled.CancelledAt)

			again, err := repo.Cancel(ctx, first.ID, "p1", at.Add(time.Hour))
			require.NoError(t, err)
			assert.Equal(t, models.BookingStatusCancelled, again.Status)
			assert.Equal(t, "c1", again.CancelledBy, "second cancel must not overwrite the first")

			free, err = repo.IsSlotFree(ctx, "p1", "2030-01-07", 1)
			require.NoError(t, err)
			assert.True(t, free)

			rebooked, err := repo.Reserve(ctx, newBooking("p1", "c3", "2030-01-07", 1))
			require.NoError(t, err)
			assert.NotEqual(t, first.ID, rebooked.ID)

			_, err = repo.Cancel(ctx, "missing", "c1", at)
			assert.True(t, errors.Is(err, models.ErrNotFound))
			_, err = repo.GetBooking(ctx, "missing")
			assert.True(t, errors.Is(err, models.ErrNotFound))

			got, err := repo.GetBooking(ctx, rebooked.ID)
			require.NoError(t, err)
			assert.Equal(t, "c3", got.ClientID)
			assert.Equal(t, 1, got.SlotIndex)
			assert.Equal(t, 660, got.Start)

			day, err := repo.ListBookings(ctx, models.BookingFilter{ProviderID: "p1", Date: "2030-01-07"})
			require.NoError(t, err)
			require.Len(t, day, 3)
			assert.Equal(t, 1, day[0].SlotIndex)
			assert.Equal(t, 3, day[2].SlotIndex)

			mine, err := repo.ListBookings(ctx, models.BookingFilter{ClientID: "c2"})
			require.NoError(t, err)
			assert.Len(t, mine, 2)

			cancelledOnly, err := repo.ListBookings(ctx, models.BookingFilter{Status: models.BookingStatusCancelled})
			require.NoError(t, err)
			require.Len(t, cancelledOnly, 1)
			assert.Equal(t, first.ID, cancelledOnly[0].ID)
		})
	}
}

func TestConcurrentReserveSingleWinner(t *testing.T) {
	const attempts = 25

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			seedProvider(t, repo, "p1", "Dr. Achieng", "doctor", true)

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				won     int
				taken   int
				unknown []error
			)
			start := make(chan struct{})
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					_, err := repo.Reserve(ctx, newBooking("p1", fmt.Sprintf("c%d", i), "2030-01-07", 2))

					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						won++
					case errors.Is(err, models.ErrSlotTaken):
						taken++
					default:
						unknown = append(unknown, err)
					}
				}(i)
			}
			close(start)
			wg.Wait()

			assert.Empty(t, unknown)
			assert.Equal(t, 1, won)
			assert.Equal(t, attempts-1, taken)

			active, err := repo.ListBookings(ctx, models.BookingFilter{ProviderID: "p1", Date: "2030-01-07"})
			require.NoError(t, err)
			assert.Len(t, active, 1)
		})
	}
}
