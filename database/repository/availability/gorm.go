// File: database/repository/availability/gorm.go
package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"slotbook/models"
)

type providerRow struct {
	ID          string             `gorm:"primaryKey;type:varchar(64)"`
	Name        string             `gorm:"type:varchar(255);not null"`
	Category    string             `gorm:"type:varchar(64);index"`
	Specialty   string             `gorm:"type:varchar(255)"`
	Active      bool               `gorm:"not null"`
	WorkingDays models.WorkingDays `gorm:"type:text;serializer:json"`
	WorkStart   int                `gorm:"not null"`
	WorkEnd     int                `gorm:"not null"`
	SlotCount   int                `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (providerRow) TableName() string { return "providers" }

func (p providerRow) toModel() models.Provider {
	return models.Provider{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Specialty: p.Specialty,
		Active:    p.Active,
		Availability: models.ProviderAvailability{
			ProviderID:  p.ID,
			WorkingDays: p.WorkingDays,
			WorkHours:   models.WorkHours{Start: p.WorkStart, End: p.WorkEnd},
			SlotCount:   p.SlotCount,
			UpdatedAt:   p.UpdatedAt,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func providerRowFrom(p models.Provider) providerRow {
	return providerRow{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Specialty:   p.Specialty,
		Active:      p.Active,
		WorkingDays: p.Availability.WorkingDays,
		WorkStart:   p.Availability.WorkHours.Start,
		WorkEnd:     p.Availability.WorkHours.End,
		SlotCount:   p.Availability.SlotCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type bookingRow struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)"`
	ProviderID      string    `gorm:"type:varchar(64);not null;index:idx_bookings_provider_date,priority:1"`
	ClientID        string    `gorm:"type:varchar(64);not null;index"`
	Date            string    `gorm:"type:varchar(10);not null;index:idx_bookings_provider_date,priority:2"`
	SlotIndex       int       `gorm:"not null"`
	StartMinute     int       `gorm:"not null"`
	EndMinute       int       `gorm:"not null"`
	Status          string    `gorm:"type:varchar(16);not null"`
	SpecialRequests string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`
	CancelledAt     *time.Time
	CancelledBy     string `gorm:"type:varchar(64)"`
}

func (bookingRow) TableName() string { return "bookings" }

func (b bookingRow) toModel() models.Booking {
	return models.Booking{
		ID:              b.ID,
		ProviderID:      b.ProviderID,
		ClientID:        b.ClientID,
		Date:            b.Date,
		SlotIndex:       b.SlotIndex,
		Start:           b.StartMinute,
		End:             b.EndMinute,
		Status:          models.BookingStatus(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		CancelledAt:     b.CancelledAt,
		CancelledBy:     b.CancelledBy,
	}
}

func bookingRowFrom(b models.Booking) bookingRow {
	return bookingRow{
		ID:              b.ID,
		ProviderID:      b.ProviderID,
		ClientID:        b.ClientID,
		Date:            b.Date,
		SlotIndex:       b.SlotIndex,
		StartMinute:     b.Start,
		EndMinute:       b.End,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		CancelledAt:     b.CancelledAt,
		CancelledBy:     b.CancelledBy,
	}
}

// GormRepo is the SQL backend, used with PostgreSQL in deployments and SQLite in tests.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// activeSlotIndex is a partial unique index; both PostgreSQL and SQLite accept this syntax.
const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_booking_slot
	ON bookings (provider_id, date, slot_index) WHERE status <> 'CANCELLED'`

// Migrate creates the tables and the uniqueness constraint Reserve depends on.
func (r *GormRepo) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&providerRow{}, &bookingRow{}); err != nil {
		return fmt.Errorf("failed to migrate availability schema: %w", err)
	}
	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("failed to create active slot index: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func (r *GormRepo) GetConfig(ctx context.Context, providerID string) (*models.ProviderAvailability, error) {
	p, err := r.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return &p.Availability, nil
}

func (r *GormRepo) UpdateConfig(ctx context.Context, cfg models.ProviderAvailability) error {
	row := providerRow{
		WorkingDays: cfg.WorkingDays,
		WorkStart:   cfg.WorkHours.Start,
		WorkEnd:     cfg.WorkHours.End,
		SlotCount:   cfg.SlotCount,
		UpdatedAt:   cfg.UpdatedAt,
	}
	res := r.db.WithContext(ctx).
		Model(&providerRow{}).
		Where("id = ?", cfg.ProviderID).
		Select("WorkingDays", "WorkStart", "WorkEnd", "SlotCount", "UpdatedAt").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("failed to update availability: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("provider %s not found", cfg.ProviderID)
	}
	return nil
}

func (r *GormRepo) UpsertProvider(ctx context.Context, p models.Provider) error {
	row := providerRowFrom(p)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = row.UpdatedAt
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "category", "specialty", "active",
				"working_days", "work_start", "work_end", "slot_count", "updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert provider: %w", err)
	}
	return nil
}

func (r *GormRepo) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	var row providerRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", providerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("provider %s not found", providerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	p := row.toModel()
	return &p, nil
}

func (r *GormRepo) ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, error) {
	q := r.db.WithContext(ctx).Model(&providerRow{})
	if filter.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", filter.Category)
	}

	var rows []providerRow
	if err := q.Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	out := make([]models.Provider, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

func (r *GormRepo) IsSlotFree(ctx context.Context, providerID, date string, slotIndex int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&bookingRow{}).
		Where("provider_id = ? AND date = ? AND slot_index = ?", providerID, date, slotIndex).
		Where("status <> ?", string(models.BookingStatusCancelled)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return n == 0, nil
}

func (r *GormRepo) OccupiedSlots(ctx context.Context, providerID, date string) ([]int, error) {
	var out []int
	err := r.db.WithContext(ctx).
		Model(&bookingRow{}).
		Where("provider_id = ? AND date = ?", providerID, date).
		Where("status <> ?", string(models.BookingStatusCancelled)).
		Order("slot_index ASC").
		Pluck("slot_index", &out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied slots: %w", err)
	}
	return out, nil
}

// Reserve inserts unconditionally and lets uniq_active_booking_slot reject the loser.
func (r *GormRepo) Reserve(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}

	row := bookingRowFrom(booking)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewSlotTakenError("slot %d on %s is already booked", booking.SlotIndex, booking.Date)
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}
	out := row.toModel()
	return &out, nil
}

func (r *GormRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var row bookingRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("booking %s not found", bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	b := row.toModel()
	return &b, nil
}

func (r *GormRepo) Cancel(ctx context.Context, bookingID, cancelledBy string, at time.Time) (*models.Booking, error) {
	res := r.db.WithContext(ctx).
		Model(&bookingRow{}).
		Where("id = ? AND status <> ?", bookingID, string(models.BookingStatusCancelled)).
		Updates(map[string]any{
			"status":       string(models.BookingStatusCancelled),
			"cancelled_at": at,
			"cancelled_by": cancelledBy,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", res.Error)
	}
	return r.GetBooking(ctx, bookingID)
}

func (r *GormRepo) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingRow{})
	if filter.ProviderID != "" {
		q = q.Where("provider_id = ?", filter.ProviderID)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var rows []bookingRow
	if err := q.Order("date ASC").Order("slot_index ASC").Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	out := make([]models.Booking, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}
