package slots

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/services/calendar"
	"slotbook/utils"
)

// OccupancyReader reports which slot indexes hold an active booking on a date.
type OccupancyReader interface {
	OccupiedSlots(ctx context.Context, providerID, date string) ([]int, error)
}

// Generator turns an availability config into the day's slots, flagging the ones already taken.
type Generator struct {
	occupancy OccupancyReader
	policy    RemainderPolicy
}

func NewGenerator(occupancy OccupancyReader, policy RemainderPolicy) *Generator {
	if policy == "" {
		policy = RemainderDrop
	}
	return &Generator{occupancy: occupancy, policy: policy}
}

func (g *Generator) Policy() RemainderPolicy {
	return g.policy
}

// Boundaries is BuildSlots under the generator's remainder policy.
func (g *Generator) Boundaries(cfg models.ProviderAvailability, date calendar.Date) []models.TimeSlot {
	return BuildSlots(cfg, date, g.policy)
}

// GenerateSlots returns the ordered slots for date with their availability flags filled
// from a single occupancy query.
func (g *Generator) GenerateSlots(ctx context.Context, cfg models.ProviderAvailability, date calendar.Date) ([]models.TimeSlot, error) {
	out := g.Boundaries(cfg, date)
	if len(out) == 0 {
		if cfg.WorkHours.Minutes() > 0 && calendar.IsWorkingDay(cfg, date) {
			utils.GetLogger().Warn("Working hours too short for slot count",
				zap.String("providerId", cfg.ProviderID),
				zap.Int("minutes", cfg.WorkHours.Minutes()),
				zap.Int("slotCount", cfg.SlotCount))
		}
		return []models.TimeSlot{}, nil
	}
	if g.occupancy == nil {
		return out, nil
	}

	taken, err := g.occupancy.OccupiedSlots(ctx, cfg.ProviderID, date.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied slots: %w", err)
	}
	for _, idx := range taken {
		if idx >= 0 && idx < len(out) {
			out[idx].Available = false
		}
	}
	return out, nil
}
