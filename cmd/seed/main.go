// Command seed registers a set of sample providers in the configured store and
// prints a development token for each of them.
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/database"
	"slotbook/models"
	"slotbook/services/provider"
	"slotbook/services/slots"
	"slotbook/utils"
)

type seedProvider struct {
	Category  string
	Specialty string
	Days      models.WorkingDays
	Hours     models.WorkHours
	SlotCount int
}

var (
	weekdays     = models.WorkingDays{false, true, true, true, true, true, false}
	withSaturday = models.WorkingDays{false, true, true, true, true, true, true}
	threeDays    = models.WorkingDays{false, true, false, true, false, true, false}
)

// A mix of even splits, uneven splits and weekend schedules.
var catalogue = []seedProvider{
	{"doctor", "General practice", weekdays, models.WorkHours{Start: 540, End: 1020}, 4},
	{"doctor", "Dermatology", threeDays, models.WorkHours{Start: 480, End: 1020}, 4},
	{"teacher", "Mathematics", weekdays, models.WorkHours{Start: 900, End: 1200}, 5},
	{"teacher", "Piano", withSaturday, models.WorkHours{Start: 600, End: 1080}, 8},
	{"fitness", "Personal training", withSaturday, models.WorkHours{Start: 360, End: 720}, 6},
	{"fitness", "Yoga", weekdays, models.WorkHours{Start: 420, End: 1140}, 7},
}

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.OpenStore(ctx, config.AppConfig)
	if err != nil {
		logger.Fatal("seed: failed to open availability store", zap.Error(err))
	}
	defer store.Close()
	if config.AppConfig.StoreDriver == config.DriverMemory {
		logger.Warn("seed: STORE_DRIVER=memory, seeded data is discarded on exit")
	}

	policy, err := slots.ParseRemainderPolicy(config.AppConfig.SlotRemainderPolicy)
	if err != nil {
		logger.Fatal("seed: invalid slot remainder policy", zap.Error(err))
	}
	svc := provider.NewProviderService(store.Repo, slots.NewGenerator(store.Repo, policy), time.Now, config.AppConfig.Location())

	now := time.Now().UTC()
	for i, sp := range catalogue {
		id := fmt.Sprintf("prov-%d", i+1)
		p, err := svc.RegisterProvider(ctx, models.Provider{
			ID:        id,
			Name:      fmt.Sprintf("%s %s %d", sp.Specialty, sp.Category, i+1),
			Category:  sp.Category,
			Specialty: sp.Specialty,
			Active:    true,
			Availability: models.ProviderAvailability{
				WorkingDays: sp.Days,
				WorkHours:   sp.Hours,
				SlotCount:   sp.SlotCount,
			},
			CreatedAt: now,
		})
		if err != nil {
			logger.Fatal("seed: failed to register provider", zap.String("providerId", id), zap.Error(err))
		}

		token, err := utils.GenerateToken(models.Session{UserID: p.ID, Role: models.RoleProvider}, 30*24*time.Hour)
		if err != nil {
			logger.Fatal("seed: failed to sign provider token", zap.String("providerId", id), zap.Error(err))
		}
		fmt.Printf("%s\t%-10s %-20s slots=%d\ttoken=%s\n", p.ID, p.Category, p.Specialty, p.Availability.SlotCount, token)
	}

	client, err := utils.GenerateToken(models.Session{UserID: "client-demo", Role: models.RoleClient}, 30*24*time.Hour)
	if err != nil {
		logger.Fatal("seed: failed to sign client token", zap.Error(err))
	}
	fmt.Printf("client-demo\ttoken=%s\n", client)
	logger.Info("seed: providers registered", zap.Int("count", len(catalogue)))
}
