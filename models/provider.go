package models

import (
	"strings"
	"time"
)

// Provider is the directory record for a service provider together with its availability.
type Provider struct {
	ID           string               `bson:"id" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Category     string               `bson:"category" json:"category"`                       // e.g. "doctor", "teacher", "fitness"
	Specialty    string               `bson:"specialty,omitempty" json:"specialty,omitempty"` // free text
	Active       bool                 `bson:"active" json:"active"`
	Availability ProviderAvailability `bson:"availability" json:"availability"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ProviderSummary is the public listing view of a provider.
type ProviderSummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Specialty   string      `json:"specialty,omitempty"`
	Active      bool        `json:"active"`
	WorkingDays WorkingDays `json:"workingDays"`
	WorkHours   WorkHours   `json:"workHours"`
	SlotCount   int         `json:"slotCount"`
}

func (p Provider) Summary() ProviderSummary {
	return ProviderSummary{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Specialty:   p.Specialty,
		Active:      p.Active,
		WorkingDays: p.Availability.WorkingDays,
		WorkHours:   p.Availability.WorkHours,
		SlotCount:   p.Availability.SlotCount,
	}
}

// ProviderFilter narrows ListProviders.
type ProviderFilter struct {
	Category   string
	ActiveOnly bool
}

func (f ProviderFilter) Matches(p Provider) bool {
	if f.ActiveOnly && !p.Active {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	return true
}
