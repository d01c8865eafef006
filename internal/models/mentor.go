package models

import "time"

type Mentor struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	DisplayName       string    `json:"display_name"`
	MonthlyCharge     float64   `json:"monthly_charge"`
	SessionsPerMonth  int       `json:"sessions_per_month"`
	AvailableDays     []string  `json:"available_days"`
	PreferredSlots    []string  `json:"preferred_slots"`
	SessionsCompleted int       `json:"sessions_completed"`
	CreatedAt         time.Time `json:"created_at"`
}

// OffersDay reports whether the mentor takes bookings on the named weekday.
func (m *Mentor) OffersDay(weekday string) bool {
	for _, day := range m.AvailableDays {
		if day == weekday {
			return true
		}
	}
	return false
}

// OffersSlot reports whether the named slot is one the mentor has declared.
func (m *Mentor) OffersSlot(slot string) bool {
	for _, s := range m.PreferredSlots {
		if s == slot {
			return true
		}
	}
	return false
}
