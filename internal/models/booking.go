package models

import "time"

const (
	BookingStatusPending     = "pending"
	BookingStatusConfirmed   = "confirmed"
	BookingStatusRescheduled = "rescheduled"
	BookingStatusCancelled   = "cancelled"
	BookingStatusCompleted   = "completed"
)

type Booking struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	MentorID        int64      `json:"mentor_id"`
	BookingDate     time.Time  `json:"booking_date"`
	Slot            string     `json:"slot"`
	DurationMinutes int        `json:"duration_minutes"`
	Topic           string     `json:"topic"`
	RoomID          string     `json:"room_id"`
	Status          string     `json:"status"`
	RescheduleBy    *string    `json:"reschedule_by"`
	ProposedDate    *time.Time `json:"proposed_date"`
	ProposedSlot    *string    `json:"proposed_slot"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Terminal reports whether the booking can no longer transition.
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// Participant reports whether the caller with the given role belongs to this
// booking.
func (b *Booking) Participant(role string, actorID int64) bool {
	switch role {
	case RoleUser:
		return b.UserID == actorID
	case RoleMentor:
		return b.MentorID == actorID
	default:
		return false
	}
}
