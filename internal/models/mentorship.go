package models

import "time"

const (
	MentorshipStatusPending        = "pending"
	MentorshipStatusMentorAccepted = "mentor_accepted"
	MentorshipStatusRejected       = "rejected"
	MentorshipStatusPaymentPending = "payment_pending"
	MentorshipStatusActive         = "active"
	MentorshipStatusCompleted      = "completed"
	MentorshipStatusCancelled      = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusPaid     = "paid"
)

const (
	SessionStatusBooked              = "booked"
	SessionStatusRescheduleRequested = "rescheduled_requested"
	SessionStatusCompleted           = "completed"
	SessionStatusCancelled           = "cancelled"
)

const (
	RoleUser   = "user"
	RoleMentor = "mentor"
)

type Feedback struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type MentorshipSession struct {
	ID           int64     `json:"id"`
	MentorshipID int64     `json:"mentorship_id"`
	Date         time.Time `json:"date"`
	Slot         string    `json:"slot"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type Mentorship struct {
	ID                        int64               `json:"id"`
	UserID                    int64               `json:"user_id"`
	MentorID                  int64               `json:"mentor_id"`
	Status                    string              `json:"status"`
	ProposedStartDate         time.Time           `json:"proposed_start_date"`
	MentorSuggestedStartDate  *time.Time          `json:"mentor_suggested_start_date"`
	StartDate                 *time.Time          `json:"start_date"`
	EndDate                   *time.Time          `json:"end_date"`
	TotalSessions             int                 `json:"total_sessions"`
	UsedSessions              int                 `json:"used_sessions"`
	Amount                    float64             `json:"amount"`
	MentorShare               float64             `json:"mentor_share"`
	PlatformShare             float64             `json:"platform_share"`
	PaymentStatus             string              `json:"payment_status"`
	PaymentID                 *string             `json:"payment_id"`
	UserConfirmedCompletion   bool                `json:"user_confirmed_completion"`
	MentorConfirmedCompletion bool                `json:"mentor_confirmed_completion"`
	UserFeedback              *Feedback           `json:"user_feedback"`
	MentorFeedback            *Feedback           `json:"mentor_feedback"`
	RejectionReason           *string             `json:"rejection_reason"`
	Sessions                  []MentorshipSession `json:"sessions"`
	CreatedAt                 time.Time           `json:"created_at"`
	UpdatedAt                 time.Time           `json:"updated_at"`
}

// Terminal reports whether the engagement can no longer transition.
func (m *Mentorship) Terminal() bool {
	return m.Status == MentorshipStatusCompleted || m.Status == MentorshipStatusCancelled
}

// Participant reports whether the caller with the given role belongs to this
// engagement.
func (m *Mentorship) Participant(role string, actorID int64) bool {
	switch role {
	case RoleUser:
		return m.UserID == actorID
	case RoleMentor:
		return m.MentorID == actorID
	default:
		return false
	}
}
