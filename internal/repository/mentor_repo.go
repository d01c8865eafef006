package repository

import (
	"context"

	"github.com/arman-y/MentorHubBack/internal/models"
)

type MentorRepository struct {
	db DBTX
}

func NewMentorRepository(db DBTX) *MentorRepository {
	return &MentorRepository{db: db}
}

func (r *MentorRepository) GetByID(ctx context.Context, mentorID int64) (*models.Mentor, error) {
	query := `
		SELECT id, user_id, display_name, monthly_charge, sessions_per_month,
		       available_days, preferred_slots, sessions_completed, created_at
		FROM mentors
		WHERE id = $1
	`
	var mentor models.Mentor
	err := r.db.QueryRow(ctx, query, mentorID).Scan(
		&mentor.ID,
		&mentor.UserID,
		&mentor.DisplayName,
		&mentor.MonthlyCharge,
		&mentor.SessionsPerMonth,
		&mentor.AvailableDays,
		&mentor.PreferredSlots,
		&mentor.SessionsCompleted,
		&mentor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *MentorRepository) IncrementSessionsCompleted(ctx context.Context, mentorID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE mentors SET sessions_completed = sessions_completed + 1
		WHERE id = $1
	`, mentorID)
	return err
}
