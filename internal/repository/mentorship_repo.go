package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arman-y/MentorHubBack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const mentorshipColumns = `
	id, user_id, mentor_id, status, proposed_start_date, mentor_suggested_start_date,
	start_date, end_date, total_sessions, used_sessions, amount, mentor_share,
	platform_share, payment_status, payment_id, user_confirmed_completion,
	mentor_confirmed_completion, user_rating, user_comment, mentor_rating,
	mentor_comment, rejection_reason, created_at, updated_at`

type CreateMentorshipInput struct {
	UserID            int64
	MentorID          int64
	ProposedStartDate time.Time
	TotalSessions     int
	Amount            float64
}

// UpdateMentorshipFields lists the columns a guarded update may set. Nil fields
// are left untouched.
type UpdateMentorshipFields struct {
	Status                    *string
	MentorSuggestedStartDate  *time.Time
	StartDate                 *time.Time
	EndDate                   *time.Time
	PaymentStatus             *string
	PaymentID                 *string
	MentorShare               *float64
	PlatformShare             *float64
	UserConfirmedCompletion   *bool
	MentorConfirmedCompletion *bool
	UserRating                *int
	UserComment               *string
	MentorRating              *int
	MentorComment             *string
	RejectionReason           *string

	// GuardPaymentStatus, when set, adds payment_status to the WHERE clause so
	// duplicate payment webhooks lose the race instead of double-applying.
	GuardPaymentStatus *string
}

type MentorshipRepository struct {
	pool *pgxpool.Pool
}

func NewMentorshipRepository(pool *pgxpool.Pool) *MentorshipRepository {
	return &MentorshipRepository{pool: pool}
}

func scanMentorship(row pgx.Row) (*models.Mentorship, error) {
	var m models.Mentorship
	var userRating, mentorRating *int
	var userComment, mentorComment *string
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.MentorID,
		&m.Status,
		&m.ProposedStartDate,
		&m.MentorSuggestedStartDate,
		&m.StartDate,
		&m.EndDate,
		&m.TotalSessions,
		&m.UsedSessions,
		&m.Amount,
		&m.MentorShare,
		&m.PlatformShare,
		&m.PaymentStatus,
		&m.PaymentID,
		&m.UserConfirmedCompletion,
		&m.MentorConfirmedCompletion,
		&userRating,
		&userComment,
		&mentorRating,
		&mentorComment,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userRating != nil {
		m.UserFeedback = &models.Feedback{Rating: *userRating}
		if userComment != nil {
			m.UserFeedback.Comment = *userComment
		}
	}
	if mentorRating != nil {
		m.MentorFeedback = &models.Feedback{Rating: *mentorRating}
		if mentorComment != nil {
			m.MentorFeedback.Comment = *mentorComment
		}
	}
	return &m, nil
}

func (r *MentorshipRepository) loadSessions(ctx context.Context, db DBTX, m *models.Mentorship) error {
	rows, err := db.Query(ctx, `
		SELECT id, mentorship_id, session_date, slot, status, created_at
		FROM mentorship_sessions
		WHERE mentorship_id = $1
		ORDER BY session_date ASC, id ASC
	`, m.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	sessions := make([]models.MentorshipSession, 0)
	for rows.Next() {
		var s models.MentorshipSession
		if err := rows.Scan(&s.ID, &s.MentorshipID, &s.Date, &s.Slot, &s.Status, &s.CreatedAt); err != nil {
			return err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	m.Sessions = sessions
	return nil
}

func (r *MentorshipRepository) Create(
	ctx context.Context,
	input CreateMentorshipInput,
) (*models.Mentorship, error) {
	query := fmt.Sprintf(`
		INSERT INTO mentorships (user_id, mentor_id, status, proposed_start_date, total_sessions, amount, payment_status)
		VALUES ($1, $2, 'pending', $3, $4, $5, 'pending')
		RETURNING %s
	`, mentorshipColumns)

	m, err := scanMentorship(r.pool.QueryRow(
		ctx,
		query,
		input.UserID,
		input.MentorID,
		input.ProposedStartDate,
		input.TotalSessions,
		input.Amount,
	))
	if err != nil {
		return nil, err
	}
	m.Sessions = []models.MentorshipSession{}
	return m, nil
}

func (r *MentorshipRepository) GetByID(ctx context.Context, id int64) (*models.Mentorship, error) {
	query := fmt.Sprintf(`SELECT %s FROM mentorships WHERE id = $1`, mentorshipColumns)
	m, err := scanMentorship(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSessions(ctx, r.pool, m); err != nil {
		return nil, err
	}
	return m, nil
}

// FindNonTerminalByUserAndMentor returns the open engagement between the pair,
// or pgx.ErrNoRows when there is none.
func (r *MentorshipRepository) FindNonTerminalByUserAndMentor(
	ctx context.Context,
	userID int64,
	mentorID int64,
) (*models.Mentorship, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM mentorships
		WHERE user_id = $1 AND mentor_id = $2
		  AND status NOT IN ('completed', 'cancelled', 'rejected')
		ORDER BY id DESC
		LIMIT 1
	`, mentorshipColumns)
	m, err := scanMentorship(r.pool.QueryRow(ctx, query, userID, mentorID))
	if err != nil {
		return nil, err
	}
	if err := r.loadSessions(ctx, r.pool, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MentorshipRepository) ListByParticipant(
	ctx context.Context,
	role string,
	actorID int64,
) ([]models.Mentorship, error) {
	actorColumn := "user_id"
	if role == models.RoleMentor {
		actorColumn = "mentor_id"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM mentorships
		WHERE %s = $1
		ORDER BY created_at DESC, id DESC
	`, mentorshipColumns, actorColumn)

	rows, err := r.pool.Query(ctx, query, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentorships := make([]models.Mentorship, 0)
	for rows.Next() {
		m, err := scanMentorship(rows)
		if err != nil {
			return nil, err
		}
		mentorships = append(mentorships, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mentorships, nil
}

// UpdateIfStatus applies the given fields only while the engagement still holds
// currentStatus (and, if guarded, the expected payment status). Returns
// pgx.ErrNoRows when a concurrent transition won the race.
func (r *MentorshipRepository) UpdateIfStatus(
	ctx context.Context,
	id int64,
	currentStatus string,
	update UpdateMentorshipFields,
) (*models.Mentorship, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id, currentStatus}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.MentorSuggestedStartDate != nil {
		add("mentor_suggested_start_date", *update.MentorSuggestedStartDate)
	}
	if update.StartDate != nil {
		add("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		add("end_date", *update.EndDate)
	}
	if update.PaymentStatus != nil {
		add("payment_status", *update.PaymentStatus)
	}
	if update.PaymentID != nil {
		add("payment_id", *update.PaymentID)
	}
	if update.MentorShare != nil {
		add("mentor_share", *update.MentorShare)
	}
	if update.PlatformShare != nil {
		add("platform_share", *update.PlatformShare)
	}
	if update.UserConfirmedCompletion != nil {
		add("user_confirmed_completion", *update.UserConfirmedCompletion)
	}
	if update.MentorConfirmedCompletion != nil {
		add("mentor_confirmed_completion", *update.MentorConfirmedCompletion)
	}
	if update.UserRating != nil {
		add("user_rating", *update.UserRating)
	}
	if update.UserComment != nil {
		add("user_comment", *update.UserComment)
	}
	if update.MentorRating != nil {
		add("mentor_rating", *update.MentorRating)
	}
	if update.MentorComment != nil {
		add("mentor_comment", *update.MentorComment)
	}
	if update.RejectionReason != nil {
		add("rejection_reason", *update.RejectionReason)
	}

	guard := ""
	if update.GuardPaymentStatus != nil {
		args = append(args, *update.GuardPaymentStatus)
		guard = fmt.Sprintf(" AND payment_status = $%d", len(args))
	}

	query := fmt.Sprintf(`
		UPDATE mentorships
		SET %s
		WHERE id = $1 AND status = $2%s
		RETURNING %s
	`, strings.Join(sets, ", "), guard, mentorshipColumns)

	m, err := scanMentorship(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if err := r.loadSessions(ctx, r.pool, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddSessionIfQuota appends a booked session and consumes one unit of quota in
// a single transaction. The quota and status guards live in the UPDATE, so a
// concurrent booking that exhausts the quota makes this return pgx.ErrNoRows.
func (r *MentorshipRepository) AddSessionIfQuota(
	ctx context.Context,
	mentorshipID int64,
	date time.Time,
	slot string,
) (*models.Mentorship, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE mentorships
		SET used_sessions = used_sessions + 1, updated_at = NOW()
		WHERE id = $1 AND status = 'active' AND used_sessions < total_sessions
		RETURNING %s
	`, mentorshipColumns)

	m, err := scanMentorship(tx.QueryRow(ctx, query, mentorshipID))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO mentorship_sessions (mentorship_id, session_date, slot, status)
		VALUES ($1, $2, $3, 'booked')
	`, mentorshipID, date, slot)
	if err != nil {
		return nil, err
	}

	if err := r.loadSessions(ctx, tx, m); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MentorshipRepository) GetSession(
	ctx context.Context,
	sessionID int64,
) (*models.MentorshipSession, error) {
	var s models.MentorshipSession
	err := r.pool.QueryRow(ctx, `
		SELECT id, mentorship_id, session_date, slot, status, created_at
		FROM mentorship_sessions
		WHERE id = $1
	`, sessionID).Scan(&s.ID, &s.MentorshipID, &s.Date, &s.Slot, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MentorshipRepository) UpdateSessionIfStatus(
	ctx context.Context,
	sessionID int64,
	currentStatus string,
	nextStatus string,
) (*models.MentorshipSession, error) {
	var s models.MentorshipSession
	err := r.pool.QueryRow(ctx, `
		UPDATE mentorship_sessions
		SET status = $3
		WHERE id = $1 AND status = $2
		RETURNING id, mentorship_id, session_date, slot, status, created_at
	`, sessionID, currentStatus, nextStatus).Scan(&s.ID, &s.MentorshipID, &s.Date, &s.Slot, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
