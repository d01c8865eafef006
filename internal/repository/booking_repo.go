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

const bookingColumns = `
	id, user_id, mentor_id, booking_date, slot, duration_minutes, topic, room_id,
	status, reschedule_by, proposed_date, proposed_slot, created_at, updated_at`

type CreateBookingInput struct {
	UserID          int64
	MentorID        int64
	BookingDate     time.Time
	Slot            string
	DurationMinutes int
	Topic           string
	RoomID          string
}

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.MentorID,
		&b.BookingDate,
		&b.Slot,
		&b.DurationMinutes,
		&b.Topic,
		&b.RoomID,
		&b.Status,
		&b.RescheduleBy,
		&b.ProposedDate,
		&b.ProposedSlot,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func slotTaken(
	ctx context.Context,
	db DBTX,
	mentorID int64,
	date time.Time,
	slot string,
	excludedBookingID int64,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE mentor_id = $1
			  AND booking_date = $2
			  AND slot = $3
			  AND id <> $4
			  AND status NOT IN ('completed', 'cancelled')
		)
	`
	var taken bool
	if err := db.QueryRow(ctx, query, mentorID, date, slot, excludedBookingID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func userDayTaken(ctx context.Context, db DBTX, userID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1
			  AND booking_date = $2
			  AND status NOT IN ('completed', 'cancelled')
		)
	`
	var taken bool
	if err := db.QueryRow(ctx, query, userID, date).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

// CreateIfAvailable inserts a pending booking after re-validating the one
// session per user/day rule and the mentor slot inside the transaction. The
// advisory lock on the mentor id serializes racing creates so the re-check
// holds through commit.
func (r *BookingRepository) CreateIfAvailable(
	ctx context.Context,
	input CreateBookingInput,
) (*models.Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", input.MentorID); err != nil {
		return nil, err
	}

	taken, err := userDayTaken(ctx, tx, input.UserID, input.BookingDate)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserDayTaken
	}

	taken, err = slotTaken(ctx, tx, input.MentorID, input.BookingDate, input.Slot, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	query := fmt.Sprintf(`
		INSERT INTO bookings (user_id, mentor_id, booking_date, slot, duration_minutes, topic, room_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		RETURNING %s
	`, bookingColumns)

	booking, err := scanBooking(tx.QueryRow(
		ctx,
		query,
		input.UserID,
		input.MentorID,
		input.BookingDate,
		input.Slot,
		input.DurationMinutes,
		input.Topic,
		input.RoomID,
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID int64) (*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	return scanBooking(r.pool.QueryRow(ctx, query, bookingID))
}

func (r *BookingRepository) HasUserBookingOnDate(
	ctx context.Context,
	userID int64,
	date time.Time,
) (bool, error) {
	return userDayTaken(ctx, r.pool, userID, date)
}

func (r *BookingRepository) IsSlotTaken(
	ctx context.Context,
	mentorID int64,
	date time.Time,
	slot string,
) (bool, error) {
	return slotTaken(ctx, r.pool, mentorID, date, slot, 0)
}

func (r *BookingRepository) CountByUserInDateRange(
	ctx context.Context,
	userID int64,
	from time.Time,
	to time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE user_id = $1 AND booking_date >= $2 AND booking_date <= $3
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingRepository) ListByParticipant(
	ctx context.Context,
	role string,
	actorID int64,
	status string,
) ([]models.Booking, error) {
	actorColumn := "user_id"
	if role == models.RoleMentor {
		actorColumn = "mentor_id"
	}

	args := []any{actorID}
	whereParts := []string{fmt.Sprintf("%s = $1", actorColumn)}
	if status = strings.TrimSpace(status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE %s
		ORDER BY booking_date ASC, id ASC
	`, bookingColumns, strings.Join(whereParts, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(
	ctx context.Context,
	bookingID int64,
	status string,
) (*models.Booking, error) {
	query := fmt.Sprintf(`
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, bookingColumns)
	return scanBooking(r.pool.QueryRow(ctx, query, bookingID, status))
}

// SetRescheduleIfStatus records a reschedule request while the booking still
// holds currentStatus. Returns pgx.ErrNoRows on a lost race.
func (r *BookingRepository) SetRescheduleIfStatus(
	ctx context.Context,
	bookingID int64,
	currentStatus string,
	by string,
	proposedDate time.Time,
	proposedSlot string,
) (*models.Booking, error) {
	query := fmt.Sprintf(`
		UPDATE bookings
		SET status = 'rescheduled', reschedule_by = $3, proposed_date = $4, proposed_slot = $5, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING %s
	`, bookingColumns)
	return scanBooking(r.pool.QueryRow(ctx, query, bookingID, currentStatus, by, proposedDate, proposedSlot))
}

// ApplyRescheduleIfSlotFree adopts the proposed date/slot. The proposed slot is
// re-validated under the mentor advisory lock inside the transaction; a taken
// slot cancels the booking and clears the proposal in the same transaction,
// then surfaces ErrSlotTaken so the caller can report the failed approval.
func (r *BookingRepository) ApplyRescheduleIfSlotFree(
	ctx context.Context,
	bookingID int64,
) (*models.Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 FOR UPDATE`, bookingColumns)
	booking, err := scanBooking(tx.QueryRow(ctx, query, bookingID))
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusRescheduled ||
		booking.ProposedDate == nil || booking.ProposedSlot == nil {
		return nil, pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", booking.MentorID); err != nil {
		return nil, err
	}

	taken, err := slotTaken(ctx, tx, booking.MentorID, *booking.ProposedDate, *booking.ProposedSlot, bookingID)
	if err != nil {
		return nil, err
	}
	if taken {
		query = fmt.Sprintf(`
			UPDATE bookings
			SET status = 'cancelled', reschedule_by = NULL, proposed_date = NULL, proposed_slot = NULL, updated_at = NOW()
			WHERE id = $1
			RETURNING %s
		`, bookingColumns)
		if _, err := scanBooking(tx.QueryRow(ctx, query, bookingID)); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, ErrSlotTaken
	}

	query = fmt.Sprintf(`
		UPDATE bookings
		SET booking_date = proposed_date, slot = proposed_slot, status = 'confirmed',
		    reschedule_by = NULL, proposed_date = NULL, proposed_slot = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, bookingColumns)
	booking, err = scanBooking(tx.QueryRow(ctx, query, bookingID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

// RejectReschedule cancels a booking sitting in rescheduled status and clears
// the proposal fields. Returns pgx.ErrNoRows on a lost race.
func (r *BookingRepository) RejectReschedule(
	ctx context.Context,
	bookingID int64,
) (*models.Booking, error) {
	query := fmt.Sprintf(`
		UPDATE bookings
		SET status = 'cancelled', reschedule_by = NULL, proposed_date = NULL, proposed_slot = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'rescheduled'
		RETURNING %s
	`, bookingColumns)
	return scanBooking(r.pool.QueryRow(ctx, query, bookingID))
}
