package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arman-y/MentorHubBack/internal/models"
	"github.com/arman-y/MentorHubBack/internal/repository"
	"github.com/arman-y/MentorHubBack/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	bookingDurationMinutes = 60
	rollingWindowDays      = 30
	rollingWindowLimit     = 10
	bookingRescheduleFloor = 3 * time.Hour
)

type bookingStore interface {
	CreateIfAvailable(ctx context.Context, input repository.CreateBookingInput) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID int64) (*models.Booking, error)
	HasUserBookingOnDate(ctx context.Context, userID int64, date time.Time) (bool, error)
	IsSlotTaken(ctx context.Context, mentorID int64, date time.Time, slot string) (bool, error)
	CountByUserInDateRange(ctx context.Context, userID int64, from, to time.Time) (int, error)
	ListByParticipant(ctx context.Context, role string, actorID int64, status string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status string) (*models.Booking, error)
	SetRescheduleIfStatus(ctx context.Context, bookingID int64, currentStatus, by string, proposedDate time.Time, proposedSlot string) (*models.Booking, error)
	ApplyRescheduleIfSlotFree(ctx context.Context, bookingID int64) (*models.Booking, error)
	RejectReschedule(ctx context.Context, bookingID int64) (*models.Booking, error)
}

type mentorStore interface {
	GetByID(ctx context.Context, mentorID int64) (*models.Mentor, error)
	IncrementSessionsCompleted(ctx context.Context, mentorID int64) error
}

type userReader interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
}

// BookingService drives one-off session bookings: availability-checked
// creation, direct status overwrites and the reschedule handshake.
type BookingService struct {
	store    bookingStore
	mentors  mentorStore
	users    userReader
	notifier notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	store bookingStore,
	mentors mentorStore,
	users userReader,
	notifier notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		store:    store,
		mentors:  mentors,
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BookingService) notify(
	ctx context.Context,
	recipientID int64,
	role string,
	notificationType string,
	title string,
	message string,
	metadata map[string]string,
) {
	if err := s.notifier.Notify(ctx, recipientID, role, notificationType, title, message, metadata); err != nil {
		s.logger.Warn("notification failed",
			zap.Int64("recipient_id", recipientID),
			zap.String("type", notificationType),
			zap.Error(err),
		)
	}
}

func (s *BookingService) loadBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	booking, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, err
	}
	return booking, nil
}

type CreateBookingInput struct {
	UserID      int64
	MentorID    int64
	BookingDate time.Time
	Slot        string
	Topic       string
}

// CreateBooking evaluates the availability guards in a fixed order; the first
// failing guard wins and nothing is persisted. The slot and one-per-day rules
// are re-validated transactionally at commit time by the store.
func (s *BookingService) CreateBooking(
	ctx context.Context,
	input CreateBookingInput,
) (*models.Booking, error) {
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, input.UserID)
		}
		return nil, err
	}
	mentor, err := s.mentors.GetByID(ctx, input.MentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: mentor %d", ErrNotFound, input.MentorID)
		}
		return nil, err
	}

	date := utils.Day(input.BookingDate)
	if utils.IsPastDay(date, s.now()) {
		return nil, fmt.Errorf("%w: booking date is in the past", ErrInvalidTransition)
	}

	taken, err := s.store.HasUserBookingOnDate(ctx, input.UserID, date)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: you already have a booking on this date", ErrInvalidTransition)
	}

	taken, err = s.store.IsSlotTaken(ctx, input.MentorID, date, input.Slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: slot unavailable", ErrInvalidTransition)
	}

	weekday := utils.WeekdayName(date)
	if !mentor.OffersDay(weekday) {
		return nil, fmt.Errorf("%w: mentor is not available on %s", ErrInvalidTransition, weekday)
	}
	if !mentor.OffersSlot(input.Slot) {
		return nil, fmt.Errorf("%w: mentor does not offer slot %q", ErrInvalidTransition, input.Slot)
	}

	// 30 days ending at the booking date, both ends inclusive.
	windowStart := date.AddDate(0, 0, -rollingWindowDays+1)
	count, err := s.store.CountByUserInDateRange(ctx, input.UserID, windowStart, date)
	if err != nil {
		return nil, err
	}
	if count >= rollingWindowLimit {
		return nil, fmt.Errorf("%w: booking limit of %d per %d days reached", ErrInvalidTransition, rollingWindowLimit, rollingWindowDays)
	}

	booking, err := s.store.CreateIfAvailable(ctx, repository.CreateBookingInput{
		UserID:          input.UserID,
		MentorID:        input.MentorID,
		BookingDate:     date,
		Slot:            input.Slot,
		DurationMinutes: bookingDurationMinutes,
		Topic:           input.Topic,
		RoomID:          uuid.NewString(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, fmt.Errorf("%w: slot unavailable", ErrInvalidTransition)
		}
		if errors.Is(err, repository.ErrUserDayTaken) {
			return nil, fmt.Errorf("%w: you already have a booking on this date", ErrInvalidTransition)
		}
		return nil, err
	}

	s.notify(ctx, input.MentorID, models.RoleMentor, "booking_request",
		"New session booking",
		fmt.Sprintf("A student booked the %s slot on %s.", booking.Slot, booking.BookingDate.Format("2006-01-02")),
		map[string]string{"booking_id": fmt.Sprint(booking.ID)})
	return booking, nil
}

var bookingStatusMessages = map[string]string{
	models.BookingStatusPending:     "Your booking is pending confirmation.",
	models.BookingStatusConfirmed:   "Your booking was confirmed.",
	models.BookingStatusRescheduled: "Your booking was marked for rescheduling.",
	models.BookingStatusCancelled:   "Your booking was cancelled.",
	models.BookingStatusCompleted:   "Your session was marked completed.",
}

// UpdateBookingStatus overwrites the booking status. Completion also bumps the
// mentor's completed-session counter; that write lands before the status, so a
// failed status persist is logged for reconciliation rather than retried.
func (s *BookingService) UpdateBookingStatus(
	ctx context.Context,
	bookingID int64,
	status string,
) (*models.Booking, error) {
	message, ok := bookingStatusMessages[status]
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if status == models.BookingStatusCompleted {
		if err := s.mentors.IncrementSessionsCompleted(ctx, booking.MentorID); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		if status == models.BookingStatusCompleted {
			s.logger.Error("session counter bumped but status persist failed",
				zap.Int64("booking_id", bookingID),
				zap.Int64("mentor_id", booking.MentorID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: booking %d", ErrReconciliationRequired, bookingID)
		}
		return nil, err
	}

	s.notify(ctx, updated.UserID, models.RoleUser, "booking_status",
		"Booking update", message,
		map[string]string{"booking_id": fmt.Sprint(bookingID), "status": status})
	return updated, nil
}

// RequestReschedule starts the reschedule handshake. User-initiated requests
// must come at least three hours before the existing booking's slot start.
func (s *BookingService) RequestReschedule(
	ctx context.Context,
	bookingID int64,
	actorID int64,
	role string,
	proposedDate time.Time,
	proposedSlot string,
) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Participant(role, actorID) {
		return nil, ErrForbidden
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: cannot reschedule while status is %s", ErrInvalidTransition, booking.Status)
	}

	date := utils.Day(proposedDate)
	if utils.IsPastDay(date, s.now()) {
		return nil, fmt.Errorf("%w: proposed date is in the past", ErrInvalidTransition)
	}

	if role == models.RoleUser {
		start, err := utils.SlotStartTime(booking.BookingDate, booking.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}
		if start.Sub(s.now()) < bookingRescheduleFloor {
			return nil, fmt.Errorf("%w: bookings can only be rescheduled at least 3 hours in advance", ErrInvalidTransition)
		}
	}

	updated, err := s.store.SetRescheduleIfStatus(ctx, bookingID, booking.Status, role, date, proposedSlot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
		}
		return nil, err
	}

	recipientID, recipientRole := updated.MentorID, models.RoleMentor
	if role == models.RoleMentor {
		recipientID, recipientRole = updated.UserID, models.RoleUser
	}
	s.notify(ctx, recipientID, recipientRole, "booking_reschedule_requested",
		"Reschedule requested",
		fmt.Sprintf("A reschedule to %s, slot %s, was proposed.", date.Format("2006-01-02"), proposedSlot),
		map[string]string{"booking_id": fmt.Sprint(bookingID)})
	return updated, nil
}

// HandleRescheduleResponse resolves a pending reschedule. Approval re-checks
// the proposed slot at commit time; a now-taken slot cancels the booking the
// same way a rejection does and fails the approval with an explicit error.
func (s *BookingService) HandleRescheduleResponse(
	ctx context.Context,
	bookingID int64,
	actorID int64,
	role string,
	approve bool,
) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Participant(role, actorID) {
		return nil, ErrForbidden
	}
	if booking.Status != models.BookingStatusRescheduled {
		return nil, fmt.Errorf("%w: no reschedule to respond to", ErrInvalidTransition)
	}
	if booking.RescheduleBy != nil && *booking.RescheduleBy == role {
		return nil, ErrForbidden
	}

	requesterID, requesterRole := booking.UserID, models.RoleUser
	if booking.RescheduleBy != nil && *booking.RescheduleBy == models.RoleMentor {
		requesterID, requesterRole = booking.MentorID, models.RoleMentor
	}

	var updated *models.Booking
	if approve {
		updated, err = s.store.ApplyRescheduleIfSlotFree(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrSlotTaken) {
				// The store already cancelled the booking and cleared the
				// proposal.
				s.notify(ctx, requesterID, requesterRole, "booking_reschedule_resolved",
					"Reschedule failed",
					"The proposed slot was taken in the meantime; the booking was cancelled.",
					map[string]string{"booking_id": fmt.Sprint(bookingID)})
				return nil, fmt.Errorf("%w: proposed slot is no longer available", ErrInvalidTransition)
			}
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
			}
			return nil, err
		}
	} else {
		updated, err = s.store.RejectReschedule(ctx, bookingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
			}
			return nil, err
		}
	}

	// Notify whoever asked for the reschedule.
	title := "Reschedule approved"
	outcome := "approved"
	if !approve {
		title = "Reschedule rejected"
		outcome = "rejected; the booking was cancelled"
	}
	s.notify(ctx, requesterID, requesterRole, "booking_reschedule_resolved",
		title,
		fmt.Sprintf("Your reschedule request was %s.", outcome),
		map[string]string{"booking_id": fmt.Sprint(bookingID)})
	return updated, nil
}

// GetBooking returns the booking to one of its participants.
func (s *BookingService) GetBooking(
	ctx context.Context,
	bookingID int64,
	actorID int64,
	role string,
) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Participant(role, actorID) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) ListBookings(
	ctx context.Context,
	actorID int64,
	role string,
	status string,
) ([]models.Booking, error) {
	return s.store.ListByParticipant(ctx, role, actorID, status)
}
