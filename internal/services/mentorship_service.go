package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arman-y/MentorHubBack/internal/models"
	"github.com/arman-y/MentorHubBack/internal/repository"
	"github.com/arman-y/MentorHubBack/pkg/utils"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	engagementDays         = 30
	cancellationWindowDays = 7
	sessionRescheduleFloor = 6 * time.Hour
)

type mentorshipStore interface {
	Create(ctx context.Context, input repository.CreateMentorshipInput) (*models.Mentorship, error)
	GetByID(ctx context.Context, id int64) (*models.Mentorship, error)
	FindNonTerminalByUserAndMentor(ctx context.Context, userID, mentorID int64) (*models.Mentorship, error)
	ListByParticipant(ctx context.Context, role string, actorID int64) ([]models.Mentorship, error)
	UpdateIfStatus(ctx context.Context, id int64, currentStatus string, update repository.UpdateMentorshipFields) (*models.Mentorship, error)
	AddSessionIfQuota(ctx context.Context, mentorshipID int64, date time.Time, slot string) (*models.Mentorship, error)
	GetSession(ctx context.Context, sessionID int64) (*models.MentorshipSession, error)
	UpdateSessionIfStatus(ctx context.Context, sessionID int64, currentStatus, nextStatus string) (*models.MentorshipSession, error)
}

type mentorReader interface {
	GetByID(ctx context.Context, mentorID int64) (*models.Mentor, error)
}

type escrowLedger interface {
	CreditMentorPending(ctx context.Context, mentorID int64, amount float64, reference, description string) (*models.Wallet, error)
	ReleaseMentorPending(ctx context.Context, mentorID int64, amount float64, reference, description string) (*models.Wallet, error)
	DebitMentorPending(ctx context.Context, mentorID int64, amount float64, reference, description string) (*models.Wallet, error)
	CreditUserBalance(ctx context.Context, userID int64, amount float64, reference, description string) (*models.Wallet, error)
	CreditPlatformRevenue(ctx context.Context, amount float64, reference, description string) (*models.Wallet, error)
	DebitPlatformRevenue(ctx context.Context, amount float64, reference, description string) (*models.Wallet, error)
}

type notifier interface {
	Notify(ctx context.Context, recipientID int64, recipientRole, notificationType, title, message string, metadata map[string]string) error
}

// MentorshipService drives the month-long engagement lifecycle:
// request -> accept -> confirm -> pay -> active -> complete/cancel, with the
// escrow movements each transition owes.
type MentorshipService struct {
	store        mentorshipStore
	mentors      mentorReader
	ledger       escrowLedger
	notifier     notifier
	logger       *zap.Logger
	platformRate float64
	sessionFee   float64
	now          func() time.Time
}

func NewMentorshipService(
	store mentorshipStore,
	mentors mentorReader,
	ledger escrowLedger,
	notifier notifier,
	logger *zap.Logger,
	platformRate float64,
	sessionCancelFee float64,
) *MentorshipService {
	return &MentorshipService{
		store:        store,
		mentors:      mentors,
		ledger:       ledger,
		notifier:     notifier,
		logger:       logger,
		platformRate: platformRate,
		sessionFee:   sessionCancelFee,
		now:          time.Now,
	}
}

func (s *MentorshipService) notify(
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

func (s *MentorshipService) load(ctx context.Context, mentorshipID int64) (*models.Mentorship, error) {
	m, err := s.store.GetByID(ctx, mentorshipID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: mentorship %d", ErrNotFound, mentorshipID)
		}
		return nil, err
	}
	return m, nil
}

// CreateRequest opens a new engagement in pending status. The amount and
// session quota snapshot the mentor's current offering and are never
// recomputed afterwards.
func (s *MentorshipService) CreateRequest(
	ctx context.Context,
	userID int64,
	mentorID int64,
	proposedStartDate time.Time,
) (*models.Mentorship, error) {
	mentor, err := s.mentors.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: mentor %d", ErrNotFound, mentorID)
		}
		return nil, err
	}

	if utils.IsPastDay(proposedStartDate, s.now()) {
		return nil, fmt.Errorf("%w: proposed start date is in the past", ErrInvalidTransition)
	}

	if _, err := s.store.FindNonTerminalByUserAndMentor(ctx, userID, mentorID); err == nil {
		return nil, fmt.Errorf("%w: an open engagement with this mentor already exists", ErrInvalidTransition)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	m, err := s.store.Create(ctx, repository.CreateMentorshipInput{
		UserID:            userID,
		MentorID:          mentorID,
		ProposedStartDate: utils.Day(proposedStartDate),
		TotalSessions:     mentor.SessionsPerMonth,
		Amount:            mentor.MonthlyCharge,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, mentorID, models.RoleMentor, "mentorship_request",
		"New mentorship request",
		"A student has requested a mentorship engagement with you.",
		map[string]string{"mentorship_id": fmt.Sprint(m.ID)})
	return m, nil
}

// RespondToRequest lets the mentor accept (optionally proposing a different
// start date) or reject a pending request.
func (s *MentorshipService) RespondToRequest(
	ctx context.Context,
	mentorshipID int64,
	mentorID int64,
	accept bool,
	suggestedStartDate *time.Time,
	rejectionReason string,
) (*models.Mentorship, error) {
	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if m.MentorID != mentorID {
		return nil, ErrForbidden
	}
	if m.Status != models.MentorshipStatusPending {
		return nil, fmt.Errorf("%w: cannot respond while status is %s", ErrInvalidTransition, m.Status)
	}

	var update repository.UpdateMentorshipFields
	var recipientTitle, recipientMsg, notificationType string
	if accept {
		if suggestedStartDate != nil {
			if utils.IsPastDay(*suggestedStartDate, s.now()) {
				return nil, fmt.Errorf("%w: suggested start date is in the past", ErrInvalidTransition)
			}
			day := utils.Day(*suggestedStartDate)
			update.MentorSuggestedStartDate = &day
		}
		status := models.MentorshipStatusMentorAccepted
		update.Status = &status
		notificationType = "mentorship_accepted"
		recipientTitle = "Mentorship request accepted"
		recipientMsg = "Your mentor accepted the request. Please confirm the start date."
	} else {
		status := models.MentorshipStatusRejected
		update.Status = &status
		update.RejectionReason = &rejectionReason
		notificationType = "mentorship_rejected"
		recipientTitle = "Mentorship request rejected"
		recipientMsg = "Your mentorship request was rejected: " + rejectionReason
	}

	updated, err := s.store.UpdateIfStatus(ctx, mentorshipID, models.MentorshipStatusPending, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: request is no longer pending", ErrInvalidTransition)
		}
		return nil, err
	}

	s.notify(ctx, m.UserID, models.RoleUser, notificationType, recipientTitle, recipientMsg,
		map[string]string{"mentorship_id": fmt.Sprint(mentorshipID)})
	return updated, nil
}

// ConfirmMentorSuggestion is the user's answer to an accepted request: approve
// moves to payment_pending with the agreed start date, decline cancels.
func (s *MentorshipService) ConfirmMentorSuggestion(
	ctx context.Context,
	mentorshipID int64,
	userID int64,
	approve bool,
) (*models.Mentorship, error) {
	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrForbidden
	}
	if m.Status != models.MentorshipStatusMentorAccepted {
		return nil, fmt.Errorf("%w: cannot confirm while status is %s", ErrInvalidTransition, m.Status)
	}

	var update repository.UpdateMentorshipFields
	var notificationType, title, msg string
	if approve {
		start := m.ProposedStartDate
		if m.MentorSuggestedStartDate != nil {
			start = *m.MentorSuggestedStartDate
		}
		startDay := utils.Day(start)
		status := models.MentorshipStatusPaymentPending
		update.Status = &status
		update.StartDate = &startDay
		notificationType = "mentorship_confirmed"
		title = "Start date confirmed"
		msg = "The student confirmed the start date. The engagement activates once payment is verified."
	} else {
		status := models.MentorshipStatusCancelled
		update.Status = &status
		notificationType = "mentorship_declined"
		title = "Suggestion declined"
		msg = "The student declined the suggested start date; the engagement was cancelled."
	}

	updated, err := s.store.UpdateIfStatus(ctx, mentorshipID, models.MentorshipStatusMentorAccepted, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: engagement is no longer awaiting confirmation", ErrInvalidTransition)
		}
		return nil, err
	}

	s.notify(ctx, m.MentorID, models.RoleMentor, notificationType, title, msg,
		map[string]string{"mentorship_id": fmt.Sprint(mentorshipID)})
	return updated, nil
}

// VerifyPayment reacts to the external payment-verified signal: splits the
// amount into the mentor escrow credit and the platform fee, then activates
// the engagement. Re-delivery of the same reference is a no-op success.
//
// The ledger credits commit before the state persist. If the persist then
// fails the operation surfaces ErrReconciliationRequired and must not be
// retried, since a retry would double-credit the escrow.
func (s *MentorshipService) VerifyPayment(
	ctx context.Context,
	mentorshipID int64,
	paymentReference string,
) (*models.Mentorship, error) {
	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if m.PaymentStatus != models.PaymentStatusPending {
		// Duplicate webhook; the first delivery already moved the money.
		return m, nil
	}
	if m.Status != models.MentorshipStatusPaymentPending {
		return nil, fmt.Errorf("%w: cannot verify payment while status is %s", ErrInvalidTransition, m.Status)
	}
	if m.StartDate == nil {
		return nil, fmt.Errorf("%w: engagement has no confirmed start date", ErrInvalidTransition)
	}

	mentorShare := m.Amount * (1 - s.platformRate)
	platformShare := m.Amount - mentorShare
	endDate := m.StartDate.AddDate(0, 0, engagementDays)

	if _, err := s.ledger.CreditMentorPending(ctx, m.MentorID, mentorShare, paymentReference,
		fmt.Sprintf("escrow credit for mentorship %d", mentorshipID)); err != nil {
		return nil, err
	}
	if _, err := s.ledger.CreditPlatformRevenue(ctx, platformShare, paymentReference,
		fmt.Sprintf("platform fee for mentorship %d", mentorshipID)); err != nil {
		return nil, err
	}

	status := models.MentorshipStatusActive
	paymentStatus := models.PaymentStatusVerified
	guard := models.PaymentStatusPending
	updated, err := s.store.UpdateIfStatus(ctx, mentorshipID, models.MentorshipStatusPaymentPending,
		repository.UpdateMentorshipFields{
			Status:             &status,
			EndDate:            &endDate,
			PaymentStatus:      &paymentStatus,
			PaymentID:          &paymentReference,
			MentorShare:        &mentorShare,
			PlatformShare:      &platformShare,
			GuardPaymentStatus: &guard,
		})
	if err != nil {
		s.logger.Error("payment verified but activation persist failed",
			zap.Int64("mentorship_id", mentorshipID),
			zap.String("payment_reference", paymentReference),
			zap.Float64("mentor_share", mentorShare),
			zap.Float64("platform_share", platformShare),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: mentorship %d, reference %s", ErrReconciliationRequired, mentorshipID, paymentReference)
	}

	meta := map[string]string{"mentorship_id": fmt.Sprint(mentorshipID), "payment_reference": paymentReference}
	s.notify(ctx, m.UserID, models.RoleUser, "payment_verified",
		"Payment verified", "Your payment was verified and the engagement is now active.", meta)
	s.notify(ctx, m.MentorID, models.RoleMentor, "payment_verified",
		"Engagement active", "Payment was verified; the mentorship engagement is now active.", meta)
	return updated, nil
}

// BookSession consumes one unit of the session quota and appends a booked
// session to the active engagement.
func (s *MentorshipService) BookSession(
	ctx context.Context,
	mentorshipID int64,
	userID int64,
	date time.Time,
	slot string,
) (*models.Mentorship, error) {
	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrForbidden
	}
	if m.Status != models.MentorshipStatusActive {
		return nil, fmt.Errorf("%w: cannot book a session while status is %s", ErrInvalidTransition, m.Status)
	}
	if m.UsedSessions >= m.TotalSessions {
		return nil, fmt.Errorf("%w: session quota exhausted", ErrInvalidTransition)
	}

	updated, err := s.store.AddSessionIfQuota(ctx, mentorshipID, utils.Day(date), slot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session quota exhausted", ErrInvalidTransition)
		}
		return nil, err
	}
	return updated, nil
}

// RescheduleSession flags a booked session for rescheduling. Allowed up to six
// hours before the session's slot start; exactly six hours still passes.
func (s *MentorshipService) RescheduleSession(
	ctx context.Context,
	mentorshipID int64,
	sessionID int64,
	actorID int64,
	role string,
) (*models.MentorshipSession, error) {
	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if !m.Participant(role, actorID) {
		return nil, ErrForbidden
	}
	if m.Status != models.MentorshipStatusActive {
		return nil, fmt.Errorf("%w: cannot reschedule while status is %s", ErrInvalidTransition, m.Status)
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
		}
		return nil, err
	}
	if session.MentorshipID != mentorshipID {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}
	if session.Status != models.SessionStatusBooked {
		return nil, fmt.Errorf("%w: session is %s", ErrInvalidTransition, session.Status)
	}

	start, err := utils.SlotStartTime(session.Date, session.Slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	if start.Sub(s.now()) < sessionRescheduleFloor {
		return nil, fmt.Errorf("%w: sessions can only be rescheduled at least 6 hours in advance", ErrInvalidTransition)
	}

	updated, err := s.store.UpdateSessionIfStatus(ctx, sessionID, models.SessionStatusBooked, models.SessionStatusRescheduleRequested)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session is no longer booked", ErrInvalidTransition)
		}
		return nil, err
	}
	return updated, nil
}

// CompleteMentorship records one party's completion confirmation. When both
// parties have confirmed the engagement completes, and if both feedbacks are
// already in, the mentor's escrow share is released.
func (s *MentorshipService) CompleteMentorship(
	ctx context.Context,
	mentorshipID int64,
	actorID int64,
	role string,
) (*models.Mentorship, error) {
	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if !m.Participant(role, actorID) {
		return nil, ErrForbidden
	}
	if m.Status != models.MentorshipStatusActive {
		return nil, fmt.Errorf("%w: cannot complete while status is %s", ErrInvalidTransition, m.Status)
	}

	confirmed := true
	var update repository.UpdateMentorshipFields
	userConfirmed := m.UserConfirmedCompletion
	mentorConfirmed := m.MentorConfirmedCompletion
	switch role {
	case models.RoleUser:
		update.UserConfirmedCompletion = &confirmed
		userConfirmed = true
	case models.RoleMentor:
		update.MentorConfirmedCompletion = &confirmed
		mentorConfirmed = true
	}

	completing := userConfirmed && mentorConfirmed
	if completing {
		status := models.MentorshipStatusCompleted
		update.Status = &status
	}

	updated, err := s.store.UpdateIfStatus(ctx, mentorshipID, models.MentorshipStatusActive, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: engagement is no longer active", ErrInvalidTransition)
		}
		return nil, err
	}

	if completing {
		updated, err = s.maybeReleaseFunds(ctx, updated)
		if err != nil {
			return nil, err
		}
		meta := map[string]string{"mentorship_id": fmt.Sprint(mentorshipID)}
		s.notify(ctx, updated.UserID, models.RoleUser, "mentorship_completed",
			"Mentorship completed", "Both parties confirmed completion of the engagement.", meta)
		s.notify(ctx, updated.MentorID, models.RoleMentor, "mentorship_completed",
			"Mentorship completed", "Both parties confirmed completion of the engagement.", meta)
	}
	return updated, nil
}

// SubmitFeedback stores one party's rating and comment. Feedback is accepted
// while the engagement is active or completed, never after cancellation, and
// runs the same fund-release check as completion.
func (s *MentorshipService) SubmitFeedback(
	ctx context.Context,
	mentorshipID int64,
	actorID int64,
	role string,
	rating int,
	comment string,
) (*models.Mentorship, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if !m.Participant(role, actorID) {
		return nil, ErrForbidden
	}
	if m.Status != models.MentorshipStatusActive && m.Status != models.MentorshipStatusCompleted {
		return nil, fmt.Errorf("%w: cannot submit feedback while status is %s", ErrInvalidTransition, m.Status)
	}

	var update repository.UpdateMentorshipFields
	switch role {
	case models.RoleUser:
		update.UserRating = &rating
		update.UserComment = &comment
	case models.RoleMentor:
		update.MentorRating = &rating
		update.MentorComment = &comment
	}

	updated, err := s.store.UpdateIfStatus(ctx, mentorshipID, m.Status, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: engagement status changed", ErrInvalidTransition)
		}
		return nil, err
	}

	return s.maybeReleaseFunds(ctx, updated)
}

// maybeReleaseFunds releases the mentor's escrow share once the engagement is
// completed, both feedbacks are present and the payment is still in verified
// state. The release commits before payment_status flips to paid; a persist
// failure after the release is the manual-reconciliation case.
func (s *MentorshipService) maybeReleaseFunds(
	ctx context.Context,
	m *models.Mentorship,
) (*models.Mentorship, error) {
	if m.Status != models.MentorshipStatusCompleted {
		return m, nil
	}
	if m.UserFeedback == nil || m.MentorFeedback == nil {
		return m, nil
	}
	if m.PaymentStatus != models.PaymentStatusVerified {
		return m, nil
	}

	reference := ""
	if m.PaymentID != nil {
		reference = *m.PaymentID
	}
	if _, err := s.ledger.ReleaseMentorPending(ctx, m.MentorID, m.MentorShare, reference,
		fmt.Sprintf("escrow release for mentorship %d", m.ID)); err != nil {
		return nil, err
	}

	paid := models.PaymentStatusPaid
	guard := models.PaymentStatusVerified
	updated, err := s.store.UpdateIfStatus(ctx, m.ID, models.MentorshipStatusCompleted,
		repository.UpdateMentorshipFields{
			PaymentStatus:      &paid,
			GuardPaymentStatus: &guard,
		})
	if err != nil {
		s.logger.Error("escrow released but paid-state persist failed",
			zap.Int64("mentorship_id", m.ID),
			zap.Float64("mentor_share", m.MentorShare),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: mentorship %d", ErrReconciliationRequired, m.ID)
	}
	return updated, nil
}

// CancelMentorship refunds the user with per-session proration and settles the
// escrow from the originally-credited shares, then cancels the engagement.
// Only the student may cancel, and only within seven days of the start date.
func (s *MentorshipService) CancelMentorship(
	ctx context.Context,
	mentorshipID int64,
	userID int64,
) (*models.Mentorship, error) {
	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrForbidden
	}
	if m.Status != models.MentorshipStatusActive {
		return nil, fmt.Errorf("%w: cannot cancel while status is %s", ErrInvalidTransition, m.Status)
	}
	if m.StartDate == nil {
		return nil, fmt.Errorf("%w: engagement has no start date", ErrInvalidTransition)
	}
	if utils.DaysBetween(*m.StartDate, s.now()) > cancellationWindowDays {
		return nil, fmt.Errorf("%w: cancellation window of %d days has passed", ErrInvalidTransition, cancellationWindowDays)
	}

	refund := m.Amount
	if m.UsedSessions > 0 {
		refund = m.Amount - float64(m.UsedSessions)*s.sessionFee
		if refund < 0 {
			refund = 0
		}
	}
	retained := m.Amount - refund
	retainedMentor := retained * (1 - s.platformRate)
	retainedPlatform := retained - retainedMentor

	// Deltas come from the shares credited at verification time, never from
	// current wallet balances.
	mentorDebit := m.MentorShare - retainedMentor
	platformDebit := m.PlatformShare - retainedPlatform

	reference := ""
	if m.PaymentID != nil {
		reference = *m.PaymentID
	}
	description := fmt.Sprintf("cancellation of mentorship %d", mentorshipID)

	if mentorDebit > 0 {
		if _, err := s.ledger.DebitMentorPending(ctx, m.MentorID, mentorDebit, reference, description); err != nil {
			return nil, err
		}
	}
	if retainedMentor > 0 {
		if _, err := s.ledger.ReleaseMentorPending(ctx, m.MentorID, retainedMentor, reference, description); err != nil {
			return nil, err
		}
	}
	if platformDebit > 0 {
		if _, err := s.ledger.DebitPlatformRevenue(ctx, platformDebit, reference, description); err != nil {
			return nil, err
		}
	}
	if refund > 0 {
		if _, err := s.ledger.CreditUserBalance(ctx, m.UserID, refund, reference, description); err != nil {
			return nil, err
		}
	}

	status := models.MentorshipStatusCancelled
	updated, err := s.store.UpdateIfStatus(ctx, mentorshipID, models.MentorshipStatusActive,
		repository.UpdateMentorshipFields{Status: &status})
	if err != nil {
		s.logger.Error("cancellation refund applied but cancel persist failed",
			zap.Int64("mentorship_id", mentorshipID),
			zap.Float64("refund", refund),
			zap.Float64("mentor_debit", mentorDebit),
			zap.Float64("platform_debit", platformDebit),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: mentorship %d", ErrReconciliationRequired, mentorshipID)
	}

	meta := map[string]string{"mentorship_id": fmt.Sprint(mentorshipID)}
	s.notify(ctx, m.UserID, models.RoleUser, "mentorship_cancelled",
		"Mentorship cancelled", fmt.Sprintf("The engagement was cancelled; %.2f was refunded to your wallet.", refund), meta)
	s.notify(ctx, m.MentorID, models.RoleMentor, "mentorship_cancelled",
		"Mentorship cancelled", "The student cancelled the engagement.", meta)
	return updated, nil
}

// GetMentorship returns the aggregate to one of its participants.
func (s *MentorshipService) GetMentorship(
	ctx context.Context,
	mentorshipID int64,
	actorID int64,
	role string,
) (*models.Mentorship, error) {
	m, err := s.load(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if !m.Participant(role, actorID) {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *MentorshipService) ListMentorships(
	ctx context.Context,
	actorID int64,
	role string,
) ([]models.Mentorship, error) {
	return s.store.ListByParticipant(ctx, role, actorID)
}
