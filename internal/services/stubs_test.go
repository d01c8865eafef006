package services

import (
	"context"
	"fmt"
	"time"

	"github.com/arman-y/MentorHubBack/internal/models"
	"github.com/arman-y/MentorHubBack/internal/repository"
	"github.com/jackc/pgx/v5"
)

// stubMentorshipStore keeps aggregates in memory and mimics the repository's
// guarded-update semantics: a mismatched status guard surfaces pgx.ErrNoRows
// exactly like the SQL layer would.
type stubMentorshipStore struct {
	mentorships   map[int64]*models.Mentorship
	sessions      map[int64]*models.MentorshipSession
	nextID        int64
	nextSessionID int64

	updateErr error
	createErr error
}

func newStubMentorshipStore() *stubMentorshipStore {
	return &stubMentorshipStore{
		mentorships: map[int64]*models.Mentorship{},
		sessions:    map[int64]*models.MentorshipSession{},
	}
}

func (s *stubMentorshipStore) put(m *models.Mentorship) *models.Mentorship {
	if m.ID == 0 {
		s.nextID++
		m.ID = s.nextID
	} else if m.ID > s.nextID {
		s.nextID = m.ID
	}
	s.mentorships[m.ID] = m
	return m
}

func (s *stubMentorshipStore) Create(_ context.Context, input repository.CreateMentorshipInput) (*models.Mentorship, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	m := &models.Mentorship{
		UserID:            input.UserID,
		MentorID:          input.MentorID,
		Status:            models.MentorshipStatusPending,
		ProposedStartDate: input.ProposedStartDate,
		TotalSessions:     input.TotalSessions,
		Amount:            input.Amount,
		PaymentStatus:     models.PaymentStatusPending,
		Sessions:          []models.MentorshipSession{},
	}
	return s.put(m), nil
}

func (s *stubMentorshipStore) GetByID(_ context.Context, id int64) (*models.Mentorship, error) {
	m, ok := s.mentorships[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *m
	return &copied, nil
}

func (s *stubMentorshipStore) FindNonTerminalByUserAndMentor(_ context.Context, userID, mentorID int64) (*models.Mentorship, error) {
	for _, m := range s.mentorships {
		if m.UserID == userID && m.MentorID == mentorID &&
			m.Status != models.MentorshipStatusCompleted &&
			m.Status != models.MentorshipStatusCancelled &&
			m.Status != models.MentorshipStatusRejected {
			copied := *m
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubMentorshipStore) ListByParticipant(_ context.Context, role string, actorID int64) ([]models.Mentorship, error) {
	out := make([]models.Mentorship, 0)
	for _, m := range s.mentorships {
		if m.Participant(role, actorID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubMentorshipStore) UpdateIfStatus(
	_ context.Context,
	id int64,
	currentStatus string,
	update repository.UpdateMentorshipFields,
) (*models.Mentorship, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	m, ok := s.mentorships[id]
	if !ok || m.Status != currentStatus {
		return nil, pgx.ErrNoRows
	}
	if update.GuardPaymentStatus != nil && m.PaymentStatus != *update.GuardPaymentStatus {
		return nil, pgx.ErrNoRows
	}
	if update.Status != nil {
		m.Status = *update.Status
	}
	if update.MentorSuggestedStartDate != nil {
		m.MentorSuggestedStartDate = update.MentorSuggestedStartDate
	}
	if update.StartDate != nil {
		m.StartDate = update.StartDate
	}
	if update.EndDate != nil {
		m.EndDate = update.EndDate
	}
	if update.PaymentStatus != nil {
		m.PaymentStatus = *update.PaymentStatus
	}
	if update.PaymentID != nil {
		m.PaymentID = update.PaymentID
	}
	if update.MentorShare != nil {
		m.MentorShare = *update.MentorShare
	}
	if update.PlatformShare != nil {
		m.PlatformShare = *update.PlatformShare
	}
	if update.UserConfirmedCompletion != nil {
		m.UserConfirmedCompletion = *update.UserConfirmedCompletion
	}
	if update.MentorConfirmedCompletion != nil {
		m.MentorConfirmedCompletion = *update.MentorConfirmedCompletion
	}
	if update.UserRating != nil {
		m.UserFeedback = &models.Feedback{Rating: *update.UserRating}
		if update.UserComment != nil {
			m.UserFeedback.Comment = *update.UserComment
		}
	}
	if update.MentorRating != nil {
		m.MentorFeedback = &models.Feedback{Rating: *update.MentorRating}
		if update.MentorComment != nil {
			m.MentorFeedback.Comment = *update.MentorComment
		}
	}
	if update.RejectionReason != nil {
		m.RejectionReason = update.RejectionReason
	}
	copied := *m
	return &copied, nil
}

func (s *stubMentorshipStore) AddSessionIfQuota(
	_ context.Context,
	mentorshipID int64,
	date time.Time,
	slot string,
) (*models.Mentorship, error) {
	m, ok := s.mentorships[mentorshipID]
	if !ok || m.Status != models.MentorshipStatusActive || m.UsedSessions >= m.TotalSessions {
		return nil, pgx.ErrNoRows
	}
	m.UsedSessions++
	s.nextSessionID++
	session := models.MentorshipSession{
		ID:           s.nextSessionID,
		MentorshipID: mentorshipID,
		Date:         date,
		Slot:         slot,
		Status:       models.SessionStatusBooked,
	}
	m.Sessions = append(m.Sessions, session)
	s.sessions[session.ID] = &session
	copied := *m
	return &copied, nil
}

func (s *stubMentorshipStore) GetSession(_ context.Context, sessionID int64) (*models.MentorshipSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *session
	return &copied, nil
}

func (s *stubMentorshipStore) UpdateSessionIfStatus(
	_ context.Context,
	sessionID int64,
	currentStatus string,
	nextStatus string,
) (*models.MentorshipSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.Status != currentStatus {
		return nil, pgx.ErrNoRows
	}
	session.Status = nextStatus
	copied := *session
	return &copied, nil
}

type stubMentorReader struct {
	mentors map[int64]*models.Mentor
}

func (s *stubMentorReader) GetByID(_ context.Context, mentorID int64) (*models.Mentor, error) {
	mentor, ok := s.mentors[mentorID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return mentor, nil
}

type ledgerCall struct {
	op      string
	ownerID int64
	amount  float64
	ref     string
}

// stubLedger records escrow calls and tracks running balances so tests can
// assert conservation properties.
type stubLedger struct {
	calls           []ledgerCall
	mentorPending   map[int64]float64
	mentorBalance   map[int64]float64
	userBalance     map[int64]float64
	platformBalance float64

	failOp string
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		mentorPending: map[int64]float64{},
		mentorBalance: map[int64]float64{},
		userBalance:   map[int64]float64{},
	}
}

func (s *stubLedger) record(op string, ownerID int64, amount float64, ref string) error {
	if s.failOp == op {
		return fmt.Errorf("ledger %s failed", op)
	}
	s.calls = append(s.calls, ledgerCall{op: op, ownerID: ownerID, amount: amount, ref: ref})
	return nil
}

func (s *stubLedger) callsFor(op string) []ledgerCall {
	out := make([]ledgerCall, 0)
	for _, c := range s.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (s *stubLedger) CreditMentorPending(_ context.Context, mentorID int64, amount float64, ref, _ string) (*models.Wallet, error) {
	if err := s.record("credit_mentor_pending", mentorID, amount, ref); err != nil {
		return nil, err
	}
	s.mentorPending[mentorID] += amount
	return &models.Wallet{OwnerType: models.WalletOwnerMentor, OwnerID: mentorID, PendingBalance: s.mentorPending[mentorID]}, nil
}

func (s *stubLedger) ReleaseMentorPending(_ context.Context, mentorID int64, amount float64, ref, _ string) (*models.Wallet, error) {
	if err := s.record("release_mentor_pending", mentorID, amount, ref); err != nil {
		return nil, err
	}
	if amount > s.mentorPending[mentorID] {
		return nil, ErrLedgerViolation
	}
	s.mentorPending[mentorID] -= amount
	s.mentorBalance[mentorID] += amount
	return &models.Wallet{OwnerType: models.WalletOwnerMentor, OwnerID: mentorID, PendingBalance: s.mentorPending[mentorID], Balance: s.mentorBalance[mentorID]}, nil
}

func (s *stubLedger) DebitMentorPending(_ context.Context, mentorID int64, amount float64, ref, _ string) (*models.Wallet, error) {
	if err := s.record("debit_mentor_pending", mentorID, amount, ref); err != nil {
		return nil, err
	}
	if amount > s.mentorPending[mentorID] {
		return nil, ErrLedgerViolation
	}
	s.mentorPending[mentorID] -= amount
	return &models.Wallet{OwnerType: models.WalletOwnerMentor, OwnerID: mentorID, PendingBalance: s.mentorPending[mentorID]}, nil
}

func (s *stubLedger) CreditUserBalance(_ context.Context, userID int64, amount float64, ref, _ string) (*models.Wallet, error) {
	if err := s.record("credit_user_balance", userID, amount, ref); err != nil {
		return nil, err
	}
	s.userBalance[userID] += amount
	return &models.Wallet{OwnerType: models.WalletOwnerUser, OwnerID: userID, Balance: s.userBalance[userID]}, nil
}

func (s *stubLedger) CreditPlatformRevenue(_ context.Context, amount float64, ref, _ string) (*models.Wallet, error) {
	if err := s.record("credit_platform", 0, amount, ref); err != nil {
		return nil, err
	}
	s.platformBalance += amount
	return &models.Wallet{OwnerType: models.WalletOwnerPlatform, Balance: s.platformBalance}, nil
}

func (s *stubLedger) DebitPlatformRevenue(_ context.Context, amount float64, ref, _ string) (*models.Wallet, error) {
	if err := s.record("debit_platform", 0, amount, ref); err != nil {
		return nil, err
	}
	if amount > s.platformBalance {
		return nil, ErrLedgerViolation
	}
	s.platformBalance -= amount
	return &models.Wallet{OwnerType: models.WalletOwnerPlatform, Balance: s.platformBalance}, nil
}

type notifyCall struct {
	recipientID int64
	role        string
	ntype       string
	title       string
	message     string
}

type stubNotifier struct {
	calls []notifyCall
	err   error
}

func (s *stubNotifier) Notify(_ context.Context, recipientID int64, role, ntype, title, message string, _ map[string]string) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, notifyCall{recipientID: recipientID, role: role, ntype: ntype, title: title, message: message})
	return nil
}

func (s *stubNotifier) callsOf(ntype string) []notifyCall {
	out := make([]notifyCall, 0)
	for _, c := range s.calls {
		if c.ntype == ntype {
			out = append(out, c)
		}
	}
	return out
}

// stubBookingStore mirrors the booking repository's commit-time re-checks:
// CreateIfAvailable and ApplyRescheduleIfSlotFree fail with the repository
// sentinels when a conflicting booking exists.
type stubBookingStore struct {
	bookings map[int64]*models.Booking
	nextID   int64

	createErr error
	updateErr error
}

func newStubBookingStore() *stubBookingStore {
	return &stubBookingStore{bookings: map[int64]*models.Booking{}}
}

func (s *stubBookingStore) put(b *models.Booking) *models.Booking {
	if b.ID == 0 {
		s.nextID++
		b.ID = s.nextID
	} else if b.ID > s.nextID {
		s.nextID = b.ID
	}
	s.bookings[b.ID] = b
	return b
}

func (s *stubBookingStore) userDayTaken(userID int64, date time.Time) bool {
	for _, b := range s.bookings {
		if b.UserID == userID && b.BookingDate.Equal(date) && !b.Terminal() {
			return true
		}
	}
	return false
}

func (s *stubBookingStore) slotTaken(mentorID int64, date time.Time, slot string, excludedID int64) bool {
	for _, b := range s.bookings {
		if b.MentorID == mentorID && b.BookingDate.Equal(date) && b.Slot == slot &&
			b.ID != excludedID && !b.Terminal() {
			return true
		}
	}
	return false
}

func (s *stubBookingStore) CreateIfAvailable(_ context.Context, input repository.CreateBookingInput) (*models.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.userDayTaken(input.UserID, input.BookingDate) {
		return nil, repository.ErrUserDayTaken
	}
	if s.slotTaken(input.MentorID, input.BookingDate, input.Slot, 0) {
		return nil, repository.ErrSlotTaken
	}
	b := &models.Booking{
		UserID:          input.UserID,
		MentorID:        input.MentorID,
		BookingDate:     input.BookingDate,
		Slot:            input.Slot,
		DurationMinutes: input.DurationMinutes,
		Topic:           input.Topic,
		RoomID:          input.RoomID,
		Status:          models.BookingStatusPending,
	}
	return s.put(b), nil
}

func (s *stubBookingStore) GetByID(_ context.Context, bookingID int64) (*models.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *b
	return &copied, nil
}

func (s *stubBookingStore) HasUserBookingOnDate(_ context.Context, userID int64, date time.Time) (bool, error) {
	return s.userDayTaken(userID, date), nil
}

func (s *stubBookingStore) IsSlotTaken(_ context.Context, mentorID int64, date time.Time, slot string) (bool, error) {
	return s.slotTaken(mentorID, date, slot, 0), nil
}

func (s *stubBookingStore) CountByUserInDateRange(_ context.Context, userID int64, from, to time.Time) (int, error) {
	count := 0
	for _, b := range s.bookings {
		if b.UserID == userID && !b.BookingDate.Before(from) && !b.BookingDate.After(to) {
			count++
		}
	}
	return count, nil
}

func (s *stubBookingStore) ListByParticipant(_ context.Context, role string, actorID int64, status string) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if b.Participant(role, actorID) && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *stubBookingStore) UpdateStatus(_ context.Context, bookingID int64, status string) (*models.Booking, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	b.Status = status
	copied := *b
	return &copied, nil
}

func (s *stubBookingStore) SetRescheduleIfStatus(
	_ context.Context,
	bookingID int64,
	currentStatus string,
	by string,
	proposedDate time.Time,
	proposedSlot string,
) (*models.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok || b.Status != currentStatus {
		return nil, pgx.ErrNoRows
	}
	b.Status = models.BookingStatusRescheduled
	b.RescheduleBy = &by
	b.ProposedDate = &proposedDate
	b.ProposedSlot = &proposedSlot
	copied := *b
	return &copied, nil
}

func (s *stubBookingStore) ApplyRescheduleIfSlotFree(_ context.Context, bookingID int64) (*models.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok || b.Status != models.BookingStatusRescheduled || b.ProposedDate == nil || b.ProposedSlot == nil {
		return nil, pgx.ErrNoRows
	}
	if s.slotTaken(b.MentorID, *b.ProposedDate, *b.ProposedSlot, b.ID) {
		b.Status = models.BookingStatusCancelled
		b.RescheduleBy = nil
		b.ProposedDate = nil
		b.ProposedSlot = nil
		return nil, repository.ErrSlotTaken
	}
	b.BookingDate = *b.ProposedDate
	b.Slot = *b.ProposedSlot
	b.Status = models.BookingStatusConfirmed
	b.RescheduleBy = nil
	b.ProposedDate = nil
	b.ProposedSlot = nil
	copied := *b
	return &copied, nil
}

func (s *stubBookingStore) RejectReschedule(_ context.Context, bookingID int64) (*models.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok || b.Status != models.BookingStatusRescheduled {
		return nil, pgx.ErrNoRows
	}
	b.Status = models.BookingStatusCancelled
	b.RescheduleBy = nil
	b.ProposedDate = nil
	b.ProposedSlot = nil
	copied := *b
	return &copied, nil
}

type stubMentorStore struct {
	stubMentorReader
	completedBumps map[int64]int
	incrementErr   error
}

func (s *stubMentorStore) IncrementSessionsCompleted(_ context.Context, mentorID int64) error {
	if s.incrementErr != nil {
		return s.incrementErr
	}
	if s.completedBumps == nil {
		s.completedBumps = map[int64]int{}
	}
	s.completedBumps[mentorID]++
	return nil
}

type stubUserReader struct {
	users map[int64]*models.User
}

func (s *stubUserReader) GetByID(_ context.Context, userID int64) (*models.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}
