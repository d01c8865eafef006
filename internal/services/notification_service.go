package services

import (
	"context"

	"github.com/arman-y/MentorHubBack/internal/models"
	"github.com/arman-y/MentorHubBack/internal/repository"
)

type notificationStore interface {
	Create(ctx context.Context, input repository.CreateNotificationInput) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID int64, recipientRole string, limit, offset int) ([]models.Notification, error)
}

// NotificationService persists outbound notifications. Delivery is someone
// else's problem; the state machines treat Notify failures as non-fatal.
type NotificationService struct {
	store notificationStore
}

func NewNotificationService(store notificationStore) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) Notify(
	ctx context.Context,
	recipientID int64,
	recipientRole string,
	notificationType string,
	title string,
	message string,
	metadata map[string]string,
) error {
	_, err := s.store.Create(ctx, repository.CreateNotificationInput{
		RecipientID:   recipientID,
		RecipientRole: recipientRole,
		Type:          notificationType,
		Title:         title,
		Message:       message,
		Metadata:      metadata,
	})
	return err
}

func (s *NotificationService) ListByRecipient(
	ctx context.Context,
	recipientID int64,
	recipientRole string,
	limit int,
	offset int,
) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListByRecipient(ctx, recipientID, recipientRole, limit, offset)
}
