package repository

import (
	"context"

	"github.com/arman-y/MentorHubBack/internal/models"
)

type CreateNotificationInput struct {
	RecipientID   int64
	RecipientRole string
	Type          string
	Title         string
	Message       string
	Metadata      map[string]string
}

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(
	ctx context.Context,
	input CreateNotificationInput,
) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (recipient_id, recipient_role, type, title, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, recipient_id, recipient_role, type, title, message, metadata, created_at
	`
	var notification models.Notification
	err := r.db.QueryRow(
		ctx,
		query,
		input.RecipientID,
		input.RecipientRole,
		input.Type,
		input.Title,
		input.Message,
		input.Metadata,
	).Scan(
		&notification.ID,
		&notification.RecipientID,
		&notification.RecipientRole,
		&notification.Type,
		&notification.Title,
		&notification.Message,
		&notification.Metadata,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) ListByRecipient(
	ctx context.Context,
	recipientID int64,
	recipientRole string,
	limit int,
	offset int,
) ([]models.Notification, error) {
	query := `
		SELECT id, recipient_id, recipient_role, type, title, message, metadata, created_at
		FROM notifications
		WHERE recipient_id = $1 AND recipient_role = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, recipientID, recipientRole, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.RecipientRole,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.Metadata,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}
