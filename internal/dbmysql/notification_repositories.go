package dbmysql

import (
	"context"

	"gorm.io/gorm"

	"zentra/internal/common"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, event *NotificationEvent) error {
	if err := conn(ctx, r.db).Create(event).Error; err != nil {
		return common.Persistence("create notification", err)
	}
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]NotificationEvent, error) {
	var events []NotificationEvent

	err := conn(ctx, r.db).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&events).Error
	if err != nil {
		return nil, common.Persistence("list notifications", err)
	}
	return events, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, recipientID, id string) error {
	result := conn(ctx, r.db).
		Model(&NotificationEvent{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return common.Persistence("mark notification read", result.Error)
	}

	// MySQL reports changed rows only, so an already read event needs a lookup.
	if result.RowsAffected == 0 {
		exists, err := r.owned(ctx, recipientID, id)
		if err != nil {
			return err
		}
		if !exists {
			return common.NotFound(common.CodeNotificationNotFound, "Notification not found")
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result := conn(ctx, r.db).
		Model(&NotificationEvent{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, common.Persistence("mark all notifications read", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, recipientID, id string) error {
	result := conn(ctx, r.db).Delete(&NotificationEvent{}, "id = ? AND recipient_id = ?", id, recipientID)
	if result.Error != nil {
		return common.Persistence("delete notification", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NotFound(common.CodeNotificationNotFound, "Notification not found")
	}
	return nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, recipientID string) (int64, error) {
	result := conn(ctx, r.db).Delete(&NotificationEvent{}, "recipient_id = ?", recipientID)
	if result.Error != nil {
		return 0, common.Persistence("delete all notifications", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	var count int64

	err := conn(ctx, r.db).
		Model(&NotificationEvent{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, common.Persistence("count unread notifications", err)
	}
	return count, nil
}

func (r *NotificationRepository) owned(ctx context.Context, recipientID, id string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&NotificationEvent{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Count(&count).Error
	if err != nil {
		return false, common.Persistence("find notification", err)
	}
	return count > 0, nil
}
