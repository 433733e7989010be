package dbmysql

import "time"

// NotificationEvent is one durable interaction event. Listing goes through
// the (recipient_id, created_at) index.
type NotificationEvent struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	RecipientID string    `gorm:"column:recipient_id;not null;size:36;index:idx_recipient_created,priority:1" json:"recipient_id"`
	SenderID    string    `gorm:"column:sender_id;not null;size:36" json:"sender_id"`
	Kind        string    `gorm:"column:kind;not null;size:16" json:"kind"`
	SubjectID   *string   `gorm:"column:subject_id;size:36" json:"subject_id,omitempty"`
	Read        bool      `gorm:"column:is_read;not null;default:false" json:"read"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index:idx_recipient_created,priority:2,sort:desc" json:"created_at"`
}
