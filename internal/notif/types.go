package notif

import (
	"context"
	"strings"
	"time"

	"zentra/internal/common"
	"zentra/internal/dbmysql"
	"zentra/internal/push"
)

// UnknownSenderName is shown when the sender cannot be resolved.
const UnknownSenderName = "Someone"

type EventStore interface {
	Create(ctx context.Context, event *dbmysql.NotificationEvent) error
	ListByRecipient(ctx context.Context, recipientID string) ([]dbmysql.NotificationEvent, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, recipientID, id string) error
	DeleteAll(ctx context.Context, recipientID string) (int64, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
}

type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	AfterCommit(ctx context.Context, fn func())
}

type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*dbmysql.User, error)
}

type PostFinder interface {
	PostExistsByID(ctx context.Context, id string) (bool, error)
	PostsByIDs(ctx context.Context, ids []string) ([]dbmysql.Post, error)
}

type ConnLookup interface {
	Lookup(userID string) (push.Conn, bool)
}

// Mutation is a domain write that commits or rolls back with the event.
type Mutation func(ctx context.Context) error

type NotifyInput struct {
	Kind        common.EventKind
	SenderID    string
	RecipientID string
	SubjectID   string
}

func (in NotifyInput) Validate() error {
	if !in.Kind.IsValid() {
		return common.BadRequest("unknown notification kind: " + in.Kind.String())
	}
	if strings.TrimSpace(in.SenderID) == "" || strings.TrimSpace(in.RecipientID) == "" {
		return common.BadRequest("sender and recipient are required")
	}
	if in.Kind.RequiresSubject() && in.SubjectID == "" {
		return common.BadRequest(in.Kind.String() + " requires a subject post")
	}
	if !in.Kind.RequiresSubject() && in.SubjectID != "" {
		return common.BadRequest(in.Kind.String() + " takes no subject post")
	}
	return nil
}

// Sender is either resolved display data or the unknown-sender placeholder.
type Sender struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username,omitempty"`
	Avatar   *string `json:"avatar"`
	Known    bool    `json:"known"`
}

func UnknownSender(id string) Sender {
	return Sender{ID: id, Name: UnknownSenderName}
}

type Subject struct {
	ID      string `json:"id"`
	Content string `json:"content,omitempty"`
}

type EnrichedEvent struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipientId"`
	Kind        common.EventKind `json:"kind"`
	Sender      Sender           `json:"sender"`
	Subject     *Subject         `json:"subject,omitempty"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
}
