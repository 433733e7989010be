package notif

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"zentra/internal/common"
	"zentra/internal/dbmysql"
)

const excerptRunes = 140

// Enricher attaches sender display data and post excerpts to stored events.
// Resolved senders are cached for the configured TTL.
type Enricher struct {
	users  UserFinder
	posts  PostFinder
	cache  *cache.Cache
	logger *zap.Logger
}

func NewEnricher(users UserFinder, posts PostFinder, ttl time.Duration, logger *zap.Logger) *Enricher {
	return &Enricher{
		users:  users,
		posts:  posts,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Sender never fails; lookup errors yield the placeholder.
func (e *Enricher) Sender(ctx context.Context, id string) Sender {
	if cached, ok := e.cache.Get(id); ok {
		return cached.(Sender)
	}

	user, err := e.users.FindUserByID(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			e.logger.Warn("sender lookup failed", zap.String("sender_id", id), zap.Error(err))
		}
		return UnknownSender(id)
	}

	sender := Sender{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Avatar:   user.Avatar,
		Known:    true,
	}
	e.cache.SetDefault(id, sender)
	return sender
}

func (e *Enricher) Enrich(ctx context.Context, ev dbmysql.NotificationEvent) *EnrichedEvent {
	out := toEnriched(ev, e.Sender(ctx, ev.SenderID))
	return &out
}

// EnrichAll also resolves post excerpts. Missing posts leave the excerpt empty.
func (e *Enricher) EnrichAll(ctx context.Context, events []dbmysql.NotificationEvent) []EnrichedEvent {
	excerpts := e.excerpts(ctx, events)
	return slice.Map(events, func(_ int, ev dbmysql.NotificationEvent) EnrichedEvent {
		out := toEnriched(ev, e.Sender(ctx, ev.SenderID))
		if out.Subject != nil {
			out.Subject.Content = excerpts[out.Subject.ID]
		}
		return out
	})
}

func (e *Enricher) excerpts(ctx context.Context, events []dbmysql.NotificationEvent) map[string]string {
	seen := make(map[string]struct{})
	var ids []string
	for _, ev := range events {
		if ev.SubjectID == nil {
			continue
		}
		if _, ok := seen[*ev.SubjectID]; !ok {
			seen[*ev.SubjectID] = struct{}{}
			ids = append(ids, *ev.SubjectID)
		}
	}

	result := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return result
	}
	posts, err := e.posts.PostsByIDs(ctx, ids)
	if err != nil {
		e.logger.Warn("post excerpt lookup failed", zap.Error(err))
		return result
	}
	for _, p := range posts {
		result[p.ID] = excerpt(p.Content)
	}
	return result
}

func toEnriched(ev dbmysql.NotificationEvent, sender Sender) EnrichedEvent {
	out := EnrichedEvent{
		ID:          ev.ID,
		RecipientID: ev.RecipientID,
		Kind:        common.EventKind(ev.Kind),
		Sender:      sender,
		Read:        ev.Read,
		CreatedAt:   ev.CreatedAt,
	}
	if ev.SubjectID != nil {
		out.Subject = &Subject{ID: *ev.SubjectID}
	}
	return out
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptRunes {
		return content
	}
	return string(runes[:excerptRunes]) + "…"
}
