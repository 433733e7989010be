package notif

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"zentra/internal/common"
	"zentra/internal/config"
	"zentra/internal/dbmysql"
	"zentra/internal/push"
)

// NotificationService records interaction events and pushes them to live
// recipients. The durable write decides the outcome; pushes are best effort
// and happen strictly after commit.
type NotificationService struct {
	store       EventStore
	tx          Transactor
	users       UserFinder
	posts       PostFinder
	conns       ConnLookup
	enricher    *Enricher
	metrics     *Metrics
	locks       *keyedMutex
	sendTimeout time.Duration
	tracer      trace.Tracer
	logger      *zap.Logger
	now         func() time.Time
}

func NewNotificationService(
	store EventStore,
	tx Transactor,
	users UserFinder,
	posts PostFinder,
	conns ConnLookup,
	enricher *Enricher,
	metrics *Metrics,
	cfg config.NotificationConfig,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		store:       store,
		tx:          tx,
		users:       users,
		posts:       posts,
		conns:       conns,
		enricher:    enricher,
		metrics:     metrics,
		locks:       newKeyedMutex(),
		sendTimeout: cfg.SendTimeout,
		tracer:      otel.Tracer("zentra/notif"),
		logger:      logger,
		now:         time.Now,
	}
}

// Notify runs mutations and stores one event in a single transaction, then
// delivers the enriched event if the recipient is online.
//
// A self-notification still commits the mutations but records nothing and
// returns (nil, nil). Only validation, lookup and persistence errors are
// returned; delivery failures are logged.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput, mutations ...Mutation) (*EnrichedEvent, error) {
	ctx, span := s.tracer.Start(ctx, "notif.Notify", trace.WithAttributes(
		attribute.String("kind", in.Kind.String()),
		attribute.String("recipient_id", in.RecipientID),
	))
	defer span.End()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if in.SenderID == in.RecipientID {
		if len(mutations) > 0 {
			if err := s.tx.Transaction(ctx, applyAll(mutations)); err != nil {
				return nil, s.fail(span, in, err)
			}
		}
		s.logger.Debug("self notification skipped", zap.String("sender_id", in.SenderID), zap.String("kind", in.Kind.String()))
		return nil, nil
	}

	// Held from commit through delivery so pushes leave in commit order.
	unlock := s.locks.Lock(in.RecipientID)
	defer unlock()

	event := &dbmysql.NotificationEvent{
		ID:          uuid.NewString(),
		RecipientID: in.RecipientID,
		SenderID:    in.SenderID,
		Kind:        in.Kind.String(),
		CreatedAt:   s.now().UTC(),
	}
	if in.SubjectID != "" {
		subject := in.SubjectID
		event.SubjectID = &subject
	}

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := applyAll(mutations)(ctx); err != nil {
			return err
		}
		if err := s.checkTargets(ctx, in); err != nil {
			return err
		}
		return s.store.Create(ctx, event)
	})
	if err != nil {
		return nil, s.fail(span, in, err)
	}
	span.SetAttributes(attribute.String("event_id", event.ID))

	enriched := s.enricher.Enrich(ctx, *event)
	// Inside a caller's transaction the push waits for its commit and is
	// dropped on rollback.
	s.tx.AfterCommit(ctx, func() {
		s.metrics.Persisted.WithLabelValues(event.Kind).Inc()
		s.deliver(ctx, enriched)
	})
	return enriched, nil
}

func (s *NotificationService) checkTargets(ctx context.Context, in NotifyInput) error {
	if _, err := s.users.FindUserByID(ctx, in.RecipientID); err != nil {
		return err
	}
	if !in.Kind.RequiresSubject() {
		return nil
	}
	exists, err := s.posts.PostExistsByID(ctx, in.SubjectID)
	if err != nil {
		return err
	}
	if !exists {
		return common.NotFound(common.CodePostNotFound, "Post not found")
	}
	return nil
}

func (s *NotificationService) deliver(ctx context.Context, event *EnrichedEvent) {
	log := s.logger.With(
		zap.String("recipient_id", event.RecipientID),
		zap.String("event_id", event.ID),
		zap.String("kind", event.Kind.String()),
	)

	conn, ok := s.conns.Lookup(event.RecipientID)
	if !ok {
		s.metrics.Offline.Inc()
		log.Debug("recipient offline, event kept for polling")
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sendTimeout)
	defer cancel()

	if err := conn.Send(sendCtx, push.NotifyMessage(event)); err != nil {
		s.metrics.Failed.Inc()
		log.Warn("push delivery failed", zap.String("conn_id", conn.ID()), zap.Error(err))
		return
	}
	s.metrics.Delivered.Inc()
}

func (s *NotificationService) fail(span trace.Span, in NotifyInput, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	if errors.Is(err, common.ErrPersistence) {
		s.logger.Error("notification not persisted",
			zap.String("recipient_id", in.RecipientID),
			zap.String("kind", in.Kind.String()),
			zap.Error(err))
	}
	return err
}

func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID string) ([]EnrichedEvent, error) {
	events, err := s.store.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return s.enricher.EnrichAll(ctx, events), nil
}

// MarkRead marks one event, or every unread event when selector is "all".
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, selector string) error {
	if selector == "" {
		return common.BadRequest("notification id is required")
	}
	if selector == common.AllSelector {
		_, err := s.store.MarkAllRead(ctx, recipientID)
		return err
	}
	return s.store.MarkRead(ctx, recipientID, selector)
}

// Delete removes one event, or all of the recipient's events when selector is "all".
func (s *NotificationService) Delete(ctx context.Context, recipientID, selector string) error {
	if selector == "" {
		return common.BadRequest("notification id is required")
	}
	if selector == common.AllSelector {
		_, err := s.store.DeleteAll(ctx, recipientID)
		return err
	}
	return s.store.Delete(ctx, recipientID, selector)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.store.UnreadCount(ctx, recipientID)
}

func applyAll(mutations []Mutation) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		for _, m := range mutations {
			if err := m(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
