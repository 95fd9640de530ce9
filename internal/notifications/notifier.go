package notifications

//go:generate go run go.uber.org/mock/mockgen@latest -source=notifier.go -destination=mocks_test.go -package=notifications

import (
	"affiliate-ledger/internal/email"
	"affiliate-ledger/internal/events"
	"affiliate-ledger/internal/metrics"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/store"
	"context"
	"strings"

	"github.com/google/uuid"
)

// Notification kinds
const (
	KindReferralStatusChanged = events.TypeReferralStatusChanged
	KindWithdrawStatusChanged = events.TypeWithdrawStatusChanged
)

// Detail keys carried on status change events
const (
	DetailID        = "id"
	DetailOldStatus = "old_status"
	DetailNewStatus = "new_status"
	DetailAmount    = "amount"
	DetailNotes     = "notes"
)

// Event is one partner-facing ledger change
type Event struct {
	Kind      string
	PartnerID uuid.UUID
	Details   map[string]string
}

// Delivery reports whether any channel accepted the event
type Delivery struct {
	Delivered bool
}

// ProfileStore looks up where to reach a partner
type ProfileStore interface {
	GetPartnerProfile(ctx context.Context, partnerID uuid.UUID) (store.PartnerProfile, error)
}

// Mailer sends status change emails
type Mailer interface {
	SendStatusChange(ctx context.Context, to string, change email.StatusChange) error
}

// Publisher announces status changes on the event bus
type Publisher interface {
	PublishStatusChanged(ctx context.Context, kind string, partnerID uuid.UUID, details map[string]string) error
}

// Notifier fans a ledger event out to email and the event bus. It never
// returns an error; failures are logged and reflected in Delivery.
type Notifier struct {
	profiles     ProfileStore
	mailer       Mailer
	publisher    Publisher
	dashboardURL string
	logger       *observability.Logger
}

func New(profiles ProfileStore, mailer Mailer, publisher Publisher, dashboardURL string, logger *observability.Logger) *Notifier {
	return &Notifier{
		profiles:     profiles,
		mailer:       mailer,
		publisher:    publisher,
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
		logger:       logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, event Event) Delivery {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "notification_kind", Value: event.Kind},
		observability.Field{Key: "partner_id", Value: event.PartnerID.String()},
	)

	published := n.publish(ctx, event)
	mailed := n.mail(ctx, event)

	delivered := published || mailed
	metrics.RecordNotification(event.Kind, delivered)
	if !delivered {
		n.logger.Warn(ctx, "notification not delivered on any channel")
	}
	return Delivery{Delivered: delivered}
}

func (n *Notifier) publish(ctx context.Context, event Event) bool {
	if n.publisher == nil {
		return false
	}
	if err := n.publisher.PublishStatusChanged(ctx, event.Kind, event.PartnerID, event.Details); err != nil {
		n.logger.WarnWithError(ctx, "failed to publish status change event", err)
		return false
	}
	return true
}

func (n *Notifier) mail(ctx context.Context, event Event) bool {
	if n.mailer == nil || n.profiles == nil {
		return false
	}

	template, ok := templateFor(event.Kind)
	if !ok {
		return false
	}

	profile, err := n.profiles.GetPartnerProfile(ctx, event.PartnerID)
	if err != nil {
		n.logger.WarnWithError(ctx, "failed to load partner profile for notification", err)
		return false
	}
	if profile.Email == "" {
		return false
	}

	change := email.StatusChange{
		Template:     template,
		PartnerName:  profile.DisplayName,
		EntityID:     event.Details[DetailID],
		OldStatus:    event.Details[DetailOldStatus],
		NewStatus:    event.Details[DetailNewStatus],
		Amount:       event.Details[DetailAmount],
		Notes:        event.Details[DetailNotes],
		DashboardURL: n.dashboardURL,
	}
	if err := n.mailer.SendStatusChange(ctx, profile.Email, change); err != nil {
		n.logger.WarnWithError(ctx, "failed to send status change email", err)
		return false
	}
	return true
}

func templateFor(kind string) (string, bool) {
	switch kind {
	case KindReferralStatusChanged:
		return email.TemplateReferralStatus, true
	case KindWithdrawStatusChanged:
		return email.TemplateWithdrawStatus, true
	default:
		return "", false
	}
}
