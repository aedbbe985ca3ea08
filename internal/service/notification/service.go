package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tuaha311/aesthetics-clinic/internal/email"
	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/pkg/circuitbreaker"
	"github.com/tuaha311/aesthetics-clinic/pkg/messaging"
	"github.com/tuaha311/aesthetics-clinic/pkg/metrics"
)

const (
	EventContactCreated = "contact.created"

	channelEmail = "email"
	channelEvent = "event"

	statusSent    = "sent"
	statusFailed  = "failed"
	statusSkipped = "skipped"
)

// Service tells staff about new enquiries. Delivery problems are logged and never
// returned, so a stored contact is never lost because staff could not be reached.
type Service interface {
	ContactCreated(ctx context.Context, contact *model.Contact)
}

type Config struct {
	StaffRecipients []string
	EventChannel    string
}

// ContactEvent is the payload of the contact.created event.
type ContactEvent struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type service struct {
	emailSvc     email.Service
	publisher    messaging.Publisher
	cfg          Config
	mailBreaker  *circuitbreaker.CircuitBreaker
	eventBreaker *circuitbreaker.CircuitBreaker
	metrics      *metrics.Metrics
}

func NewService(emailSvc email.Service, publisher messaging.Publisher, cfg Config, m *metrics.Metrics) Service {
	return &service{
		emailSvc:     emailSvc,
		publisher:    publisher,
		cfg:          cfg,
		mailBreaker:  circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{Name: channelEmail, MaxFailures: 3, Timeout: time.Minute}),
		eventBreaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{Name: channelEvent, MaxFailures: 3, Timeout: time.Minute}),
		metrics:      m,
	}
}

func (s *service) ContactCreated(ctx context.Context, contact *model.Contact) {
	if len(s.cfg.StaffRecipients) > 0 {
		s.deliver(contact, s.mailBreaker, func() error {
			return s.emailSvc.SendCustom(ctx, s.cfg.StaffRecipients, contactSubject(contact), contactBody(contact))
		})
	}

	if s.cfg.EventChannel != "" {
		msg := messaging.NewMessage(EventContactCreated, ContactEvent{
			ID:        contact.ID,
			Name:      contact.Name,
			Email:     contact.Email,
			Phone:     contact.Phone,
			CreatedAt: contact.CreatedAt,
		})
		s.deliver(contact, s.eventBreaker, func() error {
			return s.publisher.Publish(ctx, s.cfg.EventChannel, msg)
		})
	}
}

func (s *service) deliver(contact *model.Contact, cb *circuitbreaker.CircuitBreaker, fn func() error) {
	err := cb.Execute(fn)
	switch {
	case err == nil:
		s.metrics.NotificationDeliveries.WithLabelValues(cb.Name(), statusSent).Inc()
	case errors.Is(err, circuitbreaker.ErrOpen), errors.Is(err, email.ErrNotConfigured):
		s.metrics.NotificationDeliveries.WithLabelValues(cb.Name(), statusSkipped).Inc()
	default:
		s.metrics.NotificationDeliveries.WithLabelValues(cb.Name(), statusFailed).Inc()
		log.Warn().
			Err(err).
			Str("channel", cb.Name()).
			Str("contact_id", contact.ID.String()).
			Msg("failed to notify staff of contact")
	}
}

func contactSubject(c *model.Contact) string {
	return "New enquiry from " + c.Name
}

func contactBody(c *model.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "Received: %s\n\n", c.CreatedAt.Format("2 Jan 2006 15:04"))
	b.WriteString(c.Message)
	b.WriteString("\n")
	return b.String()
}
