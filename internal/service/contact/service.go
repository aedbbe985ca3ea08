package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/tuaha311/aesthetics-clinic/internal/forms"
	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	"github.com/tuaha311/aesthetics-clinic/internal/service/notification"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
	"github.com/tuaha311/aesthetics-clinic/pkg/metrics"
	pkgvalidator "github.com/tuaha311/aesthetics-clinic/pkg/validator"
)

const (
	MessageSent      = "Your message has been sent successfully! We'll be in touch soon."
	MessageInvalid   = "There was an error with your submission. Please check the form and try again."
	MessageSubscribe = "Thank you for subscribing to our newsletter!"
)

// Subscriber receives newsletter signups.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) error
}

// LogSubscriber acknowledges signups by logging them.
type LogSubscriber struct{}

func (LogSubscriber) Subscribe(_ context.Context, email string) error {
	log.Info().Str("email", email).Msg("newsletter signup")
	return nil
}

type Service struct {
	contacts   repository.ContactRepository
	notifier   notification.Service
	subscriber Subscriber
	validate   *validator.Validate
	metrics    *metrics.Metrics
}

func NewService(contacts repository.ContactRepository, notifier notification.Service, subscriber Subscriber, m *metrics.Metrics) *Service {
	if subscriber == nil {
		subscriber = LogSubscriber{}
	}
	validate := pkgvalidator.New()
	forms.RegisterContactRules(validate)
	return &Service{
		contacts:   contacts,
		notifier:   notifier,
		subscriber: subscriber,
		validate:   validate,
		metrics:    m,
	}
}

// Submit validates the form and stores it as a Contact. An invalid form fails with a
// validation error and leaves the per-field messages on form.Errors.
func (s *Service) Submit(ctx context.Context, form *forms.ContactForm) (*model.Contact, error) {
	form.Normalize()
	form.Errors = nil

	if err := s.validate.StructCtx(ctx, form); err != nil {
		form.Errors = pkgvalidator.Translate(err)
		s.metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewValidation(MessageInvalid, form.Errors)
	}

	contact := form.Contact()
	if err := s.contacts.Create(ctx, contact); err != nil {
		s.metrics.ContactSubmissions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}
	s.metrics.ContactSubmissions.WithLabelValues("stored").Inc()

	s.notifier.ContactCreated(ctx, contact)
	return contact, nil
}

// Subscribe hands a newsletter signup to the subscriber. Blank addresses are ignored.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if err := s.subscriber.Subscribe(ctx, email); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	s.metrics.NewsletterSignups.Inc()
	return nil
}
