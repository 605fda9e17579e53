package notification

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/csytan/triplecrownforheart/internal/metrics"
	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	tmplWelcome      = "welcome"
	tmplDonation     = "donation"
	tmplRegistration = "registration"
)

type Mailer interface {
	Send(ctx context.Context, msg model.Message) error
}

type Alerter interface {
	Alert(ctx context.Context, text string) error
}

type service struct {
	mailer          Mailer
	alerter         Alerter
	donationPageURL string
	adminEmail      string
	tmpl            *template.Template
}

// NewNotificationService renders the embedded templates. alerter may be nil.
// Donor notifications without a donor address go to adminEmail.
func NewNotificationService(mailer Mailer, alerter Alerter, donationPageURL, adminEmail string) (*service, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("notification.service.New: %w", err)
	}

	return &service{
		mailer:          mailer,
		alerter:         alerter,
		donationPageURL: strings.TrimRight(donationPageURL, "#"),
		adminEmail:      adminEmail,
		tmpl:            tmpl,
	}, nil
}

func (s *service) DonationLink(riderID string) string {
	return s.donationPageURL + "#" + riderID
}

func (s *service) WelcomeRider(ctx context.Context, r model.Rider) error {
	const op = "notification.service.WelcomeRider"

	msg, err := s.render(tmplWelcome, r.Email, map[string]any{
		"Rider":        r,
		"DonationLink": s.DonationLink(r.ID),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.Notify(ctx, msg)
}

func (s *service) ThankDonor(ctx context.Context, d model.Donation, donorEmail string) error {
	const op = "notification.service.ThankDonor"

	to := donorEmail
	if to == "" {
		to = s.adminEmail
	}

	msg, err := s.render(tmplDonation, to, map[string]any{
		"Donation":     d,
		"DonationLink": s.DonationLink(d.RecipientID),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.Notify(ctx, msg)
}

func (s *service) RegistrationReceipt(ctx context.Context, p model.Payment, payerEmail string) error {
	const op = "notification.service.RegistrationReceipt"

	to := payerEmail
	if to == "" {
		to = s.adminEmail
	}

	msg, err := s.render(tmplRegistration, to, map[string]any{"Payment": p})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.Notify(ctx, msg)
}

// AlertOperator is best effort.
func (s *service) AlertOperator(ctx context.Context, text string) {
	if s.alerter == nil {
		return
	}
	if err := s.alerter.Alert(ctx, text); err != nil {
		logger.Warn(ctx, "operator alert failed", logger.ErrorF(err))
	}
}

func (s *service) render(name, to string, data any) (model.Message, error) {
	var subject, body bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&subject, name+".subject", data); err != nil {
		return model.Message{}, err
	}
	if err := s.tmpl.ExecuteTemplate(&body, name+".body", data); err != nil {
		return model.Message{}, err
	}
	return model.Message{To: to, Subject: strings.TrimSpace(subject.String()), Body: body.String(), Template: name}, nil
}

// Notify delivers one message. Failures are logged and counted; they never
// undo the ledger append that triggered them.
func (s *service) Notify(ctx context.Context, msg model.Message) error {
	const op = "notification.service.Notify"

	tmpl := msg.Template
	if tmpl == "" {
		tmpl = "raw"
	}
	log := logger.With(logger.String("template", tmpl))

	if msg.To == "" {
		metrics.Notifications.WithLabelValues(tmpl, metrics.ResultSkipped).Inc()
		log.Warn(ctx, "notification without recipient skipped")
		return nil
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.Notifications.WithLabelValues(tmpl, metrics.ResultFailed).Inc()
		log.Error(ctx, "notification failed", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.Notifications.WithLabelValues(tmpl, metrics.ResultOK).Inc()
	log.Info(ctx, "✉️ notification sent")
	return nil
}
