package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/meterline/storefront-backend/internal/contact"
	"github.com/meterline/storefront-backend/internal/orders"
	"github.com/meterline/storefront-backend/pkg/config"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
)

// Mailer sends transactional notifications over SMTP. It implements the
// notifier interfaces of the orders and contact services.
type Mailer struct {
	client *mail.Client
	cfg    config.SMTPConfig
	logg   *logger.Logger
}

// New builds an SMTP mailer, or returns nil when SMTP is not configured
// so callers can wire the services without a notifier.
func New(cfg config.SMTPConfig, logg *logger.Logger) (*Mailer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.SendTimeout),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build smtp client")
	}

	return &Mailer{client: client, cfg: cfg, logg: logg}, nil
}

// OrderPlaced mails the order confirmation to staff and, when enabled,
// to the customer.
func (m *Mailer) OrderPlaced(ctx context.Context, msg orders.Confirmation) error {
	body, err := renderOrderConfirmation(msg)
	if err != nil {
		return fmt.Errorf("render order confirmation: %w", err)
	}

	recipients := m.cfg.StaffRecipients
	if m.cfg.CopyCustomer && msg.CustomerEmail != "" {
		recipients = append(append([]string{}, recipients...), msg.CustomerEmail)
	}

	subject := fmt.Sprintf("Order %s received", msg.OrderNumber)
	return m.send(ctx, recipients, subject, body)
}

// ContactReceived forwards a contact-form submission to the staff inbox.
func (m *Mailer) ContactReceived(ctx context.Context, msg contact.Message) error {
	body, err := renderContactNotification(msg)
	if err != nil {
		return fmt.Errorf("render contact notification: %w", err)
	}
	subject := fmt.Sprintf("Contact form: %s", msg.Name)
	return m.send(ctx, m.cfg.StaffRecipients, subject, body)
}

func (m *Mailer) send(ctx context.Context, to []string, subject, htmlBody string) error {
	message := mail.NewMsg()
	if err := message.FromFormat(m.cfg.FromName, m.cfg.FromAddress); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := message.To(to...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	if m.logg != nil {
		m.logg.Info(ctx, "notification email sent")
	}
	return nil
}
