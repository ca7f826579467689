package contact

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/meterline/storefront-backend/pkg/db/models"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
)

const (
	maxNameLen    = 200
	maxEmailLen   = 320
	maxPhoneLen   = 40
	maxMessageLen = 5000
)

// SubmitInput is a raw contact-form submission.
type SubmitInput struct {
	Name     string
	Email    string
	Phone    string
	Message  string
	ClientIP string
}

// Message is the sanitized submission handed to the notifier.
type Message struct {
	Name     string
	Email    string
	Phone    string
	Message  string
	ClientIP string
}

// Notifier forwards a stored contact message to the sales inbox. Delivery
// failures never fail the submission.
type Notifier interface {
	ContactReceived(ctx context.Context, msg Message) error
}

// Service accepts contact-form submissions.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) error
}

// Repository persists contact messages.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires the repository to the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a contact message.
func (r *Repository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

type service struct {
	repo     *Repository
	notifier Notifier
	logg     *logger.Logger
}

// NewService wires contact dependencies. The notifier is optional.
func NewService(repo *Repository, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contact repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, notifier: notifier, logg: logg}, nil
}

// Submit validates and stores a submission, then forwards it by email
// without blocking the response.
func (s *service) Submit(ctx context.Context, input SubmitInput) error {
	msg, err := sanitize(input)
	if err != nil {
		return err
	}

	record := &models.ContactMessage{
		Name:     msg.Name,
		Email:    msg.Email,
		Phone:    msg.Phone,
		Message:  msg.Message,
		ClientIP: msg.ClientIP,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store contact message")
	}

	s.forward(ctx, msg)
	return nil
}

func (s *service) forward(ctx context.Context, msg Message) {
	if s.notifier == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := s.notifier.ContactReceived(sendCtx, msg); err != nil {
			s.logg.Error(sendCtx, "contact notification email failed", err)
		}
	}()
}

// sanitize trims, strips control characters and enforces length caps.
// HTML in the message body is left intact here; the mail templates escape
// it at render time.
func sanitize(input SubmitInput) (Message, error) {
	details := map[string]any{}

	name := clean(input.Name, maxNameLen)
	if name == "" {
		details["name"] = "required"
	}

	email := clean(input.Email, maxEmailLen)
	if email == "" {
		details["email"] = "required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "invalid email address"
	}

	body := clean(input.Message, maxMessageLen)
	if body == "" {
		details["message"] = "required"
	}

	if len(details) > 0 {
		return Message{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact submission").WithDetails(details)
	}

	return Message{
		Name:     name,
		Email:    email,
		Phone:    clean(input.Phone, maxPhoneLen),
		Message:  body,
		ClientIP: input.ClientIP,
	}, nil
}

// clean drops non-printable runes (newlines and tabs survive) and caps
// the length so a hostile payload cannot balloon the stored row. The cap
// cuts on a rune boundary, never inside a multi-byte character.
func clean(value string, max int) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			if b.Len()+utf8.RuneLen(r) > max {
				break
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
