package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sethvargo/go-retry"

	"github.com/apexitsupply/apex-backend/pkg/config"
	"github.com/apexitsupply/apex-backend/pkg/enums"
	"github.com/apexitsupply/apex-backend/pkg/logger"

	quote "github.com/apexitsupply/apex-backend/internal/quotes"
)

const (
	senderName     = "Apex IT Supply"
	initialBackoff = 500 * time.Millisecond
)

// sender is the slice of the sendgrid client the mailer needs.
type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer delivers internal notifications for public submissions through Sendgrid.
// Transient failures are retried with exponential backoff.
type Mailer struct {
	client      sender
	from        string
	salesInbox  string
	maxAttempts int
	logg        *logger.Logger
}

// NewMailer wires the Sendgrid client from configuration.
func NewMailer(sg config.SendgridConfig, notify config.NotifyConfig, logg *logger.Logger) (*Mailer, error) {
	if sg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	if sg.DefaultFrom == "" {
		return nil, fmt.Errorf("sendgrid from address is required")
	}
	if notify.SalesInbox == "" {
		return nil, fmt.Errorf("sales inbox address is required")
	}
	return newMailer(sendgrid.NewSendClient(sg.APIKey), sg.DefaultFrom, notify.SalesInbox, notify.MaxAttempts, logg), nil
}

func newMailer(client sender, from, salesInbox string, maxAttempts int, logg *logger.Logger) *Mailer {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Mailer{
		client:      client,
		from:        from,
		salesInbox:  salesInbox,
		maxAttempts: maxAttempts,
		logg:        logg,
	}
}

// QuoteSubmitted emails the sales inbox with the new quote request.
func (m *Mailer) QuoteSubmitted(ctx context.Context, q *quote.QuoteDTO) error {
	subject := fmt.Sprintf("New quote request #%d (%s)", q.ID, q.Urgency)

	var body strings.Builder
	fmt.Fprintf(&body, "Quote request #%d\n", q.ID)
	fmt.Fprintf(&body, "Customer: %s <%s>\n", q.CustomerName, q.Email)
	if q.CompanyName != nil && *q.CompanyName != "" {
		fmt.Fprintf(&body, "Company: %s\n", *q.CompanyName)
	}
	if q.Phone != nil && *q.Phone != "" {
		fmt.Fprintf(&body, "Phone: %s\n", *q.Phone)
	}
	fmt.Fprintf(&body, "Urgency: %s\n\nItems:\n", q.Urgency)
	for _, item := range q.Items {
		fmt.Fprintf(&body, "  - %s x%d (%s)", item.Description, item.Quantity, item.Code)
		if !item.CurrentPrice.IsZero() {
			fmt.Fprintf(&body, " @ %s", item.CurrentPrice.StringFixed(2))
		}
		body.WriteString("\n")
	}
	if q.AdditionalRequirements != nil && *q.AdditionalRequirements != "" {
		fmt.Fprintf(&body, "\nAdditional requirements:\n%s\n", *q.AdditionalRequirements)
	}

	return m.send(ctx, subject, body.String())
}

// ContactReceived emails the sales inbox with a contact message or callback request.
func (m *Mailer) ContactReceived(ctx context.Context, kind enums.ContactKind, name, email, message string) error {
	subject := fmt.Sprintf("New contact message from %s", name)
	if kind == enums.ContactKindCallback {
		subject = fmt.Sprintf("Callback requested by %s", name)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s", name)
	if email != "" {
		fmt.Fprintf(&body, " <%s>", email)
	}
	body.WriteString("\n\n")
	body.WriteString(message)
	body.WriteString("\n")

	return m.send(ctx, subject, body.String())
}

func (m *Mailer) send(ctx context.Context, subject, body string) error {
	from := mail.NewEmail(senderName, m.from)
	to := mail.NewEmail("", m.salesInbox)
	message := mail.NewSingleEmail(from, subject, to, body, fmt.Sprintf("<pre>%s</pre>", body))

	backoff := retry.WithMaxRetries(uint64(m.maxAttempts-1), retry.NewExponential(initialBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		response, sendErr := m.client.SendWithContext(ctx, message)
		if sendErr != nil {
			return retry.RetryableError(sendErr)
		}
		if response.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("sendgrid status %d: %s", response.StatusCode, response.Body))
		}
		if response.StatusCode >= 400 {
			return fmt.Errorf("sendgrid status %d: %s", response.StatusCode, response.Body)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sendgrid deliver %q: %w", subject, err)
	}

	if m.logg != nil {
		m.logg.Info(m.logg.WithField(ctx, "subject", subject), "notify.sent")
	}
	return nil
}
