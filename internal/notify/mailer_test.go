package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/apexitsupply/apex-backend/pkg/config"
	"github.com/apexitsupply/apex-backend/pkg/enums"

	quote "github.com/apexitsupply/apex-backend/internal/quotes"
)

func sgConfig(key, from string) config.SendgridConfig {
	return config.SendgridConfig{APIKey: key, DefaultFrom: from}
}

func notifyConfig(inbox string) config.NotifyConfig {
	return config.NotifyConfig{SalesInbox: inbox, MaxAttempts: 3}
}

type fakeSender struct {
	responses []*rest.Response
	errs      []error
	sent      []*mail.SGMailV3
}

func (f *fakeSender) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	idx := len(f.sent)
	f.sent = append(f.sent, email)
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx < len(f.responses) {
		return f.responses[idx], nil
	}
	return &rest.Response{StatusCode: 202}, nil
}

func sampleQuote() *quote.QuoteDTO {
	company := "Example Corp"
	return &quote.QuoteDTO{
		ID:           42,
		CustomerName: "Dana Smith",
		Email:        "dana@example.com",
		CompanyName:  &company,
		Urgency:      enums.QuoteUrgencyUrgent,
		Items: []quote.QuoteItemDTO{
			{Code: "SW-24", Description: "24-port switch", Quantity: 2, CurrentPrice: decimal.NewFromInt(379)},
			{Code: "CUSTOM", Description: "Fiber patch cables", Quantity: 10, CurrentPrice: decimal.Zero},
		},
	}
}

func TestQuoteSubmittedBuildsEmail(t *testing.T) {
	client := &fakeSender{}
	mailer := newMailer(client, "noreply@apexitsupply.com", "sales@apexitsupply.com", 3, nil)

	require.NoError(t, mailer.QuoteSubmitted(context.Background(), sampleQuote()))
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	require.Equal(t, "New quote request #42 (urgent)", msg.Subject)
	require.Equal(t, "noreply@apexitsupply.com", msg.From.Address)
	require.Equal(t, "sales@apexitsupply.com", msg.Personalizations[0].To[0].Address)

	body := msg.Content[0].Value
	require.Contains(t, body, "Dana Smith <dana@example.com>")
	require.Contains(t, body, "Example Corp")
	require.Contains(t, body, "24-port switch x2 (SW-24) @ 379.00")
	require.Contains(t, body, "Fiber patch cables x10 (CUSTOM)")
}

func TestContactReceivedSubjects(t *testing.T) {
	client := &fakeSender{}
	mailer := newMailer(client, "noreply@apexitsupply.com", "sales@apexitsupply.com", 3, nil)

	require.NoError(t, mailer.ContactReceived(context.Background(), enums.ContactKindMessage, "Dana", "dana@example.com", "hello"))
	require.NoError(t, mailer.ContactReceived(context.Background(), enums.ContactKindCallback, "Lee", "", "call me"))

	require.Equal(t, "New contact message from Dana", client.sent[0].Subject)
	require.Equal(t, "Callback requested by Lee", client.sent[1].Subject)
}

func TestSendRetriesTransientFailures(t *testing.T) {
	client := &fakeSender{
		errs:      []error{errors.New("dial timeout"), nil},
		responses: []*rest.Response{nil, {StatusCode: 202}},
	}
	mailer := newMailer(client, "noreply@apexitsupply.com", "sales@apexitsupply.com", 3, nil)

	require.NoError(t, mailer.ContactReceived(context.Background(), enums.ContactKindMessage, "Dana", "dana@example.com", "hello"))
	require.Len(t, client.sent, 2)
}

func TestSendRetriesServerErrors(t *testing.T) {
	client := &fakeSender{
		responses: []*rest.Response{{StatusCode: 503, Body: "unavailable"}, {StatusCode: 202}},
	}
	mailer := newMailer(client, "noreply@apexitsupply.com", "sales@apexitsupply.com", 3, nil)

	require.NoError(t, mailer.ContactReceived(context.Background(), enums.ContactKindMessage, "Dana", "dana@example.com", "hello"))
	require.Len(t, client.sent, 2)
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	client := &fakeSender{
		responses: []*rest.Response{{StatusCode: 401, Body: "bad key"}},
	}
	mailer := newMailer(client, "noreply@apexitsupply.com", "sales@apexitsupply.com", 3, nil)

	err := mailer.ContactReceived(context.Background(), enums.ContactKindMessage, "Dana", "dana@example.com", "hello")
	require.Error(t, err)
	require.Len(t, client.sent, 1)
}

func TestSendGivesUpAfterMaxAttempts(t *testing.T) {
	client := &fakeSender{
		errs: []error{errors.New("down"), errors.New("down"), errors.New("down")},
	}
	mailer := newMailer(client, "noreply@apexitsupply.com", "sales@apexitsupply.com", 3, nil)

	err := mailer.ContactReceived(context.Background(), enums.ContactKindMessage, "Dana", "dana@example.com", "hello")
	require.Error(t, err)
	require.Len(t, client.sent, 3)
}

func TestNewMailerValidatesConfig(t *testing.T) {
	_, err := NewMailer(sgConfig("", "noreply@apexitsupply.com"), notifyConfig("sales@apexitsupply.com"), nil)
	require.Error(t, err)

	_, err = NewMailer(sgConfig("key", ""), notifyConfig("sales@apexitsupply.com"), nil)
	require.Error(t, err)

	_, err = NewMailer(sgConfig("key", "noreply@apexitsupply.com"), notifyConfig(""), nil)
	require.Error(t, err)
}
