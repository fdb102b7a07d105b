package quotedesk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/apexitsupply/apex-backend/internal/quotecart"
	"github.com/apexitsupply/apex-backend/internal/quoteform"
	"github.com/apexitsupply/apex-backend/internal/quotegateway"
)

// Gateway is the slice of the quote service client the desk needs.
type Gateway interface {
	Submit(ctx context.Context, draft *quoteform.Draft) (*quotegateway.Receipt, error)
	SubscribeNewsletter(ctx context.Context, email string) (string, error)
}

// ErrSubmitInFlight guards against duplicate concurrent submissions. The desk
// rejects a second submit while one is outstanding instead of cancelling it.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// App drives the quote flow: cart mutations, form rows, and submission.
type App struct {
	cart    *quotecart.Store
	gateway Gateway
	contact quoteform.Contact
	rows    []quoteform.Row

	mu       sync.Mutex
	inFlight bool
}

// NewApp wires the desk over a cart store and a gateway client. The form
// starts with the blank two-row template.
func NewApp(cart *quotecart.Store, gateway Gateway) (*App, error) {
	if cart == nil {
		return nil, errors.New("cart store required")
	}
	if gateway == nil {
		return nil, errors.New("gateway required")
	}
	return &App{
		cart:    cart,
		gateway: gateway,
		rows:    quoteform.BlankRows(),
	}, nil
}

// Badge renders the floating cart affordance: empty at zero items.
func (a *App) Badge() string {
	total := a.cart.TotalItems()
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("Quote (%d)", total)
}

// Cart exposes the underlying store for read operations.
func (a *App) Cart() *quotecart.Store {
	return a.cart
}

// Gateway exposes the wired service client.
func (a *App) Gateway() Gateway {
	return a.gateway
}

// SetContact replaces the customer fields used on the next submit.
func (a *App) SetContact(contact quoteform.Contact) {
	a.contact = contact
}

// Rows returns a copy of the current form rows.
func (a *App) Rows() []quoteform.Row {
	out := make([]quoteform.Row, len(a.rows))
	copy(out, a.rows)
	return out
}

// LoadCartRows replaces the form rows with the current cart contents,
// keeping the blank template when the cart is empty.
func (a *App) LoadCartRows() {
	items := a.cart.Items()
	if len(items) == 0 {
		a.rows = quoteform.BlankRows()
		return
	}
	rows := make([]quoteform.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, quoteform.RowFromLineItem(item))
	}
	a.rows = rows
}

// AddGuestRow appends a free-text row with a synthesized tracking id.
func (a *App) AddGuestRow(description, quantity, price string) string {
	tempID := quoteform.NewGuestID()
	a.rows = append(a.rows, quoteform.Row{
		Ref:          quoteform.GuestRef(tempID),
		Description:  description,
		Quantity:     quantity,
		CurrentPrice: price,
	})
	return tempID
}

// UpdateRow replaces the row identified by its ref string. Unknown refs are
// a no-op.
func (a *App) UpdateRow(ref string, row quoteform.Row) {
	for i := range a.rows {
		if a.rows[i].Ref.String() == ref {
			a.rows[i] = row
			return
		}
	}
}

// RemoveRow deletes the row identified by its ref string.
func (a *App) RemoveRow(ref string) {
	for i := range a.rows {
		if a.rows[i].Ref.String() == ref {
			a.rows = append(a.rows[:i], a.rows[i+1:]...)
			return
		}
	}
}

// Submit validates, normalizes, and sends the draft in a single attempt.
// On success the cart is cleared and the form resets to two blank rows; on
// failure cart and form are left untouched so the user can resubmit.
func (a *App) Submit(ctx context.Context) (*quotegateway.Receipt, error) {
	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	a.inFlight = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.inFlight = false
		a.mu.Unlock()
	}()

	draft, err := quoteform.BuildDraft(a.contact, a.rows)
	if err != nil {
		return nil, err
	}

	receipt, err := a.gateway.Submit(ctx, draft)
	if err != nil {
		return nil, err
	}

	a.cart.Clear()
	a.rows = quoteform.BlankRows()
	return receipt, nil
}

// Summary renders the current form state for the terminal.
func (a *App) Summary() string {
	var b strings.Builder
	if badge := a.Badge(); badge != "" {
		fmt.Fprintf(&b, "%s\n", badge)
	}
	for i, row := range a.rows {
		description := strings.TrimSpace(row.Description)
		if description == "" {
			description = "(blank)"
		}
		fmt.Fprintf(&b, "%2d. %s", i+1, description)
		if ref := row.Ref.String(); ref != "" {
			fmt.Fprintf(&b, " [%s]", ref)
		}
		if qty := strings.TrimSpace(row.Quantity); qty != "" {
			fmt.Fprintf(&b, " x%s", qty)
		}
		b.WriteString("\n")
	}
	return b.String()
}
