package quoteform

import (
	"strconv"
	"strings"

	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"

	"github.com/apexitsupply/apex-backend/internal/quotecart"
)

const defaultCode = "CUSTOM"

// Urgency levels accepted by the quote endpoint.
const (
	UrgencyStandard  = "standard"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// Row is one raw product line as edited in the form. Quantity and price stay
// text until normalization because that is how form inputs arrive.
type Row struct {
	Ref          ProductRef
	Code         string
	Description  string
	Quantity     string
	CurrentPrice string
}

// Contact carries the customer fields submitted alongside the rows.
type Contact struct {
	CustomerName           string
	Email                  string
	Phone                  string
	CompanyName            string
	AdditionalRequirements string
	Urgency                string
}

// NormalizedRow is the wire form of one product line. ID is present only for
// catalog rows; guest rows omit it so the backend assigns identity.
type NormalizedRow struct {
	ID           *int64  `json:"id,omitempty"`
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	CurrentPrice float64 `json:"current_price"`
}

// Draft is the full submission payload.
type Draft struct {
	CustomerName           string          `json:"customer_name"`
	Email                  string          `json:"email"`
	Phone                  string          `json:"phone,omitempty"`
	CompanyName            string          `json:"company_name,omitempty"`
	AdditionalRequirements string          `json:"additional_requirements,omitempty"`
	Urgency                string          `json:"urgency"`
	Products               []NormalizedRow `json:"products"`
}

// RowFromLineItem prefills a form row from a cart line.
func RowFromLineItem(item quotecart.LineItem) Row {
	return Row{
		Ref:          CatalogRef(item.ID),
		Code:         "",
		Description:  item.Description,
		Quantity:     strconv.Itoa(item.Quantity),
		CurrentPrice: item.Price.String(),
	}
}

// BlankRows is the initial empty-row template the form starts and resets with.
func BlankRows() []Row {
	return []Row{{}, {}}
}

// NormalizeRows applies the per-row rules: rows with an empty trimmed
// description are dropped, code defaults to CUSTOM, quantity parses with a
// floor of 1, price parses with a default of 0, and only catalog rows keep
// their id.
func NormalizeRows(rows []Row) []NormalizedRow {
	out := make([]NormalizedRow, 0, len(rows))
	for _, row := range rows {
		description := strings.TrimSpace(row.Description)
		if description == "" {
			continue
		}

		code := strings.TrimSpace(row.Code)
		if code == "" {
			code = defaultCode
		}

		normalized := NormalizedRow{
			Code:         code,
			Description:  description,
			Quantity:     parseQuantity(row.Quantity),
			CurrentPrice: parsePrice(row.CurrentPrice),
		}
		if id, ok := row.Ref.Catalog(); ok {
			normalized.ID = &id
		}
		out = append(out, normalized)
	}
	return out
}

// BuildDraft validates the contact fields, normalizes the rows, and assembles
// the submission payload.
func BuildDraft(contact Contact, rows []Row) (*Draft, error) {
	name := strings.TrimSpace(contact.CustomerName)
	email := strings.TrimSpace(contact.Email)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	urgency := strings.TrimSpace(contact.Urgency)
	switch urgency {
	case "":
		urgency = UrgencyStandard
	case UrgencyStandard, UrgencyUrgent, UrgencyEmergency:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid urgency")
	}

	products := NormalizeRows(rows)
	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one product row with a description is required")
	}

	return &Draft{
		CustomerName:           name,
		Email:                  email,
		Phone:                  strings.TrimSpace(contact.Phone),
		CompanyName:            strings.TrimSpace(contact.CompanyName),
		AdditionalRequirements: strings.TrimSpace(contact.AdditionalRequirements),
		Urgency:                urgency,
		Products:               products,
	}, nil
}

func parseQuantity(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 1
	}
	qty, err := strconv.Atoi(trimmed)
	if err != nil {
		// fractional input truncates to its integer part
		if f, ferr := strconv.ParseFloat(trimmed, 64); ferr == nil {
			qty = int(f)
		} else {
			return 1
		}
	}
	if qty < 1 {
		return 1
	}
	return qty
}

func parsePrice(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}
