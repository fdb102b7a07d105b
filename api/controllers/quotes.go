package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/apexitsupply/apex-backend/api/responses"
	"github.com/apexitsupply/apex-backend/api/validators"
	product "github.com/apexitsupply/apex-backend/internal/products"
	quote "github.com/apexitsupply/apex-backend/internal/quotes"
	"github.com/apexitsupply/apex-backend/pkg/enums"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/logger"
)

// CatalogResolver checks whether a submitted product id exists in the catalog.
// product.Service satisfies it.
type CatalogResolver interface {
	GetProduct(ctx context.Context, id int64) (*product.ProductDTO, error)
}

type quoteRequestPayload struct {
	CustomerName           string            `json:"customer_name" validate:"required"`
	Email                  string            `json:"email" validate:"required,email"`
	Phone                  *string           `json:"phone,omitempty"`
	CompanyName            *string           `json:"company_name,omitempty"`
	AdditionalRequirements *string           `json:"additional_requirements,omitempty"`
	Urgency                string            `json:"urgency,omitempty"`
	Products               []quoteRowPayload `json:"products" validate:"required,min=1,dive"`
}

type quoteRowPayload struct {
	ID           *int64          `json:"id,omitempty"`
	Code         string          `json:"code,omitempty"`
	Description  string          `json:"description" validate:"required"`
	Quantity     int             `json:"quantity,omitempty"`
	CurrentPrice decimal.Decimal `json:"current_price,omitempty"`
}

// SubmitQuoteRequest is the public quote intake. Submitted catalog ids are
// resolved against the products table; unknown ids become guest lines so the
// backend assigns identity.
func SubmitQuoteRequest(svc quote.Service, catalog CatalogResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		urgency := enums.QuoteUrgency(strings.TrimSpace(payload.Urgency))
		items := make([]quote.ItemInput, 0, len(payload.Products))
		for _, row := range payload.Products {
			productID, err := resolveCatalogID(r.Context(), catalog, row.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			items = append(items, quote.ItemInput{
				ProductID:    productID,
				Code:         row.Code,
				Description:  row.Description,
				Quantity:     row.Quantity,
				CurrentPrice: row.CurrentPrice,
			})
		}

		receipt, err := svc.SubmitQuote(r.Context(), quote.SubmitQuoteInput{
			CustomerName:           payload.CustomerName,
			Email:                  payload.Email,
			Phone:                  payload.Phone,
			CompanyName:            payload.CompanyName,
			AdditionalRequirements: payload.AdditionalRequirements,
			Urgency:                urgency,
			Items:                  items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusCreated, map[string]any{
			"success":  true,
			"message":  receipt.Message,
			"quote_id": receipt.QuoteID,
		})
	}
}

func resolveCatalogID(ctx context.Context, catalog CatalogResolver, id *int64) (*int64, error) {
	if id == nil || catalog == nil {
		return nil, nil
	}
	if _, err := catalog.GetProduct(ctx, *id); err != nil {
		typed := pkgerrors.As(err)
		if typed != nil && (typed.Code() == pkgerrors.CodeNotFound || typed.Code() == pkgerrors.CodeValidation) {
			return nil, nil
		}
		return nil, err
	}
	return id, nil
}

// AdminListQuotes serves the back-office quote table.
func AdminListQuotes(svc quote.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := quote.ListFilters{
			Email: strings.TrimSpace(r.URL.Query().Get("email")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseQuoteStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filters.Status = status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("urgency")); raw != "" {
			urgency, err := enums.ParseQuoteUrgency(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid urgency"))
				return
			}
			filters.Urgency = urgency
		}

		result, err := svc.ListQuotes(r.Context(), quote.ListInput{
			Pagination: params,
			Filters:    filters,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, result)
	}
}

// AdminGetQuote serves one quote with its lines.
func AdminGetQuote(svc quote.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetQuote(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, dto)
	}
}

type quoteStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// AdminUpdateQuoteStatus moves a quote along its lifecycle.
func AdminUpdateQuoteStatus(svc quote.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quoteStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseQuoteStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		dto, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, dto)
	}
}

// AdminDeleteQuote removes a quote request.
func AdminDeleteQuote(svc quote.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteQuote(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "quote deleted")
	}
}

// AdminDashboard aggregates quote totals plus the catalog size.
func AdminDashboard(quotes quote.Service, products product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := quotes.DashboardSummary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var totalProducts int64
		if products != nil {
			catalog, err := products.ListProducts(r.Context(), product.ListProductsInput{})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			totalProducts = catalog.Total
		}

		responses.WriteData(w, map[string]any{
			"total_products": totalProducts,
			"total_quotes":   summary.TotalQuotes,
			"pending_quotes": summary.ByStatus[string(enums.QuoteStatusPending)],
			"by_status":      summary.ByStatus,
			"urgency_counts": summary.UrgencyCounts,
			"recent_quotes":  summary.RecentQuotes,
		})
	}
}
