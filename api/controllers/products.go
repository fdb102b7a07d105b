package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/apexitsupply/apex-backend/api/responses"
	"github.com/apexitsupply/apex-backend/api/validators"
	product "github.com/apexitsupply/apex-backend/internal/products"
	"github.com/apexitsupply/apex-backend/pkg/enums"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/logger"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

// ListProducts serves the public catalog grid with filters and sorting.
func ListProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := productFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), product.ListProductsInput{
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

// GetProduct serves one catalog listing.
func GetProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, dto)
	}
}

// SearchProducts runs a text search across the catalog.
func SearchProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SearchProducts(r.Context(), r.URL.Query().Get("q"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, result)
	}
}

// ListProductsByCategory serves the category browse pages.
func ListProductsByCategory(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListByCategory(r.Context(), chi.URLParam(r, "category"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, result)
	}
}

// ListProductCategories serves the distinct category names.
func ListProductCategories(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, categories)
	}
}

// ListFeaturedProducts serves the homepage highlight strip.
func ListFeaturedProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := svc.ListFeatured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, featured)
	}
}

type productPayload struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	Price          decimal.Decimal   `json:"price"`
	Images         []string          `json:"images,omitempty"`
	Category       string            `json:"category" validate:"required"`
	Brand          string            `json:"brand,omitempty"`
	Availability   *bool             `json:"availability,omitempty"`
	Features       []string          `json:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	IsFeatured     *bool             `json:"is_featured,omitempty"`
}

// AdminCreateProduct inserts a catalog listing.
func AdminCreateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		availability := true
		if payload.Availability != nil {
			availability = *payload.Availability
		}
		isFeatured := false
		if payload.IsFeatured != nil {
			isFeatured = *payload.IsFeatured
		}

		dto, err := svc.CreateProduct(r.Context(), product.CreateProductInput{
			Name:           payload.Name,
			Description:    payload.Description,
			Price:          payload.Price,
			Images:         payload.Images,
			Category:       payload.Category,
			Brand:          payload.Brand,
			Availability:   availability,
			Features:       payload.Features,
			Specifications: payload.Specifications,
			IsFeatured:     isFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteDataStatus(w, http.StatusCreated, dto)
	}
}

type productUpdatePayload struct {
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Price          *decimal.Decimal   `json:"price,omitempty"`
	Images         *[]string          `json:"images,omitempty"`
	Category       *string            `json:"category,omitempty"`
	Brand          *string            `json:"brand,omitempty"`
	Availability   *bool              `json:"availability,omitempty"`
	Features       *[]string          `json:"features,omitempty"`
	Specifications *map[string]string `json:"specifications,omitempty"`
	IsFeatured     *bool              `json:"is_featured,omitempty"`
}

// AdminUpdateProduct applies a partial update to a catalog listing.
func AdminUpdateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateProduct(r.Context(), id, product.UpdateProductInput{
			Name:           payload.Name,
			Description:    payload.Description,
			Price:          payload.Price,
			Images:         payload.Images,
			Category:       payload.Category,
			Brand:          payload.Brand,
			Availability:   payload.Availability,
			Features:       payload.Features,
			Specifications: payload.Specifications,
			IsFeatured:     payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, dto)
	}
}

// AdminDeleteProduct removes a catalog listing.
func AdminDeleteProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "product deleted")
	}
}

func paginationFromQuery(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return pagination.Params{}, err
	}
	perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PerPage: perPage}, nil
}

func productFiltersFromQuery(r *http.Request) (product.ListFilters, error) {
	query := r.URL.Query()
	filters := product.ListFilters{
		Category: strings.TrimSpace(query.Get("category")),
		Brand:    strings.TrimSpace(query.Get("brand")),
		Query:    strings.TrimSpace(query.Get("search")),
	}

	if raw := strings.TrimSpace(query.Get("price_min")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return product.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "price_min must be numeric")
		}
		filters.PriceMin = &value
	}
	if raw := strings.TrimSpace(query.Get("price_max")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return product.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "price_max must be numeric")
		}
		filters.PriceMax = &value
	}
	if raw := strings.TrimSpace(query.Get("available")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return product.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "available must be a boolean")
		}
		filters.Available = &value
	}
	if raw := strings.TrimSpace(query.Get("sort_by")); raw != "" {
		field, err := enums.ParseProductSortField(raw)
		if err != nil {
			return product.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort_by")
		}
		filters.SortBy = field
	}
	if raw := strings.TrimSpace(query.Get("sort_order")); raw != "" {
		order, err := enums.ParseSortOrder(raw)
		if err != nil {
			return product.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort_order")
		}
		filters.SortOrder = order
	}
	return filters, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid id in path").
			WithDetails(map[string]any{"param": name})
	}
	return id, nil
}
