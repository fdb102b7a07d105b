package product

import (
	"github.com/shopspring/decimal"

	"github.com/apexitsupply/apex-backend/pkg/enums"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

// ListFilters narrows the catalog listing.
type ListFilters struct {
	Category  string
	Brand     string
	Query     string
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	Available *bool
	SortBy    enums.ProductSortField
	SortOrder enums.SortOrder
}

// ListProductsInput carries pagination plus filters from the API layer.
type ListProductsInput struct {
	Pagination pagination.Params
	Filters    ListFilters
}

// ListResult is one page of catalog listings with totals.
type ListResult struct {
	Data     []ProductDTO `json:"data"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PerPage  int          `json:"per_page"`
	LastPage int          `json:"last_page"`
}
