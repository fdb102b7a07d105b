package enums

import "fmt"

// ProductSortField enumerates the catalog columns the public list accepts for sorting.
type ProductSortField string

const (
	ProductSortPrice     ProductSortField = "price"
	ProductSortRating    ProductSortField = "rating"
	ProductSortCreatedAt ProductSortField = "created_at"
)

var validProductSortFields = []ProductSortField{
	ProductSortPrice,
	ProductSortRating,
	ProductSortCreatedAt,
}

func (f ProductSortField) IsValid() bool {
	for _, candidate := range validProductSortFields {
		if candidate == f {
			return true
		}
	}
	return false
}

func ParseProductSortField(value string) (ProductSortField, error) {
	for _, candidate := range validProductSortFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort field %q", value)
}

// SortOrder is the direction applied to the sort field.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(value) {
	case SortAsc, SortDesc:
		return SortOrder(value), nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
