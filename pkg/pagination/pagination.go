package pagination

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 12
	// MaxPerPage caps how many rows any listing can request.
	MaxPerPage = 100
)

// Params holds page/offset pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Page describes one page of a listing along with totals for the client.
type Page struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	LastPage int   `json:"last_page"`
}

// Normalize enforces defaults and the maximum page size.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the SQL offset for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Build computes page metadata for a total row count.
func Build(params Params, total int64) Page {
	n := params.Normalize()
	last := int((total + int64(n.PerPage) - 1) / int64(n.PerPage))
	if last < 1 {
		last = 1
	}
	return Page{
		Total:    total,
		Page:     n.Page,
		PerPage:  n.PerPage,
		LastPage: last,
	}
}
