package quoteform

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// guestIDPrefix marks synthesized placeholder ids for free-text rows. The
// prefix survives only inside the form; normalized payloads never carry it.
const guestIDPrefix = "55-"

type refKind int

const (
	refNone refKind = iota
	refCatalog
	refGuest
)

// ProductRef identifies a form row as a catalog product, a guest (free-text)
// line with a temporary tracking id, or nothing at all.
type ProductRef struct {
	kind      refKind
	catalogID int64
	tempID    string
}

// CatalogRef references a product by its stable catalog id.
func CatalogRef(id int64) ProductRef {
	return ProductRef{kind: refCatalog, catalogID: id}
}

// GuestRef wraps a synthesized tracking id for a free-text row.
func GuestRef(tempID string) ProductRef {
	return ProductRef{kind: refGuest, tempID: tempID}
}

// NoRef is a row with no identity yet.
func NoRef() ProductRef {
	return ProductRef{}
}

// Catalog returns the catalog id when the ref is a catalog reference.
func (r ProductRef) Catalog() (int64, bool) {
	return r.catalogID, r.kind == refCatalog
}

// Guest returns the temporary id when the ref is a guest reference.
func (r ProductRef) Guest() (string, bool) {
	return r.tempID, r.kind == refGuest
}

// IsCatalog reports whether the row carries real catalog identity. Everything
// else is treated as a guest line the backend assigns identity to.
func (r ProductRef) IsCatalog() bool {
	return r.kind == refCatalog
}

func (r ProductRef) String() string {
	switch r.kind {
	case refCatalog:
		return strconv.FormatInt(r.catalogID, 10)
	case refGuest:
		return r.tempID
	default:
		return ""
	}
}

// ParseRef decodes a raw form id value. Empty means no identity, the guest
// prefix means a synthesized tracking id, a plain integer means catalog.
// Anything else is kept as a guest id so the row stays editable.
func ParseRef(raw string) ProductRef {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NoRef()
	}
	if strings.HasPrefix(trimmed, guestIDPrefix) {
		return GuestRef(trimmed)
	}
	if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil && id > 0 {
		return CatalogRef(id)
	}
	return GuestRef(trimmed)
}

// NewGuestID synthesizes a tracking id unique enough for one form session.
func NewGuestID() string {
	return fmt.Sprintf("%s%d-%d", guestIDPrefix, time.Now().UnixMilli(), rand.Intn(1000))
}
