package types

import (
	"fmt"
	"strings"
)

// GIDKind is the entity kind segment of a storefront global ID,
// e.g. the "Product" in gid://shopify/Product/123.
type GIDKind string

const (
	GIDKindCustomer   GIDKind = "Customer"
	GIDKindProduct    GIDKind = "Product"
	GIDKindVariant    GIDKind = "ProductVariant"
	GIDKindCollection GIDKind = "Collection"
	GIDKindSegment    GIDKind = "Segment"
	GIDKindDraftOrder GIDKind = "DraftOrder"
)

const gidPrefix = "gid://shopify/"

// GID builds the canonical prefixed form for outbound catalog calls.
// Already-canonical input is returned unchanged regardless of kind, so the
// function is idempotent and safe to call on identifiers of unknown origin.
func GID(kind GIDKind, id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, gidPrefix) {
		return id
	}
	return fmt.Sprintf("%s%s/%s", gidPrefix, kind, id)
}

// BareID strips the canonical prefix and returns the trailing identifier used
// for storage and comparison. Malformed input comes back unchanged: the
// pipeline downstream degrades to "no match" rather than failing, so the
// caller only gets a signal via ok=false.
func BareID(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, gidPrefix) {
		return id, id != ""
	}
	rest := strings.TrimPrefix(id, gidPrefix)
	idx := strings.LastIndex(rest, "/")
	if idx < 0 || idx == len(rest)-1 {
		return id, false
	}
	return rest[idx+1:], true
}

// GIDEqual reports whether two identifiers refer to the same entity in either
// encoding (prefixed or bare).
func GIDEqual(a, b string) bool {
	ba, _ := BareID(a)
	bb, _ := BareID(b)
	return ba != "" && ba == bb
}
