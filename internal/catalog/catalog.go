package catalog

import (
	"strings"

	"ketoan/backend/internal/domain"
)

// Kind is the result of classifying a catalog code.
type Kind int

const (
	// KindUnknown means the code was empty or absent: no pricing, no stock
	// effect.
	KindUnknown Kind = iota
	// KindProduct means the code resolved to a stock-tracked product.
	KindProduct
	// KindAction means the code bills as a service and never touches
	// inventory. It may or may not carry a price-list entry.
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

// Classification carries the resolved catalog entry and the unit price to use
// for pricing. HasUnitPrice is false for actions with no price-list entry;
// the caller must then supply an explicit total.
type Classification struct {
	Kind         Kind
	Product      *domain.Product
	Price        *domain.PriceEntry
	UnitPrice    int64
	HasUnitPrice bool
}

// Classify resolves a catalog code against the price list and the product
// table. The price list wins when its entry is an action; otherwise a product
// match wins; a code found in neither is treated as an unpriced action.
func Classify(code string, price *domain.PriceEntry, product *domain.Product) Classification {
	if strings.TrimSpace(code) == "" {
		return Classification{Kind: KindUnknown}
	}

	if price != nil && price.Kind == domain.PriceKindAction {
		return Classification{
			Kind:         KindAction,
			Price:        price,
			UnitPrice:    price.UnitPrice,
			HasUnitPrice: true,
		}
	}

	if product != nil {
		return Classification{
			Kind:         KindProduct,
			Product:      product,
			UnitPrice:    product.UnitPrice,
			HasUnitPrice: true,
		}
	}

	return Classification{Kind: KindAction}
}

// PriceOrder computes an order total from the classification, the quantity
// and an optional caller-supplied total. An explicit total with no quantity
// is used verbatim; an unpriced action derives its unit price from the
// explicit total.
func PriceOrder(c Classification, quantity int, explicitTotal *int64) int64 {
	if quantity < 1 {
		if explicitTotal != nil {
			return *explicitTotal
		}
		return 0
	}

	if c.HasUnitPrice {
		return c.UnitPrice * int64(quantity)
	}

	var total int64
	if explicitTotal != nil {
		total = *explicitTotal
	}
	unit := total / int64(maxInt(quantity, 1))
	return unit * int64(quantity)
}

// ApplyStockDelta adjusts a product's on-hand quantity, flooring at zero, and
// keeps the derived availability status consistent.
func ApplyStockDelta(p *domain.Product, delta int) {
	next := p.Quantity + delta
	if next < 0 {
		next = 0
	}
	p.Quantity = next
	p.Availability = AvailabilityFor(next)
}

// AvailabilityFor returns the availability status for an on-hand quantity.
func AvailabilityFor(quantity int) string {
	if quantity > 0 {
		return domain.AvailabilityInStock
	}
	return domain.AvailabilityOut
}

// cancelledStatuses lists every spelling of the cancelled order state the
// data contains, lowercased.
var cancelledStatuses = map[string]struct{}{
	"đã hủy":    {},
	"da huy":    {},
	"hủy":       {},
	"huy":       {},
	"canceled":  {},
	"cancelled": {},
}

// IsCancelled reports whether an order status denotes the cancelled state,
// matching case-insensitively across the known spellings.
func IsCancelled(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	_, ok := cancelledStatuses[s]
	return ok
}

func maxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
