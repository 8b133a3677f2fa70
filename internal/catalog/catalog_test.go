package catalog

import (
	"testing"

	"ketoan/backend/internal/domain"
)

func TestClassifyActionEntryWinsOverProduct(t *testing.T) {
	price := &domain.PriceEntry{Code: "DV001", Name: "Lắp đặt", Kind: domain.PriceKindAction, UnitPrice: 200000}
	product := &domain.Product{Code: "DV001", Name: "Trùng mã", Quantity: 5, UnitPrice: 100000}

	c := Classify("DV001", price, product)
	if c.Kind != KindAction {
		t.Fatalf("expected action, got %v", c.Kind)
	}
	if !c.HasUnitPrice || c.UnitPrice != 200000 {
		t.Fatalf("expected unit price 200000 from price list, got %d", c.UnitPrice)
	}
}

func TestClassifyProductWhenPriceKindIsNotAction(t *testing.T) {
	price := &domain.PriceEntry{Code: "SP001", Kind: "hàng hóa", UnitPrice: 70000}
	product := &domain.Product{Code: "SP001", Quantity: 50, UnitPrice: 65000}

	c := Classify("SP001", price, product)
	if c.Kind != KindProduct {
		t.Fatalf("expected product, got %v", c.Kind)
	}
	if c.UnitPrice != 65000 {
		t.Fatalf("expected the product unit price, got %d", c.UnitPrice)
	}
}

func TestClassifyUnknownCodeIsUnpricedAction(t *testing.T) {
	c := Classify("XX999", nil, nil)
	if c.Kind != KindAction {
		t.Fatalf("expected action, got %v", c.Kind)
	}
	if c.HasUnitPrice {
		t.Fatalf("expected no unit price for code absent from both tables")
	}
}

func TestClassifyEmptyCode(t *testing.T) {
	c := Classify("  ", nil, nil)
	if c.Kind != KindUnknown {
		t.Fatalf("expected unknown for blank code, got %v", c.Kind)
	}
}

func TestPriceOrderUsesUnitPrice(t *testing.T) {
	c := Classification{Kind: KindProduct, UnitPrice: 65000, HasUnitPrice: true}
	if got := PriceOrder(c, 10, nil); got != 650000 {
		t.Fatalf("expected 650000, got %d", got)
	}
}

func TestPriceOrderExplicitTotalWithoutQuantity(t *testing.T) {
	total := int64(123456)
	c := Classification{Kind: KindAction}
	if got := PriceOrder(c, 0, &total); got != 123456 {
		t.Fatalf("expected explicit total verbatim, got %d", got)
	}
}

func TestPriceOrderDerivesUnitPriceForUnpricedAction(t *testing.T) {
	total := int64(300000)
	c := Classification{Kind: KindAction}
	if got := PriceOrder(c, 3, &total); got != 300000 {
		t.Fatalf("expected derived total 300000, got %d", got)
	}
}

func TestApplyStockDeltaFloorsAtZero(t *testing.T) {
	p := domain.Product{Code: "SP001", Quantity: 3, Availability: domain.AvailabilityInStock}
	ApplyStockDelta(&p, -10)
	if p.Quantity != 0 {
		t.Fatalf("expected quantity floored at 0, got %d", p.Quantity)
	}
	if p.Availability != domain.AvailabilityOut {
		t.Fatalf("expected out-of-stock availability, got %q", p.Availability)
	}

	ApplyStockDelta(&p, 5)
	if p.Quantity != 5 || p.Availability != domain.AvailabilityInStock {
		t.Fatalf("expected 5 in stock, got %d %q", p.Quantity, p.Availability)
	}
}

func TestIsCancelledSpellings(t *testing.T) {
	for _, status := range []string{"đã hủy", "Da Huy", "HỦY", "huy", "Canceled", "CANCELLED", "  cancelled  "} {
		if !IsCancelled(status) {
			t.Fatalf("expected %q to be recognized as cancelled", status)
		}
	}
	for _, status := range []string{"", "hoàn thành", "active", "paid"} {
		if IsCancelled(status) {
			t.Fatalf("expected %q to not be cancelled", status)
		}
	}
}
