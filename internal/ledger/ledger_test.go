package ledger

import (
	"testing"

	"ketoan/backend/internal/domain"
)

func TestSummarizeMixedStatuses(t *testing.T) {
	invoices := []domain.Invoice{
		{TotalAmount: 100000, PaymentStatus: domain.PaymentPaid},
		{TotalAmount: 200000, PaymentStatus: domain.PaymentPartial, PaidAmount: 50000},
		{TotalAmount: 300000, PaymentStatus: domain.PaymentUnpaid},
	}

	sum := Summarize(invoices)
	if sum.TotalBilled != 600000 {
		t.Fatalf("expected billed 600000, got %d", sum.TotalBilled)
	}
	if sum.TotalPaid != 150000 {
		t.Fatalf("expected paid 150000, got %d", sum.TotalPaid)
	}
	if sum.Remaining != 450000 {
		t.Fatalf("expected remaining 450000, got %d", sum.Remaining)
	}
	if sum.Status != domain.DebtStatusOwing {
		t.Fatalf("expected owing status, got %q", sum.Status)
	}
}

func TestSummarizeClearWhenFullyPaid(t *testing.T) {
	invoices := []domain.Invoice{
		{TotalAmount: 100000, PaymentStatus: domain.PaymentPaid},
	}

	sum := Summarize(invoices)
	if sum.Remaining != 0 || sum.Status != domain.DebtStatusClear {
		t.Fatalf("expected clear with 0 remaining, got %d %q", sum.Remaining, sum.Status)
	}
}

func TestAllocateExactPrefix(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: "a", TotalAmount: 100000},
		{ID: "b", TotalAmount: 200000},
		{ID: "c", TotalAmount: 300000},
	}

	payments := Allocate(invoices, 300000)
	if payments[0].Status != domain.PaymentPaid || payments[1].Status != domain.PaymentPaid {
		t.Fatalf("expected first two invoices paid, got %v", payments)
	}
	if payments[2].Status != domain.PaymentUnpaid {
		t.Fatalf("expected third invoice unpaid, got %v", payments[2])
	}
}

func TestAllocatePartialResidual(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: "a", TotalAmount: 100000},
		{ID: "b", TotalAmount: 200000},
	}

	payments := Allocate(invoices, 150000)
	if payments[0].Status != domain.PaymentPaid {
		t.Fatalf("expected first invoice paid, got %v", payments[0])
	}
	if payments[1].Status != domain.PaymentPartial || payments[1].PaidAmount != 50000 {
		t.Fatalf("expected second invoice partial 50000, got %v", payments[1])
	}
}

func TestAllocateZeroBudgetResetsToUnpaid(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: "a", TotalAmount: 100000, PaymentStatus: domain.PaymentPaid},
	}

	payments := Allocate(invoices, 0)
	if payments[0].Status != domain.PaymentUnpaid || payments[0].PaidAmount != 0 {
		t.Fatalf("expected unpaid reset, got %v", payments[0])
	}
}
