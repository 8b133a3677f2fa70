package ledger

import (
	"ketoan/backend/internal/domain"
)

// Summary is the aggregate a customer's invoices reduce to. Remaining is
// always TotalBilled - TotalPaid.
type Summary struct {
	TotalBilled int64
	TotalPaid   int64
	Remaining   int64
	Status      string
}

// Summarize reduces a customer's invoices to their debt aggregate. Paid
// invoices contribute their full amount; partial invoices contribute their
// recorded paid amount.
func Summarize(invoices []domain.Invoice) Summary {
	var billed, paid int64
	for _, inv := range invoices {
		billed += inv.TotalAmount
		switch inv.PaymentStatus {
		case domain.PaymentPaid:
			paid += inv.TotalAmount
		case domain.PaymentPartial:
			paid += inv.PaidAmount
		}
	}

	remaining := billed - paid
	status := domain.DebtStatusOwing
	if remaining <= 0 {
		status = domain.DebtStatusClear
	}

	return Summary{
		TotalBilled: billed,
		TotalPaid:   paid,
		Remaining:   remaining,
		Status:      status,
	}
}

// InvoicePayment is the allocation outcome for one invoice.
type InvoicePayment struct {
	InvoiceID  string
	Status     string
	PaidAmount int64
}

// Allocate walks the invoices in the order given (callers pass them in
// insertion order) and greedily spends the payment budget: an invoice the
// budget fully covers is marked paid, the first it only partially covers is
// marked partial with the residual, and everything after stays unpaid.
func Allocate(invoices []domain.Invoice, amount int64) []InvoicePayment {
	payments := make([]InvoicePayment, 0, len(invoices))
	remaining := amount

	for _, inv := range invoices {
		payment := InvoicePayment{InvoiceID: inv.ID, Status: domain.PaymentUnpaid}
		if remaining >= inv.TotalAmount {
			payment.Status = domain.PaymentPaid
			remaining -= inv.TotalAmount
		} else if remaining > 0 {
			payment.Status = domain.PaymentPartial
			payment.PaidAmount = remaining
			remaining = 0
		}
		payments = append(payments, payment)
	}

	return payments
}
