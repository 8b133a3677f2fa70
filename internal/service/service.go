package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"ketoan/backend/internal/cache"
	"ketoan/backend/internal/catalog"
	"ketoan/backend/internal/domain"
	"ketoan/backend/internal/ledger"
	"ketoan/backend/internal/store"
	"ketoan/backend/internal/xid"
)

// ErrBadDateRange covers malformed report dates, from > to, and ranges wider
// than the 31-day window reports accept.
var ErrBadDateRange = errors.New("invalid date range")

const dateLayout = "2006-01-02"

type Service struct {
	repo      store.Repository
	reports   cache.ReportCache
	reportTTL time.Duration
}

func New(repo store.Repository, reports cache.ReportCache, reportTTL time.Duration) *Service {
	if reports == nil {
		reports = cache.NoopReportCache{}
	}
	if reportTTL <= 0 {
		reportTTL = time.Minute
	}
	return &Service{repo: repo, reports: reports, reportTTL: reportTTL}
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", store.ErrInvalidInput, value)
	}
	return t.UTC(), nil
}

// classify resolves a catalog code against the price list and product table.
// Missing rows are not errors here; they just narrow the classification.
func (s *Service) classify(ctx context.Context, code string) (catalog.Classification, error) {
	if strings.TrimSpace(code) == "" {
		return catalog.Classify(code, nil, nil), nil
	}

	price, err := s.repo.GetPriceByCode(ctx, code)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return catalog.Classification{}, err
	}
	product, err := s.repo.GetProductByCode(ctx, code)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return catalog.Classification{}, err
	}
	return catalog.Classify(code, price, product), nil
}

// --- products ---

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: code and name are required", store.ErrInvalidInput)
	}
	if req.Quantity < 0 || req.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: quantity and unit price must be non-negative", store.ErrInvalidInput)
	}

	product := domain.Product{
		Code:         strings.TrimSpace(req.Code),
		Name:         strings.TrimSpace(req.Name),
		Group:        req.Group,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Availability: catalog.AvailabilityFor(req.Quantity),
		Description:  req.Description,
	}
	return s.repo.CreateProduct(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, code string) (*domain.Product, error) {
	return s.repo.GetProductByCode(ctx, code)
}

func (s *Service) UpdateProduct(ctx context.Context, code string, req domain.ProductUpdateRequest) (*domain.Product, error) {
	product, err := s.repo.GetProductByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Group != nil {
		product.Group = *req.Group
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must be non-negative", store.ErrInvalidInput)
		}
		product.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	product.Availability = catalog.AvailabilityFor(product.Quantity)

	return s.repo.UpdateProduct(ctx, *product)
}

func (s *Service) DeleteProduct(ctx context.Context, code string) error {
	return s.repo.DeleteProduct(ctx, code)
}

// --- price list ---

func (s *Service) ListPrices(ctx context.Context) ([]domain.PriceEntry, error) {
	return s.repo.ListPrices(ctx)
}

func (s *Service) CreatePrice(ctx context.Context, req domain.PriceCreateRequest) (*domain.PriceEntry, error) {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: code and name are required", store.ErrInvalidInput)
	}

	now := time.Now().UTC()
	entry := domain.PriceEntry{
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		Kind:      req.Kind,
		CostPrice: req.CostPrice,
		UnitPrice: req.UnitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.CreatePrice(ctx, entry)
}

func (s *Service) GetPrice(ctx context.Context, code string) (*domain.PriceEntry, error) {
	return s.repo.GetPriceByCode(ctx, code)
}

func (s *Service) UpdatePrice(ctx context.Context, code string, req domain.PriceUpdateRequest) (*domain.PriceEntry, error) {
	entry, err := s.repo.GetPriceByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Kind != nil {
		entry.Kind = *req.Kind
	}
	if req.CostPrice != nil {
		entry.CostPrice = *req.CostPrice
	}
	if req.UnitPrice != nil {
		entry.UnitPrice = *req.UnitPrice
	}
	entry.UpdatedAt = time.Now().UTC()

	return s.repo.UpdatePrice(ctx, *entry)
}

func (s *Service) DeletePrice(ctx context.Context, code string) error {
	return s.repo.DeletePrice(ctx, code)
}

// --- orders ---

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *Service) OrderCodeExists(ctx context.Context, code string) (bool, error) {
	if strings.TrimSpace(code) == "" {
		return false, fmt.Errorf("%w: code is required", store.ErrInvalidInput)
	}
	return s.repo.OrderCodeExists(ctx, code)
}

func (s *Service) CreateOrder(ctx context.Context, req domain.OrderCreateRequest) (*domain.Order, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: order code is required", store.ErrInvalidInput)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", store.ErrInvalidInput)
	}

	exists, err := s.repo.OrderCodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, store.ErrDuplicateCode
	}

	createdDate := time.Now().UTC()
	if strings.TrimSpace(req.CreatedDate) != "" {
		createdDate, err = parseDate(req.CreatedDate)
		if err != nil {
			return nil, err
		}
	}

	cls, err := s.classify(ctx, req.CatalogCode)
	if err != nil {
		return nil, err
	}
	cancelled := catalog.IsCancelled(req.Status)

	order := domain.Order{
		ID:            xid.New("ord"),
		Code:          code,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CatalogCode:   strings.TrimSpace(req.CatalogCode),
		CreatedDate:   createdDate,
		TaxOfficeCode: req.TaxOfficeCode,
		Quantity:      req.Quantity,
		TotalAmount:   catalog.PriceOrder(cls, req.Quantity, req.TotalAmount),
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
	}

	var adjustments []domain.StockAdjustment
	if cls.Kind == catalog.KindProduct && !cancelled {
		adjustments = append(adjustments, domain.StockAdjustment{
			ProductCode:     order.CatalogCode,
			Delta:           -order.Quantity,
			CheckSufficient: true,
		})
	}

	return s.repo.CreateOrder(ctx, order, adjustments)
}

func (s *Service) UpdateOrder(ctx context.Context, id string, req domain.OrderUpdateRequest) (*domain.Order, error) {
	existing, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if req.Code != nil {
		merged.Code = strings.TrimSpace(*req.Code)
	}
	if req.CustomerName != nil {
		merged.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CatalogCode != nil {
		merged.CatalogCode = strings.TrimSpace(*req.CatalogCode)
	}
	if req.CreatedDate != nil {
		merged.CreatedDate, err = parseDate(*req.CreatedDate)
		if err != nil {
			return nil, err
		}
	}
	if req.TaxOfficeCode != nil {
		merged.TaxOfficeCode = *req.TaxOfficeCode
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must be non-negative", store.ErrInvalidInput)
		}
		merged.Quantity = *req.Quantity
	}
	if req.PaymentMethod != nil {
		merged.PaymentMethod = *req.PaymentMethod
	}
	if req.Status != nil {
		merged.Status = *req.Status
	}

	oldCancelled := catalog.IsCancelled(existing.Status)
	newCancelled := catalog.IsCancelled(merged.Status)

	oldCls, err := s.classify(ctx, existing.CatalogCode)
	if err != nil {
		return nil, err
	}
	newCls, err := s.classify(ctx, merged.CatalogCode)
	if err != nil {
		return nil, err
	}

	// An unpriced code keeps its stored total when the update does not
	// resend one; otherwise repricing would zero it.
	total := req.TotalAmount
	if total == nil && !newCls.HasUnitPrice {
		total = &existing.TotalAmount
	}

	var adjustments []domain.StockAdjustment
	switch {
	case !oldCancelled && !newCancelled:
		if existing.CatalogCode == merged.CatalogCode {
			if newCls.Kind == catalog.KindProduct {
				diff := merged.Quantity - existing.Quantity
				if diff != 0 {
					adjustments = append(adjustments, domain.StockAdjustment{
						ProductCode:     merged.CatalogCode,
						Delta:           -diff,
						CheckSufficient: diff > 0,
					})
				}
			}
		} else {
			if oldCls.Kind == catalog.KindProduct {
				adjustments = append(adjustments, domain.StockAdjustment{
					ProductCode: existing.CatalogCode,
					Delta:       existing.Quantity,
				})
			}
			if newCls.Kind == catalog.KindProduct {
				adjustments = append(adjustments, domain.StockAdjustment{
					ProductCode:     merged.CatalogCode,
					Delta:           -merged.Quantity,
					CheckSufficient: true,
				})
			}
		}
		merged.TotalAmount = catalog.PriceOrder(newCls, merged.Quantity, total)

	case !oldCancelled && newCancelled:
		// Cancellation returns reserved stock and freezes the total.
		if oldCls.Kind == catalog.KindProduct {
			adjustments = append(adjustments, domain.StockAdjustment{
				ProductCode: existing.CatalogCode,
				Delta:       existing.Quantity,
			})
		}
		merged.TotalAmount = existing.TotalAmount

	case oldCancelled && !newCancelled:
		// Reactivation reserves stock again and must pass the same
		// sufficiency check as a fresh create.
		if newCls.Kind == catalog.KindProduct {
			adjustments = append(adjustments, domain.StockAdjustment{
				ProductCode:     merged.CatalogCode,
				Delta:           -merged.Quantity,
				CheckSufficient: true,
			})
		}
		merged.TotalAmount = catalog.PriceOrder(newCls, merged.Quantity, total)

	default:
		if req.TotalAmount != nil {
			merged.TotalAmount = *req.TotalAmount
		}
	}

	return s.repo.UpdateOrder(ctx, merged, adjustments)
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	existing, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}

	cls, err := s.classify(ctx, existing.CatalogCode)
	if err != nil {
		return err
	}

	// A cancelled order already returned its stock on cancellation, so only
	// active product orders restore on delete.
	var adjustments []domain.StockAdjustment
	if cls.Kind == catalog.KindProduct && !catalog.IsCancelled(existing.Status) {
		adjustments = append(adjustments, domain.StockAdjustment{
			ProductCode: existing.CatalogCode,
			Delta:       existing.Quantity,
		})
	}

	if err := s.repo.DeleteOrder(ctx, id, adjustments); err != nil {
		return err
	}
	log.Printf("[service] order %s (%s) deleted by %s", existing.Code, id, actorName(ctx))
	return nil
}

func (s *Service) SearchOrders(ctx context.Context, customer string, query string) ([]domain.OrderSearchRow, error) {
	orders, err := s.repo.SearchCompletedOrders(ctx, customer, query)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.OrderSearchRow, 0, len(orders))
	for _, o := range orders {
		cls, err := s.classify(ctx, o.CatalogCode)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.OrderSearchRow{
			ID:           o.ID,
			Code:         o.Code,
			TotalAmount:  o.TotalAmount,
			Status:       o.Status,
			CatalogCode:  o.CatalogCode,
			InferredKind: cls.Kind.String(),
		})
	}
	return rows, nil
}

// --- invoices ---

func normalizePaymentStatus(status string, paidAmount int64) (string, int64, error) {
	switch strings.TrimSpace(status) {
	case "", domain.PaymentUnpaid:
		return domain.PaymentUnpaid, 0, nil
	case domain.PaymentPaid:
		return domain.PaymentPaid, 0, nil
	case domain.PaymentPartial:
		if paidAmount < 0 {
			return "", 0, fmt.Errorf("%w: partial paid amount must be non-negative", store.ErrInvalidInput)
		}
		return domain.PaymentPartial, paidAmount, nil
	default:
		return "", 0, fmt.Errorf("%w: unknown payment status %q", store.ErrInvalidInput, status)
	}
}

func (s *Service) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.repo.GetInvoiceByID(ctx, id)
}

func (s *Service) CreateInvoice(ctx context.Context, req domain.InvoiceCreateRequest) (*domain.Invoice, error) {
	if strings.TrimSpace(req.Number) == "" || strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("%w: number and customer name are required", store.ErrInvalidInput)
	}
	if req.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: total amount must be non-negative", store.ErrInvalidInput)
	}

	status, paidAmount, err := normalizePaymentStatus(req.PaymentStatus, req.PaidAmount)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if strings.TrimSpace(req.Date) != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			return nil, err
		}
	}

	invoice := domain.Invoice{
		ID:            xid.New("inv"),
		Number:        strings.TrimSpace(req.Number),
		Date:          date,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		TotalAmount:   req.TotalAmount,
		Type:          req.Type,
		PaymentStatus: status,
		PaidAmount:    paidAmount,
	}

	created, err := s.repo.CreateInvoice(ctx, invoice)
	if err != nil {
		return nil, err
	}
	s.syncDebtNonFatal(ctx, created.CustomerName)
	return created, nil
}

func (s *Service) UpdateInvoice(ctx context.Context, id string, req domain.InvoiceUpdateRequest) (*domain.Invoice, error) {
	existing, err := s.repo.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if req.Number != nil {
		merged.Number = strings.TrimSpace(*req.Number)
	}
	if req.Date != nil {
		merged.Date, err = parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
	}
	if req.CustomerName != nil {
		merged.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.TotalAmount != nil {
		if *req.TotalAmount < 0 {
			return nil, fmt.Errorf("%w: total amount must be non-negative", store.ErrInvalidInput)
		}
		merged.TotalAmount = *req.TotalAmount
	}
	if req.Type != nil {
		merged.Type = *req.Type
	}
	if req.PaymentStatus != nil || req.PaidAmount != nil {
		status := merged.PaymentStatus
		if req.PaymentStatus != nil {
			status = *req.PaymentStatus
		}
		paid := merged.PaidAmount
		if req.PaidAmount != nil {
			paid = *req.PaidAmount
		}
		merged.PaymentStatus, merged.PaidAmount, err = normalizePaymentStatus(status, paid)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateInvoice(ctx, merged)
	if err != nil {
		return nil, err
	}

	// A customer rename strands the old aggregate unless both sides resync.
	s.syncDebtNonFatal(ctx, existing.CustomerName)
	if updated.CustomerName != existing.CustomerName {
		s.syncDebtNonFatal(ctx, updated.CustomerName)
	}
	return updated, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	existing, err := s.repo.GetInvoiceByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		return err
	}
	s.syncDebtNonFatal(ctx, existing.CustomerName)
	return nil
}

func (s *Service) SearchInvoices(ctx context.Context, criteria domain.InvoiceSearchRequest) ([]domain.Invoice, error) {
	return s.repo.SearchInvoices(ctx, criteria)
}

// NextInvoiceNumber proposes the next number in the HD-<n> series by scanning
// existing invoices for the highest suffix. Numbers outside the series are
// ignored.
func (s *Service) NextInvoiceNumber(ctx context.Context) (string, error) {
	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return "", err
	}

	max := 0
	for _, inv := range invoices {
		rest, ok := strings.CutPrefix(inv.Number, "HD-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("HD-%d", max+1), nil
}

// --- debt ledger ---

// SyncCustomerDebt recomputes the customer's debt aggregate in full from
// their invoices. A customer with no invoices is a no-op and leaves no
// record behind.
func (s *Service) SyncCustomerDebt(ctx context.Context, customerName string) (*domain.DebtRecord, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", store.ErrInvalidInput)
	}

	invoices, err := s.repo.ListInvoicesByCustomer(ctx, customerName)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}

	sum := ledger.Summarize(invoices)
	record := domain.DebtRecord{
		CustomerName: customerName,
		TotalBilled:  sum.TotalBilled,
		TotalPaid:    sum.TotalPaid,
		Remaining:    sum.Remaining,
		Status:       sum.Status,
	}
	if sum.TotalPaid > 0 {
		now := time.Now().UTC()
		record.LastPaymentAt = &now
	}

	return s.repo.UpsertDebtRecord(ctx, record)
}

// syncDebtNonFatal keeps invoice writes committed even when the ledger sync
// behind them fails; the failure is only logged.
func (s *Service) syncDebtNonFatal(ctx context.Context, customerName string) {
	if strings.TrimSpace(customerName) == "" {
		return
	}
	if _, err := s.SyncCustomerDebt(ctx, customerName); err != nil {
		log.Printf("[service] WARN: debt sync for %q failed: %v", customerName, err)
	}
}

// AllocatePayment spends a payment across the customer's invoices in
// insertion order and rewrites the debt aggregate from the allocation
// outcome.
func (s *Service) AllocatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentResult, error) {
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", store.ErrInvalidInput)
	}
	if req.PaidAmount < 0 {
		return nil, fmt.Errorf("%w: paid amount must be non-negative", store.ErrInvalidInput)
	}

	invoices, err := s.repo.ListInvoicesByCustomer(ctx, customerName)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, store.ErrNotFound
	}

	payments := ledger.Allocate(invoices, req.PaidAmount)
	for _, p := range payments {
		if err := s.repo.SetInvoicePaymentStatus(ctx, p.InvoiceID, p.Status, p.PaidAmount); err != nil {
			return nil, err
		}
	}

	var billed, paid int64
	for i, inv := range invoices {
		billed += inv.TotalAmount
		switch payments[i].Status {
		case domain.PaymentPaid:
			paid += inv.TotalAmount
		case domain.PaymentPartial:
			paid += payments[i].PaidAmount
		}
	}

	remaining := billed - paid
	status := domain.DebtStatusOwing
	if remaining <= 0 {
		status = domain.DebtStatusClear
	}
	record := domain.DebtRecord{
		CustomerName: customerName,
		TotalBilled:  billed,
		TotalPaid:    paid,
		Remaining:    remaining,
		Status:       status,
	}
	if paid > 0 {
		now := time.Now().UTC()
		record.LastPaymentAt = &now
	}
	if _, err := s.repo.UpsertDebtRecord(ctx, record); err != nil {
		return nil, err
	}
	log.Printf("[service] payment of %d for %q recorded by %s", req.PaidAmount, customerName, actorName(ctx))

	return &domain.PaymentResult{
		CustomerName: customerName,
		TotalBilled:  billed,
		TotalPaid:    paid,
		Remaining:    remaining,
	}, nil
}

// --- reports ---

func parseReportRange(fromStr string, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, strings.TrimSpace(fromStr))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad from_date %q", ErrBadDateRange, fromStr)
	}
	to, err := time.Parse(dateLayout, strings.TrimSpace(toStr))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad to_date %q", ErrBadDateRange, toStr)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from_date after to_date", ErrBadDateRange)
	}
	if days := int(to.Sub(from).Hours() / 24); days > 31 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range spans %d days, maximum is 31", ErrBadDateRange, days)
	}
	return from.UTC(), to.UTC(), nil
}

func rangeDays(from time.Time, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}

func (s *Service) RevenueByDate(ctx context.Context, fromStr string, toStr string) (*domain.RevenueByDateReport, error) {
	from, to, err := parseReportRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	cacheKey := "report:revenue-by-date:" + fromStr + ":" + toStr
	var cached domain.RevenueByDateReport
	if hit, err := s.reports.Get(ctx, cacheKey, &cached); err != nil {
		log.Printf("[service] WARN: report cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	invoices, err := s.repo.ListInvoicesByDateRange(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	remaining, err := s.repo.TotalProductQuantity(ctx)
	if err != nil {
		return nil, err
	}

	days := rangeDays(from, to)
	columns := make([]domain.RevenueDay, 0, days)
	dayIndex := make(map[string]int, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		dayIndex[key] = len(columns)
		columns = append(columns, domain.RevenueDay{
			Date:              d.Format("02/01/2006"),
			DateKey:           key,
			QuantityRemaining: remaining,
		})
	}

	productRows := make(map[string]*domain.ProductRevenueRow)
	var totalRevenue int64
	totalQuantity := 0

	for _, inv := range invoices {
		idx, ok := dayIndex[inv.Date.Format(dateLayout)]
		if !ok {
			continue
		}
		columns[idx].Revenue += inv.TotalAmount
		totalRevenue += inv.TotalAmount

		order, err := s.repo.FindFirstOrderByCustomer(ctx, inv.CustomerName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}

		columns[idx].QuantitySold += order.Quantity
		totalQuantity += order.Quantity

		name, group, err := s.describeCatalogCode(ctx, order.CatalogCode)
		if err != nil {
			return nil, err
		}
		row, ok := productRows[name]
		if !ok {
			row = &domain.ProductRevenueRow{
				ProductName:  name,
				ProductGroup: group,
				FromDate:     fromStr,
				ToDate:       toStr,
			}
			productRows[name] = row
		}
		row.Revenue += inv.TotalAmount
		row.QuantitySold += order.Quantity
	}

	productData := make([]domain.ProductRevenueRow, 0, len(productRows))
	for _, row := range productRows {
		productData = append(productData, *row)
	}
	sort.Slice(productData, func(i, j int) bool {
		if productData[i].Revenue != productData[j].Revenue {
			return productData[i].Revenue > productData[j].Revenue
		}
		return productData[i].ProductName < productData[j].ProductName
	})

	report := &domain.RevenueByDateReport{
		Columns:     columns,
		ProductData: productData,
		Summary: domain.RevenueSummary{
			TotalRevenue:           totalRevenue,
			TotalQuantitySold:      totalQuantity,
			TotalQuantityRemaining: remaining,
			DateRange: domain.DateRange{
				FromDate:  fromStr,
				ToDate:    toStr,
				TotalDays: days,
			},
		},
	}

	if err := s.reports.Set(ctx, cacheKey, report, s.reportTTL); err != nil {
		log.Printf("[service] WARN: report cache write failed: %v", err)
	}
	return report, nil
}

// describeCatalogCode resolves a display name and group label for a catalog
// code: products carry their own group, price-list-only codes fall under
// "DV", and unknown codes land in "uncategorized".
func (s *Service) describeCatalogCode(ctx context.Context, code string) (string, string, error) {
	cls, err := s.classify(ctx, code)
	if err != nil {
		return "", "", err
	}
	switch {
	case cls.Kind == catalog.KindProduct:
		group := cls.Product.Group
		if group == "" {
			group = "uncategorized"
		}
		return cls.Product.Name, group, nil
	case cls.Price != nil:
		return cls.Price.Name, "DV", nil
	case code != "":
		return code, "uncategorized", nil
	default:
		return "unknown", "uncategorized", nil
	}
}

// DebtReport aggregates all invoices by customer in memory; it deliberately
// does not read the persisted debt records.
func (s *Service) DebtReport(ctx context.Context) ([]domain.DebtReportRow, error) {
	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[string][]domain.Invoice)
	for _, inv := range invoices {
		byCustomer[inv.CustomerName] = append(byCustomer[inv.CustomerName], inv)
	}

	rows := make([]domain.DebtReportRow, 0, len(byCustomer))
	for name, invs := range byCustomer {
		sum := ledger.Summarize(invs)
		rows = append(rows, domain.DebtReportRow{
			CustomerName: name,
			TotalBilled:  sum.TotalBilled,
			TotalPaid:    sum.TotalPaid,
			Remaining:    sum.Remaining,
			Status:       sum.Status,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerName < rows[j].CustomerName })
	return rows, nil
}

// DebtByDate reads the persisted debt records. The date range is validated
// but does not filter the result; the aggregates are customer-lifetime
// totals, not per-period ones.
func (s *Service) DebtByDate(ctx context.Context, fromStr string, toStr string) ([]domain.DebtReportRow, error) {
	if _, _, err := parseReportRange(fromStr, toStr); err != nil {
		return nil, err
	}

	records, err := s.repo.ListDebtRecords(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.DebtReportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, domain.DebtReportRow{
			CustomerName: r.CustomerName,
			TotalBilled:  r.TotalBilled,
			TotalPaid:    r.TotalPaid,
			Remaining:    r.Remaining,
			Status:       r.Status,
		})
	}
	return rows, nil
}

func (s *Service) RevenueByProduct(ctx context.Context, fromStr string, toStr string) (*domain.RevenueByProductReport, error) {
	from, to, err := parseReportRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	cacheKey := "report:revenue-by-product:" + fromStr + ":" + toStr
	var cached domain.RevenueByProductReport
	if hit, err := s.reports.Get(ctx, cacheKey, &cached); err != nil {
		log.Printf("[service] WARN: report cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	orders, err := s.repo.ListOrdersByDateRange(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	type bucket struct {
		name     string
		group    string
		quantity int
		revenue  int64
	}
	buckets := make(map[string]*bucket)
	for _, o := range orders {
		if catalog.IsCancelled(o.Status) {
			continue
		}
		name, group, err := s.describeCatalogCode(ctx, o.CatalogCode)
		if err != nil {
			return nil, err
		}
		b, ok := buckets[o.CatalogCode]
		if !ok {
			b = &bucket{name: name, group: group}
			buckets[o.CatalogCode] = b
		}
		b.quantity += o.Quantity
		b.revenue += o.TotalAmount
	}

	rows := make([]domain.ProductSalesRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, domain.ProductSalesRow{
			Name:     b.name,
			Group:    b.group,
			Quantity: b.quantity,
			Revenue:  b.revenue,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].Name < rows[j].Name
	})

	chart := domain.ChartData{
		Labels:  make([]string, 0, len(rows)),
		Revenue: make([]int64, 0, len(rows)),
	}
	var totalRevenue int64
	totalQuantity := 0
	for i := range rows {
		rows[i].Index = i + 1
		chart.Labels = append(chart.Labels, rows[i].Name)
		chart.Revenue = append(chart.Revenue, rows[i].Revenue)
		totalRevenue += rows[i].Revenue
		totalQuantity += rows[i].Quantity
	}

	report := &domain.RevenueByProductReport{
		Products: rows,
		Chart:    chart,
		Summary: domain.ProductSalesSummary{
			TotalRevenue:  totalRevenue,
			TotalQuantity: totalQuantity,
			DateRange: domain.DateRange{
				FromDate:  fromStr,
				ToDate:    toStr,
				TotalDays: rangeDays(from, to),
			},
		},
	}

	if err := s.reports.Set(ctx, cacheKey, report, s.reportTTL); err != nil {
		log.Printf("[service] WARN: report cache write failed: %v", err)
	}
	return report, nil
}

// --- customers ---

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) CreateCustomer(ctx context.Context, req domain.CustomerCreateRequest) (*domain.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", store.ErrInvalidInput)
	}

	customer := domain.Customer{
		ID:            xid.New("cus"),
		Name:          strings.TrimSpace(req.Name),
		DebitAccount:  req.DebitAccount,
		CreditAccount: req.CreditAccount,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Active:        true,
	}
	return s.repo.CreateCustomer(ctx, customer)
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetCustomerByID(ctx, id)
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, req domain.CustomerUpdateRequest) (*domain.Customer, error) {
	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.DebitAccount != nil {
		customer.DebitAccount = *req.DebitAccount
	}
	if req.CreditAccount != nil {
		customer.CreditAccount = *req.CreditAccount
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Active != nil {
		customer.Active = *req.Active
	}

	return s.repo.UpdateCustomer(ctx, *customer)
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	return s.repo.DeleteCustomer(ctx, id)
}

// --- warehouses ---

func (s *Service) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	return s.repo.ListWarehouses(ctx)
}

func (s *Service) CreateWarehouse(ctx context.Context, req domain.WarehouseCreateRequest) (*domain.Warehouse, error) {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: code and name are required", store.ErrInvalidInput)
	}

	warehouse := domain.Warehouse{
		ID:           xid.New("wh"),
		Code:         strings.TrimSpace(req.Code),
		Name:         strings.TrimSpace(req.Name),
		Address:      req.Address,
		ProductCount: req.ProductCount,
		Status:       domain.WarehouseStatusActive,
		Phone:        req.Phone,
		ProductGroup: req.ProductGroup,
		Description:  req.Description,
	}
	return s.repo.CreateWarehouse(ctx, warehouse)
}

func (s *Service) GetWarehouse(ctx context.Context, id string) (*domain.Warehouse, error) {
	return s.repo.GetWarehouseByID(ctx, id)
}

func (s *Service) UpdateWarehouse(ctx context.Context, id string, req domain.WarehouseUpdateRequest) (*domain.Warehouse, error) {
	warehouse, err := s.repo.GetWarehouseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		warehouse.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		warehouse.Address = *req.Address
	}
	if req.ProductCount != nil {
		warehouse.ProductCount = *req.ProductCount
	}
	if req.Status != nil {
		warehouse.Status = *req.Status
	}
	if req.Phone != nil {
		warehouse.Phone = *req.Phone
	}
	if req.ProductGroup != nil {
		warehouse.ProductGroup = *req.ProductGroup
	}
	if req.Description != nil {
		warehouse.Description = *req.Description
	}

	return s.repo.UpdateWarehouse(ctx, *warehouse)
}

func (s *Service) DeleteWarehouse(ctx context.Context, id string) error {
	return s.repo.DeleteWarehouse(ctx, id)
}
