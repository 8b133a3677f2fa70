package memory

import (
	"context"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ketoan/backend/internal/catalog"
	"ketoan/backend/internal/domain"
	"ketoan/backend/internal/store"
)

type Store struct {
	mu              sync.RWMutex
	productsByCode  map[string]domain.Product
	pricesByCode    map[string]domain.PriceEntry
	ordersByID      map[string]domain.Order
	orderSeqByID    map[string]int64
	orderSeq        int64
	invoicesByID    map[string]domain.Invoice
	invoiceSeq      int64
	debtsByCustomer map[string]domain.DebtRecord
	customersByID   map[string]domain.Customer
	warehousesByID  map[string]domain.Warehouse
	usersByUsername map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory accounts for dev/demo mode.
// Credentials come from SEED_ADMIN_PASSWORD and SEED_ACCOUNTANT_PASSWORD;
// hardcoded dev defaults are used with a warning when unset. The memory
// store is never used in production (the backend switches to PostgreSQL
// when DATABASE_URL is set).
func seedUsers() map[string]domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	accountantPwd := envOr("SEED_ACCOUNTANT_PASSWORD", "ketoan123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_ACCOUNTANT_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_ACCOUNTANT_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"admin", adminPwd, "admin"},
		{"ketoan", accountantPwd, "accountant"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func New() *Store {
	return &Store{
		productsByCode:  make(map[string]domain.Product),
		pricesByCode:    make(map[string]domain.PriceEntry),
		ordersByID:      make(map[string]domain.Order),
		orderSeqByID:    make(map[string]int64),
		invoicesByID:    make(map[string]domain.Invoice),
		debtsByCustomer: make(map[string]domain.DebtRecord),
		customersByID:   make(map[string]domain.Customer),
		warehousesByID:  make(map[string]domain.Warehouse),
		usersByUsername: seedUsers(),
	}
}

func NewSeeded() *Store {
	s := New()

	products := []domain.Product{
		{Code: "SP001", Name: "Giấy in A4", Group: "văn phòng phẩm", Quantity: 50, UnitPrice: 65000},
		{Code: "SP002", Name: "Mực in laser", Group: "văn phòng phẩm", Quantity: 20, UnitPrice: 450000},
		{Code: "SP003", Name: "Bàn phím cơ", Group: "thiết bị", Quantity: 15, UnitPrice: 1200000},
		{Code: "SP004", Name: "Chuột không dây", Group: "thiết bị", Quantity: 30, UnitPrice: 350000},
		{Code: "SP005", Name: "Ổ cứng SSD 500GB", Group: "linh kiện", Quantity: 8, UnitPrice: 1450000},
	}
	for _, p := range products {
		p.Availability = catalog.AvailabilityFor(p.Quantity)
		s.productsByCode[p.Code] = p
	}

	now := time.Now().UTC()
	prices := []domain.PriceEntry{
		{Code: "DV001", Name: "Lắp đặt máy in", Kind: domain.PriceKindAction, CostPrice: 0, UnitPrice: 200000, CreatedAt: now, UpdatedAt: now},
		{Code: "DV002", Name: "Bảo trì định kỳ", Kind: domain.PriceKindAction, CostPrice: 50000, UnitPrice: 500000, CreatedAt: now, UpdatedAt: now},
		{Code: "SP001", Name: "Giấy in A4", Kind: "hàng hóa", CostPrice: 52000, UnitPrice: 65000, CreatedAt: now, UpdatedAt: now},
	}
	for _, e := range prices {
		s.pricesByCode[e.Code] = e
	}

	return s
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.productsByCode))
	for _, p := range s.productsByCode {
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b domain.Product) int {
		return strings.Compare(a.Code, b.Code)
	})
	return products, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.Code == "" || product.Name == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.productsByCode[product.Code]; exists {
		return nil, store.ErrDuplicateCode
	}

	s.productsByCode[product.Code] = product
	created := product
	return &created, nil
}

func (s *Store) GetProductByCode(_ context.Context, code string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.productsByCode[code]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := product
	return &copied, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.productsByCode[product.Code]; !exists {
		return nil, store.ErrNotFound
	}
	s.productsByCode[product.Code] = product
	updated := product
	return &updated, nil
}

func (s *Store) DeleteProduct(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.productsByCode[code]; !exists {
		return store.ErrNotFound
	}
	delete(s.productsByCode, code)
	return nil
}

func (s *Store) TotalProductQuantity(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, p := range s.productsByCode {
		total += p.Quantity
	}
	return total, nil
}

func (s *Store) ListPrices(_ context.Context) ([]domain.PriceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.PriceEntry, 0, len(s.pricesByCode))
	for _, e := range s.pricesByCode {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b domain.PriceEntry) int {
		return strings.Compare(a.Code, b.Code)
	})
	return entries, nil
}

func (s *Store) CreatePrice(_ context.Context, entry domain.PriceEntry) (*domain.PriceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Code == "" || entry.Name == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.pricesByCode[entry.Code]; exists {
		return nil, store.ErrDuplicateCode
	}

	s.pricesByCode[entry.Code] = entry
	created := entry
	return &created, nil
}

func (s *Store) GetPriceByCode(_ context.Context, code string) (*domain.PriceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.pricesByCode[code]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := entry
	return &copied, nil
}

func (s *Store) UpdatePrice(_ context.Context, entry domain.PriceEntry) (*domain.PriceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pricesByCode[entry.Code]; !exists {
		return nil, store.ErrNotFound
	}
	s.pricesByCode[entry.Code] = entry
	updated := entry
	return &updated, nil
}

func (s *Store) DeletePrice(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pricesByCode[code]; !exists {
		return store.ErrNotFound
	}
	delete(s.pricesByCode, code)
	return nil
}

func (s *Store) ListOrders(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0, len(s.ordersByID))
	for _, o := range s.ordersByID {
		orders = append(orders, o)
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		if c := b.CreatedDate.Compare(a.CreatedDate); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
	return orders, nil
}

func (s *Store) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.ordersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := order
	return &copied, nil
}

func (s *Store) OrderCodeExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.ordersByID {
		if o.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) SearchCompletedOrders(_ context.Context, customer string, query string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer = strings.ToLower(strings.TrimSpace(customer))
	query = strings.ToLower(strings.TrimSpace(query))

	matches := make([]domain.Order, 0)
	for _, o := range s.ordersByID {
		if catalog.IsCancelled(o.Status) {
			continue
		}
		if customer != "" && !strings.Contains(strings.ToLower(o.CustomerName), customer) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(o.Code), query) &&
			!strings.Contains(strings.ToLower(o.CatalogCode), query) {
			continue
		}
		matches = append(matches, o)
	}

	slices.SortFunc(matches, func(a, b domain.Order) int {
		if c := b.CreatedDate.Compare(a.CreatedDate); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
	return matches, nil
}

func (s *Store) ListOrdersByDateRange(_ context.Context, from time.Time, to time.Time) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0)
	for _, o := range s.ordersByID {
		if o.CreatedDate.Before(from) || !o.CreatedDate.Before(to) {
			continue
		}
		orders = append(orders, o)
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		return a.CreatedDate.Compare(b.CreatedDate)
	})
	return orders, nil
}

func (s *Store) FindFirstOrderByCustomer(_ context.Context, customerName string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found    bool
		earliest domain.Order
		seq      int64
	)
	for id, o := range s.ordersByID {
		if o.CustomerName != customerName {
			continue
		}
		if !found || s.orderSeqByID[id] < seq {
			found = true
			earliest = o
			seq = s.orderSeqByID[id]
		}
	}
	if !found {
		return nil, store.ErrNotFound
	}
	copied := earliest
	return &copied, nil
}

// applyAdjustmentsLocked validates every adjustment before mutating anything
// so a failed sufficiency check leaves stock untouched. Caller must hold the
// write lock.
func (s *Store) applyAdjustmentsLocked(adjustments []domain.StockAdjustment) error {
	for _, adj := range adjustments {
		product, exists := s.productsByCode[adj.ProductCode]
		if !exists {
			return store.ErrNotFound
		}
		if adj.CheckSufficient && adj.Delta < 0 && product.Quantity+adj.Delta < 0 {
			return store.ErrInsufficientStock
		}
	}
	for _, adj := range adjustments {
		product := s.productsByCode[adj.ProductCode]
		catalog.ApplyStockDelta(&product, adj.Delta)
		s.productsByCode[adj.ProductCode] = product
	}
	return nil
}

func (s *Store) CreateOrder(_ context.Context, order domain.Order, adjustments []domain.StockAdjustment) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == "" || order.Code == "" {
		return nil, store.ErrInvalidInput
	}
	for _, o := range s.ordersByID {
		if o.Code == order.Code {
			return nil, store.ErrDuplicateCode
		}
	}
	if err := s.applyAdjustmentsLocked(adjustments); err != nil {
		return nil, err
	}

	s.orderSeq++
	s.ordersByID[order.ID] = order
	s.orderSeqByID[order.ID] = s.orderSeq
	created := order
	return &created, nil
}

func (s *Store) UpdateOrder(_ context.Context, order domain.Order, adjustments []domain.StockAdjustment) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.ordersByID[order.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	if order.Code != existing.Code {
		for _, o := range s.ordersByID {
			if o.Code == order.Code {
				return nil, store.ErrDuplicateCode
			}
		}
	}
	if err := s.applyAdjustmentsLocked(adjustments); err != nil {
		return nil, err
	}

	s.ordersByID[order.ID] = order
	updated := order
	return &updated, nil
}

func (s *Store) DeleteOrder(_ context.Context, id string, adjustments []domain.StockAdjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ordersByID[id]; !exists {
		return store.ErrNotFound
	}
	if err := s.applyAdjustmentsLocked(adjustments); err != nil {
		return err
	}

	delete(s.ordersByID, id)
	delete(s.orderSeqByID, id)
	return nil
}

func (s *Store) ListInvoices(_ context.Context) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]domain.Invoice, 0, len(s.invoicesByID))
	for _, inv := range s.invoicesByID {
		invoices = append(invoices, inv)
	}
	sortInvoicesBySeq(invoices)
	return invoices, nil
}

func (s *Store) CreateInvoice(_ context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if invoice.ID == "" || invoice.Number == "" || invoice.CustomerName == "" {
		return nil, store.ErrInvalidInput
	}

	s.invoiceSeq++
	invoice.Seq = s.invoiceSeq
	s.invoicesByID[invoice.ID] = invoice
	created := invoice
	return &created, nil
}

func (s *Store) GetInvoiceByID(_ context.Context, id string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoice, exists := s.invoicesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := invoice
	return &copied, nil
}

func (s *Store) UpdateInvoice(_ context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.invoicesByID[invoice.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	invoice.Seq = existing.Seq
	s.invoicesByID[invoice.ID] = invoice
	updated := invoice
	return &updated, nil
}

func (s *Store) DeleteInvoice(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoicesByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.invoicesByID, id)
	return nil
}

func (s *Store) ListInvoicesByCustomer(_ context.Context, customerName string) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]domain.Invoice, 0)
	for _, inv := range s.invoicesByID {
		if inv.CustomerName != customerName {
			continue
		}
		invoices = append(invoices, inv)
	}
	sortInvoicesBySeq(invoices)
	return invoices, nil
}

func (s *Store) ListInvoicesByDateRange(_ context.Context, from time.Time, to time.Time) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]domain.Invoice, 0)
	for _, inv := range s.invoicesByID {
		if inv.Date.Before(from) || !inv.Date.Before(to) {
			continue
		}
		invoices = append(invoices, inv)
	}
	sortInvoicesBySeq(invoices)
	return invoices, nil
}

func (s *Store) SearchInvoices(_ context.Context, criteria domain.InvoiceSearchRequest) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var from, to time.Time
	var err error
	if criteria.FromDate != "" {
		from, err = time.Parse("2006-01-02", criteria.FromDate)
		if err != nil {
			return nil, store.ErrInvalidInput
		}
	}
	if criteria.ToDate != "" {
		to, err = time.Parse("2006-01-02", criteria.ToDate)
		if err != nil {
			return nil, store.ErrInvalidInput
		}
		to = to.AddDate(0, 0, 1)
	}

	number := strings.ToLower(strings.TrimSpace(criteria.InvoiceNumber))
	customer := strings.ToLower(strings.TrimSpace(criteria.CustomerInfo))

	invoices := make([]domain.Invoice, 0)
	for _, inv := range s.invoicesByID {
		if !from.IsZero() && inv.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !inv.Date.Before(to) {
			continue
		}
		if number != "" && !strings.Contains(strings.ToLower(inv.Number), number) {
			continue
		}
		if customer != "" && !strings.Contains(strings.ToLower(inv.CustomerName), customer) {
			continue
		}
		invoices = append(invoices, inv)
	}
	sortInvoicesBySeq(invoices)
	return invoices, nil
}

func (s *Store) SetInvoicePaymentStatus(_ context.Context, id string, status string, paidAmount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, exists := s.invoicesByID[id]
	if !exists {
		return store.ErrNotFound
	}
	invoice.PaymentStatus = status
	invoice.PaidAmount = paidAmount
	s.invoicesByID[id] = invoice
	return nil
}

func sortInvoicesBySeq(invoices []domain.Invoice) {
	slices.SortFunc(invoices, func(a, b domain.Invoice) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		default:
			return 0
		}
	})
}

func (s *Store) UpsertDebtRecord(_ context.Context, record domain.DebtRecord) (*domain.DebtRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.CustomerName == "" {
		return nil, store.ErrInvalidInput
	}

	now := time.Now().UTC()
	if existing, exists := s.debtsByCustomer[record.CustomerName]; exists {
		record.CreatedAt = existing.CreatedAt
	} else {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	s.debtsByCustomer[record.CustomerName] = record
	upserted := record
	return &upserted, nil
}

func (s *Store) GetDebtRecordByCustomer(_ context.Context, customerName string) (*domain.DebtRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.debtsByCustomer[customerName]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := record
	return &copied, nil
}

func (s *Store) ListDebtRecords(_ context.Context) ([]domain.DebtRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.DebtRecord, 0, len(s.debtsByCustomer))
	for _, r := range s.debtsByCustomer {
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b domain.DebtRecord) int {
		return strings.Compare(a.CustomerName, b.CustomerName)
	})
	return records, nil
}

func (s *Store) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(s.customersByID))
	for _, c := range s.customersByID {
		customers = append(customers, c)
	}
	slices.SortFunc(customers, func(a, b domain.Customer) int {
		return strings.Compare(a.Name, b.Name)
	})
	return customers, nil
}

func (s *Store) CreateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if customer.ID == "" || customer.Name == "" {
		return nil, store.ErrInvalidInput
	}
	s.customersByID[customer.ID] = customer
	created := customer
	return &created, nil
}

func (s *Store) GetCustomerByID(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, exists := s.customersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := customer
	return &copied, nil
}

func (s *Store) UpdateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customersByID[customer.ID]; !exists {
		return nil, store.ErrNotFound
	}
	s.customersByID[customer.ID] = customer
	updated := customer
	return &updated, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customersByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.customersByID, id)
	return nil
}

func (s *Store) ListWarehouses(_ context.Context) ([]domain.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	warehouses := make([]domain.Warehouse, 0, len(s.warehousesByID))
	for _, w := range s.warehousesByID {
		warehouses = append(warehouses, w)
	}
	slices.SortFunc(warehouses, func(a, b domain.Warehouse) int {
		return strings.Compare(a.Code, b.Code)
	})
	return warehouses, nil
}

func (s *Store) CreateWarehouse(_ context.Context, warehouse domain.Warehouse) (*domain.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if warehouse.ID == "" || warehouse.Code == "" || warehouse.Name == "" {
		return nil, store.ErrInvalidInput
	}
	for _, w := range s.warehousesByID {
		if w.Code == warehouse.Code {
			return nil, store.ErrDuplicateCode
		}
	}
	s.warehousesByID[warehouse.ID] = warehouse
	created := warehouse
	return &created, nil
}

func (s *Store) GetWarehouseByID(_ context.Context, id string) (*domain.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	warehouse, exists := s.warehousesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := warehouse
	return &copied, nil
}

func (s *Store) UpdateWarehouse(_ context.Context, warehouse domain.Warehouse) (*domain.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.warehousesByID[warehouse.ID]; !exists {
		return nil, store.ErrNotFound
	}
	s.warehousesByID[warehouse.ID] = warehouse
	updated := warehouse
	return &updated, nil
}

func (s *Store) DeleteWarehouse(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.warehousesByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.warehousesByID, id)
	return nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Username == "" || user.Password == "" {
		return store.ErrInvalidInput
	}
	if _, exists := s.usersByUsername[user.Username]; exists {
		return store.ErrDuplicateCode
	}
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, u := range s.usersByUsername {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return strings.Compare(a.Username, b.Username)
	})
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.usersByUsername[username]
	if !exists {
		return store.ErrNotFound
	}
	user.Password = password
	s.usersByUsername[username] = user
	return nil
}
