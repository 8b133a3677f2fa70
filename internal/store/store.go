package store

import (
	"context"
	"errors"
	"time"

	"ketoan/backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateCode     = errors.New("duplicate code")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidInput      = errors.New("invalid input")
)

// Repository is the persistence contract. Order lifecycle methods take the
// order row together with the stock adjustments the transition implies and
// commit both in a single transaction; a sufficiency check failing inside
// that transaction aborts the whole operation with ErrInsufficientStock.
// Date-range queries treat the range as half-open: [from, to).
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	GetProductByCode(ctx context.Context, code string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, code string) error
	TotalProductQuantity(ctx context.Context) (int, error)

	ListPrices(ctx context.Context) ([]domain.PriceEntry, error)
	CreatePrice(ctx context.Context, entry domain.PriceEntry) (*domain.PriceEntry, error)
	GetPriceByCode(ctx context.Context, code string) (*domain.PriceEntry, error)
	UpdatePrice(ctx context.Context, entry domain.PriceEntry) (*domain.PriceEntry, error)
	DeletePrice(ctx context.Context, code string) error

	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	OrderCodeExists(ctx context.Context, code string) (bool, error)
	SearchCompletedOrders(ctx context.Context, customer string, query string) ([]domain.Order, error)
	ListOrdersByDateRange(ctx context.Context, from time.Time, to time.Time) ([]domain.Order, error)
	FindFirstOrderByCustomer(ctx context.Context, customerName string) (*domain.Order, error)
	CreateOrder(ctx context.Context, order domain.Order, adjustments []domain.StockAdjustment) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order domain.Order, adjustments []domain.StockAdjustment) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string, adjustments []domain.StockAdjustment) error

	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	CreateInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoicesByCustomer(ctx context.Context, customerName string) ([]domain.Invoice, error)
	ListInvoicesByDateRange(ctx context.Context, from time.Time, to time.Time) ([]domain.Invoice, error)
	SearchInvoices(ctx context.Context, criteria domain.InvoiceSearchRequest) ([]domain.Invoice, error)
	SetInvoicePaymentStatus(ctx context.Context, id string, status string, paidAmount int64) error

	UpsertDebtRecord(ctx context.Context, record domain.DebtRecord) (*domain.DebtRecord, error)
	GetDebtRecordByCustomer(ctx context.Context, customerName string) (*domain.DebtRecord, error)
	ListDebtRecords(ctx context.Context) ([]domain.DebtRecord, error)

	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (*domain.Warehouse, error)
	GetWarehouseByID(ctx context.Context, id string) (*domain.Warehouse, error)
	UpdateWarehouse(ctx context.Context, warehouse domain.Warehouse) (*domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id string) error

	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUserPassword(ctx context.Context, username string, password string) error
}
