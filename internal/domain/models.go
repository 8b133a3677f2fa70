package domain

import "time"

// Product is a stock-tracked catalog entry. Availability is derived from
// Quantity and must never disagree with it.
type Product struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Group        string `json:"group"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	Availability string `json:"availability"`
	Description  string `json:"description,omitempty"`
}

type ProductCreateRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Description string `json:"description"`
}

type ProductUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Group       *string `json:"group,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	UnitPrice   *int64  `json:"unit_price,omitempty"`
	Description *string `json:"description,omitempty"`
}

// PriceEntry is a non-stock price-list row. Entries of kind "action" bill as
// services and never touch inventory.
type PriceEntry struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CostPrice int64     `json:"cost_price"`
	UnitPrice int64     `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PriceCreateRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	CostPrice int64  `json:"cost_price"`
	UnitPrice int64  `json:"unit_price"`
}

type PriceUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Kind      *string `json:"kind,omitempty"`
	CostPrice *int64  `json:"cost_price,omitempty"`
	UnitPrice *int64  `json:"unit_price,omitempty"`
}

// Order references a catalog entry by code; CustomerName is free text and is
// matched against Invoice.CustomerName by exact string equality.
type Order struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	CustomerName  string    `json:"customer_name"`
	CatalogCode   string    `json:"catalog_code"`
	CreatedDate   time.Time `json:"created_date"`
	TaxOfficeCode string    `json:"tax_office_code,omitempty"`
	Quantity      int       `json:"quantity"`
	TotalAmount   int64     `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
}

type OrderCreateRequest struct {
	Code          string `json:"code"`
	CustomerName  string `json:"customer_name"`
	CatalogCode   string `json:"catalog_code"`
	CreatedDate   string `json:"created_date"`
	TaxOfficeCode string `json:"tax_office_code"`
	Quantity      int    `json:"quantity"`
	TotalAmount   *int64 `json:"total_amount,omitempty"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
}

type OrderUpdateRequest struct {
	Code          *string `json:"code,omitempty"`
	CustomerName  *string `json:"customer_name,omitempty"`
	CatalogCode   *string `json:"catalog_code,omitempty"`
	CreatedDate   *string `json:"created_date,omitempty"`
	TaxOfficeCode *string `json:"tax_office_code,omitempty"`
	Quantity      *int    `json:"quantity,omitempty"`
	TotalAmount   *int64  `json:"total_amount,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// OrderSearchRow annotates a completed order with the catalog kind inferred
// from its catalog code.
type OrderSearchRow struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	TotalAmount  int64  `json:"total_amount"`
	Status       string `json:"status"`
	CatalogCode  string `json:"catalog_code"`
	InferredKind string `json:"inferred_kind"`
}

// Invoice carries a structured payment status: PaymentStatus is one of
// unpaid/paid/partial, and PaidAmount holds the residual for partial
// payments. Seq preserves insertion order for payment allocation.
type Invoice struct {
	ID            string    `json:"id"`
	Seq           int64     `json:"seq"`
	Number        string    `json:"number"`
	Date          time.Time `json:"date"`
	CustomerName  string    `json:"customer_name"`
	TotalAmount   int64     `json:"total_amount"`
	Type          string    `json:"type"`
	PaymentStatus string    `json:"payment_status"`
	PaidAmount    int64     `json:"paid_amount"`
}

type InvoiceCreateRequest struct {
	Number        string `json:"number"`
	Date          string `json:"date"`
	CustomerName  string `json:"customer_name"`
	TotalAmount   int64  `json:"total_amount"`
	Type          string `json:"type"`
	PaymentStatus string `json:"payment_status"`
	PaidAmount    int64  `json:"paid_amount"`
}

type InvoiceUpdateRequest struct {
	Number        *string `json:"number,omitempty"`
	Date          *string `json:"date,omitempty"`
	CustomerName  *string `json:"customer_name,omitempty"`
	TotalAmount   *int64  `json:"total_amount,omitempty"`
	Type          *string `json:"type,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
	PaidAmount    *int64  `json:"paid_amount,omitempty"`
}

type InvoiceSearchRequest struct {
	FromDate      string `json:"from_date"`
	ToDate        string `json:"to_date"`
	InvoiceNumber string `json:"invoice_number"`
	CustomerInfo  string `json:"customer_info"`
}

// DebtRecord is the per-customer aggregate derived from that customer's
// invoices. It is recomputed in full on every sync, never incrementally.
type DebtRecord struct {
	CustomerName  string     `json:"customer_name"`
	TotalBilled   int64      `json:"total_billed"`
	TotalPaid     int64      `json:"total_paid"`
	Remaining     int64      `json:"remaining"`
	Status        string     `json:"status"`
	LastPaymentAt *time.Time `json:"last_payment_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PaymentRequest struct {
	CustomerName string `json:"customer_name"`
	PaidAmount   int64  `json:"paid_amount"`
}

type PaymentResult struct {
	CustomerName string `json:"customer_name"`
	TotalBilled  int64  `json:"total_billed"`
	TotalPaid    int64  `json:"total_paid"`
	Remaining    int64  `json:"remaining"`
}

type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DebitAccount  string `json:"debit_account,omitempty"`
	CreditAccount string `json:"credit_account,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	Active        bool   `json:"active"`
}

type CustomerCreateRequest struct {
	Name          string `json:"name"`
	DebitAccount  string `json:"debit_account"`
	CreditAccount string `json:"credit_account"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type CustomerUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	DebitAccount  *string `json:"debit_account,omitempty"`
	CreditAccount *string `json:"credit_account,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

type Warehouse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	ProductCount int    `json:"product_count"`
	Status       string `json:"status"`
	Phone        string `json:"phone,omitempty"`
	ProductGroup string `json:"product_group,omitempty"`
	Description  string `json:"description,omitempty"`
}

type WarehouseCreateRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ProductCount int    `json:"product_count"`
	Phone        string `json:"phone"`
	ProductGroup string `json:"product_group"`
	Description  string `json:"description"`
}

type WarehouseUpdateRequest struct {
	Name         *string `json:"name,omitempty"`
	Address      *string `json:"address,omitempty"`
	ProductCount *int    `json:"product_count,omitempty"`
	Status       *string `json:"status,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProductGroup *string `json:"product_group,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// StockAdjustment is a signed stock delta applied to a product inside an
// order lifecycle transaction. When CheckSufficient is set, a negative delta
// larger than the on-hand quantity aborts the whole transaction.
type StockAdjustment struct {
	ProductCode     string
	Delta           int
	CheckSufficient bool
}

type RevenueDay struct {
	Date              string `json:"date"`
	DateKey           string `json:"date_key"`
	Revenue           int64  `json:"revenue"`
	QuantitySold      int    `json:"quantity_sold"`
	QuantityRemaining int    `json:"quantity_remaining"`
}

type ProductRevenueRow struct {
	ProductName  string `json:"product_name"`
	ProductGroup string `json:"product_group"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
	Revenue      int64  `json:"revenue"`
	QuantitySold int    `json:"quantity_sold"`
}

type DateRange struct {
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	TotalDays int    `json:"total_days"`
}

type RevenueSummary struct {
	TotalRevenue           int64     `json:"total_revenue"`
	TotalQuantitySold      int       `json:"total_quantity_sold"`
	TotalQuantityRemaining int       `json:"total_quantity_remaining"`
	DateRange              DateRange `json:"date_range"`
}

type RevenueByDateReport struct {
	Columns     []RevenueDay        `json:"columns"`
	ProductData []ProductRevenueRow `json:"product_data"`
	Summary     RevenueSummary      `json:"summary"`
}

type DebtReportRow struct {
	CustomerName string `json:"customer_name"`
	TotalBilled  int64  `json:"total_billed"`
	TotalPaid    int64  `json:"total_paid"`
	Remaining    int64  `json:"remaining"`
	Status       string `json:"status"`
}

type ProductSalesRow struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Group    string `json:"group"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

type ChartData struct {
	Labels  []string `json:"labels"`
	Revenue []int64  `json:"revenue"`
}

type ProductSalesSummary struct {
	TotalRevenue  int64     `json:"total_revenue"`
	TotalQuantity int       `json:"total_quantity"`
	DateRange     DateRange `json:"date_range"`
}

type RevenueByProductReport struct {
	Products []ProductSalesRow   `json:"products"`
	Chart    ChartData           `json:"chart_data"`
	Summary  ProductSalesSummary `json:"summary"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

type UserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type APIUser struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}

const (
	PaymentUnpaid  = "unpaid"
	PaymentPaid    = "paid"
	PaymentPartial = "partial"
)

const (
	DebtStatusOwing = "has debt"
	DebtStatusClear = "debt-free"
)

const (
	AvailabilityInStock = "in stock"
	AvailabilityOut     = "out of stock"
)

// PriceKindAction marks price-list entries billed as services; any other
// kind falls through to product classification.
const PriceKindAction = "action"

const (
	WarehouseStatusActive   = "active"
	WarehouseStatusInactive = "inactive"
)
