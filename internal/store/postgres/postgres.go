package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"ketoan/backend/internal/catalog"
	"ketoan/backend/internal/domain"
	"ketoan/backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, group_name, quantity, unit_price, availability, description
		FROM products
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 64)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.Group, &p.Quantity, &p.UnitPrice, &p.Availability, &p.Description); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.Code == "" || product.Name == "" {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (code, name, group_name, quantity, unit_price, availability, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now(),now())
	`, product.Code, product.Name, product.Group, product.Quantity, product.UnitPrice, product.Availability, product.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateCode
		}
		return nil, err
	}

	created := product
	return &created, nil
}

func (s *Store) GetProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT code, name, group_name, quantity, unit_price, availability, description
		FROM products
		WHERE code = $1
	`, code).Scan(&p.Code, &p.Name, &p.Group, &p.Quantity, &p.UnitPrice, &p.Availability, &p.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.Code == "" || product.Name == "" {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, group_name = $3, quantity = $4, unit_price = $5, availability = $6, description = $7, updated_at = now()
		WHERE code = $1
	`, product.Code, product.Name, product.Group, product.Quantity, product.UnitPrice, product.Availability, product.Description)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := product
	return &updated, nil
}

func (s *Store) DeleteProduct(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE code = $1`, code)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) TotalProductQuantity(ctx context.Context) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM products`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListPrices(ctx context.Context) ([]domain.PriceEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, kind, cost_price, unit_price, created_at, updated_at
		FROM price_entries
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.PriceEntry, 0, 64)
	for rows.Next() {
		var e domain.PriceEntry
		if err := rows.Scan(&e.Code, &e.Name, &e.Kind, &e.CostPrice, &e.UnitPrice, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) CreatePrice(ctx context.Context, entry domain.PriceEntry) (*domain.PriceEntry, error) {
	if entry.Code == "" || entry.Name == "" {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO price_entries (code, name, kind, cost_price, unit_price, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, entry.Code, entry.Name, entry.Kind, entry.CostPrice, entry.UnitPrice, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateCode
		}
		return nil, err
	}

	created := entry
	return &created, nil
}

func (s *Store) GetPriceByCode(ctx context.Context, code string) (*domain.PriceEntry, error) {
	var e domain.PriceEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT code, name, kind, cost_price, unit_price, created_at, updated_at
		FROM price_entries
		WHERE code = $1
	`, code).Scan(&e.Code, &e.Name, &e.Kind, &e.CostPrice, &e.UnitPrice, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *Store) UpdatePrice(ctx context.Context, entry domain.PriceEntry) (*domain.PriceEntry, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE price_entries
		SET name = $2, kind = $3, cost_price = $4, unit_price = $5, updated_at = now()
		WHERE code = $1
	`, entry.Code, entry.Name, entry.Kind, entry.CostPrice, entry.UnitPrice)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := entry
	return &updated, nil
}

func (s *Store) DeletePrice(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM price_entries WHERE code = $1`, code)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

const orderColumns = `id, code, customer_name, catalog_code, created_date, tax_office_code, quantity, total_amount, payment_method, status`

func scanOrder(scanner interface{ Scan(...any) error }) (domain.Order, error) {
	var o domain.Order
	err := scanner.Scan(&o.ID, &o.Code, &o.CustomerName, &o.CatalogCode, &o.CreatedDate, &o.TaxOfficeCode, &o.Quantity, &o.TotalAmount, &o.PaymentMethod, &o.Status)
	return o, err
}

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_date DESC, code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *Store) OrderCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// cancelledStatusList mirrors the spellings catalog.IsCancelled recognizes so
// the filter can run inside SQL.
var cancelledStatusList = []string{"đã hủy", "da huy", "hủy", "huy", "canceled", "cancelled"}

func (s *Store) SearchCompletedOrders(ctx context.Context, customer string, query string) ([]domain.Order, error) {
	customer = strings.TrimSpace(customer)
	query = strings.TrimSpace(query)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE lower(trim(status)) != ALL($1)
		  AND ($2 = '' OR customer_name ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR code ILIKE '%' || $3 || '%' OR catalog_code ILIKE '%' || $3 || '%')
		ORDER BY created_date DESC, code
	`, cancelledStatusList, customer, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *Store) ListOrdersByDateRange(ctx context.Context, from time.Time, to time.Time) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE created_date >= $1 AND created_date < $2
		ORDER BY created_date
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *Store) FindFirstOrderByCustomer(ctx context.Context, customerName string) (*domain.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_name = $1
		ORDER BY seq
		LIMIT 1
	`, customerName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// applyAdjustmentsTx locks each touched product row, enforces sufficiency
// checks and writes the new quantity with the derived availability. The
// caller owns the transaction.
func applyAdjustmentsTx(ctx context.Context, tx *sql.Tx, adjustments []domain.StockAdjustment) error {
	for _, adj := range adjustments {
		var quantity int
		err := tx.QueryRowContext(ctx, `
			SELECT quantity
			FROM products
			WHERE code = $1
			FOR UPDATE
		`, adj.ProductCode).Scan(&quantity)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrNotFound
			}
			return err
		}
		if adj.CheckSufficient && adj.Delta < 0 && quantity+adj.Delta < 0 {
			return store.ErrInsufficientStock
		}

		next := quantity + adj.Delta
		if next < 0 {
			next = 0
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE products
			SET quantity = $2, availability = $3, updated_at = now()
			WHERE code = $1
		`, adj.ProductCode, next, catalog.AvailabilityFor(next))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateOrder(ctx context.Context, order domain.Order, adjustments []domain.StockAdjustment) (*domain.Order, error) {
	if order.ID == "" || order.Code == "" {
		return nil, store.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := applyAdjustmentsTx(ctx, tx, adjustments); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, code, customer_name, catalog_code, created_date, tax_office_code, quantity, total_amount, payment_method, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
	`, order.ID, order.Code, order.CustomerName, order.CatalogCode, order.CreatedDate, order.TaxOfficeCode, order.Quantity, order.TotalAmount, order.PaymentMethod, order.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateCode
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	created := order
	return &created, nil
}

func (s *Store) UpdateOrder(ctx context.Context, order domain.Order, adjustments []domain.StockAdjustment) (*domain.Order, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := applyAdjustmentsTx(ctx, tx, adjustments); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET code = $2, customer_name = $3, catalog_code = $4, created_date = $5, tax_office_code = $6,
		    quantity = $7, total_amount = $8, payment_method = $9, status = $10, updated_at = now()
		WHERE id = $1
	`, order.ID, order.Code, order.CustomerName, order.CatalogCode, order.CreatedDate, order.TaxOfficeCode, order.Quantity, order.TotalAmount, order.PaymentMethod, order.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateCode
		}
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	updated := order
	return &updated, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id string, adjustments []domain.StockAdjustment) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := applyAdjustmentsTx(ctx, tx, adjustments); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

const invoiceColumns = `id, seq, number, date, customer_name, total_amount, type, payment_status, paid_amount`

func scanInvoice(scanner interface{ Scan(...any) error }) (domain.Invoice, error) {
	var inv domain.Invoice
	err := scanner.Scan(&inv.ID, &inv.Seq, &inv.Number, &inv.Date, &inv.CustomerName, &inv.TotalAmount, &inv.Type, &inv.PaymentStatus, &inv.PaidAmount)
	return inv, err
}

func collectInvoices(rows *sql.Rows) ([]domain.Invoice, error) {
	invoices := make([]domain.Invoice, 0, 64)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (s *Store) CreateInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	if invoice.ID == "" || invoice.Number == "" || invoice.CustomerName == "" {
		return nil, store.ErrInvalidInput
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO invoices (id, number, date, customer_name, total_amount, type, payment_status, paid_amount, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now())
		RETURNING seq
	`, invoice.ID, invoice.Number, invoice.Date, invoice.CustomerName, invoice.TotalAmount, invoice.Type, invoice.PaymentStatus, invoice.PaidAmount).Scan(&invoice.Seq)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateCode
		}
		return nil, err
	}

	created := invoice
	return &created, nil
}

func (s *Store) GetInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := scanInvoice(s.db.QueryRowContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	err := s.db.QueryRowContext(ctx, `
		UPDATE invoices
		SET number = $2, date = $3, customer_name = $4, total_amount = $5, type = $6,
		    payment_status = $7, paid_amount = $8, updated_at = now()
		WHERE id = $1
		RETURNING seq
	`, invoice.ID, invoice.Number, invoice.Date, invoice.CustomerName, invoice.TotalAmount, invoice.Type, invoice.PaymentStatus, invoice.PaidAmount).Scan(&invoice.Seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	updated := invoice
	return &updated, nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListInvoicesByCustomer(ctx context.Context, customerName string) ([]domain.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE customer_name = $1
		ORDER BY seq
	`, customerName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (s *Store) ListInvoicesByDateRange(ctx context.Context, from time.Time, to time.Time) ([]domain.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE date >= $1 AND date < $2
		ORDER BY seq
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (s *Store) SearchInvoices(ctx context.Context, criteria domain.InvoiceSearchRequest) ([]domain.Invoice, error) {
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

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2::timestamptz IS NULL OR date < $2)
		  AND ($3 = '' OR number ILIKE '%' || $3 || '%')
		  AND ($4 = '' OR customer_name ILIKE '%' || $4 || '%')
		ORDER BY seq
	`, nullableTime(from), nullableTime(to), strings.TrimSpace(criteria.InvoiceNumber), strings.TrimSpace(criteria.CustomerInfo))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func (s *Store) SetInvoicePaymentStatus(ctx context.Context, id string, status string, paidAmount int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE invoices
		SET payment_status = $2, paid_amount = $3, updated_at = now()
		WHERE id = $1
	`, id, status, paidAmount)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) UpsertDebtRecord(ctx context.Context, record domain.DebtRecord) (*domain.DebtRecord, error) {
	if record.CustomerName == "" {
		return nil, store.ErrInvalidInput
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO debts (customer_name, total_billed, total_paid, remaining, status, last_payment_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,now(),now())
		ON CONFLICT (customer_name) DO UPDATE
		SET total_billed = EXCLUDED.total_billed,
		    total_paid = EXCLUDED.total_paid,
		    remaining = EXCLUDED.remaining,
		    status = EXCLUDED.status,
		    last_payment_at = EXCLUDED.last_payment_at,
		    updated_at = now()
		RETURNING created_at, updated_at
	`, record.CustomerName, record.TotalBilled, record.TotalPaid, record.Remaining, record.Status, record.LastPaymentAt).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}

	upserted := record
	return &upserted, nil
}

func (s *Store) GetDebtRecordByCustomer(ctx context.Context, customerName string) (*domain.DebtRecord, error) {
	var r domain.DebtRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT customer_name, total_billed, total_paid, remaining, status, last_payment_at, created_at, updated_at
		FROM debts
		WHERE customer_name = $1
	`, customerName).Scan(&r.CustomerName, &r.TotalBilled, &r.TotalPaid, &r.Remaining, &r.Status, &r.LastPaymentAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) ListDebtRecords(ctx context.Context) ([]domain.DebtRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT customer_name, total_billed, total_paid, remaining, status, last_payment_at, created_at, updated_at
		FROM debts
		ORDER BY customer_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.DebtRecord, 0, 64)
	for rows.Next() {
		var r domain.DebtRecord
		if err := rows.Scan(&r.CustomerName, &r.TotalBilled, &r.TotalPaid, &r.Remaining, &r.Status, &r.LastPaymentAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, debit_account, credit_account, email, phone, address, active
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, 64)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.DebitAccount, &c.CreditAccount, &c.Email, &c.Phone, &c.Address, &c.Active); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.ID == "" || customer.Name == "" {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, debit_account, credit_account, email, phone, address, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now())
	`, customer.ID, customer.Name, customer.DebitAccount, customer.CreditAccount, customer.Email, customer.Phone, customer.Address, customer.Active)
	if err != nil {
		return nil, err
	}

	created := customer
	return &created, nil
}

func (s *Store) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, debit_account, credit_account, email, phone, address, active
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.DebitAccount, &c.CreditAccount, &c.Email, &c.Phone, &c.Address, &c.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $2, debit_account = $3, credit_account = $4, email = $5, phone = $6, address = $7, active = $8, updated_at = now()
		WHERE id = $1
	`, customer.ID, customer.Name, customer.DebitAccount, customer.CreditAccount, customer.Email, customer.Phone, customer.Address, customer.Active)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := customer
	return &updated, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, name, address, product_count, status, phone, product_group, description
		FROM warehouses
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	warehouses := make([]domain.Warehouse, 0, 16)
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.ProductCount, &w.Status, &w.Phone, &w.ProductGroup, &w.Description); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (s *Store) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (*domain.Warehouse, error) {
	if warehouse.ID == "" || warehouse.Code == "" || warehouse.Name == "" {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO warehouses (id, code, name, address, product_count, status, phone, product_group, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now())
	`, warehouse.ID, warehouse.Code, warehouse.Name, warehouse.Address, warehouse.ProductCount, warehouse.Status, warehouse.Phone, warehouse.ProductGroup, warehouse.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateCode
		}
		return nil, err
	}

	created := warehouse
	return &created, nil
}

func (s *Store) GetWarehouseByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	var w domain.Warehouse
	err := s.db.QueryRowContext(ctx, `
		SELECT id, code, name, address, product_count, status, phone, product_group, description
		FROM warehouses
		WHERE id = $1
	`, id).Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.ProductCount, &w.Status, &w.Phone, &w.ProductGroup, &w.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (s *Store) UpdateWarehouse(ctx context.Context, warehouse domain.Warehouse) (*domain.Warehouse, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE warehouses
		SET name = $2, address = $3, product_count = $4, status = $5, phone = $6, product_group = $7, description = $8, updated_at = now()
		WHERE id = $1
	`, warehouse.ID, warehouse.Name, warehouse.Address, warehouse.ProductCount, warehouse.Status, warehouse.Phone, warehouse.ProductGroup, warehouse.Description)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := warehouse
	return &updated, nil
}

func (s *Store) DeleteWarehouse(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	if user.Username == "" || user.Password == "" {
		return store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password, role, active, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, user.Username, user.Password, user.Role, user.Active, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, role, active, created_at
		FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var u domain.UserAccount
		if err := rows.Scan(&u.Username, &u.Password, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET password = $2
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
