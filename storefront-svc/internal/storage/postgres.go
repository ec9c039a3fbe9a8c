package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"brewpoint/storefront-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// EnsureSchema creates the storefront tables when they are missing so the
// service can come up against an empty database.
func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			category_id INT REFERENCES categories(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL,
			original_price NUMERIC(10,2),
			sizes TEXT[] NOT NULL DEFAULT '{}',
			milks TEXT[] NOT NULL DEFAULT '{}',
			drinks TEXT[] NOT NULL DEFAULT '{}',
			toppings TEXT[] NOT NULL DEFAULT '{}',
			size_prices JSONB NOT NULL DEFAULT '{}',
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS cafe_tables (
			id SERIAL PRIMARY KEY,
			table_number INT UNIQUE NOT NULL,
			status TEXT NOT NULL DEFAULT 'available',
			qr_code BYTEA
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			mode TEXT NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			customer_name TEXT NOT NULL DEFAULT '',
			customer_email TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			note TEXT NOT NULL DEFAULT '',
			delivery_method TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			table_id INT REFERENCES cafe_tables(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INT NOT NULL,
			title TEXT NOT NULL,
			quantity INT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			size TEXT NOT NULL DEFAULT '',
			milk TEXT NOT NULL DEFAULT '',
			drink TEXT NOT NULL DEFAULT '',
			toppings TEXT[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			order_id INT UNIQUE NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			amount NUMERIC(10,2) NOT NULL,
			method TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending'
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

const productColumns = `p.id, p.category_id, COALESCE(c.name, ''), p.title, p.description,
		p.price, p.original_price, p.sizes, p.milks, p.drinks, p.toppings,
		p.size_prices, COALESCE(p.image_url, ''), p.created_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var (
		product       domain.Product
		categoryID    sql.NullInt64
		originalPrice sql.NullFloat64
		sizePrices    []byte
	)

	err := row.Scan(&product.ID, &categoryID, &product.CategoryName, &product.Title,
		&product.Description, &product.Price, &originalPrice,
		pq.Array(&product.Sizes), pq.Array(&product.Milks), pq.Array(&product.Drinks),
		pq.Array(&product.Toppings), &sizePrices, &product.ImageURL, &product.CreatedAt)
	if err != nil {
		return nil, err
	}

	product.CategoryID = int(categoryID.Int64)
	if originalPrice.Valid {
		product.OriginalPrice = &originalPrice.Float64
	}
	if len(sizePrices) > 0 {
		_ = json.Unmarshal(sizePrices, &product.SizePrices)
	}

	return &product, nil
}

func (r *PostgresRepository) ListProducts() ([]domain.Product, error) {
	rows, err := r.DB.Query(`
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, *product)
	}
	return products, nil
}

func (r *PostgresRepository) GetProduct(id int) (*domain.Product, error) {
	row := r.DB.QueryRow(`
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, id)
	return scanProduct(row)
}

func (r *PostgresRepository) FeaturedProducts(limit int) ([]domain.Product, error) {
	rows, err := r.DB.Query(`
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, *product)
	}
	return products, nil
}

func (r *PostgresRepository) ListTables() ([]domain.Table, error) {
	rows, err := r.DB.Query(`
		SELECT id, table_number, status
		FROM cafe_tables
		ORDER BY table_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []domain.Table
	for rows.Next() {
		var table domain.Table
		if err := rows.Scan(&table.ID, &table.TableNumber, &table.Status); err != nil {
			continue
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (r *PostgresRepository) GetTableQRCode(tableNumber int) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRow(
		"SELECT qr_code FROM cafe_tables WHERE table_number = $1", tableNumber).Scan(&qr)
	if err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *PostgresRepository) SaveTableQRCode(tableNumber int, qr []byte) error {
	_, err := r.DB.Exec("UPDATE cafe_tables SET qr_code = $1 WHERE table_number = $2", qr, tableNumber)
	return err
}

// CreateTableOrder writes a dine-in order, its items and its payment, and
// flips the table to reserved, all in one transaction. The table row is
// locked for the duration so two checkouts for the same table serialize.
func (r *PostgresRepository) CreateTableOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(
		"SELECT id FROM cafe_tables WHERE table_number = $1 FOR UPDATE",
		order.TableNumber).Scan(&order.TableID); err != nil {
		return err
	}

	if err := tx.QueryRow(`
		INSERT INTO orders (mode, total, status, customer_name, customer_email, customer_phone, note, table_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, domain.ModeQR, order.Total, domain.OrderPending, order.CustomerName, order.CustomerEmail,
		order.CustomerPhone, order.Note, order.TableID).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	if err := insertOrderRows(tx, order); err != nil {
		return err
	}

	if _, err := tx.Exec(
		"UPDATE cafe_tables SET status = $1 WHERE id = $2",
		domain.TableReserved, order.TableID); err != nil {
		return err
	}

	return tx.Commit()
}

// CreateWebOrder writes a delivery/pickup order with its items and payment
// in one transaction.
func (r *PostgresRepository) CreateWebOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`
		INSERT INTO orders (mode, total, status, customer_name, customer_email, customer_phone, note, delivery_method, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, domain.ModeWeb, order.Total, domain.OrderPending, order.CustomerName, order.CustomerEmail,
		order.CustomerPhone, order.Note, order.DeliveryMethod, order.Address).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	if err := insertOrderRows(tx, order); err != nil {
		return err
	}

	return tx.Commit()
}

func insertOrderRows(tx *sql.Tx, order *domain.Order) error {
	for i := range order.Items {
		item := &order.Items[i]
		if err := tx.QueryRow(`
			INSERT INTO order_items (order_id, product_id, title, quantity, price, size, milk, drink, toppings)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, order.ID, item.ProductID, item.Title, item.Quantity, item.Price,
			item.Size, item.Milk, item.Drink, pq.Array(item.Toppings)).Scan(&item.ID); err != nil {
			return err
		}
	}

	payment := &domain.Payment{
		OrderID: order.ID,
		Amount:  order.Total,
		Method:  order.PaymentMethod,
		Status:  domain.OrderPending,
	}
	if err := tx.QueryRow(`
		INSERT INTO payments (order_id, amount, method, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, payment.OrderID, payment.Amount, payment.Method, payment.Status).Scan(&payment.ID); err != nil {
		return err
	}
	order.Payment = payment

	return nil
}

func (r *PostgresRepository) GetOrder(orderID int) (*domain.Order, error) {
	var (
		order       domain.Order
		tableID     sql.NullInt64
		tableNumber sql.NullInt64
	)
	if err := r.DB.QueryRow(`
		SELECT o.id, o.mode, o.total, o.status, o.customer_name, o.customer_email,
			o.customer_phone, o.note, o.delivery_method, o.address, o.table_id,
			t.table_number, o.created_at
		FROM orders o
		LEFT JOIN cafe_tables t ON t.id = o.table_id
		WHERE o.id = $1
	`, orderID).Scan(&order.ID, &order.Mode, &order.Total, &order.Status,
		&order.CustomerName, &order.CustomerEmail, &order.CustomerPhone, &order.Note,
		&order.DeliveryMethod, &order.Address, &tableID, &tableNumber, &order.CreatedAt); err != nil {
		return nil, err
	}
	order.TableID = int(tableID.Int64)
	order.TableNumber = int(tableNumber.Int64)

	rows, err := r.DB.Query(`
		SELECT id, product_id, title, quantity, price, size, milk, drink, toppings
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order.Items = []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Title, &item.Quantity,
			&item.Price, &item.Size, &item.Milk, &item.Drink, pq.Array(&item.Toppings)); err != nil {
			continue
		}
		order.Items = append(order.Items, item)
	}

	var payment domain.Payment
	if err := r.DB.QueryRow(`
		SELECT id, order_id, amount, method, status
		FROM payments
		WHERE order_id = $1
	`, orderID).Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Method, &payment.Status); err == nil {
		order.Payment = &payment
	}

	return &order, nil
}
