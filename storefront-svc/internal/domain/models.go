package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID            int                `json:"id"`
	CategoryID    int                `json:"category_id"`
	CategoryName  string             `json:"category_name,omitempty"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Price         float64            `json:"price"`
	OriginalPrice *float64           `json:"original_price,omitempty"`
	Sizes         []string           `json:"sizes,omitempty"`
	Milks         []string           `json:"milks,omitempty"`
	Drinks        []string           `json:"drinks,omitempty"`
	Toppings      []string           `json:"toppings,omitempty"`
	SizePrices    map[string]float64 `json:"size_prices,omitempty"`
	ImageURL      string             `json:"image_url"`
	CreatedAt     time.Time          `json:"created_at"`
}

const (
	TableAvailable = "available"
	TableReserved  = "reserved"
)

type Table struct {
	ID          int    `json:"id"`
	TableNumber int    `json:"table_number"`
	Status      string `json:"status"`
}

// CartLine is one line of a session cart. Two lines are the same line iff
// name, size, milk, drink and the normalized topping set all match; key
// derives from exactly those fields.
type CartLine struct {
	ID        string   `json:"id"`
	ProductID int      `json:"product_id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Size      string   `json:"size,omitempty"`
	Milk      string   `json:"milk,omitempty"`
	Drink     string   `json:"drink,omitempty"`
	Toppings  []string `json:"toppings,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
}

// LineKey builds the merge identity for a cart line. Toppings are sorted so
// selection order never splits a line.
func (l CartLine) LineKey() string {
	toppings := append([]string(nil), l.Toppings...)
	sort.Strings(toppings)
	return strings.Join([]string{l.Name, l.Size, l.Milk, l.Drink, strings.Join(toppings, ",")}, "|")
}

func (l CartLine) SameLine(other CartLine) bool {
	return l.LineKey() == other.LineKey()
}

type Cart struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

const (
	ModeQR  = "qr"
	ModeWeb = "web"

	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"

	OrderPending = "pending"
)

type OrderItem struct {
	ID        int      `json:"id,omitempty"`
	ProductID int      `json:"product_id"`
	Title     string   `json:"title"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Size      string   `json:"size,omitempty"`
	Milk      string   `json:"milk,omitempty"`
	Drink     string   `json:"drink,omitempty"`
	Toppings  []string `json:"toppings,omitempty"`
}

type Payment struct {
	ID      int     `json:"id"`
	OrderID int     `json:"order_id"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Status  string  `json:"status"`
}

// Order snapshots the cart at submission time so later catalog edits never
// rewrite order history. Mode decides which variant fields are meaningful:
// qr orders carry a table, web orders carry delivery method and address.
type Order struct {
	ID             int         `json:"id"`
	Mode           string      `json:"mode"`
	Total          float64     `json:"total"`
	Status         string      `json:"status"`
	CustomerName   string      `json:"customer_name,omitempty"`
	CustomerEmail  string      `json:"customer_email,omitempty"`
	CustomerPhone  string      `json:"customer_phone,omitempty"`
	Note           string      `json:"note,omitempty"`
	DeliveryMethod string      `json:"delivery_method,omitempty"`
	Address        string      `json:"address,omitempty"`
	PaymentMethod  string      `json:"payment_method,omitempty"`
	TableID        int         `json:"table_id,omitempty"`
	TableNumber    int         `json:"table_number,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	Items          []OrderItem `json:"items"`
	Payment        *Payment    `json:"payment,omitempty"`
}

type OrderEventItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderEvent struct {
	Type      string           `json:"type"`
	OrderID   int              `json:"order_id"`
	Mode      string           `json:"mode"`
	Total     float64          `json:"total"`
	Items     []OrderEventItem `json:"items"`
	Timestamp time.Time        `json:"timestamp"`
}

func (e OrderEvent) Key() string {
	return strconv.Itoa(e.OrderID)
}
