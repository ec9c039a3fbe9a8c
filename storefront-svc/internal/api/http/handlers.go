package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"brewpoint/storefront-svc/internal/domain"
	"brewpoint/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

const sessionHeader = "X-Session-ID"

type Handler struct {
	Catalog  service.CatalogServiceInterface
	Carts    service.CartServiceInterface
	Checkout service.CheckoutServiceInterface
}

func NewHandler(catalog service.CatalogServiceInterface, carts service.CartServiceInterface, checkout service.CheckoutServiceInterface) *Handler {
	return &Handler{
		Catalog:  catalog,
		Carts:    carts,
		Checkout: checkout,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/featured", h.getFeatured).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.getProduct).Methods("GET")

	r.HandleFunc("/api/tables", h.getTables).Methods("GET")
	r.HandleFunc("/api/tables/{number}/qrcode", h.getTableQRCode).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{lineId}", h.setCartQuantity).Methods("PUT")
	r.HandleFunc("/api/cart/items/{lineId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart/items/{lineId}/decrease", h.decreaseCartItem).Methods("POST")

	r.HandleFunc("/api/checkout", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.Products()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	product, err := h.Catalog.Product(id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) getFeatured(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	products, err := h.Catalog.Featured(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Catalog.Tables()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if tables == nil {
		tables = []domain.Table{}
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	number, _ := strconv.Atoi(mux.Vars(r)["number"])
	qr, err := h.Catalog.TableQRCode(number)
	if err != nil {
		http.Error(w, "Table not found", http.StatusNotFound)
		return
	}
	if len(qr) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		http.Error(w, "Missing "+sessionHeader+" header", http.StatusBadRequest)
		return "", false
	}
	return sessionID, true
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	cart, err := h.Carts.Get(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var line domain.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if line.Name == "" || line.Price <= 0 {
		http.Error(w, "Item name and a positive price are required", http.StatusBadRequest)
		return
	}

	cart, err := h.Carts.AddItem(r.Context(), sessionID, line)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	cart, err := h.Carts.SetQuantity(r.Context(), sessionID, mux.Vars(r)["lineId"], payload.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) decreaseCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	cart, err := h.Carts.DecreaseQuantity(r.Context(), sessionID, mux.Vars(r)["lineId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	cart, err := h.Carts.RemoveItem(r.Context(), sessionID, mux.Vars(r)["lineId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	cart, err := h.Carts.Clear(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type checkoutResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *domain.Order `json:"order,omitempty"`
	Error   string        `json:"error,omitempty"`
}

var checkoutErrors = []error{
	service.ErrNoItems,
	service.ErrInvalidTotal,
	service.ErrInvalidItem,
	service.ErrDeliveryMethodRequired,
	service.ErrAddressRequired,
	service.ErrTableRequired,
	service.ErrTableNotFound,
	service.ErrInvalidMode,
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, checkoutResponse{
			Success: false,
			Message: "Invalid order payload",
			Error:   err.Error(),
		})
		return
	}

	order, err := h.Checkout.PlaceOrder(r.Context(), &req)
	if err != nil {
		for _, known := range checkoutErrors {
			if errors.Is(err, known) {
				writeJSON(w, http.StatusBadRequest, checkoutResponse{
					Success: false,
					Message: known.Error(),
					Error:   err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusBadRequest, checkoutResponse{
			Success: false,
			Message: "Failed to create order",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Success: true,
		Message: "Order created successfully",
		Order:   order,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Checkout.Order(orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
