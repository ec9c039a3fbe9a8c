package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"brewpoint/analytics-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Store service.StoreInterface
}

func NewHandler(store service.StoreInterface) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/api/analytics/summary", h.getSummary).Methods("GET")
	r.HandleFunc("/api/analytics/top-products", h.getTopProducts).Methods("GET")
	r.HandleFunc("/api/analytics/top-today", h.getTopToday).Methods("GET")
	r.HandleFunc("/api/analytics/products/{id}/stats", h.getProductStats).Methods("GET")
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Store.Summary()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(summary)
}

func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	return limit
}

func (h *Handler) getTopProducts(w http.ResponseWriter, r *http.Request) {
	data, err := h.Store.TopProducts(queryLimit(r))
	if err != nil || data == nil {
		json.NewEncoder(w).Encode([]interface{}{})
		return
	}
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	data, err := h.Store.TopToday(queryLimit(r))
	if err != nil || data == nil {
		json.NewEncoder(w).Encode([]interface{}{})
		return
	}
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) getProductStats(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.Atoi(mux.Vars(r)["id"])
	stats, err := h.Store.ProductStats(productID)
	if err != nil || stats == nil {
		http.Error(w, "Product stats not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(stats)
}
