package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ordering-system/internal/cart"
	"ordering-system/internal/catalog"
	"ordering-system/internal/logger"
	"ordering-system/internal/models"
)

// Submitter runs a finalized cart through the submission coordinator
type Submitter interface {
	Submit(ctx context.Context, c *cart.Cart, customerName, customerPhone, requestID string) (*models.SubmissionResult, error)
}

// OrderLister reads back stored orders for the shop-side list view
type OrderLister interface {
	ListOrders(ctx context.Context, todayOnly bool) ([]models.Order, error)
}

// Pinger checks the persistence backend for the health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler handles HTTP requests for the ordering service
type Handler struct {
	submitter Submitter
	orders    OrderLister
	pinger    Pinger
	logger    *logger.Logger
}

// NewHandler creates a new ordering handler
func NewHandler(submitter Submitter, orders OrderLister, pinger Pinger, log *logger.Logger) *Handler {
	return &Handler{
		submitter: submitter,
		orders:    orders,
		pinger:    pinger,
		logger:    log,
	}
}

// Routes builds the HTTP router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.withLogging)

	r.Post("/orders", h.SubmitOrder)
	r.Get("/orders", h.ListOrders)
	r.Get("/menu", h.GetMenu)
	r.Get("/health", h.HealthCheck)

	return r
}

// SubmitOrder handles POST /orders: builds a cart from the quantity grid and
// runs the submission coordinator.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return
	}

	var req models.SubmitOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	c := cart.New()
	for category, row := range req.Quantities {
		for item, qty := range row {
			if err := c.SetQuantity(category, item, qty); err != nil {
				h.writeErrorResponse(w, http.StatusBadRequest,
					fmt.Sprintf("quantities[%d][%d] does not match the menu", category, item), requestID)
				return
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.submitter.Submit(ctx, c, req.CustomerName, req.CustomerPhone, requestID)
	if err != nil {
		var validationErr models.ValidationError
		if errors.As(err, &validationErr) {
			h.writeErrorResponse(w, http.StatusBadRequest, validationErr.Error(), requestID)
			return
		}
		h.logger.Error("order_submission_failed", "Failed to submit order", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	response := models.SubmitOrderResponse{
		OrderNumber:     result.Order.Number,
		Status:          string(result.Status),
		TotalPrice:      result.Order.TotalPrice,
		DiscountedTotal: result.Order.DiscountedTotal,
		ReceiptText:     result.Order.ReceiptText,
		FailedEffect:    string(result.Failed),
	}

	status := http.StatusOK
	if result.Status != models.StatusSubmitted {
		// One or both external effects failed; report which, nothing is rolled back.
		status = http.StatusBadGateway
	}
	h.writeJSON(w, status, response, requestID)
}

// ListOrders handles GET /orders, optionally filtered to today with ?today=true
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())
	todayOnly := r.URL.Query().Get("today") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.orders.ListOrders(ctx, todayOnly)
	if err != nil {
		h.logger.Error("order_list_failed", "Failed to list orders", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	if orders == nil {
		// An empty store must still encode as a JSON array, not null.
		orders = []models.Order{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(orders),
		"today":  todayOnly,
		"orders": orders,
	}, requestID)
}

// GetMenu handles GET /menu
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	type menuCategory struct {
		Name  string         `json:"name"`
		Items []catalog.Item `json:"items"`
	}

	names := catalog.Categories()
	categories := make([]menuCategory, len(names))
	for i, name := range names {
		items, err := catalog.Items(i)
		if err != nil {
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
			return
		}
		categories[i] = menuCategory{Name: name, Items: items}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories}, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
	}

	if err := h.pinger.Ping(ctx); err != nil {
		response["status"] = "unhealthy"
		h.writeJSON(w, http.StatusServiceUnavailable, response, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, response, requestID)
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}, requestID)
}

type contextKey string

const requestIDKey contextKey = "request_id"

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// withLogging attaches a request ID and logs request start and completion
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
