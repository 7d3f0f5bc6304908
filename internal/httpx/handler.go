package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/tarzi-cart/internal/cart"
	"github.com/nikolayk812/tarzi-cart/internal/checkout"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/nikolayk812/tarzi-cart/internal/orderapi"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 64 << 10

// Handler serves the cart and checkout endpoints for the authenticated owner.
type Handler struct {
	engine   *cart.Engine
	checkout *checkout.Service
	log      *slog.Logger
}

func NewHandler(engine *cart.Engine, checkout *checkout.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		engine:   engine,
		checkout: checkout,
		log:      log.With("component", "http"),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	snapshot, totals, err := h.engine.Snapshot(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(snapshot, totals))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	price, err := decimal.NewFromString(req.Price.String())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_item", "price must be a number")
		return
	}

	item := domain.CartItem{
		ProductID:          req.ProductID,
		Name:               req.Name,
		Price:              domain.NewMoney(price, h.engine.Currency()),
		ImageURL:           req.ImageURL,
		FabricChoice:       req.FabricChoice,
		ColorChoice:        req.ColorChoice,
		AdditionalRequests: req.AdditionalRequests,
	}

	updated, err := h.engine.Add(r.Context(), ownerFromContext(r.Context()), item, req.Quantity)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(updated, h.engine.Totals(updated.Items)))
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	key := domain.ItemKey{
		ProductID:    req.ProductID,
		FabricChoice: req.FabricChoice,
		ColorChoice:  req.ColorChoice,
	}

	updated, err := h.engine.UpdateQuantity(r.Context(), ownerFromContext(r.Context()), key, req.Quantity)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(updated, h.engine.Totals(updated.Items)))
}

// RemoveItem takes the item key from the productId, fabricChoice and colorChoice query parameters.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := domain.ItemKey{
		ProductID:    q.Get("productId"),
		FabricChoice: q.Get("fabricChoice"),
		ColorChoice:  q.Get("colorChoice"),
	}
	if key.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id_required", "")
		return
	}

	updated, err := h.engine.Remove(r.Context(), ownerFromContext(r.Context()), key)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(updated, h.engine.Totals(updated.Items)))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Clear(r.Context(), ownerFromContext(r.Context())); err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payment_method", err.Error())
		return
	}

	confirmation, err := h.checkout.PlaceOrder(r.Context(), ownerFromContext(r.Context()), tokenFromContext(r.Context()), checkout.Input{
		ShippingAddress: req.ShippingAddress.toDomain(),
		PaymentMethod:   method,
		MeasurementID:   req.MeasurementID,
	})
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, CheckoutResponse{
		OrderID:     confirmation.OrderID,
		OrderNumber: confirmation.OrderNumber,
		Status:      confirmation.Status,
	})
}

func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, cart.ErrInvalidItem), errors.Is(err, cart.ErrCurrencyMismatch):
		writeError(w, http.StatusBadRequest, "invalid_item", err.Error())
	default:
		h.log.ErrorContext(r.Context(), "cart operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "cart_unavailable", "")
	}
}

func (h *Handler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	if msg, ok := orderapi.UserMessage(err); ok {
		writeError(w, http.StatusBadGateway, "order_rejected", msg)
		return
	}

	var decodeErr *orderapi.DecodeError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusUnprocessableEntity, "empty_cart", err.Error())
	case errors.Is(err, domain.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, "invalid_address", err.Error())
	case errors.Is(err, domain.ErrUnknownPaymentMethod):
		writeError(w, http.StatusBadRequest, "invalid_payment_method", err.Error())
	case errors.As(err, &decodeErr):
		h.log.ErrorContext(r.Context(), "order api contract violation", "error", err)
		writeError(w, http.StatusBadGateway, "order_service_error", "")
	default:
		h.log.ErrorContext(r.Context(), "checkout failed", "error", err)
		writeError(w, http.StatusBadGateway, "order_service_error", "")
	}
}

// decodeBody reads at most maxBodyBytes of JSON into dst and writes the error response
// when it cannot.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "")
		return false
	}

	writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
