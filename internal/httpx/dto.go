package httpx

import (
	"encoding/json"

	"github.com/nikolayk812/tarzi-cart/internal/domain"
)

type AddItemRequest struct {
	ProductID          string      `json:"productId"`
	Name               string      `json:"name"`
	Price              json.Number `json:"price"`
	ImageURL           string      `json:"imageUrl"`
	FabricChoice       string      `json:"fabricChoice"`
	ColorChoice        string      `json:"colorChoice"`
	Quantity           int         `json:"quantity"`
	AdditionalRequests string      `json:"additionalRequests"`
}

type UpdateQuantityRequest struct {
	ProductID    string `json:"productId"`
	FabricChoice string `json:"fabricChoice"`
	ColorChoice  string `json:"colorChoice"`
	Quantity     int    `json:"quantity"`
}

type CheckoutRequest struct {
	ShippingAddress AddressDTO `json:"shippingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
	MeasurementID   string     `json:"measurementId"`
}

type AddressDTO struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Governorate string `json:"governorate"`
	PostalCode  string `json:"postalCode"`
	Notes       string `json:"notes"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Currency string             `json:"currency"`
	Subtotal json.Number        `json:"subtotal"`
	Shipping json.Number        `json:"shipping"`
	Tax      json.Number        `json:"tax"`
	Total    json.Number        `json:"total"`
}

type CartItemResponse struct {
	ProductID          string      `json:"productId"`
	Name               string      `json:"name"`
	Price              json.Number `json:"price"`
	ImageURL           string      `json:"imageUrl"`
	FabricChoice       string      `json:"fabricChoice"`
	ColorChoice        string      `json:"colorChoice"`
	Quantity           int         `json:"quantity"`
	AdditionalRequests string      `json:"additionalRequests,omitempty"`
	LineTotal          json.Number `json:"lineTotal"`
}

type CheckoutResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Status      string `json:"status,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapCartToResponse(cart domain.Cart, totals domain.Totals) CartResponse {
	items := make([]CartItemResponse, len(cart.Items))
	for i, it := range cart.Items {
		items[i] = CartItemResponse{
			ProductID:          it.ProductID,
			Name:               it.Name,
			Price:              json.Number(it.Price.StringFixed()),
			ImageURL:           it.ImageURL,
			FabricChoice:       it.FabricChoice,
			ColorChoice:        it.ColorChoice,
			Quantity:           it.Quantity,
			AdditionalRequests: it.AdditionalRequests,
			LineTotal:          json.Number(it.LineTotal().StringFixed()),
		}
	}

	return CartResponse{
		Items:    items,
		Currency: totals.Total.Currency.String(),
		Subtotal: json.Number(totals.Subtotal.StringFixed()),
		Shipping: json.Number(totals.Shipping.StringFixed()),
		Tax:      json.Number(totals.Tax.StringFixed()),
		Total:    json.Number(totals.Total.StringFixed()),
	}
}

func (a AddressDTO) toDomain() domain.ShippingAddress {
	return domain.ShippingAddress{
		FullName:    a.FullName,
		Phone:       a.Phone,
		Street:      a.Street,
		City:        a.City,
		Governorate: a.Governorate,
		PostalCode:  a.PostalCode,
		Notes:       a.Notes,
	}
}
