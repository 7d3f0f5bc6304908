package orderapi

import (
	"encoding/json"
	"net/http"

	"github.com/nikolayk812/tarzi-cart/internal/domain"
)

type createOrderDTO struct {
	Items           []orderItemDTO `json:"items"`
	ShippingAddress addressDTO     `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	MeasurementID   string         `json:"measurementId,omitempty"`
	Currency        string         `json:"currency"`
	Subtotal        json.Number    `json:"subtotal"`
	ShippingCost    json.Number    `json:"shippingCost"`
	Tax             json.Number    `json:"tax"`
	Total           json.Number    `json:"total"`
}

type orderItemDTO struct {
	ProductID          string      `json:"productId"`
	Name               string      `json:"name"`
	Price              json.Number `json:"price"`
	Quantity           int         `json:"quantity"`
	FabricChoice       string      `json:"fabricChoice"`
	ColorChoice        string      `json:"colorChoice"`
	AdditionalRequests string      `json:"additionalRequests,omitempty"`
}

type addressDTO struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Governorate string `json:"governorate,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) message(status int) string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	default:
		return http.StatusText(status)
	}
}

type orderDTO struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

func mapOrderRequestToDTO(req domain.OrderRequest) createOrderDTO {
	items := make([]orderItemDTO, len(req.Items))
	for i, it := range req.Items {
		items[i] = orderItemDTO{
			ProductID:          it.ProductID,
			Name:               it.Name,
			Price:              json.Number(it.Price.Amount.String()),
			Quantity:           it.Quantity,
			FabricChoice:       it.FabricChoice,
			ColorChoice:        it.ColorChoice,
			AdditionalRequests: it.AdditionalRequests,
		}
	}

	a := req.ShippingAddress

	return createOrderDTO{
		Items: items,
		ShippingAddress: addressDTO{
			FullName:    a.FullName,
			Phone:       a.Phone,
			Street:      a.Street,
			City:        a.City,
			Governorate: a.Governorate,
			PostalCode:  a.PostalCode,
			Notes:       a.Notes,
		},
		PaymentMethod: string(req.PaymentMethod),
		MeasurementID: req.MeasurementID,
		Currency:      req.Totals.Total.Currency.String(),
		Subtotal:      json.Number(req.Totals.Subtotal.StringFixed()),
		ShippingCost:  json.Number(req.Totals.Shipping.StringFixed()),
		Tax:           json.Number(req.Totals.Tax.StringFixed()),
		Total:         json.Number(req.Totals.Total.StringFixed()),
	}
}
