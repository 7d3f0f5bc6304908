package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvalidAddress       = errors.New("invalid shipping address")
)

type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodWallet         PaymentMethod = "wallet"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentMethodCashOnDelivery, PaymentMethodCard, PaymentMethodWallet:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
	}
}

type ShippingAddress struct {
	FullName    string
	Phone       string
	Street      string
	City        string
	Governorate string
	PostalCode  string
	Notes       string
}

// Validate reports every required field that is blank.
func (a ShippingAddress) Validate() error {
	var missing []string

	for _, f := range []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidAddress, strings.Join(missing, ", "))
	}

	return nil
}

// OrderRequest is the payload handed to the order management API at checkout.
type OrderRequest struct {
	OwnerID         string
	Items           []CartItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	// MeasurementID references a saved measurement profile; empty when none is attached.
	MeasurementID string
	Totals        Totals
}

type OrderConfirmation struct {
	OrderID     string
	OrderNumber string
	Status      string
}
