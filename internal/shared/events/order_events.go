package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Estos son contratos de integración, NO entidades del dominio.
// Se definen planos para intercambio entre contextos.

// OrderStatus describe si un pedido está colocado o todavía pendiente.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusPlaced   OrderStatus = "Placed"
	OrderStatusRejected OrderStatus = "Rejected"
)

// RejectionReason describe por qué se rechazó un pedido, si OrderStatus es Rejected.
type RejectionReason string

const (
	RejectionInvalidOrderData           RejectionReason = "InvalidOrderData"
	RejectionInventoryReservationFailed RejectionReason = "InventoryReservationFailed"
)

// PaymentAuthorizationEventData es la información opcional de autorización de pago.
// Se decodifica y se transporta, pero la síntesis de facturas no la consulta
// (campo sin uso aguas abajo, se conserva por contrato).
type PaymentAuthorizationEventData struct {
	// Código CVC/CVV de 3-4 dígitos.
	CVC *uint16 `json:"CVC,omitempty"`
}

// OrderItemEventData es la parte relevante de un ítem de pedido dentro del evento.
type OrderItemEventData struct {
	ID                      uuid.UUID   `json:"id"`
	CreatedAt               time.Time   `json:"createdAt"`
	ProductVariantID        uuid.UUID   `json:"productVariantId"`
	ProductVariantVersionID uuid.UUID   `json:"productVariantVersionId"`
	TaxRateVersionID        uuid.UUID   `json:"taxRateVersionId"`
	ShoppingCartItemID      uuid.UUID   `json:"shoppingCartItemId"`
	Count                   uint64      `json:"count"`
	CompensatableAmount     uint64      `json:"compensatableAmount"`
	ShipmentMethodID        uuid.UUID   `json:"shipmentMethodId"`
	DiscountIDs             []uuid.UUID `json:"discountIds"`
}

// OrderEventData es la parte relevante del pedido dentro del evento de
// validación de descuentos. Vive solo durante la petición, nunca se persiste tal cual.
type OrderEventData struct {
	ID                       uuid.UUID                      `json:"id"`
	UserID                   uuid.UUID                      `json:"userId"`
	CreatedAt                time.Time                      `json:"createdAt"`
	OrderStatus              OrderStatus                    `json:"orderStatus"`
	PlacedAt                 *time.Time                     `json:"placedAt,omitempty"`
	RejectionReason          *RejectionReason               `json:"rejectionReason,omitempty"`
	OrderItems               []OrderItemEventData           `json:"orderItems"`
	ShipmentAddressID        uuid.UUID                      `json:"shipmentAddressId"`
	InvoiceAddressID         uuid.UUID                      `json:"invoiceAddressId"`
	CompensatableOrderAmount uint64                         `json:"compensatableOrderAmount"`
	PaymentInformationID     uuid.UUID                      `json:"paymentInformationId"`
	PaymentAuthorization     *PaymentAuthorizationEventData `json:"paymentAuthorization,omitempty"`
	VatNumber                *string                        `json:"vatNumber,omitempty"`
}

// DiscountValidationSucceededEventData envuelve el pedido validado.
type DiscountValidationSucceededEventData struct {
	Order OrderEventData `json:"order"`
}

// DecodeOrderValidationSucceeded valida y parsea el payload del evento
// discount/order/validation-succeeded.
func DecodeOrderValidationSucceeded(data json.RawMessage) (OrderEventData, error) {
	var evt DiscountValidationSucceededEventData
	if err := json.Unmarshal(data, &evt); err != nil {
		return OrderEventData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := evt.Order.validate(); err != nil {
		return OrderEventData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return evt.Order, nil
}

func (o OrderEventData) validate() error {
	switch {
	case o.ID == uuid.Nil:
		return fmt.Errorf("order id is required")
	case o.UserID == uuid.Nil:
		return fmt.Errorf("order userId is required")
	case o.CreatedAt.IsZero():
		return fmt.Errorf("order createdAt is required")
	case o.ShipmentAddressID == uuid.Nil:
		return fmt.Errorf("order shipmentAddressId is required")
	case o.InvoiceAddressID == uuid.Nil:
		return fmt.Errorf("order invoiceAddressId is required")
	case o.PaymentInformationID == uuid.Nil:
		return fmt.Errorf("order paymentInformationId is required")
	}

	switch o.OrderStatus {
	case OrderStatusPending, OrderStatusPlaced, OrderStatusRejected:
	default:
		return fmt.Errorf("unknown order status %q", o.OrderStatus)
	}

	if o.RejectionReason != nil {
		switch *o.RejectionReason {
		case RejectionInvalidOrderData, RejectionInventoryReservationFailed:
		default:
			return fmt.Errorf("unknown rejection reason %q", *o.RejectionReason)
		}
	}

	for i, item := range o.OrderItems {
		if err := item.validate(); err != nil {
			return fmt.Errorf("order item %d: %v", i, err)
		}
	}
	return nil
}

func (it OrderItemEventData) validate() error {
	switch {
	case it.ID == uuid.Nil:
		return fmt.Errorf("item id is required")
	case it.CreatedAt.IsZero():
		return fmt.Errorf("item createdAt is required")
	case it.ProductVariantID == uuid.Nil:
		return fmt.Errorf("item productVariantId is required")
	case it.ProductVariantVersionID == uuid.Nil:
		return fmt.Errorf("item productVariantVersionId is required")
	case it.TaxRateVersionID == uuid.Nil:
		return fmt.Errorf("item taxRateVersionId is required")
	case it.ShoppingCartItemID == uuid.Nil:
		return fmt.Errorf("item shoppingCartItemId is required")
	case it.ShipmentMethodID == uuid.Nil:
		return fmt.Errorf("item shipmentMethodId is required")
	}
	return nil
}
