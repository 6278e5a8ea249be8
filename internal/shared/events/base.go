package events

import (
	"encoding/json"
	"errors"
)

// Topics de integración que consume y produce el servicio.
const (
	TopicOrderValidationSucceeded = "discount/order/validation-succeeded"
	TopicVendorAddressCreated     = "address/vendor-address/created"
	TopicUserCreated              = "user/user/created"
	TopicUserAddressCreated       = "address/user-address/created"
	TopicUserAddressArchived      = "address/user-address/archived"
	TopicInvoiceCreated           = "invoice/invoice/created"
)

// ErrDecode indica un payload malformado o con campos obligatorios ausentes.
var ErrDecode = errors.New("malformed event payload")

// Envelope es la parte relevante de un evento entregado por el broker,
// envuelto en un CloudEvent: {topic, data}.
type Envelope struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

// Subscription describe una suscripción que el broker debe registrar.
type Subscription struct {
	PubsubName string `json:"pubsubName"`
	Topic      string `json:"topic"`
	Route      string `json:"route"`
}

// TopicEventResponse es la respuesta al broker al recibir un evento.
// Status 0 -> Ok, según la especificación de Dapr.
type TopicEventResponse struct {
	Status uint8 `json:"status"`
}
