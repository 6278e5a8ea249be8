package events

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceDTO es la proyección de una factura que viaja en el evento de
// creación: solo pedido, fecha de emisión y contenido renderizado.
type InvoiceDTO struct {
	OrderID  uuid.UUID `json:"orderId"`
	IssuedAt time.Time `json:"issuedAt"`
	Content  string    `json:"content"`
}

// InvoiceCreatedDTO describe el contexto completo del evento
// invoice/invoice/created: el pedido original más la factura derivada.
type InvoiceCreatedDTO struct {
	Order   OrderEventData `json:"order"`
	Invoice InvoiceDTO     `json:"invoice"`
}
