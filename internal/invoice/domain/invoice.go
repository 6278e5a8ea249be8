package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	sharedEvents "github.com/davicafu/facturalab/internal/shared/events"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

// Invoice es la factura de un pedido. Se crea una vez por evento de
// validación procesado y no se muta después. Además de los campos
// estructurados guarda instantáneas de las direcciones resueltas y el
// contenido ya renderizado.
type Invoice struct {
	ID            uuid.UUID                   `json:"id"`
	OrderID       uuid.UUID                   `json:"order_id"`
	IssuedAt      time.Time                   `json:"issued_at"`
	Content       string                      `json:"content"`
	UserAddress   userDomain.UserAddress      `json:"user_address"`
	VendorAddress addressDomain.VendorAddress `json:"vendor_address"`
	VatNumber     *string                     `json:"vat_number,omitempty"`
}

// NewInvoice sintetiza la factura a partir del pedido y de las entidades ya
// agregadas. Es una función pura y determinista: mismo input, misma factura.
func NewInvoice(
	order sharedEvents.OrderEventData,
	userAddress userDomain.UserAddress,
	vendorAddress addressDomain.VendorAddress,
	user *userDomain.User,
	id uuid.UUID,
	issuedAt time.Time,
) *Invoice {
	return &Invoice{
		ID:            id,
		OrderID:       order.ID,
		IssuedAt:      issuedAt,
		Content:       RenderContent(order, userAddress, vendorAddress, user, id, issuedAt),
		UserAddress:   userAddress,
		VendorAddress: vendorAddress,
		VatNumber:     order.VatNumber,
	}
}

// ToDTO proyecta la factura al contrato de integración: solo pedido,
// fecha de emisión y contenido, sin las direcciones embebidas.
func (i *Invoice) ToDTO() sharedEvents.InvoiceDTO {
	return sharedEvents.InvoiceDTO{
		OrderID:  i.OrderID,
		IssuedAt: i.IssuedAt,
		Content:  i.Content,
	}
}

// ---------- Helpers comunes (cache keys, etc.) ----------

func CacheKeyByID(id uuid.UUID) string {
	return fmt.Sprintf("invoice:id:%s", id.String())
}

func CacheKeyByOrderID(orderID uuid.UUID) string {
	return fmt.Sprintf("invoice:order:%s", orderID.String())
}
