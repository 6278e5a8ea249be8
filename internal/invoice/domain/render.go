package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	sharedEvents "github.com/davicafu/facturalab/internal/shared/events"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

const invoiceTerms = "This invoice is created according the the companies terms and conditions specified on the website."

// issuedAtLayout: YYYY-MM-DD HH:MM:SS
const issuedAtLayout = "2006-01-02 15:04:05"

// RenderContent produce el texto legible de la factura en markdown.
// Es independiente de cualquier acceso a datos: todo lo que necesita llega
// como argumento.
func RenderContent(
	order sharedEvents.OrderEventData,
	userAddress userDomain.UserAddress,
	vendorAddress addressDomain.VendorAddress,
	user *userDomain.User,
	id uuid.UUID,
	issuedAt time.Time,
) string {
	// El número de IVA del pedido si existe, si no el literal "-".
	vatNumber := "-"
	if order.VatNumber != nil {
		vatNumber = *order.VatNumber
	}

	userCompanyName := ""
	if userAddress.CompanyName != nil {
		userCompanyName = *userAddress.CompanyName
	}

	return fmt.Sprintf(`
# Invoice

### Company information:
%s
%s, %s
%s, %s

VAT number: %s

### Customer information:
ID: %s
Name: %s, %s
Address:
%s
%s, %s
%s, %s

### Invoice ID: %s, issued at: %s

Terms and conditions: %s

---

Purchased items overview:

%s

---

Total compensatable amount: %d
`,
		vendorAddress.CompanyName,
		vendorAddress.Street1,
		vendorAddress.Street2,
		vendorAddress.City,
		vendorAddress.Country,
		vatNumber,
		user.ID,
		user.FirstName,
		user.LastName,
		userCompanyName,
		userAddress.Street1,
		userAddress.Street2,
		userAddress.City,
		userAddress.Country,
		id,
		issuedAt.Format(issuedAtLayout),
		invoiceTerms,
		renderOrderItemTable(order),
		order.CompensatableOrderAmount,
	)
}

// renderOrderItemTable genera la tabla markdown de ítems, una fila por ítem
// en el orden de entrada, sin reordenar.
func renderOrderItemTable(order sharedEvents.OrderEventData) string {
	var b strings.Builder
	b.WriteString("| Item UUID | Product variant UUID | count | Compensatable amount |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, item := range order.OrderItems {
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %d |\n",
			item.ID, item.ProductVariantID, item.Count, item.CompensatableAmount))
	}
	return b.String()
}
