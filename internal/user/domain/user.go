package domain

import (
	"github.com/google/uuid"
)

// UserAddress es una dirección embebida dentro del agregado User.
// UserID es una back-reference al propietario, no un puntero de propiedad.
type UserAddress struct {
	ID          uuid.UUID `json:"id"`
	Street1     string    `json:"street1"`
	Street2     string    `json:"street2"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postal_code"`
	Country     string    `json:"country"`
	CompanyName *string   `json:"company_name,omitempty"`
	UserID      uuid.UUID `json:"user_id"`
}

// User representa el perfil mínimo que este servicio necesita para facturar.
// Las direcciones se modelan como mapa por id de dirección, así el alta
// repetida de la misma dirección no puede duplicar entradas.
type User struct {
	ID        uuid.UUID                 `json:"id"`
	FirstName string                    `json:"first_name"`
	LastName  string                    `json:"last_name"`
	Addresses map[uuid.UUID]UserAddress `json:"addresses"`
}

// PutAddress añade (o reescribe) una dirección del usuario.
func (u *User) PutAddress(addr UserAddress) {
	if u.Addresses == nil {
		u.Addresses = make(map[uuid.UUID]UserAddress)
	}
	u.Addresses[addr.ID] = addr
}

// RemoveAddress elimina la dirección indicada; es un no-op si no existe.
func (u *User) RemoveAddress(id uuid.UUID) {
	delete(u.Addresses, id)
}
