package events

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// VendorAddressEventData es la parte relevante del evento de creación de
// la dirección del vendedor.
type VendorAddressEventData struct {
	ID          uuid.UUID `json:"id"`
	Street1     string    `json:"street1"`
	Street2     string    `json:"street2"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postalCode"`
	Country     string    `json:"country"`
	CompanyName string    `json:"companyName"`
}

// UserAddressEventData es la parte relevante del evento de creación de
// una dirección de usuario.
type UserAddressEventData struct {
	ID          uuid.UUID `json:"id"`
	Street1     string    `json:"street1"`
	Street2     string    `json:"street2"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postalCode"`
	Country     string    `json:"country"`
	CompanyName *string   `json:"companyName,omitempty"`
	UserID      uuid.UUID `json:"userId"`
}

// UserAddressArchivedEventData es la parte relevante del evento de archivado
// de una dirección de usuario.
type UserAddressArchivedEventData struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
}

// DecodeVendorAddressCreated valida y parsea el payload del evento
// address/vendor-address/created.
func DecodeVendorAddressCreated(data json.RawMessage) (VendorAddressEventData, error) {
	var evt VendorAddressEventData
	if err := json.Unmarshal(data, &evt); err != nil {
		return VendorAddressEventData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	switch {
	case evt.ID == uuid.Nil:
		return VendorAddressEventData{}, fmt.Errorf("%w: vendor address id is required", ErrDecode)
	case evt.Street1 == "", evt.Street2 == "", evt.City == "", evt.PostalCode == "", evt.Country == "":
		return VendorAddressEventData{}, fmt.Errorf("%w: vendor address fields are required", ErrDecode)
	case evt.CompanyName == "":
		return VendorAddressEventData{}, fmt.Errorf("%w: vendor companyName is required", ErrDecode)
	}
	return evt, nil
}

// DecodeUserAddressCreated valida y parsea el payload del evento
// address/user-address/created. companyName es opcional.
func DecodeUserAddressCreated(data json.RawMessage) (UserAddressEventData, error) {
	var evt UserAddressEventData
	if err := json.Unmarshal(data, &evt); err != nil {
		return UserAddressEventData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	switch {
	case evt.ID == uuid.Nil:
		return UserAddressEventData{}, fmt.Errorf("%w: user address id is required", ErrDecode)
	case evt.UserID == uuid.Nil:
		return UserAddressEventData{}, fmt.Errorf("%w: user address userId is required", ErrDecode)
	case evt.Street1 == "", evt.Street2 == "", evt.City == "", evt.PostalCode == "", evt.Country == "":
		return UserAddressEventData{}, fmt.Errorf("%w: user address fields are required", ErrDecode)
	}
	return evt, nil
}

// DecodeUserAddressArchived valida y parsea el payload del evento
// address/user-address/archived.
func DecodeUserAddressArchived(data json.RawMessage) (UserAddressArchivedEventData, error) {
	var evt UserAddressArchivedEventData
	if err := json.Unmarshal(data, &evt); err != nil {
		return UserAddressArchivedEventData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	switch {
	case evt.ID == uuid.Nil:
		return UserAddressArchivedEventData{}, fmt.Errorf("%w: archived address id is required", ErrDecode)
	case evt.UserID == uuid.Nil:
		return UserAddressArchivedEventData{}, fmt.Errorf("%w: archived address userId is required", ErrDecode)
	}
	return evt, nil
}
