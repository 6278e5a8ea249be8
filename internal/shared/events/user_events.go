package events

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UserEventData es la parte relevante del evento de creación de un usuario.
type UserEventData struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// DecodeUserCreated valida y parsea el payload del evento user/user/created.
func DecodeUserCreated(data json.RawMessage) (UserEventData, error) {
	var evt UserEventData
	if err := json.Unmarshal(data, &evt); err != nil {
		return UserEventData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	switch {
	case evt.ID == uuid.Nil:
		return UserEventData{}, fmt.Errorf("%w: user id is required", ErrDecode)
	case evt.FirstName == "" || evt.LastName == "":
		return UserEventData{}, fmt.Errorf("%w: user firstName and lastName are required", ErrDecode)
	}
	return evt, nil
}
