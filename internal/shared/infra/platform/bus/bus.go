package bus

import "context"

// Publisher publica eventos de integración en un topic concreto.
// La semántica del nombre del topic y el formato del payload la deciden los adapters.
type Publisher interface {
	Publish(ctx context.Context, topic string, event interface{}) error
}

// Keyer permite a un evento aportar su clave de partición.
type Keyer interface {
	PartitionKey() string
}
