package mocks

import (
	"context"
	"sync"

	sharedBus "github.com/davicafu/facturalab/internal/shared/infra/platform/bus"
)

// PublishedEvent registra una publicación hecha a través del DummyPublisher.
type PublishedEvent struct {
	Topic string
	Event interface{}
}

// DummyPublisher simula el publicador de eventos salientes.
type DummyPublisher struct {
	Published []PublishedEvent
	mu        sync.Mutex

	// FailWith fuerza el error devuelto por Publish.
	FailWith error
}

func (p *DummyPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailWith != nil {
		return p.FailWith
	}
	p.Published = append(p.Published, PublishedEvent{Topic: topic, Event: event})
	return nil
}

// Verificación estática
var _ sharedBus.Publisher = (*DummyPublisher)(nil)
