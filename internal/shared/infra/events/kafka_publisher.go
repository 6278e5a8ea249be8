package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/segmentio/kafka-go"

	sharedBus "github.com/davicafu/facturalab/internal/shared/infra/platform/bus"
)

// KafkaPublisher publica eventos de integración en Kafka. El topic del broker
// se deriva del topic lógico del evento usándolo como clave de enrutado.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(writer *kafka.Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := []byte(topic)
	if keyer, ok := event.(sharedBus.Keyer); ok {
		key = []byte(keyer.PartitionKey())
	}

	msg := kafka.Message{
		Key:   key,
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Error publishing to Kafka", zap.String("topic", topic), zap.Error(err))
		return err
	}

	p.log.Debug("Event published successfully", zap.String("topic", topic))
	return nil
}

// Verificación estática
var _ sharedBus.Publisher = (*KafkaPublisher)(nil)
